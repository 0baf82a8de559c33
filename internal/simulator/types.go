package simulator

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/xitongsys/parquet-go/schema"
)

// BaseEvent is the common structure for all events
type BaseEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType string `json:"event_type" parquet:"name=event_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	TicketID  string `json:"ticket_id" parquet:"name=ticket_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	WaiterID  string `json:"waiter_id" parquet:"name=waiter_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Table     int32  `json:"table" parquet:"name=table,type=INT32"`
}

// TicketEvent records a ticket changing state: submitted, amended or closed
type TicketEvent struct {
	BaseEvent
	Status     string `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
	Text       string `json:"text" parquet:"name=text,type=BYTE_ARRAY,convertedtype=UTF8"`
	LineCount  int32  `json:"line_count" parquet:"name=line_count,type=INT32"`
	TotalCents int64  `json:"total_cents" parquet:"name=total_cents,type=INT64"`
}

// ClassifiedLineEvent carries one classified order line for the station feeds
type ClassifiedLineEvent struct {
	BaseEvent
	LineID         string  `json:"line_id" parquet:"name=line_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Text           string  `json:"text" parquet:"name=text,type=BYTE_ARRAY,convertedtype=UTF8"`
	Note           string  `json:"note" parquet:"name=note,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category       string  `json:"category" parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	MenuID         string  `json:"menu_id" parquet:"name=menu_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	MenuName       string  `json:"menu_name" parquet:"name=menu_name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Quantity       float64 `json:"qty" parquet:"name=qty,type=DOUBLE"`
	Unit           string  `json:"unit" parquet:"name=unit,type=BYTE_ARRAY,convertedtype=UTF8"`
	Multiplier     float64 `json:"multiplier" parquet:"name=multiplier,type=DOUBLE"`
	UnitPriceCents int64   `json:"unit_price_cents" parquet:"name=unit_price_cents,type=INT64"`
	LineTotalCents int64   `json:"line_total_cents" parquet:"name=line_total_cents,type=INT64"`
	Score          float64 `json:"score" parquet:"name=score,type=DOUBLE"`
	Resolved       bool    `json:"resolved" parquet:"name=resolved,type=BOOLEAN"`
	LineStatus     string  `json:"line_status" parquet:"name=line_status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// CorrectionEvent records a waiter relabelling a misclassified line
type CorrectionEvent struct {
	BaseEvent
	LineID          string `json:"line_id" parquet:"name=line_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	RawText         string `json:"raw_text" parquet:"name=raw_text,type=BYTE_ARRAY,convertedtype=UTF8"`
	PredictedMenuID string `json:"predicted_menu_id" parquet:"name=predicted_menu_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	CorrectedMenuID string `json:"corrected_menu_id" parquet:"name=corrected_menu_id,type=BYTE_ARRAY,convertedtype=UTF8"`
}

func GetSchema(topic string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch topic {
	case models.TopicTicketEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(TicketEvent))
	case models.TopicClassifiedLineEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(ClassifiedLineEvent))
	case models.TopicCorrectionEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(CorrectionEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating schema for %s: %w", topic, err)
	}

	return sh, nil
}

// decodeTopicEvent rebuilds the typed event for a topic from its JSON form,
// so the Parquet writer sees a struct matching the topic schema.
func decodeTopicEvent(topic string, msg []byte) (interface{}, error) {
	var event interface{}
	switch topic {
	case models.TopicTicketEvents:
		event = new(TicketEvent)
	case models.TopicClassifiedLineEvents:
		event = new(ClassifiedLineEvent)
	case models.TopicCorrectionEvents:
		event = new(CorrectionEvent)
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
	if err := json.Unmarshal(msg, event); err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", topic, err)
	}
	return event, nil
}

func NewBaseEvent(eventType string, timestamp time.Time, ticket *models.Ticket) BaseEvent {
	return BaseEvent{
		Timestamp: timestamp.Unix(),
		EventType: eventType,
		TicketID:  ticket.ID,
		WaiterID:  ticket.WaiterID,
		Table:     int32(ticket.Table),
	}
}
