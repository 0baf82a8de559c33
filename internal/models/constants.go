package models

const (
	TicketStatusPending   = "pending"
	TicketStatusServed    = "served"
	TicketStatusClosed    = "closed"
	TicketStatusCancelled = "cancelled"

	LineStatusPending   = "pending"
	LineStatusPreparing = "preparing"
	LineStatusReady     = "ready"
	LineStatusDone      = "done"
	LineStatusCancelled = "cancelled"

	TopicTicketEvents         = "ticket_events"
	TopicClassifiedLineEvents = "classified_line_events"
	TopicCorrectionEvents     = "correction_events"
)
