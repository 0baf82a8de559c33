package simulator

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dkaranikas/komanda/internal/factories"
	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/dkaranikas/komanda/internal/orders"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
)

// Simulator replays a taverna service window: parties are seated, waiters
// key in order tickets, tickets get amended, misread lines get corrected
// and tables close. Every state change is serialized and pushed to the
// configured output destination.
type Simulator struct {
	Config      *models.Config
	CurrentTime time.Time
	Rng         *rand.Rand
	Waiters     []*models.Waiter
	EventQueue  *models.EventQueue

	// Output overrides the config-derived destination when set.
	Output OutputDestination

	classifier  *nlp.Classifier
	index       *nlp.MenuIndex
	menu        nlp.MenuSnapshot
	tickets     *factories.TicketFactory
	open        map[string]*models.Ticket
	seated      map[int]string
	corrections []nlp.Correction
	overrides   nlp.OverrideRules
}

// seating carries a seated party from the seat event to its order.
type seating struct {
	Table  int
	Waiter *models.Waiter
}

func NewSimulator(config *models.Config, menu nlp.MenuSnapshot) *Simulator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	classifier := nlp.New(config.EngineConfig())
	return &Simulator{
		Config:      config,
		CurrentTime: config.StartDate,
		Rng:         rng,
		EventQueue:  models.NewEventQueue(),
		classifier:  classifier,
		index:       classifier.BuildIndex(menu),
		menu:        menu,
		tickets:     factories.NewTicketFactory(config, menu, rng),
		open:        make(map[string]*models.Ticket),
		seated:      make(map[int]string),
	}
}

// Corrections returns the corrections captured so far, oldest first.
func (s *Simulator) Corrections() []nlp.Correction {
	return s.corrections
}

func (s *Simulator) Run() error {
	if !s.Config.EndDate.After(s.Config.StartDate) {
		return fmt.Errorf("end date %s is not after start date %s",
			s.Config.EndDate.Format(time.RFC3339), s.Config.StartDate.Format(time.RFC3339))
	}

	output := s.Output
	if output == nil {
		var err error
		output, err = s.determineOutputDestination()
		if err != nil {
			return err
		}
	}
	defer func() {
		if err := output.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	s.initializeData()
	log.Printf("Simulation runs from %s to %s",
		s.CurrentTime.Format(time.RFC3339), s.Config.EndDate.Format(time.RFC3339))

	totalMinutes := int64(s.Config.EndDate.Sub(s.Config.StartDate) / time.Minute)
	bar := progressbar.Default(totalMinutes, "simulating service")

	var eventsCount int
	for s.CurrentTime.Before(s.Config.EndDate) {
		// process everything due at the current simulated minute
		for {
			next := s.EventQueue.Peek()
			if next == nil || next.Time.After(s.CurrentTime) {
				break
			}
			event := s.EventQueue.Dequeue()
			if event == nil {
				break
			}
			eventsCount++
			for _, msg := range s.processEvent(event) {
				if err := output.WriteMessage(msg.Topic, msg.Message); err != nil {
					log.Printf("Failed to write message: %v", err)
				}
			}
		}

		s.simulateTimeStep()

		if s.Config.Continuous {
			time.Sleep(time.Second)
		}
		_ = bar.Add(1)
		s.CurrentTime = s.CurrentTime.Add(1 * time.Minute)
	}

	_ = bar.Finish()
	log.Printf("Simulation completed: %d events processed, %d corrections captured",
		eventsCount, len(s.corrections))
	return nil
}

func (s *Simulator) initializeData() {
	count := s.Config.Waiters
	if count < 1 {
		count = 1
	}
	waiterFactory := factories.NewWaiterFactory(s.Rng)
	s.Waiters = make([]*models.Waiter, count)
	for i := range s.Waiters {
		s.Waiters[i] = waiterFactory.CreateWaiter()
	}
}

// simulateTimeStep draws walk-ins as a per-minute Bernoulli approximation
// of the hourly arrival rate.
func (s *Simulator) simulateTimeStep() {
	rate := s.arrivalRate(s.CurrentTime)
	if rate <= 0 {
		return
	}
	p := rate / 60
	if p > 1 {
		p = 1
	}
	if s.Rng.Float64() < p {
		s.schedule(0, models.EventSeatTable, nil)
	}
}

func (s *Simulator) processEvent(event *models.Event) []models.EventMessage {
	switch event.Type {
	case models.EventSeatTable:
		return s.handleSeatTable()
	case models.EventSubmitTicket:
		return s.handleSubmitTicket(event.Data.(*seating))
	case models.EventAmendTicket:
		return s.handleAmendTicket(event.Data.(string))
	case models.EventCorrectLine:
		return s.handleCorrectLine(event.Data.(string))
	case models.EventCloseTable:
		return s.handleCloseTable(event.Data.(string))
	default:
		log.Printf("Unknown event type: %s", event.Type)
		return nil
	}
}

func (s *Simulator) handleSeatTable() []models.EventMessage {
	table := s.freeTable()
	if table == 0 {
		// full house, the party walks
		return nil
	}
	waiter := s.Waiters[s.Rng.Intn(len(s.Waiters))]
	s.seated[table] = "" // reserved until the order is keyed in
	s.schedule(2+s.Rng.Intn(5), models.EventSubmitTicket, &seating{Table: table, Waiter: waiter})
	return nil
}

func (s *Simulator) handleSubmitTicket(seat *seating) []models.EventMessage {
	text := s.tickets.OrderText(seat.Waiter)
	lines := s.classifier.Classify(text, s.index, s.overrides)
	ticket := models.NewTicket(seat.Table, seat.Waiter.ID, text, lines, s.CurrentTime)
	s.open[ticket.ID] = ticket
	s.seated[seat.Table] = ticket.ID

	msgs := make([]models.EventMessage, 0, len(ticket.Lines)+1)
	s.appendMessage(&msgs, models.TopicTicketEvents, s.ticketEvent(models.EventSubmitTicket, ticket))
	for _, line := range ticket.Lines {
		s.appendMessage(&msgs, models.TopicClassifiedLineEvents, s.lineEvent(models.EventSubmitTicket, ticket, line))
	}

	if s.Rng.Float64() < s.Config.AmendRate {
		s.schedule(4+s.Rng.Intn(12), models.EventAmendTicket, ticket.ID)
	}
	if s.Rng.Float64() < s.Config.CorrectionRate {
		s.schedule(2+s.Rng.Intn(9), models.EventCorrectLine, ticket.ID)
	}
	s.schedule(45+s.Rng.Intn(61), models.EventCloseTable, ticket.ID)
	return msgs
}

func (s *Simulator) handleAmendTicket(ticketID string) []models.EventMessage {
	ticket, ok := s.open[ticketID]
	if !ok {
		return nil
	}
	waiter := s.waiterByID(ticket.WaiterID)
	text := s.tickets.AmendText(ticket.Text, waiter)
	if text == ticket.Text {
		return nil
	}
	lines := s.classifier.Classify(text, s.index, s.overrides)
	result := orders.Diff(ticket.Lines, lines)
	orders.Apply(ticket, result)
	ticket.Text = text

	msgs := make([]models.EventMessage, 0, len(result.Created)+len(result.Updated)+len(result.Cancelled)+1)
	s.appendMessage(&msgs, models.TopicTicketEvents, s.ticketEvent(models.EventAmendTicket, ticket))
	for _, line := range result.Created {
		line.TicketID = ticket.ID
		s.appendMessage(&msgs, models.TopicClassifiedLineEvents, s.lineEvent(models.EventAmendTicket, ticket, line))
	}
	for _, line := range result.Updated {
		s.appendMessage(&msgs, models.TopicClassifiedLineEvents, s.lineEvent(models.EventAmendTicket, ticket, line))
	}
	for _, line := range result.Cancelled {
		s.appendMessage(&msgs, models.TopicClassifiedLineEvents, s.lineEvent(models.EventAmendTicket, ticket, line))
	}
	return msgs
}

func (s *Simulator) handleCorrectLine(ticketID string) []models.EventMessage {
	ticket, ok := s.open[ticketID]
	if !ok {
		return nil
	}
	idx := worstLine(ticket)
	if idx < 0 {
		return nil
	}
	line := &ticket.Lines[idx]
	target := s.tickets.RandomItem()
	if target.ID == "" || target.ID == line.MenuID {
		return nil
	}

	correction := nlp.Correction{
		ID:              cuid.New(),
		RawText:         line.Text,
		PredictedMenuID: line.MenuID,
		CorrectedMenuID: target.ID,
		CorrectedBy:     ticket.WaiterID,
		CreatedAt:       s.CurrentTime,
	}
	s.corrections = append(s.corrections, correction)
	s.overrides = nlp.BuildOverrides(s.corrections)

	// reclassify so the fresh override lands on the ticket itself
	if relined := s.classifier.Classify(line.Text, s.index, s.overrides); len(relined) == 1 {
		line.ClassifiedLine = relined[0]
	}
	ticket.RecalcTotal()

	msgs := make([]models.EventMessage, 0, 2)
	s.appendMessage(&msgs, models.TopicCorrectionEvents, CorrectionEvent{
		BaseEvent:       NewBaseEvent(models.EventCorrectLine, s.CurrentTime, ticket),
		LineID:          line.ID,
		RawText:         correction.RawText,
		PredictedMenuID: correction.PredictedMenuID,
		CorrectedMenuID: correction.CorrectedMenuID,
	})
	s.appendMessage(&msgs, models.TopicClassifiedLineEvents, s.lineEvent(models.EventCorrectLine, ticket, *line))
	return msgs
}

func (s *Simulator) handleCloseTable(ticketID string) []models.EventMessage {
	ticket, ok := s.open[ticketID]
	if !ok {
		return nil
	}
	ticket.Status = models.TicketStatusClosed
	delete(s.open, ticketID)
	delete(s.seated, ticket.Table)

	msgs := make([]models.EventMessage, 0, 1)
	s.appendMessage(&msgs, models.TopicTicketEvents, s.ticketEvent(models.EventCloseTable, ticket))
	return msgs
}

// worstLine picks the weakest non-cancelled line on a ticket. Unresolved
// lines carry a zero score and win outright; perfect matches never get
// corrected.
func worstLine(ticket *models.Ticket) int {
	idx := -1
	worst := 1.0
	for i, line := range ticket.Lines {
		if line.Status == models.LineStatusCancelled {
			continue
		}
		if line.Score < worst {
			worst = line.Score
			idx = i
		}
	}
	return idx
}

func (s *Simulator) ticketEvent(eventType string, ticket *models.Ticket) TicketEvent {
	var active int32
	for _, line := range ticket.Lines {
		if line.Status != models.LineStatusCancelled {
			active++
		}
	}
	return TicketEvent{
		BaseEvent:  NewBaseEvent(eventType, s.CurrentTime, ticket),
		Status:     ticket.Status,
		Text:       ticket.Text,
		LineCount:  active,
		TotalCents: ticket.TotalCents,
	}
}

func (s *Simulator) lineEvent(eventType string, ticket *models.Ticket, line models.TicketLine) ClassifiedLineEvent {
	return ClassifiedLineEvent{
		BaseEvent:      NewBaseEvent(eventType, s.CurrentTime, ticket),
		LineID:         line.ID,
		Text:           line.Text,
		Note:           line.Note,
		Category:       line.Category,
		MenuID:         line.MenuID,
		MenuName:       line.MenuName,
		Quantity:       line.Quantity,
		Unit:           line.Unit,
		Multiplier:     line.Multiplier,
		UnitPriceCents: line.UnitPriceCents,
		LineTotalCents: line.LineTotalCents,
		Score:          line.Score,
		Resolved:       line.Resolved(),
		LineStatus:     line.Status,
	}
}

func (s *Simulator) appendMessage(msgs *[]models.EventMessage, topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error serializing event for topic %s: %v", topic, err)
		return
	}
	*msgs = append(*msgs, models.EventMessage{Topic: topic, Message: data})
}

func (s *Simulator) schedule(minutes int, eventType string, data interface{}) {
	s.EventQueue.Enqueue(&models.Event{
		Time: s.CurrentTime.Add(time.Duration(minutes) * time.Minute),
		Type: eventType,
		Data: data,
	})
}

func (s *Simulator) waiterByID(id string) *models.Waiter {
	for _, waiter := range s.Waiters {
		if waiter.ID == id {
			return waiter
		}
	}
	return s.Waiters[0]
}

func (s *Simulator) freeTable() int {
	for table := 1; table <= s.Config.Tables; table++ {
		if _, taken := s.seated[table]; !taken {
			return table
		}
	}
	return 0
}
