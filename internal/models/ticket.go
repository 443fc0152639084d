package models

import "time"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketOpen:       {TicketInProgress, TicketClosed},
	TicketInProgress: {TicketOpen, TicketResolved, TicketClosed},
	TicketResolved:   {TicketInProgress, TicketClosed},
	TicketClosed:     nil,
}

func (s TicketStatus) Valid() bool {
	_, ok := ticketTransitions[s]
	return ok
}

// Terminal reports whether s admits no further changes.
func (s TicketStatus) Terminal() bool {
	return s.Valid() && len(ticketTransitions[s]) == 0
}

func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, n := range ticketTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

type Ticket struct {
	ID          string       `json:"id"`
	CreatedBy   string       `json:"created_by"`
	AssignedTo  string       `json:"assigned_to,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TicketStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
