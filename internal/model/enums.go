package model

import (
	"encoding/json"
	"fmt"
)

// TicketStatus is the workflow state of a ticket
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusBlocked    TicketStatus = "blocked"
	StatusDone       TicketStatus = "done"
	StatusCancelled  TicketStatus = "cancelled"
)

// TicketStatuses lists every valid ticket status in workflow order
var TicketStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusBlocked, StatusDone, StatusCancelled}

// Valid reports whether s is a known status
func (s TicketStatus) Valid() bool {
	for _, v := range TicketStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s *TicketStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(s), "status", func(v string) bool { return TicketStatus(v).Valid() })
}

// Priority of a ticket. The zero value is not valid; use PriorityNone.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every valid priority from lowest to highest
var Priorities = []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(p), "priority", func(v string) bool { return Priority(v).Valid() })
}

// CycleStatus is the lifecycle state of a cycle
type CycleStatus string

const (
	CyclePlanned   CycleStatus = "planned"
	CycleActive    CycleStatus = "active"
	CycleCompleted CycleStatus = "completed"
)

// Valid reports whether s is a known cycle status
func (s CycleStatus) Valid() bool {
	switch s {
	case CyclePlanned, CycleActive, CycleCompleted:
		return true
	}
	return false
}

func (s *CycleStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(s), "cycle status", func(v string) bool { return CycleStatus(v).Valid() })
}

func unmarshalEnum(b []byte, dst *string, kind string, valid func(string) bool) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%s must be a string: %w", kind, err)
	}
	if !valid(v) {
		return fmt.Errorf("invalid %s %q", kind, v)
	}
	*dst = v
	return nil
}
