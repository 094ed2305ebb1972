package tui

import (
	"strings"
	"unicode"

	"github.com/existflow/catalyst/internal/model"
)

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// identifierFor derives a short project identifier from its name:
// "Catalyst Web App" becomes "CWA", a single word its first four letters.
func identifierFor(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var id string
	if len(words) > 1 {
		for _, w := range words {
			id += string([]rune(w)[0])
		}
	} else if len(words) == 1 {
		id = words[0]
	}
	id = strings.ToUpper(id)
	if r := []rune(id); len(r) > 4 && len(words) <= 1 {
		id = string(r[:4])
	}
	if r := []rune(id); len(r) > 10 {
		id = string(r[:10])
	}
	if id == "" {
		id = "PRJ"
	}
	return id
}

// nextStatus cycles open → in_progress → blocked → done → cancelled → open
func nextStatus(s model.TicketStatus) model.TicketStatus {
	for i, v := range model.TicketStatuses {
		if v == s {
			return model.TicketStatuses[(i+1)%len(model.TicketStatuses)]
		}
	}
	return model.StatusOpen
}

// raisePriority steps up one priority, wrapping from urgent back to none
func raisePriority(p model.Priority) model.Priority {
	for i, v := range model.Priorities {
		if v == p {
			return model.Priorities[(i+1)%len(model.Priorities)]
		}
	}
	return model.PriorityNone
}

func isClosed(s model.TicketStatus) bool {
	return s == model.StatusDone || s == model.StatusCancelled
}
