package activity

import (
	"errors"
	"time"
)

var (
	ErrJournalUnavailable = errors.New("activity journal unavailable")
	ErrInvalidFilter      = errors.New("invalid activity filter")
)

// Action names a remote operation issued from the screen.
type Action string

const (
	ActionFetchAll Action = "fetch_all"
	ActionSearch   Action = "search"
	ActionAdd      Action = "add"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionFetchAll, ActionSearch, ActionAdd, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
)

// Entry is one journaled remote operation.
type Entry struct {
	ID        int64
	SessionID string
	Action    Action
	Target    string // user id or search query, empty for fetch_all and add
	Outcome   Outcome
	Message   string // screen error message on failure
	CreatedAt time.Time
}

// Filter defines parameters for listing entries.
type Filter struct {
	Action    Action
	SessionID string

	Page     int
	PageSize int
}
