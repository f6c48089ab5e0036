package http

import (
	"time"

	"github.com/nekogravitycat/user-management-console/internal/activity"
	"github.com/nekogravitycat/user-management-console/internal/pkg/request"
)

// ListActivityRequest defines query parameters for listing journal entries.
type ListActivityRequest struct {
	request.ListParams
	Action string `form:"action" binding:"omitempty,oneof=fetch_all search add update delete"`
	Mine   bool   `form:"mine"`
}

type EntryResponse struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewEntryResponse(e *activity.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		SessionID: e.SessionID,
		Action:    string(e.Action),
		Target:    e.Target,
		Outcome:   string(e.Outcome),
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}
