package screen

import (
	"github.com/nekogravitycat/user-management-console/internal/user"
)

// Messages shown to the operator. Each failure overwrites the previous one.
const (
	MsgFetchFailed    = "Failed to fetch users."
	MsgUserNotFound   = "User not found."
	MsgFieldsRequired = "All fields are required."
	MsgAddFailed      = "Failed to add user."
	MsgUpdateFailed   = "Failed to update user."
	MsgDeleteFailed   = "Failed to delete user."
)

// State is the view state of one screen.
// At most one row is in edit mode at a time.
type State struct {
	Users     []user.User `json:"users"`
	Query     string      `json:"query"`
	EditingID *int        `json:"editing_id,omitempty"`
	Draft     user.Draft  `json:"draft"`
	Error     string      `json:"error,omitempty"`
	Loaded    bool        `json:"loaded"`
}

// NewState returns an empty, not yet loaded state.
func NewState() *State {
	return &State{Users: []user.User{}}
}

// IsEditing reports whether the row with id is in edit mode.
func (s *State) IsEditing(id int) bool {
	return s.EditingID != nil && *s.EditingID == id
}

func (s *State) setError(msg string) {
	s.Error = msg
}

func (s *State) clearError() {
	s.Error = ""
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := *s
	c.Users = append(make([]user.User, 0, len(s.Users)), s.Users...)
	if s.EditingID != nil {
		id := *s.EditingID
		c.EditingID = &id
	}
	return &c
}
