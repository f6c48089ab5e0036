package http

import (
	"github.com/nekogravitycat/user-management-console/internal/screen"
	"github.com/nekogravitycat/user-management-console/internal/user"
)

// SearchRequest carries the search box contents. An empty query lists everyone.
type SearchRequest struct {
	Query string `form:"q" json:"query"`
}

// DraftRequest carries the add-user form. Emptiness is checked by the screen, not by binding.
type DraftRequest struct {
	FirstName  string `form:"first_name" json:"first_name"`
	LastName   string `form:"last_name" json:"last_name"`
	Email      string `form:"email" json:"email"`
	Department string `form:"department" json:"department"`
}

func (r DraftRequest) ToDraft() user.Draft {
	return user.Draft{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Department: r.Department,
	}
}

// StateResponse is the JSON shape of a screen.
type StateResponse struct {
	Rows      []screen.Row `json:"rows"`
	Query     string       `json:"query"`
	EditingID *int         `json:"editing_id"`
	Draft     DraftRequest `json:"draft"`
	Error     string       `json:"error"`
}

func NewStateResponse(st *screen.State) StateResponse {
	return StateResponse{
		Rows:      st.Rows(),
		Query:     st.Query,
		EditingID: st.EditingID,
		Draft: DraftRequest{
			FirstName:  st.Draft.FirstName,
			LastName:   st.Draft.LastName,
			Email:      st.Draft.Email,
			Department: st.Draft.Department,
		},
		Error: st.Error,
	}
}

// Page is the data rendered into index.html.
type Page struct {
	Query       string
	Error       string
	Rows        []screen.Row
	Draft       user.Draft
	ShowLogout  bool
	JournalLink bool
}
