package screen

// Row is the display form of one table row.
type Row struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Editing    bool   `json:"editing"`
}

// Rows renders the snapshot for display. Rows in edit mode carry the
// input defaults (empty instead of "N/A").
func (s *State) Rows() []Row {
	rows := make([]Row, 0, len(s.Users))
	for _, u := range s.Users {
		if s.IsEditing(u.ID) {
			first, last, email, dept := u.EditDefaults()
			rows = append(rows, Row{
				ID:         u.ID,
				FirstName:  first,
				LastName:   last,
				Email:      email,
				Department: dept,
				Editing:    true,
			})
			continue
		}
		rows = append(rows, Row{
			ID:         u.ID,
			FirstName:  u.FirstName(),
			LastName:   u.LastName(),
			Email:      u.Email,
			Department: u.Department(),
		})
	}
	return rows
}
