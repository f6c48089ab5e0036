package user

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrRemoteFailed = errors.New("remote request failed")
)

// placeholder is shown for name parts and department when the remote record lacks them.
const placeholder = "N/A"

// User is a snapshot of a remote-owned user record.
type User struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company Company `json:"company"`
}

// UnmarshalJSON reads the record optimistically: a field of the wrong shape
// is left at its zero value instead of failing the whole record.
func (u *User) UnmarshalJSON(data []byte) error {
	*u = User{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// null, arrays and scalars carry no usable fields.
		return nil
	}

	u.ID = lenientInt(fields["id"])
	_ = json.Unmarshal(fields["name"], &u.Name)
	_ = json.Unmarshal(fields["email"], &u.Email)

	var company map[string]json.RawMessage
	if json.Unmarshal(fields["company"], &company) == nil {
		_ = json.Unmarshal(company["name"], &u.Company.Name)
	}
	return nil
}

func lenientInt(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return int(f)
}

// Company holds the employer name, rendered as the user's department.
type Company struct {
	Name string `json:"name"`
}

// Draft is the locally edited new-user form.
type Draft struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Complete reports whether every field of the draft is non-empty.
func (d Draft) Complete() bool {
	return d.FirstName != "" && d.LastName != "" && d.Email != "" && d.Department != ""
}

// FullName joins first and last name the way the remote stores it.
func (d Draft) FullName() string {
	return d.FirstName + " " + d.LastName
}

// FirstName returns the first space-separated token of the name, or "N/A".
func (u User) FirstName() string {
	return orPlaceholder(u.firstName(), placeholder)
}

// LastName returns the second space-separated token of the name, or "N/A"
// when the name has no space. "John " and "John  Doe" yield "".
func (u User) LastName() string {
	if !strings.Contains(u.Name, " ") {
		return placeholder
	}
	return u.lastName()
}

// Department returns the company name, or "N/A".
func (u User) Department() string {
	return orPlaceholder(u.Company.Name, placeholder)
}

// EditDefaults returns the values pre-filled into the inline edit inputs.
// Missing parts default to the empty string rather than "N/A".
func (u User) EditDefaults() (first, last, email, department string) {
	return u.firstName(), u.lastName(), u.Email, u.Company.Name
}

func (u User) firstName() string {
	if u.Name == "" {
		return ""
	}
	return strings.Split(u.Name, " ")[0]
}

func (u User) lastName() string {
	if !strings.Contains(u.Name, " ") {
		return ""
	}
	return strings.Split(u.Name, " ")[1]
}

func orPlaceholder(s, p string) string {
	if s == "" {
		return p
	}
	return s
}
