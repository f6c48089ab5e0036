package http

// LoginRequest is the operator login payload, accepted as a form or JSON.
type LoginRequest struct {
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginPage is the data rendered into login.html.
type LoginPage struct {
	Error string
}
