package domain

// FormResponse is one submission against a form. ResponseData is keyed by
// field id; keys of fields removed after submission are kept as they are.
type FormResponse struct {
	ID           string         `json:"id"`
	FormID       string         `json:"formId"`
	ResponseData map[string]any `json:"responseData"`
	CreatedAt    string         `json:"createdAt"`
	SubmitterID  string         `json:"submitterId,omitempty"`
}

// User is an account that owns forms.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// Session is a bearer token bound to a user until ExpiresAt.
type Session struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
	ExpiresAt string `json:"expiresAt"`
}
