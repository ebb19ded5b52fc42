package model

// RegisterPayload is the request body for account registration.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
}

// LoginPayload is the request body for credential login.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordPayload is the request body for a password change.
type ChangePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CreateArticlePayload is the request body for article creation.
type CreateArticlePayload struct {
	Title string   `json:"title"`
	Slug  string   `json:"slug"`
	Body  string   `json:"body"`
	Score *float64 `json:"score,omitempty"`
}

// CreateCommentPayload is the request body for commenting on an article.
type CreateCommentPayload struct {
	Body string `json:"body"`
}
