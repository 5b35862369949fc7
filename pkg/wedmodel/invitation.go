package wedmodel

import "time"

type Invitation struct {
	ID         ID         `json:"id"`
	Template   string     `json:"template"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	ButtonText string     `json:"buttonText,omitempty"`
	TargetURL  string     `json:"targetUrl,omitempty"`
	IsActive   bool       `json:"isActive"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// NewInvitation is the body of the admin create form.
type NewInvitation struct {
	Template   string `json:"template" form:"template"`
	Title      string `json:"title" form:"title"`
	Message    string `json:"message" form:"message"`
	ButtonText string `json:"buttonText" form:"buttonText"`
	TargetURL  string `json:"targetUrl" form:"targetUrl"`
	IsActive   bool   `json:"isActive" form:"isActive"`
}

// Template is the canonical catalog entry. The backend's listing is
// normalized into this shape once, when it is received.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	File        string `json:"file,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Deletable   bool   `json:"deletable"`
}
