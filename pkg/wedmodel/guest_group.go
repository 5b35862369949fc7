package wedmodel

type GuestGroup struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GuestGroupCount pairs a group with the number of guests assigned to it.
// The count is computed in this layer and never sent back to the backend.
type GuestGroupCount struct {
	GuestGroup
	GuestCount int    `json:"guestCount"`
	Error      string `json:"error,omitempty"`
}
