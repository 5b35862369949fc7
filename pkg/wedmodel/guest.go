package wedmodel

import (
	"strings"
	"time"
)

type Guest struct {
	ID          ID          `json:"id"`
	FirstName   string      `json:"firstName,omitempty"`
	LastName    string      `json:"lastName,omitempty"`
	Name        string      `json:"name,omitempty"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	IsAttending *bool       `json:"isAttending,omitempty"`
	CheckedIn   bool        `json:"checkedIn"`
	CheckedInAt *time.Time  `json:"checkedInAt,omitempty"`
	PlusOnes    int         `json:"plusOnes,omitempty"`
	GroupID     *ID         `json:"groupId,omitempty"`
	Group       *GuestGroup `json:"group,omitempty"`
	QRCodeID    *ID         `json:"qrCodeId,omitempty"`
}

// DisplayName is "First Last" when either part is known, else the legacy
// single name field, else the email address.
func (g Guest) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(g.FirstName) + " " + strings.TrimSpace(g.LastName))
	switch {
	case full != "":
		return full
	case strings.TrimSpace(g.Name) != "":
		return strings.TrimSpace(g.Name)
	default:
		return g.Email
	}
}

func (g Guest) AttendanceLabel() string {
	switch {
	case g.IsAttending == nil:
		return "Pending"
	case *g.IsAttending:
		return "Attending"
	default:
		return "Declined"
	}
}

func (g Guest) InGroup(groupID ID) bool {
	if g.GroupID != nil && *g.GroupID == groupID {
		return true
	}

	return g.Group != nil && g.Group.ID == groupID
}

// GuestPage is one page of the server side paginated guest list.
type GuestPage struct {
	Guests     []Guest `json:"guests"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
}

// GuestQuery carries the list filters forwarded to the backend.
type GuestQuery struct {
	Page    int
	Limit   int
	GroupID string
	Search  string
}

// TotalPages is ceil(total/limit), and never less than 1. A non-positive
// limit means everything fits on one page.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}
