package wedmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		guest    Guest
		expected string
	}{
		{name: "First and last", guest: Guest{FirstName: "Ana", LastName: "Levi"}, expected: "Ana Levi"},
		{name: "Only first", guest: Guest{FirstName: " Ana "}, expected: "Ana"},
		{name: "Legacy name", guest: Guest{Name: "Dan Cohen"}, expected: "Dan Cohen"},
		{name: "Email fallback", guest: Guest{Email: "dan@example.com"}, expected: "dan@example.com"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.guest.DisplayName())
		})
	}
}

func TestIDDecodesStringsAndNumbers(t *testing.T) {
	var g Guest
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "groupId": "g-7"}`), &g))
	assert.Equal(t, ID("42"), g.ID)
	require.NotNil(t, g.GroupID)
	assert.True(t, g.InGroup("g-7"))
	assert.False(t, g.InGroup("42"))

	var grp GuestGroup
	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc", "name": "Family"}`), &grp))
	assert.Equal(t, ID("abc"), grp.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &grp))
}

func TestAttendanceLabel(t *testing.T) {
	yes, no := true, false
	assert.Equal(t, "Pending", Guest{}.AttendanceLabel())
	assert.Equal(t, "Attending", Guest{IsAttending: &yes}.AttendanceLabel())
	assert.Equal(t, "Declined", Guest{IsAttending: &no}.AttendanceLabel())
}
