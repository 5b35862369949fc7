package site

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownTo(t *testing.T) {
	target := time.Date(2026, 6, 20, 16, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected Countdown
	}{
		{name: "Days out", now: target.Add(-(49*time.Hour + 3*time.Minute + 7*time.Second)), expected: Countdown{Days: 2, Hours: 1, Minutes: 3, Seconds: 7}},
		{name: "Sub second rounds down", now: target.Add(-1500 * time.Millisecond), expected: Countdown{Seconds: 1}},
		{name: "At the moment", now: target, expected: Countdown{Passed: true}},
		{name: "After", now: target.Add(time.Hour), expected: Countdown{Passed: true}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, CountdownTo(target, test.now))
		})
	}
}

func TestCountdownStream(t *testing.T) {
	start := time.Date(2026, 6, 20, 15, 59, 58, 0, time.UTC)
	target := start.Add(2 * time.Second)

	var calls int
	controller := NewCountdownController(target)
	controller.tick = 10 * time.Millisecond
	controller.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * time.Second)
	}

	e := echo.New()
	e.GET("/ws/countdown", controller.Stream)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/countdown", nil)
	require.NoError(t, err)
	defer ws.Close()

	var got []Countdown
	for {
		var c Countdown
		if err := ws.ReadJSON(&c); err != nil {
			break
		}
		got = append(got, c)
	}

	require.Len(t, got, 3)
	assert.Equal(t, Countdown{Seconds: 2}, got[0])
	assert.Equal(t, Countdown{Seconds: 1}, got[1])
	assert.True(t, got[2].Passed)
}

func TestCountdownRejectsForeignOrigin(t *testing.T) {
	e := echo.New()
	e.GET("/ws/countdown", NewCountdownController(time.Now().Add(time.Hour)).Stream)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	header := map[string][]string{"Origin": {"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/countdown", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 403, resp.StatusCode)
}
