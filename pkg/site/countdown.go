package site

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/clog"
)

const countdownWriteTimeout = 10 * time.Second

// Countdown is the time left until the wedding, split for display.
type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Passed  bool `json:"passed"`
}

// CountdownTo computes the countdown to target at now. Once target is
// reached every field is zero and Passed is set.
func CountdownTo(target, now time.Time) Countdown {
	left := target.Sub(now)
	if left <= 0 {
		return Countdown{Passed: true}
	}

	total := int(left / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// CountdownController pushes a fresh countdown every tick over a websocket
// until the client goes away or the wedding starts.
type CountdownController struct {
	target   time.Time
	tick     time.Duration
	now      func() time.Time
	upgrader websocket.Upgrader
}

func NewCountdownController(target time.Time) *CountdownController {
	return &CountdownController{
		target: target,
		tick:   time.Second,
		now:    time.Now,
		upgrader: websocket.Upgrader{
			CheckOrigin: sameOrigin,
		},
	}
}

func (c *CountdownController) Stream(ctx echo.Context) error {
	ws, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	defer func() {
		_ = ws.Close()
	}()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		countdown := CountdownTo(c.target, c.now())
		_ = ws.SetWriteDeadline(time.Now().Add(countdownWriteTimeout))
		if err := ws.WriteJSON(countdown); err != nil {
			clog.UsingCtx("countdown").Debugf("Countdown client gone: %s", err)
			return nil
		}

		if countdown.Passed {
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "started"), time.Now().Add(countdownWriteTimeout))
			return nil
		}

		select {
		case <-ticker.C:
		case <-closed:
			return nil
		case <-ctx.Request().Context().Done():
			return nil
		}
	}
}

// sameOrigin accepts requests without an Origin header and those whose
// Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return u.Host == r.Host
}
