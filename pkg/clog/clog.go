package clog

import (
	"io"
	"os"
	"sync"

	"github.com/apex/log"
)

var (
	mu      sync.Mutex
	handler = NewHandler(os.Stdout)
)

func init() {
	log.SetHandler(handler)
}

// Setup points the package level apex logger at w using the text Handler.
func Setup(w io.WriteCloser, level string) error {
	if err := SetLevelFromString(level); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	handler.SetOutput(w)

	return nil
}

func SetLevelFromString(s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	log.SetLevel(level)
	return nil
}

func CurrentLevel() log.Level {
	if l, ok := log.Log.(*log.Logger); ok {
		return l.Level
	}

	return log.InfoLevel
}

// SetOutput replaces the log destination and returns the handler now in use.
func SetOutput(w io.WriteCloser) *Handler {
	mu.Lock()
	defer mu.Unlock()

	handler.SetOutput(w)
	return handler
}

// UsingCtx returns an entry tagged with the resource a log line concerns,
// e.g. "guests", "invitations" or "backend".
func UsingCtx(ctx string) *log.Entry {
	return log.WithField("ctx", ctx)
}
