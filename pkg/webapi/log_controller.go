package webapi

import (
	"net/http"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/wedsite/wedsite/pkg/clog"
)

// LogController lets an admin change the server's log level and switch
// output between stdout and stderr at runtime.
type LogController struct {
	mu               sync.Mutex
	CurrentLogLevel  string `json:"current_log_level"`
	CurrentLogOutput string `json:"current_log_output"`
}

func NewLogController() *LogController {
	return &LogController{
		CurrentLogLevel:  clog.CurrentLevel().String(),
		CurrentLogOutput: "stdout",
	}
}

func (c *LogController) SetLogging(ctx echo.Context) error {
	var req struct {
		LogLevel  string `json:"log_level"`
		LogOutput string `json:"log_output"`
	}

	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	oldLevel := c.CurrentLogLevel
	if req.LogLevel != "" {
		if err := c.setLoggingLevel(req.LogLevel); err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
	}

	if req.LogOutput != "" {
		if err := c.setLoggingOutput(req.LogOutput); err != nil {
			// Both changes apply or neither does.
			_ = c.setLoggingLevel(oldLevel)
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) setLoggingLevel(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", logLevel)
	}

	log.SetLevel(level)
	c.CurrentLogLevel = level.String()

	return nil
}

func (c *LogController) setLoggingOutput(logOutput string) error {
	switch logOutput {
	case "stdout":
		clog.SetOutput(os.Stdout)
	case "stderr":
		clog.SetOutput(os.Stderr)
	default:
		return errors.Errorf("unsupported log output %s, use stdout or stderr", logOutput)
	}

	c.CurrentLogOutput = logOutput
	return nil
}

func (c *LogController) ShowCurrentLogging(ctx echo.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ctx.JSON(http.StatusOK, c)
}
