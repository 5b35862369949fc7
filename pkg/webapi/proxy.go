package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/clog"
	"github.com/wedsite/wedsite/pkg/webapi/apimiddleware"
)

const (
	// ImageTimeout bounds binary image fetches; other calls use the
	// client's default.
	ImageTimeout      = 10 * time.Second
	ImageCacheControl = "public, max-age=31536000, immutable"
)

// ErrorResponse is the only error shape the proxy routes return.
type ErrorResponse struct {
	Error string `json:"error"`
}

// proxy holds what every resource controller needs to relay a request.
type proxy struct {
	client   *backend.Client
	resource string
}

func (p proxy) logger(c echo.Context) *log.Entry {
	return clog.UsingCtx(p.resource).WithField("request_id", apimiddleware.RequestContextFrom(c).RequestID)
}

// do sends call with the caller's RequestContext and the request's context.
func (p proxy) do(c echo.Context, call backend.Call) (*backend.Response, error) {
	return p.client.Do(c.Request().Context(), apimiddleware.RequestContextFrom(c), call)
}

// relayJSON forwards call and passes a JSON reply through unchanged.
func (p proxy) relayJSON(c echo.Context, call backend.Call) error {
	resp, err := p.do(c, call)
	if err != nil {
		return p.unreachable(c, err)
	}

	if !resp.OK() {
		return p.backendError(c, resp)
	}

	return p.jsonBody(c, resp.Status, resp.Body)
}

// relayHTML forwards call and passes an HTML reply through as text.
func (p proxy) relayHTML(c echo.Context, call backend.Call) error {
	resp, err := p.do(c, call)
	if err != nil {
		return p.unreachable(c, err)
	}

	if !resp.OK() {
		return p.backendError(c, resp)
	}

	return c.HTMLBlob(resp.Status, resp.Body)
}

// relayImage fetches a binary image. Failures never carry an image body and
// are marked uncacheable; successes are cached for a year.
func (p proxy) relayImage(c echo.Context, path string) error {
	resp, err := p.do(c, backend.Call{Method: http.MethodGet, Path: path, Timeout: ImageTimeout})
	if err != nil {
		p.logger(c).Errorf("Image fetch %s failed: %s", path, err)
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch image"})
	}

	if !resp.OK() {
		p.logger(c).Warnf("Image fetch %s: backend status %d", path, resp.Status)
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.JSON(resp.Status, ErrorResponse{Error: fmt.Sprintf("Backend responded with status: %d", resp.Status)})
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(resp.Body)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, ImageCacheControl)
	return c.Blob(http.StatusOK, contentType, resp.Body)
}

func (p proxy) unreachable(c echo.Context, err error) error {
	p.logger(c).Errorf("Backend unreachable: %s", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: backend.GenericErrorMessage})
}

func (p proxy) backendError(c echo.Context, resp *backend.Response) error {
	msg := backend.ErrorMessage(resp.Body, backend.GenericErrorMessage)
	p.logger(c).Warnf("Backend status %d: %s", resp.Status, msg)
	return c.JSON(resp.Status, ErrorResponse{Error: msg})
}

// typedError reports an error from the typed backend API.
func (p proxy) typedError(c echo.Context, err error) error {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		p.logger(c).Warnf("Backend status %d: %s", statusErr.Status, statusErr.Message)
		return c.JSON(statusErr.Status, ErrorResponse{Error: statusErr.Message})
	}

	p.logger(c).Errorf("Backend call failed: %s", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: backend.GenericErrorMessage})
}

func (p proxy) jsonBody(c echo.Context, status int, body []byte) error {
	if len(body) == 0 {
		return c.NoContent(status)
	}

	if !json.Valid(body) {
		p.logger(c).Errorf("Backend sent malformed JSON (%d bytes)", len(body))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: backend.GenericErrorMessage})
	}

	return c.JSONBlob(status, body)
}

// requestBody reads the inbound body for forwarding along with its
// content type, so multipart uploads keep their boundary.
func requestBody(c echo.Context) ([]byte, string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, "", err
	}

	return body, c.Request().Header.Get(echo.HeaderContentType), nil
}

// pathParam returns the unescaped value of a route parameter.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}

	return raw
}

func escapedParam(c echo.Context, name string) string {
	return url.PathEscape(pathParam(c, name))
}

// relayWithBody forwards the inbound body to path with method.
func (p proxy) relayWithBody(c echo.Context, method, path string) error {
	body, contentType, err := requestBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unable to read request body"})
	}

	return p.relayJSON(c, backend.Call{Method: method, Path: path, Body: body, ContentType: contentType})
}
