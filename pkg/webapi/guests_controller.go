package webapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/decoder"
	"github.com/wedsite/wedsite/pkg/wedmodel"
)

type GuestsController struct {
	proxy
}

func NewGuestsController(client *backend.Client) *GuestsController {
	return &GuestsController{proxy: proxy{client: client, resource: "guests"}}
}

// Index relays the paginated list, forwarding only the filters the backend
// understands.
func (c *GuestsController) Index(ctx echo.Context) error {
	query := url.Values{}
	for _, key := range []string{"page", "limit", "groupId", "search"} {
		if v := ctx.QueryParam(key); v != "" {
			query.Set(key, v)
		}
	}

	return c.relayJSON(ctx, backend.Call{Method: http.MethodGet, Path: "/guests", Query: query})
}

func (c *GuestsController) Create(ctx echo.Context) error {
	return c.relayWithBody(ctx, http.MethodPost, "/guests")
}

func (c *GuestsController) AdminIndex(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodGet, Path: "/guests/admin", Query: ctx.QueryParams()})
}

// All relays the unpaginated list with a displayName added to every guest.
func (c *GuestsController) All(ctx echo.Context) error {
	resp, err := c.do(ctx, backend.Call{Method: http.MethodGet, Path: "/guests/all"})
	if err != nil {
		return c.unreachable(ctx, err)
	}

	if !resp.OK() {
		return c.backendError(ctx, resp)
	}

	guests, err := WithDisplayNames(resp.Body)
	if err != nil {
		c.logger(ctx).Errorf("Unable to reshape guest list: %s", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: backend.GenericErrorMessage})
	}

	return ctx.JSON(http.StatusOK, guests)
}

func (c *GuestsController) Stats(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodGet, Path: "/guests/stats"})
}

func (c *GuestsController) ExtendedStats(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodGet, Path: "/guests/stats/extended"})
}

func (c *GuestsController) Delete(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodDelete, Path: "/guests/" + escapedParam(ctx, "id")})
}

// WithDisplayNames decodes a guest list and returns it with each entry's
// computed display name added, keeping every field the backend sent.
func WithDisplayNames(body []byte) ([]map[string]any, error) {
	entries, err := decoder.DecodeList[json.RawMessage](body, "guests", "data")
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		var (
			raw   map[string]any
			guest wedmodel.Guest
		)

		if err := json.Unmarshal(entry, &raw); err != nil {
			return nil, err
		}

		if raw == nil {
			return nil, fmt.Errorf("guest entry %d is not an object", len(out))
		}

		if err := json.Unmarshal(entry, &guest); err != nil {
			return nil, err
		}

		raw["displayName"] = guest.DisplayName()
		out = append(out, raw)
	}

	return out, nil
}
