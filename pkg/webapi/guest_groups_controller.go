package webapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/webapi/apimiddleware"
)

type GuestGroupsController struct {
	proxy
	countConcurrency int
}

func NewGuestGroupsController(client *backend.Client, countConcurrency int) *GuestGroupsController {
	return &GuestGroupsController{
		proxy:            proxy{client: client, resource: "guest-groups"},
		countConcurrency: countConcurrency,
	}
}

func (c *GuestGroupsController) Index(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodGet, Path: "/guest-groups"})
}

func (c *GuestGroupsController) Show(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodGet, Path: "/guest-groups/" + escapedParam(ctx, "id")})
}

// Create checks for a name before bothering the backend.
func (c *GuestGroupsController) Create(ctx echo.Context) error {
	body, contentType, err := requestBody(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unable to read request body"})
	}

	var req struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal(body, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Group name is required"})
	}

	return c.relayJSON(ctx, backend.Call{Method: http.MethodPost, Path: "/guest-groups", Body: body, ContentType: contentType})
}

func (c *GuestGroupsController) Delete(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodDelete, Path: "/guest-groups/" + escapedParam(ctx, "id")})
}

// Counts returns every group with its guest count in one reply, fanning
// out to the backend with bounded concurrency.
func (c *GuestGroupsController) Counts(ctx echo.Context) error {
	rc := apimiddleware.RequestContextFrom(ctx)

	groups, err := c.client.ListGroups(ctx.Request().Context(), rc)
	if err != nil {
		return c.typedError(ctx, err)
	}

	counts, err := c.client.GroupGuestCounts(ctx.Request().Context(), rc, groups, c.countConcurrency)
	if err != nil {
		return c.typedError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, counts)
}
