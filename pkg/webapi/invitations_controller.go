package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/webapi/apimiddleware"
)

const TemplateSourceHeader = "X-Template-Source"

type InvitationsController struct {
	proxy
}

func NewInvitationsController(client *backend.Client) *InvitationsController {
	return &InvitationsController{proxy: proxy{client: client, resource: "invitations"}}
}

func (c *InvitationsController) Index(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodGet, Path: "/invitations"})
}

func (c *InvitationsController) Create(ctx echo.Context) error {
	return c.relayWithBody(ctx, http.MethodPost, "/invitations")
}

func (c *InvitationsController) Show(ctx echo.Context) error {
	return c.relayJSON(ctx, backend.Call{Method: http.MethodGet, Path: "/invitations/" + escapedParam(ctx, "id")})
}

// Preview relays the backend's rendered invitation as HTML.
func (c *InvitationsController) Preview(ctx echo.Context) error {
	return c.relayHTML(ctx, backend.Call{Method: http.MethodGet, Path: "/invitations/" + escapedParam(ctx, "id") + "/preview"})
}

// Templates returns the normalized catalog, or the fallback catalog when
// the backend can't provide one. The source is reported in a header.
func (c *InvitationsController) Templates(ctx echo.Context) error {
	templates, fromFallback := c.client.ListTemplates(ctx.Request().Context(), apimiddleware.RequestContextFrom(ctx))

	source := "backend"
	if fromFallback {
		source = "fallback"
	}

	ctx.Response().Header().Set(TemplateSourceHeader, source)
	return ctx.JSON(http.StatusOK, templates)
}

func (c *InvitationsController) DeleteTemplate(ctx echo.Context) error {
	if pathParam(ctx, "filename") == "" {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Template file name is required"})
	}

	return c.relayJSON(ctx, backend.Call{
		Method: http.MethodDelete,
		Path:   "/invitations/template/" + escapedParam(ctx, "filename"),
	})
}

// Upload relays a multipart template upload untouched.
func (c *InvitationsController) Upload(ctx echo.Context) error {
	return c.relayWithBody(ctx, http.MethodPost, "/invitations/upload")
}

func (c *InvitationsController) Image(ctx echo.Context) error {
	return c.relayImage(ctx, "/invitations/image/"+escapedParam(ctx, "filename"))
}
