package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/backend"
)

type AuthController struct {
	proxy
}

func NewAuthController(client *backend.Client) *AuthController {
	return &AuthController{proxy: proxy{client: client, resource: "auth"}}
}

// Login relays credentials; storing the returned token is the login
// page's job.
func (c *AuthController) Login(ctx echo.Context) error {
	return c.relayWithBody(ctx, http.MethodPost, "/auth/login")
}
