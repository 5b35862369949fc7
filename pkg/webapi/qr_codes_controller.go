package webapi

import (
	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/backend"
)

type QRCodesController struct {
	proxy
}

func NewQRCodesController(client *backend.Client) *QRCodesController {
	return &QRCodesController{proxy: proxy{client: client, resource: "qr-codes"}}
}

func (c *QRCodesController) GuestImage(ctx echo.Context) error {
	return c.relayImage(ctx, "/qr-codes/guest/"+escapedParam(ctx, "id")+"/image")
}
