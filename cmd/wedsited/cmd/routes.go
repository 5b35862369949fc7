package cmd

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wedsite/wedsite/pkg/adminauth"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/config"
	"github.com/wedsite/wedsite/pkg/site"
	"github.com/wedsite/wedsite/pkg/webapi"
	"github.com/wedsite/wedsite/pkg/webapi/apimiddleware"
)

type RouteOpts struct {
	client   *backend.Client
	settings config.Settings
	gallery  *site.Gallery
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	setupAPIRoutes(e, opts)
	setupAdminRoutes(e, opts)
	setupPublicRoutes(e, opts)
	setupStaticFiles(e, opts)
}

// setupAPIRoutes registers the same-origin routes mirroring the backend.
func setupAPIRoutes(e *echo.Echo, opts RouteOpts) {
	g := e.Group("/api", apimiddleware.BearerToken(apimiddleware.BearerConfig{CookieFallback: true}))

	guestsController := webapi.NewGuestsController(opts.client)
	g.GET("/guests", guestsController.Index)
	g.POST("/guests", guestsController.Create)
	g.GET("/guests/admin", guestsController.AdminIndex)
	g.GET("/guests/all", guestsController.All)
	g.GET("/guests/stats", guestsController.Stats)
	g.GET("/guests/stats/extended", guestsController.ExtendedStats)
	g.DELETE("/guests/:id", guestsController.Delete)

	guestGroupsController := webapi.NewGuestGroupsController(opts.client, opts.settings.GroupCountConcurrency)
	g.GET("/guest-groups", guestGroupsController.Index)
	g.POST("/guest-groups", guestGroupsController.Create)
	g.GET("/guest-groups/counts", guestGroupsController.Counts)
	g.GET("/guest-groups/:id", guestGroupsController.Show)
	g.DELETE("/guest-groups/:id", guestGroupsController.Delete)

	invitationsController := webapi.NewInvitationsController(opts.client)
	g.GET("/invitations", invitationsController.Index)
	g.POST("/invitations", invitationsController.Create)
	g.GET("/invitations/templates", invitationsController.Templates)
	g.DELETE("/invitations/template/:filename", invitationsController.DeleteTemplate)
	g.POST("/invitations/upload", invitationsController.Upload)
	g.GET("/invitations/image/:filename", invitationsController.Image)
	g.GET("/invitations/:id", invitationsController.Show)
	g.GET("/invitations/:id/preview", invitationsController.Preview)

	authController := webapi.NewAuthController(opts.client)
	g.POST("/auth/login", authController.Login)

	qrCodesController := webapi.NewQRCodesController(opts.client)
	g.GET("/qr-codes/guest/:id/image", qrCodesController.GuestImage)

	logController := webapi.NewLogController()
	g.GET("/admin/logging", logController.ShowCurrentLogging, apimiddleware.RequireToken(opts.client))
	g.POST("/admin/logging", logController.SetLogging, apimiddleware.RequireToken(opts.client))
}

func setupAdminRoutes(e *echo.Echo, opts RouteOpts) {
	g := e.Group("/admin", apimiddleware.AdminSession(apimiddleware.AdminSessionConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == adminauth.LoginPath || c.Path() == "/admin/logout"
		},
	}))

	adminController := site.NewAdminController(opts.client, opts.settings.GroupCountConcurrency)
	g.GET("/login", adminController.LoginForm)
	g.POST("/login", adminController.Login)
	g.GET("/logout", adminController.Logout)
	g.POST("/logout", adminController.Logout)

	g.GET("", adminController.Dashboard)
	g.GET("/guests", adminController.Guests)
	g.POST("/guests/:id/delete", adminController.DeleteGuest)
	g.GET("/groups", adminController.Groups)
	g.POST("/groups", adminController.CreateGroup)
	g.POST("/groups/:id/delete", adminController.DeleteGroup)
	g.GET("/invitations", adminController.Invitations)
	g.POST("/invitations", adminController.CreateInvitation)
	g.POST("/invitations/upload", adminController.UploadTemplate)
	g.POST("/invitations/template/:filename/delete", adminController.DeleteTemplate)
}

func setupPublicRoutes(e *echo.Echo, opts RouteOpts) {
	publicController := site.NewPublicController(opts.client, opts.gallery, opts.settings.WeddingDate)
	e.GET("/", publicController.Home)
	e.GET("/gallery", publicController.Gallery)
	e.GET("/program", publicController.Program)
	e.GET("/wishlist", publicController.Wishlist)
	e.GET("/party", publicController.Party)
	e.GET("/invitation/:id", publicController.Invitation, apimiddleware.BearerToken(apimiddleware.BearerConfig{}))

	countdownController := site.NewCountdownController(opts.settings.WeddingDate)
	e.GET("/ws/countdown", countdownController.Stream)
}

// setupStaticFiles serves images, gallery media and css from the static
// directory for any path no route claimed.
func setupStaticFiles(e *echo.Echo, opts RouteOpts) {
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root: opts.settings.StaticDir,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/admin") || strings.HasPrefix(p, "/ws/")
		},
	}))
}
