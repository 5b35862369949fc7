package site

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/adminauth"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/clog"
	"github.com/wedsite/wedsite/pkg/webapi/apimiddleware"
	"github.com/wedsite/wedsite/pkg/wedmodel"
	"golang.org/x/sync/errgroup"
)

// AdminController serves the server rendered admin pages. Every page load
// refetches from the backend; every mutation redirects back to a page that
// refetches.
type AdminController struct {
	client           *backend.Client
	countConcurrency int
}

func NewAdminController(client *backend.Client, countConcurrency int) *AdminController {
	return &AdminController{client: client, countConcurrency: countConcurrency}
}

func (c *AdminController) logger(ctx echo.Context) *log.Entry {
	return clog.UsingCtx("admin").WithField("request_id", apimiddleware.RequestContextFrom(ctx).RequestID)
}

type loginData struct {
	From     string
	Username string
}

func (c *AdminController) LoginForm(ctx echo.Context) error {
	page := Page{Title: "Admin Login", Data: loginData{From: ctx.QueryParam("from")}}

	switch {
	case ctx.QueryParam("expired") == "true":
		page.Notice = "Your session has expired. Please log in again."
	case ctx.QueryParam("invalid") == "true":
		page.Notice = "Your session is invalid. Please log in again."
	}

	return ctx.Render(http.StatusOK, "admin_login", page)
}

// Login exchanges the form's credentials for a token, stores it in the
// admin_token cookie and sends the browser on to where it came from.
func (c *AdminController) Login(ctx echo.Context) error {
	var creds wedmodel.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return ctx.Render(http.StatusBadRequest, "admin_login", Page{Title: "Admin Login", Error: "Invalid login form"})
	}

	from := ctx.FormValue("from")
	data := loginData{From: from, Username: creds.Username}

	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return ctx.Render(http.StatusBadRequest, "admin_login",
			Page{Title: "Admin Login", Error: "Username and password are required", Data: data})
	}

	rc := backend.Anonymous()
	rc.RequestID = apimiddleware.RequestContextFrom(ctx).RequestID

	result, err := c.client.Login(ctx.Request().Context(), rc, creds)
	if err != nil {
		status, msg := http.StatusInternalServerError, backend.GenericErrorMessage

		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			status, msg = statusErr.Status, statusErr.Message
		} else {
			c.logger(ctx).Errorf("Login failed: %s", err)
		}

		return ctx.Render(status, "admin_login", Page{Title: "Admin Login", Error: msg, Data: data})
	}

	ctx.SetCookie(adminauth.NewCookie(result.Token))
	ctx.SetCookie(expiredCookie(adminauth.WarnedCookieName, "/admin"))

	return ctx.Redirect(http.StatusSeeOther, adminauth.SafeRedirect(from))
}

func (c *AdminController) Logout(ctx echo.Context) error {
	ctx.SetCookie(adminauth.ClearCookie())
	ctx.SetCookie(expiredCookie(adminauth.WarnedCookieName, "/admin"))
	return ctx.Redirect(http.StatusSeeOther, adminauth.LoginPath)
}

type dashboardData struct {
	Guests      wedmodel.GuestPage
	Groups      []wedmodel.GuestGroup
	GuestsError string
	GroupsError string
}

// Dashboard loads the first guest page and the group list concurrently.
// Each half reports its own failure.
func (c *AdminController) Dashboard(ctx echo.Context) error {
	rc := apimiddleware.RequestContextFrom(ctx)
	var data dashboardData

	g, gctx := errgroup.WithContext(ctx.Request().Context())
	g.Go(func() error {
		page, err := c.client.ListGuests(gctx, rc, wedmodel.GuestQuery{Page: 1, Limit: DefaultPageLimit})
		if err != nil {
			data.GuestsError = c.message(ctx, err)
			return unauthorized(err)
		}
		data.Guests = page
		return nil
	})

	g.Go(func() error {
		groups, err := c.client.ListGroups(gctx, rc)
		if err != nil {
			data.GroupsError = c.message(ctx, err)
			return unauthorized(err)
		}
		data.Groups = groups
		return nil
	})

	if err := g.Wait(); err != nil {
		return c.sessionRejected(ctx)
	}

	return c.render(ctx, "admin_dashboard", Page{Title: "Dashboard", Nav: "dashboard", Data: data})
}

type guestsData struct {
	Guests  []wedmodel.Guest
	Pager   Pager
	Groups  []wedmodel.GuestGroup
	GroupID string
	Search  string
}

// PageURL is the guests page address for page p with the current filters.
func (d guestsData) PageURL(p int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p))
	q.Set("limit", strconv.Itoa(d.Pager.Limit))
	if d.GroupID != "" {
		q.Set("groupId", d.GroupID)
	}
	if d.Search != "" {
		q.Set("search", d.Search)
	}

	return "/admin/guests?" + q.Encode()
}

func (c *AdminController) Guests(ctx echo.Context) error {
	rc := apimiddleware.RequestContextFrom(ctx)

	q := wedmodel.GuestQuery{
		Page:    queryInt(ctx, "page", 1),
		Limit:   queryInt(ctx, "limit", DefaultPageLimit),
		GroupID: ctx.QueryParam("groupId"),
		Search:  strings.TrimSpace(ctx.QueryParam("search")),
	}

	if q.Page < 1 {
		q.Page = 1
	}

	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}

	page := Page{Title: "Guests", Nav: "guests", Error: ctx.QueryParam("error")}
	data := guestsData{GroupID: q.GroupID, Search: q.Search, Pager: NewPager(q.Page, q.Limit, 0)}

	guests, err := c.client.ListGuests(ctx.Request().Context(), rc, q)
	if err != nil {
		if unauthorized(err) != nil {
			return c.sessionRejected(ctx)
		}
		page.Error = c.message(ctx, err)
	} else {
		data.Guests = guests.Guests
		data.Pager = NewPager(q.Page, q.Limit, guests.Total)
		if q.Page > data.Pager.TotalPages {
			return ctx.Redirect(http.StatusSeeOther, data.PageURL(data.Pager.TotalPages))
		}
	}

	if groups, err := c.client.ListGroups(ctx.Request().Context(), rc); err == nil {
		data.Groups = groups
	}

	page.Data = data
	return c.render(ctx, "admin_guests", page)
}

func (c *AdminController) DeleteGuest(ctx echo.Context) error {
	err := c.client.DeleteGuest(ctx.Request().Context(), apimiddleware.RequestContextFrom(ctx), unescapedParam(ctx, "id"))
	return c.afterMutation(ctx, "/admin/guests", "error", err)
}

type groupsData struct {
	Groups []wedmodel.GuestGroupCount
}

// Groups lists every group with its guest count.
func (c *AdminController) Groups(ctx echo.Context) error {
	rc := apimiddleware.RequestContextFrom(ctx)
	page := Page{Title: "Guest Groups", Nav: "groups", Error: ctx.QueryParam("error")}

	groups, err := c.client.ListGroups(ctx.Request().Context(), rc)
	if err != nil {
		if unauthorized(err) != nil {
			return c.sessionRejected(ctx)
		}
		page.Error = c.message(ctx, err)
		return c.render(ctx, "admin_groups", page)
	}

	counts, err := c.client.GroupGuestCounts(ctx.Request().Context(), rc, groups, c.countConcurrency)
	if err != nil {
		page.Error = c.message(ctx, err)
	}

	page.Data = groupsData{Groups: counts}
	return c.render(ctx, "admin_groups", page)
}

func (c *AdminController) CreateGroup(ctx echo.Context) error {
	name := strings.TrimSpace(ctx.FormValue("name"))
	if name == "" {
		return ctx.Redirect(http.StatusSeeOther, withQuery("/admin/groups", "error", "Group name is required"))
	}

	_, err := c.client.CreateGroup(ctx.Request().Context(), apimiddleware.RequestContextFrom(ctx), name)
	return c.afterMutation(ctx, "/admin/groups", "error", err)
}

func (c *AdminController) DeleteGroup(ctx echo.Context) error {
	err := c.client.DeleteGroup(ctx.Request().Context(), apimiddleware.RequestContextFrom(ctx), unescapedParam(ctx, "id"))
	return c.afterMutation(ctx, "/admin/groups", "error", err)
}

type invitationsData struct {
	Invitations   []wedmodel.Invitation
	Templates     []wedmodel.Template
	FromFallback  bool
	UploadError   string
	DeleteError   string
	TemplateError string
}

// Invitations shows the invitation list, the create form and the template
// catalog. Upload and delete failures are shown apart from the page error.
func (c *AdminController) Invitations(ctx echo.Context) error {
	rc := apimiddleware.RequestContextFrom(ctx)
	page := Page{Title: "Invitations", Nav: "invitations", Error: ctx.QueryParam("error")}
	data := invitationsData{
		UploadError: ctx.QueryParam("uploadError"),
		DeleteError: ctx.QueryParam("deleteError"),
	}

	invitations, err := c.client.ListInvitations(ctx.Request().Context(), rc)
	if err != nil {
		if unauthorized(err) != nil {
			return c.sessionRejected(ctx)
		}
		page.Error = c.message(ctx, err)
	}
	data.Invitations = invitations

	data.Templates, data.FromFallback = c.client.ListTemplates(ctx.Request().Context(), rc)
	if data.FromFallback {
		data.TemplateError = "Template catalog unavailable, showing the default templates."
	}

	page.Data = data
	return c.render(ctx, "admin_invitations", page)
}

func (c *AdminController) CreateInvitation(ctx echo.Context) error {
	var inv wedmodel.NewInvitation
	if err := ctx.Bind(&inv); err != nil {
		return ctx.Redirect(http.StatusSeeOther, withQuery("/admin/invitations", "error", "Invalid invitation form"))
	}

	if inv.Template == "" || strings.TrimSpace(inv.Title) == "" {
		return ctx.Redirect(http.StatusSeeOther, withQuery("/admin/invitations", "error", "Template and title are required"))
	}

	_, err := c.client.CreateInvitation(ctx.Request().Context(), apimiddleware.RequestContextFrom(ctx), inv)
	return c.afterMutation(ctx, "/admin/invitations", "error", err)
}

// UploadTemplate forwards the multipart upload as is.
func (c *AdminController) UploadTemplate(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil || len(body) == 0 {
		return ctx.Redirect(http.StatusSeeOther, withQuery("/admin/invitations", "uploadError", "No file uploaded"))
	}

	err = c.client.UploadTemplate(ctx.Request().Context(), apimiddleware.RequestContextFrom(ctx),
		body, ctx.Request().Header.Get(echo.HeaderContentType))
	return c.afterMutation(ctx, "/admin/invitations", "uploadError", err)
}

func (c *AdminController) DeleteTemplate(ctx echo.Context) error {
	file := unescapedParam(ctx, "filename")
	if file == "" {
		return ctx.Redirect(http.StatusSeeOther, withQuery("/admin/invitations", "deleteError", "Template has no file and cannot be deleted"))
	}

	err := c.client.DeleteTemplate(ctx.Request().Context(), apimiddleware.RequestContextFrom(ctx), file)
	return c.afterMutation(ctx, "/admin/invitations", "deleteError", err)
}

// unescapedParam returns path parameter name decoded once. The backend client
// escapes ids itself.
func unescapedParam(ctx echo.Context, name string) string {
	v := ctx.Param(name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}

	return v
}

// render adds the one-time expiry banner before rendering an admin page.
func (c *AdminController) render(ctx echo.Context, name string, page Page) error {
	page.Admin = true

	info := apimiddleware.TokenInfoFrom(ctx)
	if info.ExpiresSoon() {
		if _, err := ctx.Cookie(adminauth.WarnedCookieName); err != nil {
			page.Notice = "Your session expires in " + info.Remaining.Round(time.Second).String() + ". Save your work and log in again."
			ctx.SetCookie(adminauth.WarnedCookie(info.Remaining))
		}
	}

	return ctx.Render(http.StatusOK, name, page)
}

// afterMutation redirects back to target, carrying the failure, if any, in
// the param query parameter.
func (c *AdminController) afterMutation(ctx echo.Context, target, param string, err error) error {
	if err == nil {
		return ctx.Redirect(http.StatusSeeOther, target)
	}

	if unauthorized(err) != nil {
		return c.sessionRejected(ctx)
	}

	return ctx.Redirect(http.StatusSeeOther, withQuery(target, param, c.message(ctx, err)))
}

// sessionRejected handles the backend refusing a token the cookie check
// let through.
func (c *AdminController) sessionRejected(ctx echo.Context) error {
	ctx.SetCookie(adminauth.ClearCookie())
	return ctx.Redirect(http.StatusSeeOther, adminauth.LoginURL(ctx.Request().URL.RequestURI(), "invalid"))
}

func (c *AdminController) message(ctx echo.Context, err error) string {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}

	c.logger(ctx).Errorf("Backend call failed: %s", err)
	return backend.GenericErrorMessage
}

// unauthorized returns err when the backend rejected the token, else nil.
func unauthorized(err error) error {
	if backend.StatusOf(err) == http.StatusUnauthorized {
		return err
	}

	return nil
}

func withQuery(target, key, value string) string {
	return target + "?" + url.Values{key: []string{value}}.Encode()
}

func queryInt(ctx echo.Context, name string, def int) int {
	v, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return def
	}

	return v
}

func expiredCookie(name, path string) *http.Cookie {
	return &http.Cookie{Name: name, Value: "", Path: path, MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode}
}
