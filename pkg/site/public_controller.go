package site

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/clog"
	"github.com/wedsite/wedsite/pkg/tmplcat"
	"github.com/wedsite/wedsite/pkg/webapi/apimiddleware"
	"github.com/wedsite/wedsite/pkg/wedmodel"
)

type PublicController struct {
	client      *backend.Client
	gallery     *Gallery
	slideshow   Slideshow
	weddingDate time.Time
	now         func() time.Time
}

func NewPublicController(client *backend.Client, gallery *Gallery, weddingDate time.Time) *PublicController {
	return &PublicController{
		client:      client,
		gallery:     gallery,
		slideshow:   NewHeroSlideshow(),
		weddingDate: weddingDate,
		now:         time.Now,
	}
}

type homeData struct {
	Slideshow   Slideshow
	Slide       int
	Countdown   Countdown
	WeddingDate time.Time
}

func (d homeData) Current() string { return d.Slideshow.At(d.Slide) }
func (d homeData) NextSlide() int  { return d.Slideshow.Index(d.Slide + 1) }
func (d homeData) PrevSlide() int  { return d.Slideshow.Index(d.Slide - 1) }

// Home renders the hero slideshow and the countdown as of now; the page
// keeps both moving on its own.
func (c *PublicController) Home(ctx echo.Context) error {
	slide, _ := strconv.Atoi(ctx.QueryParam("slide"))

	return ctx.Render(http.StatusOK, "home", Page{
		Title: "Home",
		Nav:   "home",
		Data: homeData{
			Slideshow:   c.slideshow,
			Slide:       c.slideshow.Index(slide),
			Countdown:   CountdownTo(c.weddingDate, c.now()),
			WeddingDate: c.weddingDate,
		},
	})
}

func (c *PublicController) Gallery(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "gallery", Page{
		Title: "Gallery",
		Nav:   "gallery",
		Data:  c.gallery.View(ctx.QueryParam("category"), ctx.QueryParam("image")),
	})
}

func (c *PublicController) Program(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "program", Page{Title: "Program", Nav: "program", Data: program})
}

func (c *PublicController) Wishlist(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "wishlist", Page{Title: "Wishlist", Nav: "wishlist", Data: wishlist})
}

func (c *PublicController) Party(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "party", Page{Title: "Wedding Party", Nav: "party", Data: weddingParty})
}

// Invitation shows one invitation by id to anyone holding the link.
func (c *PublicController) Invitation(ctx echo.Context) error {
	inv, err := c.client.GetInvitation(ctx.Request().Context(), apimiddleware.RequestContextFrom(ctx), ctx.Param("id"))
	if err != nil {
		status, msg := http.StatusInternalServerError, backend.GenericErrorMessage

		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			status, msg = statusErr.Status, statusErr.Message
		} else {
			clog.UsingCtx("invitations").Errorf("Unable to load invitation %s: %s", ctx.Param("id"), err)
		}

		return ctx.Render(status, "invitation", Page{Title: "Invitation", Error: msg})
	}

	return ctx.Render(http.StatusOK, "invitation", Page{Title: inv.Title, Data: invitationView{Invitation: inv}})
}

type invitationView struct {
	wedmodel.Invitation
}

// Image is the same-origin address of the invitation's image. A bare file
// name or an absolute backend URL is mapped onto the image proxy route.
func (v invitationView) Image() string {
	switch {
	case v.ImageURL == "":
		return ""
	case strings.HasPrefix(v.ImageURL, "/"):
		return v.ImageURL
	case strings.Contains(v.ImageURL, "://"):
		return tmplcat.ImageURL(path.Base(v.ImageURL))
	default:
		return tmplcat.ImageURL(v.ImageURL)
	}
}
