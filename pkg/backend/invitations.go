package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wedsite/wedsite/pkg/clog"
	"github.com/wedsite/wedsite/pkg/decoder"
	"github.com/wedsite/wedsite/pkg/tmplcat"
	"github.com/wedsite/wedsite/pkg/wedmodel"
)

func (c *Client) ListInvitations(ctx context.Context, rc RequestContext) ([]wedmodel.Invitation, error) {
	resp, err := c.getJSON(ctx, rc, "/invitations", nil)
	if err != nil {
		return nil, err
	}

	invitations, err := decoder.DecodeList[wedmodel.Invitation](resp.Body, "invitations", "data")
	if err != nil {
		return nil, parseError("invitations", err)
	}

	return invitations, nil
}

func (c *Client) GetInvitation(ctx context.Context, rc RequestContext, id string) (wedmodel.Invitation, error) {
	resp, err := c.getJSON(ctx, rc, "/invitations/"+url.PathEscape(id), nil)
	if err != nil {
		return wedmodel.Invitation{}, err
	}

	invitation, err := decoder.DecodeObject[wedmodel.Invitation](resp.Body, "invitation", "data")
	if err != nil {
		return invitation, parseError("invitation", err)
	}

	return invitation, nil
}

func (c *Client) CreateInvitation(ctx context.Context, rc RequestContext, inv wedmodel.NewInvitation) (wedmodel.Invitation, error) {
	resp, err := c.sendJSON(ctx, rc, http.MethodPost, "/invitations", inv)
	if err != nil {
		return wedmodel.Invitation{}, err
	}

	invitation, err := decoder.DecodeObject[wedmodel.Invitation](resp.Body, "invitation", "data")
	if err != nil {
		return invitation, parseError("created invitation", err)
	}

	return invitation, nil
}

// ListTemplates returns the normalized template catalog. When the backend
// can't produce one the hardcoded fallback catalog is returned and
// fromFallback is true.
func (c *Client) ListTemplates(ctx context.Context, rc RequestContext) (templates []wedmodel.Template, fromFallback bool) {
	resp, err := c.getJSON(ctx, rc, "/invitations/templates", nil)
	if err == nil {
		templates, err = tmplcat.ParseListing(resp.Body)
	}

	if err != nil {
		clog.UsingCtx("invitations").Warnf("Using fallback template catalog: %s", err)
		return tmplcat.Fallback(), true
	}

	return templates, false
}

func (c *Client) DeleteTemplate(ctx context.Context, rc RequestContext, file string) error {
	_, err := c.sendJSON(ctx, rc, http.MethodDelete, "/invitations/template/"+url.PathEscape(file), nil)
	return err
}

// UploadTemplate forwards an already encoded multipart body, keeping its
// boundary in contentType.
func (c *Client) UploadTemplate(ctx context.Context, rc RequestContext, body []byte, contentType string) error {
	resp, err := c.Do(ctx, rc, Call{Method: http.MethodPost, Path: "/invitations/upload", Body: body, ContentType: contentType})
	if err != nil {
		return err
	}

	return checkStatus(resp)
}
