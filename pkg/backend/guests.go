package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wedsite/wedsite/pkg/wedmodel"
)

// GuestQueryValues renders q the way the backend's /guests endpoint expects.
func GuestQueryValues(q wedmodel.GuestQuery) url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.GroupID != "" {
		values.Set("groupId", q.GroupID)
	}

	if q.Search != "" {
		values.Set("search", q.Search)
	}

	return values
}

func (c *Client) ListGuests(ctx context.Context, rc RequestContext, q wedmodel.GuestQuery) (wedmodel.GuestPage, error) {
	resp, err := c.getJSON(ctx, rc, "/guests", GuestQueryValues(q))
	if err != nil {
		return wedmodel.GuestPage{}, err
	}

	page, err := ParseGuestPage(resp.Body, q)
	if err != nil {
		return wedmodel.GuestPage{}, parseError("guest page", err)
	}

	return page, nil
}

func (c *Client) DeleteGuest(ctx context.Context, rc RequestContext, id string) error {
	_, err := c.sendJSON(ctx, rc, http.MethodDelete, "/guests/"+url.PathEscape(id), nil)
	return err
}

type guestPageEnvelope struct {
	Guests     []wedmodel.Guest `json:"guests"`
	Data       []wedmodel.Guest `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
	Pagination *struct {
		Total      int `json:"total"`
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

// ParseGuestPage accepts {guests,total,...}, {data,pagination:{...}} or a
// bare array. Missing paging fields are filled from q.
func ParseGuestPage(body []byte, q wedmodel.GuestQuery) (wedmodel.GuestPage, error) {
	var page wedmodel.GuestPage

	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Guests); err != nil {
			return page, err
		}
		page.Total = len(page.Guests)
	} else {
		var env guestPageEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return page, err
		}

		page.Guests = env.Guests
		if page.Guests == nil {
			page.Guests = env.Data
		}
		page.Total, page.Page, page.Limit, page.TotalPages = env.Total, env.Page, env.Limit, env.TotalPages

		if env.Pagination != nil {
			page.Total, page.Page, page.Limit, page.TotalPages = env.Pagination.Total, env.Pagination.Page,
				env.Pagination.Limit, env.Pagination.TotalPages
		}

		if page.Total == 0 {
			page.Total = len(page.Guests)
		}
	}

	if page.Guests == nil {
		page.Guests = []wedmodel.Guest{}
	}

	if page.Page == 0 {
		page.Page = max(q.Page, 1)
	}

	if page.Limit == 0 {
		page.Limit = q.Limit
	}

	if page.TotalPages == 0 {
		page.TotalPages = wedmodel.TotalPages(page.Total, page.Limit)
	}

	return page, nil
}
