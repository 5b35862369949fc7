package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/wedsite/wedsite/pkg/decoder"
	"github.com/wedsite/wedsite/pkg/wedmodel"
	"golang.org/x/sync/errgroup"
)

var ErrGroupNameRequired = errors.New("group name is required")

func (c *Client) ListGroups(ctx context.Context, rc RequestContext) ([]wedmodel.GuestGroup, error) {
	resp, err := c.getJSON(ctx, rc, "/guest-groups", nil)
	if err != nil {
		return nil, err
	}

	groups, err := decoder.DecodeList[wedmodel.GuestGroup](resp.Body, "groups", "guestGroups", "data")
	if err != nil {
		return nil, parseError("guest groups", err)
	}

	return groups, nil
}

func (c *Client) CreateGroup(ctx context.Context, rc RequestContext, name string) (wedmodel.GuestGroup, error) {
	if name == "" {
		return wedmodel.GuestGroup{}, ErrGroupNameRequired
	}

	resp, err := c.sendJSON(ctx, rc, http.MethodPost, "/guest-groups", map[string]string{"name": name})
	if err != nil {
		return wedmodel.GuestGroup{}, err
	}

	group, err := decoder.DecodeObject[wedmodel.GuestGroup](resp.Body, "group", "data")
	if err != nil {
		return group, parseError("created guest group", err)
	}

	return group, nil
}

func (c *Client) DeleteGroup(ctx context.Context, rc RequestContext, id string) error {
	_, err := c.sendJSON(ctx, rc, http.MethodDelete, "/guest-groups/"+url.PathEscape(id), nil)
	return err
}

// GroupGuestCounts asks the backend for each group's guest total, with at
// most concurrency requests in flight. A failed count is reported on that
// group rather than failing the whole set.
func (c *Client) GroupGuestCounts(ctx context.Context, rc RequestContext, groups []wedmodel.GuestGroup, concurrency int) ([]wedmodel.GuestGroupCount, error) {
	counts := make([]wedmodel.GuestGroupCount, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, group := range groups {
		i, group := i, group
		counts[i].GuestGroup = group
		g.Go(func() error {
			page, err := c.ListGuests(gctx, rc, wedmodel.GuestQuery{Page: 1, Limit: 1, GroupID: group.ID.String()})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				counts[i].Error = err.Error()
				return nil
			}

			counts[i].GuestCount = page.Total
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return counts, nil
}
