package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) getJSON(ctx context.Context, rc RequestContext, path string, query url.Values) (*Response, error) {
	resp, err := c.Do(ctx, rc, Call{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}

	return resp, checkStatus(resp)
}

func (c *Client) sendJSON(ctx context.Context, rc RequestContext, method, path string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("unable to encode %s %s body: %w", method, path, err)
		}
		payload = b
	}

	resp, err := c.Do(ctx, rc, Call{Method: method, Path: path, Body: payload})
	if err != nil {
		return nil, err
	}

	return resp, checkStatus(resp)
}

func checkStatus(resp *Response) error {
	if resp.OK() {
		return nil
	}

	return &StatusError{
		Status:  resp.Status,
		Message: ErrorMessage(resp.Body, http.StatusText(resp.Status)),
	}
}

func parseError(what string, err error) error {
	return errors.Join(ErrBackend, fmt.Errorf("unable to parse %s: %w", what, err))
}
