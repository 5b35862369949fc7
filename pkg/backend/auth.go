package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wedsite/wedsite/pkg/wedmodel"
)

var ErrNoToken = errors.New("login response carried no token")

// Login exchanges credentials for an admin token. Rejected credentials come
// back as a *StatusError carrying the backend's message.
func (c *Client) Login(ctx context.Context, rc RequestContext, creds wedmodel.Credentials) (wedmodel.LoginResult, error) {
	resp, err := c.sendJSON(ctx, rc, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return wedmodel.LoginResult{}, err
	}

	var body struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
		Data        *struct {
			Token string `json:"token"`
		} `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return wedmodel.LoginResult{}, parseError("login response", err)
	}

	token := body.Token
	if token == "" {
		token = body.AccessToken
	}

	if token == "" && body.Data != nil {
		token = body.Data.Token
	}

	if token == "" {
		return wedmodel.LoginResult{}, ErrNoToken
	}

	return wedmodel.LoginResult{Token: token}, nil
}

// VerifyToken asks the backend whether rc's bearer token is one it issued.
// The token's signature can only be checked there, so an authenticated
// read of the guest stats stands in for a dedicated endpoint.
func (c *Client) VerifyToken(ctx context.Context, rc RequestContext) error {
	_, err := c.getJSON(ctx, rc, "/guests/stats", nil)
	return err
}
