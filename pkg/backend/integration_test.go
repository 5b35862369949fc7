package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wedsite/wedsite/pkg/tutil"
	"github.com/wedsite/wedsite/pkg/wedmodel"
)

func TestLiveBackend(t *testing.T) {
	baseURL := tutil.RequireIntegration(t)
	client := NewClient(Options{BaseURL: baseURL, Timeout: 10 * time.Second, RetryCount: 1})
	ctx := context.Background()

	t.Run("Templates", func(t *testing.T) {
		templates, fromFallback := client.ListTemplates(ctx, Anonymous())
		require.NotEmpty(t, templates)
		for _, tmpl := range templates {
			assert.NotEmpty(t, tmpl.DisplayName)
		}
		t.Logf("templates from fallback: %t", fromFallback)
	})

	t.Run("Anonymous guest list is rejected", func(t *testing.T) {
		_, err := client.ListGuests(ctx, Anonymous(), wedmodel.GuestQuery{Page: 1, Limit: 1})
		require.Error(t, err)
		assert.Contains(t, []int{401, 403}, StatusOf(err))
	})
}
