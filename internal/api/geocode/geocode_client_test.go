package geocode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

func newGeocodeServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("address") {
		case "วัดพระธาตุดอยสุเทพ, เชียงใหม่":
			fmt.Fprint(w, `{"status":"OK","results":[{"formatted_address":"Doi Suthep","geometry":{"location":{"lat":18.8048,"lng":98.9216}}}]}`)
		case "denied":
			fmt.Fprint(w, `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`)
		default:
			fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
		}
	}))
}

func newTestGeocoder(t *testing.T, baseURL string) *GoogleGeocoder {
	t.Helper()
	g, err := NewGoogleGeocoder(GoogleGeocoderConfig{
		APIKey:   "test-key",
		Language: "th",
		Region:   "th",
		CacheTTL: time.Minute,
		BaseURL:  baseURL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return g
}

func TestNewGoogleGeocoder_MissingKey(t *testing.T) {
	_, err := NewGoogleGeocoder(GoogleGeocoderConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, types.ErrMissingMapsCredential)
}

func TestGoogleGeocoder_Geocode(t *testing.T) {
	var hits atomic.Int32
	srv := newGeocodeServer(t, &hits)
	defer srv.Close()
	g := newTestGeocoder(t, srv.URL)
	ctx := context.Background()

	t.Run("resolves and caches a position", func(t *testing.T) {
		hits.Store(0)
		pos, err := g.Geocode(ctx, "วัดพระธาตุดอยสุเทพ, เชียงใหม่")
		require.NoError(t, err)
		assert.InDelta(t, 18.8048, pos.Lat, 1e-9)
		assert.InDelta(t, 98.9216, pos.Lng, 1e-9)

		again, err := g.Geocode(ctx, "วัดพระธาตุดอยสุเทพ, เชียงใหม่")
		require.NoError(t, err)
		assert.Equal(t, pos, again)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("zero results", func(t *testing.T) {
		hits.Store(0)
		_, err := g.Geocode(ctx, "nowhere at all")
		assert.ErrorIs(t, err, ErrZeroResults)

		_, err = g.Geocode(ctx, "nowhere at all")
		assert.ErrorIs(t, err, ErrZeroResults)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("error status is not cached", func(t *testing.T) {
		hits.Store(0)
		_, err := g.Geocode(ctx, "denied")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrZeroResults)
		assert.Contains(t, err.Error(), "REQUEST_DENIED")

		_, err = g.Geocode(ctx, "denied")
		require.Error(t, err)
		assert.Equal(t, int32(2), hits.Load())
	})
}
