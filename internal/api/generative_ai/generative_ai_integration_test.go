//go:build integration

package generativeAI

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

func TestMain(m *testing.M) {
	if os.Getenv("GOOGLE_GEMINI_API_KEY") == "" {
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func newTestClient(t *testing.T) *AIClient {
	t.Helper()
	client, err := NewAIClient(context.Background(), os.Getenv("GOOGLE_GEMINI_API_KEY"), "")
	require.NoError(t, err)
	return client
}

func TestNewAIClient_Integration(t *testing.T) {
	t.Run("default model", func(t *testing.T) {
		client := newTestClient(t)
		assert.Equal(t, DefaultModel, client.Model())
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewAIClient(context.Background(), "", "")
		assert.ErrorIs(t, err, types.ErrMissingAICredential)
	})
}

func TestAIClient_GenerateContent_Integration(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	t.Run("JSON mode returns a JSON document", func(t *testing.T) {
		cfg := JSONConfig(`Answer with a JSON object {"city": string, "province": string}.`, 0.2)
		txt, err := client.GenerateContent(ctx, "Where is Doi Suthep?", cfg)
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(txt), &doc))
		assert.Contains(t, doc, "city")
	})

	t.Run("rejected key", func(t *testing.T) {
		bad, err := NewAIClient(ctx, "not-a-real-key", "")
		require.NoError(t, err)
		_, err = bad.GenerateContent(ctx, "hello", nil)
		assert.ErrorIs(t, err, types.ErrInvalidAICredential)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, ccancel := context.WithCancel(ctx)
		ccancel()
		_, err := client.GenerateContent(cctx, "hello", nil)
		assert.ErrorIs(t, err, types.ErrGeneration)
	})
}

func TestAIClient_StreamContent_Integration(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	var chunks []string
	txt, err := client.StreamContent(ctx, "List five temples in Chiang Mai, one per line.", nil, func(c string) {
		chunks = append(chunks, c)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
	assert.Equal(t, strings.Join(chunks, ""), txt)
}
