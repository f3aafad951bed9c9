package planner

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

func TestNotifier(t *testing.T) {
	t.Run("new notice replaces the current one", func(t *testing.T) {
		n := NewNotifier(time.Minute, time.Minute)
		n.Show(types.NotificationSuccess, "first")
		n.Show(types.NotificationInfo, "second")

		cur := n.Current()
		require.NotNil(t, cur)
		assert.Equal(t, types.NotificationInfo, cur.Kind)
		assert.Equal(t, "second", cur.Message)
	})

	t.Run("notice expires on its own", func(t *testing.T) {
		n := NewNotifier(20*time.Millisecond, time.Minute)
		n.Show(types.NotificationSuccess, "bye")
		assert.Eventually(t, func() bool { return n.Current() == nil }, time.Second, 5*time.Millisecond)
	})

	t.Run("errors stay longer", func(t *testing.T) {
		n := NewNotifier(10*time.Millisecond, time.Minute)
		n.Show(types.NotificationError, "still here")
		time.Sleep(50 * time.Millisecond)
		require.NotNil(t, n.Current())
		assert.Equal(t, "still here", n.Current().Message)
	})

	t.Run("stale timer does not clear a newer notice", func(t *testing.T) {
		n := NewNotifier(30*time.Millisecond, time.Minute)
		n.Show(types.NotificationSuccess, "old")
		n.Show(types.NotificationError, "new")
		time.Sleep(80 * time.Millisecond)
		require.NotNil(t, n.Current())
		assert.Equal(t, "new", n.Current().Message)
	})

	t.Run("clear and nil notice", func(t *testing.T) {
		n := NewNotifier(0, 0)
		n.Show(types.NotificationInfo, "x")
		n.Clear()
		assert.Nil(t, n.Current())

		n.ShowNotice(nil)
		assert.Nil(t, n.Current())

		n.ShowNotice(&types.Notification{Kind: types.NotificationInfo, Message: "partial"})
		require.NotNil(t, n.Current())
		assert.Equal(t, "partial", n.Current().Message)
	})

	t.Run("current returns a copy", func(t *testing.T) {
		n := NewNotifier(time.Minute, time.Minute)
		n.Show(types.NotificationInfo, "original")
		n.Current().Message = "changed"
		assert.Equal(t, "original", n.Current().Message)
	})
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"bad request", fmt.Errorf("%w: city is required", types.ErrBadRequest), MsgBadRequest},
		{"missing key", types.ErrMissingAICredential, MsgMissingAIKey},
		{"invalid key", fmt.Errorf("%w: 400", types.ErrInvalidAICredential), MsgInvalidAIKey},
		{"parse", &types.ParseError{Raw: "x", Err: errors.New("eof")}, MsgInvalidPlanFormat},
		{"validation", &types.ValidationError{Reason: "days is not an array"}, MsgInvalidPlanFormat},
		{"generation", fmt.Errorf("%w: empty", types.ErrGeneration), MsgGenerationFailed},
		{"other", errors.New("boom"), MsgUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
