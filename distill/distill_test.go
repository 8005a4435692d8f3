package distill

import (
	"context"
	"testing"
	"time"

	"lanes/game"
	"lanes/llm"

	"github.com/stretchr/testify/require"
)

const model = "distiller"

func newDistiller(mock *llm.MockProvider) *Distiller {
	retry := &llm.RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	return New(llm.NewClient(mock, llm.WithRetry(retry)), model)
}

func TestDistill(t *testing.T) {
	t.Run("maps a description through the model", func(t *testing.T) {
		mock := llm.NewMockProvider().Script(model, "Slow down.")
		d := newDistiller(mock)

		got, err := d.Distill(context.Background(), "I'll ease off the throttle and let it pass")

		require.NoError(t, err)
		require.Equal(t, game.SlowDown, got)

		calls := mock.Calls()
		require.Len(t, calls, 1)
		require.Equal(t, Instruction, calls[0].Messages[0].Content, "Should send the fixed instruction as system prompt")
		require.Equal(t, "I'll ease off the throttle and let it pass", calls[0].Messages[1].Content)
	})

	t.Run("labels skip the model call", func(t *testing.T) {
		mock := llm.NewMockProvider()
		d := newDistiller(mock)

		for _, action := range game.Actions {
			got, err := d.Distill(context.Background(), string(action))
			require.NoError(t, err)
			require.Equal(t, action, got)
		}
		require.Empty(t, mock.Calls(), "Canonical labels should not reach the model")
	})

	t.Run("unrecognized label is a distinguishable error", func(t *testing.T) {
		mock := llm.NewMockProvider().Script(model, "accelerate")
		d := newDistiller(mock)

		_, err := d.Distill(context.Background(), "floor it")

		require.ErrorIs(t, err, ErrUnrecognizedAction)
		var labelErr *LabelError
		require.ErrorAs(t, err, &labelErr)
		require.Equal(t, "accelerate", labelErr.Label)
		require.Equal(t, "floor it", labelErr.Input)
	})

	t.Run("service failures propagate as retryable", func(t *testing.T) {
		mock := llm.NewMockProvider().Fail(model, llm.ErrModelAPIError, llm.ErrModelAPIError)
		d := newDistiller(mock)

		_, err := d.Distill(context.Background(), "pull over")

		require.ErrorIs(t, err, llm.ErrModelAPIError)
		require.True(t, llm.IsRetryable(err))
		require.NotErrorIs(t, err, ErrUnrecognizedAction)
	})
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"Left":          "left",
		"  'right'. ":   "right",
		"Slow-Down":     "slow down",
		"slow   down!":  "slow down",
		"\"straight\"":  "straight",
		"turn left now": "turn left now",
	}
	for in, want := range tests {
		require.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}
