package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"lanes/distill"
	"lanes/game"
	"lanes/llm"

	"github.com/stretchr/testify/require"
)

const (
	car1Model    = "ft:car1"
	car2Model    = "ft:car2"
	baseModel    = "base"
	distillModel = "distill"
)

// keywordLabels stands in for the distillation model.
func keywordLabels(req llm.Request) (string, error) {
	if req.Model != distillModel {
		return "", fmt.Errorf("unexpected model %s", req.Model)
	}
	text := strings.ToLower(req.Messages[len(req.Messages)-1].Content)
	switch {
	case strings.Contains(text, "left"):
		return "left", nil
	case strings.Contains(text, "right"):
		return "right", nil
	case strings.Contains(text, "slow"):
		return "Slow down", nil
	case strings.Contains(text, "reverse"):
		return "reverse", nil
	}
	return "straight", nil
}

func newEngine(mock *llm.MockProvider) *Engine {
	retry := &llm.RetryConfig{MaxAttempts: 1}
	client := llm.NewClient(mock, llm.WithRetry(retry), llm.WithTimeout(time.Second))
	return LocalEngine(client, distill.New(client, distillModel), car1Model, car2Model, baseModel)
}

func TestEngineRun(t *testing.T) {
	layout := game.Layout{Ambulance: game.Right, Car1: game.Right, Car2: game.Right}

	t.Run("evaluates all strategies", func(t *testing.T) {
		mock := llm.NewMockProvider().
			Script(car1Model, "move to the left lane | I am moving left").
			Script(car2Model, "stay | I will keep going").
			Script(baseModel, "keep going | staying put", "change to left | moving over")
		mock.Respond = keywordLabels
		e := newEngine(mock)

		outcomes, err := e.Run(context.Background(), layout)

		require.NoError(t, err)
		require.Len(t, outcomes, 3)

		withComm := outcomes[0]
		require.Equal(t, WithComm, withComm.Strategy)
		require.Equal(t, game.TurnLeft, withComm.Scenario.Car1Action, "Cars in the ambulance lane should clear it after communicating")
		require.Equal(t, game.TurnLeft, withComm.Scenario.Car2Action)
		require.False(t, withComm.Failure)

		noComm := outcomes[1]
		require.Equal(t, NoComm, noComm.Strategy)
		require.Equal(t, game.TurnLeft, noComm.Scenario.Car1Action)
		require.Equal(t, game.Straight, noComm.Scenario.Car2Action)
		require.True(t, noComm.Failure, "car2 staying in the ambulance lane should fail")

		base := outcomes[2]
		require.Equal(t, Base, base.Strategy)
		require.Equal(t, game.TurnRight, base.Scenario.Car1Action, "Straight should be replaced by the car's own lane")
		require.Equal(t, game.TurnLeft, base.Scenario.Car2Action)
		require.True(t, base.Failure)

		require.Equal(t, 4, mock.CallCount(distillModel), "Adjusted actions are labels and should not be distilled by the model")
		require.Equal(t, 2, mock.CallCount(baseModel))
	})

	t.Run("prompts describe the other car", func(t *testing.T) {
		mixed := game.Layout{Ambulance: game.Left, Car1: game.Left, Car2: game.Right}
		mock := llm.NewMockProvider().
			Script(car1Model, "right | moving right").
			Script(car2Model, "slow down | holding").
			Script(baseModel, "right", "right")
		mock.Respond = keywordLabels
		e := newEngine(mock)

		_, err := e.Run(context.Background(), mixed)
		require.NoError(t, err)

		calls := mock.Calls()
		require.Contains(t, calls[0].Messages[1].Content, "You are on the left.")
		require.Contains(t, calls[0].Messages[1].Content, "other car is in the right lane")
		require.Contains(t, calls[1].Messages[1].Content, "You are on the right.")
		require.Contains(t, calls[1].Messages[1].Content, "other car is in the left lane")
	})

	t.Run("service failure aborts the iteration", func(t *testing.T) {
		mock := llm.NewMockProvider().
			Script(car1Model, "left | moving left").
			Fail(car2Model, llm.ErrModelAPIError)
		mock.Respond = keywordLabels
		e := newEngine(mock)

		_, err := e.Run(context.Background(), layout)

		require.ErrorIs(t, err, llm.ErrModelAPIError)
		require.True(t, llm.IsRetryable(err))
	})

	t.Run("unrecognized label surfaces", func(t *testing.T) {
		mock := llm.NewMockProvider().
			Script(car1Model, "reverse | backing up").
			Script(car2Model, "left | moving left")
		mock.Respond = keywordLabels
		e := newEngine(mock)

		_, err := e.Run(context.Background(), layout)

		require.ErrorIs(t, err, distill.ErrUnrecognizedAction)
	})

	t.Run("rejects invalid layout", func(t *testing.T) {
		e := newEngine(llm.NewMockProvider())
		_, err := e.Run(context.Background(), game.Layout{Ambulance: "up", Car1: game.Left, Car2: game.Left})
		require.ErrorIs(t, err, game.ErrInvalidSide)
	})
}

func TestStrategyTitle(t *testing.T) {
	require.Equal(t, "With Comm", WithComm.Title())
	require.Equal(t, "No Comm", NoComm.Title())
	require.Equal(t, "Base", Base.Title())
}
