package agent

import (
	"context"
	"testing"

	"lanes/game"
	"lanes/llm"

	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	got := Prompt(game.Right, game.Left, game.Right)
	require.Equal(t,
		"You are on the left. Emergency vehicle approaching from right. You are in a two-lane road, other car is in the right lane. Output your action and a message about your intention.",
		got)
}

func TestParseDecision(t *testing.T) {
	t.Run("action and message", func(t *testing.T) {
		d := ParseDecision(" move left |  I am moving to the left lane ")
		require.Equal(t, "move left", d.Action)
		require.Equal(t, "I am moving to the left lane", d.Message)
	})

	t.Run("missing message", func(t *testing.T) {
		d := ParseDecision("slow down")
		require.Equal(t, "slow down", d.Action)
		require.Equal(t, NoMessage, d.Message, "Should default the message when there is no separator")
	})

	t.Run("extra separators are dropped", func(t *testing.T) {
		d := ParseDecision("right | going right | extra")
		require.Equal(t, "going right", d.Message)
	})
}

func TestDecide(t *testing.T) {
	mock := llm.NewMockProvider().Script("ft:car1", "left | clearing to the left")
	client := llm.NewClient(mock)
	car := Car{Name: "car1", Model: "ft:car1", Side: game.Right}

	d, err := car.Decide(context.Background(), client, Prompt(game.Right, car.Side, game.Left))

	require.NoError(t, err)
	require.Equal(t, "left", d.Action)
	require.Equal(t, "clearing to the left", d.Message)
	require.Equal(t, Instruction, mock.Calls()[0].Messages[0].Content)

	_, err = car.DecideWith(context.Background(), client, "missing", "prompt")
	require.Error(t, err, "Unscripted model should fail")
}
