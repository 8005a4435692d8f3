package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComplement(t *testing.T) {
	t.Run("complement is an involution", func(t *testing.T) {
		for _, s := range Sides {
			require.Equal(t, s, s.Complement().Complement(), "Complementing twice should return %s", s)
		}
	})

	t.Run("complement flips the lane", func(t *testing.T) {
		require.Equal(t, Right, Left.Complement())
		require.Equal(t, Left, Right.Complement())
	})
}

func TestAdjust(t *testing.T) {
	t.Run("car in the ambulance lane always clears it", func(t *testing.T) {
		messages := []string{"anything", "I will go right", "slowing down on the left", ""}
		for _, msg := range messages {
			got := Adjust(Straight, msg, Right, Right)
			require.Equal(t, TurnLeft, got, "Car on the ambulance side should move to the target side regardless of %q", msg)
		}
	})

	t.Run("message naming the target side", func(t *testing.T) {
		got := Adjust(Straight, "I will go left", Right, Left)
		require.Equal(t, TurnLeft, got, "Should follow the target side named in the message")
	})

	t.Run("target side match is case insensitive", func(t *testing.T) {
		got := Adjust(Straight, "Moving RIGHT now", Left, Right)
		require.Equal(t, TurnRight, got, "Should lower-case the message before matching")
	})

	t.Run("message naming only the ambulance side", func(t *testing.T) {
		got := Adjust(TurnRight, "yielding to the left", Left, Right)
		require.Equal(t, SlowDown, got, "Should slow down when the other car heads for the ambulance side")
	})

	t.Run("target side wins over ambulance side", func(t *testing.T) {
		got := Adjust(Straight, "left or right, not sure", Left, Right)
		require.Equal(t, TurnRight, got, "Target side rule should be checked before the ambulance side rule")
	})

	t.Run("slow down or maintain message", func(t *testing.T) {
		require.Equal(t, TurnRight, Adjust(Straight, "I will slow down", Left, Right))
		require.Equal(t, TurnRight, Adjust(Straight, "maintain speed", Left, Right))
	})

	t.Run("default moves to the target side", func(t *testing.T) {
		got := Adjust(SlowDown, "No message", Right, Left)
		require.Equal(t, TurnLeft, got, "Unmatched messages should fall back to the target side")
	})
}

func TestIsFailure(t *testing.T) {
	t.Run("both cars in the ambulance lane and both clear", func(t *testing.T) {
		require.False(t, IsFailure(TurnLeft, TurnLeft, Right, Right, Right), "Both cars clearing should not fail")
	})

	t.Run("both cars in the ambulance lane and one stays", func(t *testing.T) {
		require.True(t, IsFailure(TurnLeft, TurnRight, Right, Right, Right), "One car staying in the lane should fail")
	})

	t.Run("both cars in the ambulance lane and one slows down", func(t *testing.T) {
		require.True(t, IsFailure(SlowDown, TurnLeft, Right, Right, Right), "Slowing down does not clear the lane")
	})

	t.Run("car1 blocks and car2 does not clear", func(t *testing.T) {
		require.True(t, IsFailure(TurnLeft, TurnLeft, Left, Left, Right), "car1 blocking without car2 clearing should fail")
	})

	t.Run("car1 blocks and car2 clears", func(t *testing.T) {
		require.False(t, IsFailure(TurnLeft, TurnRight, Left, Left, Right), "car2 clearing should offset car1 blocking")
	})

	t.Run("car2 blocks and car1 does not clear", func(t *testing.T) {
		require.True(t, IsFailure(Straight, TurnLeft, Left, Right, Left), "car2 blocking without car1 clearing should fail")
	})

	t.Run("car in the ambulance lane going straight does not block", func(t *testing.T) {
		require.False(t, IsFailure(Straight, Straight, Left, Left, Right), "Only an explicit ambulance side action blocks")
	})

	t.Run("neither car in the ambulance lane", func(t *testing.T) {
		for _, a1 := range Actions {
			for _, a2 := range Actions {
				require.False(t, IsFailure(a1, a2, Left, Right, Right),
					"No car starts in the ambulance lane so nothing blocks (%s, %s)", a1, a2)
			}
		}
	})
}

func TestScenarioFailure(t *testing.T) {
	t.Run("valid scenario", func(t *testing.T) {
		s := NewScenario(Layout{Ambulance: Right, Car1: Right, Car2: Right}, TurnLeft, TurnLeft)
		failed, err := s.Failure()
		require.NoError(t, err)
		require.False(t, failed)
	})

	t.Run("rejects invalid side", func(t *testing.T) {
		s := NewScenario(Layout{Ambulance: "center", Car1: Right, Car2: Right}, TurnLeft, TurnLeft)
		_, err := s.Failure()
		require.ErrorIs(t, err, ErrInvalidSide, "Sides outside left/right should be rejected")
	})

	t.Run("rejects invalid action", func(t *testing.T) {
		s := NewScenario(Layout{Ambulance: Right, Car1: Right, Car2: Left}, TurnLeft, "reverse")
		_, err := s.Failure()
		require.ErrorIs(t, err, ErrInvalidAction, "Actions outside the four labels should be rejected")
	})
}

func TestParse(t *testing.T) {
	t.Run("parses sides", func(t *testing.T) {
		s, err := ParseSide(" Left ")
		require.NoError(t, err)
		require.Equal(t, Left, s)

		_, err = ParseSide("center")
		require.ErrorIs(t, err, ErrInvalidSide)
	})

	t.Run("parses actions", func(t *testing.T) {
		a, err := ParseAction("Slow Down")
		require.NoError(t, err)
		require.Equal(t, SlowDown, a)

		_, err = ParseAction("accelerate")
		require.ErrorIs(t, err, ErrInvalidAction)
	})
}
