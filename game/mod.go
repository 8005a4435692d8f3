package game

import (
	"errors"
	"fmt"
	"strings"

	"lanes/utils"
)

var (
	ErrInvalidSide   = errors.New("invalid side")
	ErrInvalidAction = errors.New("invalid action")
)

// Side is a lane, or the side the ambulance approaches from.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

var Sides = []Side{Left, Right}

// Action is the discretized decision of a car.
type Action string

const (
	TurnLeft  Action = "left"
	TurnRight Action = "right"
	Straight  Action = "straight"
	SlowDown  Action = "slow down"
)

var Actions = []Action{TurnLeft, TurnRight, Straight, SlowDown}

func (s Side) Valid() bool {
	return utils.Contains(Sides, s)
}

// Complement returns the other lane. An invalid side has no complement and is
// returned unchanged.
func (s Side) Complement() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	}
	return s
}

// Action returns the lane change that ends up in s.
func (s Side) Action() Action {
	return Action(s)
}

func (s Side) String() string {
	return string(s)
}

func (a Action) Valid() bool {
	return utils.Contains(Actions, a)
}

func (a Action) String() string {
	return string(a)
}

// ParseSide accepts "left" or "right" in any case.
func ParseSide(s string) (Side, error) {
	side := Side(strings.ToLower(strings.TrimSpace(s)))
	if !side.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
	return side, nil
}

// ParseAction accepts one of the four action labels in any case.
func ParseAction(s string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(s)))
	if !action.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
	return action, nil
}
