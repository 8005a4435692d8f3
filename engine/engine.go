package engine

import (
	"context"

	"lanes/agent"
	"lanes/game"
)

// Strategy is one of the decision-making setups being compared.
type Strategy string

const (
	WithComm Strategy = "with_comm"
	NoComm   Strategy = "no_comm"
	Base     Strategy = "base"
)

var Strategies = []Strategy{WithComm, NoComm, Base}

// Title is the label shown on rendered frames.
func (s Strategy) Title() string {
	switch s {
	case WithComm:
		return "With Comm"
	case NoComm:
		return "No Comm"
	case Base:
		return "Base"
	}
	return string(s)
}

// Outcome is the evaluated result of one strategy in one iteration.
type Outcome struct {
	Strategy Strategy
	Scenario game.Scenario
	Failure  bool
	// Decisions hold the completions the final actions were derived from.
	Car1 agent.Decision
	Car2 agent.Decision
}

type Runner interface {
	// Run evaluates every strategy on one layout
	Run(ctx context.Context, layout game.Layout) ([]Outcome, error)
}
