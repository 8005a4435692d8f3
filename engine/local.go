package engine

import (
	"context"
	"fmt"

	"lanes/agent"
	"lanes/communication"
	"lanes/game"

	"github.com/rs/zerolog/log"
)

type Distiller interface {
	Distill(ctx context.Context, text string) (game.Action, error)
}

type Engine struct {
	Asker     agent.Asker
	Distiller Distiller
	Car1      agent.Car
	Car2      agent.Car
	BaseModel string
}

func LocalEngine(asker agent.Asker, distiller Distiller, car1Model, car2Model, baseModel string) *Engine {
	if asker == nil || distiller == nil {
		panic("engine needs a model client and a distiller")
	}
	return &Engine{
		Asker:     asker,
		Distiller: distiller,
		Car1:      agent.Car{Name: "car1", Model: car1Model},
		Car2:      agent.Car{Name: "car2", Model: car2Model},
		BaseModel: baseModel,
	}
}

// Run queries the fine-tuned models once per car and evaluates the
// with-communication and no-communication strategies on the same answers,
// then queries the base model for the baseline.
func (e *Engine) Run(ctx context.Context, layout game.Layout) ([]Outcome, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	car1, car2 := e.Car1, e.Car2
	car1.Side, car2.Side = layout.Car1, layout.Car2

	prompt1 := agent.Prompt(layout.Ambulance, car1.Side, car2.Side)
	prompt2 := agent.Prompt(layout.Ambulance, car2.Side, car1.Side)

	d1, err := car1.Decide(ctx, e.Asker, prompt1)
	if err != nil {
		return nil, err
	}
	d2, err := car2.Decide(ctx, e.Asker, prompt2)
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("car1 decided %q, car2 decided %q", d1.Raw, d2.Raw)

	withComm, err := e.withComm(ctx, layout, car1, car2, d1, d2)
	if err != nil {
		return nil, err
	}
	noComm, err := e.noComm(ctx, layout, d1, d2)
	if err != nil {
		return nil, err
	}
	base, err := e.base(ctx, layout, car1, car2, prompt1, prompt2)
	if err != nil {
		return nil, err
	}

	return []Outcome{withComm, noComm, base}, nil
}

func (e *Engine) withComm(ctx context.Context, layout game.Layout, car1, car2 agent.Car, d1, d2 agent.Decision) (Outcome, error) {
	mailbox := communication.NewMailbox()
	communication.Exchange(mailbox, car1.Name, car2.Name, d1.Message, d2.Message)

	a1, err := e.adjusted(ctx, mailbox, layout, car1, d1)
	if err != nil {
		return Outcome{}, err
	}
	a2, err := e.adjusted(ctx, mailbox, layout, car2, d2)
	if err != nil {
		return Outcome{}, err
	}
	return evaluate(WithComm, layout, a1, a2, d1, d2)
}

func (e *Engine) adjusted(ctx context.Context, c communication.Communicator, layout game.Layout, car agent.Car, d agent.Decision) (game.Action, error) {
	received := agent.NoMessage
	if msg, ok := c.Receive(car.Name); ok {
		received = msg.Text
	}
	// The adjuster ignores the initial action, so the raw text is carried as is.
	adjusted := game.Adjust(game.Action(d.Action), received, layout.Ambulance, car.Side)
	return e.Distiller.Distill(ctx, adjusted.String())
}

func (e *Engine) noComm(ctx context.Context, layout game.Layout, d1, d2 agent.Decision) (Outcome, error) {
	a1, err := e.Distiller.Distill(ctx, d1.Action)
	if err != nil {
		return Outcome{}, err
	}
	a2, err := e.Distiller.Distill(ctx, d2.Action)
	if err != nil {
		return Outcome{}, err
	}
	return evaluate(NoComm, layout, a1, a2, d1, d2)
}

func (e *Engine) base(ctx context.Context, layout game.Layout, car1, car2 agent.Car, prompt1, prompt2 string) (Outcome, error) {
	d1, err := car1.DecideWith(ctx, e.Asker, e.BaseModel, prompt1)
	if err != nil {
		return Outcome{}, err
	}
	a1, err := e.baseAction(ctx, d1, car1.Side)
	if err != nil {
		return Outcome{}, err
	}
	d2, err := car2.DecideWith(ctx, e.Asker, e.BaseModel, prompt2)
	if err != nil {
		return Outcome{}, err
	}
	a2, err := e.baseAction(ctx, d2, car2.Side)
	if err != nil {
		return Outcome{}, err
	}
	return evaluate(Base, layout, a1, a2, d1, d2)
}

// baseAction distills the whole completion; going straight means staying in
// the current lane.
func (e *Engine) baseAction(ctx context.Context, d agent.Decision, side game.Side) (game.Action, error) {
	action, err := e.Distiller.Distill(ctx, d.Raw)
	if err != nil {
		return "", err
	}
	if action == game.Straight {
		return side.Action(), nil
	}
	return action, nil
}

func evaluate(strategy Strategy, layout game.Layout, a1, a2 game.Action, d1, d2 agent.Decision) (Outcome, error) {
	scenario := game.NewScenario(layout, a1, a2)
	failure, err := scenario.Failure()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to evaluate %s: %w", strategy, err)
	}
	return Outcome{
		Strategy: strategy,
		Scenario: scenario,
		Failure:  failure,
		Car1:     d1,
		Car2:     d2,
	}, nil
}

var _ Runner = (*Engine)(nil)
