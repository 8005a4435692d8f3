package agent

import (
	"context"
	"fmt"
	"strings"

	"lanes/game"
)

// Instruction is the system prompt for the driving models.
const Instruction = "You control an autonomous car on a two-lane road. An emergency vehicle is approaching. " +
	"Decide what your car does and tell the other car what you intend. " +
	"Answer in the form '<action> | <message to the other car>'."

const NoMessage = "No message"

// Asker is the part of llm.Client the agents need.
type Asker interface {
	Ask(ctx context.Context, model, system, user string) (string, error)
}

// Car is one of the two simulated vehicles and the model that drives it.
type Car struct {
	Name  string
	Model string
	Side  game.Side
}

// Decision is a car's free-text action and the message it sends the other car.
type Decision struct {
	Action  string
	Message string
	Raw     string
}

// Prompt describes the layout from the point of view of a car in lane self
// whose peer is in lane other.
func Prompt(ambulance, self, other game.Side) string {
	situation := fmt.Sprintf("Emergency vehicle approaching from %s. You are in a two-lane road, other car is in the %s lane.", ambulance, other)
	return fmt.Sprintf("You are on the %s. %s Output your action and a message about your intention.", self, situation)
}

// Decide asks the car's model for an action and intention message.
func (c Car) Decide(ctx context.Context, asker Asker, prompt string) (Decision, error) {
	return c.DecideWith(ctx, asker, c.Model, prompt)
}

// DecideWith is Decide with a different model, used for the baseline.
func (c Car) DecideWith(ctx context.Context, asker Asker, model, prompt string) (Decision, error) {
	completion, err := asker.Ask(ctx, model, Instruction, prompt)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to get decision for %s: %w", c.Name, err)
	}
	return ParseDecision(completion), nil
}

// ParseDecision splits "<action> | <message>". Anything after a second
// separator is ignored.
func ParseDecision(completion string) Decision {
	parts := strings.Split(completion, "|")
	d := Decision{
		Action:  strings.TrimSpace(parts[0]),
		Message: NoMessage,
		Raw:     completion,
	}
	if len(parts) > 1 {
		d.Message = strings.TrimSpace(parts[1])
	}
	return d
}
