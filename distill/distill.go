// Package distill turns free-text action descriptions into one of the four
// action labels.
package distill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lanes/game"

	"github.com/rs/zerolog/log"
)

// Instruction is the system prompt sent with every description.
const Instruction = "Based on the action description, determine the car's action: 'right', 'left', 'straight', or 'slow down'. " +
	"If the action involves slowing or stopping without a clear directional move, output 'slow down'. " +
	"Output only one of these words."

var ErrUnrecognizedAction = errors.New("unrecognized action label")

// LabelError carries the completion that did not match any label.
type LabelError struct {
	Input string
	Label string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("%v: %q (from %q)", ErrUnrecognizedAction, e.Label, e.Input)
}

func (e *LabelError) Unwrap() error {
	return ErrUnrecognizedAction
}

// Asker is the part of llm.Client the distiller needs.
type Asker interface {
	Ask(ctx context.Context, model, system, user string) (string, error)
}

type Distiller struct {
	asker Asker
	model string
}

func New(asker Asker, model string) *Distiller {
	return &Distiller{asker: asker, model: model}
}

// Distill maps text onto an action. Text that already is a label is returned
// without a model call.
func (d *Distiller) Distill(ctx context.Context, text string) (game.Action, error) {
	if action, err := game.ParseAction(Normalize(text)); err == nil {
		return action, nil
	}

	completion, err := d.asker.Ask(ctx, d.model, Instruction, text)
	if err != nil {
		return "", fmt.Errorf("failed to distill action: %w", err)
	}

	label := Normalize(completion)
	action, err := game.ParseAction(label)
	if err != nil {
		log.Warn().Str("input", text).Str("label", completion).Msg("model returned an unrecognized action label")
		return "", &LabelError{Input: text, Label: completion}
	}
	return action, nil
}

// Normalize lower-cases a label and strips surrounding whitespace, quotes and
// trailing punctuation.
func Normalize(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.Trim(label, "'\"`.!")
	label = strings.ReplaceAll(label, "-", " ")
	return strings.Join(strings.Fields(label), " ")
}
