package game

import "fmt"

// Layout is the lane assignment sampled for one iteration.
type Layout struct {
	Ambulance Side
	Car1      Side
	Car2      Side
}

// Validate rejects sides outside {left, right}.
func (l Layout) Validate() error {
	names := []string{"ambulance", "car1", "car2"}
	for i, side := range []Side{l.Ambulance, l.Car1, l.Car2} {
		if !side.Valid() {
			return fmt.Errorf("%w: %s side %q", ErrInvalidSide, names[i], side)
		}
	}
	return nil
}

// Target is the lane both cars should end up in.
func (l Layout) Target() Side {
	return l.Ambulance.Complement()
}

// Scenario is a layout together with the final action of each car.
type Scenario struct {
	Layout
	Car1Action Action
	Car2Action Action
}

func NewScenario(layout Layout, car1, car2 Action) Scenario {
	return Scenario{Layout: layout, Car1Action: car1, Car2Action: car2}
}

func (s Scenario) Validate() error {
	if err := s.Layout.Validate(); err != nil {
		return err
	}
	if !s.Car1Action.Valid() {
		return fmt.Errorf("%w: car1 action %q", ErrInvalidAction, s.Car1Action)
	}
	if !s.Car2Action.Valid() {
		return fmt.Errorf("%w: car2 action %q", ErrInvalidAction, s.Car2Action)
	}
	return nil
}

// Failure validates the scenario and evaluates it with IsFailure.
func (s Scenario) Failure() (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}
	return IsFailure(s.Car1Action, s.Car2Action, s.Ambulance, s.Car1, s.Car2), nil
}
