package game

import "strings"

// Adjust revises a car's action after it has read the other car's intention
// message. The initial action does not influence the outcome: a car in the
// ambulance's lane always clears it, and otherwise the message decides.
func Adjust(action Action, received string, ambulance, own Side) Action {
	msg := strings.ToLower(received)
	target := ambulance.Complement()

	if own == ambulance {
		return target.Action()
	}
	if strings.Contains(msg, target.String()) {
		return target.Action()
	}
	if strings.Contains(msg, ambulance.String()) {
		return SlowDown
	}
	// Same result as the fallthrough below; kept as its own rule.
	if strings.Contains(msg, "slow down") || strings.Contains(msg, "maintain") {
		return target.Action()
	}
	return target.Action()
}

// IsFailure reports whether the ambulance's path is left blocked.
func IsFailure(car1, car2 Action, ambulance, car1Side, car2Side Side) bool {
	target := ambulance.Complement().Action()

	car1Blocks := car1 == ambulance.Action() && car1Side == ambulance
	car2Blocks := car2 == ambulance.Action() && car2Side == ambulance

	car1Clears := car1 == target
	car2Clears := car2 == target

	if car1Side == ambulance && car2Side == ambulance {
		return !(car1Clears && car2Clears)
	}

	return (car1Blocks && !car2Clears) || (car2Blocks && !car1Clears)
}
