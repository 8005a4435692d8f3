// Package render animates the outcome of one strategy in one iteration as
// an animated GIF.
package render

import (
	"image"

	"lanes/game"
	"lanes/utils"
)

const (
	Width     = 800
	Height    = 600
	LaneWidth = Width / 2

	CarWidth  = 50
	CarHeight = 80

	LeftX  = 100
	RightX = 500

	CarSpeed       = 2
	SlowSpeed      = 1
	AmbulanceSpeed = 4
	LaneChangeStep = 5
)

// Car is a box moving along the road. Cars drive up the screen; the
// ambulance drives down it.
type Car struct {
	Label        string
	OriginalLane game.Side
	Lane         game.Side
	X, Y         int
	TargetX      int
	Speed        int
	Switching    bool
	Color        uint8
}

func laneX(lane game.Side) int {
	return utils.Pick(lane == game.Left, LeftX, RightX)
}

func NewCar(lane game.Side, y int, label string, color uint8) *Car {
	x := laneX(lane)
	return &Car{
		Label:        label,
		OriginalLane: lane,
		Lane:         lane,
		X:            x,
		TargetX:      x,
		Y:            y,
		Speed:        CarSpeed,
		Color:        color,
	}
}

// Apply starts the lane change or speed change for action.
func (c *Car) Apply(action game.Action) {
	switch {
	case action == game.TurnLeft && c.Lane == game.Right:
		c.TargetX = LeftX
		c.Lane = game.Left
		c.Switching = true
	case action == game.TurnRight && c.Lane == game.Left:
		c.TargetX = RightX
		c.Lane = game.Right
		c.Switching = true
	case action == game.SlowDown:
		c.Speed = SlowSpeed
	default:
		c.Speed = CarSpeed
	}
}

// Move advances the car one frame up the screen and towards its target lane.
func (c *Car) Move() {
	c.Y -= c.Speed
	if !c.Switching {
		return
	}
	switch {
	case c.X < c.TargetX:
		c.X = min(c.X+LaneChangeStep, c.TargetX)
	case c.X > c.TargetX:
		c.X = max(c.X-LaneChangeStep, c.TargetX)
	}
	if c.X == c.TargetX {
		c.Switching = false
	}
}

func (c *Car) Rect() image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+CarWidth, c.Y+CarHeight)
}

// World holds the three vehicles of one animated iteration.
type World struct {
	Car1      *Car
	Car2      *Car
	Ambulance *Car
	Collision bool
	Frame     int
}

func NewWorld(it Iteration) *World {
	w := &World{
		Car1:      NewCar(it.Layout.Car1, Height-100, "Car 1 ("+it.Title+")", colorBlue),
		Car2:      NewCar(it.Layout.Car2, Height-200, "Car 2 ("+it.Title+")", colorGreen),
		Ambulance: NewCar(it.Layout.Ambulance, -100, "Ambulance", colorRed),
	}
	w.Ambulance.Speed = AmbulanceSpeed
	w.Car1.Apply(it.Car1Action)
	w.Car2.Apply(it.Car2Action)
	return w
}

// Step moves every vehicle one frame and records any contact with the
// ambulance. Touching edges do not count as contact.
func (w *World) Step() {
	w.Car1.Move()
	w.Car2.Move()
	w.Ambulance.Y += w.Ambulance.Speed

	amb := w.Ambulance.Rect()
	if w.Car1.Rect().Overlaps(amb) || w.Car2.Rect().Overlaps(amb) {
		w.Collision = true
	}
	w.Frame++
}
