package render

import (
	"fmt"
	"image/gif"
	"io"
	"os"

	"lanes/game"
	"lanes/utils"
)

const (
	DefaultFrames = 150
	// FrameDelay is in hundredths of a second.
	FrameDelay = 5
)

// Iteration is everything the animation needs from one evaluated strategy.
type Iteration struct {
	Title      string
	Layout     game.Layout
	Car1Action game.Action
	Car2Action game.Action
	Failure    bool
	Frames     int
}

// Result reports what happened on screen.
type Result struct {
	Collision bool
	Success   bool
	Car1Lane  game.Side
	Car2Lane  game.Side
}

func (it Iteration) frames() int {
	return utils.Pick(it.Frames > 0, it.Frames, DefaultFrames)
}

func (w *World) result(failure bool) Result {
	return Result{
		Collision: w.Collision,
		Success:   !failure && !w.Collision,
		Car1Lane:  w.Car1.Lane,
		Car2Lane:  w.Car2.Lane,
	}
}

// Simulate runs the motion without drawing.
func Simulate(it Iteration) Result {
	w := NewWorld(it)
	for i := 0; i < it.frames(); i++ {
		w.Step()
	}
	return w.result(it.Failure)
}

// Animate draws every frame of it and encodes the animation to out.
func Animate(out io.Writer, it Iteration) (Result, error) {
	w := NewWorld(it)
	canvas := NewCanvas(Width, Height)

	for i := 0; i < it.frames(); i++ {
		canvas.Frame()
		canvas.VLine(LaneWidth, 5, colorWhite)
		canvas.Text("LEFT LANE", LeftX, 10, colorWhite)
		canvas.Text("RIGHT LANE", RightX, 10, colorWhite)

		canvas.DrawCar(w.Car1)
		canvas.DrawCar(w.Car2)
		canvas.DrawCar(w.Ambulance)

		w.Step()

		canvas.Text(fmt.Sprintf("Car 1: %s -> %s", w.Car1.OriginalLane, w.Car1.Lane), 10, Height-60, colorBlack)
		canvas.Text(fmt.Sprintf("Car 2: %s -> %s", w.Car2.OriginalLane, w.Car2.Lane), 10, Height-40, colorBlack)
		canvas.Text(fmt.Sprintf("Ambulance lane: %s", it.Layout.Ambulance), 10, Height-20, colorBlack)

		success := !it.Failure && !w.Collision
		status := utils.Pick(success, "SUCCESS", "FAILURE")
		canvas.Text(fmt.Sprintf("%s - %s", it.Title, status), 10, 50, utils.Pick(success, colorGreen, colorRed))
	}

	frames := canvas.Frames()
	anim := &gif.GIF{
		Image: frames,
		Delay: make([]int, len(frames)),
	}
	for i := range anim.Delay {
		anim.Delay[i] = FrameDelay
	}
	if err := gif.EncodeAll(out, anim); err != nil {
		return Result{}, fmt.Errorf("failed to encode animation: %w", err)
	}
	return w.result(it.Failure), nil
}

// AnimateFile writes the animation of it to path.
func AnimateFile(path string, it Iteration) (Result, error) {
	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create animation file: %w", err)
	}
	res, err := Animate(f, it)
	if cerr := f.Close(); err == nil && cerr != nil {
		return Result{}, fmt.Errorf("failed to close animation file: %w", cerr)
	}
	return res, err
}
