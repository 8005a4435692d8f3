package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	colorGray uint8 = iota
	colorWhite
	colorBlack
	colorRed
	colorGreen
	colorBlue
)

var palette = color.Palette{
	color.RGBA{150, 150, 150, 255},
	color.RGBA{255, 255, 255, 255},
	color.RGBA{0, 0, 0, 255},
	color.RGBA{255, 0, 0, 255},
	color.RGBA{0, 255, 0, 255},
	color.RGBA{0, 100, 255, 255},
}

// Canvas is the drawing surface of one animation. Each call to Frame starts
// a new image; earlier frames are kept for encoding.
type Canvas struct {
	width, height int
	face          font.Face
	frames        []*image.Paletted
	current       *image.Paletted
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		face:   basicfont.Face7x13,
	}
}

// Frame starts a new frame filled with the road color.
func (c *Canvas) Frame() {
	c.current = image.NewPaletted(image.Rect(0, 0, c.width, c.height), palette)
	// index 0 is gray, so a fresh image is already filled
	c.frames = append(c.frames, c.current)
}

func (c *Canvas) Frames() []*image.Paletted {
	return c.frames
}

// FillRect paints r clipped to the canvas.
func (c *Canvas) FillRect(r image.Rectangle, idx uint8) {
	r = r.Intersect(c.current.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.current.SetColorIndex(x, y, idx)
		}
	}
}

// VLine draws a vertical line of the given thickness centred on x.
func (c *Canvas) VLine(x, thickness int, idx uint8) {
	half := thickness / 2
	c.FillRect(image.Rect(x-half, 0, x-half+thickness, c.height), idx)
}

// Text draws s with its top-left corner at (x, y).
func (c *Canvas) Text(s string, x, y int, idx uint8) {
	d := &font.Drawer{
		Dst:  c.current,
		Src:  image.NewUniform(palette[idx]),
		Face: c.face,
		Dot:  fixed.P(x, y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

func (c *Canvas) DrawCar(car *Car) {
	c.FillRect(car.Rect(), car.Color)
	c.Text(car.Label, car.X+5, car.Y+30, colorBlack)
}
