package experiments

import (
	"lanes/game"
	"lanes/utils"

	"golang.org/x/exp/rand"
)

// Sampler draws the lane layout of each iteration. The ambulance side is
// uniform; each car starts in the ambulance's lane with probability sameSide.
type Sampler struct {
	rng      *rand.Rand
	sameSide float64
}

func NewSampler(seed uint64, sameSide float64) *Sampler {
	return &Sampler{
		rng:      rand.New(rand.NewSource(seed)),
		sameSide: sameSide,
	}
}

func (s *Sampler) Next() game.Layout {
	ambulance := game.Sides[s.rng.Intn(len(game.Sides))]
	return game.Layout{
		Ambulance: ambulance,
		Car1:      s.carSide(ambulance),
		Car2:      s.carSide(ambulance),
	}
}

func (s *Sampler) carSide(ambulance game.Side) game.Side {
	return utils.Pick(s.rng.Float64() < s.sameSide, ambulance, ambulance.Complement())
}
