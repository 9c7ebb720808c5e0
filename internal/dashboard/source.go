package dashboard

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/hpungsan/concierge/internal/sales"
)

// Source regenerates the dataset and builds a fresh ViewModel on every call,
// so every page view sees new numbers.
type Source struct {
	Days    int
	Options Options

	// Seed pins the generated data; 0 draws a new seed per build.
	Seed uint64

	// Now overrides the clock used for sample dates. nil means time.Now.
	Now func() time.Time
}

// Build generates a dataset and computes its ViewModel.
func (s *Source) Build(ctx context.Context) (*ViewModel, error) {
	seed := s.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	gen := sales.NewGenerator(s.Days, rand.New(rand.NewPCG(seed, 0)))
	if s.Now != nil {
		gen.Now = s.Now
	}
	return Build(ctx, gen.Generate(), s.Options, rand.New(rand.NewPCG(seed, 1)))
}
