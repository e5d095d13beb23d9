package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// scatter is the simplest baseline policy: it picks a uniformly random
// pending load as the next destination and imposes no pickup filter at all.
type scatter struct {
	algorithm.Base
	eng algorithm.Engine
}

func init() {
	mustRegister("Scatter", func(eng algorithm.Engine) algorithm.Algorithm {
		return &scatter{eng: eng}
	})
}

func (a *scatter) Name() string { return "Scatter" }

func (a *scatter) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	pending := a.eng.PendingLoads()
	if len(pending) == 0 {
		return 0, false
	}
	choice := pending[a.eng.Intn(len(pending))]
	return choice.InitialFloor, true
}
