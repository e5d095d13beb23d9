package actionqueue

import (
	"testing"

	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestQueue_EmptyYieldsSynthesizedRunCycle(t *testing.T) {
	q := New()
	a := q.Get()
	assert.Equal(t, domain.ActionRunCycle, a.Type)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DrainsInOrder(t *testing.T) {
	q := New()
	q.Add(domain.NewLoadAction(domain.ActionLoadLoad, 7))
	q.Tick(1)
	q.Add(domain.NewAction(domain.ActionMoveElevator))

	first := q.Get()
	assert.Equal(t, domain.ActionLoadLoad, first.Type)
	assert.Equal(t, 7, first.LoadID)

	second := q.Get()
	assert.Equal(t, domain.ActionAddTick, second.Type)

	third := q.Get()
	assert.Equal(t, domain.ActionMoveElevator, third.Type)

	assert.Equal(t, domain.ActionRunCycle, q.Get().Type)
}

func TestQueue_OpenCloseDoorEnqueueThreeTicksEach(t *testing.T) {
	q := New()
	q.OpenDoor()
	assert.Equal(t, 3, q.Len())
	q.CloseDoor()
	assert.Equal(t, 6, q.Len())
	for i := 0; i < 6; i++ {
		assert.Equal(t, domain.ActionAddTick, q.Get().Type)
	}
}

func TestQueue_Copy(t *testing.T) {
	q := New()
	q.Tick(2)
	cp := q.Copy()
	cp.Get()
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 1, cp.Len())
}
