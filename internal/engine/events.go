package engine

import "github.com/slavakukuyev/elevator-go/internal/domain"

// EventType tags a DiffEvent with which observable state change occurred.
type EventType string

const (
	EventElevatorMove        EventType = "ELEVATOR_MOVE"
	EventElevatorDestination EventType = "ELEVATOR_DESTINATION"
	EventLoadLoad            EventType = "LOAD_LOAD"
	EventLoadUnload          EventType = "LOAD_UNLOAD"
)

// DiffEvent is one record in the per-tick batch handed to external
// consumers (manager subscribers, dashboards). LoadID is only meaningful
// for EventLoadLoad/EventLoadUnload.
type DiffEvent struct {
	Type       EventType
	ElevatorID int
	Floor      domain.Floor
	LoadID     int
}

func (e *Engine) emit(ev DiffEvent) {
	e.pendingEvents = append(e.pendingEvents, ev)
}

func (e *Engine) flushEvents() {
	if e.OnDiffEvents != nil && len(e.pendingEvents) > 0 {
		batch := e.pendingEvents
		e.pendingEvents = nil
		e.OnDiffEvents(e.tickCount, batch)
		return
	}
	e.pendingEvents = nil
}
