package notifications

import (
	"errors"
	"fmt"
)

type State int

const (
	StateIdle State = iota
	StatePolling
)

var ErrInvalidTransition = errors.New("invalid state transition")

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePolling:
		return "Polling"
	default:
		return "InvalidState"
	}
}

func (s State) validateTransitionTo(newState State) error {
	switch s {
	case StateIdle:
		if newState == StatePolling {
			return nil
		}
	case StatePolling:
		if newState == StateIdle {
			return nil
		}
	}
	return fmt.Errorf("%w from %v to %v", ErrInvalidTransition, s, newState)
}
