//go:build !linux && !darwin && !windows

package hotkey

import (
	"errors"

	"maven/combo"
)

var errUnsupported = errors.New("global keyboard monitoring is not supported on this platform")

type nullSource struct {
	events chan Event
	errs   chan error
}

// New returns a source whose Register always fails.
func New() Source {
	return &nullSource{events: make(chan Event), errs: make(chan error)}
}

func (s *nullSource) Register([]combo.Combo) error { return errUnsupported }
func (s *nullSource) Unregister()                  {}
func (s *nullSource) Events() <-chan Event         { return s.events }
func (s *nullSource) Errors() <-chan error         { return s.errs }

func Diagnose() (string, error) { return "", errUnsupported }
