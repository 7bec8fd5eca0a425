package pageloader

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// LoadMetaError exposes correlation metadata for a failed load.
type LoadMetaError interface {
	error
	Unwrap() error
	LoadID() (uuid.UUID, bool)
	LoadReason() (LoadReason, bool)
}

type loadTaggedError struct {
	err    error
	id     uuid.UUID
	reason LoadReason
}

func newLoadTaggedError(err error, id uuid.UUID, reason LoadReason) error {
	if err == nil {
		return nil
	}
	return &loadTaggedError{err: err, id: id, reason: reason}
}

func (e *loadTaggedError) Error() string { return e.err.Error() }
func (e *loadTaggedError) Unwrap() error { return e.err }

func (e *loadTaggedError) LoadID() (uuid.UUID, bool) {
	if e.id == uuid.Nil {
		return uuid.Nil, false
	}
	return e.id, true
}

func (e *loadTaggedError) LoadReason() (LoadReason, bool) { return e.reason, true }

func (e *loadTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "load(id=%s,reason=%s): %+v", e.id, e.reason, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractLoadID returns the load ID from err if present.
func ExtractLoadID(err error) (uuid.UUID, bool) {
	var lme LoadMetaError
	if errors.As(err, &lme) {
		return lme.LoadID()
	}
	return uuid.Nil, false
}

// ExtractLoadReason returns the load reason from err if present.
func ExtractLoadReason(err error) (LoadReason, bool) {
	var lme LoadMetaError
	if errors.As(err, &lme) {
		return lme.LoadReason()
	}
	return 0, false
}
