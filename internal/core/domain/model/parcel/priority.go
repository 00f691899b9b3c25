package parcel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Priority of a delivery. The empty value means NORMAL.
type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityUrgent Priority = "URGENT"
)

// ParsePriority accepts NORMAL, URGENT and the empty string.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if p == "" {
		return PriorityNormal, nil
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p Priority) Validate() error {
	if p != PriorityNormal && p != PriorityUrgent {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", string(p)))
	}
	return nil
}

func (p Priority) String() string {
	return string(p)
}
