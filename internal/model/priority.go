package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Priority is the named form of a task priority used at the API boundary.
// Storage keeps the underlying integer: 1=HIGH, 2=MED, 3=LOW.
type Priority int

const (
	PriorityHigh Priority = 1
	PriorityMed  Priority = 2
	PriorityLow  Priority = 3
)

var ErrInvalidPriority = errors.New("value is not a valid priority; permitted: 1 (HIGH), 2 (MED), 3 (LOW)")

var priorityNames = map[Priority]string{
	PriorityHigh: "HIGH",
	PriorityMed:  "MED",
	PriorityLow:  "LOW",
}

// PriorityFromInt converts a stored integer into a Priority.
func PriorityFromInt(v int) (Priority, error) {
	p := Priority(v)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPriority, v)
	}
	return p, nil
}

// Int returns the storage representation.
func (p Priority) Int() int {
	return int(p)
}

func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// UnmarshalJSON accepts only the integer values 1, 2 and 3.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: got %s", ErrInvalidPriority, data)
	}
	parsed, err := PriorityFromInt(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
