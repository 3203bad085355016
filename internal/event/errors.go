package event

import "fmt"

// The construction errors below all stem from static precondition
// violations. None of them is retried internally; recovery policy belongs
// to the caller.

// CapacityError reports a tag or content bound violation. The store is left
// unchanged; the caller may retry with a smaller payload.
type CapacityError struct {
	Field string // "tags", "tag_elements", "tag_element", "content"
	Limit int
	Have  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("event: %s exceeds capacity: %d > %d", e.Field, e.Have, e.Limit)
}

// BufferTooSmallError reports that a caller-supplied output buffer cannot
// hold the full serialization. The caller must supply a larger buffer;
// output is never truncated silently.
type BufferTooSmallError struct {
	Needed int // bytes required, 0 when unknown at failure point
	Cap    int
}

func (e *BufferTooSmallError) Error() string {
	if e.Needed > 0 {
		return fmt.Sprintf("event: output buffer too small: need %d, have %d", e.Needed, e.Cap)
	}
	return fmt.Sprintf("event: output buffer too small: have %d", e.Cap)
}

// SequenceError reports a builder used out of order. It indicates a caller
// logic defect and should propagate, not be swallowed.
type SequenceError struct {
	Op    string
	State BuildState
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("event: %s not allowed in state %s", e.Op, e.State)
}
