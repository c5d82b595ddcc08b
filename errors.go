package matrixscene

import "fmt"

// DuplicateChildError reports an attempt to add a child under an id that is
// already present in the same container.
type DuplicateChildError struct {
	ID string
}

func (e DuplicateChildError) Error() string {
	return fmt.Sprintf("matrixscene: duplicate child id %q", e.ID)
}

// UnknownChildError reports a reference to a child id that is not present in
// the container.
type UnknownChildError struct {
	ID string
}

func (e UnknownChildError) Error() string {
	return fmt.Sprintf("matrixscene: unknown child id %q", e.ID)
}

// UnknownFocusTargetError reports a SetFocus call naming an id that is absent
// from the focus ring or not focusable. Current focus is left unchanged.
type UnknownFocusTargetError struct {
	ID string
}

func (e UnknownFocusTargetError) Error() string {
	return fmt.Sprintf("matrixscene: unknown focus target %q", e.ID)
}

// UnknownSceneError reports a transition to a scene id the orchestrator does
// not know.
type UnknownSceneError struct {
	ID string
}

func (e UnknownSceneError) Error() string {
	return fmt.Sprintf("matrixscene: unknown scene %q", e.ID)
}

// RangeError reports an out-of-bound numeric configuration value. It is
// raised synchronously at the offending call, never from inside a render
// pass.
type RangeError struct {
	Field    string
	Value    float64
	Min, Max float64
}

func (e RangeError) Error() string {
	return fmt.Sprintf("matrixscene: %s = %v out of range [%v, %v]",
		e.Field, e.Value, e.Min, e.Max)
}
