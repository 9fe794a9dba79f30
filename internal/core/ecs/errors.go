package ecs

import "fmt"

// Every error in this package is a programming-contract violation: none is
// transient and none should be retried. Callers that are unsure check Has first.

// DuplicateComponentError is returned by Add when the slot already holds the component.
type DuplicateComponentError struct {
	Component string
	Slot      uint32
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %s already exists on slot %d", e.Component, e.Slot)
}

// MissingComponentError is returned by Set, Get, Del and Copy on a slot without the component.
type MissingComponentError struct {
	Component string
	Slot      uint32
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("component %s does not exist on slot %d", e.Component, e.Slot)
}

// SlotRangeError is returned by Add when the slot lies beyond the world capacity.
type SlotRangeError struct {
	Component string
	Slot      uint32
	Capacity  int
}

func (e SlotRangeError) Error() string {
	return fmt.Sprintf("slot %d outside capacity %d of pool %s", e.Slot, e.Capacity, e.Component)
}

// UnsupportedOperationError marks an operation a storage variant refuses by policy.
type UnsupportedOperationError struct {
	Op        string
	Component string
}

func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s is not supported by pool %s", e.Op, e.Component)
}

// NotImplementedError marks a capability that is not yet supported by a storage variant.
type NotImplementedError struct {
	Op        string
	Component string
}

func (e NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not yet supported by pool %s", e.Op, e.Component)
}
