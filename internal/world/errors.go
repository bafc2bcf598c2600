// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

import (
	"github.com/samber/oops"

	"github.com/holomush/tileworld/internal/tileevent"
)

// Error codes for world lookups and mutations.
const (
	CodeObjectNotFound    = "OBJECT_NOT_FOUND"
	CodeObjectDuplicate   = "OBJECT_DUPLICATE"
	CodeEventUnregistered = "EVENT_UNREGISTERED"
	CodeFireFailed        = "EVENT_FIRE_FAILED"
)

// ErrObjectNotFound creates an error for an unknown object id.
func ErrObjectNotFound(id string) error {
	return oops.Code(CodeObjectNotFound).
		With("object_id", id).
		Errorf("object %q not found", id)
}

// ErrObjectDuplicate creates an error for an object id that is already taken.
func ErrObjectDuplicate(id string) error {
	return oops.Code(CodeObjectDuplicate).
		With("object_id", id).
		Errorf("object %q already exists", id)
}

// ErrEventUnregistered creates an error for an event missing from the
// identity registry.
func ErrEventUnregistered(id tileevent.ID) error {
	return oops.Code(CodeEventUnregistered).
		With("event_id", id).
		Errorf("event %d is not registered", id)
}
