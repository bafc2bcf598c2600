// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package push

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// newPushID generates the id that correlates logs, spans and results of one
// push.
func newPushID() ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}
