// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package share

import "time"

// Debouncer rate-limits outbound record sends through a [Bridge].
// A send is suppressed when the record is unchanged from the last
// one sent, judged by the Eq function, or when it arrives within
// MinInterval of it. Suppression is leading-edge: a burst's trailing
// values are dropped, so callers finishing a gesture should use
// [Debouncer.Force] for the final state.
type Debouncer struct {
	// MinInterval is the minimum time between sends.
	MinInterval time.Duration

	// Eq judges whether two records are equivalent enough to skip
	// the send, letting callers fold in float tolerances. Nil
	// means byte equality.
	Eq func(a, b Record) bool

	now    func() time.Time
	last   Record
	lastAt time.Time
}

// NewDebouncer returns a debouncer with the given minimum interval
// and byte equality.
func NewDebouncer(min time.Duration) *Debouncer {
	return &Debouncer{MinInterval: min, now: time.Now}
}

// Send forwards rec through the bridge unless it is suppressed.
// It reports whether the record was actually sent.
func (db *Debouncer) Send(br *Bridge, rec Record) (bool, error) {
	eq := db.Eq
	if eq == nil {
		eq = Record.Equal
	}
	if db.last != nil && eq(db.last, rec) {
		return false, nil
	}
	if db.MinInterval > 0 && !db.lastAt.IsZero() && db.now().Sub(db.lastAt) < db.MinInterval {
		return false, nil
	}
	return true, db.force(br, rec)
}

// Force sends rec unconditionally, resetting the suppression state.
func (db *Debouncer) Force(br *Bridge, rec Record) error {
	return db.force(br, rec)
}

func (db *Debouncer) force(br *Bridge, rec Record) error {
	db.last = rec.Clone()
	db.lastAt = db.now()
	return br.SetShared(rec)
}
