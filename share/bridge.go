// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package share synchronizes one opaque state record per scene
// object across participants: a [Bridge] holds the local copy and
// coalesces remote updates for the frame loop, a [Debouncer] limits
// outbound sends, and [Transport] implementations carry records over
// the wire ([WebSocketTransport] with a matching [Hub] server).
package share

import (
	"bytes"
	"sync"
)

// Record is one opaque shared-state value. The scene layer decides
// what it encodes; the share layer only moves bytes.
type Record []byte

// Equal reports whether two records are byte-identical.
func (r Record) Equal(o Record) bool {
	return bytes.Equal(r, o)
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return Record(bytes.Clone(r))
}

// Transport carries records between participants. Implementations
// deliver incoming records on their own goroutine; [Bridge] does the
// locking.
type Transport interface {
	// Send transmits the local record to the other participants.
	Send(rec Record) error

	// OnRecord installs the handler for incoming records. It must
	// be called at most once, before any record can arrive.
	OnRecord(fn func(rec Record))

	// Close shuts the transport down.
	Close() error
}

// Bridge holds the local copy of one shared record and the changed
// flag the frame loop consumes. Without a transport it degrades to
// local-only state: sets succeed, nothing remote ever arrives.
//
// Remote updates may arrive on a network goroutine at any time; all
// state is mutex-guarded, and rapid successive updates coalesce so
// the consumer only ever sees the latest value.
type Bridge struct {
	mu        sync.Mutex
	local     Record
	changed   bool
	transport Transport
}

// NewBridge returns a bridge over the given transport, which may be
// nil for local-only operation. The bridge installs itself as the
// transport's record handler.
func NewBridge(tp Transport) *Bridge {
	br := &Bridge{transport: tp}
	if tp != nil {
		tp.OnRecord(br.ApplyRemote)
	}
	return br
}

// SetShared replaces the local record and, if a transport is
// attached, sends it to the other participants. Without a transport
// it trivially succeeds.
func (br *Bridge) SetShared(rec Record) error {
	br.mu.Lock()
	br.local = rec.Clone()
	tp := br.transport
	br.mu.Unlock()
	if tp == nil {
		return nil
	}
	return tp.Send(rec)
}

// Shared returns a copy of the current local record, which seeds
// late-joining participants and the local consumer alike.
func (br *Bridge) Shared() Record {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.local.Clone()
}

// Changed reports whether a remote update has arrived since the
// consumer last cleared the flag.
func (br *Bridge) Changed() bool {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.changed
}

// ClearChanged clears the changed flag; the consumer calls it after
// applying [Bridge.Shared].
func (br *Bridge) ClearChanged() {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.changed = false
}

// ApplyRemote delivers a record from the transport: the local copy
// becomes the incoming value (last write wins) and the changed flag
// is raised. Updates arriving faster than the consumer drains them
// coalesce into the single latest value.
func (br *Bridge) ApplyRemote(rec Record) {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.local = rec.Clone()
	br.changed = true
}

// Close closes the underlying transport, if any.
func (br *Bridge) Close() error {
	br.mu.Lock()
	tp := br.transport
	br.transport = nil
	br.mu.Unlock()
	if tp == nil {
		return nil
	}
	return tp.Close()
}
