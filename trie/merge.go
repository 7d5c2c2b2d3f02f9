// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package trie

import (
	log "github.com/erigontech/erigon-lib/log/v3"
)

// side tags which of the two partner tables last produced the entry
// returned to the caller. It is deliberately three-valued rather than a
// bool: sideNone is load-bearing on the first Next() after Reset() or
// before any Seek, where both pending slots must be filled (spec.md §9).
type side uint8

const (
	sideNone side = iota
	sideShallow
	sideDeep
)

type pendingEntry struct {
	path Path
	node BranchNodeCompact
}

// mergeCursor is the two-way sorted merge engine of spec.md §4.2/§4.3,
// generic over the account case (plain singleSideCursor) and the storage
// case (duplicate-key singleSideCursor scoped to one account hash). It
// implements the state machine of spec.md §4.6: Empty, SeekedExact(side),
// Buffered.
type mergeCursor struct {
	shallow, deep singleSideCursor

	pendingShallow, pendingDeep *pendingEntry
	lastConsumed                side
	lastReturned                Path

	logger    log.Logger
	warnedTie bool
}

func newMergeCursor(shallow, deep singleSideCursor, logger log.Logger) *mergeCursor {
	return &mergeCursor{shallow: shallow, deep: deep, logger: logger}
}

// seekExact dispatches directly to the side is_shallow(p) selects: exact
// lookup targets one key and each key lives in exactly one table, so this
// is the only operation that bypasses merging (spec.md §4.2).
func (m *mergeCursor) seekExact(p Path) (Path, BranchNodeCompact, bool, error) {
	m.pendingShallow = nil
	m.pendingDeep = nil
	m.lastReturned = nil

	if IsShallow(p) {
		m.lastConsumed = sideShallow
		path, node, ok, err := m.shallow.seekExact(p)
		if ok {
			m.lastReturned = path
		}
		return path, node, ok, err
	}
	m.lastConsumed = sideDeep
	path, node, ok, err := m.deep.seekExact(p)
	if ok {
		m.lastReturned = path
	}
	return path, node, ok, err
}

// seek seeks both sides to the lower bound and returns the smaller of the
// two results (spec.md §4.2 "seek(p)").
func (m *mergeCursor) seek(p Path) (Path, BranchNodeCompact, bool, error) {
	if err := m.refill(m.shallow, &m.pendingShallow, func(c singleSideCursor) (Path, BranchNodeCompact, bool, error) {
		return c.seek(p)
	}); err != nil {
		return nil, nil, false, err
	}
	if err := m.refill(m.deep, &m.pendingDeep, func(c singleSideCursor) (Path, BranchNodeCompact, bool, error) {
		return c.seek(p)
	}); err != nil {
		return nil, nil, false, err
	}
	return m.consumeSmaller()
}

// next refills whichever side last produced a result (or both, on the
// first call with no preceding seek) and returns the smaller pending entry
// (spec.md §4.2 "next()").
func (m *mergeCursor) next() (Path, BranchNodeCompact, bool, error) {
	switch m.lastConsumed {
	case sideNone:
		if m.pendingShallow == nil {
			if err := m.refill(m.shallow, &m.pendingShallow, singleSideCursor.next); err != nil {
				return nil, nil, false, err
			}
		}
		if m.pendingDeep == nil {
			if err := m.refill(m.deep, &m.pendingDeep, singleSideCursor.next); err != nil {
				return nil, nil, false, err
			}
		}
	case sideShallow:
		if err := m.refill(m.shallow, &m.pendingShallow, singleSideCursor.next); err != nil {
			return nil, nil, false, err
		}
	case sideDeep:
		if err := m.refill(m.deep, &m.pendingDeep, singleSideCursor.next); err != nil {
			return nil, nil, false, err
		}
	}
	return m.consumeSmaller()
}

// current returns the path last handed to the caller, or ok=false if
// nothing has been consumed yet or the last operation returned nothing
// (spec.md §4.2 "current()").
func (m *mergeCursor) current() (Path, bool) {
	if m.lastReturned == nil {
		return nil, false
	}
	return m.lastReturned, true
}

// reset clears both pending slots and last_consumed. It only clears merge
// state: the kv cursors under the two adapters keep their positions
// (spec.md §4.2 "reset()").
func (m *mergeCursor) reset() {
	m.pendingShallow = nil
	m.pendingDeep = nil
	m.lastConsumed = sideNone
	m.lastReturned = nil
}

func (m *mergeCursor) refill(c singleSideCursor, slot **pendingEntry, op func(singleSideCursor) (Path, BranchNodeCompact, bool, error)) error {
	path, node, ok, err := op(c)
	if err != nil {
		return err
	}
	if !ok {
		*slot = nil
		return nil
	}
	*slot = &pendingEntry{path: path, node: node}
	return nil
}

// consumeSmaller inspects the two pending slots and returns the one with
// the smaller path, breaking ties in favor of shallow (spec.md §4.2
// "consume_smaller()"). A tie is unreachable in a consistent store (the
// partition is a function of the path) and only ever fires if invariant
// P1 has been violated; it is logged once per cursor rather than per call.
func (m *mergeCursor) consumeSmaller() (Path, BranchNodeCompact, bool, error) {
	switch {
	case m.pendingShallow != nil && m.pendingDeep != nil:
		cmp := m.pendingShallow.path.Compare(m.pendingDeep.path)
		if cmp == 0 && !m.warnedTie {
			m.warnedTie = true
			if m.logger != nil {
				m.logger.Warn("shallow/deep trie cursors produced equal paths; partitioning invariant likely violated", "path", m.pendingShallow.path)
			}
		}
		if cmp <= 0 {
			e := m.pendingShallow
			m.pendingShallow = nil
			m.lastConsumed = sideShallow
			m.lastReturned = e.path
			return e.path, e.node, true, nil
		}
		e := m.pendingDeep
		m.pendingDeep = nil
		m.lastConsumed = sideDeep
		m.lastReturned = e.path
		return e.path, e.node, true, nil
	case m.pendingShallow != nil:
		e := m.pendingShallow
		m.pendingShallow = nil
		m.lastConsumed = sideShallow
		m.lastReturned = e.path
		return e.path, e.node, true, nil
	case m.pendingDeep != nil:
		e := m.pendingDeep
		m.pendingDeep = nil
		m.lastConsumed = sideDeep
		m.lastReturned = e.path
		return e.path, e.node, true, nil
	default:
		m.lastConsumed = sideNone
		m.lastReturned = nil
		return nil, nil, false, nil
	}
}
