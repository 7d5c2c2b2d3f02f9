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

	"github.com/erigontech/erigon-trietables/kv"
)

// StorageSplitCursor presents StoragesTrieShallow and StoragesTrie, scoped
// to one account hash, as a single logically sorted stream (spec.md §4.3).
type StorageSplitCursor struct {
	m             *mergeCursor
	shallow, deep *storageSideCursor
}

var _ StorageCursor = (*StorageSplitCursor)(nil)

// NewStorageSplitCursor wraps a pair of already-open duplicate-key
// cursors, bound to the initial account hash h. Use
// Factory.StorageCursor / Factory.StorageRwCursor instead of calling this
// directly.
func NewStorageSplitCursor(shallow, deep kv.CursorDupSort, h AccountHash, logger log.Logger) (*StorageSplitCursor, error) {
	if h.IsZero() {
		return nil, ErrEmptyAccountHash
	}
	shallowSide := newStorageSideCursor(shallow, h)
	deepSide := newStorageSideCursor(deep, h)
	return &StorageSplitCursor{
		m:       newMergeCursor(shallowSide, deepSide, logger),
		shallow: shallowSide,
		deep:    deepSide,
	}, nil
}

func (c *StorageSplitCursor) SeekExact(p Path) (BranchNodeCompact, bool, error) {
	_, node, ok, err := c.m.seekExact(p)
	return node, ok, err
}

func (c *StorageSplitCursor) Seek(p Path) (Path, BranchNodeCompact, bool, error) {
	return c.m.seek(p)
}

func (c *StorageSplitCursor) Next() (Path, BranchNodeCompact, bool, error) {
	return c.m.next()
}

func (c *StorageSplitCursor) Current() (Path, bool) {
	return c.m.current()
}

func (c *StorageSplitCursor) Reset() {
	c.m.reset()
}

// SetHashedAddress rebinds the cursor to a different account hash. Doing
// so updates both underlying adapters' H and clears pending slots and
// last_consumed: failing to clear would surface stale entries from the
// prior account (spec.md §4.3, §9 "Delete-on-rebind").
func (c *StorageSplitCursor) SetHashedAddress(h AccountHash) error {
	if h.IsZero() {
		return ErrEmptyAccountHash
	}
	c.shallow.setHashedAddress(h)
	c.deep.setHashedAddress(h)
	c.m.reset()
	return nil
}

// StorageSplitRwCursor adds the storage-trie write path to
// StorageSplitCursor (spec.md §4.5 "Storage path").
type StorageSplitRwCursor struct {
	*StorageSplitCursor
	shallow, deep *storageRwSideCursor
}

// NewStorageSplitRwCursor wraps a pair of writable duplicate-key cursors.
func NewStorageSplitRwCursor(shallow, deep kv.RwCursorDupSort, h AccountHash, logger log.Logger) (*StorageSplitRwCursor, error) {
	if h.IsZero() {
		return nil, ErrEmptyAccountHash
	}
	shallowSide := newStorageRwSideCursor(shallow, h)
	deepSide := newStorageRwSideCursor(deep, h)
	return &StorageSplitRwCursor{
		StorageSplitCursor: &StorageSplitCursor{
			m:       newMergeCursor(shallowSide, deepSide, logger),
			shallow: &shallowSide.storageSideCursor,
			deep:    &deepSide.storageSideCursor,
		},
		shallow: shallowSide,
		deep:    deepSide,
	}, nil
}

// Upsert deletes any existing entry at p then writes (p, n) in the table
// selected by IsShallow(p). A no-op if p is empty.
func (c *StorageSplitRwCursor) Upsert(p Path, n BranchNodeCompact) error {
	if p.Empty() {
		return nil
	}
	side := c.sideFor(p)
	if _, err := side.deleteExact(p); err != nil {
		return err
	}
	return side.upsert(p, n)
}

// Delete removes the entry at p, if any. A no-op if p is empty.
func (c *StorageSplitRwCursor) Delete(p Path) (bool, error) {
	if p.Empty() {
		return false, nil
	}
	return c.sideFor(p).deleteExact(p)
}

// DeleteAll removes every duplicate of the bound account hash from both
// partner tables (spec.md §4.5 "whole storage trie deleted" flag).
func (c *StorageSplitRwCursor) DeleteAll() error {
	if err := c.shallow.deleteAllDuplicates(); err != nil {
		return err
	}
	return c.deep.deleteAllDuplicates()
}

func (c *StorageSplitRwCursor) sideFor(p Path) *storageRwSideCursor {
	if IsShallow(p) {
		return c.shallow
	}
	return c.deep
}
