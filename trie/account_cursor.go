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

// AccountSplitCursor presents AccountsTrieShallow and AccountsTrie as a
// single logically sorted stream (spec.md §4.2). It is the account-trie
// instantiation of the generic two-way merge cursor.
type AccountSplitCursor struct {
	m *mergeCursor
}

var _ Cursor = (*AccountSplitCursor)(nil)

// NewAccountSplitCursor wraps a pair of already-open cursors, one per
// partner table. Use Factory.AccountCursor / Factory.AccountRwCursor to
// obtain one bound to a transaction instead of calling this directly.
func NewAccountSplitCursor(shallow, deep kv.Cursor, logger log.Logger) *AccountSplitCursor {
	return &AccountSplitCursor{
		m: newMergeCursor(newAccountSideCursor(shallow), newAccountSideCursor(deep), logger),
	}
}

func (c *AccountSplitCursor) SeekExact(p Path) (BranchNodeCompact, bool, error) {
	_, node, ok, err := c.m.seekExact(p)
	return node, ok, err
}

func (c *AccountSplitCursor) Seek(p Path) (Path, BranchNodeCompact, bool, error) {
	return c.m.seek(p)
}

func (c *AccountSplitCursor) Next() (Path, BranchNodeCompact, bool, error) {
	return c.m.next()
}

func (c *AccountSplitCursor) Current() (Path, bool) {
	return c.m.current()
}

func (c *AccountSplitCursor) Reset() {
	c.m.reset()
}

// AccountSplitRwCursor adds the account-trie write path to
// AccountSplitCursor: selecting a table by depth and performing
// delete-then-upsert (spec.md §4.5 "Account path").
type AccountSplitRwCursor struct {
	*AccountSplitCursor
	shallow, deep *accountRwSideCursor
}

// NewAccountSplitRwCursor wraps a pair of writable cursors.
func NewAccountSplitRwCursor(shallow, deep kv.RwCursor, logger log.Logger) *AccountSplitRwCursor {
	shallowSide := newAccountRwSideCursor(shallow)
	deepSide := newAccountRwSideCursor(deep)
	return &AccountSplitRwCursor{
		AccountSplitCursor: &AccountSplitCursor{m: newMergeCursor(shallowSide, deepSide, logger)},
		shallow:            shallowSide,
		deep:               deepSide,
	}
}

// Upsert deletes any existing entry at p then writes (p, n), in the table
// selected by IsShallow(p). A no-op returning nil if p is empty (spec.md
// §3 invariant 2).
func (c *AccountSplitRwCursor) Upsert(p Path, n BranchNodeCompact) error {
	if p.Empty() {
		return nil
	}
	side := c.sideFor(p)
	if _, err := side.deleteExact(p); err != nil {
		return err
	}
	return side.upsert(p, n)
}

// Delete removes the entry at p, if any. Returns false if p is empty.
func (c *AccountSplitRwCursor) Delete(p Path) (bool, error) {
	if p.Empty() {
		return false, nil
	}
	return c.sideFor(p).deleteExact(p)
}

func (c *AccountSplitRwCursor) sideFor(p Path) *accountRwSideCursor {
	if IsShallow(p) {
		return c.shallow
	}
	return c.deep
}
