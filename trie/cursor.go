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

// Cursor is the contract trie-traversal code above consumes (spec.md §6
// "Exposed upward"). A split cursor implements it by merging two
// underlying single-table cursors.
type Cursor interface {
	// SeekExact returns the entry at path p, or ok=false if absent.
	SeekExact(p Path) (node BranchNodeCompact, ok bool, err error)
	// Seek returns the first entry with path >= p, or ok=false if none.
	Seek(p Path) (path Path, node BranchNodeCompact, ok bool, err error)
	// Next returns the entry immediately after the cursor's current
	// position, or ok=false at end of stream.
	Next() (path Path, node BranchNodeCompact, ok bool, err error)
	// Current returns the path of the cursor's current position, or
	// ok=false if there is none: nothing consumed yet, the stream ran out,
	// the last SeekExact missed, or Reset was called.
	Current() (path Path, ok bool)
	// Reset clears any buffered merge state and the current position
	// (spec.md §4.2 "reset"). It does not reposition the underlying
	// table cursors, so a Next() straight after Reset continues from where
	// they stand rather than from the start of the tables.
	Reset()
}

// StorageCursor is Cursor scoped to one account's storage trie, with the
// ability to rebind that scope (spec.md §4.3, §6 "set_hashed_address").
type StorageCursor interface {
	Cursor
	// SetHashedAddress rebinds the cursor to a different account hash,
	// clearing all buffered merge state. Returns ErrEmptyAccountHash if h
	// is the zero hash.
	SetHashedAddress(h AccountHash) error
}
