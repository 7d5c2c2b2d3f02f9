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

// Package kv declares the contract this module consumes from the storage
// engine. It mirrors github.com/erigontech/erigon-lib/kv's public cursor
// interfaces method-for-method (SeekExact, Seek, Next, Current,
// DeleteCurrent, Put, and the duplicate-key extensions SeekBothExact,
// NextDup, DeleteCurrentDuplicates) so that wiring this package to the real
// upstream MDBX-backed implementation is a one-file adapter, not a
// redesign. See DESIGN.md for why the interface is declared locally instead
// of importing the upstream package directly.
package kv

// Cursor is a positioned, forward-only stream over one plain (non
// duplicate-key) table. Implementations are not safe for concurrent use; a
// cursor is bound to one transaction and one goroutine, matching spec.md
// §5's single-threaded-per-cursor scheduling model.
type Cursor interface {
	// SeekExact returns the entry whose key equals k, or (nil, nil, nil) if
	// absent.
	SeekExact(k []byte) (key, value []byte, err error)
	// Seek returns the first entry with key >= k, or (nil, nil, nil) if the
	// table has no such entry.
	Seek(k []byte) (key, value []byte, err error)
	// Next returns the entry immediately following the cursor's current
	// position, or (nil, nil, nil) at end of table.
	Next() (key, value []byte, err error)
	// Current returns the entry at the cursor's current position without
	// moving it, or (nil, nil, nil) if the cursor is not positioned.
	Current() (key, value []byte, err error)
	// Close releases resources held by the cursor. Safe to call more than
	// once.
	Close()
}

// RwCursor additionally mutates the table it is positioned over.
type RwCursor interface {
	Cursor
	// Put inserts or overwrites the value stored at k.
	Put(k, v []byte) error
	// DeleteCurrent deletes the entry at the cursor's current position. It
	// is an error to call it when the cursor is not positioned.
	DeleteCurrent() error
}

// CursorDupSort is a Cursor over a duplicate-key (grouped) table: multiple
// entries may share a primary key and are ordered by an embedded sub-key.
// Seek/SeekExact/Next/Current above operate on the (key, full-value) pair
// exactly as in Cursor; the methods below add duplicate-key-aware
// positioning scoped to one primary key.
type CursorDupSort interface {
	Cursor
	// SeekBothExact positions the cursor at the entry matching both k and a
	// value prefix (the sub-key), returning it, or (nil, nil, nil) if no
	// duplicate of k carries that sub-key.
	SeekBothExact(k, subKey []byte) (key, value []byte, err error)
	// SeekBothRange positions the cursor at the first duplicate of k whose
	// value is >= subKey, or (nil, nil) if none.
	SeekBothRange(k, subKey []byte) (value []byte, err error)
	// NextDup advances within the duplicates of the current primary key
	// only; it returns (nil, nil, nil) at the boundary with the next
	// primary key (or end of table), without crossing it.
	NextDup() (key, value []byte, err error)
}

// RwCursorDupSort is the mutable counterpart of CursorDupSort.
type RwCursorDupSort interface {
	CursorDupSort
	RwCursor
	// DeleteCurrentDuplicates deletes every duplicate of the current
	// primary key.
	DeleteCurrentDuplicates() error
}

// Tx is a read-only transaction capable of opening cursors over named
// tables.
type Tx interface {
	// Cursor opens a read-only Cursor over a plain table.
	Cursor(table string) (Cursor, error)
	// CursorDupSort opens a read-only CursorDupSort over a duplicate-key
	// table.
	CursorDupSort(table string) (CursorDupSort, error)
}

// RwTx is a writable transaction.
type RwTx interface {
	Tx
	// RwCursor opens a writable RwCursor over a plain table.
	RwCursor(table string) (RwCursor, error)
	// RwCursorDupSort opens a writable RwCursorDupSort over a duplicate-key
	// table.
	RwCursorDupSort(table string) (RwCursorDupSort, error)
}
