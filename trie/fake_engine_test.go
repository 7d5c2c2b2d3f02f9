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
	"bytes"
	"fmt"
	"sort"

	"github.com/erigontech/erigon-trietables/kv"
)

// fakeRow is one physical (key, value) row. For a dup-sort table, rows
// sharing a key are kept adjacent and ordered by value, mirroring how
// MDBX lays out a duplicate-key table on disk.
type fakeRow struct {
	key, value []byte
}

// fakeTable is a minimal in-memory stand-in for one named table, enough to
// drive every cursor operation this module's kv.Cursor contract declares.
// It is not a general-purpose MDBX emulator: it exists to exercise the
// merge cursor's seek/seekExact/next/current logic and the write router's
// delete-then-upsert and clear paths against something that behaves like a
// real sorted, transactional table.
type fakeTable struct {
	dupSort bool
	rows    []fakeRow
}

func newFakeTable(dupSort bool) *fakeTable {
	return &fakeTable{dupSort: dupSort}
}

func rowLess(a, b fakeRow) bool {
	if c := bytes.Compare(a.key, b.key); c != 0 {
		return c < 0
	}
	return bytes.Compare(a.value, b.value) < 0
}

// lowerBound returns the index of the first row >= (key, value).
func (t *fakeTable) lowerBound(key, value []byte) int {
	return sort.Search(len(t.rows), func(i int) bool {
		return !rowLess(t.rows[i], fakeRow{key: key, value: value})
	})
}

// keyLowerBound returns the index of the first row with row.key >= key.
func (t *fakeTable) keyLowerBound(key []byte) int {
	return sort.Search(len(t.rows), func(i int) bool {
		return bytes.Compare(t.rows[i].key, key) >= 0
	})
}

func (t *fakeTable) put(key, value []byte) {
	if !t.dupSort {
		if i := t.keyLowerBound(key); i < len(t.rows) && bytes.Equal(t.rows[i].key, key) {
			t.rows[i].value = append([]byte(nil), value...)
			return
		}
	}
	row := fakeRow{key: append([]byte(nil), key...), value: append([]byte(nil), value...)}
	i := t.lowerBound(row.key, row.value)
	if i < len(t.rows) && bytes.Equal(t.rows[i].key, row.key) && bytes.Equal(t.rows[i].value, row.value) {
		return
	}
	t.rows = append(t.rows, fakeRow{})
	copy(t.rows[i+1:], t.rows[i:])
	t.rows[i] = row
}

func (t *fakeTable) deleteAt(i int) {
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
}

// fakeCursor implements kv.Cursor, kv.RwCursor, kv.CursorDupSort and
// kv.RwCursorDupSort all at once: each of the four method sets is contained
// in kv.RwCursorDupSort's, and a single concrete type satisfying all of
// them keeps this fake small without weakening what it exercises, since
// each production call site still only sees the narrower interface it
// declares a dependency on.
type fakeCursor struct {
	t          *fakeTable
	pos        int
	positioned bool
}

func (c *fakeCursor) SeekExact(k []byte) ([]byte, []byte, error) {
	i := c.t.keyLowerBound(k)
	if i >= len(c.t.rows) || !bytes.Equal(c.t.rows[i].key, k) {
		c.positioned = false
		return nil, nil, nil
	}
	c.pos, c.positioned = i, true
	return c.t.rows[i].key, c.t.rows[i].value, nil
}

func (c *fakeCursor) Seek(k []byte) ([]byte, []byte, error) {
	i := c.t.keyLowerBound(k)
	if i >= len(c.t.rows) {
		c.positioned = false
		return nil, nil, nil
	}
	c.pos, c.positioned = i, true
	return c.t.rows[i].key, c.t.rows[i].value, nil
}

func (c *fakeCursor) Next() ([]byte, []byte, error) {
	next := 0
	if c.positioned {
		next = c.pos + 1
	}
	if next >= len(c.t.rows) {
		c.positioned = false
		return nil, nil, nil
	}
	c.pos, c.positioned = next, true
	return c.t.rows[next].key, c.t.rows[next].value, nil
}

func (c *fakeCursor) Current() ([]byte, []byte, error) {
	if !c.positioned || c.pos >= len(c.t.rows) {
		return nil, nil, nil
	}
	return c.t.rows[c.pos].key, c.t.rows[c.pos].value, nil
}

func (c *fakeCursor) Close() {}

func (c *fakeCursor) Put(k, v []byte) error {
	c.t.put(k, v)
	c.positioned = false
	return nil
}

func (c *fakeCursor) DeleteCurrent() error {
	if !c.positioned || c.pos >= len(c.t.rows) {
		return fmt.Errorf("fakeCursor: DeleteCurrent on unpositioned cursor")
	}
	c.t.deleteAt(c.pos)
	c.positioned = false
	return nil
}

func (c *fakeCursor) SeekBothExact(k, subKey []byte) ([]byte, []byte, error) {
	i := c.t.lowerBound(k, subKey)
	if i >= len(c.t.rows) || !bytes.Equal(c.t.rows[i].key, k) || !bytes.HasPrefix(c.t.rows[i].value, subKey) {
		c.positioned = false
		return nil, nil, nil
	}
	c.pos, c.positioned = i, true
	return c.t.rows[i].key, c.t.rows[i].value, nil
}

func (c *fakeCursor) SeekBothRange(k, subKey []byte) ([]byte, error) {
	i := c.t.lowerBound(k, subKey)
	if i >= len(c.t.rows) || !bytes.Equal(c.t.rows[i].key, k) {
		c.positioned = false
		return nil, nil
	}
	c.pos, c.positioned = i, true
	return c.t.rows[i].value, nil
}

func (c *fakeCursor) NextDup() ([]byte, []byte, error) {
	if !c.positioned || c.pos+1 >= len(c.t.rows) || !bytes.Equal(c.t.rows[c.pos+1].key, c.t.rows[c.pos].key) {
		return nil, nil, nil
	}
	c.pos++
	return c.t.rows[c.pos].key, c.t.rows[c.pos].value, nil
}

func (c *fakeCursor) DeleteCurrentDuplicates() error {
	if !c.positioned || c.pos >= len(c.t.rows) {
		return fmt.Errorf("fakeCursor: DeleteCurrentDuplicates on unpositioned cursor")
	}
	key := c.t.rows[c.pos].key
	lo := c.pos
	for lo > 0 && bytes.Equal(c.t.rows[lo-1].key, key) {
		lo--
	}
	hi := c.pos
	for hi+1 < len(c.t.rows) && bytes.Equal(c.t.rows[hi+1].key, key) {
		hi++
	}
	c.t.rows = append(c.t.rows[:lo], c.t.rows[hi+1:]...)
	c.positioned = false
	return nil
}

// fakeTx implements kv.Tx and kv.RwTx over a fixed set of named tables.
type fakeTx struct {
	tables map[string]*fakeTable
}

func newFakeTx(tableNames ...string) *fakeTx {
	tx := &fakeTx{tables: make(map[string]*fakeTable)}
	for _, name := range tableNames {
		tx.tables[name] = newFakeTable(kv.IsDupSort(name))
	}
	return tx
}

func (tx *fakeTx) table(name string) *fakeTable {
	t, ok := tx.tables[name]
	if !ok {
		panic(fmt.Sprintf("fakeTx: unknown table %q", name))
	}
	return t
}

func (tx *fakeTx) Cursor(table string) (kv.Cursor, error) {
	return &fakeCursor{t: tx.table(table)}, nil
}

func (tx *fakeTx) CursorDupSort(table string) (kv.CursorDupSort, error) {
	return &fakeCursor{t: tx.table(table)}, nil
}

func (tx *fakeTx) RwCursor(table string) (kv.RwCursor, error) {
	return &fakeCursor{t: tx.table(table)}, nil
}

func (tx *fakeTx) RwCursorDupSort(table string) (kv.RwCursorDupSort, error) {
	return &fakeCursor{t: tx.table(table)}, nil
}

// newFakeTrieTx returns a fakeTx preloaded with this module's four tables.
func newFakeTrieTx() *fakeTx {
	return newFakeTx(kv.TrieTables...)
}
