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

import "github.com/erigontech/erigon-trietables/kv"

// singleSideCursor is the contract the merge engine needs from one of its
// two sides. It is a pure wrapper over the storage engine's native cursor:
// no buffering, no cross-table logic (spec.md §4.1). Both the account and
// storage adapters below implement it.
type singleSideCursor interface {
	seekExact(p Path) (Path, BranchNodeCompact, bool, error)
	seek(p Path) (Path, BranchNodeCompact, bool, error)
	next() (Path, BranchNodeCompact, bool, error)
}

// accountSideCursor adapts a plain kv.Cursor over AccountsTrie or
// AccountsTrieShallow to singleSideCursor.
type accountSideCursor struct {
	c kv.Cursor
}

func newAccountSideCursor(c kv.Cursor) *accountSideCursor {
	return &accountSideCursor{c: c}
}

func (a *accountSideCursor) seekExact(p Path) (Path, BranchNodeCompact, bool, error) {
	k, v, err := a.c.SeekExact(StoredNibbles(p))
	if err != nil {
		return nil, nil, false, err
	}
	if k == nil {
		return nil, nil, false, nil
	}
	return PathFromEncoded(k), BranchNodeCompact(v), true, nil
}

func (a *accountSideCursor) seek(p Path) (Path, BranchNodeCompact, bool, error) {
	k, v, err := a.c.Seek(StoredNibbles(p))
	if err != nil {
		return nil, nil, false, err
	}
	if k == nil {
		return nil, nil, false, nil
	}
	return PathFromEncoded(k), BranchNodeCompact(v), true, nil
}

func (a *accountSideCursor) next() (Path, BranchNodeCompact, bool, error) {
	k, v, err := a.c.Next()
	if err != nil {
		return nil, nil, false, err
	}
	if k == nil {
		return nil, nil, false, nil
	}
	return PathFromEncoded(k), BranchNodeCompact(v), true, nil
}

// accountRwSideCursor is accountSideCursor plus the mutations the write
// router needs; kept separate so read-only callers never see Put/Delete.
type accountRwSideCursor struct {
	accountSideCursor
	rw kv.RwCursor
}

func newAccountRwSideCursor(c kv.RwCursor) *accountRwSideCursor {
	return &accountRwSideCursor{accountSideCursor: accountSideCursor{c: c}, rw: c}
}

func (a *accountRwSideCursor) deleteExact(p Path) (bool, error) {
	k, _, err := a.rw.SeekExact(StoredNibbles(p))
	if err != nil {
		return false, err
	}
	if k == nil {
		return false, nil
	}
	if err := a.rw.DeleteCurrent(); err != nil {
		return false, err
	}
	return true, nil
}

func (a *accountRwSideCursor) upsert(p Path, n BranchNodeCompact) error {
	return a.rw.Put(StoredNibbles(p), n)
}

// storageSideCursor adapts a kv.CursorDupSort over StoragesTrie or
// StoragesTrieShallow, scoped to one account hash, to singleSideCursor.
// Seeks and Next are duplicate-key operations scoped to h (spec.md §4.1
// "Storage variants").
type storageSideCursor struct {
	c kv.CursorDupSort
	h AccountHash
}

func newStorageSideCursor(c kv.CursorDupSort, h AccountHash) *storageSideCursor {
	return &storageSideCursor{c: c, h: h}
}

func (s *storageSideCursor) setHashedAddress(h AccountHash) {
	s.h = h
}

func (s *storageSideCursor) seekExact(p Path) (Path, BranchNodeCompact, bool, error) {
	_, v, err := s.c.SeekBothExact(s.h[:], StoredNibblesSubKey(p))
	if err != nil {
		return nil, nil, false, err
	}
	if v == nil {
		return nil, nil, false, nil
	}
	entry, ok := decodeStorageTrieEntry(v)
	// SeekBothExact matches on the sub-key prefix of the stored value; the
	// exact-equality check here is the defensive filter spec.md §4.1
	// requires ("accepted only if its stored sub-key equals p").
	if !ok || entry.Path.Compare(p) != 0 {
		return nil, nil, false, nil
	}
	return entry.Path, entry.Node, true, nil
}

// seek performs a lower-bound duplicate-key seek: the first entry within h
// whose sub-key is >= p. The result is not filtered by exact match
// (spec.md §4.1 "lower-bound semantics").
func (s *storageSideCursor) seek(p Path) (Path, BranchNodeCompact, bool, error) {
	v, err := s.c.SeekBothRange(s.h[:], StoredNibblesSubKey(p))
	if err != nil {
		return nil, nil, false, err
	}
	if v == nil {
		return nil, nil, false, nil
	}
	entry, ok := decodeStorageTrieEntry(v)
	if !ok {
		return nil, nil, false, nil
	}
	return entry.Path, entry.Node, true, nil
}

// next advances within the duplicates of h only; it stops at the boundary
// with the next account hash rather than crossing it (spec.md §4.3).
func (s *storageSideCursor) next() (Path, BranchNodeCompact, bool, error) {
	k, v, err := s.c.NextDup()
	if err != nil {
		return nil, nil, false, err
	}
	if k == nil {
		return nil, nil, false, nil
	}
	entry, ok := decodeStorageTrieEntry(v)
	if !ok {
		return nil, nil, false, nil
	}
	return entry.Path, entry.Node, true, nil
}

// storageRwSideCursor is storageSideCursor plus the mutations the write
// router needs.
type storageRwSideCursor struct {
	storageSideCursor
	rw kv.RwCursorDupSort
}

func newStorageRwSideCursor(c kv.RwCursorDupSort, h AccountHash) *storageRwSideCursor {
	return &storageRwSideCursor{storageSideCursor: storageSideCursor{c: c, h: h}, rw: c}
}

func (s *storageRwSideCursor) deleteExact(p Path) (bool, error) {
	_, v, err := s.rw.SeekBothExact(s.h[:], StoredNibblesSubKey(p))
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	if err := s.rw.DeleteCurrent(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *storageRwSideCursor) upsert(p Path, n BranchNodeCompact) error {
	return s.rw.Put(s.h[:], encodeStorageTrieEntry(StorageTrieEntry{Path: p, Node: n}))
}

func (s *storageRwSideCursor) deleteAllDuplicates() error {
	k, _, err := s.rw.SeekExact(s.h[:])
	if err != nil {
		return err
	}
	if k == nil {
		return nil
	}
	return s.rw.DeleteCurrentDuplicates()
}

// encodeStorageTrieEntry / decodeStorageTrieEntry define the value layout
// of the storage tables: StoredNibblesSubKey(p), which self-delimits with
// a terminator byte, followed directly by the node payload. spec.md §6
// leaves the exact value format ("StorageTrieEntry") to the surrounding
// system; this module fixes one concrete layout whose byte order, over the
// whole value, matches nibble-path order exactly (see StoredNibblesSubKey)
// so SeekBothRange's lower-bound search behaves correctly regardless of
// what the node payload contains.
func encodeStorageTrieEntry(e StorageTrieEntry) []byte {
	subKey := StoredNibblesSubKey(e.Path)
	out := make([]byte, len(subKey)+len(e.Node))
	copy(out, subKey)
	copy(out[len(subKey):], e.Node)
	return out
}

func decodeStorageTrieEntry(v []byte) (StorageTrieEntry, bool) {
	path, nodeOffset, ok := PathFromSubKey(v)
	if !ok {
		return StorageTrieEntry{}, false
	}
	return StorageTrieEntry{Path: path, Node: BranchNodeCompact(v[nodeOffset:])}, true
}
