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

// BranchNodeCompact is the opaque compact encoding of a Merkle-Patricia
// branch node: bitmasks plus embedded children. This module treats it as a
// value payload; encoding/decoding the bitmasks is the trie algorithm's
// concern, out of scope per spec.md §1.
type BranchNodeCompact []byte

// AccountHash identifies one per-account storage trie (spec.md §3 "H").
type AccountHash [32]byte

// IsZero reports whether h is the all-zero hash, used to reject an unbound
// storage split cursor (see ErrEmptyAccountHash).
func (h AccountHash) IsZero() bool {
	return h == AccountHash{}
}

// StorageTrieEntry is the value payload of the storage tables: the
// duplicate sort key (Path) paired with its node (spec.md §3 "S").
type StorageTrieEntry struct {
	Path Path
	Node BranchNodeCompact
}
