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

import "bytes"

// ShallowTrieDepth is the maximum nibble-path length, inclusive, stored in
// a *Shallow table. Paths longer than this go to the deep partner table.
// Chosen so the shallow partition is the small, universally-touched top of
// the trie; changing it requires a migration (spec.md §9), so it is a
// compile-time constant, not a config field.
const ShallowTrieDepth = 5

// TrieAccountRLPMaxSize is the RLP-encoded size, in bytes, of a fully
// populated trie account (2-byte header + 4 field length bytes + 8-byte
// nonce + 3 32-byte fields). It is informational only: spec.md §1 names it
// a fixed input, not an algorithmic concern, and nothing in this module
// consumes it.
const TrieAccountRLPMaxSize = 110

// Path is a Merkle-Patricia trie path: an ordered sequence of 4-bit
// nibbles, each represented as one byte in [0, 16) for simplicity. Storing
// one nibble per byte (rather than packing two nibbles per byte) makes the
// encoded form byte-comparable in exactly nibble order, including across
// paths of different lengths: a path is a prefix of a longer path with the
// same leading nibbles iff its encoded bytes are its prefix, and
// bytes.Compare already orders a prefix before its extensions. That is
// precisely the lexicographic order spec.md §3 requires of StoredNibbles /
// StoredNibblesSubKey.
type Path []byte

// IsShallow reports whether p belongs in the shallow partner table.
func IsShallow(p Path) bool {
	return len(p) <= ShallowTrieDepth
}

// Empty reports whether p is the zero-length path, which is never stored
// (spec.md §3 invariant 2).
func (p Path) Empty() bool {
	return len(p) == 0
}

// Compare orders two paths lexicographically by nibble, matching the order
// StoredNibbles/StoredNibblesSubKey preserve over their encoded form.
func (p Path) Compare(other Path) int {
	return bytes.Compare(p, other)
}

// Clone returns an independent copy of p, for callers that must outlive the
// buffer a cursor reused internally.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// StoredNibbles encodes p as it is stored as the key of AccountsTrie /
// AccountsTrieShallow. A raw path is itself a valid B-tree key: comparing
// two keys of different lengths already treats the shorter one as smaller
// when it is a prefix of the longer, exactly the order Path.Compare wants.
func StoredNibbles(p Path) []byte {
	return []byte(p)
}

// nibbleTerminator is appended after the shifted nibbles in
// StoredNibblesSubKey. Shifting every nibble up by one (subKeyShift) frees
// byte value 0 to serve as a terminator strictly smaller than any nibble,
// which a raw path encoding cannot offer: the duplicate-key tables store
// subKey++node as the dup-sort value, and without a terminator a path that
// is a strict prefix of another can sort after it whenever the shorter
// path's trailing node bytes happen to exceed the longer path's next
// nibble, corrupting SeekBothRange's lower-bound search.
const nibbleTerminator = 0x00
const subKeyShift = 1

// StoredNibblesSubKey encodes p as the duplicate-key sub-key prefix of the
// value stored in StoragesTrie / StoragesTrieShallow, following the
// account hash H as the primary dup-sort key. The returned bytes are a
// comparable prefix: bytes.Compare over two StoredNibblesSubKey results,
// or over two full encoded values sharing this prefix, orders exactly by
// nibble path, including prefix-before-extension, regardless of what
// payload bytes follow.
func StoredNibblesSubKey(p Path) []byte {
	out := make([]byte, len(p)+1)
	for i, nibble := range p {
		out[i] = nibble + subKeyShift
	}
	out[len(p)] = nibbleTerminator
	return out
}

// PathFromSubKey decodes the path encoded by StoredNibblesSubKey back from
// the leading bytes of a duplicate-key table's stored value, returning the
// path and the byte offset of the terminator (where the node payload
// begins). ok is false if v does not contain a nibbleTerminator byte.
func PathFromSubKey(v []byte) (p Path, nodeOffset int, ok bool) {
	for i, b := range v {
		if b == nibbleTerminator {
			path := make(Path, i)
			for j := 0; j < i; j++ {
				path[j] = v[j] - subKeyShift
			}
			return path, i + 1, true
		}
	}
	return nil, 0, false
}

// PathFromEncoded decodes bytes produced by StoredNibbles back into a
// Path. It does not copy b. Values produced by StoredNibblesSubKey decode
// through PathFromSubKey instead.
func PathFromEncoded(b []byte) Path {
	if len(b) == 0 {
		return nil
	}
	return Path(b)
}
