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

import "errors"

// ErrEmptyAccountHash is returned when a storage split cursor is
// constructed or rebound with the all-zero account hash. It is a
// caller-programming-error guard, not a storage engine error, and is never
// returned by any cursor read/write operation (spec.md §7's "one error
// kind" policy covers only errors the storage engine itself produces).
var ErrEmptyAccountHash = errors.New("trie: empty account hash")
