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

// CountTable counts every entry in table by a full forward scan. It is a
// read-only operator/test convenience for confirming the shallow partner
// table stays small relative to the deep one (the whole point of the
// split); it performs no aggregation beyond a plain count and introduces
// no new invariant over the four tables this module owns.
func CountTable(tx kv.Tx, table string) (uint64, error) {
	c, err := tx.Cursor(table)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	var n uint64
	k, _, err := c.Seek(nil)
	if err != nil {
		return n, err
	}
	for k != nil {
		n++
		k, _, err = c.Next()
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
