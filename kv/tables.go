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

package kv

import (
	"sort"
	"strings"
)

// Four logical tables back the shallow/deep trie split (spec.md §3):
//
//	AccountsTrieShallow  key: P             value: N   len(P) <= D
//	AccountsTrie         key: P             value: N   len(P) >  D
//	StoragesTrieShallow  key: H  subkey: P   value: P+N len(P) <= D
//	StoragesTrie         key: H  subkey: P   value: P+N len(P) >  D
//
// AccountsTrie keeps the physical name the unsplit predecessor table used
// ("TrieAccount"); only the shallow band was carved out into a new table at
// upgrade time. Same for StoragesTrie / "TrieStorage". See DESIGN.md Open
// Question 1 for why this is the chosen migration story.
const (
	// AccountsTrieShallow holds account-trie nodes with path length <= D.
	AccountsTrieShallow = "TrieAccountShallow"
	// AccountsTrie holds account-trie nodes with path length > D. Physical
	// name is shared with the pre-split single table by design.
	AccountsTrie = "TrieAccount"
	// StoragesTrieShallow holds storage-trie nodes with path length <= D,
	// duplicate-keyed by account hash H, sub-keyed by path P.
	StoragesTrieShallow = "TrieStorageShallow"
	// StoragesTrie holds storage-trie nodes with path length > D,
	// duplicate-keyed by account hash H, sub-keyed by path P.
	StoragesTrie = "TrieStorage"
)

// AccountsTrieDeprecated and StoragesTrieDeprecated name the pre-split
// tables this module's tables replace. They alias AccountsTrie /
// StoragesTrie on purpose: the deep table inherits the old physical name,
// so no data migration is needed for paths that were already deep: only
// paths with len(P) <= D move, from the old unified table into the new
// *Shallow table, at upgrade time.
const (
	AccountsTrieDeprecated = AccountsTrie
	StoragesTrieDeprecated = StoragesTrie
)

// TableFlags mirrors erigon-lib/kv's TableFlags bit set, trimmed to the one
// flag this module's tables need.
type TableFlags uint

const (
	Default TableFlags = 0x00
	DupSort TableFlags = 0x04
)

// TableCfgItem mirrors erigon-lib/kv's TableCfgItem, trimmed to the fields a
// caller composing this module's tables into a larger database-open config
// actually reads.
type TableCfgItem struct {
	Flags TableFlags
}

// TableCfg mirrors erigon-lib/kv's TableCfg map type.
type TableCfg map[string]TableCfgItem

// TrieTables lists the four tables this module owns, sorted the way
// erigon-lib/kv's ChaindataTables is sorted in init(), so a caller iterating
// it for bucket creation gets a stable order.
var TrieTables = []string{
	AccountsTrieShallow,
	AccountsTrie,
	StoragesTrieShallow,
	StoragesTrie,
}

// TrieTablesCfg is this module's slice of a database-open TableCfg, in the
// same shape as erigon-lib/kv's ChaindataTablesCfg / BorTablesCfg. A caller
// opening a database that also stores this module's tables merges it into
// its own config, e.g. via maps.Copy(myCfg, kv.TrieTablesCfg).
var TrieTablesCfg = TableCfg{
	StoragesTrieShallow: {Flags: DupSort},
	StoragesTrie:        {Flags: DupSort},
}

func init() {
	sort.SliceStable(TrieTables, func(i, j int) bool {
		return strings.Compare(TrieTables[i], TrieTables[j]) < 0
	})
	for _, name := range TrieTables {
		if _, ok := TrieTablesCfg[name]; !ok {
			TrieTablesCfg[name] = TableCfgItem{}
		}
	}
}

// IsDupSort reports whether table is registered with the DupSort flag.
func IsDupSort(table string) bool {
	return TrieTablesCfg[table].Flags&DupSort != 0
}
