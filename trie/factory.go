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

// Factory builds fresh split cursor pairs bound to one transaction
// (spec.md §4.4). Each call opens two new underlying cursors; it does not
// cache or reuse them.
type Factory struct {
	logger log.Logger
}

// NewFactory returns a Factory that logs through logger. A nil logger is
// valid and silences the tie-break warning (spec.md §9).
func NewFactory(logger log.Logger) *Factory {
	return &Factory{logger: logger}
}

// AccountCursor opens a read-only split cursor over the account trie.
func (f *Factory) AccountCursor(tx kv.Tx) (*AccountSplitCursor, error) {
	shallow, err := tx.Cursor(kv.AccountsTrieShallow)
	if err != nil {
		return nil, err
	}
	deep, err := tx.Cursor(kv.AccountsTrie)
	if err != nil {
		return nil, err
	}
	return NewAccountSplitCursor(shallow, deep, f.logger), nil
}

// AccountRwCursor opens a writable split cursor over the account trie.
func (f *Factory) AccountRwCursor(tx kv.RwTx) (*AccountSplitRwCursor, error) {
	shallow, err := tx.RwCursor(kv.AccountsTrieShallow)
	if err != nil {
		return nil, err
	}
	deep, err := tx.RwCursor(kv.AccountsTrie)
	if err != nil {
		return nil, err
	}
	return NewAccountSplitRwCursor(shallow, deep, f.logger), nil
}

// StorageCursor opens a read-only split cursor over the storage trie,
// scoped to account hash h.
func (f *Factory) StorageCursor(tx kv.Tx, h AccountHash) (*StorageSplitCursor, error) {
	shallow, err := tx.CursorDupSort(kv.StoragesTrieShallow)
	if err != nil {
		return nil, err
	}
	deep, err := tx.CursorDupSort(kv.StoragesTrie)
	if err != nil {
		return nil, err
	}
	return NewStorageSplitCursor(shallow, deep, h, f.logger)
}

// StorageRwCursor opens a writable split cursor over the storage trie,
// scoped to account hash h.
func (f *Factory) StorageRwCursor(tx kv.RwTx, h AccountHash) (*StorageSplitRwCursor, error) {
	shallow, err := tx.RwCursorDupSort(kv.StoragesTrieShallow)
	if err != nil {
		return nil, err
	}
	deep, err := tx.RwCursorDupSort(kv.StoragesTrie)
	if err != nil {
		return nil, err
	}
	return NewStorageSplitRwCursor(shallow, deep, h, f.logger)
}
