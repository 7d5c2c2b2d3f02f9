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

// AccountUpdate is one entry of a sorted account-trie update batch.
// Node == nil denotes deletion; a non-nil Node denotes upsert (spec.md §4.5).
type AccountUpdate struct {
	Path Path
	Node BranchNodeCompact // nil means delete
}

// StorageUpdate is one entry of a sorted storage-trie update batch, scoped
// to the account hash the StorageUpdateBatch it belongs to names.
type StorageUpdate struct {
	Path Path
	Node BranchNodeCompact // nil means delete
}

// StorageUpdateBatch bundles one account's storage-trie updates with the
// "whole storage trie deleted" flag spec.md §4.5 requires be applied before
// the individual entries in the same batch.
type StorageUpdateBatch struct {
	Hash             AccountHash
	WholeTrieDeleted bool
	Updates          []StorageUpdate
}

// WriteRouter dispatches sorted trie updates to the shallow or deep table
// selected by each path's depth, with delete-then-upsert semantics
// (spec.md §4.5), and provides full-table clear helpers for staged-sync
// rebuilds.
type WriteRouter struct {
	factory *Factory
	logger  log.Logger
}

// NewWriteRouter returns a WriteRouter that opens cursors through factory
// and logs clear-helper activity through logger.
func NewWriteRouter(factory *Factory, logger log.Logger) *WriteRouter {
	return &WriteRouter{factory: factory, logger: logger}
}

// WriteAccountUpdates applies a sorted batch of account-trie updates.
// Empty paths are skipped (spec.md §3 invariant 2). The returned count is
// the number of non-empty entries processed, deletions and upserts alike
// (spec.md §7 "partial-progress visibility").
func (w *WriteRouter) WriteAccountUpdates(tx kv.RwTx, updates []AccountUpdate) (int, error) {
	cursor, err := w.factory.AccountRwCursor(tx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, u := range updates {
		if u.Path.Empty() {
			continue
		}
		if u.Node == nil {
			if _, err := cursor.Delete(u.Path); err != nil {
				return count, err
			}
		} else if err := cursor.Upsert(u.Path, u.Node); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// WriteStorageUpdates applies one account's sorted storage-trie update
// batch. If batch.WholeTrieDeleted, every duplicate at batch.Hash is
// removed from both partner tables before any entry in Updates is applied
// (spec.md §4.5 "Storage path", scenario 6).
func (w *WriteRouter) WriteStorageUpdates(tx kv.RwTx, batch StorageUpdateBatch) (int, error) {
	cursor, err := w.factory.StorageRwCursor(tx, batch.Hash)
	if err != nil {
		return 0, err
	}
	if batch.WholeTrieDeleted {
		if err := cursor.DeleteAll(); err != nil {
			return 0, err
		}
	}
	count := 0
	for _, u := range batch.Updates {
		if u.Path.Empty() {
			continue
		}
		if u.Node == nil {
			if _, err := cursor.Delete(u.Path); err != nil {
				return count, err
			}
		} else if err := cursor.Upsert(u.Path, u.Node); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ClearAccountTrie empties both AccountsTrieShallow and AccountsTrie.
// Intended for staged-sync full rebuilds (spec.md §4.5 "Clear helpers").
func (w *WriteRouter) ClearAccountTrie(tx kv.RwTx) error {
	for _, table := range []string{kv.AccountsTrieShallow, kv.AccountsTrie} {
		n, err := clearTable(tx, table)
		if err != nil {
			return err
		}
		w.logClear(table, n)
	}
	return nil
}

// ClearStorageTrie empties both StoragesTrieShallow and StoragesTrie.
func (w *WriteRouter) ClearStorageTrie(tx kv.RwTx) error {
	for _, table := range []string{kv.StoragesTrieShallow, kv.StoragesTrie} {
		n, err := clearTable(tx, table)
		if err != nil {
			return err
		}
		w.logClear(table, n)
	}
	return nil
}

// ClearAll empties all four trie tables.
func (w *WriteRouter) ClearAll(tx kv.RwTx) error {
	if err := w.ClearAccountTrie(tx); err != nil {
		return err
	}
	return w.ClearStorageTrie(tx)
}

func (w *WriteRouter) logClear(table string, n int) {
	if w.logger == nil {
		return
	}
	w.logger.Debug("cleared trie table", "table", table, "entries", n)
}

// clearTable deletes every entry in table via its RwCursor, counting as it
// goes; it works for both plain and duplicate-key tables since
// DeleteCurrent on a dup-sort cursor removes exactly the one positioned
// (key, value) duplicate, not the whole primary key's group.
func clearTable(tx kv.RwTx, table string) (int, error) {
	c, err := tx.RwCursor(table)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	n := 0
	k, _, err := c.Seek(nil)
	if err != nil {
		return n, err
	}
	for k != nil {
		if err := c.DeleteCurrent(); err != nil {
			return n, err
		}
		n++
		k, _, err = c.Next()
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
