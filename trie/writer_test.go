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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/erigon-trietables/kv"
)

func TestWriteAccountUpdatesCountsUpsertsAndDeletesOnly(t *testing.T) {
	tx := newFakeTrieTx()
	router := NewWriteRouter(NewFactory(nil), nil)

	n, err := router.WriteAccountUpdates(tx, []AccountUpdate{
		{Path: Path{}, Node: node(1)},        // skipped: empty path
		{Path: Path{1}, Node: node(1)},       // shallow upsert
		{Path: Path{1, 2, 3, 4, 5, 6}, Node: node(2)}, // deep upsert
		{Path: Path{9}, Node: nil},            // delete of absent path, still counted
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	shallowCount, err := CountTable(tx, kv.AccountsTrieShallow)
	require.NoError(t, err)
	require.Equal(t, uint64(1), shallowCount)

	deepCount, err := CountTable(tx, kv.AccountsTrie)
	require.NoError(t, err)
	require.Equal(t, uint64(1), deepCount)
}

func TestWriteStorageUpdatesAppliesWholeTrieDeleteFirst(t *testing.T) {
	tx := newFakeTrieTx()
	f := NewFactory(nil)
	router := NewWriteRouter(f, nil)
	h := hashOf(7)

	seed, err := f.StorageRwCursor(tx, h)
	require.NoError(t, err)
	require.NoError(t, seed.Upsert(Path{1}, node(1)))
	require.NoError(t, seed.Upsert(Path{2}, node(2)))

	n, err := router.WriteStorageUpdates(tx, StorageUpdateBatch{
		Hash:             h,
		WholeTrieDeleted: true,
		Updates: []StorageUpdate{
			{Path: Path{3}, Node: node(3)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	c, err := f.StorageCursor(tx, h)
	require.NoError(t, err)
	var got []Path
	p, _, ok, err := c.Seek(nil)
	for ok {
		require.NoError(t, err)
		got = append(got, p.Clone())
		p, _, ok, err = c.Next()
	}
	require.NoError(t, err)
	require.Equal(t, []Path{{3}}, got, "whole-trie delete must run before the batch's own updates")
}

func TestClearAccountTrie(t *testing.T) {
	tx := newFakeTrieTx()
	f := NewFactory(nil)
	router := NewWriteRouter(f, nil)

	rw, err := f.AccountRwCursor(tx)
	require.NoError(t, err)
	require.NoError(t, rw.Upsert(Path{1}, node(1)))
	require.NoError(t, rw.Upsert(Path{1, 2, 3, 4, 5, 6}, node(2)))

	require.NoError(t, router.ClearAccountTrie(tx))

	for _, table := range []string{kv.AccountsTrieShallow, kv.AccountsTrie} {
		count, err := CountTable(tx, table)
		require.NoError(t, err)
		require.Zero(t, count)
	}
}

func TestClearAll(t *testing.T) {
	tx := newFakeTrieTx()
	f := NewFactory(nil)
	router := NewWriteRouter(f, nil)

	arw, err := f.AccountRwCursor(tx)
	require.NoError(t, err)
	require.NoError(t, arw.Upsert(Path{1}, node(1)))

	srw, err := f.StorageRwCursor(tx, hashOf(1))
	require.NoError(t, err)
	require.NoError(t, srw.Upsert(Path{1}, node(2)))

	require.NoError(t, router.ClearAll(tx))

	for _, table := range kv.TrieTables {
		count, err := CountTable(tx, table)
		require.NoError(t, err)
		require.Zero(t, count, "table %s should be empty", table)
	}
}
