/*
   SDFDrive - simple disc format drive emulator
   Copyright (c) 2022, Alexander Vollschwitz

   This file is part of SDFDrive.

   SDFDrive is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   SDFDrive is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with SDFDrive. If not, see <http://www.gnu.org/licenses/>.
*/

package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
func TestIsImageFile(t *testing.T) {
	for _, f := range []string{"a.ssd", "b/c.dsd.gz", "D.ADL", "x.img.7z"} {
		assert.True(t, IsImageFile(f), f)
	}
	for _, f := range []string{"a.txt", "b.zip", "noext"} {
		assert.False(t, IsImageFile(f), f)
	}
}

//
func TestNewEntry(t *testing.T) {
	e := newEntry(filepath.Join("acorn", "Chuckie_Egg.ssd.zip"))
	assert.Equal(t, "acorn Chuckie Egg", e.Name)
	assert.Equal(t, "ssd", e.Type)
	assert.Equal(t, "zip", e.Compressor)
}

//
func TestIndex(t *testing.T) {

	base := filepath.Join(t.TempDir(), "index")
	repo := t.TempDir()

	for _, f := range []string{"elite.ssd", "revs.dsd.gz", "readme.txt",
		filepath.Join("adfs", "elite-hd.adl")} {
		path := filepath.Join(repo, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte{0}, 0644))
	}

	idx, err := NewIndex(base, repo)
	require.NoError(t, err)
	require.NoError(t, idx.Start())

	res, err := idx.Search("elite", nil, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"elite.ssd", filepath.Join("adfs", "elite-hd.adl")}, res.Hits)
	assert.True(t, res.Complete)

	res, err = idx.Search("elite", nil, 1)
	require.NoError(t, err)
	assert.Len(t, res.Hits, 1)
	assert.False(t, res.Complete)
	assert.Equal(t, uint64(2), res.Total)

	res, err = idx.Search("readme", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Hits)

	_, err = idx.Search("  ", nil, 10)
	assert.Error(t, err)

	res, err = idx.Search("elite", []string{"adl", "ADM"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("adfs", "elite-hd.adl")}, res.Hits)
	assert.Equal(t, []string{"repo://adfs/elite-hd.adl"}, res.Refs())

	_, err = idx.Search("elite", []string{"txt"}, 10)
	assert.Error(t, err)

	idx.Stop()

	// removed files get pruned when the index is opened again
	require.NoError(t, os.Remove(filepath.Join(repo, "elite.ssd")))

	idx, err = NewIndex(base, repo)
	require.NoError(t, err)
	require.NoError(t, idx.Start())
	defer idx.Stop()

	res, err = idx.Search("elite", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("adfs", "elite-hd.adl")}, res.Hits)

	res, err = idx.Search("revs", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"revs.dsd.gz"}, res.Hits)
}
