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

package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFindsEveryEntry(t *testing.T) {
	for _, geo := range All() {
		found, ok := Lookup(geo.Family, geo.Tracks, geo.SectorsPerTrack, geo.Sides)
		require.True(t, ok, "no entry for %v", geo.Key())
		assert.Same(t, geo, found)
	}
}

func TestDFSFamiliesHaveAllSideVariants(t *testing.T) {
	for _, geo := range All() {
		if !geo.Family.IsDFS() {
			continue
		}
		for _, s := range []Sides{SidesSingle, SidesInterleaved, SidesSequential} {
			v, ok := geo.Variant(s)
			require.True(t, ok, "%s has no %s variant", geo.Slug(), s)
			assert.Equal(t, geo.Tracks, v.Tracks)
			assert.Equal(t, geo.SectorsPerTrack, v.SectorsPerTrack)
			assert.Equal(t, geo.SectorSize, v.SectorSize)
			assert.Equal(t, geo.Density, v.Density)
		}
	}
}

func TestByTypeAndSlug(t *testing.T) {
	geo, err := ByType(DFS18SInterleaved80T)
	require.NoError(t, err)
	assert.Equal(t, "Watford/Opus", geo.Name)
	assert.Equal(t, SidesInterleaved, geo.Sides)

	bySlug, err := BySlug(" Watford-DS ")
	require.NoError(t, err)
	assert.Same(t, geo, bySlug)

	_, err = ByType(typeCount)
	assert.Error(t, err)
	_, err = ByType(-1)
	assert.Error(t, err)
	_, err = BySlug("c64")
	assert.Error(t, err)
}

func TestDescriptorDerivedValues(t *testing.T) {
	adfsL, _ := ByType(ADFSL)
	assert.Equal(t, 4096, adfsL.TrackBytes())
	assert.Equal(t, 2560, adfsL.TotalSectors())
	assert.Equal(t, int64(655360), adfsL.ImageSize())
	assert.Equal(t, 0, adfsL.FirstSector())
	assert.Equal(t, byte(1), adfsL.SizeCode())

	dos, _ := ByType(DOS720K)
	assert.Equal(t, 1, dos.FirstSector())
	assert.Equal(t, byte(2), dos.SizeCode())
	assert.Equal(t, int64(737280), dos.ImageSize())

	adfsD, _ := ByType(ADFSD)
	assert.Equal(t, byte(3), adfsD.SizeCode())
	assert.False(t, adfsD.CanCreate())

	dfs, _ := ByType(DFS10SSingle40T)
	assert.Equal(t,
		"Acorn DFS, single-sided, 40 tracks, single-density, 10 256 byte sectors/track",
		dfs.String())
}
