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

//
func offset(t *testing.T, geo *Descriptor, track, side, sector int) int64 {
	t.Helper()
	off, err := Offset(geo, track, side, sector)
	require.NoError(t, err)
	return off
}

func TestOffsetSingleSidedHasNoSecondSide(t *testing.T) {
	for _, geo := range All() {
		if geo.Sides != SidesSingle {
			continue
		}
		for track := 0; track < geo.Tracks; track++ {
			for sector := 0; sector <= geo.SectorsPerTrack; sector++ {
				_, err := Offset(geo, track, 1, sector)
				require.ErrorIs(t, err, ErrInvalidAddress)
			}
		}
	}
}

func TestOffsetInterleaved(t *testing.T) {
	geo, _ := ByType(ADFSL) // 80 tracks, 16 sectors, 256 bytes

	assert.Equal(t, int64(0), offset(t, geo, 0, 0, 0))
	assert.Equal(t, int64(4096), offset(t, geo, 0, 1, 0))
	assert.Equal(t, int64(8192), offset(t, geo, 1, 0, 0))
	assert.Equal(t, int64(256), offset(t, geo, 0, 0, 1))
	assert.Equal(t, int64(4352), offset(t, geo, 0, 1, 1))
	assert.Equal(t, int64(8448), offset(t, geo, 1, 0, 1))
	assert.Equal(t, int64(79*2*4096+4096+15*256), offset(t, geo, 79, 1, 15))
}

func TestOffsetSequential(t *testing.T) {
	geo, _ := ByType(DFS10SSequential80T)
	assert.Equal(t, int64(2560), offset(t, geo, 1, 0, 0))
	assert.Equal(t, int64(80*2560), offset(t, geo, 0, 1, 0))
	assert.Equal(t, int64(81*2560+3*256), offset(t, geo, 1, 1, 3))
}

func TestOffsetOneBasedSectors(t *testing.T) {
	geo, _ := ByType(DOS720K)
	assert.Equal(t, int64(0), offset(t, geo, 0, 0, 1))
	assert.Equal(t, int64(512), offset(t, geo, 0, 0, 2))
	assert.Equal(t, int64(4608), offset(t, geo, 0, 1, 1))
	_, err := Offset(geo, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestOffsetRanges(t *testing.T) {
	geo, _ := ByType(DFS10SInterleaved40T)

	for _, tc := range []struct{ track, side, sector int }{
		{-1, 0, 0}, {40, 0, 0}, {0, 0, -1}, {0, 0, 11}, {0, 2, 0}, {0, -1, 0},
	} {
		_, err := Offset(geo, tc.track, tc.side, tc.sector)
		assert.ErrorIs(t, err, ErrInvalidAddress, "%+v", tc)
	}

	// the upper sector bound is inclusive
	assert.Equal(t, int64(2560), offset(t, geo, 0, 0, 10))
}
