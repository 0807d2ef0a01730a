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
	"github.com/xaionaro-go/bytesextra"
)

// filled returns an image of given size filled with the format filler byte,
// which never forms a valid DFS catalogue
func filled(size int) []byte {
	data := make([]byte, size)
	for ix := range data {
		data[ix] = 0xe5
	}
	return data
}

//
func dfsCatalogue(data []byte, off, sectors int, starts ...int) {
	for ix := off; ix < off+512; ix++ {
		data[ix] = 0
	}
	data[off+0x105] = byte(len(starts) * 8)
	data[off+0x106] = byte(sectors>>8) & 0x07
	data[off+0x107] = byte(sectors)
	for ix, s := range starts {
		base := off + 0x100 + (ix+1)*8
		data[base+6] = byte(s>>8) & 0x03
		data[base+7] = byte(s)
	}
}

//
func detect(t *testing.T, ext string, data []byte) (*Descriptor, error) {
	t.Helper()
	return Detect("test."+ext, ext, bytesextra.NewReadWriteSeeker(data))
}

func TestDetectRejectsUnsortedCatalogue(t *testing.T) {
	data := filled(4096)
	dfsCatalogue(data, 0, 400, 2, 5)

	geo, err := detect(t, "ssd", data)
	assert.Nil(t, geo)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	dfsCatalogue(data, 0, 400, 5, 2)
	geo, err = detect(t, "ssd", data)
	require.NoError(t, err)
	assert.Equal(t, DFS10SSingle40T, geo.Type)
}

func TestDetectRejectsBadDirectorySize(t *testing.T) {
	data := filled(4096)
	dfsCatalogue(data, 0, 400)
	data[0x105] = 12
	_, err := detect(t, "ssd", data)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	data[0x105] = 0xff
	_, err = detect(t, "ssd", data)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	// 31 entries is the maximum
	data[0x105] = 31 * 8
	geo, err := detect(t, "ssd", data)
	require.NoError(t, err)
	assert.Equal(t, DFS10SSingle40T, geo.Type)
}

func TestDetectDFSSizes(t *testing.T) {
	tests := []struct {
		sectors int
		want    DiscType
	}{
		{2, DFS10SSingle40T},
		{400, DFS10SSingle40T},
		{401, DFS10SSingle80T},
		{800, DFS10SSingle80T},
		{1280, DFS16SSingle80T},
		{1440, DFS18SSingle80T},
	}

	for _, tc := range tests {
		data := filled(4096)
		dfsCatalogue(data, 0, tc.sectors)
		geo, err := detect(t, "ssd", data)
		require.NoError(t, err)
		assert.Equal(t, tc.want, geo.Type, "sectors: %d", tc.sectors)
	}

	data := filled(4096)
	dfsCatalogue(data, 0, 1441)
	_, err := detect(t, "ssd", data)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDetectSideLayout(t *testing.T) {
	side := 80 * 10 * 256

	data := filled(2 * side)
	dfsCatalogue(data, 0, 800)
	dfsCatalogue(data, side, 800)
	geo, err := detect(t, "dsd", data)
	require.NoError(t, err)
	assert.Equal(t, DFS10SSequential80T, geo.Type)

	// second catalogue too small to be a real side
	dfsCatalogue(data, side, 2)
	geo, err = detect(t, "DSD", data)
	require.NoError(t, err)
	assert.Equal(t, DFS10SInterleaved80T, geo.Type)

	geo, err = detect(t, "ddd", data)
	require.NoError(t, err)
	assert.Equal(t, DFS10SInterleaved80T, geo.Type)

	geo, err = detect(t, "img", data)
	require.NoError(t, err)
	assert.Equal(t, DFS10SSingle80T, geo.Type)
}

func TestDetectADFS(t *testing.T) {
	tests := []struct {
		sectors int
		want    DiscType
	}{
		{640, ADFSS},
		{1280, ADFSM},
		{2560, ADFSL},
	}

	for _, tc := range tests {
		data := filled(2048)
		copy(data[0x201:], "Hugo")
		putUint24(data[0xfc:], tc.sectors)
		geo, err := detect(t, "adf", data)
		require.NoError(t, err)
		assert.Equal(t, tc.want, geo.Type)
	}

	data := filled(2048)
	copy(data[0x401:], "Hugo")
	geo, err := detect(t, "adf", data)
	require.NoError(t, err)
	assert.Equal(t, ADFSD, geo.Type)
}

func TestDetectBySize(t *testing.T) {
	tests := []struct {
		size int
		want DiscType
	}{
		{819200, ADFSD},
		{655360, ADFSL},
		{737280, DOS720K},
		{368640, DOS360K},
		{204800, DFS10SSingle80T},
		{409600, DFS10SInterleaved80T},
	}

	for _, tc := range tests {
		geo, err := detect(t, "img", filled(tc.size))
		require.NoError(t, err)
		assert.Equal(t, tc.want, geo.Type, "size: %d", tc.size)
	}

	_, err := detect(t, "img", filled(123456))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = detect(t, "img", []byte{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
