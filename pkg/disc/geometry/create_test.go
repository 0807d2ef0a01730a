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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

//
func createImage(t *testing.T, typ DiscType, ext string) (*os.File, *Descriptor) {

	geo, err := ByType(typ)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), strings.ReplaceAll(geo.Slug(), "-", "_")+"."+ext)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	require.NoError(t, Create(f, geo))
	return f, geo
}

//
func imageBytes(t *testing.T, f *os.File) []byte {
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	return data
}

func TestChecksumIsSelfConsistent(t *testing.T) {
	for _, typ := range []DiscType{ADFSS, ADFSM, ADFSL} {
		f, _ := createImage(t, typ, "adf")
		data := imageBytes(t, f)
		assert.Equal(t, data[0xff], Checksum(data[0x000:0x100]), "sector 0")
		assert.Equal(t, data[0x1ff], Checksum(data[0x100:0x200]), "sector 1")
	}
}

func TestChecksumCarry(t *testing.T) {
	sector := make([]byte, 256)
	assert.Equal(t, byte(255), Checksum(sector))

	sector[254] = 1 // 255 + 1 overflows, carry goes into next addition
	assert.Equal(t, byte(1), Checksum(sector))

	sector[0] = 7
	assert.Equal(t, byte(8), Checksum(sector))
}

func TestCreateADFS(t *testing.T) {
	f, _ := createImage(t, ADFSL, "adl")
	data := imageBytes(t, f)

	require.Len(t, data, 7*256)
	assert.Equal(t, byte(7), data[0])
	// 80 tracks * 16 sectors * 2 sides = 0x0a00
	assert.Equal(t, []byte{0x00, 0x0a, 0x00}, data[0xfc:0xff])
	assert.Equal(t, []byte{0xf9, 0x09, 0x00}, data[0x100:0x103])
	assert.Equal(t, byte(3), data[0x1fe])
	assert.Equal(t, "Hugo", string(data[0x201:0x205]))
	assert.Equal(t, "Hugo", string(data[0x6fb:0x6ff]))
	assert.Equal(t, byte(0x24), data[0x6cc])
	assert.Equal(t, byte(0x02), data[0x6d6])
	assert.Equal(t, byte(0x24), data[0x6d9])

	f, _ = createImage(t, ADFSS, "ads")
	data = imageBytes(t, f)
	assert.Equal(t, []byte{0x80, 0x02, 0x00}, data[0xfc:0xff])
}

func TestCreateDFS(t *testing.T) {
	f, _ := createImage(t, DFS10SSingle80T, "ssd")
	data := imageBytes(t, f)

	require.Len(t, data, 512)
	assert.Equal(t, "        ", string(data[0:8]))
	assert.Equal(t, "    ", string(data[0x100:0x104]))
	assert.Equal(t, byte(1), data[0x104])
	assert.Equal(t, byte(0), data[0x105])
	assert.Equal(t, byte(0x03), data[0x106]) // 800 sectors
	assert.Equal(t, byte(0x20), data[0x107])
}

func TestCreateDFSInterleaved(t *testing.T) {
	f, geo := createImage(t, DFS10SInterleaved40T, "dsd")
	data := imageBytes(t, f)

	side2 := geo.TrackBytes()
	require.Len(t, data, side2+512)
	assert.Equal(t, data[0:512], data[side2:side2+512])
	assert.Equal(t, byte(0x01), data[0x106]) // 400 sectors per side
	assert.Equal(t, byte(0x90), data[0x107])
}

func TestCreateWatford(t *testing.T) {
	f, geo := createImage(t, DFS18SSingle80T, "ssd")
	data := imageBytes(t, f)

	require.Len(t, data, geo.SideBytes())
	assert.Equal(t, []byte{0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa},
		data[0x200:0x208])
	assert.Equal(t, data[0x008:0x200], data[0x208:0x400])
	assert.Equal(t, byte(0x05), data[0x106]) // 1440 sectors
	assert.Equal(t, byte(0xa0), data[0x107])
	assert.Equal(t, byte(0xe5), data[len(data)-1])

	f, geo = createImage(t, DFS18SInterleaved80T, "dsd")
	data = imageBytes(t, f)
	require.Len(t, data, 2*geo.SideBytes())
	side2 := geo.TrackBytes()
	assert.Equal(t, data[0:1024], data[side2:side2+1024])
}

func TestCreateSolidiskPadsToFullSize(t *testing.T) {
	f, geo := createImage(t, DFS16SSingle80T, "ssd")
	data := imageBytes(t, f)
	require.Len(t, data, 80*16*256)
	assert.Equal(t, byte(0xe5), data[len(data)-1])
	assert.Equal(t, byte(0x05), data[0x106])
	assert.Equal(t, byte(0x00), data[0x107])

	f, geo = createImage(t, DFS16SInterleaved80T, "dsd")
	data = imageBytes(t, f)
	require.Len(t, data, int(geo.ImageSize()))
}

func TestCreateUnsupported(t *testing.T) {
	for _, typ := range []DiscType{ADFSD, DFS10SSequential40T, DOS720K} {
		geo, _ := ByType(typ)
		err := Create(bytesextra.NewReadWriteSeeker(make([]byte, 1024)), geo)
		assert.ErrorIs(t, err, ErrNotCreatable)
	}
	assert.ErrorIs(t, Create(nil, nil), ErrNotCreatable)
}

func TestCreatedImagesAreDetected(t *testing.T) {
	for _, geo := range All() {
		if !geo.CanCreate() {
			continue
		}
		ext := "ssd"
		if geo.Sides == SidesInterleaved {
			ext = "dsd"
		}
		f, _ := createImage(t, geo.Type, ext)
		found, err := Detect(f.Name(), ext, f)
		require.NoError(t, err, "detecting %s", geo.Slug())
		assert.Same(t, geo, found, "detecting %s", geo.Slug())
	}
}
