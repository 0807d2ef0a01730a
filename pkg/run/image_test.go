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

package run

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

//
func writeImage(t *testing.T, name string, typ geometry.DiscType,
	compress bool) string {

	geo, err := geometry.ByType(typ)
	require.NoError(t, err)
	buf := make([]byte, geo.ImageSize())
	require.NoError(t, geometry.Create(bytesextra.NewReadWriteSeeker(buf), geo))
	copy(buf[(2*geo.SectorsPerTrack+4)*geo.SectorSize:],
		bytes.Repeat([]byte{0x42}, geo.SectorSize))

	path := filepath.Join(t.TempDir(), name)
	if compress {
		var out bytes.Buffer
		gw := gzip.NewWriter(&out)
		_, err := gw.Write(buf)
		require.NoError(t, err)
		require.NoError(t, gw.Close())
		buf = out.Bytes()
	}
	require.NoError(t, os.WriteFile(path, buf, 0644))
	return path
}

//
func TestDescribeImage(t *testing.T) {

	path := writeImage(t, "games.ssd", geometry.DFS10SSingle80T, false)

	var sb strings.Builder
	require.NoError(t, describeImage(&sb, path))
	out := sb.String()
	assert.Contains(t, out, "type:     dfs-80-ss")
	assert.Contains(t, out, "side 0:")
	assert.Contains(t, out, "0 files, 2 of 800 sectors used")
	assert.NotContains(t, out, "side 1")
}

//
func TestDescribeCompressedImage(t *testing.T) {
	path := writeImage(t, "games.ssd.gz", geometry.DFS10SSingle40T, true)
	var sb strings.Builder
	require.NoError(t, describeImage(&sb, path))
	assert.Contains(t, sb.String(), "type:     dfs-40-ss")
}

//
func TestDescribeUnknownImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.ssd")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0644))
	var sb strings.Builder
	assert.ErrorIs(t, describeImage(&sb, path), geometry.ErrUnknownFormat)
}

//
func TestReadLocalSector(t *testing.T) {

	path := writeImage(t, "games.ssd", geometry.DFS10SSingle80T, false)
	require.NoError(t, os.Truncate(path, 10*10*256))
	img, geo, done, err := openImage(path)
	require.NoError(t, err)
	defer done()

	data, err := readSector(img, geo, 2, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x42}, 256), data)

	// beyond end of image
	data, err = readSector(img, geo, 79, 0, 9)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 256), data)

	_, err = readSector(img, geo, 80, 0, 0)
	assert.ErrorIs(t, err, geometry.ErrInvalidAddress)
}

//
func TestWriteFormats(t *testing.T) {

	var buf bytes.Buffer
	require.NoError(t, writeFormats(&buf, true))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(geometry.All())+1)
	assert.Equal(t,
		"type,name,sides,density,tracks,sectors,sector_size,size,creatable",
		lines[0])
	assert.Contains(t, buf.String(),
		"dfs-80-ss,Acorn DFS,single-sided,single-density,80,10,256,204800,true")

	buf.Reset()
	require.NoError(t, writeFormats(&buf, false))
	assert.True(t, strings.HasPrefix(buf.String(), "TYPE"))
}
