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

package format

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
func payload(n int) []byte {
	ret := make([]byte, n)
	for ix := range ret {
		ret[ix] = byte(ix * 7)
	}
	return ret
}

//
func TestSplitNameTypeCompressor(t *testing.T) {

	tests := []struct {
		file, name, typ, compressor string
	}{
		{"elite.ssd", "elite", "ssd", ""},
		{"/some/where/Elite.SSD.gz", "Elite", "ssd", "gz"},
		{"games.dsd.zip", "games", "dsd", "zip"},
		{"hard.adl.7z", "hard", "adl", "7z"},
		{"readme.txt", "readme", "", ""},
		{"noext", "noext", "", ""},
		{"dos.img.gzip", "dos", "img", "gzip"},
	}

	for _, tc := range tests {
		name, typ, comp := SplitNameTypeCompressor(tc.file)
		assert.Equal(t, tc.name, name, tc.file)
		assert.Equal(t, tc.typ, typ, tc.file)
		assert.Equal(t, tc.compressor, comp, tc.file)
	}
}

//
func TestIsImageType(t *testing.T) {
	for _, ext := range []string{"ssd", ".dsd", "ADF", "adl", "img"} {
		assert.True(t, IsImageType(ext), ext)
	}
	for _, ext := range []string{"", "mdr", "txt", "gz"} {
		assert.False(t, IsImageType(ext), ext)
	}
	assert.True(t, IsCompressor(".7z"))
	assert.False(t, IsCompressor("ssd"))
}

//
func TestUncompressed(t *testing.T) {

	data := payload(1000)
	rd, err := NewImageReader(io.NopCloser(bytes.NewReader(data)), "")
	require.NoError(t, err)
	defer rd.Close()

	assert.Empty(t, rd.Compressor())
	got, err := io.ReadAll(rd)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

//
func TestGZip(t *testing.T) {

	data := payload(4096)

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	gw.Name = "welcome.ssd"
	_, err := gw.Write(data)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	rd, err := NewImageReader(io.NopCloser(&buf), "gz")
	require.NoError(t, err)
	defer rd.Close()

	assert.Equal(t, "gzip", rd.Compressor())
	assert.Equal(t, "welcome", rd.Name())
	assert.Equal(t, "ssd", rd.Type())

	img, err := rd.InMemory()
	require.NoError(t, err)

	got := make([]byte, 16)
	_, err = img.Seek(256, io.SeekStart)
	require.NoError(t, err)
	_, err = io.ReadFull(img, got)
	require.NoError(t, err)
	assert.Equal(t, data[256:272], got)
}

//
func TestZip(t *testing.T) {

	data := payload(2048)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("disc.dsd")
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	w, err = zw.Create("other.ssd")
	require.NoError(t, err)
	_, err = w.Write([]byte("ignored"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	rd, err := NewImageReader(io.NopCloser(&buf), "zip")
	require.NoError(t, err)
	defer rd.Close()

	assert.Equal(t, "zip", rd.Compressor())
	assert.Equal(t, "disc", rd.Name())
	assert.Equal(t, "dsd", rd.Type())

	got, err := io.ReadAll(rd)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

//
func TestEmptyZip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, zip.NewWriter(&buf).Close())
	_, err := NewImageReader(io.NopCloser(&buf), "zip")
	assert.Error(t, err)
}

//
func TestBrokenArchives(t *testing.T) {
	for _, comp := range []string{"gz", "zip", "7z"} {
		_, err := NewImageReader(
			io.NopCloser(bytes.NewReader([]byte("not an archive"))), comp)
		assert.Error(t, err, comp)
	}
}

//
func TestUnsupportedCompressor(t *testing.T) {
	_, err := NewImageReader(io.NopCloser(bytes.NewReader(nil)), "rar")
	assert.Error(t, err)
}

//
func TestInMemoryLimits(t *testing.T) {

	rd, err := NewImageReader(io.NopCloser(bytes.NewReader(nil)), "")
	require.NoError(t, err)
	_, err = rd.InMemory()
	assert.Error(t, err)

	rd, err = NewImageReader(io.NopCloser(
		bytes.NewReader(make([]byte, MaxImageSize+1))), "")
	require.NoError(t, err)
	_, err = rd.InMemory()
	assert.Error(t, err)

	rd, err = NewImageReader(io.NopCloser(
		bytes.NewReader(make([]byte, MaxImageSize))), "")
	require.NoError(t, err)
	_, err = rd.InMemory()
	assert.NoError(t, err)
}
