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
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	log "github.com/sirupsen/logrus"
	"github.com/xaionaro-go/bytesextra"
)

// MaxImageSize is the largest image accepted from a stream. The biggest
// catalogued geometry is 800k.
const MaxImageSize = 1024 * 1024

// disc image file types, by extension
var imageTypes = map[string]bool{
	"ssd": true, // DFS, single sided
	"dsd": true, // DFS, double sided interleaved
	"sdd": true, // DFS, single sided, double density
	"ddd": true, // DFS, double sided, double density, interleaved
	"adf": true,
	"ads": true,
	"adm": true,
	"adl": true,
	"img": true,
}

// IsImageType returns whether ext (with or without dot) is the extension of
// a disc image file.
func IsImageType(ext string) bool {
	return imageTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// IsCompressor returns whether ext names a supported compressor.
func IsCompressor(ext string) bool {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "gz", "gzip", "zip", "7z":
		return true
	}
	return false
}

//
func NewImageReader(r io.ReadCloser, compressor string) (*ImageReader, error) {

	log.WithField("compressor", compressor).Debug("image reader requested")

	var ret *ImageReader
	var err error

	switch compressor {

	case "gzip":
		fallthrough
	case "gz":
		ret, err = getGZipReader(r)

	case "zip":
		ret, err = getZipReader(r, false)

	case "7z":
		ret, err = getZipReader(r, true)

	case "":
		ret = &ImageReader{readCloser: r}
	}

	if err != nil {
		return nil, err
	}

	if ret == nil {
		return nil, fmt.Errorf("unsupported compressor: %s", compressor)
	}

	log.WithFields(log.Fields{
		"compressor": ret.compressor,
		"name":       ret.name,
		"type":       ret.typ}).Debug("image reader created")

	return ret, nil
}

// ImageReader reads a disc image from a possibly compressed stream. For
// archives, the first entry is used.
type ImageReader struct {
	readCloser io.ReadCloser
	//
	name       string
	typ        string
	compressor string
}

//
func (r *ImageReader) Read(p []byte) (n int, err error) {
	return r.readCloser.Read(p)
}

//
func (r *ImageReader) Close() error {
	return r.readCloser.Close()
}

// Name is the base name of the image found inside an archive, without
// extensions.
func (r *ImageReader) Name() string {
	return r.name
}

// Type is the image type according to the file name inside an archive,
// e.g. `ssd`. Empty when unknown.
func (r *ImageReader) Type() string {
	return r.typ
}

//
func (r *ImageReader) Compressor() string {
	return r.compressor
}

// InMemory reads the complete image into an in-memory buffer that can be
// mounted. Images larger than MaxImageSize are rejected.
func (r *ImageReader) InMemory() (io.ReadWriteSeeker, error) {

	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, err
	}

	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image too large, max %d bytes", MaxImageSize)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	log.WithField("size", len(data)).Debug("image loaded into memory")
	return bytesextra.NewReadWriteSeeker(data), nil
}

//
func getGZipReader(r io.ReadCloser) (*ImageReader, error) {

	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	ret := &ImageReader{readCloser: gzr}
	ret.name, ret.typ, _ = SplitNameTypeCompressor(gzr.Name)
	ret.compressor = "gzip"

	return ret, nil
}

//
func getZipReader(r io.ReadCloser, zip7 bool) (*ImageReader, error) {

	var sponge bytes.Buffer
	size, err := io.Copy(&sponge, io.LimitReader(r, 4*MaxImageSize))
	r.Close()
	if err != nil {
		return nil, err
	}

	ret := &ImageReader{}
	var entry string

	if zip7 {
		zr, err := sevenzip.NewReader(bytes.NewReader(sponge.Bytes()), size)
		if err != nil {
			return nil, err
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("empty 7-zip archive")
		}
		if len(zr.File) > 1 {
			log.Warn("7-zip archive has more than one entry, using first")
		}
		entry = zr.File[0].Name
		ret.compressor = "7z"
		if ret.readCloser, err = zr.File[0].Open(); err != nil {
			return nil, err
		}

	} else {
		zr, err := zip.NewReader(bytes.NewReader(sponge.Bytes()), size)
		if err != nil {
			return nil, err
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("empty zip archive")
		}
		if len(zr.File) > 1 {
			log.Warn("zip archive has more than one entry, using first")
		}
		entry = zr.File[0].Name
		ret.compressor = "zip"
		if ret.readCloser, err = zr.File[0].Open(); err != nil {
			return nil, err
		}
	}

	ret.name, ret.typ, _ = SplitNameTypeCompressor(entry)
	return ret, nil
}

// SplitNameTypeCompressor splits a file name such as `elite.ssd.gz` into
// base name, image type, and compressor.
func SplitNameTypeCompressor(file string) (name, typ, compressor string) {

	_, n := filepath.Split(file)

	for {
		ext := filepath.Ext(n)
		if ext == "" {
			name = n
			break
		}

		n = strings.TrimSuffix(n, ext)
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))

		if IsImageType(ext) {
			typ = ext
		} else if IsCompressor(ext) {
			compressor = ext
		}
	}

	return name, typ, compressor
}
