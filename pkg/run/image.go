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
	"fmt"
	"io"
	"os"

	"github.com/xelalexv/sdfdrive/pkg/control"
	"github.com/xelalexv/sdfdrive/pkg/disc/format"
	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

// openImage opens the local image file path, decompressing it if necessary,
// and detects its geometry
func openImage(path string) (io.ReadSeeker, *geometry.Descriptor, func(),
	error) {

	name, typ, comp := format.SplitNameTypeCompressor(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}

	var img io.ReadSeeker = f
	done := func() { f.Close() }

	if comp != "" {
		rd, err := format.NewImageReader(f, comp)
		if err != nil {
			f.Close()
			return nil, nil, nil, err
		}
		mem, err := rd.InMemory()
		rd.Close()
		if err != nil {
			return nil, nil, nil, err
		}
		if rd.Type() != "" {
			name, typ = rd.Name(), rd.Type()
		}
		img = mem
		done = func() {}
	}

	geo, err := geometry.Detect(name, typ, img)
	if err != nil {
		done()
		return nil, nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return img, geo, done, nil
}

// readSector reads a sector from a local image. Parts of the sector that lie
// beyond the end of the image read as 0xff.
func readSector(img io.ReadSeeker, geo *geometry.Descriptor,
	track, side, sector int) ([]byte, error) {

	off, err := geometry.Offset(geo, track, side, sector)
	if err != nil {
		return nil, err
	}

	ret := bytes.Repeat([]byte{0xff}, geo.SectorSize)
	if _, err := img.Seek(off, io.SeekStart); err != nil {
		return ret, nil
	}
	if _, err := io.ReadFull(img, ret); err != nil &&
		err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return ret, nil
}

// describeImage writes geometry and, for DFS discs, the catalogue of each
// side of a local image to w
func describeImage(w io.Writer, path string) error {

	img, geo, done, err := openImage(path)
	if err != nil {
		return err
	}
	defer done()

	fmt.Fprintf(w, "\nfile:     %s\n", path)
	fmt.Fprintf(w, "type:     %s\n", geo.Slug())
	fmt.Fprintf(w, "geometry: %s\n", geo)
	fmt.Fprintf(w, "size:     %d bytes\n", geo.ImageSize())

	if !geo.Family.IsDFS() {
		fmt.Fprintln(w)
		return nil
	}

	sides := 1
	if geo.IsDoubleSided() {
		sides = 2
	}

	for side := 0; side < sides; side++ {
		off, err := geometry.Offset(geo, 0, side, 0)
		if err != nil {
			return err
		}
		cat, err := geometry.ReadDFSCatalogue(img, off)
		if err != nil {
			fmt.Fprintf(w, "\nside %d: %v\n", side, err)
			continue
		}
		fmt.Fprintf(w, "\nside %d:\n", side)
		control.WriteFileList(w, cat)
	}

	return nil
}
