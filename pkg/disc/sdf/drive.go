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

package sdf

import (
	"io"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

// Image is the storage behind a mounted disc, usually an *os.File.
type Image interface {
	io.ReadWriteSeeker
}

// Drive holds the state of one drive slot. The track cursor and write
// protection survive unmounting.
type Drive struct {
	index int
	name  string
	//
	geo   *geometry.Descriptor
	image Image
	//
	track          int
	sector         int
	writeProtected bool
}

//
func newDrive(index int) *Drive {
	return &Drive{index: index}
}

//
func (d *Drive) Index() int {
	return d.index
}

// Name is the name of the mounted image file.
func (d *Drive) Name() string {
	return d.name
}

//
func (d *Drive) IsMounted() bool {
	return d.geo != nil
}

// Geometry returns the geometry of the mounted disc, nil if unmounted.
func (d *Drive) Geometry() *geometry.Descriptor {
	return d.geo
}

// Track is the track the head was last seeked to.
func (d *Drive) Track() int {
	return d.track
}

//
func (d *Drive) IsWriteProtected() bool {
	return d.writeProtected
}

//
func (d *Drive) matchesDensity(density geometry.Density) bool {
	return d.geo != nil && d.geo.Density == density
}

// nextSector advances the sector passing under the head, as seen by read
// address commands on a rotating disc.
func (d *Drive) nextSector() {
	if d.sector++; d.sector >= d.geo.SectorsPerTrack {
		d.sector = 0
	}
}

// release drops the mounted disc and closes the image if it can be closed
func (d *Drive) release() error {

	var err error
	if c, ok := d.image.(io.Closer); ok {
		err = c.Close()
	}

	d.geo = nil
	d.image = nil
	d.name = ""
	d.sector = 0

	return err
}
