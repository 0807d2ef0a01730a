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
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

const (
	dfsCatalogueLength     = 2 * 256
	watfordCatalogueLength = 4 * 256
	adfsBootLength         = 7 * 256
	//
	padByte           = 0xe5
	watfordMarkerByte = 0xaa
)

// Create writes the initial contents of a blank image for the given
// geometry, i.e. just the bytes needed to have the disc recognised as empty.
func Create(w io.WriteSeeker, geo *Descriptor) error {

	if geo == nil || geo.create == nil {
		return ErrNotCreatable
	}

	log.WithFields(log.Fields{
		"type":   geo.Slug(),
		"format": geo.Name,
		"sides":  geo.SidesDescription()}).Debug("creating new disc image")

	if err := geo.create(w, geo); err != nil {
		return fmt.Errorf("error creating %s image: %v", geo.Name, err)
	}
	return nil
}

// prepDFS fills the first two sectors of a DFS catalogue for an empty disc.
func prepDFS(sects []byte, geo *Descriptor) {

	nsect := geo.Tracks * geo.SectorsPerTrack

	for ix := 0; ix < 8; ix++ {
		sects[ix] = ' '
	}
	for ix := 8; ix < dfsCatalogueLength; ix++ {
		sects[ix] = 0
	}
	for ix := 0x100; ix < 0x104; ix++ {
		sects[ix] = ' '
	}
	sects[0x104] = 1
	sects[0x106] = byte(nsect>>8) & 0x07
	sects[0x107] = byte(nsect)
}

// writeAt writes data at absolute offset off
func writeAt(w io.WriteSeeker, off int64, data []byte) error {
	if _, err := w.Seek(off, io.SeekStart); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

//
func newDFSSingle(w io.WriteSeeker, geo *Descriptor) error {
	sects := make([]byte, dfsCatalogueLength)
	prepDFS(sects, geo)
	return writeAt(w, 0, sects)
}

// for interleaved images, the catalogue of side two is located at the start
// of the second track in the file
func newDFSInterleaved(w io.WriteSeeker, geo *Descriptor) error {
	sects := make([]byte, dfsCatalogueLength)
	prepDFS(sects, geo)
	if err := writeAt(w, 0, sects); err != nil {
		return err
	}
	return writeAt(w, int64(geo.TrackBytes()), sects)
}

// padOut extends the image to its full nominal size without writing every
// sector.
func padOut(w io.WriteSeeker, geo *Descriptor) error {
	size := int64(geo.SideBytes())
	if geo.Sides != SidesSingle {
		size <<= 1
	}
	return writeAt(w, size-1, []byte{padByte})
}

//
func newSolidiskSingle(w io.WriteSeeker, geo *Descriptor) error {
	if err := newDFSSingle(w, geo); err != nil {
		return err
	}
	return padOut(w, geo)
}

//
func newSolidiskInterleaved(w io.WriteSeeker, geo *Descriptor) error {
	if err := newDFSInterleaved(w, geo); err != nil {
		return err
	}
	return padOut(w, geo)
}

// prepWatford creates the double catalogue: a normal DFS catalogue in
// sectors 0 & 1, duplicated into sectors 2 & 3, with the first eight bytes
// of sector 2 set to the marker flagging the second catalogue.
func prepWatford(sects []byte, geo *Descriptor) {
	prepDFS(sects, geo)
	copy(sects[dfsCatalogueLength+8:], sects[8:dfsCatalogueLength])
	for ix := dfsCatalogueLength; ix < dfsCatalogueLength+8; ix++ {
		sects[ix] = watfordMarkerByte
	}
}

//
func newWatfordSingle(w io.WriteSeeker, geo *Descriptor) error {
	sects := make([]byte, watfordCatalogueLength)
	prepWatford(sects, geo)
	if err := writeAt(w, 0, sects); err != nil {
		return err
	}
	return padOut(w, geo)
}

//
func newWatfordInterleaved(w io.WriteSeeker, geo *Descriptor) error {
	sects := make([]byte, watfordCatalogueLength)
	prepWatford(sects, geo)
	if err := writeAt(w, 0, sects); err != nil {
		return err
	}
	if err := writeAt(w, int64(geo.TrackBytes()), sects); err != nil {
		return err
	}
	return padOut(w, geo)
}

// Checksum calculates the ADFS checksum over the first 255 bytes of a 256
// byte sector. The carry of each addition is fed into the next one, walking
// the sector backwards.
func Checksum(sector []byte) byte {
	sum := 255
	carry := 0
	for ix := 254; ix >= 0; ix-- {
		sum += int(sector[ix]) + carry
		carry = 0
		if sum >= 256 {
			sum -= 256
			carry = 1
		}
	}
	return byte(sum)
}

//
func putUint24(b []byte, v int) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// newADFS writes the free space map in sectors 0 & 1 and an empty root
// directory starting at sector 2.
func newADFS(w io.WriteSeeker, geo *Descriptor) error {

	nsect := geo.TotalSectors()
	log.WithField("sectors", nsect).Debug("preparing ADFS boot block")

	sects := make([]byte, adfsBootLength)

	sects[0x000] = 7
	putUint24(sects[0x0fc:], nsect)
	sects[0x0ff] = Checksum(sects[0x000:0x100])

	putUint24(sects[0x100:], nsect-7)
	sects[0x1fe] = 3
	sects[0x1ff] = Checksum(sects[0x100:0x200])

	copy(sects[0x201:], adfsSignature)
	sects[0x6cc] = 0x24
	sects[0x6d6] = 0x02
	sects[0x6d9] = 0x24
	copy(sects[0x6fb:], adfsSignature)

	return writeAt(w, 0, sects)
}
