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
	"bytes"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

var adfsSignature = []byte("Hugo")

const (
	maxDFSEntries = 31
	// a second side needs at least catalogue sectors plus one
	minSecondSideSectors = 3
)

// extensions under which double sided DFS images are stored interleaved
var interleavedExtensions = []string{"dsd", "ddd"}

// dfsSizes maps the DFS catalogue sector count to the single sided entry of
// the matching track/sector configuration, smallest first.
var dfsSizes = []struct {
	maxSectors int
	key        Key
}{
	{40 * 10, Key{FamilyAcornDFS, 40, 10, SidesSingle}},
	{80 * 10, Key{FamilyAcornDFS, 80, 10, SidesSingle}},
	{80 * 16, Key{FamilySolidisk, 80, 16, SidesSingle}},
	{80 * 18, Key{FamilyWatford, 80, 18, SidesSingle}},
}

// well-known image sizes, used when neither ADFS nor DFS probes match
var fixedSizes = map[int64]DiscType{
	800 * 1024: ADFSD,                // 80*2*5*1024
	640 * 1024: ADFSL,                // 80*2*16*256
	720 * 1024: DOS720K,              // 80*2*9*512
	360 * 1024: DOS360K,              // 40*2*9*512
	200 * 1024: DFS10SSingle80T,      // 80*1*10*256
	400 * 1024: DFS10SInterleaved80T, // 80*2*10*256
}

// Detect determines the geometry of the disc image in r. The name is only
// used for logging, ext is the file name extension without the dot. When no
// heuristic matches, ErrUnknownFormat is returned.
func Detect(name, ext string, r io.ReadSeeker) (*Descriptor, error) {

	logger := log.WithField("file", name)

	if geo := findADFS(r); geo != nil {
		logger.WithField("format", geo.Name).Debug("found ADFS disc")
		return geo, nil
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	if geo := findDFS(name, ext, r, size); geo != nil {
		logger.WithField("format", geo.Name).Debug("found DFS disc")
		return geo, nil
	}

	if geo := findBySize(size); geo != nil {
		logger.WithFields(log.Fields{
			"format": geo.Name, "size": size}).Debug("geometry from image size")
		return geo, nil
	}

	return nil, ErrUnknownFormat
}

//
func readAt(r io.ReadSeeker, off int64, buf []byte) bool {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return false
	}
	_, err := io.ReadFull(r, buf)
	return err == nil
}

//
func adfsRootAt(r io.ReadSeeker, off int64) bool {
	hugo := make([]byte, len(adfsSignature))
	if readAt(r, off, hugo) && bytes.Equal(hugo, adfsSignature) {
		log.Debugf("found ADFS root at %x", off)
		return true
	}
	return false
}

//
func readSize24(r io.ReadSeeker, off int64) int {
	b := make([]byte, 3)
	if !readAt(r, off, b) {
		return -1
	}
	size := int(b[2])<<16 | int(b[1])<<8 | int(b[0])
	log.Debugf("found ADFS total sectors as %d", size)
	return size
}

//
func findADFS(r io.ReadSeeker) *Descriptor {

	if adfsRootAt(r, 0x201) { // ADFS S, M, or L
		size := readSize24(r, 0xfc)
		switch {
		case size < 0:
			return nil
		case size <= 40*16:
			return &catalog[ADFSS].geo
		case size <= 80*16:
			return &catalog[ADFSM].geo
		default:
			return &catalog[ADFSL].geo
		}

	} else if adfsRootAt(r, 0x401) {
		return &catalog[ADFSD].geo
	}

	return nil
}

// dfsSize validates the DFS catalogue located at off and returns the total
// number of sectors it states, or -1 if there is no valid catalogue.
func dfsSize(r io.ReadSeeker, off int64) int {

	logger := log.WithField("offset", off)
	logger.Debug("looking for DFS catalogue")

	sect := make([]byte, 256)
	if !readAt(r, off+0x100, sect) {
		logger.Debug("unable to read DFS catalogue")
		return -1
	}

	dirSize := int(sect[5])
	if dirSize&0x07 != 0 || dirSize > maxDFSEntries*8 {
		logger.WithField("dirsize", dirSize).Debug("DFS dirsize not valid")
		return -1
	}

	sects := int(sect[6]&0x07)<<8 | int(sect[7])

	// files need to be sorted by decreasing start sector, otherwise this is
	// most likely not a catalogue
	current := -1
	for base := 8; base <= dirSize; base += 8 {
		start := int(sect[base+6]&0x03)<<8 | int(sect[base+7])
		if current >= 0 && start > current {
			logger.Debug("DFS catalogue not sorted")
			return -1
		}
		current = start
	}

	logger.WithField("sectors", sects).Debug("found DFS size")
	return sects
}

//
func findDFS(name, ext string, r io.ReadSeeker, size int64) *Descriptor {

	sects := dfsSize(r, 0)
	if sects < 0 {
		return nil
	}

	var geo *Descriptor
	for _, s := range dfsSizes {
		if sects <= s.maxSectors {
			geo = byKey[s.key]
			break
		}
	}

	if geo == nil {
		log.WithFields(log.Fields{
			"file": name, "sectors": sects}).Warn("DFS sector count too high")
		return nil
	}

	sides := SidesSingle
	sideBytes := int64(geo.SideBytes())

	if size > sideBytes && dfsSize(r, sideBytes) >= minSecondSideSectors {
		sides = SidesSequential
	} else if isInterleavedExtension(ext) {
		sides = SidesInterleaved
	}

	ret, _ := geo.Variant(sides)
	return ret
}

//
func isInterleavedExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	for _, e := range interleavedExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

//
func findBySize(size int64) *Descriptor {
	if t, ok := fixedSizes[size]; ok {
		return &catalog[t].geo
	}
	return nil
}
