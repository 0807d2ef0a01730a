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
	"strings"

	bitmap "github.com/boljen/go-bitmap"
	log "github.com/sirupsen/logrus"
)

//
type DFSFile struct {
	Name        string `json:"name"`
	Directory   string `json:"directory"`
	Locked      bool   `json:"locked"`
	Load        int    `json:"load"`
	Exec        int    `json:"exec"`
	Length      int    `json:"length"`
	StartSector int    `json:"start"`
}

// FullName returns the name including directory, e.g. `$.!BOOT`
func (f *DFSFile) FullName() string {
	return fmt.Sprintf("%s.%s", f.Directory, f.Name)
}

// Sectors is the number of sectors occupied by the file.
func (f *DFSFile) Sectors() int {
	return (f.Length + 255) / 256
}

// DFSCatalogue is the decoded catalogue of one side of a DFS disc.
type DFSCatalogue struct {
	Title      string     `json:"title"`
	Cycle      int        `json:"cycle"`
	BootOption int        `json:"boot"`
	Sectors    int        `json:"sectors"`
	Files      []*DFSFile `json:"files"`
	//
	used bitmap.Bitmap
}

// ReadDFSCatalogue decodes the DFS catalogue located at offset off in r.
func ReadDFSCatalogue(r io.ReadSeeker, off int64) (*DFSCatalogue, error) {

	if dfsSize(r, off) < 0 {
		return nil, ErrNoCatalogue
	}

	sects := make([]byte, dfsCatalogueLength)
	if !readAt(r, off, sects) {
		return nil, fmt.Errorf("cannot read catalogue at offset %d", off)
	}
	s0 := sects[:256]
	s1 := sects[256:]

	cat := &DFSCatalogue{
		Title:      cleanName(string(s0[0:8]) + string(s1[0:4])),
		Cycle:      int(s1[4]),
		BootOption: int(s1[6]>>4) & 0x03,
		Sectors:    int(s1[6]&0x07)<<8 | int(s1[7]),
	}

	entries := int(s1[5]) / 8
	cat.Files = make([]*DFSFile, 0, entries)

	for ix := 1; ix <= entries; ix++ {
		name := s0[ix*8 : ix*8+8]
		info := s1[ix*8 : ix*8+8]
		mixed := int(info[6])
		cat.Files = append(cat.Files, &DFSFile{
			Name:        cleanName(string(name[0:7])),
			Directory:   string(rune(name[7] & 0x7f)),
			Locked:      name[7]&0x80 != 0,
			Load:        int(info[0]) | int(info[1])<<8 | (mixed>>2&0x03)<<16,
			Exec:        int(info[2]) | int(info[3])<<8 | (mixed>>6&0x03)<<16,
			Length:      int(info[4]) | int(info[5])<<8 | (mixed>>4&0x03)<<16,
			StartSector: int(info[7]) | (mixed&0x03)<<8,
		})
	}

	cat.mapUsage()

	log.WithFields(log.Fields{
		"title": cat.Title, "files": len(cat.Files),
		"sectors": cat.Sectors}).Debug("read DFS catalogue")

	return cat, nil
}

// mapUsage marks the sectors occupied by catalogue and files
func (c *DFSCatalogue) mapUsage() {

	c.used = bitmap.New(c.Sectors)
	mark := func(from, count int) {
		for ix := from; ix < from+count && ix < c.Sectors; ix++ {
			c.used.Set(ix, true)
		}
	}

	mark(0, 2)
	for _, f := range c.Files {
		mark(f.StartSector, f.Sectors())
	}
}

// IsUsed returns whether sector ix is occupied.
func (c *DFSCatalogue) IsUsed(ix int) bool {
	if ix < 0 || ix >= c.Sectors {
		return false
	}
	return c.used.Get(ix)
}

// UsedSectors is the number of sectors occupied by catalogue and files.
func (c *DFSCatalogue) UsedSectors() int {
	n := 0
	for ix := 0; ix < c.Sectors; ix++ {
		if c.used.Get(ix) {
			n++
		}
	}
	return n
}

//
func (c *DFSCatalogue) FreeSectors() int {
	return c.Sectors - c.UsedSectors()
}

//
func cleanName(n string) string {
	return strings.TrimRight(n, " \x00")
}
