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
)

// Sides describes how the sides of a disc are laid out in the image file.
type Sides int

const (
	// SidesSingle is a single sided disc, there is no second side.
	SidesSingle Sides = iota
	// SidesSequential stores all of side two as one block after side one.
	SidesSequential
	// SidesInterleaved alternates sides per track, track-major.
	SidesInterleaved
)

//
func (s Sides) String() string {
	switch s {
	case SidesSingle:
		return "single-sided"
	case SidesSequential:
		return "double-sided, sequential"
	case SidesInterleaved:
		return "double-sided, interleaved"
	default:
		return "unknown"
	}
}

//
type Density int

const (
	DensitySingle Density = iota
	DensityDouble
	DensityQuad
)

//
func (d Density) String() string {
	switch d {
	case DensityQuad:
		return "quad-density"
	case DensityDouble:
		return "double-density"
	case DensitySingle:
		return "single-density"
	default:
		return "unknown-density"
	}
}

// Family groups the geometries that share a filing system layout.
type Family int

const (
	FamilyADFSS Family = iota
	FamilyADFSM
	FamilyADFSL
	FamilyADFSD
	FamilyAcornDFS
	FamilySolidisk
	FamilyWatford
	FamilyDOS
)

//
func (f Family) String() string {
	switch f {
	case FamilyADFSS:
		return "ADFS-S"
	case FamilyADFSM:
		return "ADFS-M"
	case FamilyADFSL:
		return "ADFS-L"
	case FamilyADFSD:
		return "ADFS-D"
	case FamilyAcornDFS:
		return "Acorn DFS"
	case FamilySolidisk:
		return "Solidisk"
	case FamilyWatford:
		return "Watford/Opus"
	case FamilyDOS:
		return "DOS"
	default:
		return "unknown"
	}
}

// IsDFS returns whether discs of this family carry a DFS style catalogue.
func (f Family) IsDFS() bool {
	return f == FamilyAcornDFS || f == FamilySolidisk || f == FamilyWatford
}

// creator writes the initial contents of a blank image
type creator func(w io.WriteSeeker, geo *Descriptor) error

// Descriptor describes one disc geometry. Descriptors are owned by the
// catalog and must not be modified.
type Descriptor struct {
	Type            DiscType
	Name            string
	Family          Family
	Sides           Sides
	Density         Density
	Tracks          int
	SectorsPerTrack int
	SectorSize      int
	//
	create creator
}

// TrackBytes is the number of bytes one track of one side occupies.
func (d *Descriptor) TrackBytes() int {
	return d.SectorsPerTrack * d.SectorSize
}

// SideBytes is the number of bytes one side occupies.
func (d *Descriptor) SideBytes() int {
	return d.Tracks * d.TrackBytes()
}

// TotalSectors is the number of sectors across all sides.
func (d *Descriptor) TotalSectors() int {
	n := d.Tracks * d.SectorsPerTrack
	if d.Sides != SidesSingle {
		n *= 2
	}
	return n
}

// ImageSize is the nominal size of a fully populated image.
func (d *Descriptor) ImageSize() int64 {
	return int64(d.TotalSectors()) * int64(d.SectorSize)
}

// IsDoubleSided returns whether the geometry has a second side.
func (d *Descriptor) IsDoubleSided() bool {
	return d.Sides != SidesSingle
}

//
func (d *Descriptor) CanCreate() bool {
	return d.create != nil
}

// FirstSector is the number of the first sector on a track as seen at the
// controller interface. Sectors larger than 256 bytes are numbered from 1.
func (d *Descriptor) FirstSector() int {
	if d.SectorSize > 256 {
		return 1
	}
	return 0
}

// SizeCode is the sector length code reported in a sector ID field.
func (d *Descriptor) SizeCode() byte {
	switch d.SectorSize {
	case 256:
		return 1
	case 512:
		return 2
	default:
		return 3
	}
}

//
func (d *Descriptor) SidesDescription() string {
	return d.Sides.String()
}

//
func (d *Descriptor) DensityDescription() string {
	return d.Density.String()
}

//
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s, %s, %d tracks, %s, %d %d byte sectors/track",
		d.Name, d.SidesDescription(), d.Tracks, d.DensityDescription(),
		d.SectorsPerTrack, d.SectorSize)
}
