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
	"strings"
)

// DiscType selects a catalog entry, e.g. when creating a new image.
type DiscType int

const (
	ADFSS DiscType = iota
	ADFSM
	ADFSL
	ADFSD
	DFS10SSingle40T
	DFS10SInterleaved40T
	DFS10SSequential40T
	DFS10SSingle80T
	DFS10SInterleaved80T
	DFS10SSequential80T
	DFS16SSingle80T
	DFS16SInterleaved80T
	DFS16SSequential80T
	DFS18SSingle80T
	DFS18SInterleaved80T
	DFS18SSequential80T
	DOS720K
	DOS360K
	//
	typeCount
)

// Key identifies a catalog entry by what it is rather than where it sits.
type Key struct {
	Family          Family
	Tracks          int
	SectorsPerTrack int
	Sides           Sides
}

//
type entry struct {
	slug string
	geo  Descriptor
}

var catalog = [typeCount]entry{
	ADFSS: {"adfs-s", Descriptor{Name: "ADFS-S", Family: FamilyADFSS,
		Sides: SidesSingle, Density: DensityDouble,
		Tracks: 40, SectorsPerTrack: 16, SectorSize: 256, create: newADFS}},
	ADFSM: {"adfs-m", Descriptor{Name: "ADFS-M", Family: FamilyADFSM,
		Sides: SidesSingle, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 16, SectorSize: 256, create: newADFS}},
	ADFSL: {"adfs-l", Descriptor{Name: "ADFS-L", Family: FamilyADFSL,
		Sides: SidesInterleaved, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 16, SectorSize: 256, create: newADFS}},
	ADFSD: {"adfs-d", Descriptor{Name: "ADFS-D", Family: FamilyADFSD,
		Sides: SidesSequential, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 5, SectorSize: 1024}},

	DFS10SSingle40T: {"dfs-40-ss", Descriptor{Name: "Acorn DFS",
		Family: FamilyAcornDFS, Sides: SidesSingle, Density: DensitySingle,
		Tracks: 40, SectorsPerTrack: 10, SectorSize: 256, create: newDFSSingle}},
	DFS10SInterleaved40T: {"dfs-40-ds", Descriptor{Name: "Acorn DFS",
		Family: FamilyAcornDFS, Sides: SidesInterleaved, Density: DensitySingle,
		Tracks: 40, SectorsPerTrack: 10, SectorSize: 256, create: newDFSInterleaved}},
	DFS10SSequential40T: {"dfs-40-seq", Descriptor{Name: "Acorn DFS",
		Family: FamilyAcornDFS, Sides: SidesSequential, Density: DensitySingle,
		Tracks: 40, SectorsPerTrack: 10, SectorSize: 256}},

	DFS10SSingle80T: {"dfs-80-ss", Descriptor{Name: "Acorn DFS",
		Family: FamilyAcornDFS, Sides: SidesSingle, Density: DensitySingle,
		Tracks: 80, SectorsPerTrack: 10, SectorSize: 256, create: newDFSSingle}},
	DFS10SInterleaved80T: {"dfs-80-ds", Descriptor{Name: "Acorn DFS",
		Family: FamilyAcornDFS, Sides: SidesInterleaved, Density: DensitySingle,
		Tracks: 80, SectorsPerTrack: 10, SectorSize: 256, create: newDFSInterleaved}},
	DFS10SSequential80T: {"dfs-80-seq", Descriptor{Name: "Acorn DFS",
		Family: FamilyAcornDFS, Sides: SidesSequential, Density: DensitySingle,
		Tracks: 80, SectorsPerTrack: 10, SectorSize: 256}},

	DFS16SSingle80T: {"solidisk-ss", Descriptor{Name: "Solidisk",
		Family: FamilySolidisk, Sides: SidesSingle, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 16, SectorSize: 256, create: newSolidiskSingle}},
	DFS16SInterleaved80T: {"solidisk-ds", Descriptor{Name: "Solidisk",
		Family: FamilySolidisk, Sides: SidesInterleaved, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 16, SectorSize: 256, create: newSolidiskInterleaved}},
	DFS16SSequential80T: {"solidisk-seq", Descriptor{Name: "Solidisk",
		Family: FamilySolidisk, Sides: SidesSequential, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 16, SectorSize: 256}},

	DFS18SSingle80T: {"watford-ss", Descriptor{Name: "Watford/Opus",
		Family: FamilyWatford, Sides: SidesSingle, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 18, SectorSize: 256, create: newWatfordSingle}},
	DFS18SInterleaved80T: {"watford-ds", Descriptor{Name: "Watford/Opus",
		Family: FamilyWatford, Sides: SidesInterleaved, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 18, SectorSize: 256, create: newWatfordInterleaved}},
	DFS18SSequential80T: {"watford-seq", Descriptor{Name: "Watford/Opus",
		Family: FamilyWatford, Sides: SidesSequential, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 18, SectorSize: 256}},

	DOS720K: {"dos-720k", Descriptor{Name: "DOS 720k", Family: FamilyDOS,
		Sides: SidesInterleaved, Density: DensityDouble,
		Tracks: 80, SectorsPerTrack: 9, SectorSize: 512}},
	DOS360K: {"dos-360k", Descriptor{Name: "DOS 360k", Family: FamilyDOS,
		Sides: SidesInterleaved, Density: DensityDouble,
		Tracks: 40, SectorsPerTrack: 9, SectorSize: 512}},
}

var byKey map[Key]*Descriptor
var bySlug map[string]DiscType

//
func init() {
	byKey = make(map[Key]*Descriptor, len(catalog))
	bySlug = make(map[string]DiscType, len(catalog))
	for ix := range catalog {
		e := &catalog[ix]
		e.geo.Type = DiscType(ix)
		k := e.geo.Key()
		if _, dup := byKey[k]; dup {
			panic(fmt.Sprintf("duplicate geometry key %+v", k))
		}
		byKey[k] = &e.geo
		bySlug[e.slug] = DiscType(ix)
	}
}

// Key returns the lookup key of this descriptor.
func (d *Descriptor) Key() Key {
	return Key{
		Family:          d.Family,
		Tracks:          d.Tracks,
		SectorsPerTrack: d.SectorsPerTrack,
		Sides:           d.Sides,
	}
}

// Slug returns the short name used for selecting this geometry on the
// command line.
func (d *Descriptor) Slug() string {
	return catalog[d.Type].slug
}

// Lookup finds the catalog entry for the given family, track/sector
// configuration, and side layout.
func Lookup(f Family, tracks, sectorsPerTrack int, s Sides) (*Descriptor, bool) {
	d, ok := byKey[Key{
		Family: f, Tracks: tracks, SectorsPerTrack: sectorsPerTrack, Sides: s}]
	return d, ok
}

// Variant returns the entry that shares family and track/sector configuration
// with d, but has side layout s.
func (d *Descriptor) Variant(s Sides) (*Descriptor, bool) {
	return Lookup(d.Family, d.Tracks, d.SectorsPerTrack, s)
}

//
func ByType(t DiscType) (*Descriptor, error) {
	if t < 0 || t >= typeCount {
		return nil, fmt.Errorf("invalid disc type %d", t)
	}
	return &catalog[t].geo, nil
}

//
func BySlug(slug string) (*Descriptor, error) {
	t, ok := bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, fmt.Errorf("unknown disc type '%s'", slug)
	}
	return &catalog[t].geo, nil
}

// All returns all catalog entries in disc type order.
func All() []*Descriptor {
	ret := make([]*Descriptor, len(catalog))
	for ix := range catalog {
		ret[ix] = &catalog[ix].geo
	}
	return ret
}
