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
	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

// MountableDrive is the set of operations a mounted drive offers to the
// external FDC dispatch layer.
type MountableDrive interface {
	Close() error
	Seek(track int)
	Verify(track int, density geometry.Density) bool
	ReadSector(sector, track, side int, density geometry.Density)
	WriteSector(sector, track, side int, density geometry.Density)
	ReadAddress(track, side int, density geometry.Density)
	Format(track, side int, density geometry.Density)
	Poll()
	Abort()
}

// Dispatcher receives the operations of a drive when a disc gets mounted,
// and is told to drop them when the drive is closed.
type Dispatcher interface {
	Attach(drive int, d MountableDrive)
	Detach(drive int)
}

// DriveTable is a simple Dispatcher, holding the operations of each mounted
// drive indexed by drive number.
type DriveTable struct {
	drives [NumDrives]MountableDrive
}

//
func NewDriveTable() *DriveTable {
	return &DriveTable{}
}

//
func (t *DriveTable) Attach(drive int, d MountableDrive) {
	if 0 <= drive && drive < NumDrives {
		t.drives[drive] = d
	}
}

//
func (t *DriveTable) Detach(drive int) {
	if 0 <= drive && drive < NumDrives {
		t.drives[drive] = nil
	}
}

// Get returns the operations of drive, if a disc is mounted.
func (t *DriveTable) Get(drive int) (MountableDrive, bool) {
	if 0 <= drive && drive < NumDrives && t.drives[drive] != nil {
		return t.drives[drive], true
	}
	return nil, false
}

// mountedDrive binds a drive number to the registry operations
type mountedDrive struct {
	index    int
	registry *Registry
}

func (m *mountedDrive) Close() error {
	return m.registry.Close(m.index)
}

func (m *mountedDrive) Seek(track int) {
	m.registry.Seek(m.index, track)
}

func (m *mountedDrive) Verify(track int, density geometry.Density) bool {
	return m.registry.Verify(m.index, track, density)
}

func (m *mountedDrive) ReadSector(sector, track, side int,
	density geometry.Density) {
	m.registry.ReadSector(m.index, sector, track, side, density)
}

func (m *mountedDrive) WriteSector(sector, track, side int,
	density geometry.Density) {
	m.registry.WriteSector(m.index, sector, track, side, density)
}

func (m *mountedDrive) ReadAddress(track, side int, density geometry.Density) {
	m.registry.ReadAddress(m.index, track, side, density)
}

func (m *mountedDrive) Format(track, side int, density geometry.Density) {
	m.registry.Format(m.index, track, side, density)
}

func (m *mountedDrive) Poll() {
	m.registry.Poll(m.index)
}

func (m *mountedDrive) Abort() {
	m.registry.Abort(m.index)
}
