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

package daemon

import (
	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
	"github.com/xelalexv/sdfdrive/pkg/disc/sdf"
)

// Status returns the status of all drives.
func (d *Daemon) Status() []*sdf.DriveStatus {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	ret := make([]*sdf.DriveStatus, 0, sdf.NumDrives)
	for ix := 0; ix < sdf.NumDrives; ix++ {
		if s, err := d.registry.Status(ix); err == nil {
			ret = append(ret, s)
		}
	}
	return ret
}

//
func (d *Daemon) DriveStatus(drive int) (*sdf.DriveStatus, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.registry.Status(drive)
}

// Catalog returns the DFS catalogue of the given side of the disc in drive.
func (d *Daemon) Catalog(drive, side int) (*geometry.DFSCatalogue, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.registry.Catalogue(drive, side)
}
