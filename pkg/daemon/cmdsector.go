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
	"fmt"
)

/*
	ReadSector reads one sector through the controller, the way the host
	would: seek to the track, issue READ SECTOR, and collect the bytes the
	controller delivers. Sectors larger than 256 bytes are numbered from 1.
*/
func (d *Daemon) ReadSector(drive, track, side, sector int) ([]byte, error) {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	c := &command{
		kind: cmdRead, drive: drive, track: track, side: side, sector: sector}
	return c.run(d)
}

/*
	WriteSector writes one sector through the controller. data needs to be
	exactly one sector long.
*/
func (d *Daemon) WriteSector(drive, track, side, sector int,
	data []byte) error {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	geo, err := d.discGeometry(drive)
	if err != nil {
		return err
	}

	if len(data) != geo.SectorSize {
		return fmt.Errorf("%w: got %d, want %d",
			ErrDataSize, len(data), geo.SectorSize)
	}

	c := &command{kind: cmdWrite, drive: drive, track: track, side: side,
		sector: sector, data: data}
	_, err = c.run(d)
	return err
}
