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

// Address is a sector ID field as returned by READ ADDRESS.
type Address struct {
	Track    int `json:"track"`
	Side     int `json:"side"`
	Sector   int `json:"sector"`
	SizeCode int `json:"sizeCode"`
}

//
func (a *Address) String() string {
	return fmt.Sprintf("track %d, side %d, sector %d, size code %d",
		a.Track, a.Side, a.Sector, a.SizeCode)
}

/*
	ReadAddress reads the ID field of the next sector passing under the head
	of drive. Consecutive calls return consecutive sectors of the track,
	wrapping around at the end.

		byte 0:	track
		     1:	side
		     2:	sector
		     3:	size code (1: 256, 2: 512, 3: 1024 bytes)
		     4:	CRC, always 0
		     5:	CRC, always 0
*/
func (d *Daemon) ReadAddress(drive, track, side int) (*Address, error) {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	c := &command{kind: cmdAddress, drive: drive, track: track, side: side}
	id, err := c.run(d)
	if err != nil {
		return nil, err
	}

	if len(id) < 4 {
		return nil, fmt.Errorf("short sector ID: %d bytes", len(id))
	}

	return &Address{
		Track:    int(id[0]),
		Side:     int(id[1]),
		Sector:   int(id[2]),
		SizeCode: int(id[3]),
	}, nil
}
