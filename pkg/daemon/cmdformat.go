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

/*
	FormatTrack formats one track of the disc in drive. Each sector of the
	track gets its first byte zeroed, the remaining contents are left alone.
*/
func (d *Daemon) FormatTrack(drive, track, side int) error {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	c := &command{kind: cmdFormat, drive: drive, track: track, side: side}
	_, err := c.run(d)
	return err
}
