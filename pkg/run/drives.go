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

package run

//
func NewDrives() *Drives {
	d := &Drives{}
	d.Runner = *NewRunner(
		"drives [-a|--address {address}]",
		"list drive status",
		"\nUse the drives command to list the status of all drives.",
		"", runnerHelpEpilogue, d.Run)
	d.AddBaseSettings()
	return d
}

//
type Drives struct {
	Runner
}

//
func (d *Drives) Run() error {
	if err := d.ParseSettings(); err != nil {
		return err
	}
	return d.apiPrint("GET", "/status", nil)
}
