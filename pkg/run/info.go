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

import (
	"os"
)

//
func NewInfo() *Info {
	i := &Info{}
	i.Runner = *NewRunner(
		"info -i|--input {file}",
		"show geometry and catalogue of a local disc image",
		`
Use the info command to detect the geometry of a local disc image file, and
list the catalogue of DFS discs. The image may be compressed.`,
		"", runnerHelpEpilogue, i.Run)
	i.AddSetting(&i.LogLevel, "log-level", "", "LOG_LEVEL", "warn",
		"log level", false)
	i.AddSetting(&i.Input, "input", "i", "", nil, "disc image file", true)
	return i
}

//
type Info struct {
	//
	Runner
	//
	Input string
}

//
func (i *Info) Run() error {
	if err := i.ParseSettings(); err != nil {
		return err
	}
	return describeImage(os.Stdout, i.Input)
}
