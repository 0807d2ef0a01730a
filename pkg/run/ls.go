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
	"fmt"
)

//
func NewLs() *Ls {
	l := &Ls{}
	l.Runner = *NewRunner(
		"ls -d|--drive {drive} [-s|--side {side}]",
		"list files on DFS disc in drive",
		"\nUse the ls command to list the catalogue of the DFS disc in a drive.",
		"", runnerHelpEpilogue, l.Run)
	l.AddBaseSettings()
	l.AddSetting(&l.Drive, "drive", "d", "", 0, "drive number", false)
	l.AddSetting(&l.Side, "side", "s", "", 0, "disc side (0 or 1)", false)
	return l
}

//
type Ls struct {
	//
	Runner
	//
	Drive int
	Side  int
}

//
func (l *Ls) Run() error {
	if err := l.ParseSettings(); err != nil {
		return err
	}
	if err := validateDrive(l.Drive); err != nil {
		return err
	}
	return l.apiPrint("GET",
		fmt.Sprintf("/drive/%d/ls?side=%d", l.Drive, l.Side), nil)
}
