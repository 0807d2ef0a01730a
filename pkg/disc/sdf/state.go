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
	"fmt"
)

// State is the state of the controller state machine.
type State int

const (
	StateIdle State = iota
	StateNotFound
	StateReadSector
	StateWriteSector
	StateReadAddress0
	StateReadAddress1
	StateReadAddress2
	StateReadAddress3
	StateReadAddress4
	StateReadAddress5
	StateReadAddress6
	StateFormat
)

//
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNotFound:
		return "not found"
	case StateReadSector:
		return "read sector"
	case StateWriteSector:
		return "write sector"
	case StateFormat:
		return "format"
	}
	if s >= StateReadAddress0 && s <= StateReadAddress6 {
		return fmt.Sprintf("read address %d", s-StateReadAddress0)
	}
	return "unknown"
}

//
func (s State) IsReadAddress() bool {
	return s >= StateReadAddress0 && s <= StateReadAddress6
}
