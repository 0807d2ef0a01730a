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
	"errors"
)

var (
	// ErrUnknownFormat is returned when none of the detection heuristics
	// recognises an image.
	ErrUnknownFormat = errors.New("unable to determine disc geometry")
	// ErrInvalidAddress is returned for a track, side, or sector outside of
	// a geometry.
	ErrInvalidAddress = errors.New("invalid disc address")
	// ErrNotCreatable is returned when asked to create an image of a type
	// that has no initializer.
	ErrNotCreatable = errors.New("creation of this disc type not supported")
	//
	ErrNoCatalogue = errors.New("no valid DFS catalogue")
)
