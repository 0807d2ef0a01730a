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

// Bus is the byte transfer side of the floppy disc controller, i.e. the part
// of the emulated FDC chip that talks to the CPU. The controller state
// machine hands data to the bus, pulls data from it, and signals command
// completion through it.
type Bus interface {

	// Data delivers one byte read from disc.
	Data(b byte)

	// GetData fetches the next byte to write to disc. last is set when this
	// is the final byte of the sector. Returns false if no byte is ready yet,
	// i.e. on data underrun.
	GetData(last bool) (byte, bool)

	// FinishRead signals successful completion of the current command.
	FinishRead()

	// NotFound signals that the requested sector or track could not be found.
	NotFound()

	// WriteProtect signals an attempt to write to a write-protected disc.
	WriteProtect()
}
