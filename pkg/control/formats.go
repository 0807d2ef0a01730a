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

package control

import (
	"fmt"
	"io"
)

// WriteFormats writes a table of disc formats.
func WriteFormats(w io.Writer, formats []*FormatInfo) {
	fmt.Fprintf(w, "%-13s %-13s %-26s %-15s %6s %7s %5s %7s  %s\n",
		"TYPE", "NAME", "SIDES", "DENSITY", "TRACKS", "SECTORS", "SIZE",
		"BYTES", "CREATE")
	for _, f := range formats {
		create := "no"
		if f.Creatable {
			create = "yes"
		}
		fmt.Fprintf(w, "%-13s %-13s %-26s %-15s %6d %7d %5d %7d  %s\n",
			f.Slug, f.Name, f.Sides, f.Density, f.Tracks, f.Sectors,
			f.SectorSize, f.Size, create)
	}
}
