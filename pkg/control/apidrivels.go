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
	"net/http"
	"strings"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

//
func (a *api) driveList(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	side, err := getIntArg(req, "side", 0)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	cat, err := a.daemon.Catalog(drive, side)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(cat, http.StatusOK, w)
		return
	}

	var sb strings.Builder
	WriteFileList(&sb, cat)
	sendReply([]byte(sb.String()), http.StatusOK, w)
}

// WriteFileList writes a DFS style catalogue listing.
func WriteFileList(w io.Writer, c *geometry.DFSCatalogue) {

	fmt.Fprintf(w, "\n%-12s  (%02d)  option %d\n\n", c.Title, c.Cycle,
		c.BootOption)

	for _, f := range c.Files {
		lock := " "
		if f.Locked {
			lock = "L"
		}
		fmt.Fprintf(w, "%-10s %s  %06X %06X %06X %03X\n", f.FullName(), lock,
			f.Load, f.Exec, f.Length, f.StartSector)
	}

	fmt.Fprintf(w, "\n%d files, %d of %d sectors used (%d free)\n\n",
		len(c.Files), c.UsedSectors(), c.Sectors, c.FreeSectors())
}
