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

	"github.com/xelalexv/sdfdrive/pkg/disc/sdf"
)

//
func (a *api) status(w http.ResponseWriter, req *http.Request) {

	status := a.daemon.Status()

	if wantsJSON(req) {
		sendJSONReply(status, http.StatusOK, w)
		return
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for _, s := range status {
		WriteStatus(&sb, s)
	}
	sendReply([]byte(sb.String()), http.StatusOK, w)
}

//
func (a *api) driveStatus(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	s, err := a.daemon.DriveStatus(drive)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(s, http.StatusOK, w)
		return
	}

	var sb strings.Builder
	WriteStatus(&sb, s)
	sendReply([]byte(sb.String()), http.StatusOK, w)
}

// WriteStatus writes a one line summary of a drive's status.
func WriteStatus(w io.Writer, s *sdf.DriveStatus) {

	if !s.Mounted {
		fmt.Fprintf(w, "%d  %-8s track %d\n", s.Drive, "empty", s.Track)
		return
	}

	prot := ""
	if s.WriteProtected {
		prot = ", write protected"
	}

	fmt.Fprintf(w, "%d  %-8s %s (%s, %s, %d tracks, %dx%d)%s, track %d, %s\n",
		s.Drive, s.Type, s.File, s.Sides, s.Density, s.Tracks, s.Sectors,
		s.SectorSize, prot, s.Track, s.State)
}
