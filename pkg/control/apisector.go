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
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

// SectorData is the JSON form of a sector read.
type SectorData struct {
	Drive  int    `json:"drive"`
	Track  int    `json:"track"`
	Side   int    `json:"side"`
	Sector int    `json:"sector"`
	Data   []byte `json:"data"`
}

//
func (a *api) readSector(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	track, side, sector, err := getAddress(req)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	data, err := a.daemon.ReadSector(drive, track, side, sector)
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	switch {
	case wantsJSON(req):
		sendJSONReply(&SectorData{Drive: drive, Track: track, Side: side,
			Sector: sector, Data: data}, http.StatusOK, w)
	case isFlagSet(req, "hex"):
		sendReply([]byte(hex.Dump(data)), http.StatusOK, w)
	default:
		sendStreamReply(bytes.NewReader(data), http.StatusOK, w)
	}
}

//
func (a *api) writeSector(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	track, side, sector, err := getAddress(req)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	// largest sector is 1k, anything longer gets rejected by the daemon
	data, err := io.ReadAll(io.LimitReader(req.Body, 1025))
	if handleError(err, http.StatusBadRequest, w) {
		return
	}

	if handleError(a.daemon.WriteSector(drive, track, side, sector, data),
		http.StatusInternalServerError, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf(
		"wrote %d bytes to drive %d, track %d, side %d, sector %d",
		len(data), drive, track, side, sector)), http.StatusOK, w)
}

//
func (a *api) readAddress(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	track, side, _, err := getAddress(req)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	addr, err := a.daemon.ReadAddress(drive, track, side)
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(addr, http.StatusOK, w)
	} else {
		sendReply([]byte(addr.String()), http.StatusOK, w)
	}
}

//
func (a *api) format(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	track, side, _, err := getAddress(req)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if handleError(a.daemon.FormatTrack(drive, track, side),
		http.StatusInternalServerError, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf("formatted drive %d, track %d, side %d",
		drive, track, side)), http.StatusOK, w)
}
