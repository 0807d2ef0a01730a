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
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

// FormatInfo describes a catalogued disc format.
type FormatInfo struct {
	Slug       string `json:"type" csv:"type"`
	Name       string `json:"name" csv:"name"`
	Sides      string `json:"sides" csv:"sides"`
	Density    string `json:"density" csv:"density"`
	Tracks     int    `json:"tracks" csv:"tracks"`
	Sectors    int    `json:"sectors" csv:"sectors"`
	SectorSize int    `json:"sectorSize" csv:"sector_size"`
	Size       int64  `json:"size" csv:"size"`
	Creatable  bool   `json:"creatable" csv:"creatable"`
}

// Formats lists all catalogued disc formats.
func Formats() []*FormatInfo {
	all := geometry.All()
	ret := make([]*FormatInfo, len(all))
	for ix, g := range all {
		ret[ix] = &FormatInfo{
			Slug:       g.Slug(),
			Name:       g.Name,
			Sides:      g.SidesDescription(),
			Density:    g.DensityDescription(),
			Tracks:     g.Tracks,
			Sectors:    g.SectorsPerTrack,
			SectorSize: g.SectorSize,
			Size:       g.ImageSize(),
			Creatable:  g.CanCreate(),
		}
	}
	return ret
}

//
func (a *api) formats(w http.ResponseWriter, req *http.Request) {

	formats := Formats()

	if wantsJSON(req) {
		sendJSONReply(formats, http.StatusOK, w)
		return
	}

	if isFlagSet(req, "csv") {
		out, err := gocsv.MarshalString(formats)
		if handleError(err, http.StatusInternalServerError, w) {
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(out))
		return
	}

	var sb strings.Builder
	sb.WriteString("\n")
	WriteFormats(&sb, formats)
	sendReply([]byte(sb.String()), http.StatusOK, w)
}
