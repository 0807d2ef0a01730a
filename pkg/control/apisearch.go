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
	"net/http"
	"strings"
)

// search runs a repository search; types can be restricted with one or more
// type arguments, e.g. `?term=elite&type=ssd&type=dsd`
func (a *api) search(w http.ResponseWriter, req *http.Request) {

	if a.index == nil {
		handleError(fmt.Errorf("search index not available"),
			http.StatusServiceUnavailable, w)
		return
	}

	items, err := getIntArg(req, "items", 100)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	var types []string
	for _, t := range req.URL.Query()["type"] {
		types = append(types, strings.Split(t, ",")...)
	}

	res, err := a.index.Search(getArg(req, "term"), types, items)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(res, http.StatusOK, w)
		return
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for _, r := range res.Refs() {
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	more := ""
	if !res.Complete {
		more = fmt.Sprintf(", showing first %d", len(res.Hits))
	}
	sb.WriteString(fmt.Sprintf("\n%d images found%s\n", res.Total, more))
	sendReply([]byte(sb.String()), http.StatusOK, w)
}
