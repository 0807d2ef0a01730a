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
	"strconv"
	"strings"

	"github.com/xelalexv/sdfdrive/pkg/disc/format"
	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
	"github.com/xelalexv/sdfdrive/pkg/repo"
)

// load mounts an image given either as a reference, or in the request body
func (a *api) load(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	ref, err := getRef(req)
	if handleError(err, http.StatusNotAcceptable, w) {
		return
	}

	compressor := getArg(req, "compressor")
	name := getArg(req, "name")

	if ref != "" {
		if name == "" {
			name = ref[strings.LastIndex(ref, "/")+1:]
		}
		if compressor == "" {
			_, _, compressor = format.SplitNameTypeCompressor(name)
		}

		// uncompressed images from the repository are mounted from file, so
		// that they can be written to
		if strings.HasPrefix(ref, repo.RepoScheme) && compressor == "" {
			path, err := repo.LocalPath(ref, a.daemon.Repository())
			if handleError(err, http.StatusNotAcceptable, w) {
				return
			}
			if handleError(a.daemon.LoadFile(drive, path),
				http.StatusUnprocessableEntity, w) {
				return
			}
			sendReply([]byte(fmt.Sprintf("loaded %s into drive %d", ref, drive)),
				http.StatusOK, w)
			return
		}

		in, err := repo.Resolve(ref, a.daemon.Repository())
		if handleError(err, http.StatusNotAcceptable, w) {
			return
		}
		err = a.daemon.LoadReader(drive, name, in, compressor)
		if handleError(err, http.StatusUnprocessableEntity, w) {
			return
		}
		sendReply([]byte(fmt.Sprintf("loaded %s into drive %d", ref, drive)),
			http.StatusOK, w)
		return
	}

	if name == "" {
		name = "upload"
	}

	in := http.MaxBytesReader(w, req.Body, MaxUploadSize)
	if handleError(a.daemon.LoadReader(drive, name, in, compressor),
		http.StatusUnprocessableEntity, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf("loaded data into drive %d", drive)),
		http.StatusOK, w)
}

//
func (a *api) unload(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	if handleError(a.daemon.Unload(drive), http.StatusInternalServerError, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf("unloaded drive %d", drive)), http.StatusOK, w)
}

// create creates a new blank image of the given type in the repository
func (a *api) create(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	geo, err := geometry.BySlug(getArg(req, "type"))
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	path, err := a.daemon.CreateImage(
		drive, getArg(req, "name"), geo.Type, isFlagSet(req, "force"))
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf("created %s (%s) in drive %d",
		path, geo.Slug(), drive)), http.StatusOK, w)
}

//
func (a *api) protect(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	on := true
	if v := getArg(req, "on"); v != "" {
		var err error
		if on, err = strconv.ParseBool(v); err != nil {
			handleError(fmt.Errorf("invalid value for on: %s", v),
				http.StatusUnprocessableEntity, w)
			return
		}
	}

	if handleError(a.daemon.SetWriteProtected(drive, on),
		http.StatusUnprocessableEntity, w) {
		return
	}

	state := "off"
	if on {
		state = "on"
	}
	sendReply([]byte(fmt.Sprintf(
		"write protection for drive %d %s", drive, state)), http.StatusOK, w)
}
