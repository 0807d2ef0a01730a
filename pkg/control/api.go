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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/daemon"
	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
	"github.com/xelalexv/sdfdrive/pkg/disc/sdf"
	"github.com/xelalexv/sdfdrive/pkg/repo"
)

// MaxUploadSize is the largest image accepted in a request body.
const MaxUploadSize = 4 * 1024 * 1024

//
type APIServer interface {
	Serve() error
	Stop() error
}

// NewAPIServer creates the control API server for daemon d. index is
// optional, search is not available without it.
func NewAPIServer(addr string, d *daemon.Daemon, index *repo.Index) APIServer {
	return &api{address: addr, daemon: d, index: index}
}

//
type api struct {
	address string
	server  *http.Server
	daemon  *daemon.Daemon
	index   *repo.Index
}

//
func (a *api) Serve() error {

	addr := a.address
	if addr == "" {
		addr = ":8888"
	}

	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.WithField("address", addr).Info("API server listening")

	if err := a.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

//
func (a *api) Stop() error {
	log.Info("API server stopping...")
	if a.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.server.Shutdown(ctx)
}

//
func (a *api) router() *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	addRoute(router, "status", "GET", "/status", a.status)
	addRoute(router, "drive", "GET", "/drive/{drive:[0-9]+}", a.driveStatus)
	addRoute(router, "load", "PUT", "/drive/{drive:[0-9]+}", a.load)
	addRoute(router, "unload", "DELETE", "/drive/{drive:[0-9]+}", a.unload)
	addRoute(router, "create", "POST", "/drive/{drive:[0-9]+}/create", a.create)
	addRoute(router, "protect", "PUT", "/drive/{drive:[0-9]+}/protect", a.protect)
	addRoute(router, "ls", "GET", "/drive/{drive:[0-9]+}/ls", a.driveList)
	addRoute(router, "read", "GET", "/drive/{drive:[0-9]+}/sector", a.readSector)
	addRoute(router, "write", "PUT", "/drive/{drive:[0-9]+}/sector", a.writeSector)
	addRoute(router, "address", "GET", "/drive/{drive:[0-9]+}/address", a.readAddress)
	addRoute(router, "format", "PUT", "/drive/{drive:[0-9]+}/format", a.format)
	addRoute(router, "formats", "GET", "/formats", a.formats)
	addRoute(router, "search", "GET", "/search", a.search)
	addRoute(router, "version", "GET", "/version", a.version)

	return router
}

//
func addRoute(r *mux.Router, name, method, pattern string,
	handler http.HandlerFunc) {
	r.Methods(method).Path(pattern).Name(name).Handler(logged(handler, name))
}

//
func logged(h http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"uri":      r.RequestURI,
			"route":    name,
			"duration": time.Since(start),
		}).Debug("API request")
	})
}

// getDrive gets the drive number from the request. If it is invalid, an
// error is sent and -1 returned.
func getDrive(w http.ResponseWriter, req *http.Request) int {
	drive, err := getIntArg(req, "drive", -1)
	if err == nil && (drive < 0 || drive >= sdf.NumDrives) {
		err = fmt.Errorf("%w: %d", sdf.ErrNoDrive, drive)
	}
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return -1
	}
	return drive
}

// getAddress gets track, side, and sector from the request
func getAddress(req *http.Request) (track, side, sector int, err error) {
	if track, err = getIntArg(req, "track", 0); err != nil {
		return
	}
	if side, err = getIntArg(req, "side", 0); err != nil {
		return
	}
	sector, err = getIntArg(req, "sector", 0)
	return
}

//
func getRef(req *http.Request) (string, error) {
	ref := getArg(req, "ref")
	if ref == "" {
		return "", nil
	}
	if !repo.IsRef(ref) {
		return ref, fmt.Errorf("invalid reference: %s", ref)
	}
	return ref, nil
}

//
func getArg(req *http.Request, key string) string {
	if v, ok := mux.Vars(req)[key]; ok {
		return v
	}
	return req.URL.Query().Get(key)
}

//
func getIntArg(req *http.Request, key string, def int) (int, error) {
	if v := getArg(req, key); v != "" {
		ret, err := strconv.Atoi(v)
		if err != nil {
			return def, fmt.Errorf("invalid value for %s: %s", key, v)
		}
		return ret, nil
	}
	return def, nil
}

//
func isFlagSet(req *http.Request, key string) bool {
	v, ok := req.URL.Query()[key]
	if !ok {
		return false
	}
	if len(v) == 0 || v[0] == "" {
		return true
	}
	b, err := strconv.ParseBool(v[0])
	return err == nil && b
}

//
func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json") ||
		isFlagSet(req, "json")
}

// statusFor maps errors from the daemon onto HTTP status codes
func statusFor(err error, def int) int {
	switch {
	case errors.Is(err, sdf.ErrNoDrive),
		errors.Is(err, sdf.ErrNotMounted),
		errors.Is(err, sdf.ErrNotDFSDisc),
		errors.Is(err, daemon.ErrDataSize),
		errors.Is(err, geometry.ErrUnknownFormat),
		errors.Is(err, geometry.ErrNotCreatable),
		errors.Is(err, geometry.ErrInvalidAddress):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sdf.ErrBusy):
		return http.StatusLocked
	case errors.Is(err, daemon.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, daemon.ErrWriteProtected):
		return http.StatusForbidden
	case errors.Is(err, daemon.ErrTimeout):
		return http.StatusGatewayTimeout
	}
	return def
}

//
func handleError(e error, statusCode int, w http.ResponseWriter) bool {
	if e == nil {
		return false
	}
	statusCode = statusFor(e, statusCode)
	log.WithField("status", statusCode).Errorf("API error: %v", e)
	sendReply([]byte(e.Error()), statusCode, w)
	return true
}

//
func sendReply(body []byte, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendJSONReply(obj interface{}, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		log.Errorf("problem sending JSON reply: %v", err)
	}
}

//
func sendStreamReply(r io.Reader, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(statusCode)
	if _, err := io.Copy(w, r); err != nil {
		log.Errorf("problem sending stream reply: %v", err)
	}
}
