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

package run

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/control"
	"github.com/xelalexv/sdfdrive/pkg/daemon"
	"github.com/xelalexv/sdfdrive/pkg/disc/sdf"
	"github.com/xelalexv/sdfdrive/pkg/repo"
	"github.com/xelalexv/sdfdrive/pkg/util"
)

//
func NewServe() *Serve {

	s := &Serve{}
	s.Runner = *NewRunner(
		"serve [-a|--address {address}] [-r|--repo {directory}] [--index {directory}] [--controllers {mode}] [--ticks {count}]",
		"start the disc daemon",
		`
Use the serve command to start the disc daemon. The daemon manages the
drives, runs the disc controllers, and serves the control API.`,
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Repository, "repo", "r", "SDFDRIVE_REPO", nil,
		"image repository directory; new images are created here, and image "+
			"paths are resolved against it", false)
	s.AddSetting(&s.Index, "index", "", "SDFDRIVE_INDEX", nil,
		"search index directory; defaults to .index in the repository", false)
	s.AddSetting(&s.NoIndex, "no-index", "", "SDFDRIVE_NO_INDEX", false,
		"disable repository search index", false)
	s.AddSetting(&s.Controllers, "controllers", "", "SDFDRIVE_CONTROLLERS",
		"shared", "controller assignment, 'shared' or 'per-drive'", false)
	s.AddSetting(&s.Ticks, "ticks", "", "SDFDRIVE_TICKS",
		daemon.DefaultTickBudget,
		"max number of controller ticks for a single transfer", false)

	return s
}

//
type Serve struct {
	//
	Runner
	//
	Repository  string
	Index       string
	NoIndex     bool
	Controllers string
	Ticks       int
}

//
func (s *Serve) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	log.WithField("version", util.SDFDriveVersion).Info("SDFDrive starting")

	mode, err := sdf.ParseControllerMode(s.Controllers)
	if err != nil {
		return err
	}

	d, err := daemon.NewDaemon(s.Repository, mode, s.Ticks)
	if err != nil {
		return err
	}
	defer d.Stop()

	var index *repo.Index
	if s.Repository != "" && !s.NoIndex {
		dir := s.Index
		if dir == "" {
			dir = filepath.Join(s.Repository, ".index")
		}
		if index, err = repo.NewIndex(dir, s.Repository); err != nil {
			return err
		}
		if err := index.Start(); err != nil {
			index.Stop()
			return err
		}
		defer index.Stop()
	}

	api := control.NewAPIServer(s.Address, d, index)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		if err := api.Stop(); err != nil {
			log.Errorf("error stopping API server: %v", err)
		}
	}()

	return api.Serve()
}
