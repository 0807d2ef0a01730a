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

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xelalexv/sdfdrive/pkg/run"
)

//
func main() {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	root := &cobra.Command{
		Use:   "sdfctl",
		Short: "SDFDrive - BBC Micro disc images served by a disc controller daemon",
		Long: `
SDFDrive runs a daemon that holds disc images in drives and gives access to
them through an emulated disc controller. Use sdfctl to start the daemon, and
to control it.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		&run.NewServe().Command,
		&run.NewDrives().Command,
		&run.NewLoad().Command,
		&run.NewUnload().Command,
		&run.NewProtect().Command,
		&run.NewCreate().Command,
		&run.NewLs().Command,
		&run.NewDump().Command,
		&run.NewInfo().Command,
		&run.NewFormats().Command,
		&run.NewSearch().Command,
		&run.NewVersion().Command,
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
