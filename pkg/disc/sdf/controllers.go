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

package sdf

import (
	"fmt"
	"strings"
)

// ControllerMode selects how controllers are assigned to drives.
type ControllerMode int

const (
	// ModeShared uses one controller for all drives, as with a single FDC
	// chip serving several drives. A command on one drive blocks commands on
	// all others until it completes.
	ModeShared ControllerMode = iota
	// ModePerDrive gives each drive its own controller.
	ModePerDrive
)

//
func (m ControllerMode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModePerDrive:
		return "per-drive"
	default:
		return "unknown"
	}
}

//
func ParseControllerMode(m string) (ControllerMode, error) {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case "", "shared":
		return ModeShared, nil
	case "per-drive", "perdrive":
		return ModePerDrive, nil
	}
	return ModeShared, fmt.Errorf("invalid controller mode: %s", m)
}

// Controllers decides which controller serves which drive.
type Controllers interface {

	// For returns the controller serving drive. Drive numbers out of range
	// still get a controller, so that the command can time out as not found.
	For(drive int) *Controller

	// All returns all distinct controllers.
	All() []*Controller
}

//
func newControllers(r *Registry, mode ControllerMode) Controllers {
	if mode == ModePerDrive {
		ret := &perDriveControllers{}
		for ix := range ret.ctrl {
			ret.ctrl[ix] = newController(r)
		}
		return ret
	}
	return &sharedController{ctrl: newController(r)}
}

//
type sharedController struct {
	ctrl *Controller
}

//
func (s *sharedController) For(drive int) *Controller {
	return s.ctrl
}

//
func (s *sharedController) All() []*Controller {
	return []*Controller{s.ctrl}
}

//
type perDriveControllers struct {
	ctrl [NumDrives]*Controller
}

// out of range drive numbers are handled by the controller of the first drive
func (p *perDriveControllers) For(drive int) *Controller {
	if drive < 0 || drive >= NumDrives {
		return p.ctrl[0]
	}
	return p.ctrl[drive]
}

//
func (p *perDriveControllers) All() []*Controller {
	return p.ctrl[:]
}
