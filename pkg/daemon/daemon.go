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

package daemon

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
	"github.com/xelalexv/sdfdrive/pkg/disc/sdf"
)

// DefaultTickBudget is the default number of controller ticks a synchronous
// transfer may take. Formatting an 18 sector track takes about 153k ticks.
const DefaultTickBudget = 1 << 20

var (
	ErrNotFound       = errors.New("sector not found")
	ErrWriteProtected = errors.New("disc is write protected")
	ErrTimeout        = errors.New("controller did not complete command")
	ErrDataSize       = errors.New("data size does not match sector size")
)

// Daemon owns the drive registry and serializes all access to it. Transfers
// are run synchronously by driving the controller state machine until it
// reports completion through the bus.
type Daemon struct {
	registry *sdf.Registry
	drives   *sdf.DriveTable
	bus      *recordingBus
	//
	repository string
	tickBudget int
	//
	mutex sync.Mutex
}

// NewDaemon creates a daemon. New images are created in repository, and
// relative image paths are resolved against it. If tickBudget is not
// positive, DefaultTickBudget is used.
func NewDaemon(repository string, mode sdf.ControllerMode, tickBudget int) (
	*Daemon, error) {

	if tickBudget <= 0 {
		tickBudget = DefaultTickBudget
	}

	d := &Daemon{
		drives:     sdf.NewDriveTable(),
		bus:        &recordingBus{},
		repository: repository,
		tickBudget: tickBudget,
	}

	var err error
	if d.registry, err = sdf.NewRegistry(d.bus, mode, d.drives); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"repository":  repository,
		"controllers": mode,
		"ticks":       tickBudget,
	}).Info("daemon created")

	return d, nil
}

// Stop unmounts all drives.
func (d *Daemon) Stop() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	log.Info("daemon stopping")
	return d.registry.CloseAll()
}

// Repository is the directory new images are created in. Empty if none was
// configured.
func (d *Daemon) Repository() string {
	return d.repository
}

// mounted returns the dispatch operations and geometry of drive. Must be
// called with lock held.
func (d *Daemon) mounted(drive int) (sdf.MountableDrive, *geometry.Descriptor,
	error) {

	dr, err := d.registry.Drive(drive)
	if err != nil {
		return nil, nil, err
	}

	md, ok := d.drives.Get(drive)
	if !ok || !dr.IsMounted() {
		return nil, nil, fmt.Errorf("%w %d", sdf.ErrNotMounted, drive)
	}

	return md, dr.Geometry(), nil
}
