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
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

// NumDrives is the number of drive slots.
const NumDrives = 2

var (
	ErrNoDrive     = errors.New("no such drive")
	ErrNotMounted  = errors.New("no disc in drive")
	ErrBusy        = errors.New("controller busy")
	ErrSectorSize  = errors.New("sector size does not match disc")
	ErrNotDFSDisc  = errors.New("not a DFS disc")
	ErrNoBus       = errors.New("no controller bus")
	ErrUnsupported = errors.New("unsupported disc type")
)

// Registry holds the drive slots and the controllers serving them. It is not
// safe for concurrent use; all calls are expected to come from the single
// emulation loop.
type Registry struct {
	drives      [NumDrives]*Drive
	bus         Bus
	controllers Controllers
	dispatcher  Dispatcher
}

// NewRegistry creates a registry with empty drives. Whenever a drive gets
// mounted or closed, dispatcher is notified, if set.
func NewRegistry(bus Bus, mode ControllerMode, dispatcher Dispatcher) (
	*Registry, error) {

	if bus == nil {
		return nil, ErrNoBus
	}

	r := &Registry{bus: bus, dispatcher: dispatcher}
	for ix := range r.drives {
		r.drives[ix] = newDrive(ix)
	}
	r.controllers = newControllers(r, mode)

	log.WithField("controllers", mode).Debug("drive registry created")
	return r, nil
}

// drive returns the drive record for drive, or nil if out of range
func (r *Registry) drive(drive int) *Drive {
	if drive < 0 || drive >= NumDrives {
		return nil
	}
	return r.drives[drive]
}

// Drive returns the drive record for drive.
func (r *Registry) Drive(drive int) (*Drive, error) {
	if d := r.drive(drive); d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrNoDrive, drive)
}

//
func (r *Registry) mounted(drive int) (*Drive, error) {
	d, err := r.Drive(drive)
	if err != nil {
		return nil, err
	}
	if !d.IsMounted() {
		return nil, fmt.Errorf("%w %d", ErrNotMounted, drive)
	}
	return d, nil
}

// Controller returns the controller serving drive.
func (r *Registry) Controller(drive int) *Controller {
	return r.controllers.For(drive)
}

// IsBusy returns whether a command is in progress on the controller serving
// drive.
func (r *Registry) IsBusy(drive int) bool {
	return !r.controllers.For(drive).IsIdle()
}

// Seek moves the head of drive to track. This also works for empty drives.
func (r *Registry) Seek(drive, track int) {
	if d := r.drive(drive); d != nil {
		d.track = track
	}
}

// Verify checks whether track exists on the disc in drive, and whether the
// disc has the given density.
func (r *Registry) Verify(drive, track int, density geometry.Density) bool {
	if d := r.drive(drive); d != nil && d.matchesDensity(density) {
		return track >= 0 && track < d.geo.Tracks
	}
	return false
}

//
func (r *Registry) ReadSector(drive, sector, track, side int,
	density geometry.Density) {
	r.controllers.For(drive).ReadSector(drive, sector, track, side, density)
}

//
func (r *Registry) WriteSector(drive, sector, track, side int,
	density geometry.Density) {
	r.controllers.For(drive).WriteSector(drive, sector, track, side, density)
}

//
func (r *Registry) ReadAddress(drive, track, side int,
	density geometry.Density) {
	r.controllers.For(drive).ReadAddress(drive, track, side, density)
}

//
func (r *Registry) Format(drive, track, side int, density geometry.Density) {
	r.controllers.For(drive).Format(drive, track, side, density)
}

//
func (r *Registry) Poll(drive int) {
	r.controllers.For(drive).Poll()
}

//
func (r *Registry) Abort(drive int) {
	r.controllers.For(drive).Abort()
}

// Close unmounts drive. A command in progress on that drive is aborted.
func (r *Registry) Close(drive int) error {

	d, err := r.Drive(drive)
	if err != nil {
		return err
	}

	if !d.IsMounted() {
		return nil
	}

	if c := r.controllers.For(drive); c.ActiveDrive() == drive {
		c.Abort()
	}

	name := d.name
	err = d.release()

	if r.dispatcher != nil {
		r.dispatcher.Detach(drive)
	}

	logger := log.WithFields(log.Fields{"drive": drive, "file": name})
	if err != nil {
		logger.Errorf("error closing disc image: %v", err)
		return fmt.Errorf("error closing drive %d: %v", drive, err)
	}

	logger.Info("drive closed")
	return nil
}

// CloseAll unmounts all drives.
func (r *Registry) CloseAll() error {
	var ret error
	for ix := range r.drives {
		if err := r.Close(ix); err != nil {
			ret = multierror.Append(ret, err)
		}
	}
	return ret
}

// SetWriteProtected sets the write protection of drive. It stays in effect
// until the next disc is mounted.
func (r *Registry) SetWriteProtected(drive int, p bool) error {
	d, err := r.Drive(drive)
	if err != nil {
		return err
	}
	d.writeProtected = p
	log.WithFields(log.Fields{
		"drive": drive, "protected": p}).Debug("write protection changed")
	return nil
}

// DirectSeek positions the image in drive at the given sector, bypassing the
// controller, for direct sector access by the host OS. sectorSize must match
// the sector size of the disc.
func (r *Registry) DirectSeek(drive, sector, track, side, sectorSize int) (
	Image, error) {

	d, err := r.mounted(drive)
	if err != nil {
		return nil, err
	}

	if sectorSize != d.geo.SectorSize {
		log.WithFields(log.Fields{
			"drive": drive,
			"size":  sectorSize,
			"disc":  d.geo.SectorSize}).Debug("direct seek, sector size mismatch")
		return nil, ErrSectorSize
	}

	if r.IsBusy(drive) {
		return nil, ErrBusy
	}

	if !r.controllers.For(drive).seek(d, sector, track, side) {
		return nil, geometry.ErrInvalidAddress
	}

	return d.image, nil
}

// Catalogue reads the DFS catalogue of the given side of the disc in drive.
func (r *Registry) Catalogue(drive, side int) (*geometry.DFSCatalogue, error) {

	d, err := r.mounted(drive)
	if err != nil {
		return nil, err
	}

	if !d.geo.Family.IsDFS() {
		return nil, fmt.Errorf("%w: %s", ErrNotDFSDisc, d.geo.Name)
	}

	if r.IsBusy(drive) {
		return nil, ErrBusy
	}

	off, err := geometry.Offset(d.geo, 0, side, 0)
	if err != nil {
		return nil, err
	}

	return geometry.ReadDFSCatalogue(d.image, off)
}

// DriveStatus is a summary of the state of a drive.
type DriveStatus struct {
	Drive          int    `json:"drive"`
	Mounted        bool   `json:"mounted"`
	File           string `json:"file,omitempty"`
	Type           string `json:"type,omitempty"`
	Format         string `json:"format,omitempty"`
	Sides          string `json:"sides,omitempty"`
	Density        string `json:"density,omitempty"`
	Tracks         int    `json:"tracks,omitempty"`
	Sectors        int    `json:"sectors,omitempty"`
	SectorSize     int    `json:"sectorSize,omitempty"`
	Track          int    `json:"track"`
	WriteProtected bool   `json:"writeProtected"`
	State          string `json:"state"`
}

//
func (r *Registry) Status(drive int) (*DriveStatus, error) {

	d, err := r.Drive(drive)
	if err != nil {
		return nil, err
	}

	ret := &DriveStatus{
		Drive:          drive,
		Mounted:        d.IsMounted(),
		Track:          d.track,
		WriteProtected: d.writeProtected,
		State:          StateIdle.String(),
	}

	if c := r.controllers.For(drive); c.ActiveDrive() == drive {
		ret.State = c.State().String()
	}

	if geo := d.geo; geo != nil {
		ret.File = d.name
		ret.Type = geo.Slug()
		ret.Format = geo.Name
		ret.Sides = geo.SidesDescription()
		ret.Density = geo.DensityDescription()
		ret.Tracks = geo.Tracks
		ret.Sectors = geo.SectorsPerTrack
		ret.SectorSize = geo.SectorSize
	}

	return ret, nil
}
