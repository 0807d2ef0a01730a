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
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

const (
	// raw ticks that need to pass before the controller takes its next step
	StepTicks = 16
	// steps until a failed search is reported as not found
	NotFoundDelay = 500
	// steps between sectors while formatting a track
	FormatDelay = 500
	// tick bias at the start of a write, for head settling
	WriteStartBias = -20
)

// Controller is the floppy disc controller state machine. It runs one
// command at a time and advances by one step each time Poll has been called
// more than StepTicks times. Invalid commands are not rejected right away but
// reported as not found after NotFoundDelay steps, the way a real controller
// times out searching for a sector.
type Controller struct {
	registry *Registry
	//
	state State
	count int
	time  int
	// context of the current command
	drive  int
	side   int
	track  int
	sector int
	//
	buf []byte
}

//
func newController(r *Registry) *Controller {
	return &Controller{registry: r, buf: make([]byte, 1)}
}

//
func (c *Controller) State() State {
	return c.state
}

//
func (c *Controller) IsIdle() bool {
	return c.state == StateIdle
}

// ActiveDrive returns the drive the current command is working on, -1 if
// the controller is idle.
func (c *Controller) ActiveDrive() int {
	if c.state == StateIdle {
		return -1
	}
	return c.drive
}

//
func (c *Controller) bus() Bus {
	return c.registry.bus
}

// notFound starts the not found delay. The command context is recorded so
// that the failing command is attributed to its drive.
func (c *Controller) notFound(drive, track, side, sector int) {
	c.drive = drive
	c.track = track
	c.side = side
	c.sector = sector
	c.count = NotFoundDelay
	c.state = StateNotFound
}

// checkSeek validates the address of a sector command against the drive and
// positions the image at the sector. On failure, the not found delay is
// started and nil returned.
func (c *Controller) checkSeek(drive, sector, track, side int,
	density geometry.Density) *geometry.Descriptor {

	logger := log.WithField("drive", drive)

	if d := c.registry.drive(drive); d == nil {
		logger.Debug("drive number out of range")

	} else if !d.IsMounted() {
		logger.Debug("geometry not found")

	} else if !d.matchesDensity(density) {
		logger.WithField("density", density).Debug("invalid density")

	} else if track != d.track {
		logger.WithFields(log.Fields{
			"track": track, "current": d.track}).Debug("invalid track")

	} else if c.seek(d, sector, track, side) {
		return d.geo
	}

	c.notFound(drive, track, side, sector)
	return nil
}

// seek positions the image of drive d at the given sector
func (c *Controller) seek(d *Drive, sector, track, side int) bool {

	offset, err := geometry.Offset(d.geo, track, side, sector)
	if err != nil {
		return false
	}

	log.WithFields(log.Fields{
		"drive":  d.index,
		"side":   side,
		"track":  track,
		"sector": sector,
		"offset": offset,
	}).Trace("seeking")

	if _, err := d.image.Seek(offset, io.SeekStart); err != nil {
		log.WithField("drive", d.index).Errorf("seek failed: %v", err)
		return false
	}

	return true
}

// ReadSector starts reading a sector. The track must match the track the
// drive was last seeked to.
func (c *Controller) ReadSector(drive, sector, track, side int,
	density geometry.Density) {

	if c.state != StateIdle {
		return
	}

	if geo := c.checkSeek(drive, sector, track, side, density); geo != nil {
		c.count = geo.SectorSize
		c.drive = drive
		c.side = side
		c.track = track
		c.sector = sector
		c.state = StateReadSector
	}
}

// WriteSector starts writing a sector. Data is pulled from the bus.
func (c *Controller) WriteSector(drive, sector, track, side int,
	density geometry.Density) {

	if c.state != StateIdle {
		return
	}

	if geo := c.checkSeek(drive, sector, track, side, density); geo != nil {
		c.count = geo.SectorSize
		c.drive = drive
		c.side = side
		c.track = track
		c.sector = sector
		c.time = WriteStartBias
		c.state = StateWriteSector
	}
}

// ReadAddress starts reading the ID field of the next sector passing under
// the head.
func (c *Controller) ReadAddress(drive, track, side int,
	density geometry.Density) {

	if c.state != StateIdle {
		return
	}

	if d := c.registry.drive(drive); d != nil && d.matchesDensity(density) &&
		(side == 0 || d.geo.IsDoubleSided()) {
		c.drive = drive
		c.side = side
		c.track = track
		c.state = StateReadAddress0
		return
	}

	log.WithField("drive", drive).Debug("read address not possible")
	c.notFound(drive, track, side, 0)
}

// Format starts formatting a track. The track is validated with sector 0,
// so discs with sectors numbered from 1 end up not found.
func (c *Controller) Format(drive, track, side int, density geometry.Density) {

	if c.state != StateIdle {
		return
	}

	if c.checkSeek(drive, 0, track, side, density) != nil {
		c.drive = drive
		c.side = side
		c.track = track
		c.sector = 0
		c.count = FormatDelay
		c.state = StateFormat
	}
}

// Abort cancels the current command, if any.
func (c *Controller) Abort() {
	if c.state != StateIdle {
		log.WithFields(log.Fields{
			"drive": c.drive, "state": c.state}).Debug("aborting command")
	}
	c.state = StateIdle
	c.count = 0
}

// Poll advances the controller by one raw tick.
func (c *Controller) Poll() {

	if c.time++; c.time <= StepTicks {
		return
	}
	c.time = 0

	if c.state == StateIdle {
		return
	}

	if c.state == StateNotFound {
		if c.count--; c.count == 0 {
			c.bus().NotFound()
			c.state = StateIdle
		}
		return
	}

	d := c.registry.drive(c.drive)
	if d == nil || !d.IsMounted() {
		log.WithField("drive", c.drive).Warn("disc removed during command")
		c.notFound(c.drive, c.track, c.side, c.sector)
		return
	}

	switch c.state {

	case StateReadSector:
		c.bus().Data(c.readByte(d))
		if c.count--; c.count == 0 {
			c.bus().FinishRead()
			c.state = StateIdle
		}

	case StateWriteSector:
		if d.writeProtected {
			log.WithField("drive", c.drive).Debug(
				"write protected during write sector")
			c.bus().WriteProtect()
			c.state = StateIdle
			break
		}
		c.count--
		b, ok := c.bus().GetData(c.count == 0)
		if !ok {
			log.WithField("drive", c.drive).Warn("data underrun on write")
			c.count++
			break
		}
		c.writeByte(d, b)
		if c.count == 0 {
			c.bus().FinishRead()
			c.state = StateIdle
		}

	case StateReadAddress0:
		c.bus().Data(byte(c.track))
		c.state = StateReadAddress1

	case StateReadAddress1:
		c.bus().Data(byte(c.side))
		c.state = StateReadAddress2

	case StateReadAddress2:
		c.bus().Data(byte(d.sector + d.geo.FirstSector()))
		c.state = StateReadAddress3

	case StateReadAddress3:
		c.bus().Data(d.geo.SizeCode())
		c.state = StateReadAddress4

	case StateReadAddress4:
		c.bus().Data(0)
		c.state = StateReadAddress5

	case StateReadAddress5:
		c.bus().Data(0)
		c.state = StateReadAddress6

	case StateReadAddress6:
		c.state = StateIdle
		c.bus().FinishRead()
		d.nextSector()

	case StateFormat:
		if d.writeProtected {
			log.WithField("drive", c.drive).Debug(
				"write protected during write track")
			c.bus().WriteProtect()
			c.state = StateIdle
			break
		}
		if c.count--; c.count == 0 {
			c.writeByte(d, 0)
			if c.sector++; c.sector >= d.geo.SectorsPerTrack {
				c.state = StateIdle
				c.bus().FinishRead()
				break
			}
			c.seek(d, c.sector+d.geo.FirstSector(), c.track, c.side)
			c.count = FormatDelay
		}
	}
}

// readByte reads the next byte from the image. Areas beyond the end of the
// image read as 0xff.
func (c *Controller) readByte(d *Drive) byte {
	if _, err := io.ReadFull(d.image, c.buf); err != nil {
		log.WithField("drive", d.index).Tracef("read failed: %v", err)
		return 0xff
	}
	return c.buf[0]
}

//
func (c *Controller) writeByte(d *Drive, b byte) {
	c.buf[0] = b
	if _, err := d.image.Write(c.buf); err != nil {
		log.WithField("drive", d.index).Errorf("write failed: %v", err)
	}
}
