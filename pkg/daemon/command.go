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
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
	"github.com/xelalexv/sdfdrive/pkg/disc/sdf"
)

//
type commandKind int

const (
	cmdRead commandKind = iota
	cmdWrite
	cmdAddress
	cmdFormat
)

//
func (k commandKind) String() string {
	switch k {
	case cmdRead:
		return "READ"
	case cmdWrite:
		return "WRITE"
	case cmdAddress:
		return "ADDRESS"
	case cmdFormat:
		return "FORMAT"
	}
	return "UNKNOWN"
}

// command is a single controller command run to completion
type command struct {
	kind   commandKind
	drive  int
	track  int
	side   int
	sector int
	data   []byte
}

// run seeks to the command's track, starts the command, and polls the
// controller until the bus reports an outcome or the tick budget is used
// up. Must be called with lock held.
func (c *command) run(d *Daemon) ([]byte, error) {

	md, geo, err := d.mounted(c.drive)
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{
		"drive":  c.drive,
		"track":  c.track,
		"side":   c.side,
		"sector": c.sector,
	})

	if d.registry.IsBusy(c.drive) {
		return nil, sdf.ErrBusy
	}

	d.bus.reset(c.data)
	md.Seek(c.track)

	switch c.kind {
	case cmdRead:
		md.ReadSector(c.sector, c.track, c.side, geo.Density)
	case cmdWrite:
		md.WriteSector(c.sector, c.track, c.side, geo.Density)
	case cmdAddress:
		md.ReadAddress(c.track, c.side, geo.Density)
	case cmdFormat:
		md.Format(c.track, c.side, geo.Density)
	}

	ticks := 0
	for ; d.bus.result == pending && ticks < d.tickBudget; ticks++ {
		md.Poll()
	}

	logger = logger.WithFields(log.Fields{
		"ticks": ticks, "outcome": d.bus.result})

	switch d.bus.result {

	case finished:
		logger.Debug(c.kind)
		return d.bus.received(), nil

	case notFound:
		logger.Debug(c.kind)
		return nil, fmt.Errorf("%w: drive %d, track %d, side %d, sector %d",
			ErrNotFound, c.drive, c.track, c.side, c.sector)

	case writeProtected:
		logger.Debug(c.kind)
		return nil, fmt.Errorf("%w: drive %d", ErrWriteProtected, c.drive)
	}

	logger.Warnf("%s timed out", c.kind)
	md.Abort()
	return nil, fmt.Errorf("%w: %s", ErrTimeout, c.kind)
}

// discGeometry returns the geometry of the disc in drive, for validating
// inputs before a command is run
func (d *Daemon) discGeometry(drive int) (*geometry.Descriptor, error) {
	_, geo, err := d.mounted(drive)
	return geo, err
}
