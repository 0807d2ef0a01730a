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

package geometry

import (
	log "github.com/sirupsen/logrus"
)

// Offset translates a track, side, and sector number as seen at the
// controller interface into a byte offset within an image of geometry geo.
// Sectors larger than 256 bytes are numbered from 1. Returns
// ErrInvalidAddress if the address does not exist on the disc.
//
// Note that the sector range check accepts SectorsPerTrack itself, i.e. one
// sector past the last one of a track, which addresses the first sector of
// the following track.
func Offset(geo *Descriptor, track, side, sector int) (int64, error) {

	logger := log.WithFields(log.Fields{
		"track": track, "side": side, "sector": sector})

	if track < 0 || track >= geo.Tracks {
		logger.Debugf("invalid track: not between 0 and %d", geo.Tracks)
		return -1, ErrInvalidAddress
	}

	if geo.SectorSize > 256 {
		sector--
	}

	if sector < 0 || sector > geo.SectorsPerTrack {
		logger.Debugf("invalid sector: not between 0 and %d",
			geo.SectorsPerTrack)
		return -1, ErrInvalidAddress
	}

	trackBytes := int64(geo.TrackBytes())
	var offset int64

	switch side {

	case 0:
		offset = int64(track) * trackBytes
		if geo.Sides == SidesInterleaved {
			offset *= 2
		}

	case 1:
		switch geo.Sides {
		case SidesSequential:
			offset = int64(track+geo.Tracks) * trackBytes
		case SidesInterleaved:
			offset = int64(track*2+1) * trackBytes
		default:
			logger.Debug("attempt to access second side of single-sided disc")
			return -1, ErrInvalidAddress
		}

	default:
		logger.Debug("invalid side")
		return -1, ErrInvalidAddress
	}

	return offset + int64(sector*geo.SectorSize), nil
}
