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
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

// Ext returns the extension of file name without the dot.
func Ext(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

// Load mounts the disc image file at path in drive. The file is opened for
// writing if possible, otherwise read-only with the drive write-protected.
// If the file cannot be opened or its geometry is not recognized, an error
// is returned and the drive is left as it was. An empty drive stays empty,
// and a disc already in the drive stays mounted.
func (r *Registry) Load(drive int, path string) error {

	if _, err := r.Drive(drive); err != nil {
		return err
	}

	protect := false
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if f, err = os.Open(path); err != nil {
			log.WithField("drive", drive).Errorf(
				"unable to open file '%s' for reading: %v", path, err)
			return fmt.Errorf("unable to open file '%s' for reading: %v",
				path, err)
		}
		protect = true
	}

	geo, err := geometry.Detect(path, Ext(path), f)
	if err != nil {
		f.Close()
		log.WithField("drive", drive).Errorf(
			"unable to determine geometry for %s", path)
		return fmt.Errorf("drive %d: %s: %w", drive, path, err)
	}

	return r.mount(drive, path, f, geo, protect)
}

// Create creates a new, blank disc image of type t at path, and mounts it in
// drive. An existing file at path is overwritten.
func (r *Registry) Create(drive int, path string, t geometry.DiscType) error {

	if _, err := r.Drive(drive); err != nil {
		return err
	}

	geo, err := geometry.ByType(t)
	if err != nil {
		return fmt.Errorf("drive %d: %w: %v", drive, ErrUnsupported, err)
	}

	if !geo.CanCreate() {
		return fmt.Errorf("drive %d: %s (%s): %w",
			drive, geo.Name, geo.Slug(), geometry.ErrNotCreatable)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		log.WithField("drive", drive).Errorf(
			"unable to open disc image %s for writing: %v", path, err)
		return fmt.Errorf("unable to open disc image %s for writing: %v",
			path, err)
	}

	if err := geometry.Create(f, geo); err != nil {
		f.Close()
		return err
	}

	return r.mount(drive, path, f, geo, false)
}

// Mount mounts an already opened image, e.g. one held in memory. The
// geometry is detected from the image contents and the extension of name.
// On failure, img is closed if it is an io.Closer, and the drive is left as
// it was, as with Load.
func (r *Registry) Mount(drive int, name string, img Image, protect bool) error {

	if _, err := r.Drive(drive); err != nil {
		return err
	}

	geo, err := geometry.Detect(name, Ext(name), img)
	if err != nil {
		if c, ok := img.(io.Closer); ok {
			c.Close()
		}
		return fmt.Errorf("drive %d: %s: %w", drive, name, err)
	}

	return r.mount(drive, name, img, geo, protect)
}

//
func (r *Registry) mount(drive int, name string, img Image,
	geo *geometry.Descriptor, protect bool) error {

	if err := r.Close(drive); err != nil {
		log.Warnf("problem closing previous disc: %v", err)
	}

	d := r.drives[drive]
	d.name = name
	d.image = img
	d.geo = geo
	d.sector = 0
	d.writeProtected = protect

	log.WithFields(log.Fields{
		"drive":     drive,
		"file":      name,
		"format":    geo.Name,
		"sides":     geo.SidesDescription(),
		"tracks":    geo.Tracks,
		"density":   geo.DensityDescription(),
		"sectors":   geo.SectorsPerTrack,
		"size":      geo.SectorSize,
		"protected": protect,
	}).Info("drive loaded")

	if r.dispatcher != nil {
		r.dispatcher.Attach(drive, &mountedDrive{index: drive, registry: r})
	}

	return nil
}
