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
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/disc/format"
	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

// LoadFile mounts the image file at path in drive. Relative paths are
// resolved against the repository. Compressed images are unpacked into
// memory and mounted write-protected, all others are mounted from file.
func (d *Daemon) LoadFile(drive int, path string) error {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	path = d.resolve(path)
	_, _, comp := format.SplitNameTypeCompressor(path)

	if comp == "" {
		return d.registry.Load(drive, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	return d.loadReader(drive, filepath.Base(path), f, comp)
}

// LoadReader mounts the image read from in, e.g. an upload. name is used
// for determining image type and compressor, unless compressor is given
// explicitly. These images are held in memory and are always mounted
// write-protected. in is closed when done.
func (d *Daemon) LoadReader(drive int, name string, in io.ReadCloser,
	compressor string) error {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if compressor == "" {
		_, _, compressor = format.SplitNameTypeCompressor(name)
	}

	return d.loadReader(drive, name, in, compressor)
}

// must be called with lock held
func (d *Daemon) loadReader(drive int, name string, in io.ReadCloser,
	compressor string) error {

	defer in.Close()

	if _, err := d.registry.Drive(drive); err != nil {
		return err
	}

	rd, err := format.NewImageReader(in, compressor)
	if err != nil {
		return fmt.Errorf("cannot read image %s: %v", name, err)
	}
	defer rd.Close()

	img, err := rd.InMemory()
	if err != nil {
		return fmt.Errorf("cannot read image %s: %v", name, err)
	}

	return d.registry.Mount(drive, imageName(name, rd), img, true)
}

// imageName determines the name under which an image read through rd gets
// mounted; its extension selects the side layout during detection
func imageName(name string, rd *format.ImageReader) string {

	if rd.Type() != "" {
		return fmt.Sprintf("%s.%s", rd.Name(), rd.Type())
	}

	if n, typ, _ := format.SplitNameTypeCompressor(name); typ != "" {
		return fmt.Sprintf("%s.%s", n, typ)
	}

	return name
}

// CreateImage creates a new blank image of type t in the repository, and
// mounts it in drive. An existing file is only replaced if force is set.
// Returns the path of the created image.
func (d *Daemon) CreateImage(drive int, name string, t geometry.DiscType,
	force bool) (string, error) {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid image name: '%s'", name)
	}

	path := d.resolve(name)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("image %s already exists", path)
	}

	if err := d.registry.Create(drive, path, t); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"drive": drive, "path": path}).Info("created new disc image")
	return path, nil
}

// Unload unmounts the disc in drive.
func (d *Daemon) Unload(drive int) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.registry.Close(drive)
}

//
func (d *Daemon) SetWriteProtected(drive int, p bool) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.registry.SetWriteProtected(drive, p)
}

//
func (d *Daemon) resolve(path string) string {
	if d.repository == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.repository, path)
}
