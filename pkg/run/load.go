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
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/xelalexv/sdfdrive/pkg/repo"
)

//
func NewLoad() *Load {

	l := &Load{}
	l.Runner = *NewRunner(
		"load -d|--drive {drive} (-i|--input {file} | -r|--ref {reference}) [-c|--compressor {compressor}]",
		"load disc image into drive",
		`
Use the load command to load a disc image into a drive. The image is either
uploaded from a local file, or referenced. References can point into the
daemon's repository (repo://...) or to an HTTP location.

Uploaded and compressed images are held in memory by the daemon and are
write protected. Uncompressed images from the repository can be written to.`,
		"", runnerHelpEpilogue, l.Run)

	l.AddBaseSettings()
	l.AddSetting(&l.Drive, "drive", "d", "", 0, "drive number", false)
	l.AddSetting(&l.Input, "input", "i", "", nil, "image file to upload", false)
	l.AddSetting(&l.Ref, "ref", "r", "", nil, "image reference", false)
	l.AddSetting(&l.Compressor, "compressor", "c", "", nil,
		"compressor of the image, if it cannot be told from the name: gzip, zip, 7z",
		false)

	return l
}

//
type Load struct {
	//
	Runner
	//
	Drive      int
	Input      string
	Ref        string
	Compressor string
}

//
func (l *Load) Run() error {

	if err := l.ParseSettings(); err != nil {
		return err
	}

	if err := validateDrive(l.Drive); err != nil {
		return err
	}

	if (l.Input == "") == (l.Ref == "") {
		return fmt.Errorf("either input file or reference is required")
	}

	q := url.Values{}
	if l.Compressor != "" {
		q.Set("compressor", l.Compressor)
	}

	if l.Ref != "" {
		if !repo.IsRef(l.Ref) {
			return fmt.Errorf("invalid reference: %s", l.Ref)
		}
		q.Set("ref", l.Ref)
		return l.apiPrint("PUT",
			fmt.Sprintf("/drive/%d?%s", l.Drive, q.Encode()), nil)
	}

	f, err := os.Open(l.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	q.Set("name", filepath.Base(l.Input))
	return l.apiPrint("PUT", fmt.Sprintf("/drive/%d?%s", l.Drive, q.Encode()),
		bufio.NewReader(f))
}

//
func NewUnload() *Unload {
	u := &Unload{}
	u.Runner = *NewRunner(
		"unload -d|--drive {drive}",
		"unload disc image from drive",
		"\nUse the unload command to remove the disc from a drive.",
		"", runnerHelpEpilogue, u.Run)
	u.AddBaseSettings()
	u.AddSetting(&u.Drive, "drive", "d", "", 0, "drive number", false)
	return u
}

//
type Unload struct {
	//
	Runner
	//
	Drive int
}

//
func (u *Unload) Run() error {
	if err := u.ParseSettings(); err != nil {
		return err
	}
	if err := validateDrive(u.Drive); err != nil {
		return err
	}
	return u.apiPrint("DELETE", fmt.Sprintf("/drive/%d", u.Drive), nil)
}

//
func NewProtect() *Protect {
	p := &Protect{}
	p.Runner = *NewRunner(
		"protect -d|--drive {drive} [--off]",
		"set write protection of drive",
		"\nUse the protect command to switch write protection of a drive on or off.",
		"", runnerHelpEpilogue, p.Run)
	p.AddBaseSettings()
	p.AddSetting(&p.Drive, "drive", "d", "", 0, "drive number", false)
	p.AddSetting(&p.Off, "off", "", "", false,
		"switch write protection off", false)
	return p
}

//
type Protect struct {
	//
	Runner
	//
	Drive int
	Off   bool
}

//
func (p *Protect) Run() error {
	if err := p.ParseSettings(); err != nil {
		return err
	}
	if err := validateDrive(p.Drive); err != nil {
		return err
	}
	return p.apiPrint("PUT",
		fmt.Sprintf("/drive/%d/protect?on=%t", p.Drive, !p.Off), nil)
}
