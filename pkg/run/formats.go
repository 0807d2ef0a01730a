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
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/xelalexv/sdfdrive/pkg/control"
)

//
func NewFormats() *Formats {
	f := &Formats{}
	f.Runner = *NewRunner(
		"formats [--csv]",
		"list supported disc formats",
		`
Use the formats command to list all supported disc formats. The type column
gives the name to use when creating images.`,
		"", "", f.Run)
	f.AddSetting(&f.CSV, "csv", "", "", false, "output as CSV", false)
	return f
}

//
type Formats struct {
	//
	Runner
	//
	CSV bool
}

//
func (f *Formats) Run() error {
	if err := f.ParseSettings(); err != nil {
		return err
	}
	return writeFormats(os.Stdout, f.CSV)
}

//
func writeFormats(w io.Writer, csv bool) error {
	formats := control.Formats()
	if csv {
		return gocsv.Marshal(formats, w)
	}
	control.WriteFormats(w, formats)
	return nil
}
