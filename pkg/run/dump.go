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
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

//
func NewDump() *Dump {

	d := &Dump{}
	d.Runner = *NewRunner(
		"dump [-d|--drive {drive}] [-i|--input {file}] [-t|--track {track}] [-s|--side {side}] [-S|--sector {sector}]",
		"dump sector from file or daemon",
		`
Use the dump command to output a hex dump of a sector, read either from a
local image file or through the controller of a drive in the daemon.`,
		"", runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.Input, "input", "i", "", nil, "disc image input file", false)
	d.AddSetting(&d.Drive, "drive", "d", "", 0, "drive number", false)
	d.AddSetting(&d.Track, "track", "t", "", 0, "track number", false)
	d.AddSetting(&d.Side, "side", "s", "", 0, "side (0 or 1)", false)
	d.AddSetting(&d.Sector, "sector", "S", "", 0, "sector number", false)

	return d
}

//
type Dump struct {
	//
	Runner
	//
	Drive  int
	Input  string
	Track  int
	Side   int
	Sector int
}

//
func (d *Dump) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	if d.Input != "" {
		img, geo, done, err := openImage(d.Input)
		if err != nil {
			return err
		}
		defer done()

		data, err := readSector(img, geo, d.Track, d.Side, d.Sector)
		if err != nil {
			return err
		}

		fmt.Println()
		dumper := hex.Dumper(os.Stdout)
		defer fmt.Println()
		defer dumper.Close()
		_, err = dumper.Write(data)
		return err
	}

	if err := validateDrive(d.Drive); err != nil {
		return err
	}

	resp, err := d.apiCall("GET",
		fmt.Sprintf("/drive/%d/sector?track=%d&side=%d&sector=%d&hex",
			d.Drive, d.Track, d.Side, d.Sector), false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	fmt.Println()
	if _, err := io.Copy(os.Stdout, resp); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
