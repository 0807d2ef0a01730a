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
	"encoding/json"
	"fmt"

	"github.com/xelalexv/sdfdrive/pkg/control"
	"github.com/xelalexv/sdfdrive/pkg/util"
)

//
func NewVersion() *Version {
	v := &Version{}
	v.Runner = *NewRunner(
		"version [-s|--short]", "get client & daemon version info", "", "", "",
		v.Run)
	v.AddBaseSettings()
	v.AddSetting(&v.Short, "short", "s", "", false,
		"only print versions, without banner", false)
	return v
}

//
type Version struct {
	//
	Runner
	//
	Short bool
}

//
func (v *Version) Run() error {

	if err := v.ParseSettings(); err != nil {
		return err
	}

	remote := "daemon:     not reachable\n"

	if resp, err := v.apiCall("GET", "/version", true, nil); err == nil {
		defer resp.Close()
		var ver control.Version
		if err := json.NewDecoder(resp).Decode(&ver); err != nil {
			return err
		}
		remote = ver.String()
	}

	if v.Short {
		fmt.Printf("sdfctl:     %s\n%s", util.SDFDriveVersion, remote)
		return nil
	}

	PrintVersion(remote)
	return nil
}

//
func PrintVersion(remote string) {
	fmt.Printf(`
  ____  ____  _____ ____       _
 / ___||  _ \|  ___|  _ \ _ __(_)_   _____
 \___ \| | | | |_  | | | | '__| \ \ / / _ \
  ___) | |_| |  _| | |_| | |  | |\ V /  __/
 |____/|____/|_|   |____/|_|  |_| \_/ \___|

 Acorn BBC Micro disc images on a modern host

sdfctl:     %s
`, util.SDFDriveVersion)
	if remote != "" {
		fmt.Printf("%s", remote)
	}
	fmt.Println()
}
