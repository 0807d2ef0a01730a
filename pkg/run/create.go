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
	"fmt"
	"net/url"
	"path/filepath"
)

//
func NewCreate() *Create {

	c := &Create{}
	c.Runner = *NewRunner(
		"create -d|--drive {drive} -t|--type {type} -n|--name {name} [-f|--force]",
		"create a blank disc image in the daemon's repository",
		`
Use the create command to create a new, blank disc image in the daemon's
repository and load it into a drive. Run the formats command for a list of
types. Not all types can be created.`,
		"", runnerHelpEpilogue, c.Run)

	c.AddBaseSettings()
	c.AddSetting(&c.Drive, "drive", "d", "", 0, "drive number", false)
	c.AddSetting(&c.Type, "type", "t", "", nil, "disc type, e.g. dfs-80-ss", true)
	c.AddSetting(&c.Name, "name", "n", "", nil, "image file name", true)
	c.AddSetting(&c.Force, "force", "f", "", false,
		"overwrite existing image", false)

	return c
}

//
type Create struct {
	//
	Runner
	//
	Drive int
	Type  string
	Name  string
	Force bool
}

//
func (c *Create) Run() error {

	if err := c.ParseSettings(); err != nil {
		return err
	}

	if err := validateDrive(c.Drive); err != nil {
		return err
	}

	if filepath.Base(c.Name) != c.Name {
		return fmt.Errorf("image name must not contain a path: %s", c.Name)
	}

	if c.Force && !GetUserConfirmation(
		fmt.Sprintf("overwrite %s if it exists?", c.Name)) {
		return nil
	}

	q := url.Values{}
	q.Set("type", c.Type)
	q.Set("name", c.Name)
	if c.Force {
		q.Set("force", "true")
	}

	return c.apiPrint("POST",
		fmt.Sprintf("/drive/%d/create?%s", c.Drive, q.Encode()), nil)
}
