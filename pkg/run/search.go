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
	"strings"
)

//
func NewSearch() *Search {

	s := &Search{}
	s.Runner = *NewRunner(
		"search -t|--term {term} [-T|--types {types}] [-i|--items {max results}]",
		"search for disc images in the daemon's repository",
		`
Use the search command to find disc images in the daemon's repository. This
requires the daemon to run with search index enabled. Found images are listed
as repo:// references, which can be passed to the load command.`,
		`  sdfctl search -t elite -T ssd,dsd`, runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Term, "term", "t", "", nil,
		"search term; matched against image names and directories", true)
	s.AddSetting(&s.Types, "types", "T", "", nil,
		"comma separated list of image types to restrict search to", false)
	s.AddSetting(&s.Items, "items", "i", "", 100,
		"max number of search results to return", false)

	return s
}

//
type Search struct {
	//
	Runner
	//
	Term  string
	Types string
	Items int
}

//
func (s *Search) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	if s.Items < 1 {
		return fmt.Errorf("invalid number of items: %d", s.Items)
	}

	q := url.Values{}
	q.Set("term", s.Term)
	q.Set("items", fmt.Sprint(s.Items))
	for _, t := range strings.Split(s.Types, ",") {
		if t = strings.TrimSpace(t); t != "" {
			q.Add("type", t)
		}
	}

	return s.apiPrint("GET", "/search?"+q.Encode(), nil)
}
