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

package repo

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/disc/format"
)

//
type SearchResult struct {
	Hits     []string `json:"hits"`
	Total    uint64   `json:"total"`
	Complete bool     `json:"complete"`
}

// Refs returns the hits as repository references, suitable for loading.
func (r *SearchResult) Refs() []string {
	ret := make([]string, len(r.Hits))
	for ix, h := range r.Hits {
		ret[ix] = RepoScheme + strings.ReplaceAll(h, "\\", "/")
	}
	return ret
}

/*
	Search looks up term in the index and returns at most max hits, as paths
	relative to the repository. Term uses the query string syntax. If types is
	not empty, only images of the listed types, e.g. `ssd`, are included.
*/
func (i *Index) Search(term string, types []string, max int) (
	*SearchResult, error) {

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("no search term")
	}

	if max < 1 {
		return nil, fmt.Errorf("invalid number of search items: %d", max)
	}

	q, err := buildQuery(term, types)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"term": term, "types": types}).Debug("searching")

	// one more than requested, to tell whether result is complete
	req := bleve.NewSearchRequestOptions(q, max+1, 0, false)
	res, err := i.index.Search(req)
	if err != nil {
		return nil, err
	}

	ret := &SearchResult{
		Hits:     make([]string, 0, len(res.Hits)),
		Total:    res.Total,
		Complete: len(res.Hits) <= max,
	}

	for _, h := range res.Hits {
		if len(ret.Hits) == max {
			break
		}
		ret.Hits = append(ret.Hits, h.ID)
	}

	return ret, nil
}

//
func buildQuery(term string, types []string) (query.Query, error) {

	text := bleve.NewQueryStringQuery(term)
	if len(types) == 0 {
		return text, nil
	}

	var alt []query.Query
	for _, t := range types {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "."))
		if !format.IsImageType(t) {
			return nil, fmt.Errorf("not an image type: %s", t)
		}
		tq := bleve.NewTermQuery(t)
		tq.SetField("type")
		alt = append(alt, tq)
	}

	return bleve.NewConjunctionQuery(text, bleve.NewDisjunctionQuery(alt...)),
		nil
}
