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
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/sdfdrive/pkg/disc/format"
)

const (
	RepoScheme = "repo://"
	// compressed archives may carry some overhead
	maxDownload = 4 * format.MaxImageSize
)

// IsRef returns whether s is a reference Resolve can handle.
func IsRef(s string) bool {
	return strings.HasPrefix(s, RepoScheme) ||
		strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Resolve opens the image referenced by ref. References are either of the
// form `repo://{path within repository}`, or an http(s) URL.
func Resolve(ref, repository string) (io.ReadCloser, error) {

	log.WithField("ref", ref).Debug("resolving reference")

	if strings.HasPrefix(ref, RepoScheme) {
		path, err := LocalPath(ref, repository)
		if err != nil {
			return nil, err
		}
		if src, err := NewFileSource(path); err != nil {
			return nil, err
		} else {
			return src, nil
		}
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if src, err := NewHTTPSource(ref); err != nil {
			return nil, err
		} else {
			return src, nil
		}
	}

	return nil, fmt.Errorf("unsupported reference: %s", ref)
}

// LocalPath returns the file system path for a `repo://` reference. Paths
// leaving the repository are rejected.
func LocalPath(ref, repository string) (string, error) {

	if repository == "" {
		return "", fmt.Errorf("no repository configured")
	}

	if !strings.HasPrefix(ref, RepoScheme) {
		return "", fmt.Errorf("not a repository reference: %s", ref)
	}

	rel := filepath.Clean(
		filepath.FromSlash("/" + strings.TrimPrefix(ref, RepoScheme)))
	if rel == string(filepath.Separator) {
		return "", fmt.Errorf("empty repository reference")
	}

	return filepath.Join(repository, rel), nil
}

//
func NewFileSource(file string) (*FileSource, error) {

	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", file)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	return &FileSource{file: f, reader: bufio.NewReader(f)}, nil
}

// FileSource reads an image from a local file.
type FileSource struct {
	file   *os.File
	reader io.Reader
}

//
func (fs *FileSource) Read(p []byte) (n int, err error) {
	return fs.reader.Read(p)
}

//
func (fs *FileSource) Close() error {
	return fs.file.Close()
}

//
func NewHTTPSource(url string) (*HTTPSource, error) {

	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download of %s failed: %s", url, resp.Status)
	}

	return &HTTPSource{
		url:      url,
		response: resp,
		reader:   io.LimitReader(resp.Body, maxDownload)}, nil
}

// HTTPSource reads an image from an http(s) URL.
type HTTPSource struct {
	url      string
	response *http.Response
	reader   io.Reader
}

//
func (hs *HTTPSource) Read(p []byte) (n int, err error) {
	return hs.reader.Read(p)
}

//
func (hs *HTTPSource) Close() error {
	return hs.response.Body.Close()
}
