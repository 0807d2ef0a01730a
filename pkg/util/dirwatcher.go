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

package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// FileFilter decides whether events for a file are of interest.
type FileFilter func(path string) bool

/*
	NewDirWatcher creates a recursive file system watcher for the directory
	tree rooted in dir. Directories added to the tree later on are included in
	the watch. Events for files are only passed on if filter accepts them; a
	nil filter accepts everything. The watcher does not start until Start is
	called.
*/
func NewDirWatcher(dir string, filter FileFilter) (*DirWatcher, error) {

	ret := &DirWatcher{
		filter:  filter,
		release: make(chan bool),
	}

	var err error
	if ret.watcher, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}

	if err := filepath.WalkDir(dir, ret.watchWalking); err != nil {
		log.Errorf("error walking directory '%s': %v", dir, err)
		ret.watcher.Close()
		return nil, err
	}

	return ret, nil
}

//
type DirWatcher struct {
	watcher *fsnotify.Watcher
	filter  FileFilter
	release chan bool
	running bool
}

/*
	Start starts the watcher. Each accepted change in the watched tree is
	passed to handler. After a change, a timer is set to backoff. When it
	expires without further changes in between, flush is called. Handler and
	flush are always called from the same go routine, so they don't need to be
	thread safe.
*/
func (dw *DirWatcher) Start(backoff time.Duration,
	handler func(fsnotify.Event) error, flush func() error) error {

	if dw.watcher == nil {
		return fmt.Errorf("directory watcher not initialized or stopped")
	}

	if dw.running {
		return fmt.Errorf("directory watcher already started")
	}

	dw.running = true
	go dw.loop(backoff, handler, flush)

	return nil
}

//
func (dw *DirWatcher) loop(backoff time.Duration,
	handler func(fsnotify.Event) error, flush func() error) {

	timer := time.NewTimer(backoff)
	timer.Stop()

	for {
		select {

		case evt, ok := <-dw.watcher.Events:
			if !ok {
				timer.Stop()
				log.Debug("directory watcher routine exiting")
				dw.release <- true
				return
			}

			if !dw.accept(evt) {
				continue
			}

			timer.Stop()
			if err := handler(evt); err != nil {
				log.Errorf("error in watch event handler: %v", err)
			}
			timer.Reset(backoff)

		case err, ok := <-dw.watcher.Errors:
			if ok {
				log.Errorf("directory watcher error: %v", err)
			}

		case <-timer.C:
			if err := flush(); err != nil {
				log.Errorf("error flushing: %v", err)
			}
		}
	}
}

/*
	Stop stops the watcher and waits until it has stopped. A stopped watcher
	cannot be started again.
*/
func (dw *DirWatcher) Stop() {

	if dw.watcher == nil {
		return
	}

	log.Info("closing directory watcher")
	running := dw.running
	if err := dw.watcher.Close(); err != nil {
		log.Errorf("could not close file watcher: %v", err)
	}
	if running {
		<-dw.release
	}
	dw.watcher = nil
}

// accept adds newly created directories to the watch, and decides whether
// the event should be passed on
func (dw *DirWatcher) accept(evt fsnotify.Event) bool {

	logger := log.WithFields(log.Fields{"path": evt.Name, "op": evt.Op})

	if evt.Op&fsnotify.Create != 0 {
		if info, err := os.Lstat(evt.Name); err == nil && info.IsDir() {
			if err := dw.watch(evt.Name); err != nil {
				logger.Errorf("cannot watch new directory: %v", err)
			}
			return false
		}
	}

	if dw.filter != nil && !dw.filter(evt.Name) {
		logger.Trace("ignoring event")
		return false
	}

	logger.Debug("handling event")
	return true
}

//
func (dw *DirWatcher) watchWalking(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return err
	}
	if d.IsDir() {
		return dw.watch(path)
	}
	return nil
}

//
func (dw *DirWatcher) watch(path string) error {
	if err := dw.watcher.Add(path); err != nil {
		log.Errorf("error adding watch for directory '%s': %v", path, err)
		return err
	}
	log.WithField("path", path).Debug("starting directory watch")
	return nil
}
