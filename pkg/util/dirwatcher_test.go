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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
type eventLog struct {
	mutex   sync.Mutex
	events  []string
	flushes int
}

func (l *eventLog) handle(evt fsnotify.Event) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if evt.Op&fsnotify.Create != 0 {
		l.events = append(l.events, filepath.Base(evt.Name))
	}
	return nil
}

func (l *eventLog) flush() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.flushes++
	return nil
}

func (l *eventLog) snapshot() ([]string, int) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]string{}, l.events...), l.flushes
}

//
func TestDirWatcher(t *testing.T) {

	dir := t.TempDir()
	dw, err := NewDirWatcher(dir, func(path string) bool {
		return strings.HasSuffix(path, ".ssd")
	})
	require.NoError(t, err)

	l := &eventLog{}
	require.NoError(t, dw.Start(50*time.Millisecond, l.handle, l.flush))
	assert.Error(t, dw.Start(time.Second, l.handle, l.flush))

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ssd"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.ssd"), nil, 0644))

	assert.Eventually(t, func() bool {
		events, flushes := l.snapshot()
		return len(events) == 2 && flushes > 0
	}, 5*time.Second, 20*time.Millisecond)

	events, _ := l.snapshot()
	assert.ElementsMatch(t, []string{"a.ssd", "b.ssd"}, events)

	dw.Stop()
	dw.Stop()
	assert.Error(t, dw.Start(time.Second, l.handle, l.flush))
}

//
func TestDirWatcherMissingDir(t *testing.T) {
	_, err := NewDirWatcher(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}
