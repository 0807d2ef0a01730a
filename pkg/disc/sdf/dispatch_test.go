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

package sdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/sdfdrive/pkg/disc/geometry"
)

//
func TestDriveTable(t *testing.T) {

	table := NewDriveTable()
	bus := &testBus{}
	r, err := NewRegistry(bus, ModePerDrive, table)
	require.NoError(t, err)

	_, ok := table.Get(0)
	assert.False(t, ok)

	img := mountDFS(t, r, 1)
	_, ok = table.Get(0)
	assert.False(t, ok)

	md, ok := table.Get(1)
	require.True(t, ok)

	data := pattern(21, 256)
	putAt(t, img, (3*10+1)*256, data)

	md.Seek(3)
	assert.True(t, md.Verify(3, geometry.DensitySingle))
	assert.False(t, md.Verify(3, geometry.DensityDouble))

	md.ReadSector(1, 3, 0, geometry.DensitySingle)
	for r.IsBusy(1) {
		md.Poll()
	}
	assert.Equal(t, data, bus.data)

	bus.reset()
	md.ReadAddress(3, 0, geometry.DensitySingle)
	md.Abort()
	assert.False(t, r.IsBusy(1))

	require.NoError(t, md.Close())
	_, ok = table.Get(1)
	assert.False(t, ok)

	d, _ := r.Drive(1)
	assert.False(t, d.IsMounted())
}

//
func TestDriveTableRange(t *testing.T) {

	table := NewDriveTable()
	table.Attach(-1, &mountedDrive{})
	table.Attach(NumDrives, &mountedDrive{})
	table.Detach(NumDrives)

	for ix := -1; ix <= NumDrives; ix++ {
		_, ok := table.Get(ix)
		assert.False(t, ok, "drive %d", ix)
	}
}

//
func TestMountedDriveWriteAndFormat(t *testing.T) {

	table := NewDriveTable()
	bus := &testBus{}
	r, err := NewRegistry(bus, ModeShared, table)
	require.NoError(t, err)

	img := mountDFS(t, r, 0)
	md, ok := table.Get(0)
	require.True(t, ok)

	data := pattern(77, 256)
	bus.out = append([]byte{}, data...)
	md.Seek(2)
	md.WriteSector(5, 2, 0, geometry.DensitySingle)
	for r.IsBusy(0) {
		md.Poll()
	}
	assert.Equal(t, data, getAt(t, img, 25*256, 256))

	md.Format(2, 0, geometry.DensitySingle)
	for r.IsBusy(0) {
		md.Poll()
	}
	assert.Equal(t, byte(0), getAt(t, img, 25*256, 1)[0])
	assert.Equal(t, 2, bus.finished)
}
