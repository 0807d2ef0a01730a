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

package daemon

// outcome of a command as signalled by the controller
type outcome int

const (
	pending outcome = iota
	finished
	notFound
	writeProtected
)

//
func (o outcome) String() string {
	switch o {
	case pending:
		return "pending"
	case finished:
		return "finished"
	case notFound:
		return "not found"
	case writeProtected:
		return "write protected"
	}
	return "unknown"
}

// recordingBus collects the bytes the controller delivers, and feeds it the
// bytes to write.
type recordingBus struct {
	in     []byte
	out    []byte
	result outcome
}

//
func (b *recordingBus) reset(out []byte) {
	b.in = b.in[:0]
	b.out = out
	b.result = pending
}

//
func (b *recordingBus) Data(v byte) {
	b.in = append(b.in, v)
}

//
func (b *recordingBus) GetData(last bool) (byte, bool) {
	if len(b.out) == 0 {
		return 0, false
	}
	ret := b.out[0]
	b.out = b.out[1:]
	return ret, true
}

//
func (b *recordingBus) FinishRead() {
	b.result = finished
}

//
func (b *recordingBus) NotFound() {
	b.result = notFound
}

//
func (b *recordingBus) WriteProtect() {
	b.result = writeProtected
}

// received returns a copy of the bytes delivered during the last command
func (b *recordingBus) received() []byte {
	ret := make([]byte, len(b.in))
	copy(ret, b.in)
	return ret
}
