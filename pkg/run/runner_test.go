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
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
type testRunner struct {
	Runner
	Name  string
	Count int
	Flag  bool
}

//
func newTestRunner() *testRunner {
	t := &testRunner{}
	t.Runner = *NewRunner("test", "test", "", "", "", func() error {
		return nil
	})
	t.AddSetting(&t.Name, "name", "n", "SDFDRIVE_TEST_NAME", "none",
		"name", false)
	t.AddSetting(&t.Count, "count", "c", "SDFDRIVE_TEST_COUNT", 3,
		"count", false)
	t.AddSetting(&t.Flag, "flag", "f", "", false, "flag", false)
	return t
}

//
func TestSettingsDefaults(t *testing.T) {
	r := newTestRunner()
	require.NoError(t, r.Command.ParseFlags([]string{}))
	require.NoError(t, r.ParseSettings())
	assert.Equal(t, "none", r.Name)
	assert.Equal(t, 3, r.Count)
	assert.False(t, r.Flag)
	assert.False(t, r.IsSet("name"))
}

//
func TestSettingsFromEnvironment(t *testing.T) {

	t.Setenv("SDFDRIVE_TEST_NAME", "fromenv")
	t.Setenv("SDFDRIVE_TEST_COUNT", "7")

	r := newTestRunner()
	require.NoError(t, r.Command.ParseFlags([]string{"-f"}))
	require.NoError(t, r.ParseSettings())
	assert.Equal(t, "fromenv", r.Name)
	assert.Equal(t, 7, r.Count)
	assert.True(t, r.Flag)
	assert.True(t, r.IsSet("name"))
	assert.True(t, r.IsSet("flag"))
}

//
func TestSettingsCommandLinePrecedence(t *testing.T) {

	t.Setenv("SDFDRIVE_TEST_NAME", "fromenv")

	r := newTestRunner()
	require.NoError(t, r.Command.ParseFlags([]string{"--name", "fromflag"}))
	require.NoError(t, r.ParseSettings())
	assert.Equal(t, "fromflag", r.Name)
}

//
func TestSettingsInvalidEnvironment(t *testing.T) {
	t.Setenv("SDFDRIVE_TEST_COUNT", "many")
	r := newTestRunner()
	require.NoError(t, r.Command.ParseFlags([]string{}))
	assert.Error(t, r.ParseSettings())
}

//
func TestRequiredSetting(t *testing.T) {

	c := NewCreate()
	require.NoError(t, c.Command.ParseFlags([]string{"-t", "dfs-40-ss"}))
	err := c.ParseSettings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	c = NewCreate()
	require.NoError(t, c.Command.ParseFlags(
		[]string{"-t", "dfs-40-ss", "-n", "x.ssd", "-d", "1"}))
	require.NoError(t, c.ParseSettings())
	assert.Equal(t, 1, c.Drive)
	assert.Equal(t, "localhost:8888", c.Address)
}

//
func TestValidateDrive(t *testing.T) {
	assert.NoError(t, validateDrive(0))
	assert.NoError(t, validateDrive(1))
	assert.Error(t, validateDrive(-1))
	assert.Error(t, validateDrive(2))
}

//
func TestAPICall(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) {
			switch req.URL.Path {
			case "/status":
				assert.Equal(t, "application/json", req.Header.Get("Accept"))
				w.Write([]byte("[]"))
			default:
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte("no disc in drive\n"))
			}
		}))
	defer srv.Close()

	r := newTestRunner()
	r.Address = strings.TrimPrefix(srv.URL, "http://")

	resp, err := r.apiCall("GET", "/status", true, nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp)
	resp.Close()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	_, err = r.apiCall("GET", "/drive/0/ls", false, nil)
	require.Error(t, err)
	assert.Equal(t, "no disc in drive (422)", err.Error())
}
