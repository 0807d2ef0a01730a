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
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xelalexv/sdfdrive/pkg/disc/sdf"
)

const runnerHelpEpilogue = `
- Settings can also be provided through environment variables. The name of
  the variable is given in brackets after a setting's description, where
  applicable. Command line arguments take precedence.

- Drives are numbered from 0.
`

//
type setting struct {
	name     string
	env      string
	required bool
}

//
type Runner struct {
	//
	cobra.Command
	//
	Address  string
	LogLevel string
	//
	exec     func() error
	config   *viper.Viper
	settings []*setting
}

//
func NewRunner(use, short, long, example, epilogue string,
	exec func() error) *Runner {

	r := &Runner{
		exec:   exec,
		config: viper.New(),
	}

	r.Command = cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Example:       example,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec()
		},
	}

	if epilogue != "" {
		r.Command.SetHelpTemplate(fmt.Sprintf(
			"%s\nNotes:\n%s\n", r.Command.HelpTemplate(), epilogue))
	}

	return r
}

/*
	AddSetting adds a setting to the runner. ref needs to be a pointer to a
	string, int, or bool field, which receives the value after ParseSettings
	has been called. If env is not empty, the setting can also be provided
	through the environment variable named by it.
*/
func (r *Runner) AddSetting(ref interface{}, name, short, env string,
	def interface{}, usage string, required bool) {

	if env != "" {
		usage = fmt.Sprintf("%s [%s]", usage, env)
	}

	flags := r.Command.Flags()

	switch v := ref.(type) {

	case *string:
		d := ""
		if def != nil {
			d = def.(string)
		}
		flags.StringVarP(v, name, short, d, usage)

	case *int:
		d := 0
		if def != nil {
			d = def.(int)
		}
		flags.IntVarP(v, name, short, d, usage)

	case *bool:
		d := false
		if def != nil {
			d = def.(bool)
		}
		flags.BoolVarP(v, name, short, d, usage)

	default:
		panic(fmt.Sprintf("unsupported setting type for '%s': %T", name, ref))
	}

	if err := r.config.BindPFlag(name, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("cannot bind setting '%s': %v", name, err))
	}
	if env != "" {
		if err := r.config.BindEnv(name, env); err != nil {
			panic(fmt.Sprintf("cannot bind environment for '%s': %v", name, err))
		}
	}

	r.settings = append(r.settings, &setting{
		name: name, env: env, required: required})
}

// AddBaseSettings adds the settings every runner has.
func (r *Runner) AddBaseSettings() {
	r.AddSetting(&r.Address, "address", "a", "SDFDRIVE_ADDRESS",
		"localhost:8888", "listen address and port of daemon's API server",
		false)
	r.AddSetting(&r.LogLevel, "log-level", "", "LOG_LEVEL", "info",
		"log level, one of 'trace', 'debug', 'info', 'warn', 'error'", false)
}

/*
	ParseSettings fills in the values of settings not given on the command
	line from the environment, checks that all required settings are present,
	and sets up logging.
*/
func (r *Runner) ParseSettings() error {

	for _, s := range r.settings {

		f := r.lookup(s.name)
		if f.Changed {
			continue
		}

		if s.env != "" {
			if _, ok := os.LookupEnv(s.env); ok {
				if err := f.Value.Set(r.config.GetString(s.name)); err != nil {
					return fmt.Errorf("invalid value for %s: %v", s.env, err)
				}
				continue
			}
		}

		if s.required {
			return fmt.Errorf("required setting '%s' not provided", s.name)
		}
	}

	if r.LogLevel != "" {
		level, err := log.ParseLevel(r.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	return nil
}

// IsSet determines whether setting name was provided on the command line or
// through the environment.
func (r *Runner) IsSet(name string) bool {
	if f := r.lookup(name); f != nil && f.Changed {
		return true
	}
	return r.isEnvSet(name)
}

//
func (r *Runner) lookup(name string) *pflag.Flag {
	return r.Command.Flags().Lookup(name)
}

//
func (r *Runner) isEnvSet(name string) bool {
	for _, s := range r.settings {
		if s.name == name && s.env != "" {
			_, ok := os.LookupEnv(s.env)
			return ok
		}
	}
	return false
}

// apiCall sends a request to the daemon's API server. The caller needs to
// close the returned reader.
func (r *Runner) apiCall(method, path string, json bool, body io.Reader) (
	io.ReadCloser, error) {

	req, err := http.NewRequest(method,
		fmt.Sprintf("http://%s%s", r.Address, path), body)
	if err != nil {
		return nil, err
	}

	if json {
		req.Header.Set("Accept", "application/json")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%s (%d)",
			strings.TrimSpace(string(msg)), resp.StatusCode)
	}

	return resp.Body, nil
}

// apiPrint runs an API call and copies the response to stdout
func (r *Runner) apiPrint(method, path string, body io.Reader) error {

	resp, err := r.apiCall(method, path, false, body)
	if err != nil {
		return err
	}
	defer resp.Close()

	_, err = io.Copy(os.Stdout, resp)
	return err
}

//
func validateDrive(d int) error {
	if d < 0 || d >= sdf.NumDrives {
		return fmt.Errorf("invalid drive number: %d", d)
	}
	return nil
}

// GetUserConfirmation asks the user for a yes or no answer on stdin.
func GetUserConfirmation(prompt string) bool {

	fmt.Printf("%s [y/N]: ", prompt)

	in := bufio.NewReader(os.Stdin)
	answer, err := in.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if yes, err := strconv.ParseBool(answer); err == nil {
		return yes
	}
	return answer == "y" || answer == "yes"
}
