//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package main

import (
	"fmt"
	"log"
	"os"

	docopt "github.com/docopt/docopt-go"

	"github.com/litetext/lite/editor"
	"github.com/litetext/lite/screen"
)

const usage = `lite - a small scriptable text editor

Usage:
  lite [<file>...]
  lite --eval=<script> [<file>...]
  lite --repl [<file>...]
  lite -h | --help

Options:
  --eval=<script>  Run a script file and exit without opening the screen.
  --repl           Read and evaluate expressions from standard input.
  -h --help        Show this help.`

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	files, _ := opts["<file>"].([]string)
	script, _ := opts["--eval"].(string)
	repl, _ := opts["--repl"].(bool)

	// The editor manages all text manipulation.
	e := editor.New()

	// Config runs before any file opens so it can shape the editor.
	if err := e.LoadConfig(); err != nil {
		e.SetStatus("config: " + err.Error())
	}

	for _, filename := range files {
		if fileinfo, err := os.Stat(filename); err == nil && fileinfo.IsDir() {
			fmt.Fprintf(os.Stderr, "lite: %s is a directory\n", filename)
			os.Exit(1)
		}
		e.OpenFile(filename)
	}
	e.SetBuffer(0)

	if script != "" {
		// Run a script and exit.
		data, err := os.ReadFile(script)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lite:", err)
			os.Exit(1)
		}
		if _, err := e.EvaluateScript(string(data)); err != nil {
			fmt.Fprintln(os.Stderr, "lite:", err)
			os.Exit(1)
		}
		return
	}

	if repl {
		runRepl(e)
		return
	}

	// Create a screen to manage display.
	s := screen.NewScreen()
	if s == nil {
		os.Exit(1)
	}
	defer s.Close()
	e.SetFrontend(s)

	// Open a log file.
	f, err := os.OpenFile(os.Getenv("HOME")+"/.litelog", os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		log.Output(1, err.Error())
		return
	}
	log.SetOutput(f)
	defer f.Close()

	// Run the main event loop.
	for {
		s.Render(e)
		if !e.ProcessEvent(s.GetNextEvent()) {
			break
		}
	}
}
