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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/litetext/lite/editor"
	"github.com/litetext/lite/lang"
)

// runRepl reads expressions from standard input and prints their
// values. On a terminal it uses line editing with persistent history;
// piped input is read plainly so scripts can drive it.
func runRepl(e *editor.Editor) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		runPipedRepl(e)
		return
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".lite_history")
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	for {
		source, err := line.Prompt("lite> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "lite:", err)
			break
		}
		if strings.TrimSpace(source) == "" {
			continue
		}
		line.AppendHistory(source)
		evalAndPrint(e, source)
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

// runPipedRepl evaluates everything on standard input as one script,
// so multi-line constructs work when lite is fed from a pipe.
func runPipedRepl(e *editor.Editor) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lite:", err)
		return
	}
	if strings.TrimSpace(string(data)) == "" {
		return
	}
	evalAndPrint(e, string(data))
}

func evalAndPrint(e *editor.Editor, source string) {
	result, err := e.EvaluateScript(source)
	if err != nil {
		if _, ok := err.(*lang.ParseError); ok {
			fmt.Println(err)
		} else {
			fmt.Println("error:", err)
		}
		return
	}
	fmt.Println(result.String())
}
