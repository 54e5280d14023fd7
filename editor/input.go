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
package editor

import "github.com/litetext/lite/types"

// ProcessEvent applies one input event and reports whether the editor
// should keep running. The bindings are CUA-style: Ctrl-S save, Ctrl-Q
// quit, Ctrl-Z/Y undo/redo, Ctrl-C/X/V clipboard, shifted arrows
// extend the selection. Alt-E opens the script prompt.
func (e *Editor) ProcessEvent(event *types.Event) bool {
	if event == nil {
		return !e.shouldExit
	}
	switch event.Type {
	case types.EventResize:
		// The frontend re-reads the terminal size before drawing;
		// nothing to do here.
	case types.EventKey:
		e.processKey(event)
	}
	return !e.shouldExit
}

func (e *Editor) processKey(event *types.Event) {
	b := e.Buffer()

	if event.Alt {
		switch event.Ch {
		case 'e', 'E':
			e.EvaluateExpression()
		case '!':
			e.RunShellCommand()
		case 'n', 'N':
			e.NextBuffer()
		case 'p', 'P':
			e.PreviousBuffer()
		default:
			if event.Ch >= '0' && event.Ch <= '9' {
				if !e.SetBuffer(int(event.Ch - '0')) {
					e.SetStatus("no such buffer")
				}
			}
		}
		return
	}

	switch event.Key {
	case types.KeyCtrlS:
		e.Save()
	case types.KeyCtrlQ:
		e.Quit()
	case types.KeyCtrlO:
		e.Open()
	case types.KeyCtrlN:
		e.NewBuffer()
	case types.KeyCtrlW:
		e.CloseCurrentBuffer()
	case types.KeyCtrlZ:
		b.Undo()
	case types.KeyCtrlY:
		b.Redo()
	case types.KeyCtrlC:
		e.Copy()
	case types.KeyCtrlX:
		e.Cut()
	case types.KeyCtrlV:
		e.Paste()
	case types.KeyCtrlA:
		e.SelectAll()
	case types.KeyCtrlF:
		e.Find()
	case types.KeyCtrlG:
		e.FindNext()

	case types.KeyArrowUp:
		b.MoveCursor(types.MoveUp, event.Shift)
	case types.KeyArrowDown:
		b.MoveCursor(types.MoveDown, event.Shift)
	case types.KeyArrowLeft:
		b.MoveCursor(types.MoveLeft, event.Shift)
	case types.KeyArrowRight:
		b.MoveCursor(types.MoveRight, event.Shift)
	case types.KeyHome:
		b.SetCursorPosition(b.CursorPos().Row, 0)
	case types.KeyEnd:
		row := b.CursorPos().Row
		b.SetCursorPosition(row, len(b.Line(row)))
	case types.KeyPgup:
		for i := 0; i < max(1, e.size.Rows); i++ {
			b.MoveCursor(types.MoveUp, event.Shift)
		}
	case types.KeyPgdn:
		for i := 0; i < max(1, e.size.Rows); i++ {
			b.MoveCursor(types.MoveDown, event.Shift)
		}

	case types.KeyEnter:
		b.InsertNewline()
	case types.KeyTab:
		b.InsertChar('\t')
	case types.KeySpace:
		b.InsertChar(' ')
	case types.KeyBackspace:
		b.DeleteCharBackward()
	case types.KeyDelete:
		b.DeleteCharForward()
	case types.KeyEsc:
		b.Unselect()
		e.SetStatus("")

	case types.KeyNone:
		if event.Ch != 0 && event.Ch < 128 {
			b.InsertChar(byte(event.Ch))
		}
	}
}
