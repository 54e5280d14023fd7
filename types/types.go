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
package types

// Move directions
const (
	MoveNowhere = 0
	MoveUp      = 1
	MoveDown    = 2
	MoveLeft    = 3
	MoveRight   = 4
)

// A Point is a position in a buffer: row first, then column, both 0-indexed.
type Point struct {
	Row int
	Col int
}

// Less reports whether p comes textually before q.
func (p Point) Less(q Point) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

type Size struct {
	Rows int
	Cols int
}

// Event types
const (
	EventKey = iota
	EventResize
	EventNone
)

type Key int

// Keys delivered by the frontend. Printable characters arrive in Ch
// with Key set to KeyNone.
const (
	KeyNone Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyPgup
	KeyPgdn
	KeyEnter
	KeyEsc
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyCtrlA
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
	KeyUnsupported
)

// An Event is one user input: a key press or a terminal resize.
type Event struct {
	Type  int
	Key   Key
	Ch    rune
	Shift bool
	Alt   bool
}

// The Editor interface is how the script runtime's builtins reach the
// rest of the system. It is the only side channel out of the language.
type Editor interface {
	InsertString(text string)
	DeleteBackward()
	DeleteForward()
	MoveCursor(direction int)
	GotoPosition(row, col int)
	StartSelection()
	ClearSelection()
	SelectedText() (string, bool)
	NewBuffer() int
	SetBuffer(index int) bool
	CurrentBufferIndex() int
	SetStatus(message string)
}

// A View is what the frontend reads when drawing: the visible state of
// the current buffer plus the status and message lines.
type View interface {
	SetSize(size Size)
	Scroll()
	Offset() Size
	CursorPos() Point
	LineCount() int
	Line(row int) string
	SelectionRange() (start, end Point, ok bool)
	FileName() string
	Edited() bool
	BufferIndex() int
	BufferCount() int
	Message() string
}

// A Frontend draws editor state and collects input. The editor core
// never talks to the terminal directly.
type Frontend interface {
	GetNextEvent() *Event
	SetStatus(message string)
	Prompt(label, initial string) (string, bool)
	Ask(question string) (bool, bool)
	Close()
}
