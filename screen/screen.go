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

// Package screen is the termbox frontend: it draws a types.View and
// turns termbox input into types.Events.
package screen

import (
	"fmt"
	"log"

	"github.com/nsf/termbox-go"

	"github.com/litetext/lite/types"
)

// The Screen draws the state of a View.
type Screen struct {
	size types.Size // screen size
}

func NewScreen() *Screen {
	// Open the terminal.
	err := termbox.Init()
	if err != nil {
		log.Output(1, err.Error())
		return nil
	}
	termbox.SetInputMode(termbox.InputAlt)
	return &Screen{}
}

func (s *Screen) Close() {
	termbox.Close()
}

// Render draws the visible slice of the buffer with an info bar and a
// message bar beneath it. The bottom two rows always belong to the
// bars.
func (s *Screen) Render(v types.View) {
	termbox.Clear(termbox.ColorWhite, termbox.ColorBlack)
	var screenSize types.Size
	screenSize.Cols, screenSize.Rows = termbox.Size()
	s.size = screenSize

	editSize := screenSize
	editSize.Rows -= 2
	v.SetSize(editSize)

	v.Scroll()
	s.renderBuffer(v, editSize)
	s.renderInfoBar(v)
	s.renderMessageBar(v)
	offset := v.Offset()
	cursor := v.CursorPos()
	termbox.SetCursor(cursor.Col-offset.Cols, cursor.Row-offset.Rows)
	termbox.Flush()
}

func (s *Screen) renderBuffer(v types.View, size types.Size) {
	offset := v.Offset()
	selStart, selEnd, selected := v.SelectionRange()
	for y := 0; y < size.Rows; y++ {
		row := y + offset.Rows
		if row >= v.LineCount() {
			break
		}
		line := v.Line(row)
		for x := 0; x < size.Cols; x++ {
			col := x + offset.Cols
			if col >= len(line) {
				break
			}
			fg, bg := termbox.ColorWhite, termbox.ColorBlack
			if selected && inSelection(types.Point{Row: row, Col: col}, selStart, selEnd) {
				fg, bg = termbox.ColorBlack, termbox.ColorWhite
			}
			termbox.SetCell(x, y, rune(line[col]), fg, bg)
		}
	}
}

func inSelection(p, start, end types.Point) bool {
	return !p.Less(start) && p.Less(end)
}

func (s *Screen) renderInfoBar(v types.View) {
	edited := ""
	if v.Edited() {
		edited = " [+]"
	}
	cursor := v.CursorPos()
	finalText := fmt.Sprintf(" %d,%d/%d  buf %d/%d ",
		cursor.Row+1, cursor.Col+1, v.LineCount(), v.BufferIndex()+1, v.BufferCount())
	text := " lite - " + v.FileName() + edited + " "
	for len(text) < s.size.Cols-len(finalText)-1 {
		text = text + " "
	}
	text += finalText
	for x, ch := range text {
		if x >= s.size.Cols {
			break
		}
		termbox.SetCell(x, s.size.Rows-2, ch, termbox.ColorBlack, termbox.ColorWhite)
	}
}

func (s *Screen) renderMessageBar(v types.View) {
	line := v.Message()
	if len(line) > s.size.Cols {
		line = line[0:s.size.Cols]
	}
	for x, ch := range line {
		termbox.SetCell(x, s.size.Rows-1, ch, termbox.ColorWhite, termbox.ColorBlack)
	}
}

// SetStatus draws a message on the bottom row immediately, without a
// full render. Prompt and Ask use it between keystrokes.
func (s *Screen) SetStatus(message string) {
	cols, rows := termbox.Size()
	for x := 0; x < cols; x++ {
		termbox.SetCell(x, rows-1, ' ', termbox.ColorWhite, termbox.ColorBlack)
	}
	for x, ch := range message {
		if x >= cols {
			break
		}
		termbox.SetCell(x, rows-1, ch, termbox.ColorWhite, termbox.ColorBlack)
	}
	termbox.Flush()
}

// Prompt reads a line of input on the message bar. It returns the
// entered text and true, or false if the user pressed Escape.
func (s *Screen) Prompt(label, initial string) (string, bool) {
	input := []byte(initial)
	for {
		s.SetStatus(label + string(input))
		_, rows := termbox.Size()
		termbox.SetCursor(len(label)+len(input), rows-1)
		termbox.Flush()
		event := termbox.PollEvent()
		if event.Type != termbox.EventKey {
			continue
		}
		switch event.Key {
		case termbox.KeyEnter:
			return string(input), true
		case termbox.KeyEsc:
			return "", false
		case termbox.KeyBackspace, termbox.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case termbox.KeySpace:
			input = append(input, ' ')
		default:
			if event.Ch != 0 && event.Ch < 128 {
				input = append(input, byte(event.Ch))
			}
		}
	}
}

// Ask poses a yes/no question on the message bar. The second result is
// false if the user pressed Escape instead of answering.
func (s *Screen) Ask(question string) (bool, bool) {
	s.SetStatus(question)
	for {
		event := termbox.PollEvent()
		if event.Type != termbox.EventKey {
			continue
		}
		switch event.Ch {
		case 'y', 'Y':
			return true, true
		case 'n', 'N':
			return false, true
		}
		if event.Key == termbox.KeyEsc {
			return false, false
		}
	}
}

func (s *Screen) GetNextEvent() *types.Event {
	event := termbox.PollEvent()
	if event.Type == termbox.EventResize {
		termbox.Flush()
		return &types.Event{Type: types.EventResize}
	}
	if event.Type != termbox.EventKey {
		return &types.Event{Type: types.EventNone}
	}
	// termbox's basic input mode does not distinguish shifted arrows,
	// so Shift stays false here; selections are made with Ctrl-A or
	// the select builtin.
	return &types.Event{
		Type: types.EventKey,
		Key:  key(event.Key),
		Ch:   event.Ch,
		Alt:  event.Mod&termbox.ModAlt != 0,
	}
}

func key(k termbox.Key) types.Key {
	switch k {
	case termbox.KeyArrowDown:
		return types.KeyArrowDown
	case termbox.KeyArrowLeft:
		return types.KeyArrowLeft
	case termbox.KeyArrowRight:
		return types.KeyArrowRight
	case termbox.KeyArrowUp:
		return types.KeyArrowUp
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return types.KeyBackspace
	case termbox.KeyDelete:
		return types.KeyDelete
	case termbox.KeyCtrlA:
		return types.KeyCtrlA
	case termbox.KeyCtrlC:
		return types.KeyCtrlC
	case termbox.KeyCtrlD:
		return types.KeyCtrlD
	case termbox.KeyCtrlE:
		return types.KeyCtrlE
	case termbox.KeyCtrlF:
		return types.KeyCtrlF
	case termbox.KeyCtrlG:
		return types.KeyCtrlG
	case termbox.KeyCtrlN:
		return types.KeyCtrlN
	case termbox.KeyCtrlO:
		return types.KeyCtrlO
	case termbox.KeyCtrlP:
		return types.KeyCtrlP
	case termbox.KeyCtrlQ:
		return types.KeyCtrlQ
	case termbox.KeyCtrlR:
		return types.KeyCtrlR
	case termbox.KeyCtrlS:
		return types.KeyCtrlS
	case termbox.KeyCtrlV:
		return types.KeyCtrlV
	case termbox.KeyCtrlW:
		return types.KeyCtrlW
	case termbox.KeyCtrlX:
		return types.KeyCtrlX
	case termbox.KeyCtrlY:
		return types.KeyCtrlY
	case termbox.KeyCtrlZ:
		return types.KeyCtrlZ
	case termbox.KeyEnd:
		return types.KeyEnd
	case termbox.KeyEnter:
		return types.KeyEnter
	case termbox.KeyEsc:
		return types.KeyEsc
	case termbox.KeyHome:
		return types.KeyHome
	case termbox.KeyPgdn:
		return types.KeyPgdn
	case termbox.KeyPgup:
		return types.KeyPgup
	case termbox.KeySpace:
		return types.KeySpace
	case termbox.KeyTab:
		return types.KeyTab
	default:
		return types.KeyUnsupported
	}
}
