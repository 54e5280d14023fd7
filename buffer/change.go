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
package buffer

import "github.com/litetext/lite/types"

type ChangeKind int

const (
	ChangeInsert ChangeKind = iota
	ChangeDelete
	ChangeMove
	ChangeSelectStart
	ChangeUnselect
)

// A Change is one reversible edit record. apply is the exact forward
// action (used by redo) and undo its exact inverse; given the buffer
// state just after a change was applied, undo reproduces the state
// just before it. Changes are immutable once pushed and hold only
// positions and text, never buffer references.
type Change struct {
	Kind ChangeKind

	// Insert/Delete: From is where the text was inserted or removed
	// and Text the exact text, embedded newlines included.
	// Move: From and To are the cursor positions around the move.
	From types.Point
	To   types.Point
	Text string

	// SelectStart: NewAnchor is the anchor that was set; OldAnchor the
	// previous one, nil if none. Unselect: OldAnchor is the cleared
	// anchor.
	OldAnchor *types.Point
	NewAnchor types.Point
}

func (c *Change) apply(b *Buffer) {
	switch c.Kind {
	case ChangeInsert:
		b.setCursorInternal(c.From.Row, c.From.Col)
		b.insertTextInternal(c.Text)
	case ChangeDelete:
		b.deleteTextInternal(c.From.Row, c.From.Col, len(c.Text))
	case ChangeMove:
		b.setCursorInternal(c.To.Row, c.To.Col)
	case ChangeSelectStart:
		b.setSelectionInternal(c.NewAnchor)
	case ChangeUnselect:
		b.clearSelectionInternal()
	}
}

func (c *Change) undo(b *Buffer) {
	switch c.Kind {
	case ChangeInsert:
		b.deleteTextInternal(c.From.Row, c.From.Col, len(c.Text))
	case ChangeDelete:
		b.setCursorInternal(c.From.Row, c.From.Col)
		b.insertTextInternal(c.Text)
	case ChangeMove:
		b.setCursorInternal(c.From.Row, c.From.Col)
	case ChangeSelectStart:
		if c.OldAnchor != nil {
			b.setSelectionInternal(*c.OldAnchor)
		} else {
			b.clearSelectionInternal()
		}
	case ChangeUnselect:
		if c.OldAnchor != nil {
			b.setSelectionInternal(*c.OldAnchor)
		}
	}
}
