package history

import (
	"reflect"
	"testing"

	"github.com/weft-tools/weft"
)

///
/// helpers
///

func testEqual(t *testing.T, actual any, expected any, msg string) {
	t.Helper()
	failIfNot(t, reflect.DeepEqual(actual, expected), msg)
}

func failIfNot(t *testing.T, cond bool, msg string) {
	t.Helper()
	if !cond {
		t.Fatal(msg)
	}
}

func failIfErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func newDoc(text string) *weft.Document {
	return weft.NewDocument(&weft.Element{Children: []weft.Node{&weft.Text{Text: text}}})
}

func appendText(text string, at int) weft.Operation {
	return &weft.InsertText{Path: weft.Path{0, 0}, Offset: at, Text: text}
}

// step applies a batch, records it, and returns the next snapshot.
func step(t *testing.T, h *History, doc *weft.Document, ops ...weft.Operation) *weft.Document {
	t.Helper()
	next, err := doc.ApplyAll(ops...)
	failIfErr(t, err)
	h.Record(&Entry{Ops: ops, Before: doc.Selection, After: next.Selection})
	return next
}

///
/// tests
///

func TestUndoRedo(t *testing.T) {
	h := New(0)
	doc := newDoc("base")
	failIfNot(t, !h.CanUndo() && !h.CanRedo(), "fresh history should be empty")

	doc1 := step(t, h, doc, appendText("-one", 4))
	doc2 := step(t, h, doc1, appendText("-two", 8))
	testEqual(t, doc2.String(), "base-one-two", "text after two batches")
	testEqual(t, h.Depth(), 2, "depth after two batches")

	back, ok, err := h.Undo(doc2)
	failIfErr(t, err)
	failIfNot(t, ok, "undo with entries should succeed")
	testEqual(t, back.String(), "base-one", "text after one undo")

	back, ok, err = h.Undo(back)
	failIfErr(t, err)
	failIfNot(t, ok, "second undo should succeed")
	testEqual(t, back.String(), "base", "text after two undos")
	failIfNot(t, !h.CanUndo() && h.CanRedo(), "history fully unwound")

	_, ok, err = h.Undo(back)
	failIfErr(t, err)
	failIfNot(t, !ok, "undo on an empty log should refuse")

	fwd, ok, err := h.Redo(back)
	failIfErr(t, err)
	failIfNot(t, ok, "redo should succeed")
	testEqual(t, fwd.String(), "base-one", "text after one redo")

	fwd, _, err = h.Redo(fwd)
	failIfErr(t, err)
	testEqual(t, fwd.String(), "base-one-two", "text after two redos")
	failIfNot(t, !h.CanRedo(), "redo log drained")
}

func TestUndoRestoresSelection(t *testing.T) {
	h := New(0)
	doc := newDoc("word")
	before := &weft.Range{
		Anchor: weft.Point{Path: weft.Path{0, 0}, Offset: 4},
		Focus:  weft.Point{Path: weft.Path{0, 0}, Offset: 4},
	}
	doc = &weft.Document{Root: doc.Root, Selection: before}

	next := step(t, h, doc, appendText("s", 4))
	after := next.Selection
	failIfNot(t, after != nil && after.Anchor.Offset == 5, "selection should ride the edit")

	back, _, err := h.Undo(next)
	failIfErr(t, err)
	testEqual(t, back.Selection, before, "undo restores the starting selection")

	fwd, _, err := h.Redo(back)
	failIfErr(t, err)
	testEqual(t, fwd.Selection, after, "redo restores the ending selection")
}

func TestRecordClearsRedo(t *testing.T) {
	h := New(0)
	doc := newDoc("a")
	doc = step(t, h, doc, appendText("b", 1))
	back, _, err := h.Undo(doc)
	failIfErr(t, err)
	failIfNot(t, h.CanRedo(), "undo should fill the redo log")

	doc = step(t, h, back, appendText("c", 1))
	failIfNot(t, !h.CanRedo(), "recording should discard the redone future")
	testEqual(t, doc.String(), "ac", "text after diverging")
}

func TestLimitEvictsOldest(t *testing.T) {
	h := New(2)
	doc := newDoc("")
	doc = step(t, h, doc, appendText("a", 0))
	h.Checkpoint("first")
	doc = step(t, h, doc, appendText("b", 1))
	doc = step(t, h, doc, appendText("c", 2))
	testEqual(t, h.Depth(), 2, "depth stays at the limit")

	// the evicted entry's checkpoint now names the oldest reachable state,
	// which after eviction is the base
	failIfNot(t, h.HasCheckpoint("first"), "checkpoint should survive eviction")
	back, ok, err := h.RevertTo("first", doc)
	failIfErr(t, err)
	failIfNot(t, ok, "revert to an evicted checkpoint should succeed")
	testEqual(t, back.String(), "a", "evicted checkpoint reverts to the base of the log")
	failIfNot(t, !h.CanUndo(), "revert to base empties the undo log")
}

func TestCheckpointRevert(t *testing.T) {
	h := New(0)
	doc := newDoc("")
	doc = step(t, h, doc, appendText("a", 0))
	h.Checkpoint("draft")
	doc = step(t, h, doc, appendText("b", 1))
	doc = step(t, h, doc, appendText("c", 2))
	testEqual(t, doc.String(), "abc", "text before revert")
	failIfNot(t, h.HasCheckpoint("draft"), "checkpoint should be present")

	back, ok, err := h.RevertTo("draft", doc)
	failIfErr(t, err)
	failIfNot(t, ok, "revert should succeed")
	testEqual(t, back.String(), "a", "text at the checkpoint")
	testEqual(t, h.Depth(), 1, "entries up to the checkpoint remain undoable")

	// the reverted entries are redoable in order
	fwd, _, err := h.Redo(back)
	failIfErr(t, err)
	testEqual(t, fwd.String(), "ab", "first redo after revert")
	fwd, _, err = h.Redo(fwd)
	failIfErr(t, err)
	testEqual(t, fwd.String(), "abc", "second redo after revert")
}

func TestCheckpointAtBase(t *testing.T) {
	h := New(0)
	doc := newDoc("x")
	h.Checkpoint("start")
	doc = step(t, h, doc, appendText("y", 1))
	failIfNot(t, h.HasCheckpoint("start"), "base checkpoint should be present")

	back, ok, err := h.RevertTo("start", doc)
	failIfErr(t, err)
	failIfNot(t, ok, "revert to the base should succeed")
	testEqual(t, back.String(), "x", "text at the base")
	failIfNot(t, !h.CanUndo(), "nothing left to undo at the base")
}

func TestCheckpointMoves(t *testing.T) {
	h := New(0)
	doc := newDoc("")
	doc = step(t, h, doc, appendText("a", 0))
	h.Checkpoint("wip")
	doc = step(t, h, doc, appendText("b", 1))
	h.Checkpoint("wip")

	back, ok, err := h.RevertTo("wip", doc)
	failIfErr(t, err)
	failIfNot(t, ok, "revert should succeed")
	testEqual(t, back.String(), "ab", "a reused name marks only the newest state")
}

func TestRevertToUnknownCheckpoint(t *testing.T) {
	h := New(0)
	doc := newDoc("x")
	doc = step(t, h, doc, appendText("y", 1))
	out, ok, err := h.RevertTo("missing", doc)
	failIfErr(t, err)
	failIfNot(t, !ok, "unknown checkpoint should refuse")
	failIfNot(t, out == doc, "a refused revert returns the input document")
	failIfNot(t, !h.HasCheckpoint("missing"), "unknown checkpoint reported present")
}
