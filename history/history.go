// Package history keeps the undo and redo logs of a document. It stores the
// operation records of each edit batch, never old trees: undoing replays the
// inverses against the current snapshot, so memory stays bounded by the
// operations themselves.
//
// Both logs are persistent fingertrees measured by entry count and by the
// set of checkpoint names above each entry, which makes reverting to a named
// checkpoint a single split of the log.
package history

import (
	ft "github.com/leisure-tools/lazyfingertree"

	"github.com/weft-tools/weft"
)

///
/// types
///

type Log = ft.FingerTree[EntryMeasurer, *Entry, Measure]

// An Entry is one undoable batch: the operations as they were applied, in
// order, plus the selections to restore on either side of the batch. Marks
// are the checkpoint names pinned to the state just after this entry.
type Entry struct {
	Ops    []weft.Operation
	Before *weft.Range
	After  *weft.Range
	Marks  Set[string]
}

type EntryMeasurer bool

type Measure struct {
	Entries int
	Marks   Set[string]
}

func (m EntryMeasurer) Identity() Measure {
	return Measure{}
}

func (m EntryMeasurer) Measure(e *Entry) Measure {
	return Measure{Entries: 1, Marks: e.Marks}
}

func (m EntryMeasurer) Sum(a Measure, b Measure) Measure {
	return Measure{
		Entries: a.Entries + b.Entries,
		Marks:   a.Marks.Union(b.Marks),
	}
}

func newLog(entries ...*Entry) Log {
	return ft.FromArray[EntryMeasurer, *Entry, Measure](EntryMeasurer(true), entries)
}

// A History holds the undo log, the redo log, and the checkpoint names
// pinned to the empty document state. A zero limit keeps every entry.
type History struct {
	undo      Log
	redo      Log
	baseMarks Set[string]
	limit     int
}

func New(limit int) *History {
	return &History{
		undo:      newLog(),
		redo:      newLog(),
		baseMarks: NewSet[string](),
		limit:     limit,
	}
}

///
/// recording
///

// Record appends a freshly applied batch to the undo log and empties the
// redo log, exactly as typing after an undo discards the redone future.
func (h *History) Record(e *Entry) {
	h.redo = newLog()
	h.undo = h.undo.AddLast(e)
	if h.limit > 0 && h.undo.Measure().Entries > h.limit {
		dropped := h.undo.PeekFirst()
		h.undo = h.undo.RemoveFirst()
		// checkpoints above the dropped entry now name the base state
		h.baseMarks = h.baseMarks.Union(dropped.Marks)
	}
}

func (h *History) CanUndo() bool {
	return !h.undo.IsEmpty()
}

func (h *History) CanRedo() bool {
	return !h.redo.IsEmpty()
}

// Depth returns the number of undoable entries.
func (h *History) Depth() int {
	return h.undo.Measure().Entries
}

///
/// undo / redo
///

// Undo unwinds the most recent entry against doc, restoring the selection
// the batch started from. The bool is false when there is nothing to undo.
func (h *History) Undo(doc *weft.Document) (*weft.Document, bool, error) {
	if h.undo.IsEmpty() {
		return doc, false, nil
	}
	e := h.undo.PeekLast()
	next, err := unwind(doc, e)
	if err != nil {
		return nil, false, err
	}
	h.undo = h.undo.RemoveLast()
	h.redo = h.redo.AddLast(e)
	return next, true, nil
}

// Redo replays the most recently undone entry.
func (h *History) Redo(doc *weft.Document) (*weft.Document, bool, error) {
	if h.redo.IsEmpty() {
		return doc, false, nil
	}
	e := h.redo.PeekLast()
	next, err := doc.ApplyAll(e.Ops...)
	if err != nil {
		return nil, false, err
	}
	next = &weft.Document{Root: next.Root, Selection: e.After}
	h.redo = h.redo.RemoveLast()
	h.undo = h.undo.AddLast(e)
	return next, true, nil
}

// unwind applies the inverses of an entry's operations, last to first.
func unwind(doc *weft.Document, e *Entry) (*weft.Document, error) {
	next := doc
	for i := len(e.Ops) - 1; i >= 0; i-- {
		var err error
		if next, err = next.Apply(e.Ops[i].Invert()); err != nil {
			return nil, err
		}
	}
	return &weft.Document{Root: next.Root, Selection: e.Before}, nil
}

///
/// checkpoints
///

// Checkpoint names the current state. A name marks exactly one state: using
// it again moves it here.
func (h *History) Checkpoint(name string) {
	h.removeMark(name)
	if h.undo.IsEmpty() {
		h.baseMarks = h.baseMarks.Add(name)
		return
	}
	top := h.undo.PeekLast()
	marked := *top
	marked.Marks = top.Marks.Union(NewSet(name))
	h.undo = h.undo.RemoveLast().AddLast(&marked)
}

// HasCheckpoint reports whether name still marks an undoable state.
func (h *History) HasCheckpoint(name string) bool {
	return h.baseMarks.Has(name) || h.undo.Measure().Marks.Has(name)
}

// RevertTo unwinds every entry recorded after the named checkpoint, pushing
// them onto the redo log. The bool is false when no such checkpoint exists.
func (h *History) RevertTo(name string, doc *weft.Document) (*weft.Document, bool, error) {
	if !h.HasCheckpoint(name) {
		return doc, false, nil
	}
	keep, rest := h.splitOnMark(name)
	next := doc
	undone := rest.ToSlice()
	for i := len(undone) - 1; i >= 0; i-- {
		var err error
		if next, err = unwind(next, undone[i]); err != nil {
			return nil, false, err
		}
		h.redo = h.redo.AddLast(undone[i])
	}
	h.undo = keep
	return next, true, nil
}

// splitOnMark divides the undo log into the entries up to and including the
// marked one and everything after it.
func (h *History) splitOnMark(name string) (Log, Log) {
	if h.baseMarks.Has(name) {
		return newLog(), h.undo
	}
	left, right := h.undo.Split(func(m Measure) bool {
		return m.Marks.Has(name)
	})
	// the split lands on the marked entry, which the checkpoint state
	// includes
	return left.AddLast(right.PeekFirst()), right.RemoveFirst()
}

// removeMark forgets a checkpoint name wherever it sits in the log.
func (h *History) removeMark(name string) {
	if h.baseMarks.Has(name) {
		h.baseMarks = h.baseMarks.Copy().Remove(name)
		return
	}
	left, right := h.undo.Split(func(m Measure) bool {
		return m.Marks.Has(name)
	})
	if right.IsEmpty() {
		return
	}
	marked := *right.PeekFirst()
	marked.Marks = marked.Marks.Copy().Remove(name)
	h.undo = left.AddLast(&marked).Concat(right.RemoveFirst())
}
