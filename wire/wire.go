// Package wire serializes operation records and document trees for the
// persistence and replication layers. Each operation becomes a tagged record
// {"type": <variant>, ...fields}; replaying the records in order through
// Apply reproduces the edit history bit for bit.
//
// Two encodings share one record shape: JSON for logs meant to be read, and
// msgpack for compact binary logs. Nodes use the conventional inline form --
// a text leaf is {"text": "...", ...props}, an element is
// {"children": [...], ...props} -- so extra properties survive round trips
// at the top level of the record.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/weft-tools/weft"
)

// Operation type tags.
const (
	TypeInsertNode   = "insert_node"
	TypeRemoveNode   = "remove_node"
	TypeSetNode      = "set_node"
	TypeMergeNode    = "merge_node"
	TypeSplitNode    = "split_node"
	TypeMoveNode     = "move_node"
	TypeInsertText   = "insert_text"
	TypeRemoveText   = "remove_text"
	TypeSetSelection = "set_selection"
)

///
/// encoding
///

// MarshalOperation renders op as a tagged JSON record.
func MarshalOperation(op weft.Operation) ([]byte, error) {
	rec, err := operationRecord(op)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

// EncodeOperation renders op as a tagged msgpack record.
func EncodeOperation(op weft.Operation) ([]byte, error) {
	rec, err := operationRecord(op)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(rec)
}

// MarshalNode renders a tree in the inline JSON form.
func MarshalNode(n weft.Node) ([]byte, error) {
	return json.Marshal(nodeRecord(n))
}

// MarshalRange renders a range with its anchor, focus, and extra properties.
func MarshalRange(r weft.Range) ([]byte, error) {
	return json.Marshal(rangeRecord(&r))
}

func operationRecord(op weft.Operation) (map[string]any, error) {
	switch op := op.(type) {
	case *weft.InsertNode:
		return map[string]any{"type": TypeInsertNode, "path": op.Path, "node": nodeRecord(op.Node)}, nil
	case *weft.RemoveNode:
		return map[string]any{"type": TypeRemoveNode, "path": op.Path, "node": nodeRecord(op.Node)}, nil
	case *weft.SetNode:
		return map[string]any{
			"type": TypeSetNode, "path": op.Path,
			"properties":    map[string]any(op.Props),
			"newProperties": map[string]any(op.NewProps),
		}, nil
	case *weft.MergeNode:
		return map[string]any{
			"type": TypeMergeNode, "path": op.Path,
			"position": op.Position, "properties": map[string]any(op.Props),
		}, nil
	case *weft.SplitNode:
		return map[string]any{
			"type": TypeSplitNode, "path": op.Path,
			"position": op.Position, "properties": map[string]any(op.Props),
		}, nil
	case *weft.MoveNode:
		return map[string]any{"type": TypeMoveNode, "path": op.Path, "newPath": op.NewPath}, nil
	case *weft.InsertText:
		return map[string]any{"type": TypeInsertText, "path": op.Path, "offset": op.Offset, "text": op.Text}, nil
	case *weft.RemoveText:
		return map[string]any{"type": TypeRemoveText, "path": op.Path, "offset": op.Offset, "text": op.Text}, nil
	case *weft.SetSelection:
		return map[string]any{
			"type":          TypeSetSelection,
			"properties":    rangeRecord(op.Old),
			"newProperties": rangeRecord(op.New),
		}, nil
	}
	return nil, fmt.Errorf("wire: unknown operation %T", op)
}

func nodeRecord(n weft.Node) map[string]any {
	switch n := n.(type) {
	case *weft.Text:
		rec := propsRecord(n.Props)
		rec["text"] = n.Text
		return rec
	case *weft.Element:
		kids := make([]any, len(n.Children))
		for i, child := range n.Children {
			kids[i] = nodeRecord(child)
		}
		rec := propsRecord(n.Props)
		rec["children"] = kids
		return rec
	}
	return nil
}

func pointRecord(pt weft.Point) map[string]any {
	return map[string]any{"path": pt.Path, "offset": pt.Offset}
}

func rangeRecord(r *weft.Range) map[string]any {
	if r == nil {
		return nil
	}
	rec := propsRecord(r.Props)
	rec["anchor"] = pointRecord(r.Anchor)
	rec["focus"] = pointRecord(r.Focus)
	return rec
}

func propsRecord(props weft.Props) map[string]any {
	rec := map[string]any{}
	for key, value := range props {
		rec[key] = value
	}
	return rec
}
