package wire

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/weft-tools/weft"
)

///
/// entry points
///

// UnmarshalOperation decodes a tagged JSON operation record.
func UnmarshalOperation(data []byte) (weft.Operation, error) {
	v := gjson.ParseBytes(data)
	if !v.IsObject() || !v.Get("type").Exists() {
		return nil, fmt.Errorf("wire: not an operation record")
	}
	rec, _ := v.Value().(map[string]any)
	return operationFromRecord(rec)
}

// DecodeOperation decodes a tagged msgpack operation record.
func DecodeOperation(data []byte) (weft.Operation, error) {
	var rec map[string]any
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("wire: %w", err)
	}
	return operationFromRecord(rec)
}

// UnmarshalNode decodes a tree from the inline JSON form.
func UnmarshalNode(data []byte) (weft.Node, error) {
	v := gjson.ParseBytes(data)
	if !v.IsObject() {
		return nil, fmt.Errorf("wire: not a node record")
	}
	return nodeFromRecord(v.Value())
}

// UnmarshalRange decodes a range record.
func UnmarshalRange(data []byte) (*weft.Range, error) {
	v := gjson.ParseBytes(data)
	if !v.IsObject() {
		return nil, fmt.Errorf("wire: not a range record")
	}
	return rangeFromRecord(v.Value())
}

///
/// record conversion
///

func operationFromRecord(rec map[string]any) (weft.Operation, error) {
	tag, _ := rec["type"].(string)
	switch tag {
	case TypeInsertNode, TypeRemoveNode:
		path, err := pathFrom(rec["path"])
		if err != nil {
			return nil, err
		}
		node, err := nodeFromRecord(rec["node"])
		if err != nil {
			return nil, err
		}
		if tag == TypeInsertNode {
			return &weft.InsertNode{Path: path, Node: node}, nil
		}
		return &weft.RemoveNode{Path: path, Node: node}, nil
	case TypeSetNode:
		path, err := pathFrom(rec["path"])
		if err != nil {
			return nil, err
		}
		return &weft.SetNode{
			Path:     path,
			Props:    propsFrom(rec["properties"]),
			NewProps: propsFrom(rec["newProperties"]),
		}, nil
	case TypeMergeNode, TypeSplitNode:
		path, err := pathFrom(rec["path"])
		if err != nil {
			return nil, err
		}
		position, ok := asInt(rec["position"])
		if !ok {
			return nil, fmt.Errorf("wire: %s without a position", tag)
		}
		props := propsFrom(rec["properties"])
		if tag == TypeMergeNode {
			return &weft.MergeNode{Path: path, Position: position, Props: props}, nil
		}
		return &weft.SplitNode{Path: path, Position: position, Props: props}, nil
	case TypeMoveNode:
		path, err := pathFrom(rec["path"])
		if err != nil {
			return nil, err
		}
		newPath, err := pathFrom(rec["newPath"])
		if err != nil {
			return nil, err
		}
		return &weft.MoveNode{Path: path, NewPath: newPath}, nil
	case TypeInsertText, TypeRemoveText:
		path, err := pathFrom(rec["path"])
		if err != nil {
			return nil, err
		}
		offset, ok := asInt(rec["offset"])
		if !ok {
			return nil, fmt.Errorf("wire: %s without an offset", tag)
		}
		text, _ := rec["text"].(string)
		if tag == TypeInsertText {
			return &weft.InsertText{Path: path, Offset: offset, Text: text}, nil
		}
		return &weft.RemoveText{Path: path, Offset: offset, Text: text}, nil
	case TypeSetSelection:
		old, err := rangeFromRecord(rec["properties"])
		if err != nil {
			return nil, err
		}
		next, err := rangeFromRecord(rec["newProperties"])
		if err != nil {
			return nil, err
		}
		return &weft.SetSelection{Old: old, New: next}, nil
	}
	return nil, fmt.Errorf("wire: unknown operation type %q", tag)
}

func nodeFromRecord(v any) (weft.Node, error) {
	rec, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("wire: node record is %T, not an object", v)
	}
	if text, ok := rec["text"].(string); ok {
		return &weft.Text{Text: text, Props: propsOf(rec, "text")}, nil
	}
	kids, ok := rec["children"].([]any)
	if !ok {
		return nil, fmt.Errorf("wire: node record has neither text nor children")
	}
	children := make([]weft.Node, len(kids))
	for i, kid := range kids {
		child, err := nodeFromRecord(kid)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return &weft.Element{Children: children, Props: propsOf(rec, "children")}, nil
}

func pointFromRecord(v any) (weft.Point, error) {
	rec, ok := v.(map[string]any)
	if !ok {
		return weft.Point{}, fmt.Errorf("wire: point record is %T, not an object", v)
	}
	path, err := pathFrom(rec["path"])
	if err != nil {
		return weft.Point{}, err
	}
	offset, ok := asInt(rec["offset"])
	if !ok {
		return weft.Point{}, fmt.Errorf("wire: point without an offset")
	}
	return weft.Point{Path: path, Offset: offset}, nil
}

func rangeFromRecord(v any) (*weft.Range, error) {
	if v == nil {
		return nil, nil
	}
	rec, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("wire: range record is %T, not an object", v)
	}
	anchor, err := pointFromRecord(rec["anchor"])
	if err != nil {
		return nil, err
	}
	focus, err := pointFromRecord(rec["focus"])
	if err != nil {
		return nil, err
	}
	return &weft.Range{Anchor: anchor, Focus: focus, Props: propsOf(rec, "anchor", "focus")}, nil
}

///
/// primitives
///

func pathFrom(v any) (weft.Path, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("wire: path is %T, not an array", v)
	}
	path := make(weft.Path, len(raw))
	for i, e := range raw {
		index, ok := asInt(e)
		if !ok {
			return nil, fmt.Errorf("wire: path component %v is not an integer", e)
		}
		path[i] = index
	}
	return path, nil
}

func propsFrom(v any) weft.Props {
	rec, _ := v.(map[string]any)
	return propsOf(rec)
}

func propsOf(rec map[string]any, skip ...string) weft.Props {
	props := weft.Props{}
	for key, value := range rec {
		props[key] = value
	}
	for _, key := range skip {
		delete(props, key)
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

// asInt accepts the integer encodings both decoders produce: float64 from
// JSON, the sized integer kinds from msgpack.
func asInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		return int(v), true
	case float32:
		return int(v), true
	}
	return 0, false
}
