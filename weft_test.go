package weft

import (
	"fmt"
	"reflect"
	"testing"
)

///
/// helpers
///

func testEqual(t *testing.T, actual any, expected any, msg string) {
	t.Helper()
	failIfNot(t, reflect.DeepEqual(actual, expected),
		fmt.Sprintf("%s: expected <%v> but got <%v>", msg, expected, actual))
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

func el(children ...Node) *Element {
	return &Element{Children: children}
}

func elp(props Props, children ...Node) *Element {
	return &Element{Children: children, Props: props}
}

func txt(text string) *Text {
	return &Text{Text: text}
}

func txtp(text string, props Props) *Text {
	return &Text{Text: text, Props: props}
}

func pt(offset int, path ...int) Point {
	return Point{Path: Path(path), Offset: offset}
}

func rng(anchor, focus Point) Range {
	return Range{Anchor: anchor, Focus: focus}
}

// testTree is the two-paragraph document most tests work against:
// [ <p> "one" "two" </p>, <p> "three" "four" </p> ]
func testTree() *Element {
	return el(
		elp(Props{"type": "paragraph"}, txt("one"), txt("two")),
		elp(Props{"type": "paragraph"}, txt("three"), txt("four")),
	)
}
