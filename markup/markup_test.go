package markup

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

///
/// tests
///

func TestRenderElement(t *testing.T) {
	n := &weft.Element{
		Props:    weft.Props{"type": "p", "class": "lead"},
		Children: []weft.Node{&weft.Text{Text: "hello"}},
	}
	out, err := Render(n)
	failIfErr(t, err)
	testEqual(t, out, `<p class="lead">hello</p>`, "rendered paragraph")
}

func TestRenderDefaultTag(t *testing.T) {
	out, err := Render(&weft.Element{Children: []weft.Node{&weft.Text{Text: "x"}}})
	failIfErr(t, err)
	testEqual(t, out, "<div>x</div>", "untyped element uses the default tag")
}

func TestRenderEscapes(t *testing.T) {
	out, err := Render(&weft.Text{Text: `a < b & "c"`})
	failIfErr(t, err)
	testEqual(t, out, "a &lt; b &amp; &#34;c&#34;", "escaped character data")
}

func TestRenderSkipsNonStringProps(t *testing.T) {
	n := &weft.Element{Props: weft.Props{"type": "p", "indent": 2, "id": "x"}}
	out, err := Render(n)
	failIfErr(t, err)
	testEqual(t, out, `<p id="x"></p>`, "only string props become attributes")
}

func TestRenderAttributeOrderIsStable(t *testing.T) {
	n := &weft.Element{Props: weft.Props{"type": "p", "b": "2", "a": "1", "c": "3"}}
	for range 16 {
		out, err := Render(n)
		failIfErr(t, err)
		testEqual(t, out, `<p a="1" b="2" c="3"></p>`, "sorted attributes")
	}
}

func TestRenderDocument(t *testing.T) {
	root := &weft.Element{Children: []weft.Node{
		&weft.Element{Props: weft.Props{"type": "h1"}, Children: []weft.Node{&weft.Text{Text: "title"}}},
		&weft.Element{Props: weft.Props{"type": "p"}, Children: []weft.Node{&weft.Text{Text: "body"}}},
	}}
	out, err := RenderDocument(root)
	failIfErr(t, err)
	testEqual(t, out, "<h1>title</h1><p>body</p>", "root container left out")
}

func TestParse(t *testing.T) {
	root, err := Parse(`<p class="lead">hi <em>there</em></p>`)
	failIfErr(t, err)
	testEqual(t, root, &weft.Element{Children: []weft.Node{
		&weft.Element{
			Props: weft.Props{"type": "p", "class": "lead"},
			Children: []weft.Node{
				&weft.Text{Text: "hi "},
				&weft.Element{
					Props:    weft.Props{"type": "em"},
					Children: []weft.Node{&weft.Text{Text: "there"}},
				},
			},
		},
	}}, "parsed fragment")
}

func TestParseDropsComments(t *testing.T) {
	root, err := Parse(`<p>a</p><!-- note --><p>b</p>`)
	failIfErr(t, err)
	testEqual(t, len(root.Children), 2, "comments dropped")
}

func TestRenderParseRoundTrip(t *testing.T) {
	root := &weft.Element{Children: []weft.Node{
		&weft.Element{
			Props: weft.Props{"type": "blockquote", "cite": "someone"},
			Children: []weft.Node{
				&weft.Element{Props: weft.Props{"type": "p"}, Children: []weft.Node{&weft.Text{Text: "a < b"}}},
			},
		},
	}}
	out, err := RenderDocument(root)
	failIfErr(t, err)
	back, err := Parse(out)
	failIfErr(t, err)
	testEqual(t, back, root, "fragment round trip")
}
