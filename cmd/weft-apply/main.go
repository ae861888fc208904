// weft-apply replays an operation log against a document and prints the
// result. The document is a JSON node record and the log is one JSON
// operation record per line, the wire shape produced by the wire package.
//
//	weft-apply -doc doc.json -ops ops.jsonl [-html] [-verify]
//
// With -verify, every applied operation is also undone through its inverse
// and the round trip is checked against the starting tree.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/weft-tools/weft"
	"github.com/weft-tools/weft/markup"
	"github.com/weft-tools/weft/wire"
)

func main() {
	docPath := flag.String("doc", "", "JSON file holding the document tree")
	opsPath := flag.String("ops", "", "file holding one JSON operation record per line")
	asHTML := flag.Bool("html", false, "print the result as an HTML fragment instead of JSON")
	verify := flag.Bool("verify", false, "check that each operation's inverse restores the prior tree")
	flag.Parse()
	if *docPath == "" || *opsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	root, err := loadDocument(*docPath)
	if err != nil {
		fail(err)
	}
	ops, err := loadOperations(*opsPath)
	if err != nil {
		fail(err)
	}

	for i, op := range ops {
		next, err := weft.Apply(root, op)
		if err != nil {
			fail(fmt.Errorf("operation %d: %w", i, err))
		}
		if *verify {
			back, err := weft.Apply(next, op.Invert())
			if err != nil {
				fail(fmt.Errorf("operation %d: inverse: %w", i, err))
			}
			if !reflect.DeepEqual(back, root) {
				fail(fmt.Errorf("operation %d: inverse did not restore the tree", i))
			}
		}
		root = next
	}

	if *asHTML {
		out, err := markup.RenderDocument(root)
		if err != nil {
			fail(err)
		}
		fmt.Println(out)
		return
	}
	out, err := wire.MarshalNode(root)
	if err != nil {
		fail(err)
	}
	fmt.Println(string(out))
}

func loadDocument(path string) (*weft.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	node, err := wire.UnmarshalNode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	root, ok := node.(*weft.Element)
	if !ok {
		return nil, fmt.Errorf("%s: document root must be an element", path)
	}
	return root, nil
}

func loadOperations(path string) ([]weft.Operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ops []weft.Operation
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		op, err := wire.UnmarshalOperation(scanner.Bytes())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "weft-apply:", err)
	os.Exit(1)
}
