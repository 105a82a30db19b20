// Command aurum-heap-inspect builds a small term from CLI flags using the
// public heap API and prints its structure as JSON or pretty text.
//
// Teacher's cmd/arena-cache-inspect scraped a running cache's
// /debug/arena-cache/snapshot endpoint over HTTP, because a cache is a
// long-lived service another process can reach. This heap is an in-process
// library with no server of its own, so there is nothing to scrape —
// instead this tool builds a term directly, in-process, with the same
// flag-parsing and pretty-vs-JSON output idiom teacher's inspector used for
// presenting what it found.
//
// Usage:
//
//	aurum-heap-inspect -name Add -args Pi,x0,x1
//	aurum-heap-inspect -name Add -args Pi,x0 -json
//
// Argument tokens starting with "x" followed by digits are built as
// Variables with that De Bruijn index (e.g. "x0" -> DeBruijn(0)); every
// other token is built as a Symbol with that name.
//
// © 2025 aurum-heap authors. MIT License.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	heap "github.com/Voskan/aurum-heap/pkg"
	"github.com/Voskan/aurum-heap/internal/object"
)

type inspectBrand struct{}

type node struct {
	Kind     string  `json:"kind"`
	Name     string  `json:"name,omitempty"`
	DeBruijn *uint32 `json:"debruijn,omitempty"`
	Function *node   `json:"function,omitempty"`
	Args     []node  `json:"args,omitempty"`
}

// parseLeaf interprets a single CLI token as either a Variable ("x" +
// digits) or a Symbol (anything else).
func parseLeaf(tok string) (kind string, name string, db uint32) {
	if strings.HasPrefix(tok, "x") {
		if n, err := strconv.ParseUint(tok[1:], 10, 32); err == nil {
			return "variable", "", uint32(n)
		}
	}
	return "symbol", tok, 0
}

func buildLeaf(h *heap.Heap[inspectBrand], into heap.ScopedHandle[inspectBrand], tok string) error {
	kind, name, db := parseLeaf(tok)
	if kind == "variable" {
		h.NewVariable(into, object.DeBruijn(db))
		return nil
	}
	return h.NewSymbol(into, []byte(name))
}

func describe(h heap.ScopedHandle[inspectBrand]) node {
	return heap.WithPin(h, func(p heap.PinnedHandle[inspectBrand]) node {
		hdr := p.HeaderSnapshot()
		switch hdr.Kind {
		case object.KindSymbol:
			b, _ := p.AsSymbol()
			return node{Kind: "symbol", Name: string(b)}
		case object.KindVariable:
			db, _ := h.AsVariable()
			v := uint32(db)
			return node{Kind: "variable", DeBruijn: &v}
		case object.KindApplication:
			fn, args, _ := p.AsApplication()
			fnNode := describe(fn)
			argNodes := make([]node, args.Len())
			for i := 0; i < args.Len(); i++ {
				slot, _ := args.Get(i)
				argNodes[i] = describe(slot)
			}
			return node{Kind: "application", Function: &fnNode, Args: argNodes}
		default:
			return node{Kind: "unknown"}
		}
	})
}

func printPretty(n node, indent string) {
	switch n.Kind {
	case "symbol":
		fmt.Printf("%sSymbol(%q)\n", indent, n.Name)
	case "variable":
		fmt.Printf("%sVariable(%d)\n", indent, *n.DeBruijn)
	case "application":
		fmt.Printf("%sApplication\n", indent)
		fmt.Printf("%s  function:\n", indent)
		printPretty(*n.Function, indent+"    ")
		fmt.Printf("%s  args:\n", indent)
		for _, a := range n.Args {
			printPretty(a, indent+"    ")
		}
	default:
		fmt.Printf("%s<unknown>\n", indent)
	}
}

func main() {
	var (
		name    = flag.String("name", "", "function name (or a single leaf token, symbol name or xN, if -args is empty)")
		argsCSV = flag.String("args", "", "comma-separated argument tokens (symbol names, or xN for Variable(N))")
		asJSON  = flag.Bool("json", false, "print JSON instead of pretty text")
	)
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: aurum-heap-inspect -name <fn> [-args a,b,c] [-json]")
		os.Exit(2)
	}

	var argTokens []string
	if *argsCSV != "" {
		argTokens = strings.Split(*argsCSV, ",")
	}

	var result node
	heap.WithNew(func(h *heap.Heap[inspectBrand]) struct{} {
		if len(argTokens) == 0 {
			heap.WithNewScope(h, 1, func(s *heap.Scope[inspectBrand]) struct{} {
				leaf := s.GetUnchecked(0)
				if err := buildLeaf(h, leaf, *name); err != nil {
					fmt.Fprintln(os.Stderr, "build error:", err)
					os.Exit(1)
				}
				result = describe(leaf)
				return struct{}{}
			})
			return struct{}{}
		}

		heap.WithNewScope(h, 1+len(argTokens), func(s *heap.Scope[inspectBrand]) struct{} {
			fnSlot := s.GetUnchecked(0)
			if err := h.NewSymbol(fnSlot, []byte(*name)); err != nil {
				fmt.Fprintln(os.Stderr, "build error:", err)
				os.Exit(1)
			}
			argSlots := make([]heap.ScopedHandle[inspectBrand], len(argTokens))
			for i, tok := range argTokens {
				slot := s.GetUnchecked(i + 1)
				if err := buildLeaf(h, slot, tok); err != nil {
					fmt.Fprintln(os.Stderr, "build error:", err)
					os.Exit(1)
				}
				argSlots[i] = slot
			}

			heap.WithNewScope(h, 1, func(appS *heap.Scope[inspectBrand]) struct{} {
				appSlot := appS.GetUnchecked(0)
				if err := h.NewApplication(appSlot, fnSlot, argSlots); err != nil {
					fmt.Fprintln(os.Stderr, "build error:", err)
					os.Exit(1)
				}
				result = describe(appSlot)
				return struct{}{}
			})
			return struct{}{}
		})
		return struct{}{}
	})

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
		return
	}
	printPretty(result, "")
}
