package main

// heapgen.go is a tiny helper utility to generate deterministic random term
// shapes for standalone benchmarking of aurum-heap (outside `go test`). It
// emits newline-delimited JSON term specs using the same {kind, name,
// debruijn, function, args} field names that cmd/aurum-heap-inspect -json
// prints. Nothing in this repository reads the generated files; they are
// input for external load-testers.
//
// Adapted from teacher's tools/dataset_gen (which emitted uniform/Zipf
// uint64 key datasets): the distribution knobs move from "which key" to
// "how deep and how branchy is this term", since this heap has no notion of
// keys at all.
//
// Usage:
//
//	go run ./tools/heapgen -n 10000 -maxdepth 6 -maxargs 3 -seed 42 -out terms.jsonl
//
// Flags:
//
//	-n         number of terms to generate (default 10000)
//	-maxdepth  maximum application nesting depth (default 5)
//	-maxargs   maximum arguments per application (default 3)
//	-varprob   probability (0..1) a leaf is a Variable rather than a Symbol
//	-seed      PRNG seed (default current time)
//	-out       output file (default stdout)
//
// © 2025 aurum-heap authors. MIT License.

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// termSpec uses the same JSON field names as cmd/aurum-heap-inspect's node
// type.
type termSpec struct {
	Kind     string     `json:"kind"`
	Name     string     `json:"name,omitempty"`
	DeBruijn uint32     `json:"debruijn,omitempty"`
	Function *termSpec  `json:"function,omitempty"`
	Args     []termSpec `json:"args,omitempty"`
}

var symbolNames = []string{"Add", "Mul", "Sub", "Neg", "Pi", "Zero", "Succ", "Pair", "Fst", "Snd"}

func genTerm(rnd *rand.Rand, depth, maxDepth, maxArgs int, varProb float64) termSpec {
	if depth >= maxDepth || rnd.Float64() < 1.0/float64(maxDepth-depth+1) {
		if rnd.Float64() < varProb {
			return termSpec{Kind: "variable", DeBruijn: uint32(rnd.Intn(20))}
		}
		return termSpec{Kind: "symbol", Name: symbolNames[rnd.Intn(len(symbolNames))]}
	}

	fn := genTerm(rnd, depth+1, maxDepth, maxArgs, varProb)
	n := rnd.Intn(maxArgs + 1)
	args := make([]termSpec, n)
	for i := range args {
		args[i] = genTerm(rnd, depth+1, maxDepth, maxArgs, varProb)
	}
	return termSpec{Kind: "application", Function: &fn, Args: args}
}

func main() {
	var (
		n        = flag.Int("n", 10_000, "number of terms to generate")
		maxDepth = flag.Int("maxdepth", 5, "maximum application nesting depth")
		maxArgs  = flag.Int("maxargs", 3, "maximum arguments per application")
		varProb  = flag.Float64("varprob", 0.4, "probability a leaf is a Variable rather than a Symbol")
		seedVal  = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath  = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	if *maxDepth <= 0 || *maxArgs < 0 || *varProb < 0 || *varProb > 1 {
		fmt.Fprintln(os.Stderr, "invalid flags: maxdepth must be >0, maxargs >=0, varprob in [0,1]")
		os.Exit(1)
	}

	rnd := rand.New(rand.NewSource(*seedVal))

	var out *os.File
	var err error
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()

	enc := json.NewEncoder(w)
	for i := 0; i < *n; i++ {
		term := genTerm(rnd, 0, *maxDepth, *maxArgs, *varProb)
		if err := enc.Encode(term); err != nil {
			fmt.Fprintln(os.Stderr, "encode error:", err)
			os.Exit(1)
		}
	}
}
