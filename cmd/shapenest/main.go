// ShapeNest packs rectilinear shapes onto a fixed-width sheet with a
// multi-objective evolutionary search.
//
// Build:
//
//	go build -o shapenest ./cmd/shapenest
//
// Usage:
//
//	shapenest config init experiment.json --preset default
//	shapenest run problem.txt --config experiment.json
//	shapenest report results/bundle.json --out results/report
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
