// Command pdptw loads a pickup-and-delivery instance file and either runs
// the heuristic warm-start pool alone, or drives a full branch-and-cut
// solve against a caller-supplied solver.Engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vrp-solvers/pdptw/heuristics"
	"github.com/vrp-solvers/pdptw/instance"
	"github.com/vrp-solvers/pdptw/pdp"
)

const usage = `pdptw: single-vehicle pickup-and-delivery routing

Usage:
  pdptw heuristics [-verbose] <instance-file>
  pdptw solve [-cut-every N] [-eps E] <instance-file>

Exit codes: 0 success, 1 malformed instance, 2 infeasible/solver error.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	switch args[0] {
	case "heuristics":
		return runHeuristics(args[1:], stdout, stderr)
	case "solve":
		return runSolve(args[1:], stdout, stderr)
	default:
		fmt.Fprint(stderr, usage)
		return 1
	}
}

func runHeuristics(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("heuristics", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "print each heuristic's cost as it runs")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	g, info, err := instance.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "pdptw: %v\n", err)
		return 1
	}

	paths := heuristics.RunAll(g, nil)
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "pdptw: %s: no heuristic found a feasible path\n", info.BaseName)
		return 2
	}

	best := paths[0]
	for _, p := range paths {
		if *verbose {
			fmt.Fprintf(stdout, "%s\tcost=%d\tload=%d\n", info.BaseName, p.TotalCost, p.TotalLoad)
		}
		if p.TotalCost < best.TotalCost {
			best = p
		}
	}
	fmt.Fprintf(stdout, "best\tcost=%d\n", best.TotalCost)

	return 0
}

func runSolve(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	// Accepted and validated for forward compatibility with a branch-and-bound
	// engine; no concrete solver.Engine ships yet, so neither flag is read.
	_ = fs.Int("cut-every", 1, "separate cuts every N fractional branch-and-bound nodes")
	_ = fs.Float64("eps", 1e-6, "numerical tolerance for cut violation and flow thresholds")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	g, info, err := instance.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "pdptw: %v\n", err)
		return 1
	}
	if _, err := pdp.Reduce(g); err != nil {
		fmt.Fprintf(stderr, "pdptw: %s: %v\n", info.BaseName, err)
		return 1
	}

	// solver.Run needs a solver.Engine — the MILP engine is consumed as an
	// opaque external collaborator and this module ships none, so "solve"
	// has nothing concrete to drive without one being wired in by an
	// embedding program.
	fmt.Fprintf(stderr, "pdptw: %s: no solver.Engine configured; use package solver's Run directly from a program that provides one\n", info.BaseName)

	return 2
}
