// Command shaman solves a multi-agent path finding problem drawn as a text
// map (or described by a YAML scenario) and shows the result in the
// terminal, optionally animated.
//
// Usage:
//
//	shaman [flags] <map.txt|scenario.yaml>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gollth/shaman/internal/algo"
	"github.com/gollth/shaman/internal/core"
	"github.com/gollth/shaman/internal/mapfile"
	"github.com/gollth/shaman/internal/render"
	"github.com/gollth/shaman/internal/scen"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("shaman: ")

	fps := flag.Float64("fps", 0, "animation frame rate; 0 prints a single frame")
	stop := flag.Bool("stop", false, "skip conflict resolution, show each agent's own shortest route")
	budget := flag.Int("budget", 100000, "max constraint-tree expansions before giving up")
	timeout := flag.Duration("timeout", 30*time.Second, "wall-clock limit for the search")
	solverName := flag.String("solver", "cbs", "algorithm: cbs or prioritized")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <map.txt|scenario.yaml>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	inst, err := load(path, solverName, budget, fps)
	if err != nil {
		log.Fatal(err)
	}

	sol, err := solve(inst, *solverName, *budget, *timeout, *stop)
	if err != nil {
		switch {
		case errors.Is(err, algo.ErrInfeasible):
			log.Fatalf("%s: no collision-free solution exists", path)
		case errors.Is(err, algo.ErrBudgetExceeded):
			log.Fatalf("%s: gave up after the search budget, a solution may still exist", path)
		default:
			log.Fatal(err)
		}
	}

	render.New(inst, sol).Animate(os.Stdout, *fps)
}

// load reads either a map drawing or a YAML scenario. Scenario defaults
// only fill in flags the user left untouched.
func load(path string, solverName *string, budget *int, fps *float64) (*core.Instance, error) {
	if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
		return mapfile.ParseFile(path)
	}

	scenario, err := scen.Load(path)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if scenario.Solver != "" && !set["solver"] {
		*solverName = scenario.Solver
	}
	if scenario.Budget > 0 && !set["budget"] {
		*budget = scenario.Budget
	}
	if scenario.FPS > 0 && !set["fps"] {
		*fps = scenario.FPS
	}
	return scenario.Instance()
}

func solve(inst *core.Instance, solverName string, budget int, timeout time.Duration, stop bool) (*core.Solution, error) {
	if stop {
		return algo.PlanIndependent(inst)
	}

	var solver algo.Solver
	switch solverName {
	case "cbs":
		solver = algo.NewCBS(budget)
	case "prioritized":
		solver = algo.NewPrioritized()
	default:
		return nil, fmt.Errorf("unknown solver %q", solverName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return solver.Solve(ctx, inst)
}
