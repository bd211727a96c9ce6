// Package main generates random solvable-looking map instances for
// benchmarking. Output is deterministic for a given seed: a map drawing
// plus a YAML scenario per instance.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/gollth/shaman/internal/algo"
	"github.com/gollth/shaman/internal/core"
	"github.com/gollth/shaman/internal/mapfile"
	"github.com/gollth/shaman/internal/scen"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gen_instances: ")

	out := flag.String("out", "instances", "output directory")
	count := flag.Int("count", 10, "number of instances")
	seed := flag.Int64("seed", 42, "rng seed")
	width := flag.Int("width", 12, "grid width")
	height := flag.Int("height", 8, "grid height")
	obstacles := flag.Float64("obstacles", 0.2, "fraction of blocked cells")
	agents := flag.Int("agents", 3, "number of agents (1..4)")
	flag.Parse()

	if *agents < 1 || *agents > 4 {
		log.Fatalf("agents must be between 1 and 4, got %d", *agents)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *count; i++ {
		drawing := generate(rng, *width, *height, *obstacles, *agents)

		name := fmt.Sprintf("map_%03d", i)
		mapPath := filepath.Join(*out, name+".txt")
		if err := os.WriteFile(mapPath, []byte(drawing), 0o644); err != nil {
			log.Fatal(err)
		}

		scenario := scen.Scenario{Map: name + ".txt", Solver: "cbs", Budget: 100000, FPS: 4}
		data, err := yaml.Marshal(&scenario)
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(*out, name+".yaml"), data, 0o644); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("wrote %s\n", mapPath)
	}
}

// generate draws random maps until one comes out where every agent can
// reach its goal on its own. Mutual blocking can still make an instance
// infeasible; benchmarks want a share of those, so only single-agent
// reachability is enforced.
func generate(rng *rand.Rand, width, height int, obstacles float64, agents int) string {
	for {
		cells := make([][]rune, height)
		for y := range cells {
			cells[y] = []rune(strings.Repeat(" ", width))
		}

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if rng.Float64() < obstacles {
					cells[y][x] = '#'
				}
			}
		}

		// Distinct free cells for all starts and goals, so every letter
		// has its own spot in the drawing.
		spots := pickFree(rng, cells, 2*agents)
		if spots == nil {
			continue
		}
		for a := 0; a < agents; a++ {
			start, goal := spots[2*a], spots[2*a+1]
			cells[start.Y][start.X] = 'A' + rune(a)
			cells[goal.Y][goal.X] = 'a' + rune(a)
		}

		rows := make([]string, height)
		for y, row := range cells {
			rows[y] = string(row)
		}
		drawing := strings.Join(rows, "\n") + "\n"

		if solvableAlone(drawing) {
			return drawing
		}
	}
}

func pickFree(rng *rand.Rand, cells [][]rune, n int) []core.Cell {
	var free []core.Cell
	for y, row := range cells {
		for x, ch := range row {
			if ch == ' ' {
				free = append(free, core.Cell{X: x, Y: y})
			}
		}
	}
	if len(free) < n {
		return nil
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	return free[:n]
}

func solvableAlone(drawing string) bool {
	inst, err := mapfile.Parse("generated", strings.NewReader(drawing))
	if err != nil {
		return false
	}
	_, err = algo.PlanIndependent(inst)
	return err == nil
}
