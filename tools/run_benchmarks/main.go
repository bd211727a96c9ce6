// Package main runs the registered solvers over a directory of maps and
// collects metrics as CSV and, optionally, rows in a SQLite database for
// longitudinal comparison across runs.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gollth/shaman/internal/algo"
	"github.com/gollth/shaman/internal/mapfile"
)

// Result captures one solver run on one map.
type Result struct {
	Timestamp  string
	Map        string
	Solver     string
	Agents     int
	Success    bool
	Outcome    string // solved, infeasible, budget, error
	Cost       int
	Makespan   int
	Expansions int
	RuntimeMs  float64
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("run_benchmarks: ")

	maps := flag.String("maps", "instances", "directory of *.txt maps")
	csvPath := flag.String("csv", "benchmarks.csv", "CSV output path")
	dbPath := flag.String("db", "", "optional SQLite database to append results to")
	budget := flag.Int("budget", 100000, "max constraint-tree expansions per run")
	timeout := flag.Duration("timeout", 30*time.Second, "wall-clock limit per run")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*maps, "*.txt"))
	if err != nil {
		log.Fatal(err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Fatalf("no maps found in %s", *maps)
	}

	solvers := []algo.Solver{
		algo.NewCBS(*budget),
		algo.NewPrioritized(),
	}

	var results []Result
	for _, file := range files {
		inst, err := mapfile.ParseFile(file)
		if err != nil {
			log.Printf("skipping %s: %v", file, err)
			continue
		}

		for _, solver := range solvers {
			ctx, cancel := context.WithTimeout(context.Background(), *timeout)
			start := time.Now()
			sol, err := solver.Solve(ctx, inst)
			elapsed := time.Since(start)
			cancel()

			r := Result{
				Timestamp: start.UTC().Format(time.RFC3339),
				Map:       filepath.Base(file),
				Solver:    solver.Name(),
				Agents:    len(inst.Agents),
				RuntimeMs: float64(elapsed.Microseconds()) / 1000,
			}
			switch {
			case err == nil:
				r.Success = true
				r.Outcome = "solved"
				r.Cost = sol.Cost
				r.Makespan = sol.Makespan
				r.Expansions = sol.Expansions
			case errors.Is(err, algo.ErrInfeasible):
				r.Outcome = "infeasible"
			case errors.Is(err, algo.ErrBudgetExceeded):
				r.Outcome = "budget"
			default:
				r.Outcome = "error"
			}
			results = append(results, r)

			fmt.Printf("%-16s %-12s %-10s cost=%-4d expansions=%-6d %8.2fms\n",
				r.Map, r.Solver, r.Outcome, r.Cost, r.Expansions, r.RuntimeMs)
		}
	}

	if err := writeCSV(*csvPath, results); err != nil {
		log.Fatal(err)
	}
	if *dbPath != "" {
		if err := writeDB(*dbPath, results); err != nil {
			log.Fatal(err)
		}
	}
}

func writeCSV(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"timestamp", "map", "solver", "agents", "success", "outcome", "cost", "makespan", "expansions", "runtime_ms"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Timestamp, r.Map, r.Solver,
			fmt.Sprint(r.Agents), fmt.Sprint(r.Success), r.Outcome,
			fmt.Sprint(r.Cost), fmt.Sprint(r.Makespan), fmt.Sprint(r.Expansions),
			fmt.Sprintf("%.3f", r.RuntimeMs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp  TEXT NOT NULL,
	map        TEXT NOT NULL,
	solver     TEXT NOT NULL,
	agents     INTEGER NOT NULL,
	success    INTEGER NOT NULL,
	outcome    TEXT NOT NULL,
	cost       INTEGER NOT NULL,
	makespan   INTEGER NOT NULL,
	expansions INTEGER NOT NULL,
	runtime_ms REAL NOT NULL
);`

func writeDB(path string, results []Result) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO runs
		(timestamp, map, solver, agents, success, outcome, cost, makespan, expansions, runtime_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.Exec(r.Timestamp, r.Map, r.Solver, r.Agents, r.Success,
			r.Outcome, r.Cost, r.Makespan, r.Expansions, r.RuntimeMs); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
