// Command shamanvis replays a solved map in a Gio window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/gollth/shaman/internal/algo"
	"github.com/gollth/shaman/internal/mapfile"
	"github.com/gollth/shaman/internal/vis"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("shamanvis: ")

	budget := flag.Int("budget", 100000, "max constraint-tree expansions before giving up")
	timeout := flag.Duration("timeout", 30*time.Second, "wall-clock limit for the search")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <map.txt>\n", os.Args[0])
		os.Exit(2)
	}

	inst, err := mapfile.ParseFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	sol, err := algo.NewCBS(*budget).Solve(ctx, inst)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("shaman"),
			app.Size(unit.Dp(900), unit.Dp(900)),
		)

		if err := vis.NewApp(inst, sol).Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
