// Command selfplay runs complete Tac rounds with a searching agent in
// every seat and reports the outcomes.
package main

import (
	"flag"
	"fmt"

	"golang.org/x/exp/rand"

	tacmcts "github.com/alphabeth/tacmcts"
	"github.com/alphabeth/tacmcts/tac"
)

var (
	rounds   = flag.Int("rounds", 1, "number of rounds to play")
	playouts = flag.Int64("playouts", 5000, "per-move playout budget")
	threads  = flag.Int("threads", 4, "worker goroutines per search")
	seed     = flag.Uint64("seed", 1, "deal seed for the first round")
	verbose  = flag.Bool("v", false, "dump the arena log after each round")
)

func main() {
	flag.Parse()

	conf := tacmcts.DefaultConfig()
	conf.Playouts = *playouts
	conf.Threads = *threads

	var wins [4]int
	var unfinished int
	for round := 0; round < *rounds; round++ {
		r := rand.New(rand.NewSource(*seed + uint64(round)))
		arena := tacmcts.NewArena(tac.NewBoard(r), conf)
		winner, ok, err := arena.Play()
		if err != nil {
			panic(err)
		}
		if ok {
			wins[winner]++
			fmt.Printf("round %d: %v partnership wins\n", round, winner)
		} else {
			unfinished++
			fmt.Printf("round %d: no winner\n", round)
		}
		if *verbose {
			fmt.Print(arena.Log())
		}
	}
	fmt.Printf("Black/Green %d, Blue/Red %d, unfinished %d\n",
		wins[tac.Black]+wins[tac.Green], wins[tac.Blue]+wins[tac.Red], unfinished)
}
