// Command bench runs a fixed-budget search from a freshly dealt Tac
// board and reports root edge statistics, the principal variation, and
// engine counters.
package main

import (
	"flag"
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/rand"

	tacmcts "github.com/alphabeth/tacmcts"
	"github.com/alphabeth/tacmcts/tac"
)

var (
	playouts    = flag.Int64("playouts", 100000, "playout budget for the search")
	threads     = flag.Int("threads", 8, "worker goroutines sharing the tree")
	seed        = flag.Uint64("seed", 1, "deal and policy seed")
	exploration = flag.Float64("c", 1.0, "UCT exploration constant")
	virtualLoss = flag.Int64("virtual_loss", 50, "virtual loss applied during descent")
	pvLen       = flag.Int("pv", 10, "principal variation length to print")
)

func main() {
	flag.Parse()

	conf := tacmcts.DefaultConfig()
	conf.Playouts = *playouts
	conf.Threads = *threads
	conf.MCTS.ExplorationC = float32(*exploration)
	conf.MCTS.VirtualLoss = *virtualLoss
	conf.MCTS.Seed = *seed

	board := tac.NewBoard(rand.New(rand.NewSource(*seed)))
	fmt.Println(board)
	agent, err := tacmcts.NewAgent(board, board.CurrentPlayer(), conf)
	if err != nil {
		panic(err)
	}

	start := time.Now()
	agent.Manager.PlayoutN(conf.Playouts, conf.Threads)
	elapsed := time.Since(start)

	stats := agent.Manager.EdgeStats()
	sort.Slice(stats, func(i, j int) bool { return stats[i].Visits > stats[j].Visits })
	fmt.Printf("%d playouts in %v (%.0f/s), %d nodes, %d contention events\n",
		conf.Playouts, elapsed, float64(conf.Playouts)/elapsed.Seconds(),
		agent.Manager.NumNodes(), agent.Manager.ContentionEvents())
	for _, s := range stats {
		mv := s.Move.(tac.TacMove)
		fmt.Printf("%-14v visits=%-8d avail=%-8d sum=%-10d mean=%8.2f explore=%6.3f\n",
			fmt.Sprintf("%v/%v", mv.Card, mv.Action.Kind), s.Visits, s.Availability,
			s.SumEvaluations, s.Mean, s.Exploration)
	}

	fmt.Println("principal variation:")
	for i, mv := range agent.Manager.PV(*pvLen) {
		tm := mv.(tac.TacMove)
		fmt.Printf("  %2d. %v %v\n", i+1, tm.Card, tm.Action.Kind)
	}
}
