// Command selfplay runs one self-play game end to end against a
// pluggable network, printing the resulting SGF record to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	kigo "github.com/gokigo/kigo"
	"github.com/gokigo/kigo/network"
)

var (
	boardSize = flag.Int("board_size", 9, "board side length")
	komi      = flag.Float64("komi", 7.5, "komi added to white's score")
	readouts  = flag.Int("readouts", 400, "MCTS readouts per move")
	sgfOut    = flag.String("sgf_out", "", "path to write the game's SGF record to (stdout if empty)")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime)

	conf := kigo.DefaultConfig(*boardSize)
	conf.Komi = *komi
	conf.ReadoutsPerMove = *readouts
	if !conf.IsValid() {
		log.Fatal("selfplay: invalid configuration")
	}

	// MockInferencer stands in for a trained network: this command
	// demonstrates the driver loop end to end without depending on any
	// concrete model implementation, which is an external collaborator.
	nn := network.MockInferencer{Value: 0}

	p := kigo.NewPlayer(conf, nn)
	defer p.Close()

	if err := p.InitializeGame(nil); err != nil {
		log.Fatalf("selfplay: initialize game: %v", err)
	}

	examples, result, err := kigo.PlayGame(p)
	if err != nil {
		log.Fatalf("selfplay: play game: %v", err)
	}
	log.Printf("game over: %s, %d training examples recorded", result, len(examples))

	sgf := p.ToSGF(result, "kigo-black", "kigo-white")

	out := os.Stdout
	if *sgfOut != "" {
		f, err := os.Create(*sgfOut)
		if err != nil {
			log.Fatalf("selfplay: create sgf file: %v", err)
		}
		defer f.Close()
		out = f
	}
	fmt.Fprint(out, sgf)
}
