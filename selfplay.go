package kigo

import (
	"fmt"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/features"
)

// GameResult reports how a game ended: by resignation, or by the final
// Tromp-Taylor score after two passes or the depth cap.
type GameResult struct {
	Score      float64
	WasResign  bool
	ResignedBy Color
	Winner     Color // Empty means a draw
}

// String renders the SGF-style result string: "B+R"/"W+R" for a
// resignation, "B+x.x"/"W+x.x" for a scored win, "0" for a draw.
func (r GameResult) String() string {
	if r.WasResign {
		if r.Winner == board.Black {
			return "B+R"
		}
		return "W+R"
	}
	if r.Winner == board.Empty {
		return "0"
	}
	margin := r.Score
	if margin < 0 {
		margin = -margin
	}
	if r.Winner == board.Black {
		return fmt.Sprintf("B+%.1f", margin)
	}
	return fmt.Sprintf("W+%.1f", margin)
}

// PlayGame runs one game to termination: inject noise, search, check
// resignation, pick a move, commit it, and repeat. It returns the game's
// training examples (with z already filled in) and its result.
func PlayGame(p *Player) ([]Example, GameResult, error) {
	var examples []Example

	for !p.IsDone() {
		p.tree.InjectNoise()
		if err := p.tree.Search(p.conf.ReadoutsPerMove); err != nil {
			return nil, GameResult{}, err
		}

		root := p.tree.Root()
		toPlaySign := root.Position.ToPlay.Sign()
		q := root.Q()

		if !p.resignDisabled && toPlaySign*q < p.conf.ResignThreshold {
			resigner := root.Position.ToPlay
			result := GameResult{
				WasResign:  true,
				ResignedBy: resigner,
				Winner:     resigner.Opponent(),
			}
			finalizeResult(examples, result.Winner.Sign())
			p.examples = examples
			p.logger.Printf("ply %d: %v resigns (Q=%.3f)", root.Position.Ply, resigner, q)
			return examples, result, nil
		}

		temperatureHigh := root.Position.Ply <= p.conf.TemperatureCutoff()
		move := p.tree.SelectMove(temperatureHigh)
		pi := p.tree.ChildrenAsPi(temperatureHigh)

		tensor, _ := features.ExtractFeatures(root.Position)
		examples = append(examples, Example{
			Board:      features.ToFloat32(tensor),
			Policy:     pi,
			toPlaySign: toPlaySign,
		})
		p.moves = append(p.moves, moveRecord{color: root.Position.ToPlay, move: move, q: q})
		p.logger.Printf("ply %d: %v plays %d (Q=%.3f)", root.Position.Ply, root.Position.ToPlay, move, q)

		p.tree.AdvanceRoot(move)
	}

	final := p.Position()
	score := final.Score()
	result := GameResult{Score: score}
	switch {
	case score > 0:
		result.Winner = board.Black
	case score < 0:
		result.Winner = board.White
	}

	finalizeResult(examples, result.Winner.Sign())
	p.examples = examples
	return examples, result, nil
}
