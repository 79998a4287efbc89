// Package kigo orchestrates one self-play game: it owns the board
// position, the MCTS tree searching it, and the network driving the
// search, and emits the move sequence, SGF record, and training examples
// that result.
package kigo

import (
	"bytes"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/mcts"
	"github.com/gokigo/kigo/network"
)

// moveRecord is one committed ply's move and the root Q at the moment it
// was chosen, kept for SGF comments.
type moveRecord struct {
	color Color
	move  int
	q     float32
}

// Color mirrors board.Color at the Player level so SGF and result
// plumbing don't need to import board just to report a winner.
type Color = board.Color

// Player runs one game: it wraps an Inferencer, the MCTS tree currently
// searching the game's position, and the bookkeeping needed to emit SGF
// and training examples once the game ends.
type Player struct {
	conf Config
	nn   network.Inferencer
	tree *mcts.Tree

	rand *rand.Rand

	buf    bytes.Buffer
	logger *log.Logger

	resignDisabled bool

	moves    []moveRecord
	examples []Example

	closers []io.Closer
}

// NewPlayer constructs a Player ready to play one game from start. If nn
// also implements io.Closer, Close releases it along with any extra
// closers supplied (mirroring a pool of per-readout inference handles).
func NewPlayer(conf Config, nn network.Inferencer, extraClosers ...io.Closer) *Player {
	p := &Player{
		conf:    conf,
		nn:      nn,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		closers: extraClosers,
	}
	p.logger = log.New(&p.buf, "", log.Ltime)
	if c, ok := nn.(io.Closer); ok {
		p.closers = append(p.closers, c)
	}
	p.resignDisabled = p.rand.Float64() < conf.ResignDisableProb
	return p
}

// InitializeGame roots the player's tree at start (or a fresh empty
// position if start is nil) and pre-evaluates it once so the selection
// rule has priors before the first descent.
func (p *Player) InitializeGame(start *board.Position) error {
	if start == nil {
		start = board.NewPosition(p.conf.BoardSize, p.conf.Komi)
	}
	p.tree = mcts.New(start, p.nn, p.conf.MCTSConf)
	p.logger.Printf("initialized game on %dx%d, komi %.1f, resign disabled %v", p.conf.BoardSize, p.conf.BoardSize, p.conf.Komi, p.resignDisabled)
	return p.tree.ExpandRoot()
}

// Root returns the node the tree is currently rooted at.
func (p *Player) Root() *mcts.Node { return p.tree.Root() }

// Position returns the position at the current root.
func (p *Player) Position() *board.Position { return p.tree.Root().Position }

// IsDone reports whether the game has ended by two passes or by hitting
// the configured maximum ply count.
func (p *Player) IsDone() bool {
	pos := p.Position()
	return pos.IsGameOver() || pos.Ply >= p.conf.MaxGameLength()
}

// Close releases any pooled inference handles, aggregating failures.
func (p *Player) Close() error {
	var errs error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if errs != nil {
		return errs
	}
	return nil
}

// Log returns the player's accumulated diagnostic log.
func (p *Player) Log() string { return p.buf.String() }

// ExtractData returns the training examples recorded by the most recently
// completed PlayGame call.
func (p *Player) ExtractData() []Example { return p.examples }

// ToSGF renders the just-played game as an SGF record.
func (p *Player) ToSGF(result GameResult, blackName, whiteName string) string {
	return ToSGF(p, result, blackName, whiteName)
}
