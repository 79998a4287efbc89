package kigo

import (
	"fmt"
	"strings"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/coords"
)

// ToSGF renders the game p just played as an SGF record: a root node
// header naming the board size, komi, players, and result, followed by
// one move node per committed ply with a C[Q] comment carrying the root
// Q at the moment that move was chosen.
func ToSGF(p *Player, result GameResult, blackName, whiteName string) string {
	var b strings.Builder
	n := p.conf.BoardSize

	fmt.Fprintf(&b, "(;GM[1]FF[4]SZ[%d]KM[%.1f]PB[%s]PW[%s]RE[%s]\n", n, p.conf.Komi, blackName, whiteName, result.String())

	for _, m := range p.moves {
		pt := coords.Unflatten(n, m.move)
		tag := "B"
		if m.color == board.White {
			tag = "W"
		}
		fmt.Fprintf(&b, ";%s[%s]C[%.3f]\n", tag, coords.ToSGF(pt), m.q)
	}
	b.WriteString(")\n")
	return b.String()
}
