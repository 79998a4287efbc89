// Command showboard renders a Position to a PNG file for visual
// debugging: a demo driver plays a handful of moves and rasterizes the
// resulting board with grid lines, stones, and coordinate labels. Star
// points are not drawn.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/coords"
)

var (
	boardSize = flag.Int("board_size", 9, "board side length")
	cellPx    = flag.Int("cell_px", 40, "pixels per grid cell")
	out       = flag.String("out", "board.png", "output PNG path")
)

// demoMoves plays a small, fixed opening so the rendered board has
// something on it; showboard is a debugging aid, not a game replayer.
func demoMoves(n int) []board.PlayerMove {
	mid := n / 2
	pts := []coords.Point{
		{Row: mid - 2, Col: mid - 2},
		{Row: mid - 2, Col: mid + 2},
		{Row: mid + 2, Col: mid - 2},
		{Row: mid + 2, Col: mid + 2},
		{Row: mid, Col: mid},
	}
	colors := []board.Color{board.Black, board.White, board.Black, board.White, board.Black}
	moves := make([]board.PlayerMove, len(pts))
	for i, pt := range pts {
		moves[i] = board.PlayerMove{Color: colors[i], Coord: pt}
	}
	return moves
}

func buildPosition(n int, komi float64) *board.Position {
	pos := board.NewPosition(n, komi)
	for _, mv := range demoMoves(n) {
		next, err := pos.PlayMove(mv.Coord, mv.Color)
		if err != nil {
			log.Printf("showboard: skipping illegal demo move %v: %v", mv, err)
			continue
		}
		pos = next
	}
	return pos
}

func main() {
	flag.Parse()
	n := *boardSize
	pos := buildPosition(n, 7.5)

	margin := *cellPx
	size := margin*2 + (*cellPx)*(n-1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{220, 180, 110, 255}}, image.Point{}, draw.Src)

	drawGrid(img, n, margin, *cellPx)
	drawStones(img, pos, n, margin, *cellPx)

	if err := drawLabels(img, n, margin, *cellPx); err != nil {
		log.Printf("showboard: labels skipped: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("showboard: create output file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("showboard: encode png: %v", err)
	}
	log.Printf("wrote %s (%dx%d board, score %.1f)", *out, n, n, pos.Score())
}

func drawGrid(img *image.RGBA, n, margin, cell int) {
	black := color.RGBA{0, 0, 0, 255}
	for i := 0; i < n; i++ {
		x := margin + i*cell
		drawLine(img, x, margin, x, margin+cell*(n-1), black)
		drawLine(img, margin, x, margin+cell*(n-1), x, black)
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	if x0 == x1 {
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		for y := y0; y <= y1; y++ {
			img.Set(x0, y, c)
		}
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		img.Set(x, y0, c)
	}
}

func drawStones(img *image.RGBA, pos *board.Position, n, margin, cell int) {
	radius := cell/2 - 2
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := pos.Cells[row*n+col]
			if c == board.Empty {
				continue
			}
			cx := margin + col*cell
			cy := margin + row*cell
			fill := color.RGBA{20, 20, 20, 255}
			if c == board.White {
				fill = color.RGBA{245, 245, 245, 255}
			}
			drawCircle(img, cx, cy, radius, fill)
		}
	}
}

func drawCircle(img *image.RGBA, cx, cy, radius int, c color.Color) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// drawLabels writes GTP-style column letters and row numbers along the
// board's edges using a scalable font parsed by freetype.
func drawLabels(img *image.RGBA, n, margin, cell int) error {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return err
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(14)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(color.Black))

	for col := 0; col < n; col++ {
		label := string([]byte{"ABCDEFGHJKLMNOPQRSTUVWXYZ"[col]})
		x := margin + col*cell - 4
		pt := freetype.Pt(x, margin/2+5)
		if _, err := c.DrawString(label, pt); err != nil {
			return err
		}
	}
	for row := 0; row < n; row++ {
		label := coords.ToGTP(n, coords.Point{Row: row, Col: 0})[1:]
		y := margin + row*cell + 5
		pt := freetype.Pt(margin/3, y)
		if _, err := c.DrawString(label, pt); err != nil {
			return err
		}
	}
	return nil
}
