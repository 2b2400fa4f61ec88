// Command play runs a hot-seat game of Connect Four in the terminal.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/render"
)

func main() {
	_ = godotenv.Load()

	var opts []termenv.OutputOption
	if os.Getenv("NO_COLOR") != "" {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	r := render.NewTerminalRenderer(os.Stdout, render.DefaultPalette, opts...)

	if err := play(os.Stdin, os.Stdout, r, domain.NewGame(), terminalDrop(os.Stdout, r)); err != nil {
		log.Fatalf("[PLAY] %v", err)
	}
}

// dropFunc shows player's disk falling into (row, col) before it is placed.
type dropFunc func(g *domain.Game, row, col int, player domain.PlayerID)

// terminalDrop replays the drop animation, redrawing the board each frame.
func terminalDrop(w io.Writer, r *render.TerminalRenderer) dropFunc {
	screen := termenv.NewOutput(w)
	layout := render.DefaultLayout()

	return func(g *domain.Game, row, col int, player domain.PlayerID) {
		render.NewDropAnimation(layout, row, col).Run(func(y float64) {
			board := domain.CopyBoard(g.Board)
			if at := layout.RowAt(y); at > row && at < domain.Rows {
				board[at][col] = player
			}
			screen.ClearScreen()
			fmt.Fprint(w, r.Board(board, nil))
		}, nil)
	}
}

// play reads one command per line until q or EOF.
// 1-7 drops into that column, r starts over. drop may be nil.
func play(in io.Reader, out io.Writer, r *render.TerminalRenderer, g *domain.Game, drop dropFunc) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, r.Render(g))
	prompt(out, g)

	for scanner.Scan() {
		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch cmd {
		case "":
			prompt(out, g)
			continue
		case "q", "quit":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "r", "restart":
			g.Reset()
		default:
			col, err := strconv.Atoi(cmd)
			if err != nil || col < 1 || col > domain.Columns {
				fmt.Fprintf(out, "Enter a column 1-%d, r to restart or q to quit.\n", domain.Columns)
				prompt(out, g)
				continue
			}
			if drop != nil && g.CanDrop(col-1) {
				row, _ := domain.LowestOpenRow(g.Board, col-1)
				drop(g, row, col-1, g.CurrentPlayer)
			}
			if _, err := g.MakeMove(g.CurrentPlayer, col-1); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				prompt(out, g)
				continue
			}
		}

		fmt.Fprint(out, r.Render(g))
		prompt(out, g)
	}

	return scanner.Err()
}

func prompt(out io.Writer, g *domain.Game) {
	if g.IsFinished() {
		fmt.Fprint(out, "r to play again, q to quit> ")
		return
	}
	fmt.Fprint(out, "> ")
}
