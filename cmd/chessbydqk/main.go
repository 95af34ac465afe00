// Command chessbydqk plays chess in the terminal against the AI or another
// human. Finished games are saved for the replay tool.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
	"github.com/DoanQuocKien/ChessByDQK/internal/engine"
	"github.com/DoanQuocKien/ChessByDQK/internal/game"
	"github.com/DoanQuocKien/ChessByDQK/internal/storage"
)

var (
	difficulty = flag.String("difficulty", "medium", "AI difficulty: easy, medium, hard")
	playAs     = flag.String("color", "white", "color to play against the AI: white or black")
	twoPlayer  = flag.Bool("2p", false, "two human players, no AI")
	startFEN   = flag.String("fen", "", "start from a FEN position instead of the initial one")
	hashMB     = flag.Int("hash", 64, "transposition table size in MB")
	noSave     = flag.Bool("no-save", false, "do not save the finished game")
	dbDir      = flag.String("db", "", "database directory (default: platform data dir)")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	g, err := newGame(*startFEN)
	if err != nil {
		log.Fatalf("invalid -fen: %v", err)
	}

	var eng *engine.Engine
	humanColor := board.White
	if !*twoPlayer {
		eng = engine.NewEngine(*hashMB)
		eng.SetDifficulty(engine.ParseDifficulty(*difficulty))
		if strings.EqualFold(*playAs, "black") {
			humanColor = board.Black
		}
	}

	in := bufio.NewScanner(os.Stdin)
	fmt.Println("Type a move like e2e4, or: moves, undo, board, resign, quit")

	for !g.IsOver() {
		fmt.Print(g.Position())

		if eng != nil && g.SideToMove() != humanColor {
			m, score := eng.ChooseMove(context.Background(), g.Position(), g.LegalMoves())
			if m == board.NoMove {
				break
			}
			g.Apply(m, board.Queen)
			fmt.Printf("AI plays %s (score %d)\n", board.Notate(m), score)
			continue
		}

		if !humanTurn(g, in, eng != nil) {
			return
		}
	}

	finish(g, eng, humanColor)
}

func newGame(fen string) (*game.Game, error) {
	if fen == "" {
		return game.New(), nil
	}
	return game.NewFromFEN(fen)
}

// humanTurn prompts for one command. Returns false when the player quits.
func humanTurn(g *game.Game, in *bufio.Scanner, vsAI bool) bool {
	fmt.Printf("%s> ", g.SideToMove())
	if !in.Scan() {
		return false
	}
	cmd := strings.TrimSpace(strings.ToLower(in.Text()))

	switch cmd {
	case "":
		return true
	case "quit", "resign":
		return false
	case "board":
		return true
	case "undo":
		// Against the AI, take back a full move pair so the human is on
		// turn again; between humans, a single ply.
		g.Undo()
		if vsAI {
			g.Undo()
		}
		return true
	case "moves":
		var sb strings.Builder
		for i, m := range g.LegalMoves().Slice() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(m.String())
		}
		fmt.Println(sb.String())
		return true
	}

	if len(cmd) < 4 {
		fmt.Println("unrecognized command")
		return true
	}
	from, err1 := board.ParseSquare(cmd[0:2])
	to, err2 := board.ParseSquare(cmd[2:4])
	if err1 != nil || err2 != nil {
		fmt.Println("unrecognized command")
		return true
	}

	m, ok := g.FindMove(from, to)
	if !ok {
		fmt.Println("illegal move")
		return true
	}

	promotion := board.Queen
	if m.IsPromotion() {
		promotion = askPromotion(in)
	}
	g.Apply(m, promotion)
	return true
}

// askPromotion reads the promotion piece choice, defaulting to a queen.
func askPromotion(in *bufio.Scanner) board.PieceType {
	fmt.Print("promote to (q/r/b/n)? ")
	if !in.Scan() {
		return board.Queen
	}
	switch strings.TrimSpace(strings.ToLower(in.Text())) {
	case "n":
		return board.Knight
	case "b":
		return board.Bishop
	case "r":
		return board.Rook
	default:
		return board.Queen
	}
}

// finish announces the result and saves the game and statistics.
func finish(g *game.Game, eng *engine.Engine, humanColor board.Color) {
	result := g.Result()
	switch result {
	case game.WhiteWins:
		fmt.Println("Checkmate. White wins.")
	case game.BlackWins:
		fmt.Println("Checkmate. Black wins.")
	case game.Drawn:
		fmt.Println("Draw.")
	default:
		return // unfinished, nothing to record
	}

	if *noSave {
		return
	}

	st, err := openStorage()
	if err != nil {
		log.Printf("saving skipped: %v", err)
		return
	}
	defer st.Close()

	diff := ""
	if eng != nil {
		diff = eng.Difficulty().String()
	}
	id, err := st.SaveGame(&storage.Record{
		Result:     result.String(),
		Difficulty: diff,
		Moves:      g.MoveLog(),
		Snapshots:  g.Snapshots(),
	})
	if err != nil {
		log.Printf("saving game: %v", err)
		return
	}
	fmt.Printf("Saved game %s\n", id)

	if eng != nil {
		won := (result == game.WhiteWins && humanColor == board.White) ||
			(result == game.BlackWins && humanColor == board.Black)
		if err := st.RecordResult(won, result == game.Drawn, diff); err != nil {
			log.Printf("updating stats: %v", err)
		}
	}
}

func openStorage() (*storage.Storage, error) {
	if *dbDir != "" {
		return storage.Open(*dbDir)
	}
	return storage.OpenDefault()
}
