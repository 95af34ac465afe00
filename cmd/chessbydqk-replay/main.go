// Command chessbydqk-replay inspects saved games: list them, print their
// moves and positions, export board images, or delete them. It works purely
// from the stored move list and snapshots, no legality logic involved.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
	"github.com/DoanQuocKien/ChessByDQK/internal/render"
	"github.com/DoanQuocKien/ChessByDQK/internal/storage"
)

var (
	dbDir      = flag.String("db", "", "database directory (default: platform data dir)")
	exportDir  = flag.String("dir", "replay", "output directory for export")
	squareSize = flag.Int("square", 60, "square size in pixels for export")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <command> [id]

Commands:
  list          list saved games
  show <id>     print the moves and final position of a game
  export <id>   write a PNG per move into the export directory
  delete <id>   remove a saved game
  stats         print game statistics
`, filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	st, err := openStorage()
	if err != nil {
		log.Fatalf("opening storage: %v", err)
	}
	defer st.Close()

	cmd, id := flag.Arg(0), flag.Arg(1)
	switch cmd {
	case "list":
		err = list(st)
	case "show":
		err = show(st, id)
	case "export":
		err = export(st, id)
	case "delete":
		err = st.DeleteGame(id)
	case "stats":
		err = stats(st)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func openStorage() (*storage.Storage, error) {
	if *dbDir != "" {
		return storage.Open(*dbDir)
	}
	return storage.OpenDefault()
}

func list(st *storage.Storage) error {
	recs, err := st.ListGames()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no saved games")
		return nil
	}
	for _, r := range recs {
		fmt.Printf("%s  %s  %7s  %3d moves\n",
			r.ID, r.PlayedAt.Local().Format("2006-01-02 15:04"), r.Result, len(r.Moves))
	}
	return nil
}

func show(st *storage.Storage, id string) error {
	rec, err := st.LoadGame(id)
	if err != nil {
		return err
	}

	for i, m := range rec.Moves {
		if i%2 == 0 {
			fmt.Printf("%d. %s", i/2+1, m)
		} else {
			fmt.Printf("  %s\n", m)
		}
	}
	if len(rec.Moves)%2 == 1 {
		fmt.Println()
	}
	fmt.Printf("Result: %s\n", rec.Result)

	if len(rec.Snapshots) > 0 {
		pos, err := board.ParseFEN(rec.Snapshots[len(rec.Snapshots)-1])
		if err != nil {
			return fmt.Errorf("corrupt snapshot: %w", err)
		}
		fmt.Print(pos)
	}
	return nil
}

// export writes one PNG per snapshot, numbered by ply.
func export(st *storage.Storage, id string) error {
	rec, err := st.LoadGame(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*exportDir, 0755); err != nil {
		return err
	}

	r, err := render.New(*squareSize)
	if err != nil {
		return err
	}

	for i, fen := range rec.Snapshots {
		pos, err := board.ParseFEN(fen)
		if err != nil {
			return fmt.Errorf("corrupt snapshot %d: %w", i+1, err)
		}
		path := filepath.Join(*exportDir, fmt.Sprintf("%s-%03d.png", id, i+1))
		if err := r.WritePNG(pos, path); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %d images to %s\n", len(rec.Snapshots), *exportDir)
	return nil
}

func stats(st *storage.Storage) error {
	s, err := st.LoadStats()
	if err != nil {
		return err
	}
	fmt.Printf("Games played: %d\n", s.GamesPlayed)
	fmt.Printf("Wins: %d  Losses: %d  Draws: %d\n", s.Wins, s.Losses, s.Draws)
	fmt.Printf("Current streak: %d  Longest: %d\n", s.CurrentStreak, s.LongestStreak)
	for diff, n := range s.WinsByDiff {
		fmt.Printf("  wins on %s: %d\n", diff, n)
	}
	return nil
}
