// Chess Tutor - a chess game against a teaching engine, built with Ebitengine
package main

import (
	"flag"
	"log"

	"github.com/hailam/chesstutor/internal/storage"
	"github.com/hailam/chesstutor/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	dbDir := flag.String("db", "", "database directory (default: per-user data dir)")
	resume := flag.String("resume", "", "saved game id to continue")
	seed := flag.Uint64("seed", 0, "engine random seed (0 = random)")
	flag.Parse()

	var (
		store *storage.Storage
		err   error
	)
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Printf("Warning: running without storage: %v", err)
		store = nil
	}

	app, err := ui.NewApp(ui.Config{Storage: store, Resume: *resume, Seed: *seed})
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Chess Tutor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		log.Print(err)
	}
}
