package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilephysics/prefabs"
)

func main() {
	levelName := flag.String("level", "sandbox", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "start with the physics overlay enabled")
	prefabDir := flag.String("prefabs", prefabs.DiskDir(), "directory checked for edited prefabs and scripts")
	watch := flag.Bool("watch", true, "reload physics.yaml and scripts when they change")
	verbose := flag.Bool("v", false, "log debug messages")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sandbox", ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)

	prefabs.SetDiskDir(*prefabDir)

	game, err := NewGame(Options{
		Level: *levelName,
		Debug: *debug,
		Watch: *watch,
	})
	if err != nil {
		log.Fatal("failed to start sandbox", "err", err)
	}
	defer game.Close()

	width, height := game.Size()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(width*2, height*2)
	ebiten.SetWindowTitle("tilephysics sandbox")
	ebiten.SetTPS(game.TPS())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal("sandbox exited", "err", err)
	}
}
