package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Questionxble/2dgameproject-sub002/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug drawing and logging")
	levelName := flag.String("level", "", "arena prefab in prefabs/ (basename, .yaml optional)")
	record := flag.String("record", "", "write a msgpack combat log to this file")
	all := flag.Bool("all", false, "start with two shards equipped")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("shards")
	ebiten.SetTPS(ebiten.DefaultTPS)

	game, err := NewGame(Options{
		Debug:  *debug,
		Level:  *levelName,
		Record: *record,
		All:    *all,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
