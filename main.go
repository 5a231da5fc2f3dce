package main

import (
	"log"

	"knightfall/internal/config"
	"knightfall/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
)

const configPath = "config.yaml"

func main() {
	// Load configuration
	cfg := config.MustLoadConfig(configPath)

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TPS)

	g, err := game.NewGame(cfg, configPath)
	if err != nil {
		log.Fatal(err)
	}
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}
