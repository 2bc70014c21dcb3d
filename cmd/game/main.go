// cmd/game/main.go
package main

import (
	"flag"
	"os"
	"time"

	"go-stack-defense/internal/app"
	"go-stack-defense/internal/config"
	"go-stack-defense/internal/state"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/basicfont"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settingsPath := flag.String("settings", "", "path to a TOML settings file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "game"})

	settings := config.DefaultSettings()
	if *settingsPath != "" {
		var err error
		if settings, err = config.LoadSettings(*settingsPath); err != nil {
			logger.Fatal("failed to load settings", "err", err)
		}
	}
	logger.SetLevel(settings.Level())
	log.SetDefault(logger)

	level, err := app.NewLevel(settings, logger)
	if err != nil {
		logger.Fatal("failed to create level", "err", err)
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, level, basicfont.Face7x13, logger))
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Stack Grid")
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game loop stopped", "err", err)
	}
}
