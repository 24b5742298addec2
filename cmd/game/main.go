package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/game"
	"github.com/tomz197/survivors/internal/loop"
	"github.com/tomz197/survivors/internal/storage"
	"golang.org/x/term"
)

const defaultSaveFile = "survivors.json"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "survivors",
	})

	tuning, err := config.LoadTuning(config.GetEnv("ARENA_TUNING", ""))
	if err != nil {
		logger.Warn("using default tuning", "err", err)
	}

	g, err := game.New(game.Options{
		Tuning: tuning,
		Store:  storage.NewFileStore(config.GetEnv("ARENA_SAVE_FILE", defaultSaveFile)),
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, g, loop.Options{Logger: logger})

	stop()
	_ = term.Restore(fd, oldState)
	if err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
