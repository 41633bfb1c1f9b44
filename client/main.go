package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/undeconstructed/reversi/config"
	"github.com/undeconstructed/reversi/game"
	"github.com/undeconstructed/reversi/session"
	"github.com/undeconstructed/reversi/web"

	rl "github.com/chzyer/readline"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = run(ctx, cfg)
	log.Info().Err(err).Msg("client return")
	if err != nil {
		os.Exit(1)
	}
}

// run plays the game, and serves the web view beside it if asked to. The view
// stops when the game does.
func run(ctx context.Context, cfg *config.Config) error {
	box := web.NewBox()
	defer box.Close()

	grp, gctx := errgroup.WithContext(ctx)
	playCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if cfg.WebAddr != "" {
		grp.Go(func() error {
			return web.Run(playCtx, cfg.WebAddr, box)
		})
	}

	grp.Go(func() error {
		defer cancel()
		return play(playCtx, cfg, box)
	})

	return grp.Wait()
}

func play(ctx context.Context, cfg *config.Config, box *web.Box) error {
	l, err := rl.NewEx(&rl.Config{
		Prompt:            "» ",
		HistoryFile:       cfg.History,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	r := newRepl(l, l.Stdout(), box)

	switch cfg.Mode {
	case config.ModeHost:
		fmt.Fprintf(r.out, "waiting for a guest on %s:%d\n", cfg.Address, cfg.Port)
		s, err := session.HostSession(ctx, cfg.Address, cfg.Port, cfg.Size)
		if err != nil {
			return err
		}
		defer s.Close()
		return r.network(ctx, s)
	case config.ModeJoin:
		s, err := session.ConnectSession(ctx, cfg.Address, cfg.Port, cfg.Size)
		if err != nil {
			return err
		}
		defer s.Close()
		return r.network(ctx, s)
	default:
		g, err := game.NewGameState(cfg.Size)
		if err != nil {
			return err
		}
		return r.local(ctx, g)
	}
}
