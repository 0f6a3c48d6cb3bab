/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	"playbar/internal/container"
	"playbar/internal/link"
	"playbar/internal/log"
	"playbar/internal/player"
	"playbar/pkg/spec"
)

func main() {
	pagePtr := flag.String("page", container.PathFromEnv(""), "Page JSON (kosong = halaman bawaan)")
	logPtr := flag.String("log", "", "Log level: debug|info|warn|error|none")
	embeddedPtr := flag.Bool("embedded", false, "Jalan di dalam host (openLink ke stdout)")
	hostPtr := flag.Bool("host", false, "Mode host: terima openLink dari stdin")
	flag.Parse()

	logger := log.FromEnv("info")
	if *logPtr != "" {
		logger = log.New(os.Stderr, log.LevelFromString(*logPtr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *hostPtr {
		logger.Infof("host mode, menunggu pesan %s", spec.OpenLinkMessage)
		err := link.NewListener(link.SystemNavigator{}, logger).Serve(ctx, os.Stdin)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("listener: %v", err)
			os.Exit(1)
		}
		return
	}

	pg := container.Default()
	if *pagePtr != "" {
		var err error
		if pg, err = container.Load(*pagePtr); err != nil {
			logger.Errorf("page: %v", err)
			os.Exit(1)
		}
	}

	coord, err := player.FromPage(pg, player.Options{Log: logger})
	if err != nil {
		logger.Errorf("init: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := coord.Close(); err != nil {
			logger.Warnf("close: %v", err)
		}
	}()

	var parent link.Poster
	if pg.Embedded || *embeddedPtr {
		parent = link.NewWriterPoster(os.Stdout)
	}
	con := &console{
		coord:  coord,
		page:   pg,
		opener: link.NewOpener(link.SystemNavigator{}, parent, logger),
		log:    logger,
	}

	fmt.Printf("PLAYBAR v%s | %s | %d player\n", spec.Version, orDash(pg.Title), len(coord.Players()))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "playbar> ",
		AutoComplete: completer(coord, pg),
	})
	if err != nil {
		logger.Errorf("readline: %v", err)
		os.Exit(1)
	}
	defer rl.Close()

	for ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Errorf("readline: %v", err)
			break
		}

		reply, quit := con.exec(ctx, line)
		if reply != "" {
			fmt.Println(reply)
		}
		if quit {
			break
		}
	}
}

// completer melengkapi verb lalu id player atau nama link.
func completer(coord *player.Coordinator, pg *container.Page) *readline.PrefixCompleter {
	ids := func(string) []string {
		var out []string
		for _, p := range coord.Players() {
			out = append(out, p.ID())
		}
		return out
	}
	links := func(string) []string {
		var out []string
		for name := range pg.Links {
			out = append(out, name)
		}
		return out
	}

	var items []readline.PrefixCompleterInterface
	for _, cmd := range commands {
		lower := strings.ToLower(cmd)
		switch cmd {
		case "STATUS", "PLAY", "PAUSE", "TOGGLE", "CLICK", "LOAD", "SNAP":
			items = append(items, readline.PcItem(lower, readline.PcItemDynamic(ids)))
		case "OPEN":
			items = append(items, readline.PcItem(lower, readline.PcItemDynamic(links)))
		default:
			items = append(items, readline.PcItem(lower))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
