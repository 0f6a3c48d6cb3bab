/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"playbar/internal/container"
	"playbar/internal/link"
	"playbar/internal/log"
	"playbar/internal/player"
)

var commands = []string{
	"HELP", "LIST", "STATUS", "PLAY", "PAUSE", "TOGGLE", "CLICK",
	"LOAD", "RESIZE", "SNAP", "OPEN", "QUIT",
}

const helpText = `LIST                 daftar player
STATUS [id]          detail player
PLAY <id>            mulai main (player lain di-pause)
PAUSE [id]           pause satu atau semua player
TOGGLE <id>          play/pause
CLICK <id> <x>       klik canvas di x (seek)
LOAD <id> <path|url> ganti sumber audio
RESIZE <w> [h]       ubah ukuran semua canvas
SNAP <id> <file.png> simpan frame terakhir
OPEN <name|url>      buka link
QUIT                 keluar`

type console struct {
	coord  *player.Coordinator
	page   *container.Page
	opener *link.Opener
	log    *log.Logger
}

func errCode(err error) string {
	switch {
	case errors.Is(err, player.ErrUnknownPlayer):
		return "ERR NOT_FOUND"
	case errors.Is(err, player.ErrNoSource):
		return "ERR NO_SOURCE"
	case errors.Is(err, link.ErrInvalidURL):
		return "ERR INVALID_URL"
	case errors.Is(err, link.ErrBlocked):
		return "ERR BLOCKED"
	default:
		return "ERR INTERNAL"
	}
}

// exec menjalankan satu baris perintah. quit true untuk keluar.
func (c *console) exec(ctx context.Context, line string) (reply string, quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToUpper(parts[0])
	var args []string
	if len(parts) == 2 {
		args = strings.Fields(parts[1])
	}

	switch cmd {
	case "HELP", "?":
		return helpText, false

	case "QUIT", "EXIT":
		return "Bye", true

	case "LIST":
		return renderList(c.coord.Players(), c.coord.Current()), false

	case "STATUS":
		players := c.coord.Players()
		if len(args) == 1 {
			p, err := c.coord.Player(args[0])
			if err != nil {
				return errCode(err), false
			}
			players = []*player.Player{p}
		}
		var out []string
		for _, p := range players {
			out = append(out, renderStatus(p, c.coord.Current(), c.coord.Geometry().Gain()))
		}
		return strings.Join(out, "\n"), false

	case "PLAY", "TOGGLE":
		if len(args) != 1 {
			return "ERR ARG", false
		}
		p, err := c.coord.Player(args[0])
		if err != nil {
			return errCode(err), false
		}
		if cmd == "PLAY" && p.IsPlaying() {
			return "OK", false
		}
		if err := p.TogglePlayback(); err != nil {
			c.log.Warnf("%s %s: %v", cmd, p.ID(), err)
			return errCode(err), false
		}
		return "OK", false

	case "PAUSE":
		if len(args) == 0 {
			for _, p := range c.coord.Players() {
				p.Pause()
			}
			return "OK", false
		}
		p, err := c.coord.Player(args[0])
		if err != nil {
			return errCode(err), false
		}
		p.Pause()
		return "OK", false

	case "CLICK":
		if len(args) != 2 {
			return "ERR ARG", false
		}
		p, err := c.coord.Player(args[0])
		if err != nil {
			return errCode(err), false
		}
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "ERR ARG", false
		}
		if err := p.HandleClick(x); err != nil {
			return errCode(err), false
		}
		return "OK", false

	case "LOAD":
		// path boleh mengandung spasi
		rest := strings.SplitN(strings.TrimSpace(parts[len(parts)-1]), " ", 2)
		if len(parts) != 2 || len(rest) != 2 {
			return "ERR ARG", false
		}
		p, err := c.coord.Player(rest[0])
		if err != nil {
			return errCode(err), false
		}
		src := strings.TrimSpace(rest[1])
		if !strings.Contains(src, "://") {
			if _, err := os.Stat(src); err != nil {
				return "ERR FILE_NOT_FOUND", false
			}
		}
		p.SetSource(src)
		return "Loading", false

	case "RESIZE":
		if len(args) < 1 || len(args) > 2 {
			return "ERR ARG", false
		}
		w, err := strconv.Atoi(args[0])
		if err != nil || w <= 0 {
			return "ERR ARG", false
		}
		h := 0
		if len(args) == 2 {
			if h, err = strconv.Atoi(args[1]); err != nil || h <= 0 {
				return "ERR ARG", false
			}
		}
		c.coord.Resize(w, h)
		return "OK", false

	case "SNAP":
		if len(args) != 2 {
			return "ERR ARG", false
		}
		p, err := c.coord.Player(args[0])
		if err != nil {
			return errCode(err), false
		}
		if err := snapshot(p, args[1]); err != nil {
			c.log.Errorf("snap %s: %v", p.ID(), err)
			return "ERR WRITE", false
		}
		return "Saved " + args[1], false

	case "OPEN":
		if len(args) != 1 {
			return "ERR ARG", false
		}
		target := args[0]
		if u, ok := c.page.Links[target]; ok {
			target = u
		}
		if err := c.opener.Open(ctx, target); err != nil {
			return errCode(err), false
		}
		return "OK", false
	}
	return "ERR UNKNOWN", false
}

func snapshot(p *player.Player, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.Surface().WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
