/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"playbar/internal/player"
)

var (
	colorBorder  = lipgloss.ANSIColor(8)
	colorTitle   = lipgloss.ANSIColor(9)
	colorText    = lipgloss.ANSIColor(7)
	colorDim     = lipgloss.ANSIColor(8)
	colorPlaying = lipgloss.ANSIColor(10)
	colorWave    = lipgloss.ANSIColor(1)
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle   = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	textStyle    = lipgloss.NewStyle().Foreground(colorText)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	playingStyle = lipgloss.NewStyle().Foreground(colorPlaying).Bold(true)
	playedStyle  = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(15))
	waveStyle    = lipgloss.NewStyle().Foreground(colorWave)
)

const miniWaveWidth = 60

var blocks = []rune("▁▂▃▄▅▆▇█")

func stateLabel(s player.State) string {
	if s == player.Playing {
		return playingStyle.Render(s.String())
	}
	return dimStyle.Render(s.String())
}

// miniWave ringkasan waveform statis dalam satu baris karakter blok.
func miniWave(static []float64, current, duration, gain float64) string {
	if len(static) == 0 {
		return dimStyle.Render(strings.Repeat("·", miniWaveWidth))
	}
	played := 0
	if duration > 0 && !math.IsNaN(duration) {
		played = int(current / duration * miniWaveWidth)
	}

	var head, tail strings.Builder
	for col := 0; col < miniWaveWidth; col++ {
		from := col * len(static) / miniWaveWidth
		to := (col + 1) * len(static) / miniWaveWidth
		if to <= from {
			to = from + 1
		}
		var peak float64
		for _, v := range static[from:min(to, len(static))] {
			peak = math.Max(peak, v)
		}
		idx := int(math.Min(peak/255*gain, 1) * float64(len(blocks)-1))
		if col < played {
			head.WriteRune(blocks[idx])
		} else {
			tail.WriteRune(blocks[idx])
		}
	}
	return playedStyle.Render(head.String()) + waveStyle.Render(tail.String())
}

func renderStatus(p *player.Player, current string, gain float64) string {
	cur, dur := p.Position()
	marker := " "
	if p.ID() == current {
		marker = "*"
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s %s", marker, p.Title())) + dimStyle.Render(" ("+p.ID()+")"),
		textStyle.Render("state   : ") + stateLabel(p.State()),
		textStyle.Render(fmt.Sprintf("time    : %s / %s", player.FormatTime(cur), formatDuration(dur))),
		textStyle.Render(fmt.Sprintf("source  : %s", orDash(p.Source()))),
		textStyle.Render(fmt.Sprintf("layout  : %s", p.Layout())),
	}
	if p.State() == player.Loading {
		lines = append(lines, textStyle.Render(fmt.Sprintf("loading : %3.0f%%", p.Progress()*100)))
	}
	if msg := p.ErrorText(); msg != "" {
		lines = append(lines, titleStyle.Render(msg))
	}
	lines = append(lines, miniWave(p.Static(), cur, dur, gain))
	return frameStyle.Render(strings.Join(lines, "\n"))
}

func renderList(players []*player.Player, current string) string {
	var rows []string
	for _, p := range players {
		cur, dur := p.Position()
		marker := " "
		if p.ID() == current {
			marker = "*"
		}
		rows = append(rows, fmt.Sprintf("%s %-10s %-9s %5s/%-5s %s",
			marker, p.ID(), stateLabel(p.State()),
			player.FormatTime(cur), formatDuration(dur), p.Title()))
	}
	if len(rows) == 0 {
		return dimStyle.Render("NO PLAYER")
	}
	return frameStyle.Render(strings.Join(rows, "\n"))
}

func formatDuration(d float64) string {
	if math.IsNaN(d) {
		return "-:--"
	}
	return player.FormatTime(d)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
