/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"playbar/internal/codec"
	"playbar/internal/log"
	"playbar/pkg/audioengine"
	"playbar/pkg/spec"
)

type options struct {
	in, out  string
	width    int
	height   int
	bars     int
	color    string
	progress float64
	mode     string
}

func main() {
	var opt options
	flag.StringVar(&opt.in, "in", "", "Audio sumber (path atau URL, WAV/MP3)")
	flag.StringVar(&opt.out, "out", "", "Output PNG (default: <in>.png)")
	flag.IntVar(&opt.width, "width", 1060, "Lebar tampilan canvas")
	flag.IntVar(&opt.height, "height", 100, "Tinggi canvas")
	flag.IntVar(&opt.bars, "bars", spec.BarCount, "Jumlah bar")
	flag.StringVar(&opt.color, "color", spec.BarColor, "Warna bar (#hex atau rgba())")
	flag.Float64Var(&opt.progress, "progress", 0, "Posisi playhead 0..1")
	flag.StringVar(&opt.mode, "mode", "waveform", "waveform | spectrogram")
	flag.Parse()

	logger := log.FromEnv("info")

	if opt.in == "" {
		fmt.Println("Usage: playbar-render -in <audio> [-out file.png]")
		os.Exit(1)
	}
	if opt.out == "" {
		opt.out = strings.TrimSuffix(filepath.Base(opt.in), filepath.Ext(opt.in)) + ".png"
	}

	if err := render(context.Background(), opt, logger); err != nil {
		logger.Errorf("render: %v", err)
		os.Exit(1)
	}
	logger.Infof("waveform ditulis ke %s", opt.out)
}

func render(ctx context.Context, opt options, logger *log.Logger) error {
	g := codec.DefaultGeometry()
	if opt.bars > 0 {
		g.BarCount = opt.bars
	}
	c, err := codec.ParseColor(opt.color)
	if err != nil {
		return err
	}
	g.BarColor = c

	data, err := audioengine.Fetch(ctx, opt.in)
	if err != nil {
		return err
	}
	pcm, err := audioengine.DecodeMono(data, opt.in)
	if err != nil {
		return err
	}
	logger.Debugf("decode: %d sampel, %.1f detik", len(pcm.Samples), pcm.Duration())

	s := codec.NewSurface(opt.width, opt.height, spec.CanvasInset)
	switch opt.mode {
	case "spectrogram":
		s.Draw(func(img *image.RGBA) {
			codec.Clear(img)
			codec.Spectrogram(img, pcm.Samples, spec.FFTSize, g.BarColor, g.ProgressColor)
		})
		return writePNG(s, opt.out)
	case "", "waveform":
	default:
		return fmt.Errorf("mode tidak dikenal: %s", opt.mode)
	}

	static := audioengine.Summarize(pcm.Samples, g.BarCount, func(f float64) {
		logger.Debugf("analisa %3.0f%%", f*100)
	})
	s.Draw(func(img *image.RGBA) {
		b := img.Bounds()
		f := codec.Frame{
			Width:       float64(b.Dx()),
			Height:      float64(b.Dy()),
			CurrentTime: audioengine.Clamp(opt.progress, 0, 1) * pcm.Duration(),
			Duration:    pcm.Duration(),
		}
		codec.Clear(img)
		codec.Paint(img, g.StaticBars(static, f), g, f.Height)
	})
	return writePNG(s, opt.out)
}

func writePNG(s *codec.Surface, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WritePNG(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
