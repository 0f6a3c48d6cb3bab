/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package spec

import "time"

const (
	// === IDENTITY & VERSIONING ===
	Version = "1.0.0"

	// === AUDIO ENGINE SPECS ===
	SampleRate        = 44100 // rate speaker bersama
	SpeakerBuffer     = 100 * time.Millisecond
	FFTSize           = 1024 // ukuran transform analyser (bin = FFTSize/2)
	SmoothingConstant = 0.8
	MinDecibels       = -100.0
	MaxDecibels       = -30.0
	ResampleQuality   = 4

	// === GEOMETRY DEFAULT (varian multi-player) ===
	BarCount         = 250
	BarSpacing       = 0.0
	SensitivityLevel = 12.0 // gain = level / 5
	MinBarHeight     = 0.5
	EasingFactor     = 1.5
	GlowRadius       = 5
	HeightRatio      = 0.45 // tinggi maksimum target terhadap tinggi canvas
	LowEndExponent   = 1.5
	BarColor         = "rgba(255,0,0,0.84)"
	ProgressColor    = "#FFFFFF"
	TextColor        = "rgba(255,0,0,0.8)"

	// === LAYOUT (chrome album art + tombol play) ===
	CanvasInset        = 60  // canvas.width = clientWidth - inset
	DefaultArtWidth    = 150 // dipakai jika elemen album art tidak ada
	DefaultButtonWidth = 10
	ChromeMargin       = -20
	CompactBreakpoint  = 600

	// === ANIMASI ===
	FrameInterval  = time.Second / 60
	LoadingHold    = 300 * time.Millisecond
	OpacityMin     = 0.2
	OpacityMax     = 0.9
	OpacityStep    = 0.03
	ProgressCreep  = 0.003
	ProgressCeil   = 0.99
	PlaceholderMin = 10.0
	PlaceholderMax = 50.0

	// === FETCH ===
	FetchTimeout = 60 * time.Second

	// === PESAN ===
	LoadingText      = "Loading Audio"
	ErrLoadingText   = "Error loading audio"
	ErrAnalyzingText = "Error analyzing audio"
	OpenLinkMessage  = "openLink"
	LinkFallback     = 100 * time.Millisecond
)
