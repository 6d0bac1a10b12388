// Package ui provides the graphical user interface for NordVPN Indicator.
// This file contains icon generation for the tray states.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/yllada/nordvpn-indicator/vpn"
)

const iconSize = 22

// glyph is the symbol drawn inside the shield.
type glyph int

const (
	glyphLock glyph = iota
	glyphCheck
	glyphDots
)

// iconStyle defines the colors and symbol of one tray icon.
type iconStyle struct {
	Fill   color.RGBA
	Border color.RGBA
	Accent color.RGBA
	Symbol color.RGBA
	Glyph  glyph
}

var (
	connectedStyle = iconStyle{
		Fill:   color.RGBA{21, 101, 192, 255},  // NordVPN blue
		Border: color.RGBA{66, 133, 244, 255},  // Light blue
		Accent: color.RGBA{187, 222, 251, 255}, // Pale blue
		Symbol: color.RGBA{255, 255, 255, 255},
		Glyph:  glyphCheck,
	}
	connectingStyle = iconStyle{
		Fill:   color.RGBA{239, 108, 0, 255},   // Dark amber
		Border: color.RGBA{255, 167, 38, 255},  // Amber
		Accent: color.RGBA{255, 224, 178, 255}, // Pale amber
		Symbol: color.RGBA{255, 255, 255, 255},
		Glyph:  glyphDots,
	}
	disconnectedStyle = iconStyle{
		Fill:   color.RGBA{117, 117, 117, 255}, // Dark gray
		Border: color.RGBA{158, 158, 158, 255}, // Gray
		Accent: color.RGBA{189, 189, 189, 255}, // Light gray
		Symbol: color.RGBA{255, 255, 255, 255},
		Glyph:  glyphLock,
	}
)

// Pre-rendered tray icons.
var (
	iconConnected    = renderIcon(connectedStyle)
	iconConnecting   = renderIcon(connectingStyle)
	iconDisconnected = renderIcon(disconnectedStyle)
)

// iconFor returns the tray icon of a connection status. Every state other
// than connected and disconnected shows the connecting icon.
func iconFor(status vpn.ConnectionStatus) []byte {
	switch status {
	case vpn.StatusConnected:
		return iconConnected
	case vpn.StatusDisconnected:
		return iconDisconnected
	default:
		return iconConnecting
	}
}

// renderIcon draws a shield with the style's glyph and encodes it as PNG.
func renderIcon(style iconStyle) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	drawShield(img, style)

	switch style.Glyph {
	case glyphCheck:
		plot(img, style.Symbol, checkPoints)
	case glyphDots:
		plot(img, style.Symbol, dotPoints)
	default:
		drawLock(img, style.Symbol)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// inShield reports whether the point lies inside the shield outline.
func inShield(x, y float64) bool {
	const (
		top    = 1.0
		bottom = iconSize - 2.0
		width  = iconSize - 4.0
		center = iconSize / 2.0
	)
	rel := (y - top) / (bottom - top)
	if rel < 0 || rel > 1 {
		return false
	}

	half := width/2 - rel*0.5
	if rel >= 0.5 {
		p := (rel - 0.5) * 2
		half = (width/2 - 0.25) * (1 - p*p)
	}
	return x >= center-half && x <= center+half
}

func drawShield(img *image.RGBA, style iconStyle) {
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !inShield(fx, fy) {
				continue
			}
			edge := !inShield(fx-1, fy) || !inShield(fx+1, fy) ||
				!inShield(fx, fy-1) || !inShield(fx, fy+1)
			switch {
			case edge:
				img.Set(x, y, style.Border)
			case y < iconSize*3/10:
				img.Set(x, y, style.Accent)
			default:
				img.Set(x, y, style.Fill)
			}
		}
	}
}

type point struct{ x, y int }

var (
	checkPoints = []point{
		{6, 11}, {7, 11}, {7, 12}, {8, 12}, {8, 13}, {9, 13},
		{9, 12}, {10, 12}, {10, 11}, {11, 11}, {11, 10}, {12, 10},
		{12, 9}, {13, 9}, {13, 8}, {14, 8},
	}
	dotPoints = []point{
		{6, 10}, {7, 10}, {6, 11}, {7, 11},
		{10, 10}, {11, 10}, {10, 11}, {11, 11},
		{14, 10}, {15, 10}, {14, 11}, {15, 11},
	}
)

func plot(img *image.RGBA, c color.RGBA, points []point) {
	for _, p := range points {
		if p.x >= 0 && p.x < iconSize && p.y >= 0 && p.y < iconSize {
			img.Set(p.x, p.y, c)
		}
	}
}

func drawLock(img *image.RGBA, c color.RGBA) {
	// body
	for y := 10; y <= 15; y++ {
		for x := 8; x <= 14; x++ {
			if y == 10 || y == 15 || x == 8 || x == 14 {
				img.Set(x, y, c)
			}
		}
	}
	// shackle
	for y := 6; y <= 8; y++ {
		img.Set(9, y, c)
		img.Set(13, y, c)
	}
	for x := 9; x <= 13; x++ {
		img.Set(x, 6, c)
	}
}
