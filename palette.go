package voxflat

import "image/color"

// Palette is the 256-entry RGBA color table of a scene. Index 0 is
// always {0,0,0,0}; MagicaVoxel's palette is otherwise 1-indexed.
type Palette [256]color.RGBA

// defaultPalette is MagicaVoxel's canonical palette, used whenever a
// scene's .vox file carries no RGBA chunk.
var defaultPalette = Palette{
	{0x00, 0x00, 0x00, 0x00}, {0xff, 0xff, 0xff, 0xff}, {0xff, 0xff, 0xcc, 0xff}, {0xff, 0xff, 0x99, 0xff},
	{0xff, 0xff, 0x66, 0xff}, {0xff, 0xff, 0x33, 0xff}, {0xff, 0xff, 0x00, 0xff}, {0xff, 0xcc, 0xff, 0xff},
	{0xff, 0xcc, 0xcc, 0xff}, {0xff, 0xcc, 0x99, 0xff}, {0xff, 0xcc, 0x66, 0xff}, {0xff, 0xcc, 0x33, 0xff},
	{0xff, 0xcc, 0x00, 0xff}, {0xff, 0x99, 0xff, 0xff}, {0xff, 0x99, 0xcc, 0xff}, {0xff, 0x99, 0x99, 0xff},
	{0xff, 0x99, 0x66, 0xff}, {0xff, 0x99, 0x33, 0xff}, {0xff, 0x99, 0x00, 0xff}, {0xff, 0x66, 0xff, 0xff},
	{0xff, 0x66, 0xcc, 0xff}, {0xff, 0x66, 0x99, 0xff}, {0xff, 0x66, 0x66, 0xff}, {0xff, 0x66, 0x33, 0xff},
	{0xff, 0x66, 0x00, 0xff}, {0xff, 0x33, 0xff, 0xff}, {0xff, 0x33, 0xcc, 0xff}, {0xff, 0x33, 0x99, 0xff},
	{0xff, 0x33, 0x66, 0xff}, {0xff, 0x33, 0x33, 0xff}, {0xff, 0x33, 0x00, 0xff}, {0xff, 0x00, 0xff, 0xff},
	{0xff, 0x00, 0xcc, 0xff}, {0xff, 0x00, 0x99, 0xff}, {0xff, 0x00, 0x66, 0xff}, {0xff, 0x00, 0x33, 0xff},
	{0xff, 0x00, 0x00, 0xff}, {0xcc, 0xff, 0xff, 0xff}, {0xcc, 0xff, 0xcc, 0xff}, {0xcc, 0xff, 0x99, 0xff},
	{0xcc, 0xff, 0x66, 0xff}, {0xcc, 0xff, 0x33, 0xff}, {0xcc, 0xff, 0x00, 0xff}, {0xcc, 0xcc, 0xff, 0xff},
	{0xcc, 0xcc, 0xcc, 0xff}, {0xcc, 0xcc, 0x99, 0xff}, {0xcc, 0xcc, 0x66, 0xff}, {0xcc, 0xcc, 0x33, 0xff},
	{0xcc, 0xcc, 0x00, 0xff}, {0xcc, 0x99, 0xff, 0xff}, {0xcc, 0x99, 0xcc, 0xff}, {0xcc, 0x99, 0x99, 0xff},
	{0xcc, 0x99, 0x66, 0xff}, {0xcc, 0x99, 0x33, 0xff}, {0xcc, 0x99, 0x00, 0xff}, {0xcc, 0x66, 0xff, 0xff},
	{0xcc, 0x66, 0xcc, 0xff}, {0xcc, 0x66, 0x99, 0xff}, {0xcc, 0x66, 0x66, 0xff}, {0xcc, 0x66, 0x33, 0xff},
	{0xcc, 0x66, 0x00, 0xff}, {0xcc, 0x33, 0xff, 0xff}, {0xcc, 0x33, 0xcc, 0xff}, {0xcc, 0x33, 0x99, 0xff},
	{0xcc, 0x33, 0x66, 0xff}, {0xcc, 0x33, 0x33, 0xff}, {0xcc, 0x33, 0x00, 0xff}, {0xcc, 0x00, 0xff, 0xff},
	{0xcc, 0x00, 0xcc, 0xff}, {0xcc, 0x00, 0x99, 0xff}, {0xcc, 0x00, 0x66, 0xff}, {0xcc, 0x00, 0x33, 0xff},
	{0xcc, 0x00, 0x00, 0xff}, {0x99, 0xff, 0xff, 0xff}, {0x99, 0xff, 0xcc, 0xff}, {0x99, 0xff, 0x99, 0xff},
	{0x99, 0xff, 0x66, 0xff}, {0x99, 0xff, 0x33, 0xff}, {0x99, 0xff, 0x00, 0xff}, {0x99, 0xcc, 0xff, 0xff},
	{0x99, 0xcc, 0xcc, 0xff}, {0x99, 0xcc, 0x99, 0xff}, {0x99, 0xcc, 0x66, 0xff}, {0x99, 0xcc, 0x33, 0xff},
	{0x99, 0xcc, 0x00, 0xff}, {0x99, 0x99, 0xff, 0xff}, {0x99, 0x99, 0xcc, 0xff}, {0x99, 0x99, 0x99, 0xff},
	{0x99, 0x99, 0x66, 0xff}, {0x99, 0x99, 0x33, 0xff}, {0x99, 0x99, 0x00, 0xff}, {0x99, 0x66, 0xff, 0xff},
	{0x99, 0x66, 0xcc, 0xff}, {0x99, 0x66, 0x99, 0xff}, {0x99, 0x66, 0x66, 0xff}, {0x99, 0x66, 0x33, 0xff},
	{0x99, 0x66, 0x00, 0xff}, {0x99, 0x33, 0xff, 0xff}, {0x99, 0x33, 0xcc, 0xff}, {0x99, 0x33, 0x99, 0xff},
	{0x99, 0x33, 0x66, 0xff}, {0x99, 0x33, 0x33, 0xff}, {0x99, 0x33, 0x00, 0xff}, {0x99, 0x00, 0xff, 0xff},
	{0x99, 0x00, 0xcc, 0xff}, {0x99, 0x00, 0x99, 0xff}, {0x99, 0x00, 0x66, 0xff}, {0x99, 0x00, 0x33, 0xff},
	{0x99, 0x00, 0x00, 0xff}, {0x66, 0xff, 0xff, 0xff}, {0x66, 0xff, 0xcc, 0xff}, {0x66, 0xff, 0x99, 0xff},
	{0x66, 0xff, 0x66, 0xff}, {0x66, 0xff, 0x33, 0xff}, {0x66, 0xff, 0x00, 0xff}, {0x66, 0xcc, 0xff, 0xff},
	{0x66, 0xcc, 0xcc, 0xff}, {0x66, 0xcc, 0x99, 0xff}, {0x66, 0xcc, 0x66, 0xff}, {0x66, 0xcc, 0x33, 0xff},
	{0x66, 0xcc, 0x00, 0xff}, {0x66, 0x99, 0xff, 0xff}, {0x66, 0x99, 0xcc, 0xff}, {0x66, 0x99, 0x99, 0xff},
	{0x66, 0x99, 0x66, 0xff}, {0x66, 0x99, 0x33, 0xff}, {0x66, 0x99, 0x00, 0xff}, {0x66, 0x66, 0xff, 0xff},
	{0x66, 0x66, 0xcc, 0xff}, {0x66, 0x66, 0x99, 0xff}, {0x66, 0x66, 0x66, 0xff}, {0x66, 0x66, 0x33, 0xff},
	{0x66, 0x66, 0x00, 0xff}, {0x66, 0x33, 0xff, 0xff}, {0x66, 0x33, 0xcc, 0xff}, {0x66, 0x33, 0x99, 0xff},
	{0x66, 0x33, 0x66, 0xff}, {0x66, 0x33, 0x33, 0xff}, {0x66, 0x33, 0x00, 0xff}, {0x66, 0x00, 0xff, 0xff},
	{0x66, 0x00, 0xcc, 0xff}, {0x66, 0x00, 0x99, 0xff}, {0x66, 0x00, 0x66, 0xff}, {0x66, 0x00, 0x33, 0xff},
	{0x66, 0x00, 0x00, 0xff}, {0x33, 0xff, 0xff, 0xff}, {0x33, 0xff, 0xcc, 0xff}, {0x33, 0xff, 0x99, 0xff},
	{0x33, 0xff, 0x66, 0xff}, {0x33, 0xff, 0x33, 0xff}, {0x33, 0xff, 0x00, 0xff}, {0x33, 0xcc, 0xff, 0xff},
	{0x33, 0xcc, 0xcc, 0xff}, {0x33, 0xcc, 0x99, 0xff}, {0x33, 0xcc, 0x66, 0xff}, {0x33, 0xcc, 0x33, 0xff},
	{0x33, 0xcc, 0x00, 0xff}, {0x33, 0x99, 0xff, 0xff}, {0x33, 0x99, 0xcc, 0xff}, {0x33, 0x99, 0x99, 0xff},
	{0x33, 0x99, 0x66, 0xff}, {0x33, 0x99, 0x33, 0xff}, {0x33, 0x99, 0x00, 0xff}, {0x33, 0x66, 0xff, 0xff},
	{0x33, 0x66, 0xcc, 0xff}, {0x33, 0x66, 0x99, 0xff}, {0x33, 0x66, 0x66, 0xff}, {0x33, 0x66, 0x33, 0xff},
	{0x33, 0x66, 0x00, 0xff}, {0x33, 0x33, 0xff, 0xff}, {0x33, 0x33, 0xcc, 0xff}, {0x33, 0x33, 0x99, 0xff},
	{0x33, 0x33, 0x66, 0xff}, {0x33, 0x33, 0x33, 0xff}, {0x33, 0x33, 0x00, 0xff}, {0x33, 0x00, 0xff, 0xff},
	{0x33, 0x00, 0xcc, 0xff}, {0x33, 0x00, 0x99, 0xff}, {0x33, 0x00, 0x66, 0xff}, {0x33, 0x00, 0x33, 0xff},
	{0x33, 0x00, 0x00, 0xff}, {0x00, 0xff, 0xff, 0xff}, {0x00, 0xff, 0xcc, 0xff}, {0x00, 0xff, 0x99, 0xff},
	{0x00, 0xff, 0x66, 0xff}, {0x00, 0xff, 0x33, 0xff}, {0x00, 0xff, 0x00, 0xff}, {0x00, 0xcc, 0xff, 0xff},
	{0x00, 0xcc, 0xcc, 0xff}, {0x00, 0xcc, 0x99, 0xff}, {0x00, 0xcc, 0x66, 0xff}, {0x00, 0xcc, 0x33, 0xff},
	{0x00, 0xcc, 0x00, 0xff}, {0x00, 0x99, 0xff, 0xff}, {0x00, 0x99, 0xcc, 0xff}, {0x00, 0x99, 0x99, 0xff},
	{0x00, 0x99, 0x66, 0xff}, {0x00, 0x99, 0x33, 0xff}, {0x00, 0x99, 0x00, 0xff}, {0x00, 0x66, 0xff, 0xff},
	{0x00, 0x66, 0xcc, 0xff}, {0x00, 0x66, 0x99, 0xff}, {0x00, 0x66, 0x66, 0xff}, {0x00, 0x66, 0x33, 0xff},
	{0x00, 0x66, 0x00, 0xff}, {0x00, 0x33, 0xff, 0xff}, {0x00, 0x33, 0xcc, 0xff}, {0x00, 0x33, 0x99, 0xff},
	{0x00, 0x33, 0x66, 0xff}, {0x00, 0x33, 0x33, 0xff}, {0x00, 0x33, 0x00, 0xff}, {0x00, 0x00, 0xff, 0xff},
	{0x00, 0x00, 0xcc, 0xff}, {0x00, 0x00, 0x99, 0xff}, {0x00, 0x00, 0x66, 0xff}, {0x00, 0x00, 0x33, 0xff},
	{0xee, 0x00, 0x00, 0xff}, {0xdd, 0x00, 0x00, 0xff}, {0xbb, 0x00, 0x00, 0xff}, {0xaa, 0x00, 0x00, 0xff},
	{0x88, 0x00, 0x00, 0xff}, {0x77, 0x00, 0x00, 0xff}, {0x55, 0x00, 0x00, 0xff}, {0x44, 0x00, 0x00, 0xff},
	{0x22, 0x00, 0x00, 0xff}, {0x11, 0x00, 0x00, 0xff}, {0x00, 0xee, 0x00, 0xff}, {0x00, 0xdd, 0x00, 0xff},
	{0x00, 0xbb, 0x00, 0xff}, {0x00, 0xaa, 0x00, 0xff}, {0x00, 0x88, 0x00, 0xff}, {0x00, 0x77, 0x00, 0xff},
	{0x00, 0x55, 0x00, 0xff}, {0x00, 0x44, 0x00, 0xff}, {0x00, 0x22, 0x00, 0xff}, {0x00, 0x11, 0x00, 0xff},
	{0x00, 0x00, 0xee, 0xff}, {0x00, 0x00, 0xdd, 0xff}, {0x00, 0x00, 0xbb, 0xff}, {0x00, 0x00, 0xaa, 0xff},
	{0x00, 0x00, 0x88, 0xff}, {0x00, 0x00, 0x77, 0xff}, {0x00, 0x00, 0x55, 0xff}, {0x00, 0x00, 0x44, 0xff},
	{0x00, 0x00, 0x22, 0xff}, {0x00, 0x00, 0x11, 0xff}, {0xee, 0xee, 0xee, 0xff}, {0xdd, 0xdd, 0xdd, 0xff},
	{0xbb, 0xbb, 0xbb, 0xff}, {0xaa, 0xaa, 0xaa, 0xff}, {0x88, 0x88, 0x88, 0xff}, {0x77, 0x77, 0x77, 0xff},
	{0x55, 0x55, 0x55, 0xff}, {0x44, 0x44, 0x44, 0xff}, {0x22, 0x22, 0x22, 0xff}, {0x11, 0x11, 0x11, 0xff},
}

// DefaultPalette returns MagicaVoxel's canonical 256-entry palette.
func DefaultPalette() Palette {
	return defaultPalette
}

