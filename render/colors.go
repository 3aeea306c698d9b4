package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stalker-eyes/core"
)

// Palette, slate scale plus accents
var (
	RgbBackground = core.Hex(0x020617) // slate-950
	RgbSocket     = core.RGBWhite
	RgbEyelid     = core.Hex(0xe2e8f0) // slate-200
	RgbEyelidEdge = core.Hex(0xcbd5e1) // slate-300
	RgbBrow       = core.Hex(0x1e293b) // slate-800
	RgbPupil      = core.Hex(0x0f172a) // slate-900
	RgbHeart      = core.Hex(0xef4444) // red-500
	RgbTitle      = core.RGBWhite
	RgbTitleBlue  = core.Hex(0x3b82f6) // blue-500
	RgbStatus     = core.Hex(0x94a3b8) // slate-400
	RgbStatusDot  = core.Hex(0x22c55e) // green-500
	RgbFooter     = core.Hex(0x334155) // slate-700

	RgbGlowBlue   = core.Hex(0x3b82f6)
	RgbGlowPurple = core.Hex(0xa855f7)
)

// toTcell converts a core color to a tcell truecolor value
// tcell downsamples to the palette when the terminal lacks truecolor
func toTcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
