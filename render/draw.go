package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stalker-eyes/core"
	"github.com/lixenwraith/stalker-eyes/vmath"
)

// Text shown around the eyes
const (
	titleLead   = "EYE "
	titleAccent = "TRAKER"
	titleTail   = " PRO"
	statusDot   = '●'
	footerText  = "NEURAL STALKER INTERFACE V2.6.0 // AUTONOMOUSLY AWARE"
)

// halfBlock carries the upper sample in fg and the lower sample in bg
const halfBlock = '▀'

// Draw repaints every cell of screen from scene
// Each call is a full, idempotent re-projection
func Draw(screen tcell.Screen, scene Scene) {
	l := scene.Layout
	m := l.Metrics

	for cy := 0; cy < l.Rows; cy++ {
		for cx := 0; cx < l.Cols; cx++ {
			top := scene.ColorAt(samplePoint(m, cx, cy, 0.25))
			bottom := scene.ColorAt(samplePoint(m, cx, cy, 0.75))
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	if l.Measurable() {
		drawTitle(screen, scene, l.TitleRow)
		status := string(statusDot) + " EXPRESSION: " + strings.ToUpper(scene.Expression.String())
		x := centered(l.Cols, status)
		drawText(screen, scene, x, l.StatusRow, string(statusDot), RgbStatusDot, tcell.AttrNone)
		drawText(screen, scene, x+1, l.StatusRow, status[len(string(statusDot)):], RgbStatus, tcell.AttrBold)
	}

	drawText(screen, scene, centered(l.Cols, footerText), l.FooterRow, footerText, RgbFooter, tcell.AttrDim)

	screen.Show()
}

func drawTitle(screen tcell.Screen, scene Scene, row int) {
	full := titleLead + titleAccent + titleTail
	x := centered(scene.Layout.Cols, full)
	x = drawText(screen, scene, x, row, titleLead, RgbTitle, tcell.AttrBold)
	x = drawText(screen, scene, x, row, titleAccent, RgbTitleBlue, tcell.AttrBold)
	drawText(screen, scene, x, row, titleTail, RgbTitle, tcell.AttrBold)
}

// drawText writes text over the scene background and returns the next column
func drawText(screen tcell.Screen, scene Scene, x, y int, text string, fg core.RGB, attr tcell.AttrMask) int {
	l := scene.Layout
	if y < 0 || y >= l.Rows {
		return x
	}
	for _, r := range text {
		if x >= 0 && x < l.Cols {
			bg := scene.ColorAt(l.Metrics.CellCenter(x, y))
			style := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg)).Attributes(attr)
			screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

func centered(cols int, text string) int {
	return max(0, (cols-len([]rune(text)))/2)
}

// samplePoint maps a fractional row position within a cell to pointer units
func samplePoint(m Metrics, cx, cy int, fy float64) vmath.Vec2 {
	return vmath.Vec2{X: (float64(cx) + 0.5) * m.CellW, Y: (float64(cy) + fy) * m.CellH}
}
