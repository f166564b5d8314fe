package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/banshee-data/irview/internal/ir"
)

const (
	markerRune = '●'
	trailRune  = '·'

	// Below this the layout degenerates, so the app just says so.
	minScreenWidth  = 24
	minScreenHeight = 8
)

// Slot colours follow the wand convention of red, blue, green, orange.
var slotStyles = [ir.NumSlots]tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorRed),
	tcell.StyleDefault.Foreground(tcell.ColorBlue),
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
	tcell.StyleDefault.Foreground(tcell.ColorOrange),
}

// layout describes the bordered plot region. Row 0 is the title and the
// last row is the status bar, the plot fills everything between.
type layout struct {
	plotX, plotY int
	plotW, plotH int
}

func (a *App) layout() layout {
	return layout{plotX: 0, plotY: 1, plotW: a.width, plotH: a.height - 2}
}

// cell maps a sensor coordinate onto a cell inside the plot border.
// Sensor y grows downward, as do terminal rows, so no flip is needed.
// Coordinates outside the sensor bounds are clipped.
func (l layout) cell(x, y, sensorW, sensorH int) (int, int, bool) {
	innerW := l.plotW - 2
	innerH := l.plotH - 2
	if innerW < 1 || innerH < 1 || sensorW < 1 || sensorH < 1 {
		return 0, 0, false
	}
	if x < 0 || y < 0 || x >= sensorW || y >= sensorH {
		return 0, 0, false
	}
	cx := l.plotX + 1 + x*innerW/sensorW
	cy := l.plotY + 1 + y*innerH/sensorH
	return cx, cy, true
}

func (a *App) draw() {
	a.screen.Clear()
	if a.width < minScreenWidth || a.height < minScreenHeight {
		a.drawText(0, 0, tcell.StyleDefault, "terminal too small")
		a.screen.Show()
		return
	}

	l := a.layout()
	a.drawBorder(l)
	a.drawTrails(l)
	a.drawMarkers(l)
	a.drawStats(l)
	a.drawMessages(l)
	a.drawTitle()
	a.drawStatus()
	a.screen.Show()
}

func (a *App) drawBorder(l layout) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := l.plotX; x < l.plotX+l.plotW; x++ {
		a.screen.SetContent(x, l.plotY, tcell.RuneHLine, nil, style)
		a.screen.SetContent(x, l.plotY+l.plotH-1, tcell.RuneHLine, nil, style)
	}
	for y := l.plotY; y < l.plotY+l.plotH; y++ {
		a.screen.SetContent(l.plotX, y, tcell.RuneVLine, nil, style)
		a.screen.SetContent(l.plotX+l.plotW-1, y, tcell.RuneVLine, nil, style)
	}
	a.screen.SetContent(l.plotX, l.plotY, tcell.RuneULCorner, nil, style)
	a.screen.SetContent(l.plotX+l.plotW-1, l.plotY, tcell.RuneURCorner, nil, style)
	a.screen.SetContent(l.plotX, l.plotY+l.plotH-1, tcell.RuneLLCorner, nil, style)
	a.screen.SetContent(l.plotX+l.plotW-1, l.plotY+l.plotH-1, tcell.RuneLRCorner, nil, style)
}

func (a *App) drawTrails(l layout) {
	for slot := 0; slot < ir.NumSlots; slot++ {
		trail := a.sc.Trail(slot)
		// a single position is not a path yet
		if len(trail) < 2 {
			continue
		}
		for _, xy := range trail {
			cx, cy, ok := l.cell(xy.X, xy.Y, a.sc.Width, a.sc.Height)
			if !ok {
				continue
			}
			a.screen.SetContent(cx, cy, trailRune, nil, slotStyles[slot])
		}
	}
}

// drawMarkers runs after drawTrails so the live point sits on top of
// its own trail.
func (a *App) drawMarkers(l layout) {
	for slot := 0; slot < ir.NumSlots; slot++ {
		pt, ok := a.sc.Current(slot)
		if !ok {
			continue
		}
		cx, cy, ok := l.cell(pt.X, pt.Y, a.sc.Width, a.sc.Height)
		if !ok {
			continue
		}
		a.screen.SetContent(cx, cy, markerRune, nil, slotStyles[slot].Bold(true))
	}
}

func (a *App) drawStats(l layout) {
	x := l.plotX + 2
	y := l.plotY + 1
	a.drawText(x, y, tcell.StyleDefault.Bold(true),
		fmt.Sprintf("Active IR Points: %d/%d", a.sc.ActiveCount(), ir.NumSlots))
	row := y + 1
	for slot := 0; slot < ir.NumSlots; slot++ {
		pt, ok := a.sc.Current(slot)
		if !ok {
			continue
		}
		if row >= l.plotY+l.plotH-1 {
			return
		}
		a.drawText(x, row, slotStyles[slot],
			fmt.Sprintf("Point %d: (%4d, %4d)", slot+1, pt.X, pt.Y))
		row++
	}
}

// drawMessages right-aligns the debug log inside the plot, newest last,
// clipped to half the plot width so it stays clear of the stats block.
func (a *App) drawMessages(l layout) {
	msgs := a.sc.Messages()
	if len(msgs) == 0 {
		return
	}
	maxw := (l.plotW - 4) / 2
	if maxw < 8 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	y := l.plotY + 1
	for _, m := range msgs {
		if y >= l.plotY+l.plotH-1 {
			return
		}
		r := []rune(m)
		if len(r) > maxw {
			r = append(r[:maxw-3], '.', '.', '.')
		}
		a.drawText(l.plotX+l.plotW-1-len(r), y, style, string(r))
		y++
	}
}

func (a *App) drawTitle() {
	a.drawText(1, 0, tcell.StyleDefault.Bold(true), "Pixart IR Camera - Real-time View")
	if a.session != nil {
		tag := "session " + a.session.Short()
		a.drawText(a.width-len(tag)-1, 0, tcell.StyleDefault.Foreground(tcell.ColorGray), tag)
	}
}

func (a *App) drawStatus() {
	style := tcell.StyleDefault.Reverse(true)
	y := a.height - 1
	for x := 0; x < a.width; x++ {
		a.screen.SetContent(x, y, ' ', nil, style)
	}
	left := " q:quit  s:snapshot"
	if a.portLabel != "" {
		left += "  |  " + a.portLabel
	}
	a.drawText(0, y, style, left)
	right := fmt.Sprintf("frames %d  rejected %d  messages %d ",
		a.sc.FramesIngested, a.sc.FramesRejected, a.sc.MessagesSeen)
	a.drawText(a.width-len(right), y, style, right)
}

// drawText writes a run of cells, clipping at the right edge.
func (a *App) drawText(x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		if col >= a.width {
			return
		}
		if col >= 0 {
			a.screen.SetContent(col, y, r, nil, style)
		}
		col++
	}
}
