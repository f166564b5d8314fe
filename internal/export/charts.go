// Package export writes snapshot artifacts for a capture session.
// This file renders the PNG and HTML trail charts.
package export

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/irview/internal/ir"
	"github.com/banshee-data/irview/internal/scene"
	"github.com/banshee-data/irview/internal/version"
)

// Slot palette, one colour per tracking slot in both renderers.
var (
	slotColors = [ir.NumSlots]color.Color{
		color.RGBA{R: 255, A: 255},         // red
		color.RGBA{B: 255, A: 255},         // blue
		color.RGBA{G: 128, A: 255},         // green
		color.RGBA{R: 255, G: 165, A: 255}, // orange
	}
	slotHex = [ir.NumSlots]string{"#ff0000", "#0000ff", "#008000", "#ffa500"}
)

// writeTrailPNG renders every slot trail into one scatter-and-line plot in
// sensor coordinates. The sensor's y axis grows downward, so points are
// flipped to keep the plot oriented like the camera image.
func writeTrailPNG(sc *scene.Scene, s *Session, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Pixart IR Camera - session %s", s.Short())
	p.X.Label.Text = "X Position (pixels)"
	p.Y.Label.Text = "Y Position (pixels)"
	p.X.Min = 0
	p.X.Max = float64(sc.Width)
	p.Y.Min = 0
	p.Y.Max = float64(sc.Height)
	p.Add(plotter.NewGrid())

	for slot := 0; slot < ir.NumSlots; slot++ {
		trail := sc.Trail(slot)
		if len(trail) == 0 {
			continue
		}

		pts := make(plotter.XYs, 0, len(trail))
		for _, xy := range trail {
			pts = append(pts, plotter.XY{X: float64(xy.X), Y: float64(sc.Height - xy.Y)})
		}

		label := fmt.Sprintf("Point %d", slot+1)

		if len(pts) > 1 {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return err
			}
			line.Color = slotColors[slot]
			line.Width = vg.Points(1)
			p.Add(line)
			p.Legend.Add(label, line)
		}

		scat, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scat.GlyphStyle.Color = slotColors[slot]
		scat.GlyphStyle.Radius = vg.Points(2)
		p.Add(scat)
		if len(pts) == 1 {
			p.Legend.Add(label, scat)
		}
	}

	p.Legend.Top = true

	wt, err := p.WriterTo(10*vg.Inch, 7.5*vg.Inch, "png")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return err
	}
	return s.fs.WriteFile(path, buf.Bytes(), 0644)
}

// writeTrailHTML renders the same trails as an interactive scatter chart,
// one series per slot.
func writeTrailHTML(sc *scene.Scene, s *Session, path string) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "IR Trail Snapshot", Theme: "dark", Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: "Pixart IR Camera - Trail Snapshot", Subtitle: fmt.Sprintf("session=%s frames=%d %s", s.Short(), sc.FramesIngested, version.String())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: sc.Width, Name: "X (px)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: sc.Height, Name: "Y (px)", NameLocation: "middle", NameGap: 30}),
	)

	for slot := 0; slot < ir.NumSlots; slot++ {
		trail := sc.Trail(slot)
		if len(trail) == 0 {
			continue
		}
		data := make([]opts.ScatterData, 0, len(trail))
		for _, xy := range trail {
			data = append(data, opts.ScatterData{Value: []interface{}{xy.X, sc.Height - xy.Y}})
		}
		scatter.AddSeries(fmt.Sprintf("point %d", slot+1), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: slotHex[slot]}))
	}

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return err
	}
	return s.fs.WriteFile(path, buf.Bytes(), 0644)
}
