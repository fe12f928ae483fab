package charts

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/miradorstack/logistics-pulse/internal/models"
)

// Kind identifies one of the two dashboard charts.
type Kind string

const (
	KindDeliveryTime   Kind = "delivery-time"
	KindShipmentVolume Kind = "shipment-volume"
)

// Plot box padding, shared by rendering and click hit-testing.
const (
	padTop    = 40
	padLeft   = 20
	padRight  = 20
	padBottom = 20
)

// yAxisReserve is the room left right of the bars for the value axis, so
// go-chart never rescales the bar pitch.
const yAxisReserve = 100

var (
	deliveryFill   = drawing.Color{R: 255, G: 159, B: 64, A: 178}
	deliveryStroke = drawing.Color{R: 255, G: 159, B: 64, A: 255}
	volumeStroke   = drawing.Color{R: 54, G: 162, B: 235, A: 255}
	volumeFill     = drawing.Color{R: 54, G: 162, B: 235, A: 51}
)

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Renderer is the resource bound to one snapshot: a drawable acquired from a
// surface with one rendered frame in it. Dispose hands the drawable back.
type Renderer struct {
	kind     Kind
	surface  Surface
	drawable Drawable
	labels   []string
	layout   barLayout
	disposed bool
}

// newRenderer acquires a drawable and draws points into it. On failure the
// drawable is released before returning.
func newRenderer(kind Kind, surface Surface, points []models.DayPoint) (*Renderer, error) {
	d, err := surface.Acquire()
	if err != nil {
		return nil, fmt.Errorf("acquire %s drawable: %w", kind, err)
	}
	width, height := d.Size()

	var graph renderable
	switch kind {
	case KindDeliveryTime:
		graph = deliveryTimeChart(points, width, height)
	default:
		graph = shipmentVolumeChart(points, width, height)
	}

	var buf bytes.Buffer
	if err := graph.Render(d.Format().provider(), &buf); err != nil {
		_ = surface.Release(d)
		return nil, fmt.Errorf("render %s chart: %w", kind, err)
	}
	if _, err := d.Write(buf.Bytes()); err != nil {
		_ = surface.Release(d)
		return nil, fmt.Errorf("draw %s chart: %w", kind, err)
	}

	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Day
	}
	return &Renderer{kind: kind, surface: surface, drawable: d, labels: labels, layout: layoutBars(width, len(points))}, nil
}

// Dispose releases the drawable. Only the first call has an effect.
func (r *Renderer) Dispose() error {
	if r == nil || r.disposed {
		return nil
	}
	r.disposed = true
	return r.surface.Release(r.drawable)
}

// Disposed reports whether Dispose has run.
func (r *Renderer) Disposed() bool {
	return r == nil || r.disposed
}

// BarAt maps a horizontal pixel offset onto a bar index. Each bar owns its
// slot of the pitch, gaps included. It returns -1 outside every slot.
func (r *Renderer) BarAt(x float64) int {
	return r.layout.index(x, len(r.labels))
}

// barLayout is the horizontal geometry of the delivery bars. The chart is
// drawn with exactly these values.
type barLayout struct {
	left    int
	pitch   int
	bar     int
	spacing int
}

func layoutBars(width, n int) barLayout {
	if n == 0 {
		return barLayout{left: padLeft}
	}
	pitch := (width - padLeft - padRight - yAxisReserve) / n
	if pitch < 6 {
		pitch = 6
	}
	bar := pitch * 3 / 5
	return barLayout{left: padLeft, pitch: pitch, bar: bar, spacing: pitch - bar}
}

func (l barLayout) index(x float64, n int) int {
	if n == 0 || l.pitch <= 0 {
		return -1
	}
	offset := x - float64(l.left)
	if offset < 0 || offset >= float64(l.pitch*n) {
		return -1
	}
	return int(offset) / l.pitch
}

func deliveryTimeChart(points []models.DayPoint, width, height int) renderable {
	layout := layoutBars(width, len(points))
	bars := make([]chart.Value, len(points))
	for i, p := range points {
		bars[i] = chart.Value{
			Label: p.Day,
			Value: p.Value,
			Style: chart.Style{FillColor: deliveryFill, StrokeColor: deliveryStroke, StrokeWidth: 1},
		}
	}
	return chart.BarChart{
		Title:      "Weekly Average Delivery Time",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: padTop, Left: padLeft, Right: padRight, Bottom: padBottom}},
		BarWidth:   layout.bar,
		BarSpacing: layout.spacing,
		YAxis: chart.YAxis{
			Name:  "Time (Days)",
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(points)},
		},
		Bars: bars,
	}
}

func shipmentVolumeChart(points []models.DayPoint, width, height int) renderable {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ticks := make([]chart.Tick, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Day}
	}
	return chart.Chart{
		Title:      "Weekly Shipment Volume",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: padTop, Left: padLeft, Right: padRight, Bottom: padBottom}},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(points) - 1)},
		},
		YAxis: chart.YAxis{
			Name:  "Shipments",
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(points)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Shipment Volume",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: volumeStroke, FillColor: volumeFill, StrokeWidth: 2},
			},
		},
	}
}

// axisMax leaves ten percent of headroom above the tallest point.
func axisMax(points []models.DayPoint) float64 {
	top := 0.0
	for _, p := range points {
		if p.Value > top {
			top = p.Value
		}
	}
	if top <= 0 {
		return 1
	}
	return top * 1.1
}
