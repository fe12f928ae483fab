// Package chartstest reads bar geometry back out of rendered chart frames.
package chartstest

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// Run is a horizontal stretch of bar pixels, Start inclusive and End exclusive.
type Run struct {
	Start int
	End   int
}

// Center is the midpoint of the run.
func (r Run) Center() float64 {
	return float64(r.Start+r.End-1) / 2
}

// DeliveryBars decodes a PNG frame and returns the runs of delivery-bar orange
// crossing row y, left to right.
func DeliveryBars(frame []byte, y int) ([]Run, error) {
	img, err := png.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return nil, fmt.Errorf("row %d outside frame %v", y, b)
	}

	var runs []Run
	start := -1
	for x := b.Min.X; x < b.Max.X; x++ {
		if isOrange(img, x, y) {
			if start < 0 {
				start = x
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, Run{Start: start, End: x})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Run{Start: start, End: b.Max.X})
	}
	return runs, nil
}

// isOrange matches the bar fill blended over white as well as the opaque stroke.
func isOrange(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	r, g, b = r>>8, g>>8, b>>8
	return r > 200 && g > 120 && g < 220 && b < 160
}
