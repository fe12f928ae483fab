package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
)

var (
	// ErrSurfaceBusy is returned when a drawable is requested while another is still live.
	ErrSurfaceBusy = errors.New("surface already has a live drawable")
	// ErrForeignDrawable is returned when releasing a drawable the surface did not hand out
	// or has already taken back.
	ErrForeignDrawable = errors.New("drawable is not live on this surface")
	// ErrDrawableReleased is returned when writing to a drawable after release.
	ErrDrawableReleased = errors.New("drawable has been released")
)

// Format names a frame encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPNG, "":
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", s)
}

// ContentType returns the MIME type of frames in this format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// Drawable is a writable drawing target handed out by a Surface.
type Drawable interface {
	io.Writer
	Size() (width, height int)
	Format() Format
}

// Surface is a host-owned drawing area. At most one drawable may be live on a
// surface at a time; it must be released before the next is acquired.
type Surface interface {
	Acquire() (Drawable, error)
	Release(Drawable) error
}

// MemorySurface keeps the live drawable's frame in memory so it can be served
// to clients.
type MemorySurface struct {
	mu       sync.Mutex
	width    int
	height   int
	format   Format
	live     *memDrawable
	acquired uint64
	released uint64
}

// NewMemorySurface returns a surface of the given pixel size.
func NewMemorySurface(width, height int, format Format) *MemorySurface {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 400
	}
	if format == "" {
		format = FormatPNG
	}
	return &MemorySurface{width: width, height: height, format: format}
}

// Acquire hands out a drawable, or ErrSurfaceBusy if one is still live.
func (s *MemorySurface) Acquire() (Drawable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live != nil {
		return nil, ErrSurfaceBusy
	}
	s.live = &memDrawable{surface: s, width: s.width, height: s.height, format: s.format}
	s.acquired++
	return s.live, nil
}

// Release takes back the live drawable and drops its frame.
func (s *MemorySurface) Release(d Drawable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	md, ok := d.(*memDrawable)
	if !ok || md != s.live {
		return ErrForeignDrawable
	}
	s.live = nil
	s.released++
	return nil
}

// Frame returns a copy of the live drawable's contents. ok is false when
// nothing is live or nothing has been drawn yet.
func (s *MemorySurface) Frame() (frame []byte, format Format, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil || s.live.buf.Len() == 0 {
		return nil, s.format, false
	}
	return bytes.Clone(s.live.buf.Bytes()), s.format, true
}

// Stats reports how many drawables were acquired and released.
func (s *MemorySurface) Stats() (acquired, released uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquired, s.released
}

type memDrawable struct {
	surface *MemorySurface
	buf     bytes.Buffer
	width   int
	height  int
	format  Format
}

func (d *memDrawable) Write(p []byte) (int, error) {
	d.surface.mu.Lock()
	defer d.surface.mu.Unlock()
	if d.surface.live != d {
		return 0, ErrDrawableReleased
	}
	return d.buf.Write(p)
}

func (d *memDrawable) Size() (int, int) { return d.width, d.height }

func (d *memDrawable) Format() Format { return d.format }
