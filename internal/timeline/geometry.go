// Package timeline implements the multi-track timeline model, the
// pixel/time coordinate mapping, and the playback clock.
package timeline

// Geometry converts between timeline pixel positions and time values.
// It is the sole authority for placement math: every drag and click
// handler funnels through it so rounding behavior stays consistent.
type Geometry struct {
	// PixelsPerSecond is the horizontal zoom factor.
	PixelsPerSecond float64
	// GutterWidth is the fixed pixel width reserved for track labels,
	// subtracted before any pixel-to-time conversion.
	GutterWidth float64
}

// TimeFromPixel converts an absolute x position to a time in seconds,
// clamped to zero for positions inside the gutter.
func (g Geometry) TimeFromPixel(x float64) float64 {
	t := (x - g.GutterWidth) / g.PixelsPerSecond
	if t < 0 {
		return 0
	}
	return t
}

// PixelFromTime converts a time in seconds to an absolute x position.
func (g Geometry) PixelFromTime(t float64) float64 {
	return g.GutterWidth + t*g.PixelsPerSecond
}
