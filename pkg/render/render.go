// Package render draws traced segment forests and scene geometry to images.
// It is the rendering collaborator of the engine: opacity comes from segment
// intensity, and segments on a path that reached a target are drawn in a
// highlight color.
package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/lightlab/go-2d-raytracer/pkg/geometry"
	"github.com/lightlab/go-2d-raytracer/pkg/tracer"
)

// Options controls the output image
type Options struct {
	Width      int
	Height     int
	LineWidth  float64
	DrawShapes bool
}

// DefaultOptions returns render settings matching the default canvas
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, LineWidth: 1.5, DrawShapes: true}
}

// Draw renders the segment forest over the scene geometry
func Draw(tr *tracer.Trace, sc tracer.Scene, opts Options) image.Image {
	dc := gg.NewContext(opts.Width, opts.Height)

	dc.SetRGB(0.06, 0.06, 0.10)
	dc.Clear()

	if opts.DrawShapes {
		drawShapes(dc, sc)
	}
	drawSegments(dc, tr, opts.LineWidth)

	return dc.Image()
}

func drawShapes(dc *gg.Context, sc tracer.Scene) {
	for _, obj := range sc.Objects() {
		if obj.Kind() == geometry.KindFocalPoint {
			p := obj.Vertices()[0]
			dc.SetRGB(0.9, 0.9, 0.5)
			dc.DrawCircle(p.X, p.Y, 3)
			dc.Fill()
			continue
		}

		tracePolygon(dc, obj)
		dc.SetRGBA(0.4, 0.55, 0.8, 0.25)
		dc.FillPreserve()
		dc.SetRGBA(0.5, 0.65, 0.9, 0.9)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	for _, tgt := range sc.Targets() {
		tracePolygon(dc, tgt)
		dc.SetRGBA(0.95, 0.45, 0.3, 0.9)
		dc.SetLineWidth(2)
		dc.Stroke()
	}
}

func tracePolygon(dc *gg.Context, shape geometry.Shape) {
	vertices := shape.Vertices()
	if len(vertices) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(vertices[0].X, vertices[0].Y)
	for _, v := range vertices[1:] {
		dc.LineTo(v.X, v.Y)
	}
	dc.ClosePath()
}

func drawSegments(dc *gg.Context, tr *tracer.Trace, lineWidth float64) {
	dc.SetLineWidth(lineWidth)

	for _, seg := range tr.Segments {
		alpha := seg.Intensity
		if alpha > 1 {
			alpha = 1
		}

		if seg.HitsTarget {
			dc.SetRGBA(1.0, 0.82, 0.3, alpha)
		} else {
			dc.SetRGBA(1.0, 1.0, 1.0, alpha*0.85)
		}

		dc.MoveTo(seg.Start.X, seg.Start.Y)
		dc.LineTo(seg.End.X, seg.End.Y)
		dc.Stroke()
	}
}
