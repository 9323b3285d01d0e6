package scene2d

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

const (
	boundaryStyle = "fill:rgb(236,232,222);stroke:rgb(90,90,90);stroke-width:2"
	blockStyle    = "fill:none;stroke:rgb(200,195,185);stroke-width:1"
	parcelStyle   = "fill:rgb(246,243,236);stroke:rgb(180,175,165);stroke-width:1"
	greenStyle    = "fill:rgb(178,214,160);stroke:rgb(120,160,100);stroke-width:1"
	buildingStyle = "fill:rgb(150,120,110);stroke:rgb(80,60,55);stroke-width:1"
	treeStyle     = "fill:rgb(70,130,60);fill-opacity:0.7"
	roadColor     = "rgb(255,255,255)"
	roadCasing    = "rgb(150,150,150)"
	labelStyle    = "font-family:sans-serif;font-size:12px;fill:rgb(60,60,60)"
)

// RenderOptions controls the SVG output.
type RenderOptions struct {
	// PixelsPerMeter scales the drawing. Zero picks a scale that fits the
	// site into MaxPixels.
	PixelsPerMeter float64
	MaxPixels      int
	Margin         int
	Label          bool
}

// DefaultRenderOptions fits the site into a 1200 px square.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{MaxPixels: 1200, Margin: 20, Label: true}
}

// RenderSVG draws the scene top down, north up.
func RenderSVG(w io.Writer, sc *Scene2D, opts RenderOptions) error {
	if sc == nil {
		return fmt.Errorf("render: nil scene")
	}
	scale := opts.PixelsPerMeter
	if scale <= 0 {
		extent := math.Max(sc.Metadata.WidthM, sc.Metadata.HeightM)
		if extent <= 0 || opts.MaxPixels <= 0 {
			return fmt.Errorf("render: cannot fit a site of %.1f m", extent)
		}
		scale = float64(opts.MaxPixels) / extent
	}
	width := int(math.Ceil(sc.Metadata.WidthM*scale)) + 2*opts.Margin
	height := int(math.Ceil(sc.Metadata.HeightM*scale)) + 2*opts.Margin

	// SVG Y grows down, so north is flipped to the top.
	toScreen := func(p [2]float64) (int, int) {
		x := (p[0]-sc.Metadata.MinX)*scale + float64(opts.Margin)
		y := float64(height) - ((p[1]-sc.Metadata.MinY)*scale + float64(opts.Margin))
		return int(math.Round(x)), int(math.Round(y))
	}
	coords := func(pts [][2]float64) ([]int, []int) {
		xs, ys := make([]int, len(pts)), make([]int, len(pts))
		for i, p := range pts {
			xs[i], ys[i] = toScreen(p)
		}
		return xs, ys
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("site layout, seed %d", sc.Metadata.Seed))
	canvas.Rect(0, 0, width, height, "fill:rgb(255,255,255)")

	xs, ys := coords(sc.Boundary)
	canvas.Polygon(xs, ys, boundaryStyle)

	canvas.Gid("blocks")
	for _, b := range sc.Blocks {
		xs, ys := coords(b)
		canvas.Polygon(xs, ys, blockStyle)
	}
	canvas.Gend()

	canvas.Gid("parcels")
	for _, p := range sc.Parcels {
		style := parcelStyle
		if p.Green {
			style = greenStyle
		}
		xs, ys := coords(p.Polygon)
		canvas.Polygon(xs, ys, style)
	}
	canvas.Gend()

	canvas.Gid("roads")
	for _, casing := range []bool{true, false} {
		for _, r := range sc.Roads {
			stroke, wPx := roadColor, r.Width*scale
			if casing {
				stroke, wPx = roadCasing, wPx+2
			}
			xs, ys := coords(r.Points)
			canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f;stroke-linecap:round;stroke-linejoin:round", stroke, wPx))
		}
	}
	canvas.Gend()

	canvas.Gid("buildings")
	for _, b := range sc.Buildings {
		xs, ys := coords(b.Polygon)
		canvas.Polygon(xs, ys, buildingStyle)
	}
	canvas.Gend()

	canvas.Gid("trees")
	for _, t := range sc.Trees {
		x, y := toScreen(t.Position)
		r := int(math.Max(1, math.Round(t.CanopyD/2*scale)))
		canvas.Circle(x, y, r, treeStyle)
	}
	canvas.Gend()

	if opts.Label {
		s := sc.Summary
		canvas.Text(opts.Margin, opts.Margin-6, fmt.Sprintf("%s density, %d parcels, %d green, %d buildings",
			sc.Metadata.Density, s.Parcels, s.GreenSpaces, s.Buildings), labelStyle)
	}
	canvas.End()
	return nil
}
