package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// The rasterizer draws depth-sorted primitives (painter's algorithm)
// into an image.NRGBA. Spheres and cylinders are shaded per pixel from
// their implied surface normal; triangles are flat shaded.

// Sphere is a shaded ball, used for atoms and grid points.
type Sphere struct {
	Center r3.Vec
	Radius float64
	Color  color.NRGBA
	Alpha  float64
}

// Cylinder is a shaded tube between two points, used for bonds.
type Cylinder struct {
	A, B   r3.Vec
	Radius float64
	Color  color.NRGBA
	Alpha  float64
}

// Triangle is a flat-shaded face, used for isosurfaces.
type Triangle struct {
	P0, P1, P2 r3.Vec
	Color      color.NRGBA
	Alpha      float64
}

// Line is a thin unshaded segment, used for grid outlines.
type Line struct {
	A, B  r3.Vec
	Color color.NRGBA
}

// Label is screen-space text anchored at a world position. Only digits
// and a few separators render (enough for atom numbers).
type Label struct {
	Pos   r3.Vec
	Text  string
	Color color.NRGBA
}

// Scene is a collection of primitives plus a background color.
type Scene struct {
	Background color.NRGBA

	spheres   []Sphere
	cylinders []Cylinder
	triangles []Triangle
	lines     []Line
	labels    []Label
}

// NewScene returns an empty scene on the given background.
func NewScene(background color.NRGBA) *Scene {
	return &Scene{Background: background}
}

func (s *Scene) AddSphere(sp Sphere)     { s.spheres = append(s.spheres, sp) }
func (s *Scene) AddCylinder(cy Cylinder) { s.cylinders = append(s.cylinders, cy) }
func (s *Scene) AddTriangle(tr Triangle) { s.triangles = append(s.triangles, tr) }
func (s *Scene) AddLine(l Line)          { s.lines = append(s.lines, l) }
func (s *Scene) AddLabel(l Label)        { s.labels = append(s.labels, l) }

// IsEmpty reports whether nothing has been added.
func (s *Scene) IsEmpty() bool {
	return len(s.spheres) == 0 && len(s.cylinders) == 0 &&
		len(s.triangles) == 0 && len(s.lines) == 0 && len(s.labels) == 0
}

// Bounds returns the bounding box over all primitive anchor points.
// ok is false for an empty scene.
func (s *Scene) Bounds() (min, max r3.Vec, ok bool) {
	min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	grow := func(p r3.Vec, pad float64) {
		ok = true
		min.X = math.Min(min.X, p.X-pad)
		min.Y = math.Min(min.Y, p.Y-pad)
		min.Z = math.Min(min.Z, p.Z-pad)
		max.X = math.Max(max.X, p.X+pad)
		max.Y = math.Max(max.Y, p.Y+pad)
		max.Z = math.Max(max.Z, p.Z+pad)
	}

	for _, sp := range s.spheres {
		grow(sp.Center, sp.Radius)
	}
	for _, cy := range s.cylinders {
		grow(cy.A, cy.Radius)
		grow(cy.B, cy.Radius)
	}
	for _, tr := range s.triangles {
		grow(tr.P0, 0)
		grow(tr.P1, 0)
		grow(tr.P2, 0)
	}
	for _, l := range s.lines {
		grow(l.A, 0)
		grow(l.B, 0)
	}
	for _, l := range s.labels {
		grow(l.Pos, 0)
	}
	return min, max, ok
}

type drawable struct {
	depth float64
	draw  func(*image.NRGBA)
}

// Render rasterizes the scene through cam into a w-by-h image.
func (s *Scene) Render(cam *Camera, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	bg := color.NRGBA{R: s.Background.R, G: s.Background.G, B: s.Background.B, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}

	var items []drawable

	for _, sp := range s.spheres {
		sp := sp
		p, ok := cam.Project(sp.Center, w, h)
		if !ok {
			continue
		}
		items = append(items, drawable{p.Depth, func(img *image.NRGBA) {
			drawSphere(img, p, sp)
		}})
	}
	for _, cy := range s.cylinders {
		cy := cy
		pa, oka := cam.Project(cy.A, w, h)
		pb, okb := cam.Project(cy.B, w, h)
		if !oka || !okb {
			continue
		}
		items = append(items, drawable{(pa.Depth + pb.Depth) / 2, func(img *image.NRGBA) {
			drawCylinder(img, pa, pb, cy)
		}})
	}
	for _, tr := range s.triangles {
		tr := tr
		p0, ok0 := cam.Project(tr.P0, w, h)
		p1, ok1 := cam.Project(tr.P1, w, h)
		p2, ok2 := cam.Project(tr.P2, w, h)
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		shade := triangleShade(cam, tr)
		items = append(items, drawable{(p0.Depth + p1.Depth + p2.Depth) / 3, func(img *image.NRGBA) {
			drawTriangle(img, p0, p1, p2, scaleColor(tr.Color, shade), tr.Alpha)
		}})
	}
	for _, l := range s.lines {
		l := l
		pa, oka := cam.Project(l.A, w, h)
		pb, okb := cam.Project(l.B, w, h)
		if !oka || !okb {
			continue
		}
		items = append(items, drawable{(pa.Depth + pb.Depth) / 2, func(img *image.NRGBA) {
			drawLine(img, pa, pb, l.Color)
		}})
	}
	for _, l := range s.labels {
		l := l
		p, ok := cam.Project(l.Pos, w, h)
		if !ok {
			continue
		}
		// Labels always paint last within their depth bucket.
		items = append(items, drawable{p.Depth * 0.999, func(img *image.NRGBA) {
			drawLabel(img, p, l)
		}})
	}

	// Far to near.
	sort.Slice(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		it.draw(img)
	}
	return img
}

// light direction in camera space: from the upper left, toward the
// scene.
var lightDir = r3.Unit(r3.Vec{X: -0.4, Y: 0.6, Z: -0.7})

const (
	ambient = 0.35
	diffuse = 0.65
)

func drawSphere(img *image.NRGBA, p Projection, sp Sphere) {
	rpx := sp.Radius * p.Scale
	if rpx < 0.5 {
		rpx = 0.5
	}
	x0, x1 := int(p.X-rpx)-1, int(p.X+rpx)+1
	y0, y1 := int(p.Y-rpx)-1, int(p.Y+rpx)+1

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - p.X) / rpx
			dy := (float64(y) + 0.5 - p.Y) / rpx
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			nz := math.Sqrt(1 - d2)
			n := r3.Vec{X: dx, Y: -dy, Z: nz}
			shade := ambient + diffuse*math.Max(0, r3.Dot(n, lightDir)*-1)
			blend(img, x, y, scaleColor(sp.Color, shade), sp.Alpha)
		}
	}
}

func drawCylinder(img *image.NRGBA, pa, pb Projection, cy Cylinder) {
	rpx := cy.Radius * (pa.Scale + pb.Scale) / 2
	if rpx < 0.5 {
		rpx = 0.5
	}
	x0 := int(math.Min(pa.X, pb.X)-rpx) - 1
	x1 := int(math.Max(pa.X, pb.X)+rpx) + 1
	y0 := int(math.Min(pa.Y, pb.Y)-rpx) - 1
	y1 := int(math.Max(pa.Y, pb.Y)+rpx) + 1

	ex, ey := pb.X-pa.X, pb.Y-pa.Y
	len2 := ex*ex + ey*ey

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			t := 0.0
			if len2 > 0 {
				t = ((px-pa.X)*ex + (py-pa.Y)*ey) / len2
			}
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			cx, cyy := pa.X+t*ex, pa.Y+t*ey
			d := math.Hypot(px-cx, py-cyy)
			if d > rpx {
				continue
			}
			// Shade by how far off the tube axis the pixel sits.
			nz := math.Sqrt(math.Max(0, 1-(d/rpx)*(d/rpx)))
			shade := ambient + diffuse*(0.3+0.7*nz)
			blend(img, x, y, scaleColor(cy.Color, shade), cy.Alpha)
		}
	}
}

func triangleShade(cam *Camera, tr Triangle) float64 {
	n := r3.Cross(r3.Sub(tr.P1, tr.P0), r3.Sub(tr.P2, tr.P0))
	norm := r3.Norm(n)
	if norm == 0 {
		return ambient
	}
	n = r3.Scale(1/norm, n)
	// Two-sided lighting: isosurface winding is arbitrary.
	return ambient + diffuse*math.Abs(r3.Dot(n, r3.Unit(r3.Sub(cam.Position(), tr.P0))))
}

func drawTriangle(img *image.NRGBA, p0, p1, p2 Projection, c color.NRGBA, alpha float64) {
	x0 := int(math.Min(p0.X, math.Min(p1.X, p2.X)))
	x1 := int(math.Max(p0.X, math.Max(p1.X, p2.X))) + 1
	y0 := int(math.Min(p0.Y, math.Min(p1.Y, p2.Y)))
	y1 := int(math.Max(p0.Y, math.Max(p1.Y, p2.Y))) + 1

	area := (p1.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(p1.Y-p0.Y)
	if area == 0 {
		return
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0 := ((p1.X-px)*(p2.Y-py) - (p2.X-px)*(p1.Y-py)) / area
			w1 := ((p2.X-px)*(p0.Y-py) - (p0.X-px)*(p2.Y-py)) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			blend(img, x, y, c, alpha)
		}
	}
}

func drawLine(img *image.NRGBA, pa, pb Projection, c color.NRGBA) {
	steps := int(math.Max(math.Abs(pb.X-pa.X), math.Abs(pb.Y-pa.Y))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		blend(img, int(pa.X+t*(pb.X-pa.X)), int(pa.Y+t*(pb.Y-pa.Y)), c, 1)
	}
}

// 3x5 bitmap glyphs, enough for atom indices.
var glyphs = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b011, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b010, 0b010, 0b010},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
}

func drawLabel(img *image.NRGBA, p Projection, l Label) {
	const scale = 2
	x := int(p.X) - len(l.Text)*4*scale/2
	y := int(p.Y) - 5*scale/2
	for _, r := range l.Text {
		g, ok := glyphs[r]
		if !ok {
			x += 4 * scale
			continue
		}
		for row := 0; row < 5; row++ {
			for col := 0; col < 3; col++ {
				if g[row]&(1<<(2-col)) == 0 {
					continue
				}
				for sy := 0; sy < scale; sy++ {
					for sx := 0; sx < scale; sx++ {
						blend(img, x+col*scale+sx, y+row*scale+sy, l.Color, 1)
					}
				}
			}
		}
		x += 4 * scale
	}
}

func scaleColor(c color.NRGBA, shade float64) color.NRGBA {
	clamp := func(v float64) uint8 {
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.NRGBA{
		R: clamp(float64(c.R) * shade),
		G: clamp(float64(c.G) * shade),
		B: clamp(float64(c.B) * shade),
		A: 0xff,
	}
}

func blend(img *image.NRGBA, x, y int, c color.NRGBA, alpha float64) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	if alpha >= 1 {
		img.SetNRGBA(x, y, c)
		return
	}
	if alpha <= 0 {
		return
	}
	old := img.NRGBAAt(x, y)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(b)*(1-alpha) + float64(a)*alpha)
	}
	img.SetNRGBA(x, y, color.NRGBA{
		R: mix(c.R, old.R),
		G: mix(c.G, old.G),
		B: mix(c.B, old.B),
		A: 0xff,
	})
}
