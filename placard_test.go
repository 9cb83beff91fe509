package placard

import (
	"math"
	"testing"
)

func TestColorToRGBA(t *testing.T) {
	tests := []struct {
		name       string
		c          Color
		r, g, b, a uint8
	}{
		{"white", ColorWhite, 255, 255, 255, 255},
		{"half alpha premultiplies", Color{1, 0, 0, 0.5}, 127, 0, 0, 127},
		{"clamped", Color{2, -1, 0, 1}, 255, 0, 0, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.toRGBA()
			if got.R != tt.r || got.G != tt.g || got.B != tt.b || got.A != tt.a {
				t.Errorf("toRGBA = %+v", got)
			}
		})
	}
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	if got := a.Add(b); got != (Vec3{5, -3, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 7, -3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot = %v, want 12", got)
	}
	if got := (Vec3{1, 0, 0}).Cross(Vec3{0, 1, 0}); got != (Vec3{0, 0, 1}) {
		t.Errorf("X cross Y = %v, want Z", got)
	}
	if got := (Vec3{3, 4, 0}).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := (Vec3{0, 0, -7}).Normalize(); got != (Vec3{0, 0, -1}) {
		t.Errorf("Normalize = %v", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBoxBasics(t *testing.T) {
	b := BoxFromSize(Vec3{4, 6, 8})
	if b.Min != (Vec3{-2, -3, -4}) || b.Max != (Vec3{2, 3, 4}) {
		t.Errorf("BoxFromSize = %+v", b)
	}
	if b.Size() != (Vec3{4, 6, 8}) {
		t.Errorf("Size = %v", b.Size())
	}
	if b.Center() != (Vec3{}) {
		t.Errorf("Center = %v", b.Center())
	}
	if b.Empty() || !(Box{}).Empty() {
		t.Error("Empty wrong")
	}
	moved := b.Translate(Vec3{10, 0, 0})
	if moved.Center() != (Vec3{10, 0, 0}) {
		t.Errorf("Translate center = %v", moved.Center())
	}
}

func TestBoxIntersects(t *testing.T) {
	a := BoxFromSize(Vec3{2, 2, 2})
	tests := []struct {
		name string
		o    Box
		want bool
	}{
		{"same", a, true},
		{"overlap", a.Translate(Vec3{1, 1, 1}), true},
		{"touching face", a.Translate(Vec3{2, 0, 0}), true},
		{"apart on z", a.Translate(Vec3{0, 0, 3}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.o); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxIntersectRay(t *testing.T) {
	b := BoxFromSize(Vec3{2, 2, 2})
	tests := []struct {
		name  string
		r     Ray
		hit   bool
		wantT float64
	}{
		{"head on", Ray{Vec3{0, 0, 10}, Vec3{0, 0, -1}}, true, 9},
		{"from inside", Ray{Vec3{0, 0, 0}, Vec3{1, 0, 0}}, true, 0},
		{"pointing away", Ray{Vec3{0, 0, 10}, Vec3{0, 0, 1}}, false, 0},
		{"miss to the side", Ray{Vec3{5, 0, 10}, Vec3{0, 0, -1}}, false, 0},
		{"parallel outside slab", Ray{Vec3{0, 5, 0}, Vec3{1, 0, 0}}, false, 0},
		{"diagonal", Ray{Vec3{-5, 0, 5}, Vec3{1, 0, -1}.Normalize()}, true, 4 * math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.IntersectRay(tt.r)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !approxEqual(got, tt.wantT, 1e-9) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestRayIntersectPlane(t *testing.T) {
	tests := []struct {
		name   string
		r      Ray
		point  Vec3
		normal Vec3
		hit    bool
		at     Vec3
	}{
		{"facing", Ray{Vec3{1, 2, 10}, Vec3{0, 0, -1}}, Vec3{}, Vec3{0, 0, 1}, true, Vec3{1, 2, 0}},
		{"behind", Ray{Vec3{0, 0, -10}, Vec3{0, 0, -1}}, Vec3{}, Vec3{0, 0, 1}, false, Vec3{}},
		{"parallel", Ray{Vec3{0, 0, 10}, Vec3{1, 0, 0}}, Vec3{}, Vec3{0, 0, 1}, false, Vec3{}},
		{"offset plane", Ray{Vec3{0, 0, 10}, Vec3{0, 0, -1}}, Vec3{0, 0, 4}, Vec3{0, 0, -1}, true, Vec3{0, 0, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tt.r.IntersectPlane(tt.point, tt.normal)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !vecApprox(tt.r.At(d), tt.at, 1e-9) {
				t.Errorf("At = %v, want %v", tt.r.At(d), tt.at)
			}
		})
	}
}
