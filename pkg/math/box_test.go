package math

import "testing"

func TestBoxOf(t *testing.T) {
	b := BoxOf(Vec3{1, -1, 0}, Vec3{-2, 3, 0.5}, Vec3{0, 0, -4})
	want := Box{Start: Vec3{-2, -1, -4}, End: Vec3{1, 3, 0.5}}
	if b != want {
		t.Errorf("BoxOf() = %+v, want %+v", b, want)
	}
	if b.IsEmpty() {
		t.Error("box around points reported empty")
	}
	if !EmptyBox().IsEmpty() {
		t.Error("EmptyBox() should be empty")
	}
}

func TestBoxUnionIntersect(t *testing.T) {
	a := Box{Start: Vec3{0, 0, 0}, End: Vec3{2, 2, 2}}
	b := Box{Start: Vec3{1, 1, 1}, End: Vec3{3, 3, 3}}

	if got := a.Union(b); got != (Box{Start: Vec3{0, 0, 0}, End: Vec3{3, 3, 3}}) {
		t.Errorf("Union() = %+v", got)
	}
	if got := a.Intersect(b); got != (Box{Start: Vec3{1, 1, 1}, End: Vec3{2, 2, 2}}) {
		t.Errorf("Intersect() = %+v", got)
	}

	c := Box{Start: Vec3{5, 5, 5}, End: Vec3{6, 6, 6}}
	if !a.Intersect(c).IsEmpty() {
		t.Error("disjoint boxes should have an empty intersection")
	}
	if a.Intersect(b).IsEmpty() {
		t.Error("overlapping boxes have an empty intersection")
	}
}

func TestBoxLongestAxis(t *testing.T) {
	tests := []struct {
		size Vec3
		want Axis
	}{
		{Vec3{3, 1, 1}, AxisX},
		{Vec3{1, 3, 1}, AxisY},
		{Vec3{1, 1, 3}, AxisZ},
		{Vec3{2, 2, 2}, AxisX},
	}
	for _, tt := range tests {
		b := Box{End: tt.size}
		if got := b.LongestAxis(); got != tt.want {
			t.Errorf("LongestAxis(%v) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

