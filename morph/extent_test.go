package morph

import (
	"errors"
	"math"
	"testing"
)

func TestPrincipalDirectionExtent_Rectangle(t *testing.T) {
	// Rectangle 4 x 1 in the xy-plane: principal axes are x then y.
	tree := NewTree(Axon, []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 0, Y: 1}})
	got, err := PrincipalDirectionExtent(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [3]float64{4, 1, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("extent[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPrincipalDirectionExtent_Line(t *testing.T) {
	tree := NewTree(Axon, []Point{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}, {X: 4, Y: 4, Z: 4}})
	got, err := PrincipalDirectionExtent(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 3 * math.Sqrt(3); math.Abs(got[0]-want) > 1e-9 {
		t.Errorf("first extent = %v, want %v", got[0], want)
	}
	if got[1] > 1e-9 || got[2] > 1e-9 {
		t.Errorf("off-axis extents = %v, %v, want 0", got[1], got[2])
	}
}

func TestPrincipalDirectionExtent_FewPoints(t *testing.T) {
	single := NewTree(Axon, []Point{{X: 3}})
	got, err := PrincipalDirectionExtent(single)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != [3]float64{} {
		t.Errorf("single point extents = %v, want zeros", got)
	}

	pair := NewTree(Axon, []Point{{X: 0}, {X: 0, Y: 2}})
	got, err = PrincipalDirectionExtent(pair)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got[0]-2) > 1e-9 || got[2] != 0 {
		t.Errorf("pair extents = %v, want [2 0 0]", got)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"first": FirstDirection, "Second": SecondDirection, " third ": ThirdDirection, "": FirstDirection,
	} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDirection("fourth"); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
	if s := SecondDirection.String(); s != "second" {
		t.Errorf("String() = %q", s)
	}
}

func TestDirection_Text(t *testing.T) {
	var d Direction
	if err := d.UnmarshalText([]byte("third")); err != nil || d != ThirdDirection {
		t.Errorf("UnmarshalText = %v, %v; want third", d, err)
	}
	if err := d.UnmarshalText([]byte("sideways")); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
	out, err := SecondDirection.MarshalText()
	if err != nil || string(out) != "second" {
		t.Errorf("MarshalText = %q, %v", out, err)
	}
	if _, err := Direction(5).MarshalText(); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
}
