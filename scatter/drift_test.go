package scatter

import (
	"testing"

	"pgregory.net/rapid"
)

func points() []DriftPoint {
	return scenarioPoints("head", "tail")
}

func TestPositionAtZeroIsBase(t *testing.T) {
	for _, p := range points() {
		if got := Position(p, 0, 6); got != p.Base {
			t.Errorf("%s: Position(0) = %v, want %v", p.ID, got, p.Base)
		}
	}
}

func TestProgressBounds(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{-10, 0},
		{0, 0},
		{100, 1},
		{250, 1},
	}
	for _, tt := range tests {
		if got := Progress(tt.level); got != tt.want {
			t.Errorf("Progress(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestZoneOf(t *testing.T) {
	if ZoneOf(49.9, 50) != ZoneLeft {
		t.Error("49.9 should be left of 50")
	}
	if ZoneOf(50, 50) != ZoneRight {
		t.Error("the boundary itself belongs to the right zone")
	}
}

func TestPositionIsPure(t *testing.T) {
	pts := points()
	rapid.Check(t, func(t *rapid.T) {
		level := rapid.IntRange(0, 100).Draw(t, "level")
		p := pts[rapid.IntRange(0, len(pts)-1).Draw(t, "point")]
		a := Position(p, level, 6)
		b := Position(p, level, 6)
		if a != b {
			t.Fatalf("Position(%s, %d) not repeatable: %v vs %v", p.ID, level, a, b)
		}
	})
}

func TestPositionStaysInDomain(t *testing.T) {
	pts := points()
	rapid.Check(t, func(t *rapid.T) {
		level := rapid.IntRange(-50, 150).Draw(t, "level")
		wobble := rapid.Float64Range(0, 200).Draw(t, "wobble")
		for _, p := range pts {
			pos := Position(p, level, wobble)
			if pos.X < 0 || pos.X > 100 || pos.Y < 0 || pos.Y > 100 {
				t.Fatalf("%s at level %d: %v outside [0, 100]", p.ID, level, pos)
			}
		}
	})
}

func TestTailCrossesBoundaryOnce(t *testing.T) {
	var tail DriftPoint
	for _, p := range points() {
		if p.ID == LongTailUser {
			tail = p
		}
	}

	crossings := 0
	prev := ZoneOf(Position(tail, 0, 6).X, 50)
	for level := 1; level <= 100; level++ {
		z := ZoneOf(Position(tail, level, 6).X, 50)
		if z != prev {
			crossings++
		}
		prev = z
	}
	if crossings != 1 {
		t.Fatalf("tail changed zone %d times, want exactly 1", crossings)
	}
	if prev != ZoneRight {
		t.Fatalf("tail ends in %v, want right", prev)
	}

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 100).Draw(t, "a")
		b := rapid.IntRange(a, 100).Draw(t, "b")
		wobble := rapid.Float64Range(0, 20).Draw(t, "wobble")
		if ZoneOf(Position(tail, a, wobble).X, 50) == ZoneRight &&
			ZoneOf(Position(tail, b, wobble).X, 50) != ZoneRight {
			t.Fatalf("tail returned left between levels %d and %d", a, b)
		}
	})
}

func TestHeadNeverCrosses(t *testing.T) {
	head := points()[0]
	for level := 0; level <= 100; level++ {
		if z := ZoneOf(Position(head, level, 6).X, 50); z != ZoneLeft {
			t.Fatalf("head in %v at level %d", z, level)
		}
	}
}
