package physics

import (
	"testing"

	"github.com/milk9111/tilephysics/ecs/component"
)

func TestSlopeHeightCorners(t *testing.T) {
	ts := vec(32, 32)
	cases := []struct {
		tile  component.TileType
		left  float64
		right float64
	}{
		{component.TileSlope0_1, 0, 32},
		{component.TileSlope0_2, 0, 16},
		{component.TileSlope2_1, 16, 32},
		{component.TileSlope1_0, 32, 0},
		{component.TileSlope2_0, 16, 0},
		{component.TileSlope1_2, 32, 16},
	}

	for _, c := range cases {
		t.Run(c.tile.String(), func(t *testing.T) {
			if got := SlopeHeight(0, c.tile, ts); got != c.left {
				t.Fatalf("left height = %v, want %v", got, c.left)
			}
			if got := SlopeHeight(ts.X, c.tile, ts); got != c.right {
				t.Fatalf("right height = %v, want %v", got, c.right)
			}
			// Widths outside the tile clamp to the nearest edge.
			if got := SlopeHeight(-10, c.tile, ts); got != c.left {
				t.Fatalf("clamped left height = %v, want %v", got, c.left)
			}
			if got := SlopeHeight(100, c.tile, ts); got != c.right {
				t.Fatalf("clamped right height = %v, want %v", got, c.right)
			}
		})
	}
}

func TestSlopeHeightMonotonicAndContinuous(t *testing.T) {
	ts := vec(32, 32)
	slopes := []component.TileType{
		component.TileSlope0_1, component.TileSlope0_2, component.TileSlope2_1,
		component.TileSlope1_0, component.TileSlope2_0, component.TileSlope1_2,
	}
	const steps = 64
	for _, tile := range slopes {
		t.Run(tile.String(), func(t *testing.T) {
			rising := SlopeHeight(ts.X, tile, ts) > SlopeHeight(0, tile, ts)
			prev := SlopeHeight(0, tile, ts)
			maxStep := ts.Y / steps
			for i := 1; i <= steps; i++ {
				h := SlopeHeight(ts.X*float64(i)/steps, tile, ts)
				if rising && h < prev || !rising && h > prev {
					t.Fatalf("height not monotonic at step %d: %v then %v", i, prev, h)
				}
				if d := h - prev; d > maxStep+1e-9 || d < -maxStep-1e-9 {
					t.Fatalf("height jumped by %v at step %d", d, i)
				}
				prev = h
			}
		})
	}
}

func TestSlopeHeightNonSlope(t *testing.T) {
	for _, tile := range []component.TileType{component.TileEmpty, component.TileSolid, component.TileLadder, component.TileHazard} {
		if h := SlopeHeight(16, tile, vec(32, 32)); h != 0 {
			t.Fatalf("%s: expected 0, got %v", tile, h)
		}
	}
	if h := SlopeHeight(16, component.TileSlope0_1, vec(0, 32)); h != 0 {
		t.Fatalf("zero-width tile should have no slope, got %v", h)
	}
}
