package megaverse

import (
	"errors"
	"testing"
)

func TestGridDimensions(t *testing.T) {
	var empty Grid
	if rows, cols := empty.Dimensions(); rows != 0 || cols != 0 {
		t.Fatalf("empty grid dimensions: %dx%d", rows, cols)
	}

	g := Grid{
		{{}, {Kind: Polyanet}, {}},
		{{}, {}, {}},
	}
	if rows, cols := g.Dimensions(); rows != 2 || cols != 3 {
		t.Fatalf("unexpected dimensions: %dx%d", rows, cols)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("rectangular grid should validate: %v", err)
	}
}

func TestGridValidateRagged(t *testing.T) {
	g := Grid{
		{{}, {}},
		{{}},
	}
	if err := g.Validate(); !errors.Is(err, ErrRaggedGrid) {
		t.Fatalf("expected ErrRaggedGrid, got %v", err)
	}
}
