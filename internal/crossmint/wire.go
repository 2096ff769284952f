package crossmint

import (
	"fmt"

	"github.com/danmuck/megactl/internal/megaverse"
)

// objectRequest is the body for every create/delete call. The remote
// expects candidateId inside the body, deletes included.
type objectRequest struct {
	CandidateID string              `json:"candidateId"`
	Row         int                 `json:"row"`
	Column      int                 `json:"column"`
	Color       megaverse.Color     `json:"color,omitempty"`
	Direction   megaverse.Direction `json:"direction,omitempty"`
}

type goalResponse struct {
	Goal [][]string `json:"goal"`
}

type mapResponse struct {
	Map struct {
		Content [][]*cellMetadata `json:"content"`
	} `json:"map"`
}

// cellMetadata is one nullable current-map cell: type 0 polyanet, 1 soloon,
// 2 cometh. A JSON null cell is empty space.
type cellMetadata struct {
	Type      int                 `json:"type"`
	Color     megaverse.Color     `json:"color,omitempty"`
	Direction megaverse.Direction `json:"direction,omitempty"`
}

func (m *cellMetadata) object() (megaverse.Object, error) {
	if m == nil {
		return megaverse.Object{}, nil
	}
	var obj megaverse.Object
	switch m.Type {
	case 0:
		obj = megaverse.Object{Kind: megaverse.Polyanet}
	case 1:
		obj = megaverse.Object{Kind: megaverse.Soloon, Color: m.Color}
	case 2:
		obj = megaverse.Object{Kind: megaverse.Cometh, Direction: m.Direction}
	default:
		return megaverse.Object{}, fmt.Errorf("%w: cell type %d", ErrMalformedResponse, m.Type)
	}
	if err := obj.Validate(); err != nil {
		return megaverse.Object{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return obj, nil
}

func decodeCurrentGrid(content [][]*cellMetadata) (megaverse.Grid, error) {
	grid := make(megaverse.Grid, len(content))
	for r, row := range content {
		grid[r] = make([]megaverse.Object, len(row))
		for c, cell := range row {
			obj, err := cell.object()
			if err != nil {
				return nil, fmt.Errorf("current map cell (%d,%d): %w", r, c, err)
			}
			grid[r][c] = obj
		}
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return grid, nil
}

func decodeGoalGrid(values [][]string) (megaverse.Grid, error) {
	grid := make(megaverse.Grid, len(values))
	for r, row := range values {
		grid[r] = make([]megaverse.Object, len(row))
		for c, value := range row {
			obj, err := megaverse.ParseGoalValue(value)
			if err != nil {
				return nil, fmt.Errorf("goal map cell (%d,%d): %w", r, c, err)
			}
			grid[r][c] = obj
		}
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return grid, nil
}
