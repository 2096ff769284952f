package reconcile

import (
	"errors"
	"fmt"

	"github.com/danmuck/megactl/internal/megaverse"
)

var ErrDimensionMismatch = errors.New("reconcile: grid dimensions differ")

const (
	ActionCreate = "create"
	ActionDelete = "delete"
)

// Mutation is one remote change required to converge a single cell. For a
// create, Object is the goal occupant; for a delete, the current one, since
// each object kind has its own delete endpoint.
type Mutation struct {
	Position megaverse.Position
	Action   string
	Object   megaverse.Object
}

// Diff computes the ordered mutation plan converging current to goal.
// Positions are scanned in row-major order; within one position the delete
// of a wrong occupant always precedes the create of the wanted object, so
// the remote never sees a create against an occupied cell.
func Diff(current, goal megaverse.Grid) ([]Mutation, error) {
	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("current map: %w", err)
	}
	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("goal map: %w", err)
	}
	curRows, curCols := current.Dimensions()
	goalRows, goalCols := goal.Dimensions()
	if curRows != goalRows || curCols != goalCols {
		return nil, fmt.Errorf("%w: current %dx%d, goal %dx%d",
			ErrDimensionMismatch, curRows, curCols, goalRows, goalCols)
	}

	var plan []Mutation
	for row := 0; row < goalRows; row++ {
		for column := 0; column < goalCols; column++ {
			have := current[row][column]
			want := goal[row][column]
			if have == want {
				continue
			}
			pos := megaverse.Position{Row: row, Column: column}
			if have.Kind != megaverse.Empty {
				plan = append(plan, Mutation{Position: pos, Action: ActionDelete, Object: have})
			}
			if want.Kind != megaverse.Empty {
				plan = append(plan, Mutation{Position: pos, Action: ActionCreate, Object: want})
			}
		}
	}
	return plan, nil
}
