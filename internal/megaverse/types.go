package megaverse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownGoalValue = errors.New("megaverse: unknown goal value")
	ErrInvalidObject    = errors.New("megaverse: invalid object")
)

// Position is one grid coordinate, row and column zero-based.
type Position struct {
	Row    int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
}

// ObjectKind tags the celestial object variant held by a cell.
type ObjectKind int

const (
	Empty ObjectKind = iota
	Polyanet
	Soloon
	Cometh
)

func (k ObjectKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Polyanet:
		return "polyanet"
	case Soloon:
		return "soloon"
	case Cometh:
		return "cometh"
	default:
		return fmt.Sprintf("objectkind(%d)", int(k))
	}
}

// Color is a Soloon attribute.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
	ColorWhite  Color = "white"
)

// Direction is a Cometh attribute.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Object is the tagged variant a cell holds. Color is set only for Soloons,
// Direction only for Comeths; the zero value is an empty cell.
type Object struct {
	Kind      ObjectKind
	Color     Color
	Direction Direction
}

// Validate enforces the attribute rules for each object kind.
func (o Object) Validate() error {
	switch o.Kind {
	case Empty, Polyanet:
		if o.Color != "" || o.Direction != "" {
			return fmt.Errorf("%w: %s carries no attributes", ErrInvalidObject, o.Kind)
		}
	case Soloon:
		if !validColor(o.Color) {
			return fmt.Errorf("%w: soloon color %q", ErrInvalidObject, o.Color)
		}
		if o.Direction != "" {
			return fmt.Errorf("%w: soloon carries no direction", ErrInvalidObject)
		}
	case Cometh:
		if !validDirection(o.Direction) {
			return fmt.Errorf("%w: cometh direction %q", ErrInvalidObject, o.Direction)
		}
		if o.Color != "" {
			return fmt.Errorf("%w: cometh carries no color", ErrInvalidObject)
		}
	default:
		return fmt.Errorf("%w: kind %s", ErrInvalidObject, o.Kind)
	}
	return nil
}

// GoalValue renders the object as the goal-map value string, e.g.
// "SPACE", "POLYANET", "BLUE_SOLOON", "UP_COMETH".
func (o Object) GoalValue() string {
	switch o.Kind {
	case Polyanet:
		return "POLYANET"
	case Soloon:
		return strings.ToUpper(string(o.Color)) + "_SOLOON"
	case Cometh:
		return strings.ToUpper(string(o.Direction)) + "_COMETH"
	default:
		return "SPACE"
	}
}

// ParseGoalValue maps one goal-map value string onto an Object.
func ParseGoalValue(value string) (Object, error) {
	v := strings.TrimSpace(value)
	switch {
	case v == "SPACE":
		return Object{}, nil
	case v == "POLYANET":
		return Object{Kind: Polyanet}, nil
	case strings.HasSuffix(v, "_SOLOON"):
		color := Color(strings.ToLower(strings.TrimSuffix(v, "_SOLOON")))
		if !validColor(color) {
			return Object{}, fmt.Errorf("%w: %q", ErrUnknownGoalValue, value)
		}
		return Object{Kind: Soloon, Color: color}, nil
	case strings.HasSuffix(v, "_COMETH"):
		direction := Direction(strings.ToLower(strings.TrimSuffix(v, "_COMETH")))
		if !validDirection(direction) {
			return Object{}, fmt.Errorf("%w: %q", ErrUnknownGoalValue, value)
		}
		return Object{Kind: Cometh, Direction: direction}, nil
	default:
		return Object{}, fmt.Errorf("%w: %q", ErrUnknownGoalValue, value)
	}
}

func validColor(c Color) bool {
	switch c {
	case ColorBlue, ColorRed, ColorPurple, ColorWhite:
		return true
	}
	return false
}

func validDirection(d Direction) bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}
