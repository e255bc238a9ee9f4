package grid

import "fmt"

// Direction is one of the four headings a snake can move in.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// vectors maps each direction to its unit vector in display space.
// Rows grow downward, so Up decreases the row.
var vectors = [...][2]int{
	Left:  {-1, 0},
	Right: {1, 0},
	Up:    {0, -1},
	Down:  {0, 1},
}

// Valid reports whether d is one of the four defined directions.
func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

// Vector returns the unit vector (dx, dy) for the direction.
// Panics on an invalid direction.
func (d Direction) Vector() (dx, dy int) {
	if !d.Valid() {
		panic(fmt.Sprintf("grid: invalid direction %d", int(d)))
	}
	v := vectors[d]
	return v[0], v[1]
}

// IsReverse reports whether other points exactly opposite to d,
// i.e. the sum of their unit vectors is (0, 0).
func (d Direction) IsReverse(other Direction) bool {
	return other == d.Opposite()
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	panic(fmt.Sprintf("grid: invalid direction %d", int(d)))
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name ("left", "right", "up", "down") to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("grid: unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler so directions read and
// write as names in YAML.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("grid: invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
