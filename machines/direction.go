package machines

type Direction uint8

const (
	None Direction = iota
	Left
	Right
)

// ParseDirection maps L and R to Left and Right. Anything else is None.
func ParseDirection(s string) Direction {
	switch s {
	case "L":
		return Left
	case "R":
		return Right
	}
	return None
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "N"
}

// Offset is the position delta of one move.
func (d Direction) Offset() int {
	switch d {
	case Left:
		return -1
	case Right:
		return 1
	}
	return 0
}
