package game

// Side identifies one of the two players. Its index selects the player's row on the board.
type Side int

const (
	South Side = iota
	North
)

func (s Side) Opposite() Side {
	if s == South {
		return North
	}
	return South
}

// Index returns the board row of the side (South 0, North 1).
func (s Side) Index() int {
	return int(s)
}

func (s Side) String() string {
	switch s {
	case South:
		return "South"
	case North:
		return "North"
	default:
		return "Unknown"
	}
}
