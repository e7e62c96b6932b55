// Package protocol encodes and decodes the line-based messages exchanged with the game server.
//
// Server messages:
//   - START;<South|North>   the game begins, naming our seat
//   - CHANGE;<move>;<board>;<turn>
//     move is the pit just played or SWAP, board lists North pits 1..holes, North store,
//     South pits 1..holes, South store, and turn is YOU, OPP or END
//   - END                   the game is over
//
// Agent messages are MOVE;<hole> and SWAP.
package protocol

import (
	"fmt"
	"kalah/game"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrMalformedMessage = errors.New("malformed message")

type MessageType int

const (
	Start MessageType = iota
	State
	End
)

func (t MessageType) String() string {
	switch t {
	case Start:
		return "START"
	case State:
		return "CHANGE"
	case End:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Swap is the move reported when the opponent exercised the pie rule.
const Swap = -1

// MoveTurn is the content of a state message.
type MoveTurn struct {
	Move  int  // Pit played by the last mover, or Swap
	Again bool // The agent has to move next
	End   bool // The game is over
}

func GetMessageType(message string) (MessageType, error) {
	switch {
	case strings.HasPrefix(message, "START"):
		return Start, nil
	case strings.HasPrefix(message, "CHANGE"):
		return State, nil
	case strings.HasPrefix(message, "END"):
		return End, nil
	}
	return 0, errors.Wrapf(ErrMalformedMessage, "unknown message type in %q", message)
}

// InterpretStartMessage reports whether the agent plays South and therefore moves first.
func InterpretStartMessage(message string) (bool, error) {
	switch {
	case strings.HasSuffix(message, "South"):
		return true, nil
	case strings.HasSuffix(message, "North"):
		return false, nil
	}
	return false, errors.Wrapf(ErrMalformedMessage, "unknown side in %q", message)
}

// InterpretStateMessage overwrites board with the snapshot in message. The board is left untouched
// if the message is malformed.
func InterpretStateMessage(message string, board *game.Board) (MoveTurn, error) {
	fields := strings.Split(message, ";")
	if len(fields) != 4 {
		return MoveTurn{}, errors.Wrapf(ErrMalformedMessage, "expected 4 fields, got %d", len(fields))
	}

	turn := MoveTurn{}
	if fields[1] == "SWAP" {
		turn.Move = Swap
	} else {
		move, err := strconv.Atoi(fields[1])
		if err != nil {
			return MoveTurn{}, errors.Wrapf(ErrMalformedMessage, "illegal move %q", fields[1])
		}
		turn.Move = move
	}

	seeds, err := parseBoard(fields[2], board.Holes())
	if err != nil {
		return MoveTurn{}, err
	}

	switch fields[3] {
	case "YOU":
		turn.Again = true
	case "OPP":
	case "END":
		turn.End = true
	default:
		return MoveTurn{}, errors.Wrapf(ErrMalformedMessage, "illegal turn %q", fields[3])
	}

	if err := populate(board, seeds); err != nil {
		return MoveTurn{}, err
	}
	return turn, nil
}

func parseBoard(field string, holes int) ([]int, error) {
	parts := strings.Split(field, ",")
	if len(parts) != 2*(holes+1) {
		return nil, errors.Wrapf(ErrMalformedMessage, "board has %d values, expected %d", len(parts), 2*(holes+1))
	}
	seeds := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrMalformedMessage, "illegal seed count %q", part)
		}
		seeds[i] = n
	}
	return seeds, nil
}

// populate copies a snapshot ordered North pits, North store, South pits, South store.
func populate(board *game.Board, seeds []int) error {
	holes := board.Holes()
	for i, side := range []game.Side{game.North, game.South} {
		row := seeds[i*(holes+1) : (i+1)*(holes+1)]
		for hole := 1; hole <= holes; hole++ {
			if err := board.SetSeeds(side, hole, row[hole-1]); err != nil {
				return err
			}
		}
		board.SetSeedsInStore(side, row[holes])
	}
	return nil
}

func CreateMoveMessage(hole int) string {
	return fmt.Sprintf("MOVE;%d\n", hole)
}

func CreateSwapMessage() string {
	return "SWAP\n"
}
