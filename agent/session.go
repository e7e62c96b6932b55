package agent

import (
	"errors"
	"fmt"
	"kalah/communication"
	"kalah/game"
	"kalah/meta"
	"kalah/protocol"
	"kalah/searcher"

	"github.com/rs/zerolog/log"
)

var ErrNoMove = errors.New("no legal move available")

type Option func(s *Session)

// Session plays one game against the server: it tracks our seat, the live board and whether the
// pie rule may still be used.
type Session struct {
	comm       communication.Communicator
	board      *game.Board
	side       game.Side
	canSwap    bool
	minimax    *searcher.Minimax
	swapPolicy searcher.SwapPolicy
	lenient    bool
	swapped    bool // Sent a swap that the server has not echoed yet

	holes, seeds    int
	searcherOptions []searcher.Option
}

func WithBoardSize(holes, seeds int) Option {
	return func(s *Session) {
		if holes > 0 && seeds >= 0 {
			s.holes, s.seeds = holes, seeds
		}
	}
}

func WithSearcherOptions(options ...searcher.Option) Option {
	return func(s *Session) {
		s.searcherOptions = append(s.searcherOptions, options...)
	}
}

func WithSwapPolicy(policy searcher.SwapPolicy) Option {
	return func(s *Session) {
		if policy != nil {
			s.swapPolicy = policy
		}
	}
}

// WithLenient skips malformed messages instead of ending the session. Invalid holes stay fatal.
func WithLenient() Option {
	return func(s *Session) {
		s.lenient = true
	}
}

func NewSession(comm communication.Communicator, options ...Option) *Session {
	s := &Session{ // Default values
		comm:       comm,
		side:       game.South,
		canSwap:    true,
		swapPolicy: searcher.AlwaysSwap,
		holes:      meta.HOLES,
		seeds:      meta.SEEDS,
	}
	for _, option := range options {
		option(s)
	}
	s.board = game.NewBoard(s.holes, s.seeds)
	s.minimax = searcher.NewMinimax(s.side, s.searcherOptions...)
	return s
}

func (s *Session) Side() game.Side {
	return s.side
}

func (s *Session) Board() *game.Board {
	return s.board
}

// Run handles messages until the game ends or a fatal error occurs.
func (s *Session) Run() error {
	for {
		message, err := s.comm.ReceiveMessage()
		if err != nil {
			return fmt.Errorf("failed to receive message: %w", err)
		}
		done, err := s.HandleMessage(message)
		if err != nil {
			return err
		}
		if done {
			log.Info().
				Stringer("side", s.side).
				Int("store", s.board.SeedsInStore(s.side)).
				Int("opponent_store", s.board.SeedsInStore(s.side.Opposite())).
				Msg("game over")
			return nil
		}
	}
}

// HandleMessage reacts to one server message and reports whether the game is over.
func (s *Session) HandleMessage(message string) (bool, error) {
	messageType, err := protocol.GetMessageType(message)
	if err != nil {
		return false, s.reject(err)
	}
	log.Debug().Stringer("type", messageType).Str("message", message).Msg("received message")

	switch messageType {
	case protocol.Start:
		south, err := protocol.InterpretStartMessage(message)
		if err != nil {
			return false, s.reject(err)
		}
		if south {
			s.canSwap = false
			log.Info().Msg("starting as South")
			return false, s.play(meta.OPENING_HOLE)
		}
		s.flip()
		log.Info().Msg("starting as North")
		return false, nil

	case protocol.State:
		turn, err := protocol.InterpretStateMessage(message, s.board)
		if err != nil {
			return false, s.reject(err)
		}
		if turn.End {
			return true, nil
		}
		if turn.Move == protocol.Swap {
			if s.swapped {
				s.swapped = false
			} else {
				s.flip()
				log.Info().Stringer("side", s.side).Msg("opponent swapped")
			}
		}
		if !turn.Again {
			return false, nil
		}
		return false, s.takeTurn()

	default: // End
		return true, nil
	}
}

func (s *Session) takeTurn() error {
	if s.canSwap {
		s.canSwap = false
		if s.swapPolicy(s.board, s.side.Opposite()) {
			s.flip()
			s.swapped = true
			log.Info().Stringer("side", s.side).Msg("swapping")
			return s.send(protocol.CreateSwapMessage())
		}
	}

	hole, err := s.minimax.GetBestMove(s.board)
	if err != nil {
		return fmt.Errorf("failed to find move: %w", err)
	}
	if hole == 0 {
		return fmt.Errorf("%w for %s on %s", ErrNoMove, s.side, s.board)
	}
	return s.play(hole)
}

// play sends the move and applies it to the live board. The next state message overwrites the
// board with the server's snapshot.
func (s *Session) play(hole int) error {
	if _, err := s.board.MakeMove(s.side, hole); err != nil {
		return fmt.Errorf("failed to play hole %d: %w", hole, err)
	}
	log.Debug().Stringer("side", s.side).Int("hole", hole).Stringer("board", s.board).Msg("playing move")
	return s.send(protocol.CreateMoveMessage(hole))
}

func (s *Session) send(message string) error {
	if err := s.comm.SendMessage(message); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (s *Session) flip() {
	s.side = s.side.Opposite()
	s.minimax.UpdateSide(s.side)
}

// reject ends the session on a malformed message unless the session is lenient.
func (s *Session) reject(err error) error {
	if s.lenient && errors.Is(err, protocol.ErrMalformedMessage) {
		log.Warn().Err(err).Msg("skipping malformed message")
		return nil
	}
	return err
}
