package searcher

import (
	"fmt"
	"kalah/game"
)

// SwapPolicy decides whether to take over the offered seat under the pie rule. The opponent of the
// offered seat moves next.
type SwapPolicy func(board *game.Board, offered game.Side) bool

// AlwaysSwap takes every swap.
func AlwaysSwap(*game.Board, game.Side) bool {
	return true
}

// EvaluateSwap takes the swap when the offered seat evaluates as favorable.
func EvaluateSwap(board *game.Board, offered game.Side) bool {
	score, err := BoardHeuristic(board, offered, offered.Opposite())
	return err == nil && score > 0
}

// SwapPolicyByName resolves "always" or "evaluate".
func SwapPolicyByName(name string) (SwapPolicy, error) {
	switch name {
	case "", "always":
		return AlwaysSwap, nil
	case "evaluate":
		return EvaluateSwap, nil
	default:
		return nil, fmt.Errorf("unknown swap policy %q", name)
	}
}
