// meta/meta.go
package meta

// HOLES defines the number of pits per side.
const HOLES = 7

// SEEDS defines the initial number of seeds per pit.
const SEEDS = 7

// MAX_DEPTH defines the search depth in plies below each root move.
const MAX_DEPTH = 13

// OPENING_HOLE is the pit South sows first when it starts the game.
const OPENING_HOLE = 1

// MAX_MOVES bounds the length of a locally played game.
const MAX_MOVES = 1000
