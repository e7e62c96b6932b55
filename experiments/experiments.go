package experiments

import (
	"fmt"
	"kalah/engine"
	"kalah/experiments/metrics"
	"kalah/game"
	"kalah/meta"
	"kalah/searcher"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

const NumGames = 10 // Per match up

type Option func(r *runner)

type runner struct {
	games  int
	holes  int
	seeds  int
	outDir string // No records are written when empty
}

func WithGames(games int) Option {
	return func(r *runner) {
		if games > 0 {
			r.games = games
		}
	}
}

func WithBoardSize(holes, seeds int) Option {
	return func(r *runner) {
		if holes > 0 && seeds >= 0 {
			r.holes, r.seeds = holes, seeds
		}
	}
}

func WithOutput(dir string) Option {
	return func(r *runner) {
		r.outDir = dir
	}
}

// Summary describes a matchup from the first agent's point of view.
type Summary struct {
	Agent1, Agent2 metrics.AgentConfig
	Games          int // Completed games
	Wins           int
	Draws          int
	Losses         int
	MeanMargin     float64 // Store difference
	StdDevMargin   float64
}

func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// RunDepthExperiment pairs a random baseline against minimax agents of each depth.
func RunDepthExperiment(depths []int, options ...Option) ([]Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Random: true, Seed: 1}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range depths {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Swap: "always"}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}

	return RunExperiment("depth", configs, matchUps, options...)
}

// RunSwapExperiment pairs the two swap policies at the same depth.
func RunSwapExperiment(depth int, options ...Option) ([]Summary, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, Depth: depth, Swap: "evaluate"},
		{ID: 2, Depth: depth, Swap: "always"},
	}
	matchUps := [][]metrics.AgentConfig{{configs[0], configs[1]}}

	return RunExperiment("swap", configs, matchUps, options...)
}

// RunExperiment plays every matchup with alternating seats. Failed games are skipped and reported
// together in the returned error.
func RunExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, options ...Option) ([]Summary, error) {
	r := &runner{ // Default values
		games: NumGames,
		holes: meta.HOLES,
		seeds: meta.SEEDS,
	}
	for _, option := range options {
		option(r)
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := []Summary{}
	var errs error

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]
		summary := Summary{Agent1: config1, Agent2: config2}
		margins := []float64{}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < r.games; i++ {
			count++
			first, second := config1, config2
			if i%2 == 1 {
				first, second = config2, config1
			}

			margin, gameMetric, moveMetrics, err := r.runGame(count, first, second, config1)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("game %d of matchup %d: %w", i+1, mi+1, err))
				continue
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			summary.Games++
			switch {
			case margin > 0:
				summary.Wins++
			case margin < 0:
				summary.Losses++
			default:
				summary.Draws++
			}
			margins = append(margins, float64(margin))

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}

		if len(margins) > 0 {
			summary.MeanMargin, summary.StdDevMargin = stat.MeanStdDev(margins, nil)
		}
		summaries = append(summaries, summary)
		log.Info().Msgf("completed matchup %d of %d: %d wins, %d draws, %d losses, mean margin %.2f",
			mi+1, len(matchUps), summary.Wins, summary.Draws, summary.Losses, summary.MeanMargin)
	}

	log.Info().Msgf("completed %s experiment", name)

	if r.outDir != "" {
		if err := store(r.outDir, name, configs, gameRecords, moveRecords); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return summaries, errs
}

// runGame returns the store margin of the agent with the tracked config.
func (r *runner) runGame(id int, first, second, tracked metrics.AgentConfig) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	firstPlayer, err := createPlayer(first, fmt.Sprintf("agent%d", first.ID), id)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}
	secondName := fmt.Sprintf("agent%d", second.ID)
	if secondName == firstPlayer.Name() {
		secondName += "'"
	}
	secondPlayer, err := createPlayer(second, secondName, id)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}

	e := engine.LocalEngine(firstPlayer, secondPlayer, r.holes, r.seeds)
	gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return 0, gameMetric, moveMetrics, err
	}

	trackedName := firstPlayer.Name()
	if tracked != first {
		trackedName = secondPlayer.Name()
	}
	margin := gameMetric.SouthStore - gameMetric.NorthStore
	if e.Seat(game.South).Name() != trackedName {
		margin = -margin
	}
	return margin, gameMetric, moveMetrics, nil
}

func createPlayer(config metrics.AgentConfig, name string, gameID int) (engine.Player, error) {
	if config.Random {
		return engine.NewRandomPlayer(name, config.Seed+uint64(gameID)), nil
	}

	swap, err := searcher.SwapPolicyByName(config.Swap)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	return engine.NewMinimaxPlayer(name, swap, options...), nil
}

func store(dir, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
