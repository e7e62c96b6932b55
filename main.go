package main

import (
	"flag"
	"fmt"
	"kalah/agent"
	"kalah/communication"
	"kalah/experiments"
	"kalah/meta"
	"kalah/searcher"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "agent", "agent plays over stdin/stdout, experiment runs local games")
	depth := flag.Int("depth", meta.MAX_DEPTH, "Search depth")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	lenient := flag.Bool("lenient", false, "Skip malformed messages instead of exiting")
	swap := flag.String("swap", "always", "Swap policy (always, evaluate)")
	experiment := flag.String("experiment", "depth", "Experiment to run (depth, swap)")
	games := flag.Int("games", experiments.NumGames, "Games per matchup")
	holes := flag.Int("holes", meta.HOLES, "Pits per side")
	seeds := flag.Int("seeds", meta.SEEDS, "Seeds per pit")
	out := flag.String("out", "experiments", "Directory for experiment records, empty to skip")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}) // Stdout carries the protocol

	switch *mode {
	case "agent":
		err = runAgent(*depth, *holes, *seeds, *swap, *lenient)
	case "experiment":
		err = runExperiment(*experiment, *depth, *games, *holes, *seeds, *out)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func runAgent(depth, holes, seeds int, swap string, lenient bool) error {
	policy, err := searcher.SwapPolicyByName(swap)
	if err != nil {
		return err
	}
	options := []agent.Option{
		agent.WithBoardSize(holes, seeds),
		agent.WithSearcherOptions(searcher.WithDepth(depth)),
		agent.WithSwapPolicy(policy),
	}
	if lenient {
		options = append(options, agent.WithLenient())
	}

	comm := communication.NewStreamCommunicator(os.Stdin, os.Stdout)
	return agent.NewSession(comm, options...).Run()
}

func runExperiment(name string, depth, games, holes, seeds int, out string) error {
	options := []experiments.Option{
		experiments.WithGames(games),
		experiments.WithBoardSize(holes, seeds),
		experiments.WithOutput(out),
	}

	var summaries []experiments.Summary
	var err error
	switch name {
	case "depth":
		depths := []int{}
		for d := 1; d <= depth; d += 2 {
			depths = append(depths, d)
		}
		summaries, err = experiments.RunDepthExperiment(depths, options...)
	case "swap":
		summaries, err = experiments.RunSwapExperiment(depth, options...)
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}

	for _, s := range summaries {
		fmt.Printf("agent%d vs agent%d: %d games, win rate %.2f, margin %.2f ± %.2f\n",
			s.Agent1.ID, s.Agent2.ID, s.Games, s.WinRate(), s.MeanMargin, s.StdDevMargin)
	}
	if err != nil {
		return fmt.Errorf("experiment %s had failures: %w", name, err)
	}
	return nil
}
