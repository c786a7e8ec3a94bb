package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"raychess/raymg"
)

type divideEntry struct {
	move  string
	nodes uint64
}

func main() {
	fen := flag.String("fen", raymg.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "With -divide, check every count against goosemg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *depth <= 0 {
		log.Fatal().Int("depth", *depth).Msg("depth-must-be-positive")
	}

	pos, white, err := raymg.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Str("fen", *fen).Msg("parse-fen")
	}

	if *divide {
		entries, reference, err := perftDivide(pos, white, *fen, *depth, *verify)
		if err != nil {
			log.Fatal().Err(err).Msg("divide")
		}
		var sum uint64
		mismatches := 0
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.move, e.nodes)
			sum += e.nodes
			if *verify && reference[e.move] != e.nodes {
				mismatches++
				log.Error().Str("move", e.move).Uint64("nodes", e.nodes).Uint64("goosemg", reference[e.move]).Msg("divide-mismatch")
			}
			delete(reference, e.move)
		}
		fmt.Printf("Total: %d\n", sum)
		for move := range reference {
			mismatches++
			log.Error().Str("move", move).Msg("divide-missing-move")
		}
		if mismatches > 0 {
			os.Exit(1)
		}
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal().Err(err).Msg("create-cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("start-cpuprofile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += raymg.Perft(pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatal().Err(err).Msg("create-memprofile")
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("write-memprofile")
		}
		_ = f.Close()
	}
}

// perftDivide returns the per-move counts in absolute coordinates, sorted.
// With verify it runs goosemg's divide on the same FEN alongside.
func perftDivide(pos raymg.Position, white bool, fen string, depth int, verify bool) ([]divideEntry, map[string]uint64, error) {
	var (
		g         errgroup.Group
		entries   []divideEntry
		reference = map[string]uint64{}
	)
	g.Go(func() error {
		for m, n := range raymg.PerftDivide(pos, depth) {
			if !white {
				m = m.Mirror()
			}
			entries = append(entries, divideEntry{move: m.String(), nodes: n})
		}
		return nil
	})
	if verify {
		g.Go(func() error {
			board, err := goosemg.ParseFEN(fen)
			if err != nil {
				return fmt.Errorf("goosemg: %w", err)
			}
			for m, n := range goosemg.PerftDivide(board, depth) {
				reference[m.String()] = n
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	slices.SortFunc(entries, func(a, b divideEntry) int {
		switch {
		case a.move < b.move:
			return -1
		case a.move > b.move:
			return 1
		}
		return 0
	})
	return entries, reference, nil
}
