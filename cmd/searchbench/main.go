package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"raychess/engine"
	"raychess/raymg"
)

func main() {
	depthFlag := flag.Int("depth", 6, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", raymg.FENStartPos, "FEN to search")
	hashFlag := flag.Int("hash", engine.DefaultHashMB, "search table size in MB")
	verbose := flag.Bool("v", false, "log per-depth statistics")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth-must-be-positive")
	}
	root, white, err := raymg.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("parse-fen")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("create-cpuprofile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("start-cpuprofile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", *fenFlag, *depthFlag, *repeatFlag)

	startAll := time.Now()
	var totalNodes uint64
	for i := 0; i < *repeatFlag; i++ {
		// Fresh tables for each run
		searcher := engine.NewSearcher(
			engine.WithHashMB(*hashFlag),
			engine.WithMaxDepth(*depthFlag),
			engine.WithLogger(log.Logger),
		)

		iterStart := time.Now()
		var last engine.Update
		for u := range searcher.Search([]raymg.Position{root}) {
			if u.FailHigh() && u.Move != raymg.NullMove {
				last = u
			}
		}
		iterElapsed := time.Since(iterStart)
		stats := searcher.Stats()
		totalNodes += stats.Nodes

		best := last.Move
		if !white {
			best = best.Mirror()
		}
		fmt.Printf("iteration %d: bestmove %v score %d nodes %d time=%v\n", i+1, best, last.Score, stats.Nodes, iterElapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nps: %.0f\n", totalElapsed, float64(totalNodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("create-memprofile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("write-memprofile")
		}
	}
}
