package engine

import "github.com/rs/zerolog"

// CutStatistics collects counts for each pruning/cutoff mechanism.
type CutStatistics struct {
	Nodes           uint64
	TTCutoffs       uint64
	RepetitionDraws uint64
	NullMoveCutoffs uint64
	StandPatCutoffs uint64
	BetaCutoffs     uint64
	FutilityPrunes  uint64
	Mates           uint64
	Stalemates      uint64
}

func (c CutStatistics) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", c.Nodes).
		Uint64("tt", c.TTCutoffs).
		Uint64("repetition", c.RepetitionDraws).
		Uint64("null-move", c.NullMoveCutoffs).
		Uint64("stand-pat", c.StandPatCutoffs).
		Uint64("beta", c.BetaCutoffs).
		Uint64("futility", c.FutilityPrunes).
		Uint64("mates", c.Mates).
		Uint64("stalemates", c.Stalemates)
}
