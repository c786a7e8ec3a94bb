package engine

import (
	"testing"

	"raychess/raymg"
)

func benchSearch(b *testing.B, fen string, depth int) {
	root, _, err := raymg.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := newTestSearcher(WithHashMB(16), WithMaxDepth(depth))
		for range s.Search([]raymg.Position{root}) {
		}
	}
}

func BenchmarkSearch_Initial_D5(b *testing.B) {
	benchSearch(b, raymg.FENStartPos, 5)
}

func BenchmarkSearch_Kiwipete_D4(b *testing.B) {
	benchSearch(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4)
}

func BenchmarkTransTablePut(b *testing.B) {
	tt := newTransTable[scoreKey, bounds](16 * megabyte)
	key := scoreKey{pos: raymg.Initial()}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key.depth = i & 63
		tt.put(key, bounds{lower: i, upper: i})
	}
}
