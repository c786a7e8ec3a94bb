package engine

import (
	"raychess/raymg"
)

// KillerTable remembers, per position, the last move that caused a beta
// cutoff. It doubles as the hash move for ordering and as the PV source.
type KillerTable struct {
	table *transTable[raymg.Position, raymg.Move]
}

func newKillerTable(size int) KillerTable {
	return KillerTable{table: newTransTable[raymg.Position, raymg.Move](size)}
}

func (k KillerTable) InsertKiller(pos raymg.Position, move raymg.Move) {
	k.table.put(pos, move)
}

func (k KillerTable) Killer(pos raymg.Position) (raymg.Move, bool) {
	return k.table.get(pos)
}

// Clear the killer moves table.
func (k KillerTable) ClearKillers() {
	k.table.clear()
}
