package bitboard

import (
	"connect4/game"
)

// BitBoard is a position seen from the player about to move. current holds
// that player's stones and opponent the other player's; the roles swap after
// every move, so the board never records whose turn it is. Bit row*7+col is
// the cell at (row, col) with row 0 at the bottom.
type BitBoard struct {
	current  uint64
	opponent uint64
	heights  [game.Cols]uint8
}

// New returns the empty board.
func New() BitBoard {
	return BitBoard{}
}

// FromBoard encodes a snapshot from the perspective of player, who is assumed
// to be the next to move.
func FromBoard(b *game.Board, player uint8) BitBoard {
	var bb BitBoard
	for col := 0; col < game.Cols; col++ {
		for row := 0; row < game.Rows; row++ {
			cell := b.Cells[row][col]
			if cell == game.Empty {
				continue
			}
			if cell == player {
				bb.current |= 1 << index(row, col)
			} else {
				bb.opponent |= 1 << index(row, col)
			}
			bb.heights[col] = uint8(row + 1)
		}
	}
	return bb
}

// IsLegal reports whether col still has room for a stone.
func (b BitBoard) IsLegal(col int) bool {
	return col >= 0 && col < game.Cols && b.heights[col] < game.Rows
}

// ApplyMove drops a stone for the player to move into col and hands the turn
// to the opponent. It returns false and leaves the board untouched if col is
// full or out of range.
func (b *BitBoard) ApplyMove(col int) bool {
	if !b.IsLegal(col) {
		return false
	}

	pos := index(int(b.heights[col]), col)
	b.current |= 1 << pos
	b.heights[col]++

	b.current, b.opponent = b.opponent, b.current
	return true
}

// IsWinningMove reports whether playing col completes four in a row for the
// player to move. The board is not modified.
func (b BitBoard) IsWinningMove(col int) bool {
	if !b.IsLegal(col) {
		return false
	}

	pos := index(int(b.heights[col]), col)
	stones := b.current | 1<<pos
	for _, mask := range winMasks[pos][:maskCounts[pos]] {
		if stones&mask == mask {
			return true
		}
	}
	return false
}

// LegalMoves returns the playable columns in ascending order.
func (b BitBoard) LegalMoves() []int {
	return b.AppendLegalMoves(make([]int, 0, game.Cols))
}

// AppendLegalMoves appends the playable columns in ascending order to dst.
func (b BitBoard) AppendLegalMoves(dst []int) []int {
	for col := 0; col < game.Cols; col++ {
		if b.IsLegal(col) {
			dst = append(dst, col)
		}
	}
	return dst
}

// IsFull reports whether every column is full.
func (b BitBoard) IsFull() bool {
	for _, h := range b.heights {
		if h < game.Rows {
			return false
		}
	}
	return true
}

// Height returns the number of stones in col.
func (b BitBoard) Height(col int) int { return int(b.heights[col]) }
