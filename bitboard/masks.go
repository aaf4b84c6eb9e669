package bitboard

import "connect4/game"

// maxMasks is the largest number of four-in-a-row windows through one cell.
const maxMasks = 13

// winMasks[pos] lists every four-in-a-row bitmask covering cell pos; only the
// first maskCounts[pos] entries are set. Both tables are read-only after init.
var (
	winMasks   [game.Cells][maxMasks]uint64
	maskCounts [game.Cells]uint8
)

func init() {
	// Horizontal, vertical, diagonal up-right, diagonal up-left
	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

	for row := 0; row < game.Rows; row++ {
		for col := 0; col < game.Cols; col++ {
			pos := index(row, col)
			for _, d := range directions {
				// Slide the window so that the cell is its 1st, 2nd, 3rd or 4th stone
				for k := 0; k < 4; k++ {
					startRow, startCol := row-k*d[0], col-k*d[1]
					mask, ok := window(startRow, startCol, d[0], d[1])
					if !ok {
						continue
					}
					winMasks[pos][maskCounts[pos]] = mask
					maskCounts[pos]++
				}
			}
		}
	}
}

// window returns the mask of four cells from (row, col) along (dr, dc).
func window(row, col, dr, dc int) (uint64, bool) {
	var mask uint64
	for i := 0; i < 4; i++ {
		r, c := row+i*dr, col+i*dc
		if r < 0 || r >= game.Rows || c < 0 || c >= game.Cols {
			return 0, false
		}
		mask |= 1 << index(r, c)
	}
	return mask, true
}

func index(row, col int) int {
	return row*game.Cols + col
}
