package game

// Board dimensions. Only the standard 7x6 board is supported.
const (
	Cols  = 7
	Rows  = 6
	Cells = Rows * Cols
)

// Cell values of a board snapshot
const (
	Empty   uint8 = 0
	Player1 uint8 = 1
	Player2 uint8 = 2
)

// Opponent returns the other player identity.
func Opponent(player uint8) uint8 {
	if player == Player1 {
		return Player2
	}
	return Player1
}

// Board is the snapshot of a position owned by the rules engine: a row-major
// grid where row 0 is the bottom row and each cell is Empty, Player1 or Player2.
type Board struct {
	Cells [Rows][Cols]uint8
}

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// CanPlay reports whether a stone can still be dropped into col.
func (b *Board) CanPlay(col int) bool {
	return col >= 0 && col < Cols && b.Cells[Rows-1][col] == Empty
}

// Play drops a stone for player into col and returns the row it landed on.
func (b *Board) Play(col int, player uint8) (row int, ok bool) {
	if !b.CanPlay(col) {
		return -1, false
	}
	for row := 0; row < Rows; row++ {
		if b.Cells[row][col] == Empty {
			b.Cells[row][col] = player
			return row, true
		}
	}
	return -1, false
}

// LegalColumns returns the playable columns in ascending order.
func (b *Board) LegalColumns() []int {
	cols := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b.CanPlay(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

func (b *Board) IsFull() bool {
	for col := 0; col < Cols; col++ {
		if b.CanPlay(col) {
			return false
		}
	}
	return true
}

// CheckWin reports whether the stone at (row, col) is part of four in a row.
func (b *Board) CheckWin(row, col int) bool {
	player := b.Cells[row][col]
	if player == Empty {
		return false
	}

	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range directions {
		count := 1
		count += b.run(row, col, d[0], d[1], player)
		count += b.run(row, col, -d[0], -d[1], player)
		if count >= 4 {
			return true
		}
	}
	return false
}

// run counts consecutive stones of player from (row, col) exclusive along (dr, dc).
func (b *Board) run(row, col, dr, dc int, player uint8) int {
	n := 0
	r, c := row+dr, col+dc
	for r >= 0 && r < Rows && c >= 0 && c < Cols && b.Cells[r][c] == player {
		n++
		r += dr
		c += dc
	}
	return n
}

// Winner scans the whole board and returns the player owning a four in a row,
// or Empty if there is none.
func (b *Board) Winner() uint8 {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b.CheckWin(row, col) {
				return b.Cells[row][col]
			}
		}
	}
	return Empty
}
