package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadLength     = errors.New("board must have 6 rows of 7 cells")
	ErrInvalidCell   = errors.New("invalid cell value")
	ErrFloatingStone = errors.New("stone above an empty cell")
)

// Validate checks that the snapshot only holds 0, 1 or 2 and that no stone
// floats above an empty cell.
func (b *Board) Validate() error {
	for col := 0; col < Cols; col++ {
		gap := false
		for row := 0; row < Rows; row++ {
			switch b.Cells[row][col] {
			case Empty:
				gap = true
			case Player1, Player2:
				if gap {
					return fmt.Errorf("row %d col %d: %w", row, col, ErrFloatingStone)
				}
			default:
				return fmt.Errorf("row %d col %d holds %d: %w", row, col, b.Cells[row][col], ErrInvalidCell)
			}
		}
	}
	return nil
}

// ParseBoard reads a board from text, top row first. '.' is empty, 'X' or '1'
// is player 1 and 'O' or '2' is player 2. Whitespace is ignored.
func ParseBoard(s string) (Board, error) {
	var cells []uint8
	for _, r := range strings.ToUpper(s) {
		switch r {
		case '.', '0':
			cells = append(cells, Empty)
		case 'X', '1':
			cells = append(cells, Player1)
		case 'O', '2':
			cells = append(cells, Player2)
		case ' ', '\t', '\n', '\r', '|', '/':
		default:
			return Board{}, fmt.Errorf("character %q: %w", r, ErrInvalidCell)
		}
	}
	if len(cells) != Cells {
		return Board{}, fmt.Errorf("got %d cells: %w", len(cells), ErrBadLength)
	}

	var b Board
	for i, cell := range cells {
		row := Rows - 1 - i/Cols
		b.Cells[row][i%Cols] = cell
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// String renders the board top row first in the format read by ParseBoard.
func (b Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Cols; col++ {
			switch b.Cells[row][col] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
