package bitboard

import (
	"math/bits"
	"testing"

	"connect4/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func play(t *testing.T, cols ...int) BitBoard {
	t.Helper()
	b := New()
	for _, col := range cols {
		require.True(t, b.ApplyMove(col), "Move into column %d should be legal", col)
	}
	return b
}

func requireInvariants(t *testing.T, b BitBoard) {
	t.Helper()
	require.Zero(t, b.current&b.opponent, "Players should never share a cell")
	for col := 0; col < game.Cols; col++ {
		var column uint64
		for row := 0; row < game.Rows; row++ {
			column |= 1 << index(row, col)
		}
		stones := bits.OnesCount64((b.current | b.opponent) & column)
		require.Equal(t, int(b.heights[col]), stones, "Height of column %d should match its stones", col)
	}
}

func TestNew(t *testing.T) {
	b := New()
	require.Zero(t, b.current)
	require.Zero(t, b.opponent)
	require.Equal(t, [game.Cols]uint8{}, b.heights)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, b.LegalMoves())
	require.False(t, b.IsFull())
}

func TestApplyMove(t *testing.T) {
	t.Run("placing a stone and swapping sides", func(t *testing.T) {
		b := New()
		require.True(t, b.ApplyMove(3))
		require.Zero(t, b.current, "Side to move should have no stones after the first move")
		require.Equal(t, uint64(1)<<3, b.opponent, "Stone should belong to the player who just moved")
		require.Equal(t, 1, b.Height(3))
	})

	t.Run("rejecting a full column", func(t *testing.T) {
		b := play(t, 0, 0, 0, 0, 0, 0)
		before := b
		require.False(t, b.IsLegal(0))
		require.False(t, b.ApplyMove(0), "Full column should be rejected")
		require.Equal(t, before, b, "Rejected move should not change the board")
	})

	t.Run("rejecting out of range columns", func(t *testing.T) {
		b := play(t, 3)
		before := b
		for _, col := range []int{-1, game.Cols, 100} {
			require.False(t, b.IsLegal(col))
			require.False(t, b.ApplyMove(col), "Column %d should be rejected", col)
			require.False(t, b.IsWinningMove(col))
		}
		require.Equal(t, before, b)
	})

	t.Run("keeping invariants through random games", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			b := New()
			for !b.IsFull() {
				moves := b.LegalMoves()
				require.NotEmpty(t, moves)
				b.ApplyMove(moves[rng.Intn(len(moves))])
				requireInvariants(t, b)
			}
			require.Empty(t, b.LegalMoves(), "Full board should have no legal moves")
		}
	})
}

func TestLegalMoves(t *testing.T) {
	b := play(t, 0, 0, 0, 0, 0, 0)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, b.LegalMoves(), "Full column should be excluded in ascending order")
}

func TestIsWinningMove(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		// Player 1: 0,1,2; player 2: 6,6,6
		b := play(t, 0, 6, 1, 6, 2, 6)
		require.True(t, b.IsWinningMove(3), "Fourth stone in the bottom row should win")
		for _, col := range []int{0, 1, 2, 4, 5} {
			require.False(t, b.IsWinningMove(col), "Column %d should not win", col)
		}
	})

	t.Run("vertical", func(t *testing.T) {
		// Player 1: 0,0,0; player 2: 1,1,1
		b := play(t, 0, 1, 0, 1, 0, 1)
		require.True(t, b.IsWinningMove(0), "Fourth stacked stone should win")
		require.False(t, b.IsWinningMove(1), "Opponent stack should not count for the side to move")
	})

	t.Run("diagonal", func(t *testing.T) {
		b := play(t, 0, 1, 1, 2, 2, 3, 2, 3, 3, 6)
		require.True(t, b.IsWinningMove(3), "Top of the staircase should win")
	})

	t.Run("anti-diagonal", func(t *testing.T) {
		b := play(t, 6, 5, 5, 4, 4, 3, 4, 3, 3, 0)
		require.True(t, b.IsWinningMove(3), "Top of the mirrored staircase should win")
	})

	t.Run("full column never wins", func(t *testing.T) {
		b := play(t, 0, 0, 0, 0, 0, 0)
		require.False(t, b.IsWinningMove(0))
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		b := play(t, 0, 6, 1, 6, 2, 6)
		before := b
		for col := 0; col < game.Cols; col++ {
			b.IsWinningMove(col)
			b.IsWinningMove(col)
		}
		require.Equal(t, before, b, "Checking a win should leave the board untouched")
	})
}

func TestFromBoard(t *testing.T) {
	t.Run("empty snapshot", func(t *testing.T) {
		g := game.NewBoard()
		require.Equal(t, New(), FromBoard(&g, game.Player1))
	})

	t.Run("matching a sequence of moves", func(t *testing.T) {
		cols := []int{3, 3, 4, 2, 6, 6, 6}
		g := game.NewBoard()
		player := game.Player1
		for _, col := range cols {
			_, ok := g.Play(col, player)
			require.True(t, ok)
			player = game.Opponent(player)
		}

		got := FromBoard(&g, player)
		require.Equal(t, play(t, cols...), got, "Snapshot encoding should equal applying the moves")
		requireInvariants(t, got)
	})

	t.Run("perspective decides ownership", func(t *testing.T) {
		g := game.NewBoard()
		g.Play(0, game.Player1)
		g.Play(1, game.Player2)

		asOne := FromBoard(&g, game.Player1)
		asTwo := FromBoard(&g, game.Player2)
		require.Equal(t, asOne.current, asTwo.opponent)
		require.Equal(t, asOne.opponent, asTwo.current)
		require.Equal(t, asOne.heights, asTwo.heights)
	})
}

func TestWinningMasks(t *testing.T) {
	t.Run("corner cells", func(t *testing.T) {
		require.Equal(t, uint8(3), maskCounts[index(0, 0)])
		require.Equal(t, uint8(3), maskCounts[index(0, 6)])
		require.Equal(t, uint8(3), maskCounts[index(5, 0)])
		require.Equal(t, uint8(3), maskCounts[index(5, 6)])
	})

	t.Run("central cells", func(t *testing.T) {
		require.Equal(t, uint8(maxMasks), maskCounts[index(3, 3)])
		require.Equal(t, uint8(maxMasks), maskCounts[index(2, 3)])
	})

	t.Run("every mask covers its cell with four stones", func(t *testing.T) {
		total := 0
		for pos := 0; pos < game.Cells; pos++ {
			for _, mask := range winMasks[pos][:maskCounts[pos]] {
				require.Equal(t, 4, bits.OnesCount64(mask))
				require.NotZero(t, mask&(1<<pos), "Mask should include cell %d", pos)
				total++
			}
			for _, mask := range winMasks[pos][maskCounts[pos]:] {
				require.Zero(t, mask, "Unused slots should stay empty")
			}
		}
		// 69 windows on a 7x6 board, each counted once per cell it covers
		require.Equal(t, 69*4, total)
	})
}
