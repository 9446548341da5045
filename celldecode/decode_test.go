package celldecode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railflow/celldecode"
)

func TestDecodeEmptyCell(t *testing.T) {
	require.Empty(t, celldecode.Decode(0))
}

func TestDecodeStraightEW(t *testing.T) {
	// E nibble (bits 8-11) permits exit W: E in, W out is a straight track.
	// nibble for E (shift 8): bit for W (index 3, bitPos 0) set -> value 1.
	// nibble for W (shift 0): bit for E (index 1, bitPos 2) set -> value 4.
	var cell uint16 = (1 << 8) | (4 << 0)
	got := celldecode.Decode(cell)
	require.ElementsMatch(t, []celldecode.Direction{celldecode.W}, got[celldecode.E])
	require.ElementsMatch(t, []celldecode.Direction{celldecode.E}, got[celldecode.W])
}

func TestDecodeDeadEndNormalization(t *testing.T) {
	// A cell that only permits N-in -> S-out (a reversal) is the textbook
	// quirky dead-end encoding; it must normalize to S-in -> S-out.
	var cell uint16 = 2 << 12 // N nibble, bit for S (index 2, bitPos 1) set -> value 2
	got := celldecode.Decode(cell)
	require.Len(t, got, 1)
	require.Equal(t, []celldecode.Direction{celldecode.S}, got[celldecode.S])
}

func TestDirectionOpposite(t *testing.T) {
	require.Equal(t, celldecode.S, celldecode.N.Opposite())
	require.Equal(t, celldecode.W, celldecode.E.Opposite())
}
