package trace

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
	"github.com/stretchr/testify/require"
)

func TestSplitProviderRoutesByDepth(t *testing.T) {
	ctx := context.Background()
	top := NewAlphabetProvider('a', 8)
	bottom := NewAlphabetProvider('z', 8)
	split := NewSplitProvider(top, bottom, 4)

	atSplit, err := types.NewPosition(4, uint256.NewInt(0))
	require.NoError(t, err)
	belowSplit, err := types.NewPosition(5, uint256.NewInt(0))
	require.NoError(t, err)

	topState, err := split.StateAt(ctx, atSplit)
	require.NoError(t, err)
	wantTop, err := top.StateAt(ctx, atSplit)
	require.NoError(t, err)
	require.Equal(t, wantTop, topState)

	bottomState, err := split.StateAt(ctx, belowSplit)
	require.NoError(t, err)
	wantBottom, err := bottom.StateAt(ctx, belowSplit)
	require.NoError(t, err)
	require.Equal(t, wantBottom, bottomState)
	require.NotEqual(t, wantTop, bottomState)
}

func TestSplitProviderForwardsAbsolutePosition(t *testing.T) {
	ctx := context.Background()
	top := NewAlphabetProvider('a', 8)
	bottom := NewAlphabetProvider('a', 8)
	split := NewSplitProvider(top, bottom, 4)

	pos, err := types.NewPosition(6, uint256.NewInt(3))
	require.NoError(t, err)

	viaSplit, err := split.StateHash(ctx, pos)
	require.NoError(t, err)
	direct, err := bottom.StateHash(ctx, pos)
	require.NoError(t, err)
	require.Equal(t, direct, viaSplit)
}
