package config

import (
	"testing"

	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
	"github.com/stretchr/testify/require"
)

func TestConfigValidateRejectsZeroMaxDepth(t *testing.T) {
	c := Config{MaxDepth: 0}
	require.ErrorIs(t, c.Validate(), types.ErrProgrammerError)
}

func TestConfigValidateRejectsSplitDepthAtOrPastMaxDepth(t *testing.T) {
	c := Config{MaxDepth: 4, SplitDepth: 4}
	require.ErrorIs(t, c.Validate(), types.ErrProgrammerError)
}

func TestConfigValidateAllowsSingleLayerGame(t *testing.T) {
	c := Config{MaxDepth: 4}
	require.NoError(t, c.Validate())
}

func TestConfigValidateRejectsLeafDepthPastSplitDepth(t *testing.T) {
	c := Config{MaxDepth: 16, SplitDepth: 4, LeafDepth: 5, L2ArchiveURL: "http://localhost:8545"}
	require.ErrorIs(t, c.Validate(), types.ErrProgrammerError)
}

func TestConfigValidateRequiresArchiveURLForSplitGames(t *testing.T) {
	c := Config{MaxDepth: 16, SplitDepth: 4, LeafDepth: 4}
	require.ErrorIs(t, c.Validate(), types.ErrProgrammerError)

	c.L2ArchiveURL = "http://localhost:8545"
	require.NoError(t, c.Validate())
}
