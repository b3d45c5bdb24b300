// Package config holds the static, per-game parameters a solver needs to
// talk about a specific dispute game instance: its depths, its starting
// block, and where to find the data its trace providers pull from.
package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// Config describes one dispute game: the depths of its position tree and
// enough context to build the trace providers that back it. It carries no
// behavior beyond validation; callers wire a Config into
// trace.NewOutputProvider, trace.NewSplitProvider and friends to assemble
// a working solver. Loading one from flags or the environment is an
// external concern - this struct is always built and validated by the host.
type Config struct {
	// AbsolutePrestate is the claimed state at trace index 0, before any
	// instruction of the VM program has executed.
	AbsolutePrestate common.Hash
	// MaxDepth is the depth of the game's leaf claims.
	MaxDepth types.Depth
	// SplitDepth is the depth at which output-root bisection ends and
	// execution-trace bisection begins. Zero for single-layer games.
	SplitDepth types.Depth
	// StartingBlockNumber is the L2 block number the output-root bisection
	// is rooted at; trace indices in the output half are offsets from it.
	StartingBlockNumber uint64
	// LeafDepth is the depth at which the output-root half of a split game
	// bottoms out, handed to trace.NewOutputProvider.
	LeafDepth types.Depth
	// L2ArchiveURL is the JSON-RPC endpoint an OutputProvider dials for
	// optimism_outputAtBlock calls.
	L2ArchiveURL string
}

// Validate checks the depth relationships a Config must satisfy before it
// can back a running game: a two-layer game's split depth must sit
// strictly between the root and the leaves, and the leaf depth of its
// output half must not exceed the split depth.
func (c Config) Validate() error {
	if c.MaxDepth == 0 {
		return fmt.Errorf("%w: max depth must be non-zero", types.ErrProgrammerError)
	}
	if c.SplitDepth != 0 && c.SplitDepth >= c.MaxDepth {
		return fmt.Errorf("%w: split depth %d must be strictly less than max depth %d", types.ErrProgrammerError, c.SplitDepth, c.MaxDepth)
	}
	if c.SplitDepth != 0 && c.LeafDepth > c.SplitDepth {
		return fmt.Errorf("%w: leaf depth %d must not exceed split depth %d", types.ErrProgrammerError, c.LeafDepth, c.SplitDepth)
	}
	if c.SplitDepth != 0 && c.L2ArchiveURL == "" {
		return fmt.Errorf("%w: L2ArchiveURL is required for split games", types.ErrProgrammerError)
	}
	return nil
}
