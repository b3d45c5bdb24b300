// Package trace provides the oracle implementations the claim solver
// consults to learn what the honest VM trace actually says at a given
// position: the mock alphabet VM used in tests, the real output-root
// RPC endpoint, an abstract Cannon subprocess oracle, and a split
// composite that routes between two of the above by depth.
package trace

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// Provider is a polymorphic oracle for the locally-believed honest trace.
// Every method takes the Position being queried; implementations that
// only make sense for leaves or for non-leaves still accept any Position
// and return types.ErrOutOfRange where the query doesn't apply to them.
type Provider interface {
	// AbsolutePrestate returns the VM's setup state (or initial output).
	AbsolutePrestate(ctx context.Context, p types.Position) ([]byte, error)
	// AbsolutePrestateHash returns the commitment to AbsolutePrestate.
	AbsolutePrestateHash(ctx context.Context, p types.Position) (common.Hash, error)
	// StateAt returns the state this provider believes lives at the leaf
	// p.TraceIndex(maxDepth) commits to.
	StateAt(ctx context.Context, p types.Position) ([]byte, error)
	// StateHash returns the commitment to StateAt.
	StateHash(ctx context.Context, p types.Position) (common.Hash, error)
	// ProofAt returns the opaque VM-step witness for p.
	ProofAt(ctx context.Context, p types.Position) ([]byte, error)
}

// wrapOracleErr tags an underlying error as an oracle failure, the only
// error kind trace providers are expected to surface (alongside
// types.ErrOutOfRange for queries outside the provider's domain).
func wrapOracleErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", types.ErrOracleUnavailable, op, err)
}
