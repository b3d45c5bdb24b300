package types

import (
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// NoParent marks a claim as the root of its tree: its ParentContractIndex
// has no valid parent to look up.
const NoParent = math.MaxUint32

// ClaimData is the core of a claim: what is being asserted, and where.
// The claimed value is a bare 32-byte commitment (common.Hash); it is
// opaque outside the trace-provider layer.
type ClaimData struct {
	Value    common.Hash
	Position Position
}

// ValueBytes returns the raw 32 bytes of the claimed value.
func (c ClaimData) ValueBytes() [32]byte {
	return c.Value
}

// Claim is a single node of a dispute game's claim DAG: a ClaimData plus
// its relationship to the rest of the tree and the bookkeeping the solver
// needs to avoid re-deciding claims it has already visited.
type Claim struct {
	ClaimData

	// CounteredBy is the address of whoever countered this claim, or the
	// zero address if it stands uncountered.
	CounteredBy common.Address
	// Claimant is the address that posted this claim.
	Claimant common.Address
	// Bond is the bond posted alongside this claim.
	Bond *uint256.Int
	// Clock is this claim's chess-clock value at the time it was made.
	Clock Clock

	// ContractIndex is this claim's own index in the claim vector.
	ContractIndex int
	// ParentContractIndex is the index of this claim's parent, or
	// NoParent if this claim is the root.
	ParentContractIndex uint32

	// Visited is a transient flag the solver stamps once it has decided a
	// response for this claim. It is not part of the on-chain state and is
	// rolled back if an oracle error aborts the decision.
	Visited bool
}

// IsRoot returns true if this claim is the root claim of its game.
func (c Claim) IsRoot() bool {
	return c.ParentContractIndex == NoParent
}

// IsCountered returns true if some other claim already counters this one.
func (c Claim) IsCountered() bool {
	return c.CounteredBy != (common.Address{})
}
