package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ResponseKind distinguishes the three shapes of honest solver response.
type ResponseKind uint8

const (
	// ResponseMove counters a claim by attacking or defending it with a
	// new claim value at the bisected position.
	ResponseMove ResponseKind = iota
	// ResponseSkip means the claim requires no counter at all.
	ResponseSkip
	// ResponseStep executes a single VM instruction against a leaf claim.
	ResponseStep
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseMove:
		return "move"
	case ResponseSkip:
		return "skip"
	case ResponseStep:
		return "step"
	default:
		return "unknown"
	}
}

// Response is the solver's verdict on a single claim: move, skip, or step.
// Only the fields relevant to Kind are populated; the rest are zero.
type Response struct {
	Kind ResponseKind

	// ClaimIndex is the index, in the game's claim vector, of the claim
	// this response counters (Move, Skip) or steps on (Step).
	ClaimIndex int

	// IsAttack is set for Move and Step responses.
	IsAttack bool

	// Value is the new claim's committed value, set for Move responses.
	Value common.Hash

	// Prestate is the VM pre-state bytes for a Step response.
	Prestate []byte
	// Proof is the opaque VM-step witness for a Step response.
	Proof []byte
}

// Move builds a Move response.
func Move(isAttack bool, claimIndex int, value common.Hash) Response {
	return Response{Kind: ResponseMove, ClaimIndex: claimIndex, IsAttack: isAttack, Value: value}
}

// Skip builds a Skip response.
func Skip(claimIndex int) Response {
	return Response{Kind: ResponseSkip, ClaimIndex: claimIndex}
}

// Step builds a Step response.
func Step(isAttack bool, claimIndex int, prestate, proof []byte) Response {
	return Response{Kind: ResponseStep, ClaimIndex: claimIndex, IsAttack: isAttack, Prestate: prestate, Proof: proof}
}

func (r Response) String() string {
	switch r.Kind {
	case ResponseMove:
		return fmt.Sprintf("Move(attack=%v, claim=%d, value=%s)", r.IsAttack, r.ClaimIndex, r.Value)
	case ResponseStep:
		return fmt.Sprintf("Step(attack=%v, claim=%d, prestate=%dB, proof=%dB)", r.IsAttack, r.ClaimIndex, len(r.Prestate), len(r.Proof))
	default:
		return fmt.Sprintf("Skip(claim=%d)", r.ClaimIndex)
	}
}
