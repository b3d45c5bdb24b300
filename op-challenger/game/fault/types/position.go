package types

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Depth is the depth of a position within the game's position tree, or the
// maximum/split depth configured for a game.
type Depth uint8

// Position is a generalized index into a perfect binary tree: a non-zero
// integer where the highest set bit marks the depth and the remaining bits
// are the index at that depth. The root claim sits at gindex 1.
//
// The generalized index comfortably fits in 128 bits for any game this
// solver will ever see, but it's carried in a 256-bit word so the bit
// tricks below never have to worry about overflow.
type Position struct {
	gindex uint256.Int
}

// RootPosition is the position of the root claim of any dispute game.
var RootPosition = Position{gindex: *uint256.NewInt(1)}

// NewPositionFromGIndex wraps a raw generalized index. The index must be
// non-zero; the root of the tree is gindex 1.
func NewPositionFromGIndex(gindex *uint256.Int) (Position, error) {
	if gindex == nil || gindex.IsZero() {
		return Position{}, fmt.Errorf("%w: generalized index must be non-zero", ErrStateCorruption)
	}
	return Position{gindex: *gindex}, nil
}

// NewPosition builds a position from a depth and an index at that depth.
func NewPosition(depth Depth, indexAtDepth *uint256.Int) (Position, error) {
	if indexAtDepth == nil {
		return Position{}, fmt.Errorf("%w: nil indexAtDepth", ErrStateCorruption)
	}
	maxIndex := new(uint256.Int).Lsh(uint256.NewInt(1), uint(depth))
	if indexAtDepth.Cmp(maxIndex) >= 0 {
		return Position{}, fmt.Errorf("%w: indexAtDepth %s out of range for depth %d", ErrStateCorruption, indexAtDepth, depth)
	}
	gindex := new(uint256.Int).Or(maxIndex, indexAtDepth)
	return Position{gindex: *gindex}, nil
}

// ToGIndex returns the raw generalized index backing this position.
func (p Position) ToGIndex() *uint256.Int {
	out := p.gindex
	return &out
}

// Depth returns floor(log2(gindex)): the highest set bit's position.
func (p Position) Depth() Depth {
	return Depth(p.gindex.BitLen() - 1)
}

// IndexAtDepth returns gindex - 2^depth(gindex).
func (p Position) IndexAtDepth() *uint256.Int {
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), uint(p.Depth()))
	return new(uint256.Int).Sub(&p.gindex, mask)
}

// IsRootPosition returns true for the position of the root claim.
func (p Position) IsRootPosition() bool {
	return p.gindex.Eq(uint256.NewInt(1))
}

// Equal compares two positions by generalized index.
func (p Position) Equal(other Position) bool {
	return p.gindex.Eq(&other.gindex)
}

// left returns 2*gindex: the attack child.
func (p Position) left() Position {
	var out uint256.Int
	out.Lsh(&p.gindex, 1)
	return Position{gindex: out}
}

// right returns 2*gindex + 1.
func (p Position) right() Position {
	out := p.left()
	out.gindex.Or(&out.gindex, uint256.NewInt(1))
	return out
}

// parent returns floor(gindex/2).
func (p Position) parent() Position {
	var out uint256.Int
	out.Rsh(&p.gindex, 1)
	return Position{gindex: out}
}

// Attack returns the position of an attack move against p: the left child.
func (p Position) Attack() Position {
	return p.left()
}

// Defend returns the position of a defend move against p. The root
// position has no defend move; callers must check IsRootPosition first.
//
// Per the make_move contract: defend(g) = (g | 1) << 1.
func (p Position) Defend() Position {
	var withBit uint256.Int
	withBit.Or(&p.gindex, uint256.NewInt(1))
	var out uint256.Int
	out.Lsh(&withBit, 1)
	return Position{gindex: out}
}

// MakeMove returns Attack() or Defend() depending on isAttack.
func (p Position) MakeMove(isAttack bool) Position {
	if isAttack {
		return p.Attack()
	}
	return p.Defend()
}

// RightIndex returns the right-most leaf descendant of p at maxDepth.
func (p Position) RightIndex(maxDepth Depth) Position {
	remaining := uint(maxDepth) - uint(p.Depth())
	shifted := new(uint256.Int).Lsh(&p.gindex, remaining)
	ones := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), remaining), uint256.NewInt(1))
	out := new(uint256.Int).Or(shifted, ones)
	return Position{gindex: *out}
}

// TraceIndex returns the trace index p commits to: the index-at-depth of
// its right-most leaf descendant at maxDepth.
func (p Position) TraceIndex(maxDepth Depth) *uint256.Int {
	return p.RightIndex(maxDepth).IndexAtDepth()
}

// String implements fmt.Stringer for debug logging.
func (p Position) String() string {
	return fmt.Sprintf("Position(depth=%d, indexAtDepth=%s, gindex=%s)", p.Depth(), p.IndexAtDepth(), &p.gindex)
}
