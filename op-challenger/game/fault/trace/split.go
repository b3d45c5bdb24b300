package trace

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// SplitProvider composes a top and a bottom provider by depth: queries at
// or above SplitDepth go to Top (the output bisection), queries below go
// to Bottom (the VM trace bisection). Each forwarded call keeps the
// original, absolute position - the composite is transparent to both
// halves.
type SplitProvider struct {
	Top        Provider
	Bottom     Provider
	SplitDepth types.Depth
}

func NewSplitProvider(top, bottom Provider, splitDepth types.Depth) *SplitProvider {
	return &SplitProvider{Top: top, Bottom: bottom, SplitDepth: splitDepth}
}

func (s *SplitProvider) route(p types.Position) Provider {
	if p.Depth() <= s.SplitDepth {
		return s.Top
	}
	return s.Bottom
}

func (s *SplitProvider) AbsolutePrestate(ctx context.Context, p types.Position) ([]byte, error) {
	return s.route(p).AbsolutePrestate(ctx, p)
}

func (s *SplitProvider) AbsolutePrestateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	return s.route(p).AbsolutePrestateHash(ctx, p)
}

func (s *SplitProvider) StateAt(ctx context.Context, p types.Position) ([]byte, error) {
	return s.route(p).StateAt(ctx, p)
}

func (s *SplitProvider) StateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	return s.route(p).StateHash(ctx, p)
}

func (s *SplitProvider) ProofAt(ctx context.Context, p types.Position) ([]byte, error) {
	return s.route(p).ProofAt(ctx, p)
}
