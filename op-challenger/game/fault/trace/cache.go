package trace

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// CachingProvider decorates a Provider with an LRU cache keyed by
// generalized index. Oracle calls - especially the Cannon and output
// RPCs - are expensive and idempotent for a fixed provider, so repeated
// queries at the same position (common when the solver revisits a
// sub-game root) are served from memory after the first miss.
type CachingProvider struct {
	inner Provider

	prestate     *lru.Cache[struct{}, []byte]
	prestateHash *lru.Cache[struct{}, common.Hash]
	state        *lru.Cache[string, []byte]
	stateHash    *lru.Cache[string, common.Hash]
	proof        *lru.Cache[string, []byte]
}

// NewCachingProvider wraps inner with an LRU of the given size per
// operation. Absolute-prestate calls are position-independent for every
// implementation in this package, so they're cached under a single
// sentinel key rather than per-position.
func NewCachingProvider(inner Provider, size int) (*CachingProvider, error) {
	prestate, err := lru.New[struct{}, []byte](1)
	if err != nil {
		return nil, err
	}
	prestateHash, err := lru.New[struct{}, common.Hash](1)
	if err != nil {
		return nil, err
	}
	state, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	stateHash, err := lru.New[string, common.Hash](size)
	if err != nil {
		return nil, err
	}
	proof, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &CachingProvider{
		inner:        inner,
		prestate:     prestate,
		prestateHash: prestateHash,
		state:        state,
		stateHash:    stateHash,
		proof:        proof,
	}, nil
}

func gindexKey(p types.Position) string {
	return p.ToGIndex().Hex()
}

func (c *CachingProvider) AbsolutePrestate(ctx context.Context, p types.Position) ([]byte, error) {
	if v, ok := c.prestate.Get(struct{}{}); ok {
		return v, nil
	}
	v, err := c.inner.AbsolutePrestate(ctx, p)
	if err != nil {
		return nil, err
	}
	c.prestate.Add(struct{}{}, v)
	return v, nil
}

func (c *CachingProvider) AbsolutePrestateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	if v, ok := c.prestateHash.Get(struct{}{}); ok {
		return v, nil
	}
	v, err := c.inner.AbsolutePrestateHash(ctx, p)
	if err != nil {
		return common.Hash{}, err
	}
	c.prestateHash.Add(struct{}{}, v)
	return v, nil
}

func (c *CachingProvider) StateAt(ctx context.Context, p types.Position) ([]byte, error) {
	key := gindexKey(p)
	if v, ok := c.state.Get(key); ok {
		return v, nil
	}
	v, err := c.inner.StateAt(ctx, p)
	if err != nil {
		return nil, err
	}
	c.state.Add(key, v)
	return v, nil
}

func (c *CachingProvider) StateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	key := gindexKey(p)
	if v, ok := c.stateHash.Get(key); ok {
		return v, nil
	}
	v, err := c.inner.StateHash(ctx, p)
	if err != nil {
		return common.Hash{}, err
	}
	c.stateHash.Add(key, v)
	return v, nil
}

func (c *CachingProvider) ProofAt(ctx context.Context, p types.Position) ([]byte, error) {
	key := gindexKey(p)
	if v, ok := c.proof.Get(key); ok {
		return v, nil
	}
	v, err := c.inner.ProofAt(ctx, p)
	if err != nil {
		return nil, err
	}
	c.proof.Add(key, v)
	return v, nil
}
