package trace

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// MockOutputProvider is a Provider standing in for the real OutputProvider
// in tests: it synthesizes an output root from the starting block number
// and trace index instead of talking to an archive node, so the split
// solver's behavior around the output/execution boundary can be
// exercised without a live JSON-RPC server.
type MockOutputProvider struct {
	StartingBlockNumber uint64
	LeafDepth           types.Depth
}

func NewMockOutputProvider(startingBlockNumber uint64, leafDepth types.Depth) *MockOutputProvider {
	return &MockOutputProvider{StartingBlockNumber: startingBlockNumber, LeafDepth: leafDepth}
}

func (m *MockOutputProvider) AbsolutePrestate(ctx context.Context, p types.Position) ([]byte, error) {
	return common.BigToHash(new(big.Int).SetUint64(m.StartingBlockNumber)).Bytes(), nil
}

func (m *MockOutputProvider) AbsolutePrestateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	b, err := m.AbsolutePrestate(ctx, p)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

func (m *MockOutputProvider) stateValue(p types.Position) uint64 {
	return p.TraceIndex(m.LeafDepth).Uint64() + m.StartingBlockNumber + 1
}

func (m *MockOutputProvider) StateAt(ctx context.Context, p types.Position) ([]byte, error) {
	return common.BigToHash(new(big.Int).SetUint64(m.stateValue(p))).Bytes(), nil
}

func (m *MockOutputProvider) StateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	b, err := m.StateAt(ctx, p)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

func (m *MockOutputProvider) ProofAt(ctx context.Context, p types.Position) ([]byte, error) {
	return nil, types.ErrOutOfRange
}
