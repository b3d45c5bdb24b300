package trace

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/op-fault-solver/dispute-solver/op-challenger/game/fault/types"
)

// vmStatus tags a claim commitment with the exit status of the mock VM at
// that position. Only the first byte of the keccak digest is overwritten;
// the rest of the hash is left as the raw digest.
type vmStatus byte

const (
	vmStatusValid      vmStatus = 0
	vmStatusInvalid    vmStatus = 1
	vmStatusPanic      vmStatus = 2
	vmStatusUnfinished vmStatus = 3
)

var uint256Type = mustNewUint256Type()

func mustNewUint256Type() abi.Type {
	t, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	return t
}

// AlphabetProvider is a Provider for the mock "alphabet VM" used in tests
// and local development: state at trace index i is simply the byte
// prestate + i + 1, i.e. successive letters of the alphabet.
type AlphabetProvider struct {
	// AbsolutePrestateByte is the single byte of the setup state - the
	// ASCII letter immediately before the first letter of the honest trace.
	AbsolutePrestateByte byte
	MaxDepth             types.Depth
}

func NewAlphabetProvider(absolutePrestateByte byte, maxDepth types.Depth) *AlphabetProvider {
	return &AlphabetProvider{AbsolutePrestateByte: absolutePrestateByte, MaxDepth: maxDepth}
}

func (a *AlphabetProvider) AbsolutePrestate(ctx context.Context, p types.Position) ([]byte, error) {
	return encodeUint256(uint64(a.AbsolutePrestateByte)), nil
}

func (a *AlphabetProvider) AbsolutePrestateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	packed, err := abi.Arguments{{Type: uint256Type}}.Pack(new(big.Int).SetUint64(uint64(a.AbsolutePrestateByte)))
	if err != nil {
		return common.Hash{}, wrapOracleErr("AbsolutePrestateHash", err)
	}
	digest := crypto.Keccak256Hash(packed)
	digest[0] = byte(vmStatusUnfinished)
	return digest, nil
}

func (a *AlphabetProvider) traceIndex(p types.Position) uint64 {
	return p.TraceIndex(a.MaxDepth).Uint64()
}

func (a *AlphabetProvider) StateAt(ctx context.Context, p types.Position) ([]byte, error) {
	state := uint64(a.AbsolutePrestateByte) + a.traceIndex(p) + 1
	return encodeUint256(state), nil
}

func (a *AlphabetProvider) StateHash(ctx context.Context, p types.Position) (common.Hash, error) {
	state := uint64(a.AbsolutePrestateByte) + a.traceIndex(p) + 1
	packed, err := abi.Arguments{{Type: uint256Type}, {Type: uint256Type}}.Pack(
		new(big.Int).SetUint64(a.traceIndex(p)),
		new(big.Int).SetUint64(state),
	)
	if err != nil {
		return common.Hash{}, wrapOracleErr("StateHash", err)
	}
	digest := crypto.Keccak256Hash(packed)
	digest[0] = byte(vmStatusInvalid)
	return digest, nil
}

func (a *AlphabetProvider) ProofAt(ctx context.Context, p types.Position) ([]byte, error) {
	return []byte{}, nil
}

func encodeUint256(v uint64) []byte {
	packed, err := abi.Arguments{{Type: uint256Type}}.Pack(new(big.Int).SetUint64(v))
	if err != nil {
		// uint256 packing of a uint64 value can never fail.
		panic(err)
	}
	return packed
}
