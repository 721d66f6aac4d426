package deposit

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Source hash domains. Only user deposits are derived by this tool.
const (
	UserDepositSourceDomain uint8 = 0
)

// DeriveSourceHash computes keccak256(domain || keccak256(l1BlockHash || l1TxHash || callIndex)),
// where domain and callIndex are both left-padded to 32 bytes.
func DeriveSourceHash(l1BlockHash, l1TxHash common.Hash, callIndex uint32, domain uint8) common.Hash {
	var input [32 * 3]byte
	copy(input[:32], l1BlockHash[:])
	copy(input[32:64], l1TxHash[:])
	index := uint256.NewInt(uint64(callIndex)).Bytes32()
	copy(input[64:], index[:])
	depositIDHash := crypto.Keccak256Hash(input[:])

	var domainInput [32 * 2]byte
	domainInput[31] = domain
	copy(domainInput[32:], depositIDHash[:])
	return crypto.Keccak256Hash(domainInput[:])
}

// UserDepositSource identifies a user deposit by its L1 origin.
type UserDepositSource struct {
	L1BlockHash common.Hash
	L1TxHash    common.Hash
	CallIndex   uint32
}

func (dep *UserDepositSource) SourceHash() common.Hash {
	return DeriveSourceHash(dep.L1BlockHash, dep.L1TxHash, dep.CallIndex, UserDepositSourceDomain)
}
