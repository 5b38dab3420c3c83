package types

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	synatra "github.com/sushicounter/synatra-client"
)

// ProgramID is the deployed Synatra staking program.
var ProgramID = solana.MustPublicKeyFromBase58("9thSAX73NHeGsZbunvzXDjHGRT2cbTREVcT4KVnoyJJD")

// AccountDiscriminator returns the 8-byte prefix the program writes in
// front of an account of the named type.
func AccountDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var disc [8]byte
	copy(disc[:], sum[:8])
	return disc
}

var poolDiscriminator = AccountDiscriminator("Pool")

// Pool is the on-chain account of one staking market. The field order is
// the program's fixed binary layout and must not be changed.
type Pool struct {
	Id               uint64
	Manager          solana.PublicKey
	Oracle           solana.PublicKey
	StakeToken       solana.PublicKey
	ReceiptToken     solana.PublicKey
	StakeRate        uint64
	UnstakeRate      uint64
	ReceiptMaxSupply uint64
	// incremented by the program on every unstake; keys the claim record address
	Nonce uint64
}

// ParsePool decodes the raw account data of a pool, including the
// leading discriminator.
func ParsePool(data []byte) (*Pool, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("account data too short for a pool: %d bytes", len(data))
	}
	if !bytes.Equal(data[:8], poolDiscriminator[:]) {
		return nil, fmt.Errorf("account is not a pool")
	}
	var pool Pool
	if err := bin.NewBorshDecoder(data[8:]).Decode(&pool); err != nil {
		return nil, fmt.Errorf("could not decode pool account: %v", err)
	}
	return &pool, nil
}

// Marshal encodes the pool the way the program stores it, discriminator included.
func (p *Pool) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(poolDiscriminator[:], false); err != nil {
		return nil, err
	}
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IsNative reports whether the pool stakes the chain's native asset,
// which the program marks with the wrapped-SOL mint.
func (p *Pool) IsNative() bool {
	return p.StakeToken.Equals(solana.WrappedSol)
}

// StakeRateHuman returns the stake rate as a decimal given the rate's decimals.
func (p *Pool) StakeRateHuman(decimals int32) string {
	return rateHuman(p.StakeRate, decimals)
}

// UnstakeRateHuman returns the unstake rate as a decimal given the rate's decimals.
func (p *Pool) UnstakeRateHuman(decimals int32) string {
	return rateHuman(p.UnstakeRate, decimals)
}

func rateHuman(rate uint64, decimals int32) string {
	amount := synatra.NewAmountBlockchainFromUint64(rate)
	return amount.ToHuman(decimals).String()
}
