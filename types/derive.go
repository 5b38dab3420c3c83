package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seeds for PDAs
const (
	SeedGlobal = "global"
	seedPool   = "pool-%d"
	seedClaim  = "claim-%d-%d"
)

// FindStateAddress returns the program's global state address.
func FindStateAddress(programID solana.PublicKey) (solana.PublicKey, error) {
	return findAddress(programID, SeedGlobal)
}

// FindPoolAddress returns the deterministic address of the pool account for
// a pool id. Anyone derives the same address from the same id.
func FindPoolAddress(programID solana.PublicKey, poolId uint64) (solana.PublicKey, error) {
	return findAddress(programID, fmt.Sprintf(seedPool, poolId))
}

// FindClaimAddress returns the address of the claim record a pool creates
// for its nonce-th unstake.
func FindClaimAddress(programID solana.PublicKey, poolId uint64, nonce uint64) (solana.PublicKey, error) {
	return findAddress(programID, fmt.Sprintf(seedClaim, poolId, nonce))
}

func findAddress(programID solana.PublicKey, seed string) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(seed)},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return address, nil
}

// FindAssociatedTokenAddress returns the associated token account (ATA) for
// a given owner and token mint.
func FindAssociatedTokenAddress(owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error) {
	associatedAddr, _, err := solana.FindProgramAddress(
		[][]byte{
			owner[:],
			solana.TokenProgramID[:],
			mint[:],
		},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return associatedAddr, nil
}
