package builder

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	compute_budget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/sushicounter/synatra-client/types"
)

// TxBuilder assembles Synatra staking program instructions and transactions.
type TxBuilder struct {
	ProgramID solana.PublicKey
}

// NewTxBuilder creates a TxBuilder for a program deployment.
func NewTxBuilder(programID solana.PublicKey) TxBuilder {
	return TxBuilder{ProgramID: programID}
}

// InstructionDiscriminator returns the 8-byte method selector for a program
// instruction name.
func InstructionDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("global:" + name))
	var disc [8]byte
	copy(disc[:], sum[:8])
	return disc
}

var (
	discStakeNative = InstructionDiscriminator("stake_native")
	discStake       = InstructionDiscriminator("stake")
	discUnstake     = InstructionDiscriminator("unstake")
)

func instructionData(disc [8]byte, amount uint64) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(disc[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(amount, bin.LE); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StakeNative builds the stake instruction variant for a pool whose stake
// asset is the chain's native asset. The user's lamports are staked directly,
// so no stake-token holding accounts appear in the account list.
func (b TxBuilder) StakeNative(user solana.PublicKey, poolAddress solana.PublicKey, pool *types.Pool, amount uint64) (solana.Instruction, error) {
	userReceiptAccount, err := types.FindAssociatedTokenAddress(user, pool.ReceiptToken)
	if err != nil {
		return nil, err
	}
	data, err := instructionData(discStakeNative, amount)
	if err != nil {
		return nil, err
	}
	accounts := []*solana.AccountMeta{
		{PublicKey: user, IsWritable: true, IsSigner: true},
		{PublicKey: poolAddress, IsWritable: true, IsSigner: false},
		{PublicKey: pool.ReceiptToken, IsWritable: true, IsSigner: false},
		{PublicKey: userReceiptAccount, IsWritable: true, IsSigner: false},
		{PublicKey: solana.TokenProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.SPLAssociatedTokenAccountProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.SystemProgramID, IsWritable: false, IsSigner: false},
	}
	return solana.NewInstruction(b.ProgramID, accounts, data), nil
}

// Stake builds the stake instruction for a pool with a generic stake token.
func (b TxBuilder) Stake(user solana.PublicKey, poolAddress solana.PublicKey, pool *types.Pool, amount uint64) (solana.Instruction, error) {
	userStakeAccount, err := types.FindAssociatedTokenAddress(user, pool.StakeToken)
	if err != nil {
		return nil, err
	}
	userReceiptAccount, err := types.FindAssociatedTokenAddress(user, pool.ReceiptToken)
	if err != nil {
		return nil, err
	}
	poolStakeAccount, err := types.FindAssociatedTokenAddress(poolAddress, pool.StakeToken)
	if err != nil {
		return nil, err
	}
	data, err := instructionData(discStake, amount)
	if err != nil {
		return nil, err
	}
	accounts := []*solana.AccountMeta{
		{PublicKey: user, IsWritable: true, IsSigner: true},
		{PublicKey: poolAddress, IsWritable: true, IsSigner: false},
		{PublicKey: pool.StakeToken, IsWritable: false, IsSigner: false},
		{PublicKey: pool.ReceiptToken, IsWritable: true, IsSigner: false},
		{PublicKey: userStakeAccount, IsWritable: true, IsSigner: false},
		{PublicKey: userReceiptAccount, IsWritable: true, IsSigner: false},
		{PublicKey: poolStakeAccount, IsWritable: true, IsSigner: false},
		{PublicKey: solana.TokenProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.SPLAssociatedTokenAccountProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.SystemProgramID, IsWritable: false, IsSigner: false},
	}
	return solana.NewInstruction(b.ProgramID, accounts, data), nil
}

// Unstake builds the unstake instruction, burning receipt tokens and creating
// the claim record at the address keyed by the pool's current nonce.
func (b TxBuilder) Unstake(user solana.PublicKey, poolAddress solana.PublicKey, pool *types.Pool, receiptAmount uint64) (solana.Instruction, error) {
	userReceiptAccount, err := types.FindAssociatedTokenAddress(user, pool.ReceiptToken)
	if err != nil {
		return nil, err
	}
	claimAddress, err := types.FindClaimAddress(b.ProgramID, pool.Id, pool.Nonce)
	if err != nil {
		return nil, err
	}
	data, err := instructionData(discUnstake, receiptAmount)
	if err != nil {
		return nil, err
	}
	accounts := []*solana.AccountMeta{
		{PublicKey: user, IsWritable: true, IsSigner: true},
		{PublicKey: poolAddress, IsWritable: true, IsSigner: false},
		{PublicKey: pool.ReceiptToken, IsWritable: true, IsSigner: false},
		{PublicKey: userReceiptAccount, IsWritable: true, IsSigner: false},
		{PublicKey: claimAddress, IsWritable: true, IsSigner: false},
		{PublicKey: solana.TokenProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.SystemProgramID, IsWritable: false, IsSigner: false},
	}
	return solana.NewInstruction(b.ProgramID, accounts, data), nil
}

// BuildTransaction wraps program instructions into a transaction paid and
// signed by the user. A positive priority fee is attached as a leading
// compute-budget instruction.
func (b TxBuilder) BuildTransaction(instructions []solana.Instruction, recentBlockHash solana.Hash, payer solana.PublicKey, priorityFee uint64) (*solana.Transaction, error) {
	if priorityFee > 0 {
		instructions = append([]solana.Instruction{
			compute_budget.NewSetComputeUnitPriceInstruction(priorityFee).Build(),
		}, instructions...)
	}
	tx, err := solana.NewTransaction(
		instructions,
		recentBlockHash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, fmt.Errorf("could not assemble transaction: %v", err)
	}
	return tx, nil
}
