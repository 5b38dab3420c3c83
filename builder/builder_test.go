package builder_test

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/sushicounter/synatra-client/builder"
	"github.com/sushicounter/synatra-client/types"

	"github.com/stretchr/testify/require"
)

var testPool = &types.Pool{
	Id:           3,
	StakeToken:   solana.MustPublicKeyFromBase58("Gut7AFCQkBEpHJXEFZxrNCgERCYaG48xVANASTWEoaHd"),
	ReceiptToken: solana.MustPublicKeyFromBase58("CXCZt5p4hLU8nicPCu2vXq4frYroe2eoWUGdrpPmSK6y"),
	Nonce:        9,
}

func testUser() solana.PublicKey {
	return solana.MustPublicKeyFromBase58("Hzn3n914JaSpnxo5mBbmuCDmGL6mxWN9Ac2HzEXFSGtb")
}

func requireData(t *testing.T, ix solana.Instruction, method string, amount uint64) {
	t.Helper()
	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 16)
	disc := builder.InstructionDiscriminator(method)
	require.Equal(t, disc[:], data[:8])
	require.Equal(t, amount, binary.LittleEndian.Uint64(data[8:]))
}

func TestInstructionDiscriminatorsDistinct(t *testing.T) {
	stakeNative := builder.InstructionDiscriminator("stake_native")
	stake := builder.InstructionDiscriminator("stake")
	unstake := builder.InstructionDiscriminator("unstake")
	require.NotEqual(t, stakeNative, stake)
	require.NotEqual(t, stake, unstake)
	require.Equal(t, stake, builder.InstructionDiscriminator("stake"))
}

func TestStakeNativeInstruction(t *testing.T) {
	b := builder.NewTxBuilder(types.ProgramID)
	user := testUser()
	poolAddress, err := types.FindPoolAddress(types.ProgramID, testPool.Id)
	require.NoError(t, err)

	ix, err := b.StakeNative(user, poolAddress, testPool, 10_000_000)
	require.NoError(t, err)
	require.Equal(t, types.ProgramID, ix.ProgramID())
	requireData(t, ix, "stake_native", 10_000_000)

	userReceipt, err := types.FindAssociatedTokenAddress(user, testPool.ReceiptToken)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 7)
	require.Equal(t, user, accounts[0].PublicKey)
	require.True(t, accounts[0].IsSigner)
	require.True(t, accounts[0].IsWritable)
	require.Equal(t, poolAddress, accounts[1].PublicKey)
	require.Equal(t, testPool.ReceiptToken, accounts[2].PublicKey)
	require.Equal(t, userReceipt, accounts[3].PublicKey)
	require.Equal(t, solana.TokenProgramID, accounts[4].PublicKey)
	require.Equal(t, solana.SPLAssociatedTokenAccountProgramID, accounts[5].PublicKey)
	require.Equal(t, solana.SystemProgramID, accounts[6].PublicKey)
	// no stake-asset holding accounts in the native variant
	for _, account := range accounts {
		require.NotEqual(t, testPool.StakeToken, account.PublicKey)
	}
}

func TestStakeInstruction(t *testing.T) {
	b := builder.NewTxBuilder(types.ProgramID)
	user := testUser()
	poolAddress, err := types.FindPoolAddress(types.ProgramID, testPool.Id)
	require.NoError(t, err)

	ix, err := b.Stake(user, poolAddress, testPool, 1000)
	require.NoError(t, err)
	requireData(t, ix, "stake", 1000)

	userStake, err := types.FindAssociatedTokenAddress(user, testPool.StakeToken)
	require.NoError(t, err)
	userReceipt, err := types.FindAssociatedTokenAddress(user, testPool.ReceiptToken)
	require.NoError(t, err)
	poolStake, err := types.FindAssociatedTokenAddress(poolAddress, testPool.StakeToken)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 10)
	require.Equal(t, user, accounts[0].PublicKey)
	require.Equal(t, poolAddress, accounts[1].PublicKey)
	require.Equal(t, testPool.StakeToken, accounts[2].PublicKey)
	require.Equal(t, testPool.ReceiptToken, accounts[3].PublicKey)
	require.Equal(t, userStake, accounts[4].PublicKey)
	require.Equal(t, userReceipt, accounts[5].PublicKey)
	require.Equal(t, poolStake, accounts[6].PublicKey)
	require.Equal(t, solana.TokenProgramID, accounts[7].PublicKey)
	require.Equal(t, solana.SPLAssociatedTokenAccountProgramID, accounts[8].PublicKey)
	require.Equal(t, solana.SystemProgramID, accounts[9].PublicKey)
}

func TestUnstakeInstruction(t *testing.T) {
	b := builder.NewTxBuilder(types.ProgramID)
	user := testUser()
	poolAddress, err := types.FindPoolAddress(types.ProgramID, testPool.Id)
	require.NoError(t, err)

	ix, err := b.Unstake(user, poolAddress, testPool, 500)
	require.NoError(t, err)
	requireData(t, ix, "unstake", 500)

	// the claim record address is keyed by the pool's current nonce
	claim, err := types.FindClaimAddress(types.ProgramID, testPool.Id, testPool.Nonce)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 7)
	require.Equal(t, user, accounts[0].PublicKey)
	require.Equal(t, poolAddress, accounts[1].PublicKey)
	require.Equal(t, testPool.ReceiptToken, accounts[2].PublicKey)
	require.Equal(t, claim, accounts[4].PublicKey)
	require.True(t, accounts[4].IsWritable)

	// a different observed nonce yields a different claim account
	advanced := *testPool
	advanced.Nonce = testPool.Nonce + 1
	ix2, err := b.Unstake(user, poolAddress, &advanced, 500)
	require.NoError(t, err)
	require.NotEqual(t, claim, ix2.Accounts()[4].PublicKey)
}

func TestBuildTransactionPriorityFee(t *testing.T) {
	b := builder.NewTxBuilder(types.ProgramID)
	user := testUser()
	poolAddress, err := types.FindPoolAddress(types.ProgramID, testPool.Id)
	require.NoError(t, err)
	ix, err := b.Unstake(user, poolAddress, testPool, 500)
	require.NoError(t, err)
	blockhash := solana.MustHashFromBase58("DvLEyV2GHk86K5GojpqnRsvhfMF5kdZomKMnhVpvHyqK")

	tx, err := b.BuildTransaction([]solana.Instruction{ix}, blockhash, user, 0)
	require.NoError(t, err)
	require.Len(t, tx.Message.Instructions, 1)

	tx, err = b.BuildTransaction([]solana.Instruction{ix}, blockhash, user, 10_000)
	require.NoError(t, err)
	require.Len(t, tx.Message.Instructions, 2)
	// the compute budget instruction comes first
	programID, err := tx.Message.Program(tx.Message.Instructions[0].ProgramIDIndex)
	require.NoError(t, err)
	require.Equal(t, solana.ComputeBudget, programID)
}
