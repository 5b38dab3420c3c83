package client

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	synatra "github.com/sushicounter/synatra-client"
	"github.com/sushicounter/synatra-client/builder"
	"github.com/sushicounter/synatra-client/config"
	"github.com/sushicounter/synatra-client/errors"
	"github.com/sushicounter/synatra-client/types"
)

// Client is the session against one Synatra program deployment: a ledger
// RPC endpoint, the claims API, an optional active wallet and a priority
// fee applied to submitted transactions. Connections are opened once here
// and reused for the client's lifetime.
type Client struct {
	SolClient *rpc.Client
	ClaimsApi *ClaimsApi
	ProgramID solana.PublicKey

	txBuilder   builder.TxBuilder
	wallet      synatra.Wallet
	priorityFee uint64
	logging     bool
}

// NewClient returns a new client for the configured endpoints.
func NewClient(cfg config.Config) (*Client, error) {
	programID := types.ProgramID
	if cfg.ProgramId != "" {
		var err error
		programID, err = solana.PublicKeyFromBase58(cfg.ProgramId)
		if err != nil {
			return nil, fmt.Errorf("invalid program id: %s: %v", cfg.ProgramId, err)
		}
	}
	claimsApi, err := NewClaimsApi(cfg.ClaimsApiUrl, 30*time.Second)
	if err != nil {
		return nil, err
	}
	return &Client{
		SolClient:   rpc.New(cfg.RpcUrl),
		ClaimsApi:   claimsApi,
		ProgramID:   programID,
		txBuilder:   builder.NewTxBuilder(programID),
		priorityFee: cfg.PriorityFee,
		logging:     cfg.Logging,
	}, nil
}

// SetWallet replaces the active signer.
func (client *Client) SetWallet(wallet synatra.Wallet) {
	client.wallet = wallet
}

// RemoveWallet clears the active signer.
func (client *Client) RemoveWallet() {
	client.wallet = nil
}

// SetPriorityFee sets the price per compute unit, in microlamports, attached
// to all subsequently submitted transactions. Zero disables the fee.
func (client *Client) SetPriorityFee(microLamports uint64) {
	client.priorityFee = microLamports
}

// GetPool reads the pool account for a pool id. A pool that does not exist
// (or whose account cannot be decoded) is reported as (nil, nil), since
// absence is an expected, recoverable condition.
func (client *Client) GetPool(ctx context.Context, poolId int64) (*types.Pool, error) {
	if poolId < 0 {
		return nil, errors.InvalidArgumentf("pool id must be a non-negative integer, got %d", poolId)
	}
	poolAddress, err := types.FindPoolAddress(client.ProgramID, uint64(poolId))
	if err != nil {
		return nil, fmt.Errorf("could not derive pool address: %v", err)
	}
	res, err := client.SolClient.GetAccountInfo(ctx, poolAddress)
	if err != nil {
		client.debugLog(err, poolId, poolAddress, "no pool account")
		return nil, nil
	}
	if res == nil || res.Value == nil {
		return nil, nil
	}
	pool, err := types.ParsePool(res.Value.Data.GetBinary())
	if err != nil {
		client.debugLog(err, poolId, poolAddress, "could not parse pool account")
		return nil, nil
	}
	return pool, nil
}

// GetCurrentSupply returns the total issued amount of a pool's receipt token.
func (client *Client) GetCurrentSupply(ctx context.Context, poolId int64) (synatra.AmountBlockchain, error) {
	zero := synatra.NewAmountBlockchainFromUint64(0)
	pool, err := client.GetPool(ctx, poolId)
	if err != nil {
		return zero, err
	}
	if pool == nil {
		return zero, errors.NotFoundf("pool %d does not exist", poolId)
	}
	supply, err := client.SolClient.GetTokenSupply(ctx, pool.ReceiptToken, rpc.CommitmentFinalized)
	if err != nil {
		return zero, fmt.Errorf("could not get receipt token supply: %w", err)
	}
	if supply == nil || supply.Value == nil {
		return zero, fmt.Errorf("empty receipt token supply response")
	}
	return synatra.NewAmountBlockchainFromStr(supply.Value.Amount), nil
}

// Stake deposits amount of the pool's stake asset and mints receipt tokens
// to the signer. Returns the transaction signature.
func (client *Client) Stake(ctx context.Context, poolId int64, amount uint64) (solana.Signature, error) {
	var zero solana.Signature
	if client.wallet == nil {
		return zero, errors.Unauthenticatedf("no wallet set")
	}
	if amount == 0 {
		return zero, errors.InvalidArgumentf("amount must be positive")
	}
	pool, err := client.GetPool(ctx, poolId)
	if err != nil {
		return zero, err
	}
	if pool == nil {
		return zero, errors.NotFoundf("pool %d does not exist", poolId)
	}
	user := client.wallet.Address()
	poolAddress, err := types.FindPoolAddress(client.ProgramID, uint64(poolId))
	if err != nil {
		return zero, fmt.Errorf("could not derive pool address: %v", err)
	}

	var instruction solana.Instruction
	if pool.IsNative() {
		balance, err := client.SolClient.GetBalance(ctx, user, rpc.CommitmentFinalized)
		if err != nil {
			return zero, fmt.Errorf("could not get balance for %s: %w", user, err)
		}
		if balance.Value < amount {
			return zero, errors.InsufficientBalancef("balance %d is less than stake amount %d", balance.Value, amount)
		}
		instruction, err = client.txBuilder.StakeNative(user, poolAddress, pool, amount)
		if err != nil {
			return zero, err
		}
	} else {
		if err := client.checkTokenBalance(ctx, user, pool.StakeToken, amount, "stake"); err != nil {
			return zero, err
		}
		instruction, err = client.txBuilder.Stake(user, poolAddress, pool, amount)
		if err != nil {
			return zero, err
		}
	}
	return client.signAndSubmit(ctx, instruction, user)
}

// Unstake burns receiptAmount of the signer's receipt tokens and creates a
// claim record for the withdrawal. The claim address is derived from the
// pool nonce observed just before submission; a concurrent unstake on the
// same pool can advance the nonce in between, and the caller owns that race.
func (client *Client) Unstake(ctx context.Context, poolId int64, receiptAmount uint64) (solana.Signature, error) {
	var zero solana.Signature
	if client.wallet == nil {
		return zero, errors.Unauthenticatedf("no wallet set")
	}
	if receiptAmount == 0 {
		return zero, errors.InvalidArgumentf("amount must be positive")
	}
	pool, err := client.GetPool(ctx, poolId)
	if err != nil {
		return zero, err
	}
	if pool == nil {
		return zero, errors.NotFoundf("pool %d does not exist", poolId)
	}
	user := client.wallet.Address()
	poolAddress, err := types.FindPoolAddress(client.ProgramID, uint64(poolId))
	if err != nil {
		return zero, fmt.Errorf("could not derive pool address: %v", err)
	}
	if err := client.checkTokenBalance(ctx, user, pool.ReceiptToken, receiptAmount, "receipt"); err != nil {
		return zero, err
	}
	instruction, err := client.txBuilder.Unstake(user, poolAddress, pool, receiptAmount)
	if err != nil {
		return zero, err
	}
	return client.signAndSubmit(ctx, instruction, user)
}

// GetClaims lists the signer's claim records from the claims web API.
func (client *Client) GetClaims(ctx context.Context) ([]types.ClaimRecord, error) {
	if client.wallet == nil {
		return nil, errors.Unauthenticatedf("no wallet set")
	}
	return client.ClaimsApi.GetClaimsForUser(ctx, client.wallet.Address().String())
}

func (client *Client) checkTokenBalance(ctx context.Context, owner solana.PublicKey, mint solana.PublicKey, amount uint64, role string) error {
	holdingAccount, err := types.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return err
	}
	res, err := client.SolClient.GetTokenAccountBalance(ctx, holdingAccount, rpc.CommitmentFinalized)
	if err != nil {
		return errors.AccountNotFoundf("no holding account for %s token %s: %v", role, mint, err)
	}
	if res == nil || res.Value == nil {
		return errors.AccountNotFoundf("no holding account for %s token %s", role, mint)
	}
	balance := synatra.NewAmountBlockchainFromStr(res.Value.Amount)
	if balance.Uint64() < amount {
		return errors.InsufficientBalancef("%s token balance %s is less than amount %d", role, balance.String(), amount)
	}
	return nil
}

func (client *Client) signAndSubmit(ctx context.Context, instruction solana.Instruction, payer solana.PublicKey) (solana.Signature, error) {
	var zero solana.Signature
	recent, err := client.SolClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return zero, fmt.Errorf("could not get latest blockhash: %w", err)
	}
	if recent == nil || recent.Value == nil {
		return zero, fmt.Errorf("error fetching latest blockhash")
	}
	tx, err := client.txBuilder.BuildTransaction(
		[]solana.Instruction{instruction},
		recent.Value.Blockhash,
		payer,
		client.priorityFee,
	)
	if err != nil {
		return zero, err
	}
	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return zero, fmt.Errorf("unable to encode message for signing: %w", err)
	}
	signature, err := client.wallet.Sign(message)
	if err != nil {
		return zero, fmt.Errorf("could not sign transaction: %w", err)
	}
	tx.Signatures = []solana.Signature{signature}

	// program and ledger level failures propagate with their original detail
	sig, err := client.SolClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return zero, fmt.Errorf("send transaction: %w", err)
	}
	return sig, nil
}

func (client *Client) debugLog(err error, poolId int64, poolAddress solana.PublicKey, msg string) {
	if !client.logging {
		return
	}
	logrus.WithFields(logrus.Fields{
		"pool":    poolId,
		"address": poolAddress,
	}).WithError(err).Debug(msg)
}
