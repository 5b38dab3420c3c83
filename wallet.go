package synatra

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"

	"github.com/btcsuite/btcutil/base58"
	"github.com/gagliardetto/solana-go"
)

// Wallet is the minimal signing capability the client needs: expose an
// address and sign a serialized transaction message. Hardware wallets or
// remote signers implement this the same way a local keypair does.
type Wallet interface {
	Address() solana.PublicKey
	Sign(message []byte) (solana.Signature, error)
}

// LocalWallet signs with an in-memory ed25519 keypair.
type LocalWallet struct {
	key solana.PrivateKey
}

var _ Wallet = &LocalWallet{}

// NewWallet generates a random keypair wallet.
func NewWallet() *LocalWallet {
	return &LocalWallet{key: solana.NewWallet().PrivateKey}
}

// NewWalletFromPrivateKey wraps an existing ed25519 private key.
func NewWalletFromPrivateKey(key solana.PrivateKey) (*LocalWallet, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.New("expected ed25519 key to be 64 bytes")
	}
	return &LocalWallet{key: key}, nil
}

// ImportPrivateKey imports a private key given as either a 32-byte hex seed
// or a base58-encoded 64-byte ed25519 key.
func ImportPrivateKey(privateKey string) (*LocalWallet, error) {
	// try hex first
	bz, err := hex.DecodeString(privateKey)
	if err == nil && len(bz) == 32 {
		key := ed25519.NewKeyFromSeed(bz)
		return &LocalWallet{key: solana.PrivateKey(key)}, nil
	}
	// use base58 directly
	base58bz := base58.Decode(privateKey)
	if len(base58bz) != 64 {
		return nil, errors.New("expected ed25519 key to be 64 or 32 bytes")
	}
	return &LocalWallet{key: solana.PrivateKey(base58bz)}, nil
}

func (w *LocalWallet) Address() solana.PublicKey {
	return w.key.PublicKey()
}

func (w *LocalWallet) Sign(message []byte) (solana.Signature, error) {
	return w.key.Sign(message)
}
