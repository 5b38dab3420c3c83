package synatra

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// AmountBlockchain is a big integer amount as the ledger expects it,
// i.e. in the smallest unit of the asset.
type AmountBlockchain big.Int

// AmountHumanReadable is a decimal amount as a human expects it for readability.
type AmountHumanReadable decimal.Decimal

func (amount AmountBlockchain) String() string {
	bigInt := big.Int(amount)
	return bigInt.String()
}

// Int converts an AmountBlockchain into *big.Int
func (amount AmountBlockchain) Int() *big.Int {
	bigInt := big.Int(amount)
	return &bigInt
}

// Uint64 converts an AmountBlockchain into uint64
func (amount AmountBlockchain) Uint64() uint64 {
	bigInt := big.Int(amount)
	return bigInt.Uint64()
}

// Use the underlying big.Int.Cmp()
func (amount *AmountBlockchain) Cmp(other *AmountBlockchain) int {
	return amount.Int().Cmp(other.Int())
}

// Use the underlying big.Int.Add()
func (amount *AmountBlockchain) Add(x *AmountBlockchain) AmountBlockchain {
	sum := new(big.Int)
	sum.Set((*big.Int)(amount))
	return AmountBlockchain(*sum.Add(sum, x.Int()))
}

// Use the underlying big.Int.Sub()
func (amount *AmountBlockchain) Sub(x *AmountBlockchain) AmountBlockchain {
	diff := new(big.Int)
	diff.Set((*big.Int)(amount))
	return AmountBlockchain(*diff.Sub(diff, x.Int()))
}

func (amount *AmountBlockchain) IsZero() bool {
	return amount.Int().Sign() == 0
}

// NewAmountBlockchainFromUint64 creates a new AmountBlockchain from a uint64
func NewAmountBlockchainFromUint64(u64 uint64) AmountBlockchain {
	bigInt := new(big.Int).SetUint64(u64)
	return AmountBlockchain(*bigInt)
}

// NewAmountBlockchainFromStr creates a new AmountBlockchain from a string.
// An unparseable string yields a zero amount, matching how ledger RPC
// responses report token amounts as decimal strings.
func NewAmountBlockchainFromStr(str string) AmountBlockchain {
	bigInt, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return AmountBlockchain(*new(big.Int))
	}
	return AmountBlockchain(*bigInt)
}

// ToHuman converts an AmountBlockchain into AmountHumanReadable, dividing by the decimals
func (amount AmountBlockchain) ToHuman(decimals int32) AmountHumanReadable {
	dec := decimal.NewFromBigInt(amount.Int(), 0).Shift(-decimals)
	return AmountHumanReadable(dec)
}

// ToBlockchain converts an AmountHumanReadable into AmountBlockchain, multiplying by the decimals
func (amount AmountHumanReadable) ToBlockchain(decimals int32) AmountBlockchain {
	dec := decimal.Decimal(amount).Shift(decimals)
	return AmountBlockchain(*dec.BigInt())
}

// NewAmountHumanReadableFromStr creates a new AmountHumanReadable from a string
func NewAmountHumanReadableFromStr(str string) (AmountHumanReadable, error) {
	dec, err := decimal.NewFromString(str)
	return AmountHumanReadable(dec), err
}

func (amount AmountHumanReadable) String() string {
	return decimal.Decimal(amount).String()
}

func (amount AmountHumanReadable) Decimal() decimal.Decimal {
	return decimal.Decimal(amount)
}

func (amount AmountHumanReadable) MarshalJSON() ([]byte, error) {
	return []byte("\"" + amount.String() + "\""), nil
}

func (amount *AmountHumanReadable) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) < 2 || str[0] != '"' || str[len(str)-1] != '"' {
		return fmt.Errorf("invalid human readable amount: %s", str)
	}
	dec, err := decimal.NewFromString(str[1 : len(str)-1])
	if err != nil {
		return err
	}
	*amount = AmountHumanReadable(dec)
	return nil
}

func (amount AmountBlockchain) MarshalJSON() ([]byte, error) {
	return []byte("\"" + amount.String() + "\""), nil
}

func (amount *AmountBlockchain) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	*amount = NewAmountBlockchainFromStr(str)
	return nil
}
