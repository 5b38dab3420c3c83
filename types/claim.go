package types

// ClaimRecord is one pending or completed withdrawal as reported by the
// claims web API. Records are returned to the caller verbatim; the API owns
// the schema.
type ClaimRecord struct {
	User             string `json:"user"`
	PoolId           uint64 `json:"poolId"`
	ReceiptAmount    uint64 `json:"receiptAmount"`
	Nonce            uint64 `json:"nonce"`
	UnstakeRate      uint64 `json:"unstakeRate"`
	UnstakeTx        string `json:"unstakeTx"`
	UnstakeTimestamp int64  `json:"unstakeTimestamp"`
	ClaimAmount      uint64 `json:"claimAmount"`
	Fulfilled        bool   `json:"fulfilled"`
	FulfillTx        string `json:"fulfillTx,omitempty"`
	FulfillTimestamp int64  `json:"fulfillTimestamp,omitempty"`
	Claimed          bool   `json:"claimed"`
	ClaimTx          string `json:"claimTx,omitempty"`
	ClaimTimestamp   int64  `json:"claimTimestamp,omitempty"`
}
