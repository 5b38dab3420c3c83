package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	synatra "github.com/sushicounter/synatra-client"
	"github.com/sushicounter/synatra-client/client"
	"github.com/sushicounter/synatra-client/config"
	"github.com/sushicounter/synatra-client/errors"
	"github.com/sushicounter/synatra-client/types"
)

func claimsClient(t *testing.T, apiUrl string) (*client.Client, *synatra.LocalWallet) {
	t.Helper()
	c, err := client.NewClient(config.Config{
		RpcUrl:       "http://localhost:0",
		ClaimsApiUrl: apiUrl,
	})
	require.NoError(t, err)
	wallet := synatra.NewWallet()
	c.SetWallet(wallet)
	return c, wallet
}

func TestGetClaims(t *testing.T) {
	records := []types.ClaimRecord{
		{
			User:             "Hzn3n914JaSpnxo5mBbmuCDmGL6mxWN9Ac2HzEXFSGtb",
			PoolId:           0,
			ReceiptAmount:    500,
			Nonce:            7,
			UnstakeRate:      995000000,
			UnstakeTx:        "29dWrsVNEw3p83Twkn2k9ScWqPxuwQeL5nZ8MRbgLwsB5YYXfRf2XMWiZr3Sr9rqMaE7xeAYiHTDMdK2kvradceX",
			UnstakeTimestamp: 1756300000,
			ClaimAmount:      497,
			Fulfilled:        true,
			FulfillTx:        "4fYNw3dojWmWYZwJGgbRUFsgWQjxczJWGn4qVfFbW1deg4WbQZs5aNJZaYfCDXWNPUCRVPsfYMTCWxXDjiTjpRSz",
			FulfillTimestamp: 1756310000,
		},
		{
			User:          "Hzn3n914JaSpnxo5mBbmuCDmGL6mxWN9Ac2HzEXFSGtb",
			PoolId:        1,
			ReceiptAmount: 1000,
			Nonce:         2,
			UnstakeRate:   995000000,
			ClaimAmount:   995,
		},
	}

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(records))
	}))
	defer server.Close()

	c, wallet := claimsClient(t, server.URL)
	got, err := c.GetClaims(context.Background())
	require.NoError(t, err)
	require.Equal(t, records, got)
	require.Equal(t, "/claims/users/"+wallet.Address().String(), requestedPath)
}

func TestGetClaimsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	c, _ := claimsClient(t, server.URL)
	got, err := c.GetClaims(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetClaimsRemoteError(t *testing.T) {
	for _, status := range []int{404, 500} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		c, _ := claimsClient(t, server.URL)
		_, err := c.GetClaims(context.Background())
		require.Equal(t, errors.RemoteServiceError, errors.StatusOf(err))
		var e *errors.Error
		require.ErrorAs(t, err, &e)
		require.Equal(t, status, e.StatusCode)
		server.Close()
	}
}

func TestGetClaimsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c, _ := claimsClient(t, server.URL)
	_, err := c.GetClaims(context.Background())
	require.Equal(t, errors.NetworkError, errors.StatusOf(err))
}

func TestGetClaimsBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"oops":`))
	}))
	defer server.Close()

	c, _ := claimsClient(t, server.URL)
	_, err := c.GetClaims(context.Background())
	require.ErrorContains(t, err, "could not parse claims response")
}
