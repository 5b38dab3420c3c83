package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sushicounter/synatra-client/errors"
	"github.com/sushicounter/synatra-client/types"
)

// ClaimsApi binds the companion web service that indexes claim records.
type ClaimsApi struct {
	baseUrl *url.URL
	client  *http.Client
}

// NewClaimsApi returns a claims API binding for a base URL.
func NewClaimsApi(baseUrl string, timeout time.Duration) (*ClaimsApi, error) {
	baseUrl = strings.TrimSuffix(baseUrl, "/")
	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid claims api url: %s: %v", baseUrl, err)
	}
	return &ClaimsApi{
		baseUrl: u,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// GetClaimsForUser lists the claim records of one user address, verbatim as
// the API reports them.
func (api *ClaimsApi) GetClaimsForUser(ctx context.Context, address string) ([]types.ClaimRecord, error) {
	u := api.baseUrl.JoinPath("claims", "users", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	res, err := api.client.Do(req)
	if err != nil {
		return nil, errors.NetworkErrorf("claims api unreachable: %v", err)
	}
	defer res.Body.Close()
	bz, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.NetworkErrorf("reading claims api response: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"url":    u.String(),
		"status": res.StatusCode,
		"body":   string(bz),
	}).Debug("claims response")
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.RemoteServicef(res.StatusCode, "claims api returned status %d", res.StatusCode)
	}
	var records []types.ClaimRecord
	if err := json.Unmarshal(bz, &records); err != nil {
		return nil, fmt.Errorf("could not parse claims response: %v", err)
	}
	return records, nil
}
