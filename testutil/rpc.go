package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// MockJSONRPC serves canned JSON-RPC responses in order, one per request.
// A canned string without a "jsonrpc" envelope is wrapped as a result.
// The recorded request methods can be asserted after the calls under test.
func MockJSONRPC(t *testing.T, responses []string) (server *httptest.Server, methods *[]string, close func()) {
	i := 0
	methods = &[]string{}
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		bz, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(bz, &req)
		*methods = append(*methods, req.Method)

		if i >= len(responses) {
			t.Errorf("unexpected extra rpc request: %s", req.Method)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		resp := responses[i]
		i++
		if !strings.Contains(resp, `"jsonrpc"`) {
			resp = fmt.Sprintf(`{"jsonrpc":"2.0","result":%s}`, resp)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resp))
	}))
	return server, methods, server.Close
}
