package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// tmMock serves canned JSON-RPC results per method, the way a tendermint
// node would answer them.
type tmMock struct {
	mu      sync.Mutex
	results map[string]string
	params  map[string]json.RawMessage
}

func newTmMock(t testing.TB, results map[string]string) (*tmMock, *httptest.Server) {
	t.Helper()
	m := &tmMock{results: results, params: make(map[string]json.RawMessage)}
	srv := httptest.NewServer(m)
	return m, srv
}

func (m *tmMock) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.params[req.Method] = req.Params
	result, ok := m.results[req.Method]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32601,"message":"Method not found"}}`, req.ID)
		return
	}
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
}

// called returns the params of the last call of the method.
func (m *tmMock) called(method string) (json.RawMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.params[method]
	return p, ok
}
