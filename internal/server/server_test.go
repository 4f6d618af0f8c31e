package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propasset/propd/internal/core/asset"
	"github.com/propasset/propd/internal/core/balances"
	"github.com/propasset/propd/internal/core/events"
	"github.com/propasset/propd/internal/storage/history"
)

type testServer struct {
	ts     *httptest.Server
	engine *asset.Engine
	book   *balances.Book
	bus    *events.Bus
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ledger := asset.NewLedger()
	book := balances.NewBook()
	bus := events.NewBus()

	journal, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	engine := asset.NewEngine(ledger.Records(), ledger.MainOwners(), asset.EngineConfig{
		Gateway: book,
		Sink:    bus,
	})

	handler := NewHandler(engine, book, journal, "test")
	stream := NewEventStream(bus)
	t.Cleanup(stream.Close)

	mux := http.NewServeMux()
	srv := &Server{handler: handler, stream: stream}
	mux.HandleFunc("/", srv.serveRPC)
	mux.HandleFunc("/ws", stream.ServeHTTP)
	mux.HandleFunc("/health", srv.serveHealth)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &testServer{ts: ts, engine: engine, book: book, bus: bus}
}

func (s *testServer) call(t *testing.T, method string, params interface{}) map[string]interface{} {
	t.Helper()

	body := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		body["params"] = params
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(s.ts.URL, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func result(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	require.Nil(t, envelope["error"], "unexpected rpc error: %v", envelope["error"])
	res, ok := envelope["result"].(map[string]interface{})
	require.True(t, ok, "result is not an object: %v", envelope["result"])
	return res
}

func (s *testServer) createAsset(t *testing.T, account, payload, price string) string {
	t.Helper()
	res := result(t, s.call(t, "asset_create", map[string]string{
		"account": account,
		"payload": payload,
		"price":   price,
	}))
	require.Equal(t, "Success", res["result"])
	id, ok := res["asset"].(string)
	require.True(t, ok)
	return id
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRPCRejectsGet(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRPCParseError(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Post(s.ts.URL, "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	errObj, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(codeParseError), errObj["code"])
}

func TestMethodNotFound(t *testing.T) {
	s := newTestServer(t)

	envelope := s.call(t, "no_such_method", map[string]string{})
	errObj, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(codeMethodNotFound), errObj["code"])
}

func TestAssetCreate(t *testing.T) {
	s := newTestServer(t)

	id := s.createAsset(t, "alice", "beach house deed", "20")
	assert.Len(t, id, 64)

	res := result(t, s.call(t, "owner_record", map[string]string{
		"asset":   id,
		"account": "alice",
	}))
	assert.Equal(t, true, res["exists"])
	assert.Equal(t, "100", res["shares"])
	assert.Equal(t, "20", res["price"])

	res = result(t, s.call(t, "main_owner", map[string]string{"asset": id}))
	assert.Equal(t, true, res["exists"])
	assert.Equal(t, "alice", res["account"])
}

func TestAssetCreateDuplicate(t *testing.T) {
	s := newTestServer(t)

	s.createAsset(t, "alice", "deed", "5")
	res := result(t, s.call(t, "asset_create", map[string]string{
		"account": "alice",
		"payload": "deed",
		"price":   "5",
	}))
	assert.Equal(t, "AssetAlreadyExists", res["result"])
	assert.Equal(t, false, res["applied"])
}

func TestConversionError(t *testing.T) {
	s := newTestServer(t)

	res := result(t, s.call(t, "asset_create", map[string]string{
		"account": "alice",
		"payload": "deed",
		"price":   "twenty",
	}))
	assert.Equal(t, "ConversionError", res["result"])
	assert.Equal(t, false, res["applied"])

	res = result(t, s.call(t, "asset_create", map[string]string{
		"account": "alice",
		"payload": "deed",
		"price":   "-5",
	}))
	assert.Equal(t, "ConversionError", res["result"])
}

func TestOfferTransferBuyClaim(t *testing.T) {
	s := newTestServer(t)
	s.book.Deposit("carol", 1000)

	id := s.createAsset(t, "alice", "deed", "0")

	res := result(t, s.call(t, "asset_offer", map[string]string{
		"account": "alice",
		"asset":   id,
		"offers":  "5",
		"price":   "20",
	}))
	require.Equal(t, "Success", res["result"])

	res = result(t, s.call(t, "asset_buy", map[string]string{
		"buyer":  "carol",
		"seller": "alice",
		"asset":  id,
		"shares": "2",
		"amount": "40",
	}))
	require.Equal(t, "Success", res["result"])

	res = result(t, s.call(t, "owner_record", map[string]string{"asset": id, "account": "carol"}))
	assert.Equal(t, "2", res["shares"])

	res = result(t, s.call(t, "balance", map[string]string{"account": "carol"}))
	assert.Equal(t, "960", res["balance"])

	res = result(t, s.call(t, "asset_transfer", map[string]string{
		"from":   "alice",
		"to":     "carol",
		"asset":  id,
		"shares": "49",
	}))
	require.Equal(t, "Success", res["result"])

	res = result(t, s.call(t, "asset_claim", map[string]string{
		"account": "carol",
		"asset":   id,
	}))
	require.Equal(t, "Success", res["result"])

	res = result(t, s.call(t, "main_owner", map[string]string{"asset": id}))
	assert.Equal(t, "carol", res["account"])
}

func TestOwnerRecordAbsent(t *testing.T) {
	s := newTestServer(t)
	id := s.createAsset(t, "alice", "deed", "0")

	res := result(t, s.call(t, "owner_record", map[string]string{
		"asset":   id,
		"account": "bob",
	}))
	assert.Equal(t, false, res["exists"])
}

func TestBadIdentifier(t *testing.T) {
	s := newTestServer(t)

	envelope := s.call(t, "main_owner", map[string]string{"asset": "zz"})
	errObj, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(codeInvalidParams), errObj["code"])
}

func TestHistory(t *testing.T) {
	s := newTestServer(t)
	s.createAsset(t, "alice", "deed", "0")

	// No follower is wired here, so only the query path is exercised.
	res := result(t, s.call(t, "history", map[string]int{"limit": 10}))
	_, ok := res["entries"]
	assert.True(t, ok)

	envelope := s.call(t, "history", map[string]int{"limit": -1})
	errObj, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(codeInvalidParams), errObj["code"])
}

func TestServerInfo(t *testing.T) {
	s := newTestServer(t)

	res := result(t, s.call(t, "server_info", nil))
	assert.Equal(t, "test", res["version"])
	assert.Equal(t, float64(asset.TotalSupply), res["total_supply"])
}

func TestEventStream(t *testing.T) {
	s := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(s.ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Give the subscription time to register before publishing.
	time.Sleep(50 * time.Millisecond)

	s.createAsset(t, "alice", "deed", "7")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type  string          `json:"type"`
		Event json.RawMessage `json:"event"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, string(events.TypeAssetInitialized), msg.Type)
	assert.Contains(t, string(msg.Event), "alice")
}

func TestConcurrentCalls(t *testing.T) {
	s := newTestServer(t)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			res := result(t, s.call(t, "asset_create", map[string]string{
				"account": fmt.Sprintf("acct-%d", n),
				"payload": fmt.Sprintf("deed-%d", n),
				"price":   "1",
			}))
			assert.Equal(t, "Success", res["result"])
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
