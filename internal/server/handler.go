// Package server exposes the ledger over JSON-RPC and WebSocket.
package server

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/propasset/propd/internal/core/asset"
	"github.com/propasset/propd/internal/core/balances"
	"github.com/propasset/propd/internal/core/events"
	"github.com/propasset/propd/internal/storage/history"
)

// Handler dispatches JSON-RPC methods against the ledger engine.
type Handler struct {
	engine  *asset.Engine
	gateway balances.Gateway
	journal *history.Journal
	version string
}

// NewHandler creates a method handler. journal may be nil when the event
// journal is disabled.
func NewHandler(engine *asset.Engine, gateway balances.Gateway, journal *history.Journal, version string) *Handler {
	return &Handler{
		engine:  engine,
		gateway: gateway,
		journal: journal,
		version: version,
	}
}

// rpcError is a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

func errInvalidParams(msg string) *rpcError {
	return &rpcError{Code: codeInvalidParams, Message: msg}
}

// applyResponse is the wire form of an operation outcome.
type applyResponse struct {
	Result  string         `json:"result"`
	Applied bool           `json:"applied"`
	Message string         `json:"message,omitempty"`
	Events  []eventPayload `json:"events,omitempty"`
	Asset   string         `json:"asset,omitempty"`
}

type eventPayload struct {
	Type string       `json:"type"`
	Data events.Event `json:"data"`
}

// Handle executes a single method call and returns its result.
func (h *Handler) Handle(method string, params json.RawMessage) (interface{}, *rpcError) {
	switch method {
	case "asset_create":
		return h.assetCreate(params)
	case "asset_offer":
		return h.assetOffer(params)
	case "asset_transfer":
		return h.assetTransfer(params)
	case "asset_buy":
		return h.assetBuy(params)
	case "asset_claim":
		return h.assetClaim(params)
	case "owner_record":
		return h.ownerRecord(params)
	case "main_owner":
		return h.mainOwner(params)
	case "balance":
		return h.balance(params)
	case "history":
		return h.history(params)
	case "server_info":
		return h.serverInfo()
	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("method %q not found", method)}
	}
}

// decodeParams unmarshals params into dst, tolerating absent params only
// when the method takes none.
func decodeParams(params json.RawMessage, dst interface{}) *rpcError {
	if len(params) == 0 {
		return errInvalidParams("missing params")
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return errInvalidParams("malformed params: " + err.Error())
	}
	return nil
}

// parseAmount converts a decimal string into a uint64. A failed conversion
// surfaces as ConversionError rather than a transport error so callers can
// treat it like any other operation outcome.
func parseAmount(s string) (uint64, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func conversionFailure(field string) *applyResponse {
	return &applyResponse{
		Result:  asset.ConversionError.String(),
		Applied: false,
		Message: fmt.Sprintf("field %q is not a valid unsigned integer", field),
	}
}

func (h *Handler) toResponse(res asset.ApplyResult) *applyResponse {
	out := &applyResponse{
		Result:  res.Result.String(),
		Applied: res.Applied,
		Message: res.Message,
	}
	for _, ev := range res.Events {
		out.Events = append(out.Events, eventPayload{Type: string(ev.EventType()), Data: ev})
	}
	return out
}

func (h *Handler) assetCreate(params json.RawMessage) (interface{}, *rpcError) {
	var req struct {
		Account string `json:"account"`
		Payload string `json:"payload"`
		Price   string `json:"price"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	if req.Account == "" {
		return nil, errInvalidParams("account is required")
	}
	price, ok := parseAmount(req.Price)
	if !ok {
		return conversionFailure("price"), nil
	}

	id := h.engine.DeriveIdentifier([]byte(req.Payload))
	res := h.engine.Apply(&asset.CreateAsset{
		Caller:     asset.Account(req.Account),
		Payload:    []byte(req.Payload),
		SharePrice: price,
	})
	out := h.toResponse(res)
	out.Asset = id.String()
	return out, nil
}

func (h *Handler) assetOffer(params json.RawMessage) (interface{}, *rpcError) {
	var req struct {
		Account string `json:"account"`
		Asset   string `json:"asset"`
		Offers  string `json:"offers"`
		Price   string `json:"price"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	id, err := asset.ParseIdentifier(req.Asset)
	if err != nil {
		return nil, errInvalidParams("asset: " + err.Error())
	}
	offers, ok := parseAmount(req.Offers)
	if !ok {
		return conversionFailure("offers"), nil
	}
	price, ok := parseAmount(req.Price)
	if !ok {
		return conversionFailure("price"), nil
	}

	res := h.engine.Apply(&asset.OfferShares{
		Caller:        asset.Account(req.Account),
		ID:            id,
		SharesToOffer: offers,
		SharePrice:    price,
	})
	return h.toResponse(res), nil
}

func (h *Handler) assetTransfer(params json.RawMessage) (interface{}, *rpcError) {
	var req struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Asset  string `json:"asset"`
		Shares string `json:"shares"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	id, err := asset.ParseIdentifier(req.Asset)
	if err != nil {
		return nil, errInvalidParams("asset: " + err.Error())
	}
	shares, ok := parseAmount(req.Shares)
	if !ok {
		return conversionFailure("shares"), nil
	}

	res := h.engine.Apply(&asset.TransferShares{
		Caller:    asset.Account(req.From),
		Recipient: asset.Account(req.To),
		ID:        id,
		Amount:    shares,
	})
	return h.toResponse(res), nil
}

func (h *Handler) assetBuy(params json.RawMessage) (interface{}, *rpcError) {
	var req struct {
		Buyer  string `json:"buyer"`
		Seller string `json:"seller"`
		Asset  string `json:"asset"`
		Shares string `json:"shares"`
		Amount string `json:"amount"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	id, err := asset.ParseIdentifier(req.Asset)
	if err != nil {
		return nil, errInvalidParams("asset: " + err.Error())
	}
	shares, ok := parseAmount(req.Shares)
	if !ok {
		return conversionFailure("shares"), nil
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		return conversionFailure("amount"), nil
	}

	res := h.engine.Apply(&asset.BuyShares{
		Caller:      asset.Account(req.Buyer),
		Seller:      asset.Account(req.Seller),
		ID:          id,
		SharesToBuy: shares,
		AmountSent:  amount,
	})
	return h.toResponse(res), nil
}

func (h *Handler) assetClaim(params json.RawMessage) (interface{}, *rpcError) {
	var req struct {
		Account string `json:"account"`
		Asset   string `json:"asset"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	id, err := asset.ParseIdentifier(req.Asset)
	if err != nil {
		return nil, errInvalidParams("asset: " + err.Error())
	}

	res := h.engine.Apply(&asset.ClaimOwnership{
		Caller: asset.Account(req.Account),
		ID:     id,
	})
	return h.toResponse(res), nil
}

func (h *Handler) ownerRecord(params json.RawMessage) (interface{}, *rpcError) {
	var req struct {
		Asset   string `json:"asset"`
		Account string `json:"account"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	id, err := asset.ParseIdentifier(req.Asset)
	if err != nil {
		return nil, errInvalidParams("asset: " + err.Error())
	}

	rec, err := h.engine.Record(id, asset.Account(req.Account))
	if err != nil {
		return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
	}
	if rec == nil {
		return map[string]interface{}{"exists": false}, nil
	}
	return map[string]interface{}{
		"exists": true,
		"shares": strconv.FormatUint(rec.Shares, 10),
		"offers": strconv.FormatUint(rec.Offers, 10),
		"price":  strconv.FormatUint(rec.Price, 10),
	}, nil
}

func (h *Handler) mainOwner(params json.RawMessage) (interface{}, *rpcError) {
	var req struct {
		Asset string `json:"asset"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	id, err := asset.ParseIdentifier(req.Asset)
	if err != nil {
		return nil, errInvalidParams("asset: " + err.Error())
	}

	owner, ok, err := h.engine.MainOwner(id)
	if err != nil {
		return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
	}
	if !ok {
		return map[string]interface{}{"exists": false}, nil
	}
	return map[string]interface{}{
		"exists":  true,
		"account": string(owner),
	}, nil
}

func (h *Handler) balance(params json.RawMessage) (interface{}, *rpcError) {
	var req struct {
		Account string `json:"account"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	if req.Account == "" {
		return nil, errInvalidParams("account is required")
	}

	bal, err := h.gateway.FreeBalance(req.Account)
	if err != nil {
		return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
	}
	return map[string]interface{}{
		"account": req.Account,
		"balance": strconv.FormatUint(bal, 10),
	}, nil
}

func (h *Handler) history(params json.RawMessage) (interface{}, *rpcError) {
	if h.journal == nil {
		return nil, &rpcError{Code: codeInvalidRequest, Message: "event journal is disabled"}
	}

	limit := 50
	if len(params) > 0 {
		var req struct {
			Limit *int `json:"limit"`
		}
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, errInvalidParams("malformed params: " + err.Error())
		}
		if req.Limit != nil {
			if *req.Limit <= 0 {
				return nil, errInvalidParams("limit must be positive")
			}
			limit = *req.Limit
		}
	}

	entries, err := h.journal.Recent(limit)
	if err != nil {
		return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
	}
	return map[string]interface{}{"entries": entries}, nil
}

func (h *Handler) serverInfo() (interface{}, *rpcError) {
	return map[string]interface{}{
		"version":      h.version,
		"total_supply": asset.TotalSupply,
		"journal":      h.journal != nil,
	}, nil
}
