package rpc

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"nftswapd/internal/core/ledger/entry"
	"nftswapd/internal/core/ledger/entry/entries"
	"nftswapd/internal/core/ledger/keylet"
	"nftswapd/internal/core/tx"
	"nftswapd/internal/core/tx/pool"
	"nftswapd/internal/pricefeed"
)

const (
	defaultPoolsLimit = 100
	maxPoolsLimit     = 1000
)

func (s *Server) registerMethods() {
	s.registry.Register("server_info", s.serverInfo)
	s.registry.Register("submit", s.submit)
	s.registry.Register("pool_info", s.poolInfo)
	s.registry.Register("pools", s.pools)
	s.registry.Register("pool_items", s.poolItems)
	s.registry.Register("price_quote", s.priceQuote)
	s.registry.Register("share_position", s.sharePosition)
	s.registry.Register("royalty_pending", s.royaltyPending)
	s.registry.Register("trade_history", s.tradeHistory)
	s.registry.Register("account_info", s.accountInfo)
}

// poolParams identify one (collection, currency) pool.
type poolParams struct {
	Collection string `json:"collection"`
	Currency   string `json:"currency"`
}

func decodeParams(params json.RawMessage, into interface{}) *Error {
	if params == nil {
		return ErrInvalidParams("missing params")
	}
	if err := json.Unmarshal(params, into); err != nil {
		return ErrInvalidParams("malformed params: " + err.Error())
	}
	return nil
}

// readEntry loads and decodes one ledger entry, going through the decoded
// entry cache when one is configured. Returns nil when the entry is absent.
func (s *Server) readEntry(k keylet.Keylet) (entry.Entry, *Error) {
	if s.services.Cache != nil {
		if e, ok := s.services.Cache.Get(k.Key); ok {
			return e, nil
		}
	}
	data, err := s.services.Ledger.Read(k)
	if err != nil {
		return nil, ErrInternal(err.Error())
	}
	if data == nil {
		return nil, nil
	}
	e, err := entry.Decode(data)
	if err != nil {
		return nil, ErrInternal(err.Error())
	}
	if s.services.Cache != nil {
		s.services.Cache.Put(k.Key, e)
	}
	return e, nil
}

// invalidateTouched drops every cache key the applied transaction touched.
func (s *Server) invalidateTouched(meta *tx.Metadata) {
	if s.services.Cache == nil || meta == nil {
		return
	}
	for _, node := range meta.AffectedNodes {
		raw, err := hex.DecodeString(node.LedgerIndex)
		if err != nil || len(raw) != 32 {
			continue
		}
		var key [32]byte
		copy(key[:], raw)
		s.services.Cache.Invalidate(key)
	}
}

// readPool loads and decodes the pool entry, or reports entryNotFound.
func (s *Server) readPool(collection, currency string) (*entries.Pool, *Error) {
	if collection == "" || currency == "" {
		return nil, ErrInvalidParams("collection and currency are required")
	}
	e, rpcErr := s.readEntry(keylet.Pool(collection, currency))
	if rpcErr != nil {
		return nil, rpcErr
	}
	if e == nil {
		return nil, ErrNotFound(fmt.Sprintf("no pool for %s/%s", collection, currency))
	}
	p, ok := e.(*entries.Pool)
	if !ok {
		return nil, ErrInternal("entry is not a pool")
	}
	return p, nil
}

func poolSummary(p *entries.Pool) map[string]interface{} {
	return map[string]interface{}{
		"collection":       p.Collection,
		"currency":         p.Currency,
		"account":          p.Account,
		"currency_reserve": p.CurrencyReserve,
		"accumulated_fees": p.AccumulatedFees,
		"total_shares":     p.TotalShares,
		"fee_bps":          p.FeeBps,
		"item_count":       p.ItemCount(),
	}
}

func (s *Server) serverInfo(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	h := s.services.Ledger.Header()
	info := map[string]interface{}{
		"version":        s.services.Version,
		"ledger_seq":     h.Sequence,
		"entry_count":    s.services.Ledger.EntryCount(),
		"uptime_seconds": int64(time.Since(s.services.StartTime).Seconds()),
	}
	if s.services.Snapshots != nil {
		info["snapshots"] = s.services.Snapshots.Ranges()
	}
	if s.services.Cache != nil {
		stats := s.services.Cache.Stats()
		info["entry_cache"] = map[string]interface{}{
			"len":      stats.Len,
			"hits":     stats.Hits,
			"misses":   stats.Misses,
			"hit_rate": stats.HitRate,
		}
	}
	types := tx.SupportedTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	info["transaction_types"] = names
	return info, nil
}

func (s *Server) submit(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	var req struct {
		TxJSON json.RawMessage `json:"tx_json"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	if len(req.TxJSON) == 0 {
		return nil, ErrInvalidParams("tx_json is required")
	}

	transaction, err := tx.FromJSON(req.TxJSON)
	if err != nil {
		return nil, ErrInvalidParams("cannot parse transaction: " + err.Error())
	}

	applied := s.services.Engine.Apply(transaction)
	if applied.Applied {
		s.invalidateTouched(applied.Metadata)
	}
	result := map[string]interface{}{
		"engine_result":         applied.Result.String(),
		"engine_result_code":    int(applied.Result),
		"engine_result_message": applied.Message,
		"applied":               applied.Applied,
	}
	if applied.Metadata != nil {
		result["meta"] = applied.Metadata
	}
	return result, nil
}

func (s *Server) poolInfo(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	var req poolParams
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	p, rpcErr := s.readPool(req.Collection, req.Currency)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return map[string]interface{}{"pool": poolSummary(p)}, nil
}

// pools enumerates pool entries, bounded by limit.
func (s *Server) pools(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	limit := defaultPoolsLimit
	if params != nil {
		var req struct {
			Limit int `json:"limit"`
		}
		if rpcErr := decodeParams(params, &req); rpcErr != nil {
			return nil, rpcErr
		}
		if req.Limit > 0 {
			limit = req.Limit
		}
	}
	if limit > maxPoolsLimit {
		limit = maxPoolsLimit
	}

	summaries := make([]map[string]interface{}, 0, 16)
	var decodeErr error
	err := s.services.Ledger.ForEach(func(key [32]byte, data []byte) bool {
		if entry.TypeOf(data) != entry.TypePool {
			return true
		}
		e, err := entry.Decode(data)
		if err != nil {
			decodeErr = err
			return false
		}
		summaries = append(summaries, poolSummary(e.(*entries.Pool)))
		return len(summaries) < limit
	})
	if err != nil {
		return nil, ErrInternal(err.Error())
	}
	if decodeErr != nil {
		return nil, ErrInternal(decodeErr.Error())
	}
	return map[string]interface{}{
		"pools": summaries,
		"count": len(summaries),
	}, nil
}

func (s *Server) poolItems(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	var req poolParams
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	p, rpcErr := s.readPool(req.Collection, req.Currency)
	if rpcErr != nil {
		return nil, rpcErr
	}
	items := p.Items
	if items == nil {
		items = []string{}
	}
	return map[string]interface{}{
		"collection": p.Collection,
		"currency":   p.Currency,
		"items":      items,
	}, nil
}

func (s *Server) priceQuote(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	var req struct {
		poolParams
		Side string `json:"side"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	p, rpcErr := s.readPool(req.Collection, req.Currency)
	if rpcErr != nil {
		return nil, rpcErr
	}

	var q pool.Quote
	var res tx.Result
	switch req.Side {
	case "sell":
		q, res = pool.SellQuote(p.CurrencyReserve, p.ItemCount(), p.FeeBps)
	case "buy":
		q, res = pool.BuyQuote(p.CurrencyReserve, p.ItemCount(), p.FeeBps)
	default:
		return nil, ErrInvalidParams(`side must be "buy" or "sell"`)
	}
	if !res.IsSuccess() {
		return nil, &Error{
			Code:        int(res),
			ErrorString: "quoteUnavailable",
			Message:     res.Message(),
		}
	}
	return map[string]interface{}{
		"collection": p.Collection,
		"currency":   p.Currency,
		"side":       req.Side,
		"gross":      q.Gross,
		"fee":        q.Fee,
		"net":        q.Net,
	}, nil
}

func (s *Server) sharePosition(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	var req struct {
		poolParams
		Provider string `json:"provider"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	if req.Provider == "" {
		return nil, ErrInvalidParams("provider is required")
	}
	e, rpcErr := s.readEntry(keylet.SharePosition(req.Collection, req.Currency, req.Provider))
	if rpcErr != nil {
		return nil, rpcErr
	}
	if e == nil {
		return nil, ErrNotFound("no share position")
	}
	pos := e.(*entries.SharePosition)
	return map[string]interface{}{
		"collection": pos.Collection,
		"currency":   pos.Currency,
		"provider":   pos.Provider,
		"shares":     pos.Shares,
	}, nil
}

func (s *Server) royaltyPending(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	var req struct {
		Account  string `json:"account"`
		Currency string `json:"currency"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	if req.Account == "" || req.Currency == "" {
		return nil, ErrInvalidParams("account and currency are required")
	}
	e, rpcErr := s.readEntry(keylet.PendingRoyalty(req.Account, req.Currency))
	if rpcErr != nil {
		return nil, rpcErr
	}
	var amount uint64
	if e != nil {
		amount = e.(*entries.PendingRoyalty).Amount
	}
	return map[string]interface{}{
		"account":  req.Account,
		"currency": req.Currency,
		"pending":  amount,
	}, nil
}

func (s *Server) tradeHistory(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	var req struct {
		poolParams
		Limit int `json:"limit"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	if s.services.Feed == nil {
		return nil, ErrNotFound("trade feed is disabled")
	}
	trades, err := s.services.Feed.Recent(req.Collection, req.Currency, req.Limit)
	if err != nil {
		return nil, ErrInternal(err.Error())
	}
	if trades == nil {
		trades = []pricefeed.RecordedTrade{}
	}
	return map[string]interface{}{
		"collection": req.Collection,
		"currency":   req.Currency,
		"trades":     trades,
	}, nil
}

func (s *Server) accountInfo(ctx *Context, params json.RawMessage) (interface{}, *Error) {
	var req struct {
		Account string `json:"account"`
	}
	if rpcErr := decodeParams(params, &req); rpcErr != nil {
		return nil, rpcErr
	}
	if req.Account == "" {
		return nil, ErrInvalidParams("account is required")
	}
	e, rpcErr := s.readEntry(keylet.Account(req.Account))
	if rpcErr != nil {
		return nil, rpcErr
	}
	if e == nil {
		return nil, ErrNotFound("account not found")
	}
	root := e.(*entries.AccountRoot)
	balances := root.Balances
	if balances == nil {
		balances = map[string]uint64{}
	}
	return map[string]interface{}{
		"account":  root.Account,
		"balances": balances,
	}, nil
}
