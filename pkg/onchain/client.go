// Package onchain collects contract evidence from a JSON-RPC node and an
// etherscan-compatible explorer API.
package onchain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/veritasproject/veritas/pkg/audit"
	"github.com/veritasproject/veritas/pkg/config"
	"github.com/veritasproject/veritas/pkg/net"
)

// txSampleSize caps the transaction listing request. The normalizer's
// activity bonus saturates at the same count, so a larger sample adds
// nothing.
const txSampleSize = 1000

// Client implements audit.OnChainCollector against one chain. The chain
// config is immutable and injected at construction.
type Client struct {
	chain  config.Chain
	apiKey string
	hc     *http.Client
}

func New(chain config.Chain, apiKey string, hc *http.Client) *Client {
	return &Client{chain: chain, apiKey: apiKey, hc: hc}
}

// Collect gathers contract facts for the address. An address with no
// deployed code yields an empty evidence record, not an error; individual
// explorer failures leave the corresponding fields unset (partial data).
// Only a total transport failure returns an error.
func (c *Client) Collect(ctx context.Context, address string) (*audit.OnChainEvidence, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	code, err := c.getCode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("fetching contract code on %s: %w", c.chain.Name, err)
	}
	if code == "" || code == "0x" {
		slog.Debug("address is not a contract", "address", address, "chain", c.chain.Name)
		return &audit.OnChainEvidence{}, nil
	}

	ev := &audit.OnChainEvidence{}

	src, err := c.getSourceInfo(ctx, address)
	if err != nil {
		slog.Debug("source info unavailable", "address", address, "error", err)
	} else {
		verified := src.ABI != "" && src.ABI != "Contract source code not verified"
		ev.Verified = &verified
		ev.SecurityIndicators, ev.RiskFlags = inspectSource(src)
	}

	if txCount, err := c.getTransactionCount(ctx, address); err != nil {
		slog.Debug("transaction listing unavailable", "address", address, "error", err)
	} else {
		ev.TransactionCount = &txCount
	}

	if holders, err := c.getHolderCount(ctx, address); err != nil {
		slog.Debug("holder count unavailable", "address", address, "error", err)
	} else {
		ev.HolderCount = &holders
	}

	return ev, nil
}

// inspectSource derives security indicators and ownership risk flags from
// the verified source listing.
func inspectSource(src *sourceInfo) (indicators, risks []string) {
	indicators = []string{}
	risks = []string{}

	if src.Proxy == "1" {
		risks = append(risks, "Upgradeable proxy pattern")
	} else {
		indicators = append(indicators, "No upgradeable proxy pattern")
	}

	hasTimelock := strings.Contains(src.SourceCode, "Timelock")
	hasOwner := strings.Contains(src.SourceCode, "onlyOwner")

	if strings.Contains(src.SourceCode, "ReentrancyGuard") {
		indicators = append(indicators, "Reentrancy protection in place")
	}
	if hasTimelock {
		indicators = append(indicators, "Timelock on critical functions")
	}
	if hasOwner && !hasTimelock {
		risks = append(risks, "Owner has full control", "No timelock on critical functions")
	}

	return indicators, risks
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) getCode(ctx context.Context, address string) (string, error) {
	req := rpcRequest{JSONRPC: "2.0", Method: "eth_getCode", Params: []any{address, "latest"}, ID: 1}

	var resp rpcResponse
	if err := net.PostJSON(ctx, c.hc, c.chain.RPCURL, req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}

// explorerEnvelope is the etherscan-compatible response wrapper. Result is
// polymorphic across actions.
type explorerEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type sourceInfo struct {
	ABI        string `json:"ABI"`
	SourceCode string `json:"SourceCode"`
	Proxy      string `json:"Proxy"`
}

func (c *Client) getSourceInfo(ctx context.Context, address string) (*sourceInfo, error) {
	var env explorerEnvelope
	u := c.explorerURL(map[string]string{
		"module":  "contract",
		"action":  "getsourcecode",
		"address": address,
	})
	if err := net.GetJSON(ctx, c.hc, u, &env); err != nil {
		return nil, err
	}
	if env.Status != "1" {
		return nil, fmt.Errorf("explorer error: %s", env.Message)
	}

	var results []sourceInfo
	if err := json.Unmarshal(env.Result, &results); err != nil {
		return nil, fmt.Errorf("decoding source info: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("empty source info result")
	}
	return &results[0], nil
}

func (c *Client) getTransactionCount(ctx context.Context, address string) (int64, error) {
	var env explorerEnvelope
	u := c.explorerURL(map[string]string{
		"module":  "account",
		"action":  "txlist",
		"address": address,
		"page":    "1",
		"offset":  fmt.Sprintf("%d", txSampleSize),
		"sort":    "desc",
	})
	if err := net.GetJSON(ctx, c.hc, u, &env); err != nil {
		return 0, err
	}
	// Status "0" with message "No transactions found" is a real zero.
	if env.Status != "1" && !strings.Contains(env.Message, "No transactions") {
		return 0, fmt.Errorf("explorer error: %s", env.Message)
	}

	var txs []json.RawMessage
	if len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, &txs); err != nil {
			return 0, fmt.Errorf("decoding transaction list: %w", err)
		}
	}
	return int64(len(txs)), nil
}

func (c *Client) getHolderCount(ctx context.Context, address string) (int64, error) {
	var env explorerEnvelope
	u := c.explorerURL(map[string]string{
		"module":  "token",
		"action":  "tokenholdercount",
		"address": address,
	})
	if err := net.GetJSON(ctx, c.hc, u, &env); err != nil {
		return 0, err
	}
	if env.Status != "1" {
		return 0, fmt.Errorf("explorer error: %s", env.Message)
	}

	var count string
	if err := json.Unmarshal(env.Result, &count); err != nil {
		return 0, fmt.Errorf("decoding holder count: %w", err)
	}

	var holders int64
	if _, err := fmt.Sscanf(count, "%d", &holders); err != nil {
		return 0, fmt.Errorf("parsing holder count %q: %w", count, err)
	}
	return holders, nil
}

func (c *Client) explorerURL(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}
	return c.chain.ExplorerURL + "?" + q.Encode()
}
