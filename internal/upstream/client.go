// Package upstream wraps the inventory backend's REST report endpoints. All
// datasets arrive as {items: [...]} envelopes and map into reports domain
// rows exactly once, at this boundary.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stocklens/stocklens/internal/platform/httpx"
	"github.com/stocklens/stocklens/internal/reports"
	"github.com/stocklens/stocklens/internal/shared"
)

// Client wraps interactions with the inventory backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ping checks if the upstream service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: health returned status %d", httpx.ErrUpstream, resp.StatusCode)
	}
	return nil
}

// CurrentStock fetches the current stock snapshot rows.
func (c *Client) CurrentStock(ctx context.Context) ([]reports.StockRow, error) {
	return c.fetchStock(ctx, "/reports/current-stock")
}

// LowStock fetches the rows the upstream flagged as at or below their
// reorder level. The threshold decision stays upstream.
func (c *Client) LowStock(ctx context.Context) ([]reports.StockRow, error) {
	return c.fetchStock(ctx, "/reports/low-stock")
}

func (c *Client) fetchStock(ctx context.Context, path string) ([]reports.StockRow, error) {
	var env envelope[stockPayload]
	if err := c.getJSON(ctx, path, nil, &env); err != nil {
		return nil, err
	}
	rows := make([]reports.StockRow, 0, len(env.Items))
	for _, item := range env.Items {
		rows = append(rows, item.toRow())
	}
	return rows, nil
}

// MovementSeries fetches the pre-aggregated in/out dataset for the scale.
func (c *Client) MovementSeries(ctx context.Context, scale reports.Scale) ([]reports.MovementRow, error) {
	var path string
	switch scale {
	case reports.ScaleMonth:
		path = "/reports/monthly-in-out"
	case reports.ScaleWeek:
		path = "/reports/weekly-in-out"
	case reports.ScaleDay:
		path = "/reports/daily-in-out"
	default:
		return nil, fmt.Errorf("%w: unknown scale %q", httpx.ErrValidation, scale)
	}
	var env envelope[movementPayload]
	if err := c.getJSON(ctx, path, nil, &env); err != nil {
		return nil, err
	}
	rows := make([]reports.MovementRow, 0, len(env.Items))
	for _, item := range env.Items {
		rows = append(rows, item.toRow())
	}
	return rows, nil
}

// TopMoving fetches the product movement ranking for the trailing 30 days.
func (c *Client) TopMoving(ctx context.Context) ([]reports.TopMovingRow, error) {
	var env envelope[topMovingPayload]
	if err := c.getJSON(ctx, "/reports/top-moving", nil, &env); err != nil {
		return nil, err
	}
	rows := make([]reports.TopMovingRow, 0, len(env.Items))
	for _, item := range env.Items {
		rows = append(rows, item.toRow())
	}
	return rows, nil
}

// Transactions fetches detail ledger entries for the query scope.
func (c *Client) Transactions(ctx context.Context, query reports.TxnQuery) ([]reports.TransactionRow, error) {
	params := url.Values{}
	if query.WarehouseID != nil {
		params.Set("warehouse_id", strconv.FormatInt(*query.WarehouseID, 10))
	}
	if query.ProductID != nil {
		params.Set("product_id", strconv.FormatInt(*query.ProductID, 10))
	}
	if query.From != "" {
		params.Set("from", query.From)
	}
	if query.To != "" {
		params.Set("to", query.To)
	}
	var env envelope[txnPayload]
	if err := c.getJSON(ctx, "/reports/txns", params, &env); err != nil {
		return nil, err
	}
	rows := make([]reports.TransactionRow, 0, len(env.Items))
	for _, item := range env.Items {
		rows = append(rows, item.toRow())
	}
	return rows, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := shared.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", httpx.ErrUpstream, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d", httpx.ErrUnauthorized, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: %s returned status %d", httpx.ErrUpstream, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", httpx.ErrUpstream, path, err)
	}
	return nil
}
