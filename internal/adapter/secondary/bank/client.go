package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/platform/metrics"
	"github.com/cashflow/card-gateway/internal/port/output"
)

const (
	paymentsPath = "/payments"
	maxBodyBytes = 1 << 20
	maxErrorBody = 512

	outcomeAuthorized  = "authorized"
	outcomeDeclined    = "declined"
	outcomeUnavailable = "unavailable"
	outcomeUnexpected  = "unexpected_status"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the acquiring bank client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient HTTPDoer
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Client is a secondary adapter that implements the AcquiringBank output port over HTTP
type Client struct {
	baseURL string
	http    HTTPDoer
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

var _ output.AcquiringBank = (*Client)(nil)

// NewClient creates a new acquiring bank client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		metrics: cfg.Metrics,
		logger:  logger,
		tracer:  otel.Tracer("github.com/cashflow/card-gateway/bank"),
	}
}

// SubmitPayment posts a payment to the bank and classifies the outcome.
// Cancellation of ctx does not reach the bank call; only the transport
// timeout bounds it.
func (c *Client) SubmitPayment(ctx context.Context, req core.BankRequest) (*core.BankResponse, error) {
	ctx, span := c.tracer.Start(ctx, "bank.submit_payment",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("payment.currency", req.Currency)),
	)
	defer span.End()

	start := time.Now()
	resp, outcome, err := c.submit(context.WithoutCancel(ctx), req)
	c.metrics.ObserveBankRequest(outcome, time.Since(start))

	span.SetAttributes(attribute.String("bank.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	return resp, nil
}

func (c *Client) submit(ctx context.Context, req core.BankRequest) (*core.BankResponse, string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, outcomeUnexpected, fmt.Errorf("failed to marshal bank request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+paymentsPath, bytes.NewReader(body))
	if err != nil {
		return nil, outcomeUnexpected, fmt.Errorf("failed to create bank request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, outcomeUnavailable, fmt.Errorf("could not reach acquiring bank: %w: %w", core.ErrBankUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, outcomeUnavailable, fmt.Errorf("failed to read bank response: %w: %w", core.ErrBankUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, outcomeUnavailable, core.ErrBankUnavailable
	case resp.StatusCode/100 != 2:
		c.logger.WarnContext(ctx, "bank responded with unexpected status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", truncate(respBody, maxErrorBody)),
		)
		return nil, outcomeUnexpected, &core.UnexpectedBankError{
			StatusCode: resp.StatusCode,
			Body:       truncate(respBody, maxErrorBody),
		}
	}

	bankResp := c.decode(ctx, respBody)
	if bankResp.Authorized {
		return bankResp, outcomeAuthorized, nil
	}
	return bankResp, outcomeDeclined, nil
}

// decode treats an empty or unreadable success body as not authorized.
func (c *Client) decode(ctx context.Context, body []byte) *core.BankResponse {
	var bankResp core.BankResponse
	if len(bytes.TrimSpace(body)) == 0 {
		return &bankResp
	}
	if err := json.Unmarshal(body, &bankResp); err != nil {
		c.logger.WarnContext(ctx, "unreadable bank response treated as declined", slog.Any("error", err))
		return &core.BankResponse{}
	}
	return &bankResp
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
