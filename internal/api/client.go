// Package api is the client for the payrun back-end: the
// employee-details fetch, the income-tax computation POST, and the
// fire-and-forget rating submission.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/payrollhq/taxplanner/internal/calculation"
	"github.com/payrollhq/taxplanner/internal/domain"
)

// Default endpoint paths under the payrun base URL.
const (
	EmployeeDetailsPath = "/get-employee-details-ency"
	IncomeTaxPath       = "/income-tax"
	RatingPath          = "/updated-rating"
)

// GenericComputeError is shown when the back-end fails without a usable
// message.
const GenericComputeError = "Failed to calculate tax"

// envelope is the back-end's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// APIError is a semantic failure (success=false) or transport-level
// problem mapped to a user-facing message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// UserMessage extracts the message to surface for err: the back-end's
// own message when one exists, otherwise the generic fallback.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericComputeError
}

// Client talks to the payrun back-end. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a client for the given base URL. A nil logger
// disables logging.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		// No deadline is imposed by the product contract; the transport
		// timeout here only guards against a wedged connection.
		http: &http.Client{Timeout: 2 * time.Minute},
		log:  logger,
	}
}

// EmployeeDetails fetches the employee record for userID.
func (c *Client) EmployeeDetails(ctx context.Context, userID string) (*domain.Employee, error) {
	u := c.baseURL + EmployeeDetailsPath + "/" + url.PathEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build employee details request: %w", err)
	}

	var emp domain.Employee
	if err := c.do(req, &emp); err != nil {
		return nil, fmt.Errorf("fetch employee details: %w", err)
	}
	return &emp, nil
}

// ComputeTax submits the derived income details and returns the regime
// comparison.
func (c *Client) ComputeTax(ctx context.Context, payload calculation.ComputeRequest) (*domain.TaxResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode compute payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+IncomeTaxPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build compute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result domain.TaxResult
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("compute tax: %w", err)
	}
	return &result, nil
}

// SubmitRating posts a star rating. Fire and forget: failures are logged
// and swallowed.
func (c *Client) SubmitRating(ctx context.Context, userID string, stars int) {
	u := fmt.Sprintf("%s%s/%s/%d", c.baseURL, RatingPath, url.PathEscape(userID), stars)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.log.Warn("rating request build failed", zap.Error(err))
		return
	}
	if err := c.do(req, nil); err != nil {
		c.log.Warn("rating submission failed",
			zap.Int("stars", stars),
			zap.Error(err),
		)
	}
}

// do executes the request, unwraps the success envelope, and decodes
// data into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("payrun request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Message: ""}
		}
		return fmt.Errorf("decode response: %w", jsonErr)
	}

	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
