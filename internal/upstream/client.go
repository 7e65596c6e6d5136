// Package upstream holds the client for the external license
// verification and demand prediction services. Both are opaque: only
// their request and response shapes are fixed, and responses are passed
// through to the caller untouched. Calls are terminal — no retries.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meditrust/storefront/config"
	"github.com/meditrust/storefront/middleware"
)

// Client calls the prediction sidecar over HTTP with a bounded timeout.
type Client struct {
	http         *http.Client
	verifierURL  string
	predictorURL string
}

// NewClient creates a Client from the upstream configuration.
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		http:         &http.Client{Timeout: cfg.Timeout},
		verifierURL:  cfg.VerifierURL,
		predictorURL: cfg.PredictorURL,
	}
}

// LicenseVerification is the verifier's response shape.
type LicenseVerification struct {
	Verified      bool   `json:"verified"`
	LicenseNumber string `json:"licenseNumber"`
}

// VerifyLicense asks the verifier service whether the license number is
// valid.
func (c *Client) VerifyLicense(ctx context.Context, licenseNumber string) (*LicenseVerification, error) {
	ctx, span := middleware.StartSpan(ctx, "upstream.verify_license", trace.WithAttributes(
		attribute.String("layer", "upstream"),
	))
	defer span.End()

	var result LicenseVerification
	err := c.post(ctx, c.verifierURL+"/verify-license",
		map[string]string{"licenseNumber": licenseNumber}, &result)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("verify license: %w", err)
	}

	span.SetAttributes(attribute.Bool("license.verified", result.Verified))
	return &result, nil
}

// PredictDemand asks the predictor service for the demand forecast of a
// product. The response body is relayed verbatim.
func (c *Client) PredictDemand(ctx context.Context, productID int) (json.RawMessage, error) {
	ctx, span := middleware.StartSpan(ctx, "upstream.predict_demand", trace.WithAttributes(
		attribute.String("layer", "upstream"),
		attribute.Int("product.id", productID),
	))
	defer span.End()

	var result json.RawMessage
	err := c.post(ctx, c.predictorURL+"/predict",
		map[string]int{"productId": productID}, &result)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("predict demand: %w", err)
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
