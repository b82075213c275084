package driffle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/justt1n/driffle-tool/internal/config"
	"github.com/justt1n/driffle-tool/internal/domain"
	"github.com/justt1n/driffle-tool/pkg/errcodes"
	"github.com/justt1n/driffle-tool/pkg/httpx"
	"github.com/justt1n/driffle-tool/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Responses are validated right after decode; the core never sees a payload
// that is missing a required field.
var validate = validator.New() //nolint:gochecknoglobals

// Client is the thin HTTP layer over the Driffle seller API. Authentication
// and request logging live in the round trippers, so every method here is
// just endpoint + decode.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg config.Driffle) *Client {
	authenticator := NewAuthenticator(
		&http.Client{Timeout: cfg.RequestTimeout},
		cfg.AuthURL,
		cfg.APIKey,
		cfg.TokenTTL,
	)

	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		),
		authenticator,
	)

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *Client) GetOfferDetails(ctx context.Context, offerID int64) (singleOfferResponse, error) {
	var resp singleOfferResponse

	err := c.call(ctx, http.MethodGet, fmt.Sprintf("offer/%d", offerID), nil, &resp)

	return resp, err
}

func (c *Client) GetProductCompetitions(ctx context.Context, pid int64) (productCompetitionsResponse, error) {
	var resp productCompetitionsResponse

	err := c.call(ctx, http.MethodGet, fmt.Sprintf("products/%d/competitions", pid), nil, &resp)

	return resp, err
}

func (c *Client) CalculateCommission(ctx context.Context, pid int64, sellingPrice float64) (commissionResponse, error) {
	var resp commissionResponse

	body := map[string]any{
		"productId":    pid,
		"sellingPrice": sellingPrice,
	}

	err := c.call(ctx, http.MethodPost, "commission/calculate", body, &resp)

	return resp, err
}

func (c *Client) UpdateOffer(ctx context.Context, offerID int64, newPrice float64, active bool) (updateOfferResponse, error) {
	var resp updateOfferResponse

	toggle := "enable"
	if !active {
		toggle = "disable"
	}

	body := updateOfferRequest{
		OfferID:     offerID,
		YourPrice:   newPrice,
		ToggleOffer: toggle,
	}

	err := c.call(ctx, http.MethodPatch, "offer/update", body, &resp)

	return resp, err
}

func (c *Client) call(ctx context.Context, method, endpoint string, body, dest any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return domain.NewError(errcodes.MarketplaceError,
			fmt.Sprintf("%s %s: %d %s", method, endpoint, resp.StatusCode, raw))
	}

	if err = json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	if err = validate.Struct(dest); err != nil {
		return domain.WrapError(err, errcodes.MarketplaceError,
			fmt.Sprintf("%s %s: malformed response", method, endpoint))
	}

	return nil
}
