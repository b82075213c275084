package driffle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"git.appkode.ru/pub/go/failure"

	"github.com/justt1n/driffle-tool/pkg/errcodes"
)

// Authenticator exchanges the account apiKey for a short-lived bearer token.
// It satisfies the httpx round tripper's authenticator contract, so expired
// tokens are refreshed transparently on the first 401.
type Authenticator struct {
	httpClient *http.Client
	authURL    string
	apiKey     string
	tokenTTL   time.Duration

	mu          sync.Mutex
	token       string
	expiresAt   time.Time
	refreshedAt time.Time
}

func NewAuthenticator(httpClient *http.Client, authURL, apiKey string, tokenTTL time.Duration) *Authenticator {
	return &Authenticator{
		httpClient: httpClient,
		authURL:    authURL,
		apiKey:     apiKey,
		tokenTTL:   tokenTTL,
	}
}

func (a *Authenticator) BearerToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if time.Now().After(a.expiresAt) {
		return ""
	}

	return a.token
}

func (a *Authenticator) Authenticate(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	// A token older than that cannot be trusted even inside its TTL: the
	// caller is here because the server just rejected it.
	if a.token != "" && time.Since(a.refreshedAt) < 5*time.Second {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"apiKey": a.apiKey})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.authURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return failure.NewUnauthorizedError(
			fmt.Sprintf("token request failed: %d %s", resp.StatusCode, body),
			failure.WithCode(errcodes.AuthFailed),
		)
	}

	var parsed authResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	if parsed.Data.Token == "" {
		return failure.NewUnauthorizedError(
			"token response carried no token",
			failure.WithCode(errcodes.AuthFailed),
		)
	}

	a.token = parsed.Data.Token
	a.expiresAt = time.Now().Add(a.tokenTTL)
	a.refreshedAt = time.Now()

	return nil
}
