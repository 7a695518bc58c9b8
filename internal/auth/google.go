package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Chinny123a/flightsimspot/internal/service"
	apperrors "github.com/Chinny123a/flightsimspot/pkg/errors"
	"github.com/Chinny123a/flightsimspot/pkg/httpclient"
)

// tokenInfo is the response shape of Google's tokeninfo endpoint.
type tokenInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Sub     string `json:"sub"`
	Aud     string `json:"aud"`
}

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint.
// The call goes through a circuit breaker with zero retries: a transient
// identity-provider failure surfaces to the caller immediately rather than
// being retried.
type GoogleVerifier struct {
	client       *httpclient.CircuitBreakerClient
	tokenInfoURL string
	clientID     string
	logger       *slog.Logger
}

// NewGoogleVerifier creates a verifier for the given OAuth client ID.
func NewGoogleVerifier(tokenInfoURL, clientID string, logger *slog.Logger) *GoogleVerifier {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = 10 * time.Second
	httpCfg.MaxRetries = 0

	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("google-tokeninfo"),
		logger,
	)

	return &GoogleVerifier{
		client:       client,
		tokenInfoURL: tokenInfoURL,
		clientID:     clientID,
		logger:       logger,
	}
}

// Verify checks the credential with Google and confirms the token audience
// matches the configured client ID. Any mismatch or provider-side rejection
// is a BadRequest, matching the public API contract.
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*service.GoogleIdentity, error) {
	if credential == "" {
		return nil, apperrors.InvalidInput("no credential provided")
	}

	endpoint := v.tokenInfoURL + "?id_token=" + url.QueryEscape(credential)
	resp, err := v.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("verify google token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.WarnContext(ctx, "google token verification rejected",
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperrors.InvalidInput("invalid token")
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo response: %w", err)
	}

	if info.Aud != v.clientID {
		v.logger.WarnContext(ctx, "google token audience mismatch",
			slog.String("aud", info.Aud),
		)
		return nil, apperrors.InvalidInput("invalid client ID")
	}

	return &service.GoogleIdentity{
		Email:     info.Email,
		Name:      info.Name,
		Picture:   info.Picture,
		SubjectID: info.Sub,
	}, nil
}
