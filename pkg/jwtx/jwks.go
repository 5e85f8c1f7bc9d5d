package jwtx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// FetchJWKS downloads a JWKS document from url.
func FetchJWKS(ctx context.Context, client *http.Client, url string) (JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return JWKS{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return JWKS{}, fmt.Errorf("jwtx: decode jwks: %w", err)
	}
	return jwks, nil
}

// RefreshKeySet loads url into keys once and then every interval until ctx
// is done. Refresh failures keep the previous keys so a flaky auth service
// doesn't lock everyone out.
func RefreshKeySet(ctx context.Context, keys *KeySet, url string, interval time.Duration, logger *slog.Logger) error {
	client := &http.Client{Timeout: 10 * time.Second}

	load := func() error {
		jwks, err := FetchJWKS(ctx, client, url)
		if err != nil {
			return err
		}
		return keys.ResetFromJWKS(jwks)
	}

	if err := load(); err != nil {
		return err
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := load(); err != nil {
					logger.Warn("jwks refresh failed", "url", url, "error", err)
				}
			}
		}
	}()

	return nil
}
