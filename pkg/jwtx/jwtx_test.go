package jwtx_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/orgs/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "https://auth.example.test"

func newKey(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub, priv
}

func sign(t *testing.T, kid string, priv ed25519.PrivateKey, claims jwtx.Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(priv)
	require.NoError(t, err)
	return s
}

func accessClaims(sub string, scopes ...string) jwtx.Claims {
	now := time.Now().UTC()
	return jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    exampleIssuer,
			Subject:   sub,
			Audience:  jwt.ClaimStrings{"api"},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
		},
		Scopes:   scopes,
		Username: "anna",
	}
}

func keySetWith(t *testing.T, kid string, pub ed25519.PublicKey) *jwtx.KeySet {
	t.Helper()
	ks := jwtx.NewKeySet()
	require.NoError(t, ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{jwtx.NewEd25519JWK(kid, pub)}}))
	return ks
}

func TestEdDSAVerify(t *testing.T) {
	pub, priv := newKey(t)
	v := &jwtx.EdDSAVerifier{Keys: keySetWith(t, "k1", pub), Issuer: exampleIssuer, Audience: []string{"api"}}

	token := sign(t, "k1", priv, accessClaims("user-1", "admin:read"))

	claims, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.True(t, claims.HasScope("admin:read"))
	require.False(t, claims.HasScope("admin:write"))
	require.Equal(t, "anna", claims.Username)
}

func TestVerifyCarriesIdentityClaims(t *testing.T) {
	pub, priv := newKey(t)
	v := &jwtx.EdDSAVerifier{Keys: keySetWith(t, "k1", pub), Issuer: exampleIssuer}

	c := accessClaims("user-1")
	c.Email = "anna@example.com"
	claims, err := v.Verify(sign(t, "k1", priv, c))
	require.NoError(t, err)
	require.Equal(t, "anna@example.com", claims.Email)
	require.Equal(t, "anna", claims.DisplayName())

	claims.PreferredName = "Anna"
	require.Equal(t, "Anna", claims.DisplayName())

	require.Empty(t, (&jwtx.Claims{}).DisplayName())
}

func TestEdDSAVerifyRejects(t *testing.T) {
	pub, priv := newKey(t)
	_, otherPriv := newKey(t)
	ks := keySetWith(t, "k1", pub)

	t.Run("wrong issuer", func(t *testing.T) {
		v := &jwtx.EdDSAVerifier{Keys: ks, Issuer: "https://other.test"}
		_, err := v.Verify(sign(t, "k1", priv, accessClaims("u")))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		v := &jwtx.EdDSAVerifier{Keys: ks, Audience: []string{"billing"}}
		_, err := v.Verify(sign(t, "k1", priv, accessClaims("u")))
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("unknown kid", func(t *testing.T) {
		v := &jwtx.EdDSAVerifier{Keys: ks}
		_, err := v.Verify(sign(t, "k2", priv, accessClaims("u")))
		require.Error(t, err)
	})

	t.Run("bad signature", func(t *testing.T) {
		v := &jwtx.EdDSAVerifier{Keys: ks}
		_, err := v.Verify(sign(t, "k1", otherPriv, accessClaims("u")))
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		c := accessClaims("u")
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		v := &jwtx.EdDSAVerifier{Keys: ks}
		_, err := v.Verify(sign(t, "k1", priv, c))
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		v := &jwtx.EdDSAVerifier{Keys: ks}
		_, err := v.Verify("not.a.jwt")
		require.Error(t, err)
	})
}

func TestKeySetSkipsForeignKeys(t *testing.T) {
	pub, _ := newKey(t)
	ks := jwtx.NewKeySet()
	require.False(t, ks.IsReady())

	err := ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{
		{Kty: "RSA", Kid: "rsa-1", Alg: "RS256"},
		jwtx.NewEd25519JWK("ed-1", pub),
	}})
	require.NoError(t, err)
	require.True(t, ks.IsReady())

	_, err = ks.Get("rsa-1")
	require.ErrorIs(t, err, jwtx.ErrNoKey)

	got, err := ks.Get("ed-1")
	require.NoError(t, err)
	require.Equal(t, pub, got)
}

func TestKeySetRejectsBadOKP(t *testing.T) {
	ks := jwtx.NewKeySet()
	err := ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{{Kty: "OKP", Crv: "Ed25519", Kid: "x", X: "AAAA"}}})
	require.Error(t, err)
}

func TestRefreshKeySetFromServer(t *testing.T) {
	pub, priv := newKey(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwtx.JWKS{Keys: []jwtx.JWK{jwtx.NewEd25519JWK("remote", pub)}})
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ks := jwtx.NewKeySet()
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	require.NoError(t, jwtx.RefreshKeySet(ctx, ks, srv.URL, time.Hour, logger))
	require.True(t, ks.IsReady())

	v := &jwtx.EdDSAVerifier{Keys: ks}
	_, err := v.Verify(sign(t, "remote", priv, accessClaims("u")))
	require.NoError(t, err)
}

func TestFetchJWKSStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := jwtx.FetchJWKS(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
