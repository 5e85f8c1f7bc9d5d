package orgs_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/orgs/internal/orgs/app"
	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/mail"
	"github.com/aussiebroadwan/orgs/internal/orgs/store/drivers/sqlite"
	"github.com/aussiebroadwan/orgs/pkg/idx"
	"github.com/aussiebroadwan/orgs/pkg/jwtx"
	"github.com/aussiebroadwan/orgs/pkg/orgsdk"
)

/*
 * End-to-end helpers: a redis container for the mail queue, a sqlite file
 * seeded with users, and the full application served over httptest.
 */

const (
	testIssuer   = "bartab-auth"
	testKeyID    = "e2e-key-001"
	testMailKey  = "orgs:mail:e2e"
	frontendBase = "https://app.example.com"
)

type testEnv struct {
	baseURL string
	redis   *redis.Client
	priv    ed25519.PrivateKey
	users   map[string]domain.User
}

// setupRedisContainer starts redis and returns its address.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, mappedPort.Port())
}

// seedUsers creates the identity rows the service only ever reads.
func seedUsers(t *testing.T, dbFile string, names ...string) map[string]domain.User {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(dbFile)
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.ApplyMigrations())

	users := make(map[string]domain.User, len(names))
	for _, name := range names {
		u := domain.User{
			ID:    idx.New().String(),
			Name:  strings.ToUpper(name[:1]) + name[1:],
			Email: name + "@example.com",
		}
		require.NoError(t, st.Users().CreateUser(ctx, u))
		users[name] = u
	}
	return users
}

// setupOrgsService boots the application against redis with a pinned JWKS.
// Workers are not started so queued mail stays in redis for inspection.
func setupOrgsService(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	redisAddr := setupRedisContainer(t)

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	jwks, err := json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{jwtx.NewEd25519JWK(testKeyID, pub)}})
	require.NoError(t, err)

	dbFile := filepath.Join(t.TempDir(), "orgs.db")
	users := seedUsers(t, dbFile, "anna", "bob", "carol", "annette")

	cfg := app.Config{
		Env:                   "test",
		LogLevel:              "warn",
		LogFormat:             "json",
		Port:                  8081,
		ShutdownGracePeriod:   5 * time.Second,
		HousekeepingInterval:  time.Hour,
		BaseURL:               frontendBase,
		DatabaseFile:          dbFile,
		JWKSJSON:              string(jwks),
		JWTIssuer:             testIssuer,
		JWTLeeway:             30 * time.Second,
		RedisAddr:             redisAddr,
		MailQueueKey:          testMailKey,
		MailQueueSize:         16,
		MailFrom:              "invites@example.com",
		LinkEnforceExpiry:     true,
		TargetedEnforceExpiry: true,
		TargetedSingleUse:     true,
	}

	application, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	t.Cleanup(func() { _ = rdb.Close() })

	return &testEnv{
		baseURL: srv.URL,
		redis:   rdb,
		priv:    priv,
		users:   users,
	}
}

// clientFor returns an SDK client holding an access token for the named user.
func (e *testEnv) clientFor(t *testing.T, name string, scopes ...string) *orgsdk.Client {
	t.Helper()
	u, ok := e.users[name]
	require.True(t, ok, "unknown user %q", name)
	return e.clientForIdentity(t, u, scopes...)
}

// clientForIdentity signs a token for u whether or not the service has
// seen it before.
func (e *testEnv) clientForIdentity(t *testing.T, u domain.User, scopes ...string) *orgsdk.Client {
	t.Helper()

	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
		Scopes:        scopes,
		Username:      strings.ToLower(u.Name),
		PreferredName: u.Name,
		Email:         u.Email,
	})
	tok.Header["kid"] = testKeyID
	signed, err := tok.SignedString(e.priv)
	require.NoError(t, err)

	return orgsdk.NewClient(e.baseURL, signed)
}

// popMail takes the oldest queued invitation email off the redis list.
func (e *testEnv) popMail(t *testing.T) mail.Message {
	t.Helper()
	res, err := e.redis.BLPop(context.Background(), 5*time.Second, testMailKey).Result()
	require.NoError(t, err)
	require.Len(t, res, 2)

	var msg mail.Message
	require.NoError(t, json.Unmarshal([]byte(res[1]), &msg))
	return msg
}

// tokenFromURL pulls the token query value out of an invite link or email.
func tokenFromURL(t *testing.T, s string) string {
	t.Helper()
	i := strings.Index(s, "token=")
	require.GreaterOrEqual(t, i, 0, "no token in %q", s)
	s = s[i+len("token="):]
	require.GreaterOrEqual(t, len(s), 36)
	return s[:36]
}

func assertAPIError(t *testing.T, err error, status int, description string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *orgsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, err.Error())
	if description != "" {
		require.Equal(t, description, apiErr.Description)
	}
}
