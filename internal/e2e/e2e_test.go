//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/DaviCMachado/my-price-tracker/internal/config"
	"github.com/DaviCMachado/my-price-tracker/internal/infra"
	"github.com/DaviCMachado/my-price-tracker/internal/router"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("precos_test"),
		tcPostgres.WithUsername("precos"),
		tcPostgres.WithPassword("precos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		WorkerPoolSize:     1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Anonymous session is the quickest way in, like the app's first load
	anonResp := do(t, srv, "POST", "/v1/auth/anonymous", jsonBody(t, map[string]string{}), "")
	require.Equal(t, http.StatusCreated, anonResp.StatusCode)
	var anonBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, anonResp, &anonBody)
	require.NotEmpty(t, anonBody.AccessToken)

	return &testEnv{server: srv, token: anonBody.AccessToken}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_RecordLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	createResp := do(t, env.server, "POST", "/v1/records",
		jsonBody(t, map[string]any{
			"product": "Leite Integral", "store": "Rede Vivo", "price": "4.99",
		}), env.token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var created struct {
		ID        string `json:"id"`
		Price     string `json:"price"`
		PromoFlag string `json:"promo_flag"`
	}
	decodeJSON(t, createResp, &created)
	assert.Equal(t, "4.99", created.Price)
	assert.Equal(t, "without_loyalty", created.PromoFlag)

	draftResp := do(t, env.server, "GET", "/v1/records/"+created.ID+"/draft", nil, env.token)
	require.Equal(t, http.StatusOK, draftResp.StatusCode)
	var draft struct {
		Product   string `json:"product"`
		PriceText string `json:"price"`
	}
	decodeJSON(t, draftResp, &draft)
	assert.Equal(t, "Leite Integral", draft.Product)

	updateResp := do(t, env.server, "PUT", "/v1/records/"+created.ID,
		jsonBody(t, map[string]any{
			"product": "Leite Integral", "store": "Rede Vivo",
			"price": "4.79", "promo_flag": "with_loyalty",
		}), env.token)
	require.Equal(t, http.StatusOK, updateResp.StatusCode)
	var updated struct {
		Price     string `json:"price"`
		PromoFlag string `json:"promo_flag"`
	}
	decodeJSON(t, updateResp, &updated)
	assert.Equal(t, "4.79", updated.Price)
	assert.Equal(t, "with_loyalty", updated.PromoFlag)

	deleteResp := do(t, env.server, "DELETE", "/v1/records/"+created.ID, nil, env.token)
	assert.Equal(t, http.StatusNoContent, deleteResp.StatusCode)
	_ = deleteResp.Body.Close()
}

func TestE2E_ValidationErrors(t *testing.T) {
	env := setupTestEnv(t)

	// whitespace product and unparsable price both survive binding and land in
	// the form-mapping layer, which collects every field error at once
	resp := do(t, env.server, "POST", "/v1/records",
		jsonBody(t, map[string]any{
			"product": "   ", "store": "X", "price": "abc",
		}), env.token)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Fields, "product")
	assert.Contains(t, body.Fields, "price")
}

func TestE2E_DashboardAndComparison(t *testing.T) {
	env := setupTestEnv(t)

	for _, rec := range []map[string]any{
		{"product": "Leite", "store": "Rede Vivo", "price": "4.99"},
		{"product": "Leite", "store": "Nicolini", "price": "4.50"},
		{"product": "Leite", "store": "Nicolini", "price": "4.20"},
		{"product": "Arroz", "store": "Beltrame", "price": "22.90"},
	} {
		resp := do(t, env.server, "POST", "/v1/records", jsonBody(t, rec), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	statsResp := do(t, env.server, "GET", "/v1/dashboard/stats", nil, env.token)
	require.Equal(t, http.StatusOK, statsResp.StatusCode)
	var stats struct {
		Count int    `json:"count"`
		Min   string `json:"min"`
		Max   string `json:"max"`
	}
	decodeJSON(t, statsResp, &stats)
	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, "4.20", stats.Min)
	assert.Equal(t, "22.90", stats.Max)

	prodResp := do(t, env.server, "GET", "/v1/products", nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var products struct {
		Products []string `json:"products"`
	}
	decodeJSON(t, prodResp, &products)
	assert.Equal(t, []string{"Arroz", "Leite"}, products.Products)

	// Only the most recent Nicolini entry counts for the comparison
	cmpResp := do(t, env.server, "GET", "/v1/products/comparison?product=Leite", nil, env.token)
	require.Equal(t, http.StatusOK, cmpResp.StatusCode)
	var cmp struct {
		Entries []struct {
			Store string `json:"store"`
			Price string `json:"price"`
		} `json:"entries"`
		Spread string `json:"spread"`
	}
	decodeJSON(t, cmpResp, &cmp)
	require.Len(t, cmp.Entries, 2)
	assert.Equal(t, "Nicolini", cmp.Entries[0].Store)
	assert.Equal(t, "4.20", cmp.Entries[0].Price)
	assert.Equal(t, "Rede Vivo", cmp.Entries[1].Store)
	assert.Equal(t, "0.79", cmp.Spread)
}

func TestE2E_OwnershipIsolation(t *testing.T) {
	env := setupTestEnv(t)

	createResp := do(t, env.server, "POST", "/v1/records",
		jsonBody(t, map[string]any{
			"product": "Café", "store": "Beltrame", "price": "12.50",
		}), env.token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, createResp, &created)

	// a second anonymous visitor cannot touch the first visitor's record
	otherResp := do(t, env.server, "POST", "/v1/auth/anonymous", jsonBody(t, map[string]string{}), "")
	require.Equal(t, http.StatusCreated, otherResp.StatusCode)
	var other struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, otherResp, &other)

	delResp := do(t, env.server, "DELETE", "/v1/records/"+created.ID, nil, other.AccessToken)
	assert.Equal(t, http.StatusForbidden, delResp.StatusCode)
	_ = delResp.Body.Close()
}

func TestE2E_StoreCRUD(t *testing.T) {
	env := setupTestEnv(t)

	createResp := do(t, env.server, "POST", "/v1/stores",
		jsonBody(t, map[string]any{"name": "Rede Vivo", "color_tag": "green"}), env.token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var store struct {
		ID       string `json:"id"`
		ColorTag string `json:"color_tag"`
	}
	decodeJSON(t, createResp, &store)
	assert.Equal(t, "green", store.ColorTag)

	listResp := do(t, env.server, "GET", "/v1/stores", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var stores []struct {
		Name string `json:"name"`
	}
	decodeJSON(t, listResp, &stores)
	require.Len(t, stores, 1)
	assert.Equal(t, "Rede Vivo", stores[0].Name)

	delResp := do(t, env.server, "DELETE", "/v1/stores/"+store.ID, nil, env.token)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	_ = delResp.Body.Close()
}
