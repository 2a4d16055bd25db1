package procedures

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Count    *int            `json:"count"`
	Cached   *bool           `json:"cached"`
	CacheAge *int            `json:"cacheAge"`
	Warning  string          `json:"warning"`
	Error    string          `json:"error"`
	Message  string          `json:"message"`
}

func newTestRouter(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		RegisterRoutes(api, svc)
	})
	return r
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body=%s", rec.Body.String())
	return rec, env
}

func TestCatalogHandler_MissThenHit(t *testing.T) {
	svc, c := newTestService(&testRepo{items: sampleCatalog()})
	h := newTestRouter(svc)

	rec, env := get(t, h, "/api/procedimentos")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "public, max-age=3600, s-maxage=3600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, len(sampleCatalog()), *env.Count)
	require.NotNil(t, env.Cached)
	assert.False(t, *env.Cached)

	c.advance(30 * time.Second)
	rec, env = get(t, h, "/api/procedimentos")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	require.NotNil(t, env.CacheAge)
	assert.Equal(t, 30, *env.CacheAge)
	assert.True(t, *env.Cached)

	var items []procedureResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Equal(t, "Bioquímico", items[0].Name)
}

func TestCatalogHandler_StaleFallback(t *testing.T) {
	repo := &testRepo{items: sampleCatalog()}
	svc, c := newTestService(repo)
	h := newTestRouter(svc)

	get(t, h, "/api/procedimentos")
	repo.err = errors.New("connection refused")
	c.advance(2 * time.Hour)

	rec, env := get(t, h, "/api/procedimentos")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.Equal(t, StaleWarning, env.Warning)
	assert.True(t, env.Success)
}

func TestCatalogHandler_StoreDown_500(t *testing.T) {
	svc, _ := newTestService(&testRepo{err: errors.New("connection refused")})
	h := newTestRouter(svc)

	rec, env := get(t, h, "/api/procedimentos")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Erro ao buscar procedimentos do banco de dados", env.Error)
	assert.Equal(t, "connection refused", env.Message)
}

func TestFilterHandler_Tiers(t *testing.T) {
	svc, _ := newTestService(&testRepo{items: sampleCatalog()})
	h := newTestRouter(svc)

	rec, env := get(t, h, "/api/procedimentos/filtro")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var plans []string
	require.NoError(t, json.Unmarshal(env.Data, &plans))
	assert.Equal(t, []string{"Plano A", "Plano B"}, plans)

	_, env = get(t, h, "/api/procedimentos?plano=Plano+A")
	var subs []string
	require.NoError(t, json.Unmarshal(env.Data, &subs))
	assert.Equal(t, []string{"Consultas", "Exames"}, subs)

	rec, env = get(t, h, "/api/procedimentos?plano=Plano+A&sub_grupo=Consultas")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var items []procedureResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, 101, items[0].Code)
	assert.Equal(t, "Plano A", items[0].Plan)
	assert.Equal(t, "R$ 150,00", items[0].Price)
	assert.Equal(t, 2, *env.Count)
}

func TestFilterHandler_StoreDown_500WithoutFallback(t *testing.T) {
	svc, _ := newTestService(&testRepo{err: errors.New("boom")})
	h := newTestRouter(svc)

	rec, env := get(t, h, "/api/procedimentos/filtro?plano=Plano+A")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.False(t, env.Success)
	assert.Equal(t, "boom", env.Message)
}
