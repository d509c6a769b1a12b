package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"menugen/internal/menu"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	menu  menu.Menu
	err   error
	calls int
}

func (s *stubProvider) Menu(ctx context.Context) (menu.Menu, error) {
	s.calls++
	return s.menu, s.err
}

func sampleMenu() menu.Menu {
	return menu.Menu{
		"menu-dinner": {Name: "Dinner", Data: []menu.Dish{
			{Dish: "Shepherd's Pie", Ingredients: "potato, lamb, peas", Img: "img/menu/dinner-0.png", Price: menu.NumberPrice(18)},
		}},
		"menu-starters": {Name: "Starters", Data: []menu.Dish{
			{Dish: "Potato Skins", Ingredients: "potato, cheese", Img: "img/menu/starters-0.png", Price: menu.StringPrice("$7.99")},
		}},
	}
}

func setup(t *testing.T, provider menu.Provider, staticDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r, err := NewRouter(menu.NewHandler(provider, zap.NewNop()), Options{
		StaticDir:   staticDir,
		CORSOrigins: []string{"http://localhost:3000"},
	}, zap.NewNop())
	require.NoError(t, err)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r := setup(t, &stubProvider{}, t.TempDir())

	w := get(r, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPage_RendersSectionsInOrder(t *testing.T) {
	r := setup(t, &stubProvider{menu: sampleMenu()}, t.TempDir())

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Potato Skins")
	assert.Contains(t, body, `src="/static/img/menu/dinner-0.png"`)
	assert.Contains(t, body, "$7.99")
	assert.Contains(t, body, "18")
	assert.Less(t, strings.Index(body, "Starters"), strings.Index(body, "Dinner"))
}

func TestPage_GenerationFailure(t *testing.T) {
	leak := `Post "http://127.0.0.1:1/v1beta/models/gemini:generateContent?key=SECRET-KEY": connection refused`
	r := setup(t, &stubProvider{err: errors.New(leak)}, t.TempDir())

	w := get(r, "/")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "not available right now")
	assert.NotContains(t, w.Body.String(), "SECRET-KEY")
	assert.NotContains(t, w.Body.String(), "127.0.0.1")
}

func TestPage_CacheWriteFailureStillRenders(t *testing.T) {
	provider := &stubProvider{
		menu: sampleMenu(),
		err:  &menu.CacheWriteError{Err: errors.New("read-only file system")},
	}
	r := setup(t, provider, t.TempDir())

	w := get(r, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Potato Skins")
}

func TestAPIMenu(t *testing.T) {
	r := setup(t, &stubProvider{menu: sampleMenu()}, t.TempDir())

	w := get(r, "/api/menu")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Menu menu.Menu `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, sampleMenu(), resp.Menu)
}

func TestAPIMenu_Error(t *testing.T) {
	r := setup(t, &stubProvider{err: errors.New("openai api error (401): bad key sk-live-123")}, t.TempDir())

	w := get(r, "/api/menu")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"the menu is not available right now, please try again later"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "sk-live-123")
}

func TestStaticImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img", "menu"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "menu", "lunch-0.png"), []byte("png"), 0o644))

	r := setup(t, &stubProvider{}, dir)

	w := get(r, "/static/img/menu/lunch-0.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}
