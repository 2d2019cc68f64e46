package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"showroom-service/internal/domain/auth"
	"showroom-service/internal/domain/category"
	authHandler "showroom-service/internal/handlers/auth"
	categoryHandler "showroom-service/internal/handlers/category"
	imageHandler "showroom-service/internal/handlers/image"
	productHandler "showroom-service/internal/handlers/product"
	vignetteHandler "showroom-service/internal/handlers/vignette"
	wsHandler "showroom-service/internal/handlers/websocket"
	"showroom-service/internal/middleware"
	"showroom-service/internal/pkg/session"
	authUsecase "showroom-service/internal/service/auth"
	categoryUsecase "showroom-service/internal/service/category"
	imageUsecase "showroom-service/internal/service/image"
	productUsecase "showroom-service/internal/service/product"
	vignetteUsecase "showroom-service/internal/service/vignette"
	"showroom-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testEnv struct {
	server  *httptest.Server
	client  *http.Client
	catalog *memCatalog
	blobs   *memBlobs
}

func parentID(v int64) *int64 { return &v }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	catalog := newMemCatalog()
	catalog.categories = []category.Category{
		{ID: 100, Code: "LR", Name: "LIVING ROOM", DisplayOrder: 1, IsActive: true},
		{ID: 101, Code: "SEC", Name: "SECTIONALS", ParentID: parentID(100), DisplayOrder: 1, IsActive: true},
		{ID: 102, Code: "OLD", Name: "RETIRED", DisplayOrder: 2, IsActive: false},
	}
	blobs := &memBlobs{files: map[string][]byte{}}

	users := &memUsers{byName: map[string]*auth.User{}}
	sessions := &memSessions{byID: map[string]*session.Data{}}
	cookie := session.Cookie{Name: "showroom.sid", MaxAge: time.Hour}
	hub := websocket.NewHub(logger)

	authService := authUsecase.NewAuthService(users, sessions, nil, logger)
	_, err := authService.CreateUser(t.Context(), &auth.CreateUserRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	productService := productUsecase.NewProductService(memProducts{catalog}, memCategories{catalog}, memImages{catalog}, hub, false, logger)
	vignetteService := vignetteUsecase.NewVignetteService(memVignettes{catalog}, memProducts{catalog}, memImages{catalog}, hub, logger)
	imageService := imageUsecase.NewImageService(memImages{catalog}, blobs, hub, 1<<20, logger)

	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "login.html"), []byte("login page"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "admin.html"), []byte("admin page"), 0o644))

	r := gin.New()
	SetupRouter(r, &Handlers{
		AuthHandler:     authHandler.NewAuthHandler(authService, cookie, logger),
		CategoryHandler: categoryHandler.NewCategoryHandler(categoryUsecase.NewCategoryService(memCategories{catalog})),
		ProductHandler:  productHandler.NewProductHandler(productService),
		VignetteHandler: vignetteHandler.NewVignetteHandler(vignetteService),
		ImageHandler:    imageHandler.NewImageHandler(imageService),
		WSHandler:       wsHandler.NewWebSocketHandler(hub, logger),
		AuthMiddleware:  middleware.NewAuthMiddleware(authService, cookie, logger),
	}, StaticConfig{PublicDir: public})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testEnv{server: srv, client: client, catalog: catalog, blobs: blobs}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 && json.Valid(data) {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return resp.StatusCode, out
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, status, body)
}

func (e *testEnv) upload(t *testing.T, fields map[string]string, filename, contentType string, content []byte) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, e.server.URL+"/api/images/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.send(t, req)
}

func id(t *testing.T, body map[string]interface{}) int64 {
	t.Helper()
	v, ok := body["id"].(float64)
	require.True(t, ok, "response has no id: %v", body)
	return int64(v)
}

func TestModernLivingScenario(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	status, body := env.do(t, http.MethodPost, "/api/vignettes", map[string]string{"name": "Modern Living", "theme": "Contemporary"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Vignette created successfully", body["message"])
	vignetteID := id(t, body)

	status, body = env.do(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "Sectional Sofa", "category_id": 101, "price": 2499.99})
	require.Equal(t, http.StatusOK, status, body)
	productID := id(t, body)

	status, body = env.do(t, http.MethodPost, fmt.Sprintf("/api/vignettes/%d/products/%d", vignetteID, productID), map[string]interface{}{"position": 1, "notes": "centerpiece"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Product added to vignette successfully", body["message"])

	status, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/vignettes/%d", vignetteID), nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Modern Living", body["vignette"].(map[string]interface{})["name"])
	products := body["products"].([]interface{})
	require.Len(t, products, 1)
	linked := products[0].(map[string]interface{})
	assert.Equal(t, "Sectional Sofa", linked["name"])
	assert.Equal(t, float64(1), linked["position"])
	assert.Equal(t, "centerpiece", linked["notes"])
	assert.Equal(t, "SECTIONALS", linked["category"])
	assert.Empty(t, body["images"])

	status, body = env.do(t, http.MethodGet, "/api/vignettes", nil)
	require.Equal(t, http.StatusOK, status)
	listed := body["vignettes"].([]interface{})
	require.Len(t, listed, 1)
	assert.Equal(t, float64(1), listed[0].(map[string]interface{})["product_count"])

	// a second link of the same pair conflicts
	status, _ = env.do(t, http.MethodPost, fmt.Sprintf("/api/vignettes/%d/products/%d", vignetteID, productID), nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = env.do(t, http.MethodDelete, fmt.Sprintf("/api/vignettes/%d/products/%d", vignetteID, productID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["changes"])

	status, body = env.do(t, http.MethodDelete, fmt.Sprintf("/api/vignettes/%d", vignetteID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["changes"])

	status, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/vignettes/%d", vignetteID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Vignette not found", body["error"])

	status, body = env.do(t, http.MethodGet, "/api/vignettes", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["vignettes"])
}

func TestProducts(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	_, body := env.do(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "Lamp", "category_id": 101})
	lampID := id(t, body)
	env.do(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "Armchair"})

	status, body := env.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["products"], 2)
	assert.Equal(t, "Armchair", body["products"].([]interface{})[0].(map[string]interface{})["name"])

	_, body = env.do(t, http.MethodGet, "/api/products?category=101", nil)
	assert.Len(t, body["products"], 1)

	// without legacy sync the text column stays empty, so only the id filter matches
	_, body = env.do(t, http.MethodGet, "/api/products?category=SECTIONALS", nil)
	assert.Empty(t, body["products"])

	status, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", lampID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SECTIONALS", body["product"].(map[string]interface{})["category"])
	assert.NotNil(t, body["images"])

	status, body = env.do(t, http.MethodPut, "/api/products/999", map[string]interface{}{"name": "Ghost"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["changes"])

	status, body = env.do(t, http.MethodPost, "/api/products", map[string]interface{}{"price": 10})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Product name is required", body["error"])

	status, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", lampID), nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", lampID), nil)
	assert.Equal(t, http.StatusNotFound, status)

	// soft delete keeps the row
	assert.Contains(t, env.catalog.products, lampID)

	status, _ = env.do(t, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, status)
	tree := body["categories"].([]interface{})
	require.Len(t, tree, 1)
	main := tree[0].(map[string]interface{})
	assert.Equal(t, "LIVING ROOM", main["name"])
	subs := main["subcategories"].([]interface{})
	require.Len(t, subs, 1)
	assert.Equal(t, "SECTIONALS", subs[0].(map[string]interface{})["name"])

	status, body = env.do(t, http.MethodGet, "/api/categories/flat", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["categories"], 2)
}

func TestMutationsRequireSession(t *testing.T) {
	env := newTestEnv(t)

	requests := []struct{ method, path string }{
		{http.MethodPost, "/api/vignettes"},
		{http.MethodPut, "/api/vignettes/1"},
		{http.MethodDelete, "/api/vignettes/1"},
		{http.MethodPost, "/api/vignettes/1/products/2"},
		{http.MethodDelete, "/api/vignettes/1/products/2"},
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/1"},
		{http.MethodDelete, "/api/products/1"},
		{http.MethodPost, "/api/images/upload"},
		{http.MethodDelete, "/api/images/1"},
	}
	for _, r := range requests {
		status, body := env.do(t, r.method, r.path, map[string]string{"name": "x"})
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", r.method, r.path)
		assert.Equal(t, "Unauthorized. Please login.", body["error"])
	}

	status, _ := env.do(t, http.MethodGet, "/api/vignettes", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.do(t, http.MethodGet, "/api/auth/status", nil)
	assert.Equal(t, false, body["authenticated"])

	status, body := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", body["error"])

	status, unknown := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "nobody", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, body, unknown)

	status, body = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username and password are required", body["error"])

	env.login(t)
	_, body = env.do(t, http.MethodGet, "/api/auth/status", nil)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "admin", body["username"])

	status, body = env.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logout successful", body["message"])

	_, body = env.do(t, http.MethodGet, "/api/auth/status", nil)
	assert.Equal(t, false, body["authenticated"])
}

func TestAdminPageRedirect(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.Get(env.server.URL + "/admin.html")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login.html", resp.Header.Get("Location"))

	env.login(t)
	resp, err = env.client.Get(env.server.URL + "/admin.html")
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin page", string(data))
}

func TestImageUpload(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	_, body := env.do(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "Lamp"})
	productID := id(t, body)
	owner := map[string]string{"product_id": fmt.Sprint(productID), "is_primary": "1", "caption": "front"}

	status, body := env.upload(t, owner, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "only image files are allowed", body["error"])
	assert.Empty(t, env.blobs.files)
	assert.Empty(t, env.catalog.images)

	status, body = env.upload(t, owner, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No file uploaded", body["error"])

	status, _ = env.upload(t, map[string]string{"product_id": "1", "vignette_id": "2"}, "a.png", "image/png", pngBytes)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.upload(t, owner, "Front.PNG", "image/png", pngBytes)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Image uploaded successfully", body["message"])
	imageID := id(t, body)
	path := body["image_path"].(string)
	assert.Contains(t, env.blobs.files, path)

	_, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil)
	images := body["images"].([]interface{})
	require.Len(t, images, 1)
	img := images[0].(map[string]interface{})
	assert.Equal(t, path, img["image_path"])
	assert.Equal(t, true, img["is_primary"])
	assert.Equal(t, float64(productID), img["product_id"])
	assert.Nil(t, img["vignette_id"])

	status, body = env.do(t, http.MethodDelete, fmt.Sprintf("/api/images/%d", imageID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["changes"])
	assert.Empty(t, env.blobs.files)

	status, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/api/images/%d", imageID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestImageUploadTooLarge(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	big := append(append([]byte{}, pngBytes...), make([]byte, 1<<20)...)
	status, body := env.upload(t, map[string]string{"vignette_id": "1"}, "big.png", "image/png", big)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "file exceeds the upload size limit")
	assert.Empty(t, env.blobs.files)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
