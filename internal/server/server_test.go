package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/sellapp/internal/cache"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/sellapp/internal/catalog/repository"
	catalogservice "github.com/smallbiznis/sellapp/internal/catalog/service"
	"github.com/smallbiznis/sellapp/internal/clock"
	commentdomain "github.com/smallbiznis/sellapp/internal/comment/domain"
	commentrepository "github.com/smallbiznis/sellapp/internal/comment/repository"
	commentservice "github.com/smallbiznis/sellapp/internal/comment/service"
	"github.com/smallbiznis/sellapp/internal/config"
	identitydomain "github.com/smallbiznis/sellapp/internal/identity/domain"
	identityrepository "github.com/smallbiznis/sellapp/internal/identity/repository"
	identityservice "github.com/smallbiznis/sellapp/internal/identity/service"
	newsdomain "github.com/smallbiznis/sellapp/internal/news/domain"
	newsrepository "github.com/smallbiznis/sellapp/internal/news/repository"
	newsservice "github.com/smallbiznis/sellapp/internal/news/service"
	promotiondomain "github.com/smallbiznis/sellapp/internal/promotion/domain"
	promotionrepository "github.com/smallbiznis/sellapp/internal/promotion/repository"
	promotionservice "github.com/smallbiznis/sellapp/internal/promotion/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type noopNotifier struct{}

func (noopNotifier) EnqueueNewProduct(productID int64)     {}
func (noopNotifier) EnqueueProductUpdated(productID int64) {}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identitydomain.Role{},
		&identitydomain.User{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.ProductImage{},
		&newsdomain.News{},
		&promotiondomain.Promotion{},
		&promotiondomain.PromotionProduct{},
		&commentdomain.Comment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	evictor := cache.NoopEvictor{}
	products := catalogrepository.ProvideProductRepository()
	categories := catalogrepository.ProvideCategoryRepository()
	newsRepo := newsrepository.Provide()

	catalogSvc := catalogservice.New(catalogservice.Params{
		DB: db, Log: log, GenID: node,
		Clock:      clock.NewSystemClock(),
		Categories: categories,
		Products:   products,
		Images:     catalogrepository.ProvideProductImageRepository(),
		Evictor:    evictor,
		Notifier:   noopNotifier{},
	})
	identitySvc := identityservice.New(identityservice.Params{
		DB: db, Log: log, GenID: node,
		Roles: identityrepository.ProvideRoleRepository(),
		Users: identityrepository.ProvideUserRepository(),
	})
	newsSvc := newsservice.New(newsservice.Params{
		DB: db, Log: log, GenID: node,
		Repo:    newsRepo,
		Evictor: evictor,
	})
	promotionSvc := promotionservice.New(promotionservice.Params{
		DB: db, Log: log, GenID: node,
		Repo:     promotionrepository.Provide(),
		Products: products,
		Evictor:  evictor,
	})
	commentSvc := commentservice.New(commentservice.Params{
		DB: db, Log: log, GenID: node,
		Repo:     commentrepository.Provide(),
		Products: products,
		News:     newsRepo,
		Evictor:  evictor,
	})

	return NewServer(ServerParams{
		Gin:          NewEngine(log),
		Cfg:          config.Config{},
		IdentitySvc:  identitySvc,
		CatalogSvc:   catalogSvc,
		NewsSvc:      newsSvc,
		PromotionSvc: promotionSvc,
		CommentSvc:   commentSvc,
	})
}

func doJSON(t *testing.T, srv *Server, method, path, body string, actor bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor {
		req.Header.Set("X-Actor-Id", "12345")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.Data
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCategoryRequiresActor(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/categories", `{"name":"Books"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/categories", `{"name":"Books"}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "books", dataField(t, rec)["slug"])
}

func TestGetCategoryNotFound(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/categories/999999", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductValidationPayload(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/categories", `{"name":"Books"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	categoryID := dataField(t, rec)["id"].(string)

	body := `{"name":"Free Book","price":0,"sku":"B-1","stock_quantity":1,"category_id":"` + categoryID + `"}`
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/products", body, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Code string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "validation_error", payload.Error.Type)
	require.Len(t, payload.Error.Errors, 1)
	assert.Equal(t, "invalid_price", payload.Error.Errors[0].Code)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/categories", `{"name":"Books"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	categoryID := dataField(t, rec)["id"].(string)

	body := `{"name":"Go in Practice","price":34.99,"sku":"B-1","stock_quantity":5,"category_id":"` + categoryID + `"}`
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/products", body, true)
	require.Equal(t, http.StatusOK, rec.Code)
	productID := dataField(t, rec)["id"].(string)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/products/"+productID+"/update_stock", `{"stock_quantity":42}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), dataField(t, rec)["stock_quantity"])

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/products/"+productID, "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/products/"+productID, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentOnNewsOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/news", `{"title":"Grand Opening"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	newsID := dataField(t, rec)["id"].(string)

	body := `{"target_type":"news","target_id":"` + newsID + `","rating":5,"body":"Great news"}`
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/comments", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/comments?target_type=news&target_id="+newsID, "", false)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{catalogdomain.ErrInvalidPrice, http.StatusBadRequest},
		{catalogdomain.ErrDuplicateSKU, http.StatusBadRequest},
		{promotiondomain.ErrDuplicateLink, http.StatusBadRequest},
		{commentdomain.ErrInvalidRating, http.StatusBadRequest},
		{identitydomain.ErrNotFound, http.StatusNotFound},
		{newsdomain.ErrInvalidActor, http.StatusUnauthorized},
		{gorm.ErrInvalidDB, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := mapError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}
