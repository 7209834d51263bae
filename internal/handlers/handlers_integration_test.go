package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pazar/internal/handlers"
	"pazar/internal/middleware"
	"pazar/internal/models"
	"pazar/internal/repositories"
	"pazar/internal/services"
	"pazar/internal/uploads"
)

const (
	testJWTSecret     = "test_jwt_secret"
	testAdminUser     = "admin"
	testAdminPassword = "super-secret"
)

// setupApp builds the full route surface against an in-memory SQLite database
// and a temp upload directory. No broker: the checkout publisher stays nil.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Store{}, &models.User{}, &models.Comment{}))

	storage, err := uploads.NewStorage(t.TempDir())
	assert.NoError(t, err)

	storeRepo := repositories.NewGORMStoreRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	authService := services.NewAuthService(storeRepo, userRepo, testJWTSecret, testAdminUser, testAdminPassword)
	storeService := services.NewStoreService(storeRepo, storage)
	customerService := services.NewCustomerService(userRepo, storeRepo)
	checkoutService := services.NewCheckoutService(customerService, userRepo, nil)
	commentService := services.NewCommentService(commentRepo)

	app := fiber.New()
	authGuard := middleware.AuthRequired(authService)
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewStoreHandler(storeService).RegisterRoutes(apiV1, authGuard)
	handlers.NewProductHandler(storeService, storage).RegisterRoutes(apiV1, authGuard)
	handlers.NewCustomerHandler(customerService, checkoutService).RegisterRoutes(apiV1, authGuard)
	handlers.NewCommentHandler(commentService).RegisterRoutes(apiV1)
	handlers.NewAdminHandler(storeService, customerService).RegisterRoutes(apiV1, authGuard)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (int, []interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var decoded []interface{}
	if len(raw) > 0 && raw[0] == '[' {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func registerStore(t *testing.T, app *fiber.App, email, phone string) (storeID, token string) {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/stores", "", fiber.Map{
		"name":     "Dukkan " + phone,
		"owner":    "Ali",
		"email":    email,
		"phone":    phone,
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, status)
	store := body["store"].(map[string]interface{})
	storeID = store["id"].(string)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	return storeID, body["token"].(string)
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/admin/login", "", fiber.Map{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	assert.Equal(t, http.StatusOK, status)
	return body["token"].(string)
}

func registerCustomer(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", fiber.Map{
		"name":     "Mehmet",
		"email":    email,
		"password": "password123",
		"phone":    "+90-555-9000",
	})
	assert.Equal(t, http.StatusCreated, status)
	return body["token"].(string)
}

func createProduct(t *testing.T, app *fiber.App, storeID, token string, fields map[string]string) map[string]interface{} {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+storeID, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var product map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	return product
}

func TestMarketplaceEndToEnd(t *testing.T) {
	app := setupApp(t)

	// Freshly registered store is pending and absent from the public listing.
	storeID, storeToken := registerStore(t, app, "dukkan@example.com", "+90-555-0001")
	status, listed := doJSONList(t, app, http.MethodGet, "/api/v1/stores/approved", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, listed)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/stores/"+storeID, "", nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Admin approval also activates the store.
	admin := adminToken(t, app)
	status, approved := doJSON(t, app, http.MethodPost, "/api/v1/admin/stores/"+storeID+"/approve", admin, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "approved", approved["status"])
	assert.Equal(t, true, approved["active"])

	status, listed = doJSONList(t, app, http.MethodGet, "/api/v1/stores/approved", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, listed, 1)

	// The store lists a discounted product.
	product := createProduct(t, app, storeID, storeToken, map[string]string{
		"name":           "Tisort",
		"price":          "100",
		"discount_price": "80",
		"stock":          "10",
		"colors":         "red, blue,  green",
		"category":       "Kadin",
	})
	productID := product["id"].(string)
	assert.Equal(t, []interface{}{"red", "blue", "green"}, product["colors"])

	// A customer carts two units; the total reflects the discount price.
	customerToken := registerCustomer(t, app, "mehmet@example.com")
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart", customerToken, fiber.Map{
		"product_id": productID,
		"store_id":   storeID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusCreated, status)

	status, cart := doJSON(t, app, http.MethodGet, "/api/v1/cart", customerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 160.0, cart["total"], "discounted price 80 * 2")
	lines := cart["lines"].([]interface{})
	assert.Len(t, lines, 1)
}

func TestProductRoutes_Authorization(t *testing.T) {
	app := setupApp(t)

	storeID, storeToken := registerStore(t, app, "a@example.com", "+90-555-0010")
	_, otherToken := registerStore(t, app, "b@example.com", "+90-555-0011")
	customerToken := registerCustomer(t, app, "c@example.com")

	product := createProduct(t, app, storeID, storeToken, map[string]string{
		"name": "Canta", "price": "50", "stock": "3",
	})
	productID := product["id"].(string)
	patchPath := "/api/v1/products/" + storeID + "/" + productID

	// No token at all.
	status, _ := doJSON(t, app, http.MethodPatch, patchPath, "", fiber.Map{"price": 60})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Customer token on a store route.
	status, _ = doJSON(t, app, http.MethodPatch, patchPath, customerToken, fiber.Map{"price": 60})
	assert.Equal(t, http.StatusForbidden, status)

	// Another store's token.
	status, _ = doJSON(t, app, http.MethodPatch, patchPath, otherToken, fiber.Map{"price": 60})
	assert.Equal(t, http.StatusForbidden, status)

	// The owner patches partially: price changes, name survives.
	status, patched := doJSON(t, app, http.MethodPatch, patchPath, storeToken, fiber.Map{"price": 60})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 60.0, patched["price"])
	assert.Equal(t, "Canta", patched["name"])

	// Double delete: removed=true then removed=false, never an error.
	deletePath := "/api/v1/products/" + storeID + "/" + productID
	status, body := doJSON(t, app, http.MethodDelete, deletePath, storeToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["removed"])

	status, body = doJSON(t, app, http.MethodDelete, deletePath, storeToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["removed"])
}

func TestProductImageUpload(t *testing.T) {
	app := setupApp(t)
	storeID, storeToken := registerStore(t, app, "img@example.com", "+90-555-0020")

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	assert.NoError(t, w.WriteField("name", "Ayakkabi"))
	assert.NoError(t, w.WriteField("price", "250"))
	assert.NoError(t, w.WriteField("stock", "4"))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="shoe.png"`)
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-png"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+storeID, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+storeToken)

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var product map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	assert.Contains(t, product["image"], "/uploads/", "image served under the static route")

	// A non-image part is rejected.
	body = &bytes.Buffer{}
	w = multipart.NewWriter(body)
	assert.NoError(t, w.WriteField("name", "Corap"))
	assert.NoError(t, w.WriteField("price", "10"))
	assert.NoError(t, w.WriteField("stock", "1"))
	header = textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="malware.exe"`)
	header.Set("Content-Type", "application/octet-stream")
	part, err = w.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write([]byte("nope"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/products/"+storeID, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+storeToken)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFavoritesAndDanglingReferences(t *testing.T) {
	app := setupApp(t)

	storeID, storeToken := registerStore(t, app, "fav@example.com", "+90-555-0030")
	customerToken := registerCustomer(t, app, "favcustomer@example.com")

	product := createProduct(t, app, storeID, storeToken, map[string]string{
		"name": "Kolye", "price": "30", "stock": "5",
	})
	productID := product["id"].(string)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/favorites", customerToken, fiber.Map{
		"product_id": productID,
		"store_id":   storeID,
	})
	assert.Equal(t, http.StatusCreated, status)

	// Duplicate favorite conflicts.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/favorites", customerToken, fiber.Map{
		"product_id": productID,
		"store_id":   storeID,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, favorites := doJSONList(t, app, http.MethodGet, "/api/v1/favorites", customerToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, favorites, 1)

	// Delete the product out from under the favorite; the listing just
	// shrinks, it never errors.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+storeID+"/"+productID, storeToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, favorites = doJSONList(t, app, http.MethodGet, "/api/v1/favorites", customerToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, favorites)
}

func TestCommentsArePublicAndNewestFirst(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/comments", "", fiber.Map{
		"product_id": "prod-1",
		"store_id":   "store-1",
		"user_name":  "Ali",
		"stars":      4,
		"comment":    "ilk yorum",
	})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/comments", "", fiber.Map{
		"product_id": "prod-1",
		"store_id":   "store-1",
		"user_name":  "Ayse",
		"stars":      9,
		"comment":    "gecersiz",
	})
	assert.Equal(t, http.StatusBadRequest, status, "stars outside [1,5]")

	status, comments := doJSONList(t, app, http.MethodGet, "/api/v1/comments/prod-1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, comments, 1)
}

func TestAdminOversight(t *testing.T) {
	app := setupApp(t)

	storeID, storeToken := registerStore(t, app, "mod@example.com", "+90-555-0040")
	admin := adminToken(t, app)

	// Store tokens cannot reach admin routes.
	status, _ := doJSONList(t, app, http.MethodGet, "/api/v1/admin/stores", storeToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, stores := doJSONList(t, app, http.MethodGet, "/api/v1/admin/stores", admin)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, stores, 1, "admin sees pending stores too")

	// Reject deactivates and is terminal.
	status, rejected := doJSON(t, app, http.MethodPost, "/api/v1/admin/stores/"+storeID+"/reject", admin, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "rejected", rejected["status"])
	assert.Equal(t, false, rejected["active"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/admin/stores/"+storeID+"/approve", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Deletion leaves customers' references dangling but readable.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/admin/stores/"+storeID, admin, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/stores/"+storeID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	app := setupApp(t)

	registerStore(t, app, "dup@example.com", "+90-555-0050")

	// Case-insensitive duplicate email.
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/stores", "", fiber.Map{
		"name":     "Kopya",
		"owner":    "Veli",
		"email":    "DUP@example.com",
		"phone":    "+90-555-0051",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email", body["field"])

	// Duplicate phone.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/stores", "", fiber.Map{
		"name":     "Kopya",
		"owner":    "Veli",
		"email":    "fresh@example.com",
		"phone":    "+90-555-0050",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "phone", body["field"])

	// The original account still works.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "dup@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
}
