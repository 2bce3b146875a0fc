package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"alhaja/internal/config"
	"alhaja/internal/http/handlers"
	"alhaja/internal/realtime"
	"alhaja/internal/repos"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{FetchTimeout: 2 * time.Second, SearchDebounce: 5 * time.Millisecond}
	deps := handlers.NewDeps(context.Background(), db, cfg, realtime.NewBus())

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/product/:id", deps.CatalogHandler.Detail)
	admin := app.Group("/admin")
	admin.Get("/products", deps.AdminHandler.ListProducts)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Post("/products/status", deps.AdminHandler.BulkStatus)
	admin.Get("/roi", deps.AdminHandler.ROIRanking)
	admin.Get("/low-stock", deps.AdminHandler.LowStock)
	return app
}

func TestPublicCatalogHidesSoldOut(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	// the seed's sold-out necklace must not appear on the storefront
	if strings.Contains(s, "Collar Aurora") {
		t.Fatalf("sold-out product leaked into the public page")
	}
	if !strings.Contains(s, "Anillo Sol") {
		t.Fatalf("in-stock product missing from the public page; body=%s", s)
	}
}

func TestPublicDetailHidesSoldOut(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/product/collar-aurora", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("sold-out detail must 404 publicly, got %d", resp.StatusCode)
	}
}

func TestPublicDetailShowsVariantPrices(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/product/anillo-sol", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	// each variant lists its own price next to its name
	if !strings.Contains(s, "Plata 950") || !strings.Contains(s, "95000") {
		t.Fatalf("variant price missing from detail page; body=%s", s)
	}
}

func TestAdminListSeesEverything(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/admin/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 4 {
		t.Fatalf("admin must see all 4 seeded products, got %d", out.Count)
	}
}

func TestCreateProductValidation(t *testing.T) {
	app := testApp(t)

	// missing name and images
	req := httptest.NewRequest("POST", "/admin/products",
		bytes.NewBufferString(`{"price":-10,"status":"IN_STOCK"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("invalid draft must 400, got %d", resp.StatusCode)
	}
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"name", "price", "images"} {
		if out.Fields[f] == "" {
			t.Fatalf("missing structured error for %s: %+v", f, out.Fields)
		}
	}

	// valid draft persists
	req = httptest.NewRequest("POST", "/admin/products",
		bytes.NewBufferString(`{"name":"Tobillera Mar","price":28000,"images":["t.jpg"],"status":"IN_STOCK","category":"tobilleras"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("want 201, got %d: %s", resp.StatusCode, body)
	}
}

func TestBulkStatusSummary(t *testing.T) {
	app := testApp(t)
	req := httptest.NewRequest("POST", "/admin/products/status",
		bytes.NewBufferString(`{"ids":["aretes-luna","ghost"],"status":"SOLD_OUT"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var sum struct {
		Requested int               `json:"requested"`
		Succeeded int               `json:"succeeded"`
		Failed    map[string]string `json:"failed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatal(err)
	}
	if sum.Requested != 2 || sum.Succeeded != 1 || sum.Failed["ghost"] == "" {
		t.Fatalf("bad bulk summary: %+v", sum)
	}
}

func TestROIRankingDescending(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/admin/roi", nil))
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Ranking []struct {
			ProductID string  `json:"product_id"`
			ROI       float64 `json:"roi"`
		} `json:"ranking"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Ranking) == 0 {
		t.Fatal("seeded catalog must produce a ranking")
	}
	for i := 1; i < len(out.Ranking); i++ {
		if out.Ranking[i-1].ROI < out.Ranking[i].ROI {
			t.Fatalf("ranking not descending: %+v", out.Ranking)
		}
	}
}
