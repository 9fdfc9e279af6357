package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gastro_vision/camera"
	"gastro_vision/constants"
	"gastro_vision/detection"
	"gastro_vision/gate"
	"gastro_vision/handler"
	"gastro_vision/model"
	"gastro_vision/notify"
	"gastro_vision/order"
	"gastro_vision/pipeline"
	"gastro_vision/router"
	"gastro_vision/sla"
	"gastro_vision/store"
	"gastro_vision/utils"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopScheduler struct{}

func (nopScheduler) Schedule(string, time.Duration, func()) error { return nil }
func (nopScheduler) Cancel(string)                                {}
func (nopScheduler) Shutdown() error                              { return nil }

type stubDetector struct {
	result detection.Classification
}

func (stubDetector) DecodeCodes(context.Context, []byte) ([]detection.Code, error) {
	return nil, nil
}

func (d stubDetector) ClassifyFood(context.Context, []byte) detection.Classification {
	return d.result
}

type oneFrameSource struct {
	sent bool
}

func (s *oneFrameSource) Next(context.Context) (camera.Frame, error) {
	if s.sent {
		return camera.Frame{}, fmt.Errorf("test: %w", utils.ErrSourceExhausted)
	}
	s.sent = true
	return camera.Frame{Seq: 1, Timestamp: time.Now(), Image: imaging.New(32, 24, color.White)}, nil
}

func (s *oneFrameSource) Close() error { return nil }

type testApp struct {
	app   *fiber.App
	store *store.MemoryStore
	gate  *gate.Gate
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.CreateWaiter(ctx, &model.Waiter{WaiterId: "W1", Name: "An"}))
	require.NoError(t, st.CreateFood(ctx, &model.Food{FoodId: "pizza", Name: "pizza", Price: 20}))
	require.NoError(t, st.CreateTable(ctx, &model.Table{TableId: "1", WaiterId: utils.Ptr("W1")}))

	hub := notify.NewHub()
	b := notify.NewLocalBroadcaster(hub)
	clock := clockwork.NewRealClock()
	orders := order.NewService(st, b, clock, order.Options{PenaltyEnabled: true, PenaltyAfter: 120 * time.Second})
	g := gate.New(orders)

	h := &handler.Handler{
		Store:      st,
		Orders:     orders,
		SLA:        sla.NewService(st, b, nopScheduler{}, clock, time.Minute),
		Gate:       g,
		Detector:   stubDetector{result: detection.Detected("pizza", 0.9)},
		Latest:     &pipeline.Latest{},
		Hub:        hub,
		OpenSource: func() (camera.Source, error) { return &oneFrameSource{}, nil },
		Pipeline:   pipeline.Options{Threshold: 0.5},
	}
	app := fiber.New()
	router.SetupRoutes(app, h)
	return testApp{app: app, store: st, gate: g}
}

func (a testApp) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &out)
	return resp, out
}

func TestTables_CreateListAndDuplicate(t *testing.T) {
	a := newTestApp(t)

	resp, _ := a.do(t, http.MethodPost, "/tables", fiber.Map{"table_id": "2"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/tables", fiber.Map{"table_id": "2"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/tables", fiber.Map{"table_id": "3", "status": "dancing"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := a.do(t, http.MethodGet, "/tables", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := body["data"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, constants.TABLE_EMPTY, rows[1].(map[string]any)["status"])
}

func TestTables_UpdateStatus(t *testing.T) {
	a := newTestApp(t)

	resp, body := a.do(t, http.MethodPost, "/tables/update_status", fiber.Map{"table_id": "1", "status": "occupied"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	table := body["data"].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "occupied", table["status"])
	assert.NotNil(t, table["last_customer_time"])

	resp, _ = a.do(t, http.MethodPost, "/tables/update_status", fiber.Map{"table_id": "404", "status": "served"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTables_AutoAssignNeedsEnough(t *testing.T) {
	a := newTestApp(t)
	resp, _ := a.do(t, http.MethodPost, "/tables/auto_assign", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOrders_CreateAndFilter(t *testing.T) {
	a := newTestApp(t)

	resp, body := a.do(t, http.MethodPost, "/orders", fiber.Map{"table_id": "1", "waiter_id": "W1", "food_id": "pizza", "quantity": 3})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := body["data"].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, 60.0, created["price"])

	resp, _ = a.do(t, http.MethodPost, "/orders", fiber.Map{"table_id": "1", "waiter_id": "W1", "food_id": "sushi"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/orders", fiber.Map{"table_id": "1", "waiter_id": "W1", "food_id": "pizza", "quantity": 0})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = a.do(t, http.MethodGet, "/orders?table_id=1&start_date=2000-01-01", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["data"].(map[string]any)["totalCount"])

	resp, body = a.do(t, http.MethodGet, "/orders?table_id=2", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, body["data"].(map[string]any)["totalCount"])

	resp, _ = a.do(t, http.MethodGet, "/orders?start_date=yesterday", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	w, err := a.store.GetWaiter(context.Background(), "W1")
	require.NoError(t, err)
	assert.Equal(t, 1, w.Performance)
}

func TestStaging_ConfirmRejectFlow(t *testing.T) {
	a := newTestApp(t)

	resp, body := a.do(t, http.MethodGet, "/pending_order", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, body["data"].(map[string]any)["pending_order"])

	resp, _ = a.do(t, http.MethodPost, "/confirm_order", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	a.gate.TryStage(model.PendingOrder{TableId: "1", WaiterId: "W1", FoodName: "pizza", Confidence: 0.7})
	resp, body = a.do(t, http.MethodGet, "/pending_order", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "pizza", body["data"].(map[string]any)["pending_order"].(map[string]any)["food_name"])

	resp, _ = a.do(t, http.MethodPost, "/confirm_order", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = a.do(t, http.MethodPost, "/confirm_order", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/reject_order", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, total, err := a.store.ListOrders(context.Background(), model.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestStaging_ConfirmUnknownWaiterClearsSlot(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 2; i++ {
		a.gate.TryStage(model.PendingOrder{TableId: "1", WaiterId: "W9", FoodName: "pizza", Confidence: 0.9})
		resp, _ := a.do(t, http.MethodPost, "/confirm_order", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		_, staged := a.gate.Peek()
		assert.False(t, staged)
	}

	_, total, err := a.store.ListOrders(context.Background(), model.OrderFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCamera_FoodDetectedJSON(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.store.CreateTable(context.Background(), &model.Table{TableId: "9"}))

	resp, _ := a.do(t, http.MethodPost, "/api/camera/food_detected", fiber.Map{"table_id": "1", "food_id": "pizza", "quantity": 2})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := a.do(t, http.MethodPost, "/api/camera/food_detected", fiber.Map{"table_id": "9", "food_id": "pizza"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.NO_WAITER_ASSIGNED, body["message"])

	resp, _ = a.do(t, http.MethodPost, "/api/camera/food_detected", fiber.Map{"table_id": "1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCamera_FoodDetectedImage(t *testing.T) {
	a := newTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("table_id", "1"))
	part, err := mw.CreateFormFile("image", "plate.jpg")
	require.NoError(t, err)
	require.NoError(t, imaging.Encode(part, imaging.New(8, 8, color.White), imaging.JPEG))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/camera/food_detected", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	orders, _, err := a.store.ListOrders(context.Background(), model.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "pizza", orders[0].FoodName)
	assert.Equal(t, "W1", orders[0].WaiterId)
}

func TestCamera_WaiterDetected(t *testing.T) {
	a := newTestApp(t)

	resp, _ := a.do(t, http.MethodPost, "/api/camera/waiter_detected", fiber.Map{"table_id": "1", "waiter_id": "W1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	table, err := a.store.GetTable(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, constants.TABLE_SERVED, table.Status)
	w, _ := a.store.GetWaiter(context.Background(), "W1")
	assert.Equal(t, 1, w.InterestLevel)

	resp, _ = a.do(t, http.MethodPost, "/api/camera/waiter_detected", fiber.Map{"table_id": "1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWaiters_QRAndInterest(t *testing.T) {
	a := newTestApp(t)

	resp, _ := a.do(t, http.MethodGet, "/waiters/W1/qr?table_id=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	resp, _ = a.do(t, http.MethodGet, "/waiters/W1/qr", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, "/waiters/W9/qr?table_id=1", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/waiters/update_interest", fiber.Map{"waiter_id": "W1", "interest_level": 7})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	w, _ := a.store.GetWaiter(context.Background(), "W1")
	assert.Equal(t, 7, w.InterestLevel)

	resp, _ = a.do(t, http.MethodPost, "/waiters/update_interest", fiber.Map{"waiter_id": "W1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFoods_CreateDefaultsIdAndCategory(t *testing.T) {
	a := newTestApp(t)

	resp, body := a.do(t, http.MethodPost, "/foods", fiber.Map{"name": "Greek Salad", "price": 8.5})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	food := body["data"].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "greek-salad", food["food_id"])
	assert.Equal(t, "salad", food["category"])

	resp, _ = a.do(t, http.MethodPost, "/foods", fiber.Map{"name": "x", "price": -1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVideoFeed_StreamsAnnotatedFrames(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/video_feed", nil)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "multipart/x-mixed-replace"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "--frame\r\nContent-Type: image/jpeg")

	resp, body := a.do(t, http.MethodGet, "/last_food", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "pizza", body["data"].(map[string]any)["last_food"])

	_, body = a.do(t, http.MethodGet, "/last_qr", nil)
	assert.Nil(t, body["data"].(map[string]any)["last_qr"])
}

func TestReportsAndHealth(t *testing.T) {
	a := newTestApp(t)
	a.do(t, http.MethodPost, "/orders", fiber.Map{"table_id": "1", "waiter_id": "W1", "food_id": "pizza", "quantity": 2})

	resp, body := a.do(t, http.MethodGet, "/api/reports/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["data"].(map[string]any)["total_orders"])

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/ws", nil)
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
