package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-api/internal/auth"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/mocks"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
	ucPayment "github.com/BruksfildServices01/barbershop-api/internal/usecase/payment"
)

type envelope struct {
	OK        bool            `json:"ok"`
	Data      json.RawMessage `json:"data"`
	Total     int             `json:"total"`
	ErrorCode string          `json:"error_code"`
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	store   *mocks.Store
	gateway *mocks.Gateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mocks.NewStore()
	hasher := auth.BcryptHasher{Cost: 4}

	hash, err := hasher.Hash("admin-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store.AddUser(models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: hash, Role: "admin", Active: true})

	gw := mocks.NewGateway(payment.MethodStripe)
	gw.WebhookSignature = "sig"

	r := gin.New()
	RegisterRoutes(r, Dependencies{
		Log:          zap.NewNop(),
		Location:     time.UTC,
		Appointments: mocks.NewAppointmentRepository(store),
		Payments:     mocks.NewPaymentRepository(store),
		Users:        mocks.NewUserRepository(store),
		Catalog:      mocks.NewCatalogRepository(store),
		Cache:        &mocks.CatalogCache{},
		AuditLogs:    &mocks.AuditLog{Store: store},
		Tokens:       auth.NewJWTIssuer("test-secret", time.Hour),
		Hasher:       hasher,
		Gateway:      gw,
		Webhook:      gw,
		Checkout: ucPayment.CheckoutConfig{
			Currency:   "usd",
			SuccessURL: "https://shop.test/ok",
			CancelURL:  "https://shop.test/cancel",
		},
	})

	return &testServer{t: t, router: r, store: store, gateway: gw}
}

func (s *testServer) do(method, path, token string, body any, headers ...string) (int, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	if code != http.StatusOK {
		s.t.Fatalf("login %s: status %d (%s)", email, code, env.ErrorCode)
	}
	var res struct {
		Token string `json:"access_token"`
	}
	decode(s.t, env.Data, &res)
	return res.Token
}

func decode(t *testing.T, raw json.RawMessage, dst any) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

type idOnly struct {
	ID uint `json:"id"`
}

// ======================================================
// Scenario
// ======================================================

func TestBookingPaymentAndSalesScenario(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login("admin@example.com", "admin-pass")

	// client signs up
	code, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Carla", "email": "carla@example.com", "password": "secret1",
	})
	if code != http.StatusCreated {
		t.Fatalf("register: status %d (%s)", code, env.ErrorCode)
	}
	var reg struct {
		Token string `json:"access_token"`
		User  idOnly `json:"user"`
	}
	decode(t, env.Data, &reg)
	clientToken := reg.Token

	// admin adds a barber and a service
	code, env = s.do(http.MethodPost, "/api/admin/users", adminToken, gin.H{
		"name": "Bruno", "email": "bruno@example.com", "password": "secret2", "role": "barber",
	})
	if code != http.StatusCreated {
		t.Fatalf("create barber: status %d (%s)", code, env.ErrorCode)
	}
	var barber idOnly
	decode(t, env.Data, &barber)

	code, env = s.do(http.MethodPost, "/api/services", adminToken, gin.H{
		"name": "Haircut", "price": 20.00, "duration_minutes": 30,
	})
	if code != http.StatusCreated {
		t.Fatalf("create service: status %d (%s)", code, env.ErrorCode)
	}
	var service idOnly
	decode(t, env.Data, &service)

	if code, env = s.do(http.MethodGet, "/api/services", "", nil); code != http.StatusOK || env.Total != 1 {
		t.Fatalf("list services: status %d total %d", code, env.Total)
	}

	// client books
	code, env = s.do(http.MethodPost, "/api/appointments", clientToken, gin.H{
		"barber_id": barber.ID, "service_id": service.ID, "scheduled_at": "2025-06-01T10:00",
	})
	if code != http.StatusCreated {
		t.Fatalf("book: status %d (%s)", code, env.ErrorCode)
	}
	var booked struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decode(t, env.Data, &booked)
	if booked.Status != "pending" {
		t.Errorf("expected pending, got %s", booked.Status)
	}

	statusPath := fmt.Sprintf("/api/appointments/%d/status", booked.ID)

	// the client may not complete it
	if code, env = s.do(http.MethodPut, statusPath, clientToken, gin.H{"status": "completed"}); code != http.StatusForbidden {
		t.Fatalf("client complete: expected 403, got %d (%s)", code, env.ErrorCode)
	}

	// the barber completes and charges
	barberToken := s.login("bruno@example.com", "secret2")
	if code, env = s.do(http.MethodPut, statusPath, barberToken, gin.H{"status": "completed"}); code != http.StatusOK {
		t.Fatalf("barber complete: status %d (%s)", code, env.ErrorCode)
	}

	code, env = s.do(http.MethodPost, "/api/payments", barberToken, gin.H{
		"appointment_id": booked.ID, "method": "cash",
	})
	if code != http.StatusCreated {
		t.Fatalf("record payment: status %d (%s)", code, env.ErrorCode)
	}
	var paid struct {
		Amount      float64 `json:"amount"`
		PayerUserID uint    `json:"payer_user_id"`
	}
	decode(t, env.Data, &paid)
	if paid.Amount != 20.00 || paid.PayerUserID != reg.User.ID {
		t.Errorf("unexpected payment %+v", paid)
	}

	// sales for today
	code, env = s.do(http.MethodGet, "/api/admin/sales/today", adminToken, nil)
	if code != http.StatusOK {
		t.Fatalf("sales: status %d (%s)", code, env.ErrorCode)
	}
	var sales struct {
		Count int     `json:"count"`
		Total float64 `json:"total"`
	}
	decode(t, env.Data, &sales)
	if sales.Count != 1 || sales.Total != 20.00 {
		t.Errorf("expected 1 sale of 20.00, got %+v", sales)
	}

	// the payer sees it too
	if code, env = s.do(http.MethodGet, "/api/payments/me", clientToken, nil); code != http.StatusOK || env.Total != 1 {
		t.Errorf("payments/me: status %d total %d", code, env.Total)
	}

	// audit trail
	code, env = s.do(http.MethodGet, "/api/admin/audit-logs?entity=appointment", adminToken, nil)
	if code != http.StatusOK {
		t.Fatalf("audit logs: status %d (%s)", code, env.ErrorCode)
	}
	var page struct {
		Total int64 `json:"total"`
	}
	decode(t, env.Data, &page)
	if page.Total != 2 {
		t.Errorf("expected create and status-change audit rows, got %d", page.Total)
	}
}

func TestEmptySalesDay(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login("admin@example.com", "admin-pass")

	code, env := s.do(http.MethodGet, "/api/admin/sales/today?date=2020-01-01", adminToken, nil)
	if code != http.StatusOK {
		t.Fatalf("status %d (%s)", code, env.ErrorCode)
	}
	if string(env.Data) != `{"date":"2020-01-01","count":0,"total":0,"payments":[]}` {
		t.Errorf("unexpected body %s", env.Data)
	}
}

// ======================================================
// Auth surface
// ======================================================

func TestAuthGuards(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
		code   string
	}{
		{"no header", http.MethodGet, "/api/me", "", http.StatusUnauthorized, "missing_authorization_header"},
		{"bad scheme", http.MethodGet, "/api/me", "", http.StatusUnauthorized, "invalid_authorization_header"},
		{"bad token", http.MethodGet, "/api/me", "garbage", http.StatusUnauthorized, "invalid_token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var headers []string
			if tc.name == "bad scheme" {
				headers = []string{"Authorization", "Basic abc"}
			}
			code, env := s.do(tc.method, tc.path, tc.token, nil, headers...)
			if code != tc.want || env.ErrorCode != tc.code {
				t.Errorf("got %d %s, want %d %s", code, env.ErrorCode, tc.want, tc.code)
			}
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@example.com", "password": "nope"})
	if code != http.StatusUnauthorized || env.ErrorCode != "invalid_credentials" {
		t.Errorf("got %d %s", code, env.ErrorCode)
	}
}

func TestAdminRoutesRejectClients(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Carla", "email": "carla@example.com", "password": "secret1",
	})
	if code != http.StatusCreated {
		t.Fatalf("register: %d", code)
	}
	var reg struct {
		Token string `json:"access_token"`
	}
	decode(t, env.Data, &reg)

	for _, path := range []string{"/api/admin/payments", "/api/admin/sales/today", "/api/admin/users", "/api/admin/audit-logs"} {
		if code, _ := s.do(http.MethodGet, path, reg.Token, nil); code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", path, code)
		}
	}
}

func TestMalformedRequests(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login("admin@example.com", "admin-pass")

	if code, env := s.do(http.MethodGet, "/api/services/abc", "", nil); code != http.StatusBadRequest || env.ErrorCode != "invalid_id" {
		t.Errorf("bad id: got %d %s", code, env.ErrorCode)
	}
	if code, env := s.do(http.MethodPost, "/api/services", adminToken, "{not json"); code != http.StatusBadRequest || env.ErrorCode != "invalid_request" {
		t.Errorf("bad body: got %d %s", code, env.ErrorCode)
	}
	if code, env := s.do(http.MethodGet, "/api/services/999", "", nil); code != http.StatusNotFound {
		t.Errorf("missing service: got %d %s", code, env.ErrorCode)
	}
}

// ======================================================
// Checkout + webhook
// ======================================================

func TestCheckoutWebhookThenConfirm(t *testing.T) {
	s := newTestServer(t)
	svc := s.store.AddService(models.Service{Name: "Beard", Price: 12.50, DurationMinutes: 20})

	code, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Carla", "email": "carla@example.com", "password": "secret1",
	})
	if code != http.StatusCreated {
		t.Fatalf("register: %d", code)
	}
	var reg struct {
		Token string `json:"access_token"`
	}
	decode(t, env.Data, &reg)

	code, env = s.do(http.MethodPost, "/api/payments/checkout/direct", reg.Token, gin.H{"service_id": svc.ID})
	if code != http.StatusCreated {
		t.Fatalf("checkout: status %d (%s)", code, env.ErrorCode)
	}
	var session payment.CheckoutSession
	decode(t, env.Data, &session)
	if !strings.HasPrefix(session.URL, "https://checkout.test/") {
		t.Errorf("unexpected checkout url %s", session.URL)
	}

	s.gateway.MarkPaid(session.ID)

	if code, _ := s.do(http.MethodPost, "/api/payments/webhook/stripe", "", session.ID, "Stripe-Signature", "forged"); code != http.StatusBadRequest {
		t.Errorf("forged webhook: expected 400, got %d", code)
	}
	if code, env := s.do(http.MethodPost, "/api/payments/webhook/stripe", "", session.ID, "Stripe-Signature", "sig"); code != http.StatusOK {
		t.Fatalf("webhook: status %d (%s)", code, env.ErrorCode)
	}

	code, env = s.do(http.MethodPost, "/api/payments/checkout/confirm", reg.Token, gin.H{"session_id": session.ID})
	if code != http.StatusOK {
		t.Fatalf("confirm: status %d (%s)", code, env.ErrorCode)
	}
	var confirmed struct {
		Created bool `json:"created"`
		Payment struct {
			Amount float64 `json:"amount"`
			Method string  `json:"method"`
		} `json:"payment"`
	}
	decode(t, env.Data, &confirmed)
	if confirmed.Created || confirmed.Payment.Amount != 12.50 || confirmed.Payment.Method != "stripe" {
		t.Errorf("unexpected confirm result %+v", confirmed)
	}
	if s.store.PaymentCount() != 1 {
		t.Errorf("expected a single payment, got %d", s.store.PaymentCount())
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	if code, env := s.do(http.MethodGet, "/health", "", nil); code != http.StatusOK || !env.OK {
		t.Errorf("health: got %d", code)
	}
}
