package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	authrepository "github.com/smallbiznis/bizdesk/internal/auth/repository"
	authservice "github.com/smallbiznis/bizdesk/internal/auth/service"
	"github.com/smallbiznis/bizdesk/internal/auth/session"
	clientrepository "github.com/smallbiznis/bizdesk/internal/client/repository"
	clientservice "github.com/smallbiznis/bizdesk/internal/client/service"
	"github.com/smallbiznis/bizdesk/internal/clock"
	companyrepository "github.com/smallbiznis/bizdesk/internal/company/repository"
	companyservice "github.com/smallbiznis/bizdesk/internal/company/service"
	"github.com/smallbiznis/bizdesk/internal/config"
	"github.com/smallbiznis/bizdesk/internal/insight"
	invoicedomain "github.com/smallbiznis/bizdesk/internal/invoice/domain"
	invoicerepository "github.com/smallbiznis/bizdesk/internal/invoice/repository"
	invoiceservice "github.com/smallbiznis/bizdesk/internal/invoice/service"
	"github.com/smallbiznis/bizdesk/internal/migration"
	"github.com/smallbiznis/bizdesk/internal/observability"
	paymentrepository "github.com/smallbiznis/bizdesk/internal/payment/repository"
	paymentservice "github.com/smallbiznis/bizdesk/internal/payment/service"
	projectrepository "github.com/smallbiznis/bizdesk/internal/project/repository"
	projectservice "github.com/smallbiznis/bizdesk/internal/project/service"
	"github.com/smallbiznis/bizdesk/internal/providers/pdf"
	reportdomain "github.com/smallbiznis/bizdesk/internal/report/domain"
	reportservice "github.com/smallbiznis/bizdesk/internal/report/service"
	"github.com/smallbiznis/bizdesk/internal/seed"
	"github.com/smallbiznis/bizdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const (
	testEmail    = "owner@bizdesk.local"
	testPassword = "owner-password"
)

type testServer struct {
	srv   *Server
	db    *gorm.DB
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.Run(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	profile := config.NewStaticCompanyProfile(config.DefaultCompanyProfile())
	cfg := config.Config{
		Bootstrap: config.BootstrapConfig{
			CompanyName:   "Main",
			AdminEmail:    testEmail,
			AdminPassword: testPassword,
		},
	}

	userRepo, sessionRepo := authrepository.New(conn)
	authSvc := authservice.New(log, userRepo, sessionRepo, node, clk)
	companySvc := companyservice.New(companyservice.Params{Log: log, GenID: node, Clock: clk, Repo: companyrepository.Provide(conn)})

	seeder := seed.New(seed.Params{Config: cfg, Log: log, CompanySvc: companySvc, AuthSvc: authSvc})
	_, err = seeder.Run(context.Background())
	require.NoError(t, err)

	clientSvc := clientservice.New(clientservice.Params{Log: log, GenID: node, Clock: clk, Repo: clientrepository.Provide(conn)})
	projectSvc := projectservice.New(projectservice.Params{Log: log, GenID: node, Clock: clk, Repo: projectrepository.Provide(conn)})
	invoiceSvc := invoiceservice.New(invoiceservice.Params{
		Log:        log,
		GenID:      node,
		Clock:      clk,
		Repo:       invoicerepository.Provide(conn),
		ClientSvc:  clientSvc,
		ProjectSvc: projectSvc,
		Company:    profile,
		PDF:        pdf.New(),
	})
	paymentSvc := paymentservice.New(paymentservice.Params{
		Log:        log,
		GenID:      node,
		Clock:      clk,
		Repo:       paymentrepository.Provide(conn),
		InvoiceSvc: invoiceSvc,
		Company:    profile,
		PDF:        pdf.New(),
	})
	reportSvc := reportservice.New(reportservice.Params{
		Log:        log,
		InvoiceSvc: invoiceSvc,
		PaymentSvc: paymentSvc,
		Insight:    insight.NewStatic(),
		Company:    profile,
	})

	srv := NewServer(ServerParams{
		Gin:        NewEngine(observability.Config{}, nil, language.Arabic),
		Cfg:        cfg,
		Log:        log,
		Authsvc:    authSvc,
		Sessions:   session.NewManager(cfg),
		CompanySvc: companySvc,
		Company:    profile,
		ClientSvc:  clientSvc,
		ProjectSvc: projectSvc,
		InvoiceSvc: invoiceSvc,
		PaymentSvc: paymentSvc,
		ReportSvc:  reportSvc,
	})

	ts := &testServer{srv: srv, db: conn}
	rec := ts.do(t, http.MethodPost, "/auth/login", LoginRequest{Email: testEmail, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Data loginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)
	ts.token = login.Data.Token

	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out), string(envelope.Data))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}

func (ts *testServer) createClient(t *testing.T, name string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/clients", createClientRequest{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var client struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &client)
	return client.ID
}

func (ts *testServer) invoiceCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, ts.db.Model(&invoicedomain.Invoice{}).Count(&n).Error)
	return n
}

func draftBody(clientID string) invoiceDraftRequest {
	two, hundred, one, fifty := decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.NewFromInt(1), decimal.NewFromInt(50)
	return invoiceDraftRequest{
		ClientID:  clientID,
		IssueDate: "2025-05-20",
		DueDate:   "2025-06-03",
		Currency:  "SAR",
		LineItems: []lineItemRequest{
			{Description: "Design", Quantity: &two, UnitPrice: &hundred},
			{Description: "Hosting", Quantity: &one, UnitPrice: &fifty},
		},
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresSession(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""

	rec := ts.do(t, http.MethodGet, "/api/invoices", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "يرجى تسجيل الدخول", decodeError(t, rec).Message)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""

	wrong := ts.do(t, http.MethodPost, "/auth/login", LoginRequest{Email: testEmail, Password: "nope-nope-nope"})
	unknown := ts.do(t, http.MethodPost, "/auth/login", LoginRequest{Email: "ghost@bizdesk.local", Password: testPassword}, "Accept-Language", "en")

	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, "خطأ في البريد الإلكتروني أو كلمة المرور", decodeError(t, wrong).Message)
	assert.Equal(t, "Incorrect email or password", decodeError(t, unknown).Message)
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateInvoiceWithoutClient(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/invoices", draftBody(""))

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	payload := decodeError(t, rec)
	assert.Equal(t, "validation_error", payload.Type)
	assert.Equal(t, "يرجى اختيار العميل", payload.Message)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "client_id", payload.Errors[0].Field)
	assert.Equal(t, int64(0), ts.invoiceCount(t))
}

func TestInvoiceLifecycle(t *testing.T) {
	ts := newTestServer(t)
	clientID := ts.createClient(t, "Acme")

	rec := ts.do(t, http.MethodPost, "/api/invoices/preview", draftBody(clientID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var totals invoicedomain.Totals
	decodeData(t, rec, &totals)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(285)), totals.Total.String())

	rec = ts.do(t, http.MethodPost, "/api/invoices", draftBody(clientID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created invoicedomain.Invoice
	decodeData(t, rec, &created)
	assert.Equal(t, invoicedomain.StatusDraft, created.Status)
	assert.True(t, created.Subtotal.Equal(decimal.NewFromInt(250)))
	assert.True(t, created.Tax.Equal(decimal.NewFromInt(35)))
	assert.True(t, created.Total.Equal(decimal.NewFromInt(285)))

	id := created.ID.String()

	rec = ts.do(t, http.MethodPost, "/api/invoices/"+id+"/send", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var details invoicedomain.InvoiceDetails
	decodeData(t, rec, &details)
	assert.Equal(t, invoicedomain.StatusSent, details.Invoice.Status)
	require.NotNil(t, details.Client)
	assert.Equal(t, "Acme", details.Client.Name)

	rec = ts.do(t, http.MethodPost, "/api/invoices/"+id+"/send", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/invoices/"+id+"/pay", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &details)
	assert.Equal(t, invoicedomain.StatusPaid, details.Invoice.Status)
	assert.Empty(t, details.Actions)

	rec = ts.do(t, http.MethodPost, "/api/invoices/"+id+"/pay", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "لا يمكن تغيير حالة الفاتورة", decodeError(t, rec).Message)

	rec = ts.do(t, http.MethodGet, "/api/invoices/"+id+"/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestGetInvoiceNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/invoices/123456789", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "الفاتورة غير موجودة", decodeError(t, rec).Message)
}

func TestProjectsFilteredByClient(t *testing.T) {
	ts := newTestServer(t)
	acme := ts.createClient(t, "Acme")
	globex := ts.createClient(t, "Globex")

	for _, req := range []createProjectRequest{
		{Name: "Website", ClientID: acme},
		{Name: "App", ClientID: globex},
		{Name: "Internal"},
	} {
		rec := ts.do(t, http.MethodPost, "/api/projects", req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	var all, filtered []struct {
		Name string `json:"name"`
	}
	decodeData(t, ts.do(t, http.MethodGet, "/api/projects", nil), &all)
	decodeData(t, ts.do(t, http.MethodGet, "/api/projects?client_id="+acme, nil), &filtered)

	assert.Len(t, all, 3)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Website", filtered[0].Name)
}

func TestFinancialReport(t *testing.T) {
	ts := newTestServer(t)
	clientID := ts.createClient(t, "Acme")

	rec := ts.do(t, http.MethodPost, "/api/invoices", draftBody(clientID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/payments", recordPaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/reports/financial", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report reportdomain.FinancialReport
	decodeData(t, rec, &report)
	assert.True(t, report.Revenue.Equal(decimal.NewFromInt(100)), report.Revenue.String())
	assert.True(t, report.Unpaid.Equal(decimal.NewFromInt(285)), report.Unpaid.String())
	assert.Equal(t, 1, report.Count)
	assert.True(t, report.CollectionRatio.Equal(decimal.RequireFromString("26")), report.CollectionRatio.String())
	assert.NotEmpty(t, report.Insight)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
