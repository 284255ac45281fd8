package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/catalog"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/events"
	"github.com/nfrund/alphaprime/internal/handlers"
	"github.com/nfrund/alphaprime/internal/middleware"
	"github.com/nfrund/alphaprime/internal/pubsub"
	"github.com/nfrund/alphaprime/internal/rendering"
	"github.com/nfrund/alphaprime/web"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

type fakeServices struct{}

func (fakeServices) SendCode(ctx context.Context, phone string) (enrollment.Dispatch, error) {
	return enrollment.Dispatch{ID: "d-1", ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (fakeServices) VerifyCode(ctx context.Context, phone, code string) (bool, error) {
	return code == "1234", nil
}

func (fakeServices) Register(ctx context.Context, draft enrollment.Draft) error {
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, msg.Topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

// client replays cookies between requests like a browser.
type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
	htmx    bool
}

func (cl *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	cl.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cl.htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		cl.cookies[c.Name] = c
	}
	return rec
}

func setupSiteTest(t *testing.T) (*client, *recordingPublisher, *enrollment.Store) {
	t.Helper()

	svc, err := catalog.NewService(afero.FromIOFS{FS: web.Content()}, 0)
	require.NoError(t, err)
	store := enrollment.NewStore(fakeServices{}, enrollment.Options{CodeHint: "1234"}, time.Minute)
	pub := &recordingPublisher{}
	h := handlers.NewSiteHandler(svc, store, pub)

	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.Use(middleware.Logger)

	e.GET("/", h.HomeGet)
	e.GET("/modal/enroll", h.ModalFormGet(enrollment.KindEnroll))
	e.GET("/modal/register", h.ModalFormGet(enrollment.KindRegister))
	e.GET("/modal/blog/:id", h.ModalBlogGet)
	e.GET("/modal/close", h.ModalCloseGet)
	e.POST("/forms/:id/details", h.DetailsPost)
	e.POST("/forms/:id/code/paste", h.PastePost)
	e.POST("/forms/:id/code/:slot", h.DigitPost)
	e.POST("/forms/:id/code/:slot/backspace", h.BackspacePost)
	e.POST("/forms/:id/back", h.BackPost)
	e.POST("/forms/:id/cancel", h.CancelPost)

	return &client{t: t, e: e, cookies: map[string]*http.Cookie{}, htmx: true}, pub, store
}

var formIDPattern = regexp.MustCompile(`/forms/([0-9a-f-]{36})/details`)

func openForm(t *testing.T, cl *client, kind string) string {
	t.Helper()
	rec := cl.do(http.MethodGet, "/modal/"+kind, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	m := formIDPattern.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2, "form id not found in %s", rec.Body.String())
	return m[1]
}

func details(name, email, phone, password string) url.Values {
	v := url.Values{}
	v.Set("name", name)
	v.Set("email", email)
	v.Set("phone", phone)
	v.Set("password", password)
	return v
}

func TestHomeGet(t *testing.T) {
	cl, _, _ := setupSiteTest(t)
	cl.htmx = false

	rec := cl.do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Featured Courses")
	assert.Contains(t, body, "Fundamentals of Stock Trading")
	assert.Contains(t, body, "Understanding Market Sentiment")
	assert.Contains(t, body, "Networking Tips for Traders")
	assert.Contains(t, body, "Chart Analysis 6")
	assert.Contains(t, body, `id="modal-host"`)
	assert.NotContains(t, body, `role="dialog"`)
}

func TestHomeGet_OpensModalFromQuery(t *testing.T) {
	cl, _, _ := setupSiteTest(t)
	cl.htmx = false

	rec := cl.do(http.MethodGet, "/?modal=register", nil)
	assert.Contains(t, rec.Body.String(), "Create Account")
	assert.Contains(t, rec.Body.String(), `name="password"`)

	rec = cl.do(http.MethodGet, "/?modal=blog&post=2", nil)
	assert.Contains(t, rec.Body.String(), "<strong>Moving Average (MA):</strong>")
}

func TestModalRoutes(t *testing.T) {
	cl, _, _ := setupSiteTest(t)

	rec := cl.do(http.MethodGet, "/modal/enroll", nil)
	assert.Contains(t, rec.Body.String(), "Enroll in Course")
	assert.NotContains(t, rec.Body.String(), `name="password"`)

	rec = cl.do(http.MethodGet, "/modal/blog/1", nil)
	assert.Contains(t, rec.Body.String(), "Understanding Market Sentiment")

	rec = cl.do(http.MethodGet, "/modal/blog/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = cl.do(http.MethodGet, "/modal/close", nil)
	assert.Equal(t, `<div id="modal-host"></div>`, rec.Body.String())

	cl.htmx = false
	rec = cl.do(http.MethodGet, "/modal/enroll", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?modal=enroll", rec.Header().Get(echo.HeaderLocation))
}

func TestEnrollFlow(t *testing.T) {
	cl, pub, store := setupSiteTest(t)
	id := openForm(t, cl, "enroll")

	rec := cl.do(http.MethodPost, "/forms/"+id+"/details", details("Jane", "jane@example.com", "555", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter the 4-digit code sent to 555")
	assert.Contains(t, rec.Body.String(), "(Hint: Use 1234)")

	for slot, digit := range []string{"1", "2", "3"} {
		rec = cl.do(http.MethodPost, "/forms/"+id+"/code/"+string(rune('0'+slot)), url.Values{"digit": {digit}})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Contains(t, rec.Body.String(), `id="code-slot-3"`)

	rec = cl.do(http.MethodPost, "/forms/"+id+"/code/3", url.Values{"digit": {"4"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Success! Welcome, Jane.")
	assert.NotContains(t, rec.Body.String(), `role="dialog"`)

	assert.Equal(t, 0, store.Len())
	assert.Contains(t, pub.published(), events.EnrollmentSucceeded.Name())
}

func TestRegisterFlow_WrongCodeThenPaste(t *testing.T) {
	cl, _, _ := setupSiteTest(t)
	id := openForm(t, cl, "register")

	rec := cl.do(http.MethodPost, "/forms/"+id+"/details", details("Sam", "sam@example.com", "555", "secret"))
	require.Contains(t, rec.Body.String(), "Enter the 4-digit code")

	rec = cl.do(http.MethodPost, "/forms/"+id+"/code/paste", url.Values{"text": {"9999"}})
	assert.Contains(t, rec.Body.String(), "Invalid OTP. Try 1234.")

	rec = cl.do(http.MethodPost, "/forms/"+id+"/code/paste", url.Values{"text": {"123456"}})
	assert.Contains(t, rec.Body.String(), "Success! Welcome, Sam.")
}

func TestDetailsValidation(t *testing.T) {
	cl, _, _ := setupSiteTest(t)
	id := openForm(t, cl, "register")

	rec := cl.do(http.MethodPost, "/forms/"+id+"/details", details("", "not-an-email", "", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="details-form"`)
	assert.Contains(t, body, `aria-invalid="true"`)
	assert.NotContains(t, body, "Enter the 4-digit code")
}

func TestBackAndCancel(t *testing.T) {
	cl, pub, store := setupSiteTest(t)
	id := openForm(t, cl, "enroll")

	cl.do(http.MethodPost, "/forms/"+id+"/details", details("Jane", "jane@example.com", "555", ""))

	rec := cl.do(http.MethodPost, "/forms/"+id+"/back", nil)
	assert.Contains(t, rec.Body.String(), `value="jane@example.com"`)

	rec = cl.do(http.MethodPost, "/forms/"+id+"/cancel", nil)
	assert.Equal(t, `<div id="modal-host"></div>`, rec.Body.String())
	assert.Equal(t, 0, store.Len())
	assert.Contains(t, pub.published(), events.EnrollmentCancelled.Name())

	rec = cl.do(http.MethodPost, "/forms/"+id+"/details", details("Jane", "jane@example.com", "555", ""))
	assert.Contains(t, rec.Body.String(), "This form has expired.")
}

func TestFormsAreOwnedByVisitor(t *testing.T) {
	cl, _, _ := setupSiteTest(t)
	id := openForm(t, cl, "enroll")

	other := &client{t: t, e: cl.e, cookies: map[string]*http.Cookie{}, htmx: true}
	rec := other.do(http.MethodPost, "/forms/"+id+"/details", details("Eve", "eve@example.com", "1", ""))

	assert.Contains(t, rec.Body.String(), "This form has expired.")
}

func TestNonHTMXSuccessSetsFlash(t *testing.T) {
	cl, _, _ := setupSiteTest(t)
	id := openForm(t, cl, "enroll")
	cl.htmx = false

	rec := cl.do(http.MethodPost, "/forms/"+id+"/details", details("Jane", "jane@example.com", "555", ""))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?form="+id, rec.Header().Get(echo.HeaderLocation))

	rec = cl.do(http.MethodPost, "/forms/"+id+"/code/paste", url.Values{"text": {"1234"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = cl.do(http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), "Success! Welcome, Jane.")
}

func TestInvalidSlot(t *testing.T) {
	cl, _, _ := setupSiteTest(t)
	id := openForm(t, cl, "enroll")

	rec := cl.do(http.MethodPost, "/forms/"+id+"/code/7", url.Values{"digit": {"1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasteLongClipboard(t *testing.T) {
	cl, _, _ := setupSiteTest(t)
	id := openForm(t, cl, "enroll")
	cl.do(http.MethodPost, "/forms/"+id+"/details", details("Ada", "ada@example.com", "555", ""))

	rec := cl.do(http.MethodPost, "/forms/"+id+"/code/paste", url.Values{"text": {"1234" + strings.Repeat("9", 200)}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Success! Welcome, Ada.")
}
