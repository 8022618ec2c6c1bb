package http

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/limiter"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/mock"
	"github.com/MKhiriev/go-feedback/internal/service"
	"github.com/MKhiriev/go-feedback/internal/session"
	"github.com/MKhiriev/go-feedback/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var testLimiterConfig = config.Limiter{
	MaxAttempts:  3,
	Window:       time.Minute,
	LockDuration: time.Minute,
}

var csrfPattern = regexp.MustCompile(`<meta name="csrf-token" content="([^"]+)">`)

// testServices holds the mocked services behind a Handler.
type testServices struct {
	auth     *mock.MockAuthService
	users    *mock.MockUserService
	feedback *mock.MockFeedbackService
	appInfo  *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()

	h, err := NewHandler(
		services,
		session.NewManager(config.Session{Secret: testSecret, MaxAge: time.Hour}),
		limiter.NewMemoryLimiter(testLimiterConfig),
		config.Server{RequestTimeout: 5 * time.Second},
		logger.Nop(),
	)
	require.NoError(t, err)
	return h
}

func newMockedHandler(t *testing.T) (*Handler, testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := testServices{
		auth:     mock.NewMockAuthService(ctrl),
		users:    mock.NewMockUserService(ctrl),
		feedback: mock.NewMockFeedbackService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}
	ts.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("test").AnyTimes()
	ts.appInfo.EXPECT().GetBuildInfo(gomock.Any()).
		Return(models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc123")).AnyTimes()

	h := newTestHandler(t, &service.Services{
		AuthService:     ts.auth,
		UserService:     ts.users,
		FeedbackService: ts.feedback,
		AppInfoService:  ts.appInfo,
	})
	return h, ts
}

// testBrowser is an HTTP client with its own cookie jar that does not
// follow redirects.
type testBrowser struct {
	t      *testing.T
	client *resty.Client
}

func newTestBrowser(t *testing.T, handler http.Handler) *testBrowser {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return newBrowserFor(t, srv.URL)
}

func newBrowserFor(t *testing.T, baseURL string) *testBrowser {
	client := resty.New().
		SetBaseURL(baseURL).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	return &testBrowser{t: t, client: client}
}

func (b *testBrowser) get(path string) *resty.Response {
	b.t.Helper()
	resp, err := b.client.R().Get(path)
	require.NoError(b.t, err)
	return resp
}

// csrfToken reads the token from the layout of the home page, which has no
// form of its own.
func (b *testBrowser) csrfToken() string {
	b.t.Helper()
	resp := b.get("/")
	m := csrfPattern.FindStringSubmatch(resp.String())
	require.Len(b.t, m, 2, "page has no CSRF token")
	return m[1]
}

// post submits form with the session's CSRF token.
func (b *testBrowser) post(path string, form map[string]string) *resty.Response {
	b.t.Helper()

	values := map[string]string{"csrf_token": b.csrfToken()}
	for k, v := range form {
		values[k] = v
	}

	resp, err := b.client.R().SetFormData(values).Post(path)
	require.NoError(b.t, err)
	return resp
}

// postWithoutToken submits form as a forged cross-site request would.
func (b *testBrowser) postWithoutToken(path string, form map[string]string) *resty.Response {
	b.t.Helper()
	resp, err := b.client.R().SetFormData(form).Post(path)
	require.NoError(b.t, err)
	return resp
}

// signIn logs the browser in as username through a mocked AuthService.
func (b *testBrowser) signIn(ts testServices, username string) {
	b.t.Helper()

	ts.auth.EXPECT().Authenticate(gomock.Any(), username, "pw").
		Return(models.User{Username: username}, nil)

	resp := b.post("/login", map[string]string{"username": username, "password": "pw"})
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode())
}
