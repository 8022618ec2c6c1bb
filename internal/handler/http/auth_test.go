package http

import (
	"fmt"
	"html"
	"maps"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-feedback/internal/app"
	"github.com/MKhiriev/go-feedback/internal/service"
	"github.com/MKhiriev/go-feedback/models"
)

var aliceRegistration = map[string]string{
	"username":   "alice",
	"password":   "pw1",
	"email":      "a@x.com",
	"first_name": "A",
	"last_name":  "L",
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	h, ts := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	ts.auth.EXPECT().Register(gomock.Any(), models.RegisterForm{
		Username: "alice", Password: "pw1", Email: "a@x.com", FirstName: "A", LastName: "L",
	}).Return(models.User{Username: "alice"}, nil)

	resp := b.post("/register", aliceRegistration)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, "/users/alice", resp.Header().Get("Location"))

	home := b.get("/")
	assert.Contains(t, home.String(), "Signed in as <strong>alice</strong>")
	assert.Contains(t, home.String(), app.MsgRegistered)
}

func TestRegister_ValidationErrorDoesNotCallService(t *testing.T) {
	h, _ := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	resp := b.post("/register", map[string]string{
		"username": "  ",
		"password": "pw1",
		"email":    "not-an-email",
	})

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	body := resp.String()
	assert.Contains(t, body, "A username is required.")
	assert.Contains(t, body, "That is not a valid email")
	assert.Contains(t, body, "A first name is required.")
	assert.Contains(t, body, `value="not-an-email"`, "submitted values are kept")
	assert.NotContains(t, body, `value="pw1"`, "passwords are never echoed")
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	h, _ := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	form := maps.Clone(aliceRegistration)
	form["password"] = strings.Repeat("p", 73)

	resp := b.post("/register", form)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	assert.Contains(t, resp.String(), app.MsgPasswordTooLong)
}

func TestRegister_PasswordRejectedByHasher(t *testing.T) {
	h, ts := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	ts.auth.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(models.User{}, fmt.Errorf("%w: %w", service.ErrPasswordTooLong, bcrypt.ErrPasswordTooLong))

	resp := b.post("/register", aliceRegistration)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	assert.Contains(t, resp.String(), app.MsgPasswordTooLong)
}

func TestRegister_UsernameWithReservedCharacters(t *testing.T) {
	for _, username := range []string{"a/b", "a%2Fb", "a?b", "a#b"} {
		t.Run(username, func(t *testing.T) {
			h, _ := newMockedHandler(t)
			b := newTestBrowser(t, h.Init())

			form := maps.Clone(aliceRegistration)
			form["username"] = username

			resp := b.post("/register", form)

			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
			assert.Contains(t, resp.String(), "A username cannot contain /, ?, # or %.")
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   []string
	}{
		{"username", []string{models.FieldUsername}, []string{app.MsgUsernameTaken}},
		{"email", []string{models.FieldEmail}, []string{app.MsgEmailTaken}},
		{"both", []string{models.FieldUsername, models.FieldEmail}, []string{app.MsgUsernameTaken, app.MsgEmailTaken}},
		{"unattributed", nil, []string{app.MsgIdentityTaken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ts := newMockedHandler(t)
			b := newTestBrowser(t, h.Init())

			ts.auth.EXPECT().Register(gomock.Any(), gomock.Any()).
				Return(models.User{}, &service.DuplicateIdentityError{Fields: tt.fields})

			resp := b.post("/register", aliceRegistration)
			require.Equal(t, http.StatusConflict, resp.StatusCode())
			for _, msg := range tt.want {
				assert.Contains(t, resp.String(), msg)
			}

			assert.NotContains(t, b.get("/").String(), "Signed in as", "session stays anonymous")
		})
	}
}

func TestRegister_UnexpectedError(t *testing.T) {
	h, ts := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	ts.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.User{}, assert.AnError)

	resp := b.post("/register", aliceRegistration)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.Contains(t, resp.String(), app.MsgInternalServerError)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	h, ts := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	ts.auth.EXPECT().Authenticate(gomock.Any(), "alice", "pw1").Return(models.User{Username: "alice"}, nil)

	resp := b.post("/login", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, "/users/alice", resp.Header().Get("Location"))
}

func TestLogin_WrongPassword(t *testing.T) {
	h, ts := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	ts.auth.EXPECT().Authenticate(gomock.Any(), "alice", "wrongpw").
		Return(models.User{}, service.ErrInvalidCredentials)

	resp := b.post("/login", map[string]string{"username": "alice", "password": "wrongpw"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Contains(t, resp.String(), app.MsgInvalidLoginPassword)
	assert.Contains(t, resp.String(), `value="alice"`)

	assert.NotContains(t, b.get("/").String(), "Signed in as")
}

func TestLogin_ValidationError(t *testing.T) {
	h, _ := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	resp := b.post("/login", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	assert.Contains(t, resp.String(), "A password is required to sign in.")
}

func TestLogin_ThrottledAfterMaxAttempts(t *testing.T) {
	h, ts := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	ts.auth.EXPECT().Authenticate(gomock.Any(), "alice", "wrong").
		Return(models.User{}, service.ErrInvalidCredentials).
		Times(testLimiterConfig.MaxAttempts)

	for i := 0; i < testLimiterConfig.MaxAttempts; i++ {
		resp := b.post("/login", map[string]string{"username": "alice", "password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	}

	// locked out: the service is not asked again
	resp := b.post("/login", map[string]string{"username": "alice", "password": "right"})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode())
	assert.Contains(t, resp.String(), app.MsgTooManyAttempts)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))
}

func TestLogout(t *testing.T) {
	h, ts := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())
	b.signIn(ts, "alice")

	resp := b.get("/logout")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, "/", resp.Header().Get("Location"))

	home := b.get("/").String()
	assert.NotContains(t, home, "Signed in as")
	assert.Contains(t, home, app.MsgLoggedOut)
}

func TestLogout_PostIsNotARoute(t *testing.T) {
	h, _ := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	resp := b.post("/logout", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

// ── CSRF ─────────────────────────────────────────────────────────────────────

func TestPostWithoutCSRFToken(t *testing.T) {
	h, _ := newMockedHandler(t)
	b := newTestBrowser(t, h.Init())

	// establish a session so a token exists server side
	b.get("/")

	resp := b.postWithoutToken("/register", aliceRegistration)
	require.Equal(t, http.StatusForbidden, resp.StatusCode())
	assert.Contains(t, resp.String(), html.EscapeString(app.MsgInvalidCSRF))
}

func TestPostWithForeignCSRFToken(t *testing.T) {
	h, _ := newMockedHandler(t)
	victim := newTestBrowser(t, h.Init())
	attacker := newBrowserFor(t, victim.client.BaseURL)

	token := attacker.csrfToken()
	victim.get("/")

	resp, err := victim.client.R().
		SetFormData(map[string]string{"csrf_token": token, "username": "x", "password": "y"}).
		Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}
