package http

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-feedback/internal/app"
	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/service"
	"github.com/MKhiriev/go-feedback/internal/store"
	"github.com/MKhiriev/go-feedback/models"
)

var editLinkPattern = regexp.MustCompile(`href="/feedback/(\d+)/update"`)

// newSQLiteServer starts the full stack on an in-memory SQLite database.
func newSQLiteServer(t *testing.T) (string, *store.Storages) {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.DB{DSN: "sqlite://:memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	services := service.NewServices(storages, config.App{BcryptCost: 4},
		models.NewAppBuildInfo("test", "", ""), logger.Nop())
	h := newTestHandler(t, services)

	b := newTestBrowser(t, h.Init())
	return b.client.BaseURL, storages
}

func registerAlice(t *testing.T, b *testBrowser) {
	t.Helper()
	resp := b.post("/register", map[string]string{
		"username":   "alice",
		"password":   "pw1",
		"email":      "a@x.io",
		"first_name": "Al",
		"last_name":  "Ice",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	require.Equal(t, "/users/alice", resp.Header().Get("Location"))
}

func TestScenario_FeedbackLifecycle(t *testing.T) {
	baseURL, storages := newSQLiteServer(t)
	alice := newBrowserFor(t, baseURL)
	bob := newBrowserFor(t, baseURL)

	registerAlice(t, alice)

	// a wrong password leaves the session anonymous
	stranger := newBrowserFor(t, baseURL)
	resp := stranger.post("/login", map[string]string{"username": "alice", "password": "wrongpw"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Contains(t, resp.String(), app.MsgInvalidLoginPassword)
	assert.Equal(t, http.StatusSeeOther, stranger.get("/users/alice").StatusCode())

	resp = alice.post("/users/alice/feedback/add", map[string]string{"title": "Hi", "content": "Hello"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, "/users/alice#user-feedback", resp.Header().Get("Location"))

	profile := alice.get("/users/alice")
	require.Equal(t, http.StatusOK, profile.StatusCode())
	assert.Contains(t, profile.String(), "Hello")
	m := editLinkPattern.FindStringSubmatch(profile.String())
	require.Len(t, m, 2)
	editPath := "/feedback/" + m[1] + "/update"

	// bob registers his own account and then tries alice's feedback
	resp = bob.post("/register", map[string]string{
		"username": "bob", "password": "pw2", "email": "b@x.io", "first_name": "Bob", "last_name": "B",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())

	resp = bob.get(editPath)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, "/", resp.Header().Get("Location"))
	assert.Contains(t, bob.get("/").String(), app.MsgEditFeedbackDenied)

	resp = bob.post(editPath, map[string]string{"title": "pwned", "content": "pwned"})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode())
	resp = bob.post("/feedback/"+m[1]+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode())

	list, err := storages.FeedbackRepository.ListFeedbackByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hi", list[0].Title)
	assert.Equal(t, "Hello", list[0].Content)

	// a blank title keeps the stored one
	resp = alice.post(editPath, map[string]string{"title": "", "content": "Hello again"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	list, err = storages.FeedbackRepository.ListFeedbackByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Hi", list[0].Title)
	assert.Equal(t, "Hello again", list[0].Content)

	// deleting the account removes the feedback and ends the session
	resp = alice.post("/users/alice/delete", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, "/", resp.Header().Get("Location"))
	assert.Contains(t, alice.get("/").String(), `href="/login"`)

	count, err := storages.FeedbackRepository.CountFeedbackByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestScenario_DuplicateRegistration(t *testing.T) {
	baseURL, _ := newSQLiteServer(t)
	registerAlice(t, newBrowserFor(t, baseURL))

	resp := newBrowserFor(t, baseURL).post("/register", map[string]string{
		"username":   "alice",
		"password":   "other",
		"email":      "a@x.io",
		"first_name": "Another",
		"last_name":  "Alice",
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode())
	assert.Contains(t, resp.String(), app.MsgUsernameTaken)
	assert.Contains(t, resp.String(), app.MsgEmailTaken)
}

func TestScenario_LoginAfterLogout(t *testing.T) {
	baseURL, _ := newSQLiteServer(t)
	b := newBrowserFor(t, baseURL)
	registerAlice(t, b)

	resp := b.get("/logout")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, http.StatusSeeOther, b.get("/users/alice").StatusCode())

	resp = b.post("/login", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode())
	assert.Equal(t, "/users/alice", resp.Header().Get("Location"))
	assert.Equal(t, http.StatusOK, b.get("/users/alice").StatusCode())
}
