package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/MKhiriev/go-feedback/internal/app"
	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/session"
	"github.com/MKhiriev/go-feedback/internal/utils"
	"github.com/MKhiriev/go-feedback/internal/validators"
	"github.com/MKhiriev/go-feedback/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names.
const (
	pageIndex        = "index.html"
	pageRegister     = "register.html"
	pageLogin        = "login.html"
	pageUser         = "user.html"
	pageFeedbackAdd  = "feedback_add.html"
	pageFeedbackEdit = "feedback_edit.html"
	pageNotFound     = "404.html"
	pageError        = "error.html"
)

var pageNames = []string{
	pageIndex, pageRegister, pageLogin, pageUser,
	pageFeedbackAdd, pageFeedbackEdit, pageNotFound, pageError,
}

// pageData is the value every page template is executed with. Fields a page
// does not use stay zero.
type pageData struct {
	Title     string
	Identity  string
	CSRFToken string
	Flashes   []session.Flash
	Version   string

	// Form holds the submitted values to refill inputs after a rejected
	// submission. Passwords are never put here.
	Form      map[string]string
	Errors    validators.FieldErrors
	FormError string
	Message   string

	Username string
	Profile  models.Profile
	Feedback models.Feedback
}

// parsePages parses every page together with the shared layout.
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// render executes page into a buffer and writes it with status. The session
// identity, the CSRF token and pending flashes are filled in here.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	log := logger.FromRequest(r)

	tmpl, ok := h.pages[page]
	if !ok {
		log.Error().Str("func", "*Handler.render").Str("page", page).Msg("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data.Identity, _ = utils.GetUsernameFromContext(r.Context())
	data.Version = h.services.AppInfoService.GetAppVersion(r.Context())

	token, err := h.sessions.CSRFToken(w, r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.render").Msg("error issuing CSRF token")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data.CSRFToken = token
	data.Flashes = h.sessions.Flashes(w, r)

	var buf bytes.Buffer
	if err = tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Err(err).Str("func", "*Handler.render").Str("page", page).Msg("error executing template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if _, err = utils.WriteHTML(w, buf.Bytes(), status); err != nil {
		log.Err(err).Str("func", "*Handler.render").Msg("error writing response")
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pageNotFound, pageData{
		Title:   "Not found",
		Message: app.MsgNotFound,
	})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusInternalServerError, pageError, pageData{
		Title:   "Error",
		Message: app.MsgInternalServerError,
	})
}
