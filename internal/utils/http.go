package utils

import (
	"net/http"
)

// WriteHTML writes an already rendered page to the HTTP response.
//
// It sets the "Content-Type" header to "text/html; charset=utf-8" and
// writes the provided HTTP status code before sending the body.
//
// Example usage:
//
//	WriteHTML(w, buf.Bytes(), http.StatusOK)
//	WriteHTML(w, buf.Bytes(), http.StatusUnprocessableEntity)
func WriteHTML(w http.ResponseWriter, body []byte, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// SeeOther redirects the client to url with 303 See Other, so a POST is
// always followed by a GET.
func SeeOther(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
