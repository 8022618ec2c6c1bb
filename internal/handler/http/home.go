package http

import "net/http"

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageIndex, pageData{Title: "Home"})
}
