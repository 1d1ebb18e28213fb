package httpapi

import "net/http"

type RootHandler struct {
	Version string
}

// Get Banner
// @Summary Service banner
// @Tags system
// @Produce json
// @Success 200 {object} BannerResponse
// @Router / [get]
func (h *RootHandler) Get(w http.ResponseWriter, r *http.Request) {
	version := h.Version
	if version == "" {
		version = "2.0"
	}
	writeJSON(w, http.StatusOK, BannerResponse{
		Message: "API Varejão Online está funcionando!",
		Version: version,
		Endpoints: EndpointsView{
			Users:    []string{"POST /register", "POST /login"},
			Products: []string{"GET /products", "GET /products/:id", "POST /products", "PUT /products/:id", "DELETE /products/:id"},
			Orders:   []string{"POST /checkout", "GET /orders", "GET /orders/user/:email", "PUT /orders/:id"},
		},
	})
}
