package handler

import (
	"net/http"

	"github.com/aweston/charkeep/internal/api/response"
	"github.com/aweston/charkeep/internal/services/catalog"
)

// CatalogHandler handles race and religion endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListRaces handles GET /races/
func (h *CatalogHandler) ListRaces(w http.ResponseWriter, r *http.Request) {
	races, err := h.catalogService.ListRaces(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RacesFromModel(races))
}

// ListReligions handles GET /religions/
func (h *CatalogHandler) ListReligions(w http.ResponseWriter, r *http.Request) {
	religions, err := h.catalogService.ListReligions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ReligionsFromModel(religions))
}
