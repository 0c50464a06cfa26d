package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-brackets/models"
	"github.com/Dosada05/tournament-brackets/services"
)

type FormatHandler struct {
	formatService services.FormatService
}

func NewFormatHandler(fs services.FormatService) *FormatHandler {
	return &FormatHandler{
		formatService: fs,
	}
}

// GetAllFormats godoc
// @Summary List bracket formats
// @Tags formats
// @Description Returns every format a bracket can be generated in, with the options it accepts.
// @Produce json
// @Success 200 {object} map[string]interface{} "formats"
// @Router /formats [get]
func (h *FormatHandler) GetAllFormats(w http.ResponseWriter, r *http.Request) {
	formats, err := h.formatService.GetAllFormats(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"formats": formats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetFormat godoc
// @Summary Get one bracket format
// @Tags formats
// @Produce json
// @Param bracketType path string true "Bracket type, e.g. single_elimination"
// @Success 200 {object} map[string]interface{} "format"
// @Failure 404 {object} map[string]string "Unknown format"
// @Router /formats/{bracketType} [get]
func (h *FormatHandler) GetFormat(w http.ResponseWriter, r *http.Request) {
	bracketType := models.BracketFormat(chi.URLParam(r, "bracketType"))

	format, err := h.formatService.GetFormat(r.Context(), bracketType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"format": format}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
