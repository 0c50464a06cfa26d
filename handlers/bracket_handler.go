package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Dosada05/tournament-brackets/middleware"
	"github.com/Dosada05/tournament-brackets/services"
)

const maxBatchGroups = 64

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

type batchInput struct {
	Groups []services.CreateGroupInput `json:"groups"`
}

type shuffleInput struct {
	Seed *uint64 `json:"seed"`
}

type thirdPlaceInput struct {
	Enabled *bool `json:"enabled"`
}

// Preview godoc
// @Summary Preview a bracket
// @Tags brackets
// @Description Builds a bracket and its layout from the given competitors without saving anything.
// @Accept json
// @Produce json
// @Param body body services.GenerateBracketInput true "Format, competitors in seed order and options"
// @Success 200 {object} map[string]interface{} "bracket"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 422 {object} map[string]string "Validation error"
// @Router /brackets/preview [post]
func (h *BracketHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var input services.GenerateBracketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.Preview(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracket godoc
// @Summary Get a stored bracket
// @Tags brackets
// @Produce json
// @Param groupID path int true "Bracket group ID"
// @Success 200 {object} map[string]interface{} "bracket"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /bracket-groups/{groupID} [get]
func (h *BracketHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.GetBracket(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetLayout godoc
// @Summary Get the layout of a stored bracket
// @Tags brackets
// @Produce json
// @Param groupID path int true "Bracket group ID"
// @Success 200 {object} map[string]interface{} "layout"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /bracket-groups/{groupID}/layout [get]
func (h *BracketHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.GetBracket(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"layout": view.Layout}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Generate godoc
// @Summary Generate and save a bracket
// @Tags brackets
// @Description Replaces the bracket of an existing group. Organizers and admins only.
// @Accept json
// @Produce json
// @Param groupID path int true "Bracket group ID"
// @Param body body services.GenerateBracketInput true "Format, competitors in seed order and options"
// @Success 200 {object} map[string]interface{} "bracket"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /bracket-groups/{groupID}/generate [post]
func (h *BracketHandler) Generate(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateBracketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.GenerateAndSave(r.Context(), groupID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logAction(r, "generated bracket", groupID)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateBatch godoc
// @Summary Create several bracket groups
// @Tags brackets
// @Description Builds every group concurrently and stores them in one transaction.
// @Accept json
// @Produce json
// @Param body body batchInput true "Groups to create"
// @Success 201 {object} map[string]interface{} "brackets"
// @Failure 409 {object} map[string]string "Group name already used"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /bracket-groups/batch [post]
func (h *BracketHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var input batchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Groups) > maxBatchGroups {
		badRequestResponse(w, r, errors.New("too many groups in one batch"))
		return
	}

	views, err := h.bracketService.CreateGroups(r.Context(), input.Groups)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	for _, v := range views {
		logAction(r, "created bracket group", v.Group.ID)
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"brackets": views}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Shuffle godoc
// @Summary Shuffle the seeds of a stored bracket
// @Tags brackets
// @Accept json
// @Produce json
// @Param groupID path int true "Bracket group ID"
// @Param body body shuffleInput false "Optional seed for a reproducible shuffle"
// @Success 200 {object} map[string]interface{} "bracket"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 409 {object} map[string]string "Bracket not generated"
// @Security BearerAuth
// @Router /bracket-groups/{groupID}/shuffle [post]
func (h *BracketHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input shuffleInput
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	view, err := h.bracketService.ShuffleSeeds(r.Context(), groupID, input.Seed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logAction(r, "shuffled seeds", groupID)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetThirdPlace godoc
// @Summary Add or remove the third place match
// @Tags brackets
// @Accept json
// @Produce json
// @Param groupID path int true "Bracket group ID"
// @Param body body thirdPlaceInput true "enabled"
// @Success 200 {object} map[string]interface{} "bracket"
// @Failure 422 {object} map[string]string "Not available for this bracket"
// @Security BearerAuth
// @Router /bracket-groups/{groupID}/third-place [put]
func (h *BracketHandler) SetThirdPlace(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input thirdPlaceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Enabled == nil {
		badRequestResponse(w, r, errors.New("enabled is required"))
		return
	}

	view, err := h.bracketService.SetThirdPlaceMatch(r.Context(), groupID, *input.Enabled)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logAction(r, "changed third place match", groupID)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportSnapshot godoc
// @Summary Upload a layout snapshot
// @Tags brackets
// @Produce json
// @Param groupID path int true "Bracket group ID"
// @Success 201 {object} map[string]interface{} "snapshot"
// @Failure 503 {object} map[string]string "Snapshot storage not configured"
// @Security BearerAuth
// @Router /bracket-groups/{groupID}/snapshot [post]
func (h *BracketHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.bracketService.ExportSnapshot(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"snapshot": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func logAction(r *http.Request, action string, groupID int) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		log.Printf("%s for group %d (user unknown: %v)", action, groupID, err)
		return
	}
	log.Printf("user %d %s for group %d", userID, action, groupID)
}
