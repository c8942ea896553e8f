package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/aweston/charkeep/internal/api/request"
	"github.com/aweston/charkeep/internal/api/response"
	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/services/character"
)

// CharacterHandler handles character endpoints
type CharacterHandler struct {
	characterService *character.Service
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(characterService *character.Service) *CharacterHandler {
	return &CharacterHandler{
		characterService: characterService,
	}
}

// decodeCharacterRequest decodes and shape-validates a character body
func decodeCharacterRequest(r *http.Request) (character.Params, error) {
	var req request.CharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return character.Params{}, NewInvalidRequestError("invalid request body")
	}
	if req.Name == "" {
		return character.Params{}, NewInvalidRequestError("name is required")
	}
	if req.User == "" {
		return character.Params{}, NewInvalidRequestError("user is required")
	}
	if _, err := uuid.Parse(req.User); err != nil {
		return character.Params{}, NewInvalidRequestError("user must be a valid UUID")
	}
	if req.XP < 0 {
		return character.Params{}, NewInvalidRequestError("xp must not be negative")
	}

	params := character.Params{
		Name:   req.Name,
		UserID: model.UserID(req.User),
		XP:     req.XP,
	}
	if req.Race != nil {
		if _, err := uuid.Parse(*req.Race); err != nil {
			return character.Params{}, NewInvalidRequestError("race must be a valid UUID")
		}
		raceID := model.RaceID(*req.Race)
		params.RaceID = &raceID
	}
	if req.Religion != nil {
		if _, err := uuid.Parse(*req.Religion); err != nil {
			return character.Params{}, NewInvalidRequestError("religion must be a valid UUID")
		}
		religionID := model.ReligionID(*req.Religion)
		params.ReligionID = &religionID
	}
	return params, nil
}

// Get handles GET /characters/{id}
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	ch, err := h.characterService.Get(r.Context(), model.CharacterID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CharacterFromModel(ch))
}

// ListForUser handles GET /user/{id}/characters/
func (h *CharacterHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	characters, err := h.characterService.ListForUser(r.Context(), model.UserID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CharactersFromModel(characters))
}

// Create handles POST /characters/
func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, err := decodeCharacterRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	ch, err := h.characterService.Create(r.Context(), params)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CharacterFromModel(ch))
}

// Update handles PUT /characters/{id}
func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	params, err := decodeCharacterRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	ch, err := h.characterService.Update(r.Context(), model.CharacterID(id), params)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CharacterFromModel(ch))
}

// Delete handles DELETE /characters/{id}
func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.characterService.Delete(r.Context(), model.CharacterID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
