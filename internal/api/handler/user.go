package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aweston/charkeep/internal/api/request"
	"github.com/aweston/charkeep/internal/api/response"
	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/services/user"
)

// UserHandler handles user CRUD and parent phone endpoints
type UserHandler struct {
	userService *user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// decodeUserRequest decodes and shape-validates a user body
func decodeUserRequest(r *http.Request) (request.UserRequest, error) {
	var req request.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, NewInvalidRequestError("invalid request body")
	}
	if req.Username == "" {
		return req, NewInvalidRequestError("username is required")
	}
	if req.Email == "" {
		return req, NewInvalidRequestError("email is required")
	}
	if req.Password == "" {
		return req, NewInvalidRequestError("password is required")
	}
	return req, nil
}

// List handles GET /users/
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.userService.ListDetails(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UsersFromDetails(details))
}

// Get handles GET /user/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	detail, err := h.userService.GetDetail(r.Context(), model.UserID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromDetail(detail))
}

// Create handles POST /user/
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeUserRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	created, err := h.userService.Create(r.Context(), user.Params{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		PersonalPhone: req.PersonalPhone,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	detail, err := h.userService.GetDetail(r.Context(), created.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromDetail(detail))
}

// Update handles PUT /user/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := decodeUserRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.userService.Update(r.Context(), model.UserID(id), user.Params{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		PersonalPhone: req.PersonalPhone,
	}); err != nil {
		WriteError(w, err)
		return
	}

	detail, err := h.userService.GetDetail(r.Context(), model.UserID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromDetail(detail))
}

// Delete handles DELETE /user/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), model.UserID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ListParentPhones handles GET /users/{id}/parent-phones/
func (h *UserHandler) ListParentPhones(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	phones, err := h.userService.ListParentPhones(r.Context(), model.UserID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParentPhonesFromModel(phones))
}

// AddParentPhone handles POST /users/{id}/parent-phones/
func (h *UserHandler) AddParentPhone(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ParentPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PhoneNumber == "" {
		WriteError(w, NewInvalidRequestError("phone_number is required"))
		return
	}

	phone, err := h.userService.AddParentPhone(r.Context(), model.UserID(id), req.PhoneNumber, req.ParentName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParentPhoneFromModel(phone))
}

// DeleteParentPhone handles DELETE /parent-phones/{id}
func (h *UserHandler) DeleteParentPhone(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.userService.DeleteParentPhone(r.Context(), model.PhoneID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
