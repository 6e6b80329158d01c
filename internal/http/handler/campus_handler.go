package handler

import (
	"errors"
	"net/http"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/response"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/service"
)

type CampusHandler struct {
	campus *service.CampusService
}

func NewCampusHandler(campus *service.CampusService) *CampusHandler {
	return &CampusHandler{campus: campus}
}

func (h *CampusHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.campus.Events(r.Context())
	if err != nil {
		serverError(w, r, "list events", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *CampusHandler) MessMenu(w http.ResponseWriter, r *http.Request) {
	menus, err := h.campus.MessMenu(r.Context())
	if err != nil {
		serverError(w, r, "list mess menus", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"messMenu": menus})
}

func (h *CampusHandler) Hostels(w http.ResponseWriter, r *http.Request) {
	hostels, err := h.campus.Hostels(r.Context())
	if err != nil {
		serverError(w, r, "list hostels", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"hostels": hostels})
}

func (h *CampusHandler) College(w http.ResponseWriter, r *http.Request) {
	college, err := h.campus.College(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrCollegeNotFound) {
			response.Error(w, http.StatusNotFound, "college profile not found")
			return
		}
		serverError(w, r, "get college", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"college": college})
}
