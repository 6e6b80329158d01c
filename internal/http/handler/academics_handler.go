package handler

import (
	"errors"
	"net/http"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/response"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/service"
)

type AcademicsHandler struct {
	academics *service.AcademicsService
}

func NewAcademicsHandler(academics *service.AcademicsService) *AcademicsHandler {
	return &AcademicsHandler{academics: academics}
}

func (h *AcademicsHandler) Semesters(w http.ResponseWriter, r *http.Request) {
	semesters, err := h.academics.Semesters(r.Context())
	if err != nil {
		serverError(w, r, "list semesters", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"semesters": semesters})
}

func (h *AcademicsHandler) Semester(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid semester id")
		return
	}
	detail, err := h.academics.Semester(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSemesterNotFound) {
			response.Error(w, http.StatusNotFound, "semester not found")
			return
		}
		serverError(w, r, "get semester", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"semester": detail})
}

func (h *AcademicsHandler) SemesterSubjects(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid semester id")
		return
	}
	subjects, err := h.academics.SemesterSubjects(r.Context(), id)
	if err != nil {
		serverError(w, r, "list subjects", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}

func (h *AcademicsHandler) Teachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.academics.Teachers(r.Context())
	if err != nil {
		serverError(w, r, "list teachers", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"teachers": teachers})
}

func (h *AcademicsHandler) Teacher(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid teacher id")
		return
	}
	teacher, err := h.academics.Teacher(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTeacherNotFound) {
			response.Error(w, http.StatusNotFound, "teacher not found")
			return
		}
		serverError(w, r, "get teacher", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"teacher": teacher})
}
