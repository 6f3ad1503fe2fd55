package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (h *Handler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repository.GetAllProjects()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched projects", projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project := r.Context().Value(ProjectCtxKey).(*domain.Project)
	h.successResponse(w, r, "fetched project", project)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string     `json:"name" validate:"required"`
		Description string     `json:"description"`
		Status      string     `json:"status" validate:"required,oneof=Planning Active 'On Hold' Completed"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
		CustomerID  int64      `json:"customerId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		h.errorResponse(w, r, "end date cannot be before start date")
		return
	}

	project := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatus(req.Status),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CustomerID:  req.CustomerID,
	}

	if err := h.repository.CreateProject(project); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "project created", project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		Status      *string    `json:"status" validate:"omitempty,oneof=Planning Active 'On Hold' Completed"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
		CustomerID  *int64     `json:"customerId"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	project := r.Context().Value(ProjectCtxKey).(*domain.Project)

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = domain.ProjectStatus(*req.Status)
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.CustomerID != nil {
		project.CustomerID = *req.CustomerID
	}

	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		h.errorResponse(w, r, "end date cannot be before start date")
		return
	}

	if err := h.repository.UpdateProject(project); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update project, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "project updated", project)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	project := r.Context().Value(ProjectCtxKey).(*domain.Project)

	if err := h.repository.DeleteProject(project.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "project deleted", nil)
}
