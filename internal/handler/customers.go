package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (h *Handler) GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repository.GetAllCustomers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched customers", customers)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer := r.Context().Value(CustomerCtxKey).(*domain.Customer)
	h.successResponse(w, r, "fetched customer", customer)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Email   string `json:"email" validate:"omitempty,email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	customer := &domain.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := h.repository.CreateCustomer(customer); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "customer created", customer)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email" validate:"omitempty,email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	customer := r.Context().Value(CustomerCtxKey).(*domain.Customer)

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}

	if err := h.repository.UpdateCustomer(customer); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update customer, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "customer updated", customer)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customer := r.Context().Value(CustomerCtxKey).(*domain.Customer)

	if err := h.repository.DeleteCustomer(customer.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "customer deleted", nil)
}
