package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func TestUpdateUserRename(t *testing.T) {
	subject := func() *domain.User {
		return &domain.User{
			ID:       9,
			Username: "omar.mansour",
			Email:    "omar.mansour@zestotech.com",
			Role:     domain.RoleEstimator,
			IsActive: true,
		}
	}

	patch := func(t *testing.T, users userDirectory, user *domain.User, body string) *httptest.ResponseRecorder {
		t.Helper()
		h := testHandlerWithRedis(t)
		h.users = users

		req := httptest.NewRequest(http.MethodPatch, "/users/9", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), UserInfoCtxKey, user))
		rec := httptest.NewRecorder()
		h.UpdateUser(rec, req)
		return rec
	}

	t.Run("username is updatable", func(t *testing.T) {
		var saved *domain.User
		users := &fakeUserDirectory{
			updateUserFunc: func(user *domain.User) error {
				saved = user
				return nil
			},
		}

		rec := patch(t, users, subject(), `{"username":"omar.said"}`)

		resp := decodeResponse(t, rec)
		if !resp.Success {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if saved == nil || saved.Username != "omar.said" {
			t.Fatalf("expected the new username to be saved, got %+v", saved)
		}
		if saved.Email != "omar.mansour@zestotech.com" || saved.Role != domain.RoleEstimator {
			t.Errorf("rename must not touch other fields, got %+v", saved)
		}
	})

	t.Run("username conflict", func(t *testing.T) {
		users := &fakeUserDirectory{
			updateUserFunc: func(user *domain.User) error {
				return &pgconn.PgError{ConstraintName: "users_username_key"}
			},
		}

		rec := patch(t, users, subject(), `{"username":"ahmed.khan"}`)

		resp := decodeResponse(t, rec)
		if resp.Success || resp.Message != "username already exists" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})
}
