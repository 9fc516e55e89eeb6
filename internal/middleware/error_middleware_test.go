package middleware

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

func TestHandleAPIError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"vacancy not found", apperrors.ErrVacancyNotFound, 404},
		{"forbidden", apperrors.NewForbiddenError("only hr"), 403},
		{"email exists", apperrors.ErrEmailAlreadyExists, 409},
		{"mentor busy", apperrors.ErrMentorBusy, 409},
		{"validation", apperrors.NewValidationError("bad input"), 400},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401},
		{"account disabled", apperrors.ErrAccountDisabled, 403},
		{"mail delivery", &apperrors.CustomError{Err: apperrors.ErrMailDelivery, Message: "smtp down"}, 502},
		{"unexpected", errors.New("boom"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tc.err)

			if w.Code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestHandleAPIError_WrappedSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, &apperrors.CustomError{
		Err:     apperrors.ErrMailDelivery,
		Message: "some invites failed",
		Details: map[string]interface{}{"sent": 2, "failed": 1},
	})

	if w.Code != 502 {
		t.Fatalf("expected status 502, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "some invites failed") {
		t.Errorf("response should carry the error message, got %s", body)
	}
	if !strings.Contains(body, "sent") {
		t.Errorf("response should carry the details, got %s", body)
	}
}
