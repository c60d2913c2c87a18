package handler

import (
	"errors"
	"net/http/httptest"
	"testing"

	"go-market-orders/internal/model"
	"go-market-orders/internal/service"
	"go-market-orders/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRespondError_StatusMapping(t *testing.T) {
	app := fiber.New()
	var current error
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, current)
	})

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation failure", validator.FirstError(&model.CreateOrderRequest{}), 400},
		{"self trade", service.ErrSelfTrade, 400},
		{"invalid credentials", service.ErrInvalidCredentials, 401},
		{"inactive account", service.ErrUserInactive, 401},
		{"ownership violation", service.ErrOwnershipViolation, 403},
		{"product not found", service.ErrProductNotFound, 404},
		{"order not found", service.ErrOrderNotFound, 404},
		{"insufficient stock", service.ErrInsufficientStock, 409},
		{"illegal transition", service.ErrInvalidStateTransition, 409},
		{"email taken", service.ErrEmailTaken, 409},
		{"persistence fault", errors.New("connection reset by peer"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current = tc.err
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
