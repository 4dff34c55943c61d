package controllers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"business-trips-backend/lib/utils/apperrors"
)

func TestSendError(t *testing.T) {
	c := &BaseAPIController{}
	callApp := func(t *testing.T, handlerErr error) (int, string) {
		app := fiber.New()
		app.Get("/", func(ctx *fiber.Ctx) error {
			return c.SendError(ctx, c.GetLogger(ctx), handlerErr, "Ошибка обработки запроса")
		})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	t.Run(`текст пользовательской ошибки уходит клиенту`, func(t *testing.T) {
		status, body := callApp(t, apperrors.New("доступ запрещен"))
		require.Equal(t, fiber.StatusBadRequest, status)
		require.Contains(t, body, "доступ запрещен")
	})
	t.Run(`текст инфраструктурной ошибки клиенту не уходит`, func(t *testing.T) {
		status, body := callApp(t, errors.New(`pq: duplicate key value violates unique constraint "users_pkey"`))
		require.Equal(t, fiber.StatusBadRequest, status)
		require.NotContains(t, body, "pq:")
		require.Contains(t, body, "внутренняя ошибка сервера")
	})
}
