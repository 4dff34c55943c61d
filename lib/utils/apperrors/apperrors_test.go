package apperrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	t.Run(`текст пользовательской ошибки возвращается как есть`, func(t *testing.T) {
		msg, ok := UserMessage(New("доступ запрещен"))
		require.True(t, ok)
		require.Equal(t, "доступ запрещен", msg)
	})
	t.Run(`текст сохраняется после оборачивания`, func(t *testing.T) {
		err := errors.Wrap(Errorf("неизвестный статус: %v", "Архив"), "обновление заявки")
		msg, ok := UserMessage(err)
		require.True(t, ok)
		require.Equal(t, "неизвестный статус: Архив", msg)
	})
	t.Run(`текст инфраструктурной ошибки не раскрывается`, func(t *testing.T) {
		_, ok := UserMessage(errors.New(`pq: duplicate key value violates unique constraint "users_pkey"`))
		require.False(t, ok)
	})
}
