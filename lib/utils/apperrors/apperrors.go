package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Ошибка с текстом, который можно показать пользователю.
// Текст остальных ошибок наружу не отдается.
type UserError struct {
	message string
}

func (e *UserError) Error() string {
	return e.message
}

func New(message string) error {
	return errors.WithStack(&UserError{message: message})
}

func Errorf(format string, args ...interface{}) error {
	return errors.WithStack(&UserError{message: fmt.Sprintf(format, args...)})
}

// UserMessage возвращает текст ошибки, если его можно показать пользователю.
func UserMessage(err error) (string, bool) {
	var uErr *UserError
	if errors.As(err, &uErr) {
		return uErr.message, true
	}
	return "", false
}
