package app

import (
	"errors"

	"edu-messenger/auth"
	"edu-messenger/chat"
)

// UserMessage maps an error from the Controller to the text shown in the
// form. Authentication failures share one message so the form never reveals
// whether an identifier exists.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, auth.ErrDuplicateIdentifier):
		return "Пользователь существует."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Неверный логин или пароль."
	case errors.Is(err, auth.ErrAlreadyAuthenticated):
		return "Вы уже вошли в систему."
	case errors.Is(err, ErrNotAuthenticated):
		return "Сначала войдите в систему."
	case errors.Is(err, chat.ErrNoActiveConversation):
		return "Выберите чат."
	case errors.Is(err, chat.ErrEmptyBody):
		return "Сообщение пустое."
	case errors.Is(err, chat.ErrNotFound):
		return "Чат не найден."
	default:
		return "Внутренняя ошибка. Попробуйте ещё раз."
	}
}
