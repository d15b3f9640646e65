package moderation

import "errors"

var (
	// ErrStorage - предложение не удалось сохранить.
	ErrStorage = errors.New("suggestion storage failed")
	// ErrDelivery - сообщение не дошло до получателя.
	ErrDelivery = errors.New("message delivery failed")
	// ErrMalformedAction - данные кнопки не в формате "<action>:<user id>".
	ErrMalformedAction = errors.New("malformed action tag")
	// ErrMalformedContent - в тексте сообщения нет пустой строки-разделителя.
	ErrMalformedContent = errors.New("malformed moderation message")
	// ErrPublication - канал не принял пост.
	ErrPublication = errors.New("channel publication failed")
	// ErrUnauthorized - кнопку нажал не админ.
	ErrUnauthorized = errors.New("actor is not an administrator")
)
