package userservice

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден у пользователя
	ErrCarNotFound = errors.New("userservice: car not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
