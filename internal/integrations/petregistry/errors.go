package petregistry

import "errors"

var (
	// ErrPetNotFound возвращается, когда питомец не найден в реестре
	ErrPetNotFound = errors.New("petregistry client: pet not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("petregistry client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("petregistry client: invalid response")
)
