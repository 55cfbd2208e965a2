package slotconfig

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: slotconfig: service not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда конфигурацию меняет не администратор
	ErrAccessDenied = fmt.Errorf("%w: slotconfig: access denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: slotconfig: invalid input data", domain.ErrBadRequest)

	// ErrConfigAlreadyExists возвращается, когда конфигурация была создана параллельным запросом
	ErrConfigAlreadyExists = fmt.Errorf("%w: slotconfig: config already exists", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: slotconfig", domain.ErrInternal)
)
