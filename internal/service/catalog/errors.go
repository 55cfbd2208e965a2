package catalog

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: catalog: service not found", domain.ErrNotFound)

	// ErrServiceNameTaken возвращается, когда услуга с таким названием уже существует
	ErrServiceNameTaken = fmt.Errorf("%w: catalog: service with this name already exists", domain.ErrConflict)

	// ErrServiceInUse возвращается при удалении услуги, на которую есть записи
	ErrServiceInUse = fmt.Errorf("%w: catalog: service has appointments, deactivate it instead", domain.ErrConflict)

	// ErrStaffNotFound возвращается, когда специалист не найден
	ErrStaffNotFound = fmt.Errorf("%w: catalog: staff member not found", domain.ErrNotFound)

	// ErrNotStaff возвращается, когда пользователь не может оказывать услуги
	ErrNotStaff = fmt.Errorf("%w: catalog: user cannot perform services", domain.ErrBadRequest)

	// ErrQualificationNotFound возвращается, когда у специалиста нет квалификации для услуги
	ErrQualificationNotFound = fmt.Errorf("%w: catalog: qualification not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда каталог меняет не администратор
	ErrAccessDenied = fmt.Errorf("%w: catalog: access denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: catalog: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: catalog", domain.ErrInternal)
)
