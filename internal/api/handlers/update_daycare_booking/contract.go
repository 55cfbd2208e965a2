package update_daycare_booking

import (
	"context"

	updateDaycareBooking "github.com/m04kA/SMC-PetCareService/internal/usecase/update_daycare_booking"
)

type UpdateDaycareBookingUseCase interface {
	Execute(ctx context.Context, req *updateDaycareBooking.Request) (*updateDaycareBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
