package book_daycare_session

import (
	"context"

	bookDaycareSession "github.com/m04kA/SMC-PetCareService/internal/usecase/book_daycare_session"
)

type BookDaycareSessionUseCase interface {
	Execute(ctx context.Context, req *bookDaycareSession.Request) (*bookDaycareSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
