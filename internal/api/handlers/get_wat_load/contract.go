package get_wat_load

import (
	"context"

	getTempleLoad "github.com/m04kA/WatReservationService/internal/usecase/get_temple_load"
)

type GetTempleLoadUseCase interface {
	Execute(ctx context.Context, req *getTempleLoad.Request) (*getTempleLoad.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
