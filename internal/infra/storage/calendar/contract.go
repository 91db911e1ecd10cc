package calendar

import (
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
