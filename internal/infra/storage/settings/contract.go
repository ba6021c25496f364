package settings

import "github.com/m04kA/SMC-TrainingDesk/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
