package booking

import "github.com/psicoagenda/booking-service/pkg/dbmetrics"

// DBExecutor is reused from dbmetrics so repositories work both with a bare
// *sql.DB and the instrumented wrapper, inside or outside a transaction.
type DBExecutor = dbmetrics.DBExecutor
