package booking

import "github.com/salabelleza/SPA-BookingService/pkg/dbmetrics"

// Database interfaces are shared with pkg/dbmetrics so the repository works
// on a raw *sql.DB, an instrumented DB, or a transaction from context.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
