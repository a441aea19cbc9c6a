// Package simpletxmanager is the txmanager variant for a bare *sql.DB, used
// when metrics are disabled.
package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/psicoagenda/booking-service/pkg/dbmetrics"
	"github.com/psicoagenda/booking-service/pkg/txmanager"
)

type plainBeginner struct {
	db *sql.DB
}

func (b plainBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.db.BeginTx(ctx, opts)
}

// NewTransactionManager adapts db to the shared transaction manager.
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(plainBeginner{db: db})
}
