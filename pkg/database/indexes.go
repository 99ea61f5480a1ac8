package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

// purchasingIndexes back the filters and orderings the list endpoints push
// down to the database.
var purchasingIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_suppliers_category ON purchasing_suppliers(supplier_category_id);",
	"CREATE INDEX IF NOT EXISTS idx_supplier_transactions_supplier ON purchasing_supplier_transactions(supplier_id);",
	"CREATE INDEX IF NOT EXISTS idx_supplier_transactions_supplier_payment ON purchasing_supplier_transactions(supplier_id, payment_method_id);",
	"CREATE INDEX IF NOT EXISTS idx_supplier_transactions_invoice ON purchasing_supplier_transactions(supplier_invoice_number) WHERE supplier_invoice_number <> '';",
	"CREATE INDEX IF NOT EXISTS idx_supplier_transactions_date ON purchasing_supplier_transactions(transaction_date DESC);",
}

var analyzedTables = []string{
	"purchasing_supplier_categories",
	"purchasing_suppliers",
	"purchasing_supplier_transactions",
}

// EnsureIndexes creates the purchasing indexes. A failing index is logged and
// skipped; the API still works without it.
func EnsureIndexes(db *gorm.DB) error {
	log := logger.GetLogger()

	created := 0
	for _, indexSQL := range purchasingIndexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", zap.String("sql", indexSQL), zap.Error(err))
			continue
		}
		created++
	}

	for _, table := range analyzedTables {
		if err := db.Exec("ANALYZE " + table + ";").Error; err != nil {
			log.Warn("Failed to analyze table", zap.String("table", table), zap.Error(err))
		}
	}

	log.Info("Purchasing indexes ensured",
		zap.Int("created", created),
		zap.Int("total", len(purchasingIndexes)),
	)
	return nil
}
