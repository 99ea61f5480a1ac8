package database

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

// SampleCategories are the supplier categories of the Wide World Importers
// sample database.
func SampleCategories() []model.SupplierCategory {
	names := []string{
		"Other Wholesaler",
		"Food Supplier",
		"Novelty Goods Supplier",
		"Toy Supplier",
		"Clothing Supplier",
		"Packaging Supplier",
		"Courier Services Supplier",
		"Financial Services Supplier",
		"Marketing Services Supplier",
		"Insurance Services Supplier",
	}

	categories := make([]model.SupplierCategory, len(names))
	for i, name := range names {
		categories[i] = model.SupplierCategory{
			SupplierCategoryName: name,
			LastEditedBy:         model.SystemUserID,
			ValidTo:              model.EndOfTime,
		}
	}
	return categories
}

type sampleSupplier struct {
	name     string
	category string
	phone    string
	website  string
	postal   string
	days     int
}

var sampleSuppliers = []sampleSupplier{
	{"A Datum Corporation", "Novelty Goods Supplier", "(847) 555-0100", "http://www.adatum.com", "46077", 14},
	{"Contoso, Ltd.", "Novelty Goods Supplier", "(360) 555-0100", "http://www.contoso.com", "98253", 7},
	{"Consolidated Messenger", "Courier Services Supplier", "(209) 555-0100", "http://www.consolidatedmessenger.com", "94101", 30},
	{"Fabrikam, Inc.", "Clothing Supplier", "(203) 555-0104", "http://www.fabrikam.com", "40351", 30},
	{"Graphic Design Institute", "Novelty Goods Supplier", "(406) 555-0105", "http://www.graphicdesigninstitute.com", "64847", 14},
	{"Litware, Inc.", "Packaging Supplier", "(605) 555-0103", "http://www.litwareinc.com", "95245", 30},
	{"Northwind Electric Cars", "Toy Supplier", "(201) 555-0105", "http://www.northwindelectriccars.com", "07860", 30},
	{"Woodgrove Bank", "Financial Services Supplier", "(212) 555-0105", "http://www.woodgrovebank.com", "10005", 7},
}

// Seed loads the sample purchasing data into an empty database. It does
// nothing when any category already exists.
func Seed(db *gorm.DB) error {
	var existing model.SupplierCategory
	result := db.First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categories := SampleCategories()
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		byName := make(map[string]int, len(categories))
		for _, c := range categories {
			byName[c.SupplierCategoryName] = c.SupplierCategoryID
		}

		suppliers := make([]model.Supplier, len(sampleSuppliers))
		for i, s := range sampleSuppliers {
			suppliers[i] = model.Supplier{
				SupplierName:             s.name,
				SupplierCategoryID:       byName[s.category],
				PrimaryContactPersonID:   21 + i*2,
				AlternateContactPersonID: 22 + i*2,
				DeliveryCityID:           38171 + i,
				PostalCityID:             38171 + i,
				SupplierReference:        "WWI" + s.postal,
				PaymentDays:              s.days,
				PhoneNumber:              s.phone,
				FaxNumber:                s.phone[:len(s.phone)-1] + "1",
				WebsiteURL:               s.website,
				DeliveryAddressLine1:     "Suite 10",
				DeliveryAddressLine2:     "183838 Southwest Boulevard",
				DeliveryPostalCode:       s.postal,
				PostalAddressLine1:       "PO Box 1039",
				PostalAddressLine2:       "Surrey",
				PostalPostalCode:         s.postal,
				LastEditedBy:             model.SystemUserID,
				ValidTo:                  model.EndOfTime,
			}
		}
		if err := tx.Create(&suppliers).Error; err != nil {
			return err
		}

		transactions := sampleTransactions(suppliers)
		if err := tx.CreateInBatches(&transactions, 100).Error; err != nil {
			return err
		}

		logger.GetLogger().Info("Sample purchasing data seeded",
			zap.Int("categories", len(categories)),
			zap.Int("suppliers", len(suppliers)),
			zap.Int("transactions", len(transactions)),
		)
		return nil
	})
}

// sampleTransactions gives every supplier an invoice per payment method,
// the first two finalized.
func sampleTransactions(suppliers []model.Supplier) []model.SupplierTransaction {
	base := time.Date(2016, time.January, 4, 0, 0, 0, 0, time.UTC)
	taxRate := decimal.NewFromFloat(0.15)

	var out []model.SupplierTransaction
	for i, s := range suppliers {
		for method := 1; method <= 4; method++ {
			paymentMethod := method
			purchaseOrder := 1000 + i*10 + method
			amount := decimal.NewFromInt(int64(250 * (i + method))).Round(2)
			date := base.AddDate(0, 0, i*7+method)

			t := model.SupplierTransaction{
				SupplierID:            s.SupplierID,
				TransactionTypeID:     5,
				PurchaseOrderID:       &purchaseOrder,
				PaymentMethodID:       &paymentMethod,
				SupplierInvoiceNumber: invoiceNumber(i, method),
				TransactionDate:       datatypes.Date(date),
				AmountExcludingTax:    amount,
				TaxAmount:             amount.Mul(taxRate).Round(2),
				LastEditedBy:          model.SystemUserID,
			}
			t.Recalculate()

			if method <= 2 {
				finalized := datatypes.Date(date.AddDate(0, 0, s.PaymentDays))
				t.FinalizationDate = &finalized
			} else {
				t.OutstandingBalance = t.TransactionAmount
			}
			out = append(out, t)
		}
	}
	return out
}

func invoiceNumber(supplier, method int) string {
	return strconv.Itoa(7000 + supplier*100 + method)
}
