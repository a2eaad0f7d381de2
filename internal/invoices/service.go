// Package invoices orchestrates the invoice lifecycle. Every mutation runs
// as one transaction covering the invoice row, its line items, item stock,
// and the party ledger; edits and deletes always revert the previous
// effects before applying new ones.
package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizbookhq/bizbook-backend/internal/stock"
	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"github.com/bizbookhq/bizbook-backend/pkg/enums"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/bizbookhq/bizbook-backend/pkg/metrics"
	"github.com/bizbookhq/bizbook-backend/pkg/money"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockAdjuster interface {
	Apply(ctx context.Context, tx *gorm.DB, sign float64, lines []stock.Line) error
}

type ledgerUpdater interface {
	Apply(ctx context.Context, tx *gorm.DB, partyID uint, delta float64, increase bool) error
}

// Service defines invoice lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error)
	Get(ctx context.Context, id uint) (*models.Invoice, error)
	List(ctx context.Context, filters ListFilters) ([]models.Invoice, error)
	Update(ctx context.Context, id uint, input CreateInvoiceInput) (*models.Invoice, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	tx       txRunner
	stock    stockAdjuster
	ledger   ledgerUpdater
	defaults money.TaxRates
	metrics  *metrics.MutationMetrics
}

// NewService builds an invoice service with the required collaborators.
// Metrics may be nil.
func NewService(
	repo Repository,
	tx txRunner,
	stockAdj stockAdjuster,
	ledgerUpd ledgerUpdater,
	defaults money.TaxRates,
	m *metrics.MutationMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoices repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stockAdj == nil {
		return nil, fmt.Errorf("stock adjuster required")
	}
	if ledgerUpd == nil {
		return nil, fmt.Errorf("ledger updater required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		stock:    stockAdj,
		ledger:   ledgerUpd,
		defaults: defaults,
		metrics:  m,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	invType, err := validateInput(input)
	if err != nil {
		s.metrics.IncFailure("invoice", "create")
		return nil, err
	}

	totals := money.Compute(toLineInputs(input.Items), input.Discount, input.PaidAmount, s.ratesFor(input))

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	var created *models.Invoice
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		number, err := repo.NextInvoiceNumber(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate invoice number")
		}

		invoice := assembleInvoice(&models.Invoice{InvoiceNumber: number}, invType, input, totals, date, s.ratesFor(input))
		invoice.Items = buildItems(0, input.Items, totals.Lines)

		if err := repo.Create(ctx, invoice); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert invoice")
		}

		if err := s.stock.Apply(ctx, tx, invType.StockSign(), inputStockLines(input.Items)); err != nil {
			return err
		}

		// The ledger carries the open balance, not the grand total: an
		// invoice created with an up-front paid amount only adds what is
		// still owed.
		if err := s.ledger.Apply(ctx, tx, input.PartyID, totals.Balance, invType == enums.InvoiceTypeSale); err != nil {
			return err
		}

		created = invoice
		return nil
	})

	s.metrics.Observe("invoice", "create", err)
	if err != nil {
		return nil, asTyped(err, "create invoice")
	}
	return s.Get(ctx, created.ID)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Invoice, error) {
	invoices, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return invoices, nil
}

func (s *service) Update(ctx context.Context, id uint, input CreateInvoiceInput) (*models.Invoice, error) {
	invType, err := validateInput(input)
	if err != nil {
		s.metrics.IncFailure("invoice", "update")
		return nil, err
	}

	old, err := s.Get(ctx, id)
	if err != nil {
		s.metrics.IncFailure("invoice", "update")
		return nil, err
	}
	if old.PaidAmount > 0 {
		s.metrics.IncFailure("invoice", "update")
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invoice has recorded payments and cannot be edited")
	}

	totals := money.Compute(toLineInputs(input.Items), input.Discount, input.PaidAmount, s.ratesFor(input))

	date := old.Date
	if input.Date != nil {
		date = *input.Date
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Reverse the old invoice's effects before touching anything else;
		// applying the new effects on top of the stale ones would double
		// count both stock and balance.
		if err := s.stock.Apply(ctx, tx, -old.Type.StockSign(), modelStockLines(old.Items)); err != nil {
			return err
		}
		if err := s.ledger.Apply(ctx, tx, old.PartyID, old.Balance, old.Type != enums.InvoiceTypeSale); err != nil {
			return err
		}
		if err := repo.DeleteItems(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete old invoice items")
		}

		items := buildItems(id, input.Items, totals.Lines)
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert invoice items")
		}

		if err := s.stock.Apply(ctx, tx, invType.StockSign(), inputStockLines(input.Items)); err != nil {
			return err
		}
		if err := s.ledger.Apply(ctx, tx, input.PartyID, totals.Balance, invType == enums.InvoiceTypeSale); err != nil {
			return err
		}

		updated := assembleInvoice(old, invType, input, totals, date, s.ratesFor(input))
		if err := repo.Save(ctx, updated); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist invoice")
		}
		return nil
	})

	s.metrics.Observe("invoice", "update", err)
	if err != nil {
		return nil, asTyped(err, "update invoice")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		s.metrics.IncFailure("invoice", "delete")
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := s.stock.Apply(ctx, tx, -old.Type.StockSign(), modelStockLines(old.Items)); err != nil {
			return err
		}
		if err := s.ledger.Apply(ctx, tx, old.PartyID, old.Balance, old.Type != enums.InvoiceTypeSale); err != nil {
			return err
		}
		if err := repo.DeleteItems(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice items")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice")
		}
		return nil
	})

	s.metrics.Observe("invoice", "delete", err)
	return asTyped(err, "delete invoice")
}

func validateInput(input CreateInvoiceInput) (enums.InvoiceType, error) {
	invType, err := enums.ParseInvoiceType(input.Type)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invoice type must be sale or purchase")
	}
	if input.PartyID == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "party id is required")
	}
	if len(input.Items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "at least one line item is required")
	}
	for _, line := range input.Items {
		if line.Quantity < 0 || line.Rate < 0 {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "line quantity and rate must be zero or positive")
		}
	}
	return invType, nil
}

func (s *service) ratesFor(input CreateInvoiceInput) money.TaxRates {
	rates := s.defaults
	if input.CGSTRate != nil {
		rates.CGST = *input.CGSTRate
	}
	if input.SGSTRate != nil {
		rates.SGST = *input.SGSTRate
	}
	if input.IGSTRate != nil {
		rates.IGST = *input.IGSTRate
	}
	return rates
}

func assembleInvoice(
	base *models.Invoice,
	invType enums.InvoiceType,
	input CreateInvoiceInput,
	totals money.Totals,
	date time.Time,
	rates money.TaxRates,
) *models.Invoice {
	base.Type = invType
	base.PartyID = input.PartyID
	base.Date = date
	base.SiteName = input.SiteName
	base.Particular = input.Particular
	base.SubTotal = totals.SubTotal
	base.CGSTRate = rates.CGST
	base.CGSTAmount = totals.CGSTAmount
	base.SGSTRate = rates.SGST
	base.SGSTAmount = totals.SGSTAmount
	base.IGSTRate = rates.IGST
	base.IGSTAmount = totals.IGSTAmount
	base.TaxTotal = totals.TaxTotal
	base.Discount = totals.Discount
	base.RoundOff = totals.RoundOff
	base.GrandTotal = totals.GrandTotal
	base.AmountInWords = money.AmountInWords(totals.GrandTotal)
	base.PaidAmount = totals.PaidAmount
	base.Balance = totals.Balance
	base.Status = enums.DeriveInvoiceStatus(totals.GrandTotal, totals.PaidAmount)
	base.Party = nil
	base.Items = nil
	return base
}

func buildItems(invoiceID uint, lines []LineItemInput, totals []money.LineTotal) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(lines))
	for i, line := range lines {
		items = append(items, models.InvoiceItem{
			InvoiceID:   invoiceID,
			ItemID:      line.ItemID,
			Description: line.Description,
			Quantity:    line.Quantity,
			Rate:        line.Rate,
			TaxRate:     totals[i].EffectiveRate,
			Amount:      totals[i].Amount,
			TaxAmount:   totals[i].TaxAmount,
			Total:       totals[i].Total,
		})
	}
	return items
}

func toLineInputs(lines []LineItemInput) []money.LineInput {
	inputs := make([]money.LineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, money.LineInput{
			Quantity: line.Quantity,
			Rate:     line.Rate,
			TaxRate:  line.TaxRate,
		})
	}
	return inputs
}

func inputStockLines(lines []LineItemInput) []stock.Line {
	out := make([]stock.Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, stock.Line{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	return out
}

func modelStockLines(items []models.InvoiceItem) []stock.Line {
	out := make([]stock.Line, 0, len(items))
	for _, item := range items {
		out = append(out, stock.Line{ItemID: item.ItemID, Quantity: item.Quantity})
	}
	return out
}

func asTyped(err error, op string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
