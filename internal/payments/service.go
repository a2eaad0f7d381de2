// Package payments records party payments and settles them against the
// ledger and any linked invoice. Like invoices, every mutation runs as one
// transaction and updates always revert the previous effects first.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"github.com/bizbookhq/bizbook-backend/pkg/enums"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/bizbookhq/bizbook-backend/pkg/metrics"
	"gorm.io/gorm"
)

const defaultMode = "cash"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ledgerUpdater interface {
	Apply(ctx context.Context, tx *gorm.DB, partyID uint, delta float64, increase bool) error
}

// CreatePaymentInput carries the fields for a new or replaced payment.
type CreatePaymentInput struct {
	Type      string
	PartyID   uint
	Amount    float64
	Date      *time.Time
	Mode      string
	Note      string
	InvoiceID *uint
}

// Service defines payment lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error)
	Get(ctx context.Context, id uint) (*models.Payment, error)
	List(ctx context.Context, filters ListFilters) ([]models.Payment, error)
	Update(ctx context.Context, id uint, input CreatePaymentInput) (*models.Payment, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo    Repository
	tx      txRunner
	ledger  ledgerUpdater
	metrics *metrics.MutationMetrics
}

// NewService builds a payment service. Metrics may be nil.
func NewService(repo Repository, tx txRunner, ledgerUpd ledgerUpdater, m *metrics.MutationMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledgerUpd == nil {
		return nil, fmt.Errorf("ledger updater required")
	}
	return &service{repo: repo, tx: tx, ledger: ledgerUpd, metrics: m}, nil
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	direction, err := s.validate(ctx, input)
	if err != nil {
		s.metrics.IncFailure("payment", "create")
		return nil, err
	}

	var created *models.Payment
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		payment := buildPayment(&models.Payment{}, direction, input)
		if err := repo.Create(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert payment")
		}

		if err := s.ledger.Apply(ctx, tx, input.PartyID, input.Amount, direction.IncreasesBalance()); err != nil {
			return err
		}
		if err := s.settleInvoice(ctx, repo, input.InvoiceID, input.Amount); err != nil {
			return err
		}

		created = payment
		return nil
	})

	s.metrics.Observe("payment", "create", err)
	if err != nil {
		return nil, asTyped(err, "create payment")
	}
	return s.Get(ctx, created.ID)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Payment, error) {
	payments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return payments, nil
}

func (s *service) Update(ctx context.Context, id uint, input CreatePaymentInput) (*models.Payment, error) {
	direction, err := s.validate(ctx, input)
	if err != nil {
		s.metrics.IncFailure("payment", "update")
		return nil, err
	}

	old, err := s.Get(ctx, id)
	if err != nil {
		s.metrics.IncFailure("payment", "update")
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Undo the old payment's ledger and invoice effects, then apply the
		// new values from scratch. The old and new party or invoice may
		// differ, so each side is handled independently.
		if err := s.ledger.Apply(ctx, tx, old.PartyID, old.Amount, !old.Type.IncreasesBalance()); err != nil {
			return err
		}
		if err := s.unsettleInvoice(ctx, repo, old.InvoiceID, old.Amount, false); err != nil {
			return err
		}

		if err := s.ledger.Apply(ctx, tx, input.PartyID, input.Amount, direction.IncreasesBalance()); err != nil {
			return err
		}
		if err := s.settleInvoice(ctx, repo, input.InvoiceID, input.Amount); err != nil {
			return err
		}

		updated := buildPayment(old, direction, input)
		if err := repo.Save(ctx, updated); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist payment")
		}
		return nil
	})

	s.metrics.Observe("payment", "update", err)
	if err != nil {
		return nil, asTyped(err, "update payment")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		s.metrics.IncFailure("payment", "delete")
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := s.ledger.Apply(ctx, tx, old.PartyID, old.Amount, !old.Type.IncreasesBalance()); err != nil {
			return err
		}
		if err := s.unsettleInvoice(ctx, repo, old.InvoiceID, old.Amount, true); err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment")
		}
		return nil
	})

	s.metrics.Observe("payment", "delete", err)
	return asTyped(err, "delete payment")
}

func (s *service) validate(ctx context.Context, input CreatePaymentInput) (enums.PaymentDirection, error) {
	direction, err := enums.ParsePaymentDirection(input.Type)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "payment type must be in or out")
	}
	if input.PartyID == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "party id is required")
	}
	if input.Amount <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}

	exists, err := s.repo.PartyExists(ctx, input.PartyID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check party")
	}
	if !exists {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "party not found")
	}
	return direction, nil
}

// settleInvoice records amount against the linked invoice. A payment with
// no invoice, or one pointing at a deleted invoice, settles nothing.
func (s *service) settleInvoice(ctx context.Context, repo Repository, invoiceID *uint, amount float64) error {
	if invoiceID == nil {
		return nil
	}
	invoice, err := repo.FindInvoice(ctx, *invoiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load linked invoice")
	}

	paid := invoice.PaidAmount + amount
	outstanding := invoice.GrandTotal - paid
	balance := outstanding
	if balance < 0 {
		balance = 0
	}
	status := enums.InvoiceStatusPartial
	if outstanding <= 0 {
		status = enums.InvoiceStatusPaid
	}
	return repo.SaveInvoiceSettlement(ctx, invoice.ID, paid, balance, status)
}

// unsettleInvoice removes amount from the linked invoice. Deleting a
// payment leaves the invoice marked partial rather than recomputing the
// status; editing leaves the status for the follow-up settle call.
func (s *service) unsettleInvoice(ctx context.Context, repo Repository, invoiceID *uint, amount float64, markPartial bool) error {
	if invoiceID == nil {
		return nil
	}
	invoice, err := repo.FindInvoice(ctx, *invoiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load linked invoice")
	}

	paid := invoice.PaidAmount - amount
	if paid < 0 {
		paid = 0
	}
	balance := invoice.GrandTotal - paid

	if markPartial {
		return repo.SaveInvoiceSettlement(ctx, invoice.ID, paid, balance, enums.InvoiceStatusPartial)
	}
	return repo.SaveInvoicePaid(ctx, invoice.ID, paid, balance)
}

func buildPayment(base *models.Payment, direction enums.PaymentDirection, input CreatePaymentInput) *models.Payment {
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}
	mode := strings.TrimSpace(input.Mode)
	if mode == "" {
		mode = defaultMode
	}

	base.Type = direction
	base.PartyID = input.PartyID
	base.Amount = input.Amount
	base.Date = date
	base.Mode = mode
	base.Note = input.Note
	base.InvoiceID = input.InvoiceID
	base.Party = nil
	base.Invoice = nil
	return base
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
