package parties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bizbookhq/bizbook-backend/pkg/db/models"
	"github.com/bizbookhq/bizbook-backend/pkg/enums"
	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines party ledger account operations.
type Service interface {
	Create(ctx context.Context, input CreatePartyInput) (*models.Party, error)
	Get(ctx context.Context, id uint) (*models.Party, error)
	List(ctx context.Context) ([]models.Party, error)
	Update(ctx context.Context, id uint, input UpdatePartyInput) (*models.Party, error)
	Delete(ctx context.Context, id uint) error
}

// CreatePartyInput carries the fields accepted when creating a party.
// CurrentBalance defaults to OpeningBalance when nil.
type CreatePartyInput struct {
	Name           string
	Type           string
	Contact        *string
	Address        *string
	GSTIN          *string
	OpeningBalance float64
	CurrentBalance *float64
}

// UpdatePartyInput carries optional fields for partial party updates.
type UpdatePartyInput struct {
	Name           *string
	Type           *string
	Contact        *string
	Address        *string
	GSTIN          *string
	OpeningBalance *float64
	CurrentBalance *float64
}

type service struct {
	repo Repository
}

// NewService wires a party service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("parties repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreatePartyInput) (*models.Party, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "party name is required")
	}
	partyType, err := enums.ParsePartyType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "party type must be customer or supplier")
	}

	currentBalance := input.OpeningBalance
	if input.CurrentBalance != nil {
		currentBalance = *input.CurrentBalance
	}

	party := &models.Party{
		Name:           name,
		Type:           partyType,
		Contact:        input.Contact,
		Address:        input.Address,
		GSTIN:          input.GSTIN,
		OpeningBalance: input.OpeningBalance,
		CurrentBalance: currentBalance,
	}

	if err := s.repo.Create(ctx, party); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create party")
	}
	return party, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Party, error) {
	party, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "party not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load party")
	}
	return party, nil
}

func (s *service) List(ctx context.Context) ([]models.Party, error) {
	parties, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list parties")
	}
	return parties, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdatePartyInput) (*models.Party, error) {
	party, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "party name cannot be empty")
		}
		party.Name = name
	}
	if input.Type != nil {
		partyType, err := enums.ParsePartyType(*input.Type)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "party type must be customer or supplier")
		}
		party.Type = partyType
	}
	if input.Contact != nil {
		party.Contact = input.Contact
	}
	if input.Address != nil {
		party.Address = input.Address
	}
	if input.GSTIN != nil {
		party.GSTIN = input.GSTIN
	}
	if input.OpeningBalance != nil {
		party.OpeningBalance = *input.OpeningBalance
	}
	if input.CurrentBalance != nil {
		party.CurrentBalance = *input.CurrentBalance
	}

	if err := s.repo.Save(ctx, party); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update party")
	}
	return party, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	invoiceRefs, err := s.repo.CountInvoiceRefs(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check invoice references")
	}
	paymentRefs, err := s.repo.CountPaymentRefs(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check payment references")
	}
	if invoiceRefs > 0 || paymentRefs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "party has invoices or payments and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete party")
	}
	return nil
}
