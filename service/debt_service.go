package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"debtledger-backend/models"
	"debtledger-backend/repository"
	"debtledger-backend/storage"
	"debtledger-backend/validation"

	"github.com/google/uuid"
)

// ErrDebtNotFound is returned when a delete targets an unknown id
var ErrDebtNotFound = errors.New("debt not found")

// attachmentPrefix is the public path prefix a stored attachment is
// referenced under in a DebtRecord
const attachmentPrefix = "/uploads/"

// StagedFile describes an upload the transport layer already wrote to
// storage before validation ran. It is unlinked until the record
// referencing it is committed.
type StagedFile struct {
	Name string // stored name inside the upload area
}

// DebtService orchestrates validation, attachment staging and record
// persistence. It owns the compensating cleanup: a staged file is removed
// whenever validation rejects the payload it arrived with.
type DebtService struct {
	repo    *repository.DebtRepository
	storage storage.Storage
	logger  *log.Logger
}

// DebtServiceOption is a functional option for DebtService
type DebtServiceOption func(*DebtService)

// WithDebtRepository sets the debt repository
func WithDebtRepository(repo *repository.DebtRepository) DebtServiceOption {
	return func(s *DebtService) {
		s.repo = repo
	}
}

// WithStorage sets the attachment storage
func WithStorage(st storage.Storage) DebtServiceOption {
	return func(s *DebtService) {
		s.storage = st
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) DebtServiceOption {
	return func(s *DebtService) {
		s.logger = logger
	}
}

// NewDebtService creates a new debt service
func NewDebtService(opts ...DebtServiceOption) *DebtService {
	s := &DebtService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// ListDebtsResult represents the result of listing debts
type ListDebtsResult struct {
	Debts []models.DebtRecord
}

// ListDebts returns the persisted collection verbatim
func (s *DebtService) ListDebts(ctx context.Context) (*ListDebtsResult, error) {
	if s.repo == nil {
		return nil, errors.New("debt repository not set")
	}

	return &ListDebtsResult{Debts: s.repo.Load()}, nil
}

// CreateDebtRequest represents a request to create a debt
type CreateDebtRequest struct {
	// Payload is the raw JSON from the multipart "data" field
	Payload []byte
	// Staged is the already-written upload, if the request carried one
	Staged *StagedFile
}

// CreateDebtResult represents the result of creating a debt. When
// ValidationErrors is non-empty no record was created and Debt is nil.
type CreateDebtResult struct {
	Debt             *models.DebtRecord
	ValidationErrors []string
}

// CreateDebt validates the payload and commits the canonical record.
// On rejection the staged file, if any, is deleted before returning.
// A store write failure after validation passed is returned as an error;
// the staged file is intentionally left in place (documented orphan).
func (s *DebtService) CreateDebt(ctx context.Context, req CreateDebtRequest) (*CreateDebtResult, error) {
	if s.repo == nil {
		return nil, errors.New("debt repository not set")
	}

	var input models.DebtInput
	if err := json.Unmarshal(req.Payload, &input); err != nil {
		s.discardStaged(ctx, req.Staged)
		return &CreateDebtResult{
			ValidationErrors: []string{"Request payload must be valid JSON."},
		}, nil
	}

	if errs := validation.Validate(&input); len(errs) > 0 {
		s.discardStaged(ctx, req.Staged)
		return &CreateDebtResult{ValidationErrors: errs}, nil
	}

	amount, _ := models.AmountValue(input.Amount)
	record := models.DebtRecord{
		ID: uuid.New().String(),
		Debtor: models.Debtor{
			Name:    strings.TrimSpace(input.Debtor.Name),
			TaxID:   strings.TrimSpace(input.Debtor.TaxID),
			Email:   strings.TrimSpace(input.Debtor.Email),
			Address: input.Debtor.NormalizedAddress(),
		},
		Amount:      amount,
		Description: strings.TrimSpace(input.Description),
		Status:      models.DebtStatus(input.Status),
		CaseNumber:  input.CaseNumber,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Staged != nil {
		// store-then-link: the file is already on storage, the record
		// referencing it is written now
		attachmentPath := attachmentPrefix + req.Staged.Name
		record.AttachmentPath = &attachmentPath
	}

	err := s.repo.Mutate(func(records []models.DebtRecord) ([]models.DebtRecord, error) {
		return append(records, record), nil
	})
	if err != nil {
		if req.Staged != nil {
			s.logger.Printf("create debt %s: store write failed, staged file %s left in place: %v",
				record.ID, req.Staged.Name, err)
		}
		return nil, fmt.Errorf("failed to persist debt record: %w", err)
	}

	return &CreateDebtResult{Debt: &record}, nil
}

// DeleteDebtRequest represents a request to delete a debt
type DeleteDebtRequest struct {
	ID string
}

// DeleteDebtResult represents the result of deleting a debt
type DeleteDebtResult struct {
	Debt *models.DebtRecord
}

// DeleteDebt removes the record with the given id, then best-effort
// deletes its attachment. An attachment delete failure is logged and
// never changes the already-successful outcome. Unknown ids return
// ErrDebtNotFound with no mutation.
func (s *DebtService) DeleteDebt(ctx context.Context, req DeleteDebtRequest) (*DeleteDebtResult, error) {
	if s.repo == nil {
		return nil, errors.New("debt repository not set")
	}

	var removed *models.DebtRecord
	err := s.repo.Mutate(func(records []models.DebtRecord) ([]models.DebtRecord, error) {
		for i := range records {
			if records[i].ID == req.ID {
				record := records[i]
				removed = &record
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, ErrDebtNotFound
	})
	if err != nil {
		if errors.Is(err, ErrDebtNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete debt record: %w", err)
	}

	if removed.AttachmentPath != nil && s.storage != nil {
		name := path.Base(*removed.AttachmentPath)
		if err := s.storage.Delete(ctx, name); err != nil {
			s.logger.Printf("delete debt %s: removing attachment %s: %v", req.ID, name, err)
		}
	}

	return &DeleteDebtResult{Debt: removed}, nil
}

func (s *DebtService) discardStaged(ctx context.Context, staged *StagedFile) {
	if staged == nil || s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, staged.Name); err != nil {
		s.logger.Printf("discarding staged file %s: %v", staged.Name, err)
	}
}
