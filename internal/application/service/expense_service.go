package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/domain/repository"
	domainsvc "github.com/gfranzini/expense-rate-service/internal/domain/service"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/google/uuid"
)

// ConvertedExpense pairs an expense with its value in a requested currency.
type ConvertedExpense struct {
	Expense   *entity.Expense          `json:"expense"`
	Converted *entity.ConversionResult `json:"converted"`
}

// ExpenseUpdate carries the fields of a partial update; nil means "leave
// unchanged".
type ExpenseUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	Amount      *float64
	Currency    *string
}

// ExpenseService handles business logic for expenses
type ExpenseService struct {
	repo      repository.ExpenseRepository
	converter domainsvc.CurrencyConverter
	logger    logger.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.ExpenseRepository, converter domainsvc.CurrencyConverter, log logger.Logger) *ExpenseService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExpenseService{
		repo:      repo,
		converter: converter,
		logger:    log,
	}
}

// CreateExpense creates and stores a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, title, description string, date time.Time, amount float64, currency string) (string, error) {
	now := time.Now().UTC()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Date:        date,
		Amount:      round2(amount),
		Currency:    strings.ToUpper(currency),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := expense.Validate(); err != nil {
		return "", err
	}

	return s.repo.Store(ctx, expense)
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id string) (*entity.Expense, error) {
	return s.repo.FindByID(ctx, id)
}

// ListExpenses retrieves every expense, newest first
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]*entity.Expense, error) {
	return s.repo.FindAll(ctx)
}

// GetExpenseConverted retrieves an expense together with its value in the
// requested currency.
func (s *ExpenseService) GetExpenseConverted(ctx context.Context, id, currency string) (*ConvertedExpense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.converter.Convert(ctx, expense.Amount, expense.Currency, strings.ToUpper(currency), expense.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to convert expense %s: %w", id, err)
	}

	return &ConvertedExpense{Expense: expense, Converted: result}, nil
}

// ListExpensesConverted retrieves every expense with its value in the
// requested currency. A conversion failure for any expense fails the whole
// listing; no partial fallback conversion is attempted.
func (s *ExpenseService) ListExpensesConverted(ctx context.Context, currency string) ([]*ConvertedExpense, error) {
	expenses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	target := strings.ToUpper(currency)
	converted := make([]*ConvertedExpense, 0, len(expenses))
	for _, expense := range expenses {
		result, err := s.converter.Convert(ctx, expense.Amount, expense.Currency, target, expense.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to convert expense %s: %w", expense.ID, err)
		}
		converted = append(converted, &ConvertedExpense{Expense: expense, Converted: result})
	}

	return converted, nil
}

// UpdateExpense applies a partial update to an existing expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, update ExpenseUpdate) (*entity.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		expense.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		expense.Description = strings.TrimSpace(*update.Description)
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}
	if update.Amount != nil {
		expense.Amount = round2(*update.Amount)
	}
	if update.Currency != nil {
		expense.Currency = strings.ToUpper(*update.Currency)
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense removes an expense by ID
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
