package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
	portssvc "github.com/psanthosh/simple_bank_system/internal/core/ports/services"
	"github.com/psanthosh/simple_bank_system/internal/core/services"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.LedgerSvcFacade
	account         domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockTxnRepo)

	suite.account = domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: 1,
		Name:          "Checking",
		Balance:       decimal.NewFromInt(70),
		Version:       3,
	}
}

func (suite *LedgerServiceTestSuite) entries() []domain.Transaction {
	id := suite.account.AccountID
	other := uuid.NewString()
	now := time.Now().UTC()
	return []domain.Transaction{
		{TransactionID: 3, CreditAccountID: &id, DebitAccountID: &other, Amount: decimal.NewFromInt(30), CreatedAt: now},
		{TransactionID: 2, CreditAccountID: &id, Amount: decimal.NewFromInt(50), CreatedAt: now.Add(-time.Minute)},
		{TransactionID: 1, DebitAccountID: &id, Amount: decimal.NewFromInt(150), CreatedAt: now.Add(-time.Hour)},
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestBalanceOf_SumsDebitsMinusCredits() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, suite.account.AccountID).Return(suite.entries(), nil).Once()

	balance, err := suite.service.BalanceOf(ctx, suite.account.AccountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(70)), "got %s", balance)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestBalanceOf_UnknownAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.BalanceOf(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionsByAccountID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestHistoryOf_ReturnsRepositoryOrder() {
	ctx := context.Background()
	entries := suite.entries()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, suite.account.AccountID).Return(entries, nil).Once()

	history, err := suite.service.HistoryOf(ctx, suite.account.AccountID)

	suite.Require().NoError(err)
	suite.Require().Len(history, 3)
	suite.Equal(int64(3), history[0].TransactionID)
	suite.Equal(int64(1), history[2].TransactionID)
}

func (suite *LedgerServiceTestSuite) TestVerifyBalance_Match() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Twice()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, suite.account.AccountID).Return(suite.entries(), nil).Once()

	suite.NoError(suite.service.VerifyBalance(ctx, suite.account.AccountID))
}

func (suite *LedgerServiceTestSuite) TestVerifyBalance_Mismatch() {
	ctx := context.Background()
	drifted := suite.account
	drifted.Balance = decimal.NewFromInt(71)
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&drifted, nil).Twice()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, suite.account.AccountID).Return(suite.entries(), nil).Once()

	err := suite.service.VerifyBalance(ctx, suite.account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBalanceMismatch)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
