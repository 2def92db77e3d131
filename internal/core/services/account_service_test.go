package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	portssvc "github.com/psanthosh/simple_bank_system/internal/core/ports/services"
	"github.com/psanthosh/simple_bank_system/internal/core/services"
	"github.com/psanthosh/simple_bank_system/internal/dto"
	"github.com/psanthosh/simple_bank_system/internal/repositories/database/memory"
)

type AccountServiceTestSuite struct {
	suite.Suite
	service portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.service = services.NewAccountService(memory.NewStore())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Alice"})

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(int64(1), account.AccountNumber)
	suite.True(account.Balance.IsZero())
	suite.Equal(int64(1), account.Version)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_AssignsSequentialNumbers() {
	ctx := context.Background()

	first, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "First"})
	suite.Require().NoError(err)
	second, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Second"})
	suite.Require().NoError(err)

	suite.Equal(first.AccountNumber+1, second.AccountNumber)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_EmptyName() {
	_, err := suite.service.CreateAccount(context.Background(), dto.CreateAccountRequest{Name: "   "})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateName() {
	ctx := context.Background()
	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Alice"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Alice"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestGetAccountByNumber() {
	ctx := context.Background()
	created, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Alice"})
	suite.Require().NoError(err)

	found, err := suite.service.GetAccountByNumber(ctx, created.AccountNumber)
	suite.Require().NoError(err)
	suite.Equal(created.AccountID, found.AccountID)

	_, err = suite.service.GetAccountByNumber(ctx, created.AccountNumber+100)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_OrderedByName() {
	ctx := context.Background()
	for _, name := range []string{"Carol", "Alice", "Bob"} {
		_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: name})
		suite.Require().NoError(err)
	}

	accounts, err := suite.service.ListAccounts(ctx, 2, 0)
	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2)
	suite.Equal("Alice", accounts[0].Name)
	suite.Equal("Bob", accounts[1].Name)

	rest, err := suite.service.ListAccounts(ctx, 2, 2)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1)
	suite.Equal("Carol", rest[0].Name)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
