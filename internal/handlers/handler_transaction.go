package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psanthosh/simple_bank_system/internal/apperrors"
	"github.com/psanthosh/simple_bank_system/internal/core/domain"
	portssvc "github.com/psanthosh/simple_bank_system/internal/core/ports/services"
	"github.com/psanthosh/simple_bank_system/internal/dto"
	"github.com/psanthosh/simple_bank_system/internal/middleware"
)

// transactionHandler handles HTTP requests that move money.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	accountService     portssvc.AccountSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, as portssvc.AccountSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		accountService:     as,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newTransactionHandler(transactionService, accountService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/deposit", h.deposit)
		transactions.POST("/withdraw", h.withdraw)
		transactions.POST("/transfer", h.transfer)
	}
}

// deposit godoc
// @Summary Deposit into an account
// @Description Appends a deposit entry to the ledger and credits the account balance
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 200 {object} dto.TransactionResult
// @Failure 400 {object} dto.TransactionResult "Invalid amount or account"
// @Router /transactions/deposit [post]
func (h *transactionHandler) deposit(c *gin.Context) {
	var body dto.DepositRequest
	if err := h.bind(c, &body); err != nil {
		return
	}

	h.execute(c, dto.TransactionRequest{
		Type:           domain.Deposit,
		Amount:         body.Amount,
		DebitAccountID: body.AccountID,
		Remarks:        body.Remarks,
	})
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Appends a withdrawal entry to the ledger and debits the account balance
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 200 {object} dto.TransactionResult
// @Failure 409 {object} dto.TransactionResult "Insufficient balance"
// @Router /transactions/withdraw [post]
func (h *transactionHandler) withdraw(c *gin.Context) {
	var body dto.WithdrawRequest
	if err := h.bind(c, &body); err != nil {
		return
	}

	h.execute(c, dto.TransactionRequest{
		Type:            domain.Withdraw,
		Amount:          body.Amount,
		CreditAccountID: body.AccountID,
		Remarks:         body.Remarks,
	})
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Moves money from one account to another as a single ledger entry. The destination is addressed by account number.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransactionResult
// @Failure 404 {object} dto.TransactionResult "Unknown destination account number"
// @Failure 409 {object} dto.TransactionResult "Insufficient balance"
// @Router /transactions/transfer [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var body dto.TransferRequest
	if err := h.bind(c, &body); err != nil {
		return
	}

	req := dto.TransactionRequest{
		Type:            domain.Transfer,
		Amount:          body.Amount,
		CreditAccountID: body.FromAccountID,
		Remarks:         body.Remarks,
	}

	// Callers address the destination by its account number.
	destination, err := h.accountService.GetAccountByNumber(c.Request.Context(), body.ToAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewTransactionResult(req, nil, apperrors.ErrInvalidAccount))
		} else {
			logger.Error("Failed to resolve destination account", slog.Int64("account_number", body.ToAccountNumber), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewTransactionResult(req, nil, err))
		}
		return
	}
	req.DebitAccountID = destination.AccountID

	h.execute(c, req)
}

// bind decodes and validates the JSON body, replying 400 on failure.
func (h *transactionHandler) bind(c *gin.Context, body any) error {
	if err := c.ShouldBindJSON(body); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return err
	}
	return nil
}

// execute runs the engine and writes the displayable result with a status
// matching the outcome.
func (h *transactionHandler) execute(c *gin.Context, req dto.TransactionRequest) {
	txn, err := h.transactionService.Execute(c.Request.Context(), req)
	result := dto.NewTransactionResult(req, txn, err)
	c.JSON(statusForTransactionError(err), result)
}

// statusForTransactionError maps engine errors onto HTTP statuses. Retryable
// conflicts get 409, a lock wait that timed out gets 503.
func statusForTransactionError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrSameAccount),
		errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidAccount),
		errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
