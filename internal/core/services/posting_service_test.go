package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clearledger/payroll_ledger_app/internal/apperrors"
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	portsrepo "github.com/clearledger/payroll_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/clearledger/payroll_ledger_app/internal/core/ports/services"
	"github.com/clearledger/payroll_ledger_app/internal/core/services"
)

// --- Mock PayrollRecordRepository ---
type MockPayrollRecordRepository struct {
	mock.Mock
}

var _ portsrepo.PayrollRecordRepository = (*MockPayrollRecordRepository)(nil)

func (m *MockPayrollRecordRepository) SavePayrollRecord(ctx context.Context, record domain.PayrollRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPayrollRecordRepository) FindPayrollRecordByID(ctx context.Context, recordID string) (*domain.PayrollRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRecord), args.Error(1)
}

func (m *MockPayrollRecordRepository) FindPayrollRecordsByBatchID(ctx context.Context, batchID string) ([]domain.PayrollRecord, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRecord), args.Error(1)
}

func (m *MockPayrollRecordRepository) UpdatePayrollRecord(ctx context.Context, record domain.PayrollRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock PayrollBatchRepository ---
type MockPayrollBatchRepository struct {
	mock.Mock
}

var _ portsrepo.PayrollBatchRepository = (*MockPayrollBatchRepository)(nil)

func (m *MockPayrollBatchRepository) SavePayrollBatch(ctx context.Context, batch domain.PayrollBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockPayrollBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.PayrollBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollBatch), args.Error(1)
}

func (m *MockPayrollBatchRepository) FindOpenBatchByPeriod(ctx context.Context, period string) (*domain.PayrollBatch, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollBatch), args.Error(1)
}

func (m *MockPayrollBatchRepository) UpdatePayrollBatch(ctx context.Context, batch domain.PayrollBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepository = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem) error {
	args := m.Called(ctx, entry, items)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindEntryByBatchAndReference(ctx context.Context, batchID string, reference string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, batchID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryItem), args.Error(1)
}

func (m *MockJournalEntryRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem) error {
	args := m.Called(ctx, entry, items)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) CountEntriesByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalEntryRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

// --- Mock CashTransactionRepository ---
type MockCashTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.CashTransactionRepository = (*MockCashTransactionRepository)(nil)

func (m *MockCashTransactionRepository) SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockCashTransactionRepository) FindTransactionByBatchID(ctx context.Context, batchID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashTransactionRepository) UpdateCashTransaction(ctx context.Context, txn domain.CashTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Mock AccountConfigRepository ---
type MockAccountConfigRepository struct {
	mock.Mock
}

var _ portsrepo.AccountConfigRepository = (*MockAccountConfigRepository)(nil)

func (m *MockAccountConfigRepository) FindConfigByEmployeeID(ctx context.Context, employeeID string) (*domain.PayrollAccountConfig, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollAccountConfig), args.Error(1)
}

func (m *MockAccountConfigRepository) FindConfigsByEmployeeIDs(ctx context.Context, employeeIDs []string) (map[string]domain.PayrollAccountConfig, error) {
	args := m.Called(ctx, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PayrollAccountConfig), args.Error(1)
}

func (m *MockAccountConfigRepository) UpsertConfig(ctx context.Context, config domain.PayrollAccountConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// passthroughTxManager runs the callback directly; transactional semantics are
// covered by the repository integration layer, not these unit tests.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo     *MockJournalEntryRepository
	mockPayrollRepo     *MockPayrollRecordRepository
	mockBatchRepo       *MockPayrollBatchRepository
	mockTransactionRepo *MockCashTransactionRepository
	mockConfigRepo      *MockAccountConfigRepository
	service             portssvc.PostingSvcFacade

	batch      domain.PayrollBatch
	config     domain.PayrollAccountConfig
	employeeID string
	actorID    string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalEntryRepository)
	suite.mockPayrollRepo = new(MockPayrollRecordRepository)
	suite.mockBatchRepo = new(MockPayrollBatchRepository)
	suite.mockTransactionRepo = new(MockCashTransactionRepository)
	suite.mockConfigRepo = new(MockAccountConfigRepository)
	suite.service = services.NewPostingService(
		suite.mockJournalRepo,
		suite.mockPayrollRepo,
		suite.mockBatchRepo,
		suite.mockTransactionRepo,
		suite.mockConfigRepo,
		"USD",
	)

	suite.employeeID = uuid.NewString()
	suite.actorID = uuid.NewString()

	suite.batch = domain.PayrollBatch{
		BatchID: uuid.NewString(),
		Period:  "2024-05",
		Status:  domain.BatchPending,
	}

	deductionAccount := "acc-deductions"
	cashAccount := "acc-cash"
	suite.config = domain.PayrollAccountConfig{
		ConfigID:           uuid.NewString(),
		EmployeeID:         suite.employeeID,
		ExpenseAccountID:   "acc-expense",
		PayableAccountID:   "acc-payable",
		DeductionAccountID: &deductionAccount,
		CashAccountID:      &cashAccount,
	}
}

func (suite *PostingServiceTestSuite) approvedRecord(basic, allowances, deductions, net int64) domain.PayrollRecord {
	return domain.PayrollRecord{
		RecordID:    uuid.NewString(),
		EmployeeID:  suite.employeeID,
		Period:      suite.batch.Period,
		BasicSalary: decimal.NewFromInt(basic),
		Allowances:  decimal.NewFromInt(allowances),
		Deductions:  decimal.NewFromInt(deductions),
		NetSalary:   decimal.NewFromInt(net),
		Status:      domain.PayrollApproved,
		BatchID:     &suite.batch.BatchID,
	}
}

func (suite *PostingServiceTestSuite) expectBatchAndRecords(records []domain.PayrollRecord) {
	suite.mockBatchRepo.On("FindBatchByID", mock.Anything, suite.batch.BatchID).Return(&suite.batch, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollRecordsByBatchID", mock.Anything, suite.batch.BatchID).Return(records, nil).Once()
}

// --- Accrual posting ---

func (suite *PostingServiceTestSuite) TestPostPayrollAccrual_Success() {
	ctx := context.Background()
	// Gross 5200, deductions 150, net 5050
	record := suite.approvedRecord(5000, 200, 150, 5050)
	suite.expectBatchAndRecords([]domain.PayrollRecord{record})

	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID}).
		Return(map[string]domain.PayrollAccountConfig{suite.employeeID: suite.config}, nil).Once()
	suite.mockJournalRepo.On("FindEntryByBatchAndReference", mock.Anything, suite.batch.BatchID, "PAYROLL:2024-05:ACCRUAL").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("CountEntriesByNumberPrefix", mock.Anything, "PAY").Return(int64(0), nil).Once()

	var savedEntry domain.JournalEntry
	var savedItems []domain.JournalEntryItem
	suite.mockJournalRepo.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryItem")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
			savedItems = args.Get(2).([]domain.JournalEntryItem)
		}).Return(nil).Once()

	result, err := suite.service.PostPayrollAccrual(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("PAY-000001", savedEntry.EntryNumber)
	suite.Equal("PAYROLL:2024-05:ACCRUAL", savedEntry.Reference)
	suite.True(decimal.NewFromInt(5200).Equal(result.Totals.TotalDebit))
	suite.True(decimal.NewFromInt(5200).Equal(result.Totals.TotalCredit))
	suite.Equal(1, result.Totals.RecordCount)

	suite.Require().Len(savedItems, 3)
	suite.Equal("acc-expense", savedItems[0].AccountID)
	suite.True(decimal.NewFromInt(5200).Equal(savedItems[0].Debit))
	suite.Equal("acc-payable", savedItems[1].AccountID)
	suite.True(decimal.NewFromInt(5050).Equal(savedItems[1].Credit))
	suite.Equal("acc-deductions", savedItems[2].AccountID)
	suite.True(decimal.NewFromInt(150).Equal(savedItems[2].Credit))

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostPayrollAccrual_AggregatesSharedAccounts() {
	ctx := context.Background()
	// Two employees mapped to the same accounts: expense lines must fold.
	otherEmployee := uuid.NewString()
	recordA := suite.approvedRecord(1000, 0, 0, 1000)
	recordB := domain.PayrollRecord{
		RecordID:    uuid.NewString(),
		EmployeeID:  otherEmployee,
		Period:      suite.batch.Period,
		BasicSalary: decimal.NewFromInt(2000),
		NetSalary:   decimal.NewFromInt(2000),
		Status:      domain.PayrollApproved,
		BatchID:     &suite.batch.BatchID,
	}
	suite.expectBatchAndRecords([]domain.PayrollRecord{recordA, recordB})

	sharedConfig := suite.config
	sharedConfig.EmployeeID = otherEmployee
	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID, otherEmployee}).
		Return(map[string]domain.PayrollAccountConfig{
			suite.employeeID: suite.config,
			otherEmployee:    sharedConfig,
		}, nil).Once()
	suite.mockJournalRepo.On("FindEntryByBatchAndReference", mock.Anything, suite.batch.BatchID, "PAYROLL:2024-05:ACCRUAL").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("CountEntriesByNumberPrefix", mock.Anything, "PAY").Return(int64(0), nil).Once()

	var savedItems []domain.JournalEntryItem
	suite.mockJournalRepo.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryItem")).
		Run(func(args mock.Arguments) {
			savedItems = args.Get(2).([]domain.JournalEntryItem)
		}).Return(nil).Once()

	result, err := suite.service.PostPayrollAccrual(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Totals.RecordCount)
	suite.Require().Len(savedItems, 2, "shared accounts should produce one debit and one credit line")
	suite.Equal("acc-expense", savedItems[0].AccountID)
	suite.True(decimal.NewFromInt(3000).Equal(savedItems[0].Debit))
	suite.Equal("acc-payable", savedItems[1].AccountID)
	suite.True(decimal.NewFromInt(3000).Equal(savedItems[1].Credit))
}

func (suite *PostingServiceTestSuite) TestPostPayrollAccrual_IdempotentRepost() {
	ctx := context.Background()
	record := suite.approvedRecord(5000, 200, 150, 5050)
	suite.expectBatchAndRecords([]domain.PayrollRecord{record})

	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID}).
		Return(map[string]domain.PayrollAccountConfig{suite.employeeID: suite.config}, nil).Once()

	existing := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "PAY-000007",
		Reference:   "PAYROLL:2024-05:ACCRUAL",
		Status:      domain.EntryPosted,
		TotalDebit:  decimal.NewFromInt(4000),
		TotalCredit: decimal.NewFromInt(4000),
	}
	suite.mockJournalRepo.On("FindEntryByBatchAndReference", mock.Anything, suite.batch.BatchID, "PAYROLL:2024-05:ACCRUAL").
		Return(&existing, nil).Once()

	var updatedEntry domain.JournalEntry
	suite.mockJournalRepo.On("UpdateJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryItem")).
		Run(func(args mock.Arguments) {
			updatedEntry = args.Get(1).(domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.PostPayrollAccrual(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(existing.EntryID, updatedEntry.EntryID, "re-posting must reuse the existing entry")
	suite.Equal("PAY-000007", updatedEntry.EntryNumber, "entry number is preserved across re-posts")
	suite.True(decimal.NewFromInt(5200).Equal(result.Totals.TotalDebit))

	// No new entry number was generated and no insert happened.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CountEntriesByNumberPrefix", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostPayrollAccrual_NewBatchSamePeriodGetsOwnEntry() {
	ctx := context.Background()
	// A paid batch for 2024-05 already posted PAYROLL:2024-05:ACCRUAL. A
	// later batch for the same period must get its own entry rather than
	// rewriting the closed batch's ledger history.
	record := suite.approvedRecord(100, 0, 0, 100)
	suite.expectBatchAndRecords([]domain.PayrollRecord{record})

	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID}).
		Return(map[string]domain.PayrollAccountConfig{suite.employeeID: suite.config}, nil).Once()

	// The idempotency lookup is scoped to this batch, so the closed batch's
	// entry is never surfaced.
	suite.mockJournalRepo.On("FindEntryByBatchAndReference", mock.Anything, suite.batch.BatchID, "PAYROLL:2024-05:ACCRUAL").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("CountEntriesByNumberPrefix", mock.Anything, "PAY").Return(int64(7), nil).Once()

	var savedEntry domain.JournalEntry
	suite.mockJournalRepo.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryItem")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.PostPayrollAccrual(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(savedEntry.PayrollBatchID)
	suite.Equal(suite.batch.BatchID, *savedEntry.PayrollBatchID)
	suite.Equal("PAY-000008", savedEntry.EntryNumber)
	suite.True(decimal.NewFromInt(100).Equal(result.Totals.TotalDebit))

	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournalEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostPayrollAccrual_NoQualifyingRecords() {
	ctx := context.Background()
	pending := suite.approvedRecord(5000, 0, 0, 5000)
	pending.Status = domain.PayrollPending
	suite.expectBatchAndRecords([]domain.PayrollRecord{pending})

	result, err := suite.service.PostPayrollAccrual(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostPayrollAccrual_MissingConfigFails() {
	ctx := context.Background()
	record := suite.approvedRecord(5000, 200, 150, 5050)
	suite.expectBatchAndRecords([]domain.PayrollRecord{record})

	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID}).
		Return(map[string]domain.PayrollAccountConfig{}, nil).Once()

	result, err := suite.service.PostPayrollAccrual(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), suite.employeeID)
	suite.Nil(result)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostPayrollAccrual_DeductionsFallBackToPayable() {
	ctx := context.Background()
	record := suite.approvedRecord(5000, 200, 150, 5050)
	suite.expectBatchAndRecords([]domain.PayrollRecord{record})

	noDeductionAccount := suite.config
	noDeductionAccount.DeductionAccountID = nil
	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID}).
		Return(map[string]domain.PayrollAccountConfig{suite.employeeID: noDeductionAccount}, nil).Once()
	suite.mockJournalRepo.On("FindEntryByBatchAndReference", mock.Anything, suite.batch.BatchID, "PAYROLL:2024-05:ACCRUAL").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("CountEntriesByNumberPrefix", mock.Anything, "PAY").Return(int64(0), nil).Once()

	var savedItems []domain.JournalEntryItem
	suite.mockJournalRepo.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryItem")).
		Run(func(args mock.Arguments) {
			savedItems = args.Get(2).([]domain.JournalEntryItem)
		}).Return(nil).Once()

	_, err := suite.service.PostPayrollAccrual(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(savedItems, 2, "net and deductions fold onto the payable account")
	suite.Equal("acc-payable", savedItems[1].AccountID)
	suite.True(decimal.NewFromInt(5200).Equal(savedItems[1].Credit))
}

// --- Payment posting ---

func (suite *PostingServiceTestSuite) TestPostPayrollPayment_Success() {
	ctx := context.Background()
	record := suite.approvedRecord(5000, 200, 150, 5050)
	record.Status = domain.PayrollPaid
	suite.expectBatchAndRecords([]domain.PayrollRecord{record})

	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID}).
		Return(map[string]domain.PayrollAccountConfig{suite.employeeID: suite.config}, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByBatchID", mock.Anything, suite.batch.BatchID).
		Return(nil, apperrors.ErrNotFound).Once()

	var savedTxn domain.CashTransaction
	suite.mockTransactionRepo.On("SaveCashTransaction", mock.Anything, mock.AnythingOfType("domain.CashTransaction")).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.CashTransaction)
		}).Return(nil).Once()

	suite.mockJournalRepo.On("FindEntryByBatchAndReference", mock.Anything, suite.batch.BatchID, "PAYROLL:2024-05:PAYMENT").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("CountEntriesByNumberPrefix", mock.Anything, "PAY").Return(int64(1), nil).Once()

	var savedEntry domain.JournalEntry
	var savedItems []domain.JournalEntryItem
	suite.mockJournalRepo.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryItem")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
			savedItems = args.Get(2).([]domain.JournalEntryItem)
		}).Return(nil).Once()

	result, err := suite.service.PostPayrollPayment(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("PAY-000002", savedEntry.EntryNumber)
	suite.Equal("PAYROLL:2024-05:PAYMENT", savedEntry.Reference)
	suite.Require().NotNil(savedEntry.TransactionID)
	suite.Equal(savedTxn.TransactionID, *savedEntry.TransactionID, "payment entry links its cash transaction")

	suite.Require().Len(savedItems, 2)
	suite.Equal("acc-payable", savedItems[0].AccountID)
	suite.True(decimal.NewFromInt(5050).Equal(savedItems[0].Debit))
	suite.Equal("acc-cash", savedItems[1].AccountID)
	suite.True(decimal.NewFromInt(5050).Equal(savedItems[1].Credit))

	suite.Equal(domain.TransactionExpense, savedTxn.Type)
	suite.Equal("PAYROLL", savedTxn.Category)
	suite.Equal(domain.PaymentBankTransfer, savedTxn.PaymentMethod)
	suite.Equal("USD", savedTxn.CurrencyCode)
	suite.Contains(savedTxn.ReferenceID, "PAYROLL-PAY-")
	suite.True(decimal.NewFromInt(5050).Equal(savedTxn.Amount), "transaction amount equals total cleared payable")
	suite.True(decimal.NewFromInt(5050).Equal(result.Totals.TotalDebit))
}

func (suite *PostingServiceTestSuite) TestPostPayrollPayment_IgnoresUnpaidRecords() {
	ctx := context.Background()
	approved := suite.approvedRecord(5000, 0, 0, 5000)
	suite.expectBatchAndRecords([]domain.PayrollRecord{approved})

	result, err := suite.service.PostPayrollPayment(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func (suite *PostingServiceTestSuite) TestPostPayrollPayment_MissingCashAccountFails() {
	ctx := context.Background()
	record := suite.approvedRecord(5000, 0, 0, 5000)
	record.Status = domain.PayrollPaid
	suite.expectBatchAndRecords([]domain.PayrollRecord{record})

	noCash := suite.config
	noCash.CashAccountID = nil
	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID}).
		Return(map[string]domain.PayrollAccountConfig{suite.employeeID: noCash}, nil).Once()

	_, err := suite.service.PostPayrollPayment(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveCashTransaction", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostPayrollPayment_RepostReusesTransaction() {
	ctx := context.Background()
	record := suite.approvedRecord(5000, 0, 0, 5000)
	record.Status = domain.PayrollPaid
	suite.expectBatchAndRecords([]domain.PayrollRecord{record})

	suite.mockConfigRepo.On("FindConfigsByEmployeeIDs", mock.Anything, []string{suite.employeeID}).
		Return(map[string]domain.PayrollAccountConfig{suite.employeeID: suite.config}, nil).Once()

	existingTxn := domain.CashTransaction{
		TransactionID:  uuid.NewString(),
		ReferenceID:    "PAYROLL-PAY-1716945000000",
		Type:           domain.TransactionExpense,
		Category:       "PAYROLL",
		Amount:         decimal.NewFromInt(3000),
		CurrencyCode:   "USD",
		PaymentMethod:  domain.PaymentBankTransfer,
		PayrollBatchID: &suite.batch.BatchID,
		Metadata: domain.TransactionMetadata{
			CreatedBy: suite.actorID,
			CreatedAt: time.Now().UTC().Add(-time.Hour),
		},
	}
	suite.mockTransactionRepo.On("FindTransactionByBatchID", mock.Anything, suite.batch.BatchID).
		Return(&existingTxn, nil).Once()

	var updatedTxn domain.CashTransaction
	suite.mockTransactionRepo.On("UpdateCashTransaction", mock.Anything, mock.AnythingOfType("domain.CashTransaction")).
		Run(func(args mock.Arguments) {
			updatedTxn = args.Get(1).(domain.CashTransaction)
		}).Return(nil).Once()

	existingEntry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "PAY-000002",
		Reference:   "PAYROLL:2024-05:PAYMENT",
		Status:      domain.EntryPosted,
	}
	suite.mockJournalRepo.On("FindEntryByBatchAndReference", mock.Anything, suite.batch.BatchID, "PAYROLL:2024-05:PAYMENT").
		Return(&existingEntry, nil).Once()
	suite.mockJournalRepo.On("UpdateJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryItem")).
		Return(nil).Once()

	_, err := suite.service.PostPayrollPayment(ctx, suite.batch.BatchID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(existingTxn.TransactionID, updatedTxn.TransactionID)
	suite.Equal(existingTxn.ReferenceID, updatedTxn.ReferenceID, "re-posting keeps the original reference ID")
	suite.True(decimal.NewFromInt(5000).Equal(updatedTxn.Amount), "amount reflects the latest paid totals")
	suite.Require().NotNil(updatedTxn.Metadata.UpdatedBy)
	suite.Equal(suite.actorID, *updatedTxn.Metadata.UpdatedBy)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveCashTransaction", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
