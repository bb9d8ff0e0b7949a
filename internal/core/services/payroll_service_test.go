package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clearledger/payroll_ledger_app/internal/apperrors"
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	portssvc "github.com/clearledger/payroll_ledger_app/internal/core/ports/services"
	"github.com/clearledger/payroll_ledger_app/internal/core/services"
	"github.com/clearledger/payroll_ledger_app/internal/dto"
)

// --- Mock LedgerPostingSvc ---
type MockLedgerPostingSvc struct {
	mock.Mock
}

var _ portssvc.LedgerPostingSvc = (*MockLedgerPostingSvc)(nil)

func (m *MockLedgerPostingSvc) PostPayrollAccrual(ctx context.Context, batchID string, actorID string) (*portssvc.AccrualPostingResult, error) {
	args := m.Called(ctx, batchID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AccrualPostingResult), args.Error(1)
}

func (m *MockLedgerPostingSvc) PostPayrollPayment(ctx context.Context, batchID string, actorID string) (*portssvc.PaymentPostingResult, error) {
	args := m.Called(ctx, batchID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PaymentPostingResult), args.Error(1)
}

// --- Test Suite Setup ---
type PayrollServiceTestSuite struct {
	suite.Suite
	mockPayrollRepo *MockPayrollRecordRepository
	mockBatchRepo   *MockPayrollBatchRepository
	mockPosting     *MockLedgerPostingSvc
	service         portssvc.PayrollSvcFacade

	batch   domain.PayrollBatch
	actorID string
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPayrollRepo = new(MockPayrollRecordRepository)
	suite.mockBatchRepo = new(MockPayrollBatchRepository)
	suite.mockPosting = new(MockLedgerPostingSvc)
	suite.service = services.NewPayrollService(
		passthroughTxManager{},
		suite.mockPayrollRepo,
		suite.mockBatchRepo,
		suite.mockPosting,
	)

	suite.actorID = uuid.NewString()
	suite.batch = domain.PayrollBatch{
		BatchID:         uuid.NewString(),
		Period:          "2024-05",
		Status:          domain.BatchPending,
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
		TotalPaid:       decimal.Zero,
	}
}

func (suite *PayrollServiceTestSuite) record(net int64, status domain.PayrollStatus) domain.PayrollRecord {
	return domain.PayrollRecord{
		RecordID:    uuid.NewString(),
		EmployeeID:  uuid.NewString(),
		Period:      suite.batch.Period,
		BasicSalary: decimal.NewFromInt(net),
		NetSalary:   decimal.NewFromInt(net),
		Status:      status,
		BatchID:     &suite.batch.BatchID,
	}
}

// --- CreatePayrollRecord ---

func (suite *PayrollServiceTestSuite) TestCreatePayrollRecord_CreatesBatchWhenNoneOpen() {
	ctx := context.Background()
	req := dto.CreatePayrollRecordRequest{
		EmployeeID:  uuid.NewString(),
		Period:      "2024-05",
		BasicSalary: decimal.NewFromInt(5000),
		Allowances:  decimal.NewFromInt(200),
		Deductions:  decimal.NewFromInt(150),
		NetSalary:   decimal.NewFromInt(5050),
	}

	suite.mockBatchRepo.On("FindOpenBatchByPeriod", mock.Anything, "2024-05").
		Return(nil, apperrors.ErrNotFound).Once()

	var createdBatch domain.PayrollBatch
	suite.mockBatchRepo.On("SavePayrollBatch", mock.Anything, mock.AnythingOfType("domain.PayrollBatch")).
		Run(func(args mock.Arguments) {
			createdBatch = args.Get(1).(domain.PayrollBatch)
		}).Return(nil).Once()

	var savedRecord domain.PayrollRecord
	suite.mockPayrollRepo.On("SavePayrollRecord", mock.Anything, mock.AnythingOfType("domain.PayrollRecord")).
		Run(func(args mock.Arguments) {
			savedRecord = args.Get(1).(domain.PayrollRecord)
		}).Return(nil).Once()

	// Recalculation pass over the new batch
	suite.mockBatchRepo.On("FindBatchByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&suite.batch, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollRecordsByBatchID", mock.Anything, mock.AnythingOfType("string")).
		Return([]domain.PayrollRecord{}, nil).Once()
	suite.mockBatchRepo.On("UpdatePayrollBatch", mock.Anything, mock.AnythingOfType("domain.PayrollBatch")).
		Return(nil).Once()

	record, err := suite.service.CreatePayrollRecord(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.Equal(domain.BatchPending, createdBatch.Status)
	suite.Equal("2024-05", createdBatch.Period)
	suite.Equal(domain.PayrollPending, savedRecord.Status)
	suite.Require().NotNil(savedRecord.BatchID)
	suite.Equal(createdBatch.BatchID, *savedRecord.BatchID, "record joins the freshly created batch")
	suite.Equal(suite.actorID, savedRecord.CreatedBy)

	suite.mockBatchRepo.AssertExpectations(suite.T())
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCreatePayrollRecord_ReusesOpenBatch() {
	ctx := context.Background()
	req := dto.CreatePayrollRecordRequest{
		EmployeeID:  uuid.NewString(),
		Period:      "2024-05",
		BasicSalary: decimal.NewFromInt(3000),
		NetSalary:   decimal.NewFromInt(3000),
	}

	suite.mockBatchRepo.On("FindOpenBatchByPeriod", mock.Anything, "2024-05").
		Return(&suite.batch, nil).Once()

	var savedRecord domain.PayrollRecord
	suite.mockPayrollRepo.On("SavePayrollRecord", mock.Anything, mock.AnythingOfType("domain.PayrollRecord")).
		Run(func(args mock.Arguments) {
			savedRecord = args.Get(1).(domain.PayrollRecord)
		}).Return(nil).Once()

	existing := suite.record(2000, domain.PayrollPending)
	suite.mockBatchRepo.On("FindBatchByID", mock.Anything, suite.batch.BatchID).
		Return(&suite.batch, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollRecordsByBatchID", mock.Anything, suite.batch.BatchID).
		Return([]domain.PayrollRecord{existing, savedRecord}, nil).Once()

	var recalced domain.PayrollBatch
	suite.mockBatchRepo.On("UpdatePayrollBatch", mock.Anything, mock.AnythingOfType("domain.PayrollBatch")).
		Run(func(args mock.Arguments) {
			recalced = args.Get(1).(domain.PayrollBatch)
		}).Return(nil).Once()

	_, err := suite.service.CreatePayrollRecord(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(suite.batch.BatchID, *savedRecord.BatchID, "record joins the period's open batch")
	suite.True(decimal.NewFromInt(2000).Equal(recalced.TotalNet), "totals rederive from repository records")
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "SavePayrollBatch", mock.Anything, mock.Anything)
}

// --- Approval ---

func (suite *PayrollServiceTestSuite) TestApprovePayrollRecord_PostsAccrualAndClosesBatchAsPosted() {
	ctx := context.Background()
	record := suite.record(5050, domain.PayrollPending)

	suite.mockPayrollRepo.On("FindPayrollRecordByID", mock.Anything, record.RecordID).
		Return(&record, nil).Twice()

	var updatedRecord domain.PayrollRecord
	suite.mockPayrollRepo.On("UpdatePayrollRecord", mock.Anything, mock.AnythingOfType("domain.PayrollRecord")).
		Run(func(args mock.Arguments) {
			updatedRecord = args.Get(1).(domain.PayrollRecord)
		}).Return(nil).Once()

	suite.mockBatchRepo.On("FindBatchByID", mock.Anything, suite.batch.BatchID).
		Return(&suite.batch, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollRecordsByBatchID", mock.Anything, suite.batch.BatchID).
		Return([]domain.PayrollRecord{updatedRecord}, nil).Once()

	var batchUpdates []domain.PayrollBatch
	suite.mockBatchRepo.On("UpdatePayrollBatch", mock.Anything, mock.AnythingOfType("domain.PayrollBatch")).
		Run(func(args mock.Arguments) {
			batchUpdates = append(batchUpdates, args.Get(1).(domain.PayrollBatch))
		}).Return(nil).Twice()

	postingResult := &portssvc.AccrualPostingResult{
		Entry: domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "PAY-000001"},
	}
	suite.mockPosting.On("PostPayrollAccrual", mock.Anything, suite.batch.BatchID, suite.actorID).
		Return(postingResult, nil).Once()

	result, err := suite.service.ApprovePayrollRecord(ctx, record.RecordID, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.PayrollApproved, updatedRecord.Status)
	suite.Require().NotNil(updatedRecord.ApprovedBy)
	suite.Equal(suite.actorID, *updatedRecord.ApprovedBy)

	suite.Require().Len(batchUpdates, 2, "totals update then status update")
	final := batchUpdates[1]
	suite.Equal(domain.BatchPosted, final.Status)
	suite.NotNil(final.PostedAt)
	suite.Require().NotNil(final.ApprovedBy)
	suite.Equal(suite.actorID, *final.ApprovedBy)

	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestApprovePayrollRecord_PostingFailureAborts() {
	ctx := context.Background()
	record := suite.record(5050, domain.PayrollPending)

	suite.mockPayrollRepo.On("FindPayrollRecordByID", mock.Anything, record.RecordID).
		Return(&record, nil).Once()
	suite.mockPayrollRepo.On("UpdatePayrollRecord", mock.Anything, mock.AnythingOfType("domain.PayrollRecord")).
		Return(nil).Once()
	suite.mockBatchRepo.On("FindBatchByID", mock.Anything, suite.batch.BatchID).
		Return(&suite.batch, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollRecordsByBatchID", mock.Anything, suite.batch.BatchID).
		Return([]domain.PayrollRecord{record}, nil).Once()
	suite.mockBatchRepo.On("UpdatePayrollBatch", mock.Anything, mock.AnythingOfType("domain.PayrollBatch")).
		Return(nil).Once()

	postingErr := apperrors.ErrValidation
	suite.mockPosting.On("PostPayrollAccrual", mock.Anything, suite.batch.BatchID, suite.actorID).
		Return(nil, postingErr).Once()

	result, err := suite.service.ApprovePayrollRecord(ctx, record.RecordID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result, "a posting failure must abort the approval")
}

// --- Payment ---

func (suite *PayrollServiceTestSuite) TestMarkPayrollRecordPaid_PartialPaymentKeepsBatchOpen() {
	ctx := context.Background()
	paid := suite.record(6000, domain.PayrollPaid)
	outstanding := suite.record(4000, domain.PayrollApproved)

	suite.mockPayrollRepo.On("FindPayrollRecordByID", mock.Anything, paid.RecordID).
		Return(&paid, nil).Twice()
	suite.mockPayrollRepo.On("UpdatePayrollRecord", mock.Anything, mock.AnythingOfType("domain.PayrollRecord")).
		Return(nil).Once()
	suite.mockBatchRepo.On("FindBatchByID", mock.Anything, suite.batch.BatchID).
		Return(&suite.batch, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollRecordsByBatchID", mock.Anything, suite.batch.BatchID).
		Return([]domain.PayrollRecord{paid, outstanding}, nil).Once()

	var batchUpdates []domain.PayrollBatch
	suite.mockBatchRepo.On("UpdatePayrollBatch", mock.Anything, mock.AnythingOfType("domain.PayrollBatch")).
		Run(func(args mock.Arguments) {
			batchUpdates = append(batchUpdates, args.Get(1).(domain.PayrollBatch))
		}).Return(nil).Once()

	paymentResult := &portssvc.PaymentPostingResult{
		Entry: domain.JournalEntry{EntryID: uuid.NewString()},
	}
	suite.mockPosting.On("PostPayrollPayment", mock.Anything, suite.batch.BatchID, suite.actorID).
		Return(paymentResult, nil).Once()

	result, err := suite.service.MarkPayrollRecordPaid(ctx, paid.RecordID, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Require().Len(batchUpdates, 1, "only the totals update; the batch is not closed")
	totals := batchUpdates[0]
	suite.True(decimal.NewFromInt(10000).Equal(totals.TotalNet))
	suite.True(decimal.NewFromInt(6000).Equal(totals.TotalPaid))
	suite.NotEqual(domain.BatchPaid, totals.Status)
}

func (suite *PayrollServiceTestSuite) TestMarkPayrollRecordPaid_FullPaymentClosesBatch() {
	ctx := context.Background()
	first := suite.record(6000, domain.PayrollPaid)
	second := suite.record(4000, domain.PayrollPaid)

	suite.mockPayrollRepo.On("FindPayrollRecordByID", mock.Anything, second.RecordID).
		Return(&second, nil).Twice()
	suite.mockPayrollRepo.On("UpdatePayrollRecord", mock.Anything, mock.AnythingOfType("domain.PayrollRecord")).
		Return(nil).Once()
	suite.mockBatchRepo.On("FindBatchByID", mock.Anything, suite.batch.BatchID).
		Return(&suite.batch, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollRecordsByBatchID", mock.Anything, suite.batch.BatchID).
		Return([]domain.PayrollRecord{first, second}, nil).Once()

	var batchUpdates []domain.PayrollBatch
	suite.mockBatchRepo.On("UpdatePayrollBatch", mock.Anything, mock.AnythingOfType("domain.PayrollBatch")).
		Run(func(args mock.Arguments) {
			batchUpdates = append(batchUpdates, args.Get(1).(domain.PayrollBatch))
		}).Return(nil).Twice()

	paymentResult := &portssvc.PaymentPostingResult{
		Entry: domain.JournalEntry{EntryID: uuid.NewString()},
	}
	suite.mockPosting.On("PostPayrollPayment", mock.Anything, suite.batch.BatchID, suite.actorID).
		Return(paymentResult, nil).Once()

	_, err := suite.service.MarkPayrollRecordPaid(ctx, second.RecordID, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(batchUpdates, 2, "totals update then close")
	final := batchUpdates[1]
	suite.Equal(domain.BatchPaid, final.Status)
	suite.NotNil(final.PaidAt)
	suite.True(decimal.NewFromInt(10000).Equal(final.TotalPaid))
}

// --- Administrative status updates ---

func (suite *PayrollServiceTestSuite) TestUpdatePayrollRecordStatus_RejectsReverseTransition() {
	ctx := context.Background()
	record := suite.record(5000, domain.PayrollPaid)

	suite.mockPayrollRepo.On("FindPayrollRecordByID", mock.Anything, record.RecordID).
		Return(&record, nil).Once()

	result, err := suite.service.UpdatePayrollRecordStatus(ctx, record.RecordID, domain.PayrollPending, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "UpdatePayrollRecord", mock.Anything, mock.Anything)
	suite.mockPosting.AssertNotCalled(suite.T(), "PostPayrollAccrual", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestUpdatePayrollRecordStatus_RejectsPaidToApproved() {
	ctx := context.Background()
	record := suite.record(5000, domain.PayrollPaid)

	suite.mockPayrollRepo.On("FindPayrollRecordByID", mock.Anything, record.RecordID).
		Return(&record, nil).Once()

	// Regressing a paid record through the approval flow must be refused
	// before the dispatch, not silently applied.
	result, err := suite.service.UpdatePayrollRecordStatus(ctx, record.RecordID, domain.PayrollApproved, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "UpdatePayrollRecord", mock.Anything, mock.Anything)
	suite.mockPosting.AssertNotCalled(suite.T(), "PostPayrollAccrual", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestUpdatePayrollRecordStatus_DispatchesApproval() {
	ctx := context.Background()
	record := suite.record(5000, domain.PayrollPending)

	suite.mockPayrollRepo.On("FindPayrollRecordByID", mock.Anything, record.RecordID).
		Return(&record, nil).Times(3)
	suite.mockPayrollRepo.On("UpdatePayrollRecord", mock.Anything, mock.AnythingOfType("domain.PayrollRecord")).
		Return(nil).Once()
	suite.mockBatchRepo.On("FindBatchByID", mock.Anything, suite.batch.BatchID).
		Return(&suite.batch, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollRecordsByBatchID", mock.Anything, suite.batch.BatchID).
		Return([]domain.PayrollRecord{record}, nil).Once()
	suite.mockBatchRepo.On("UpdatePayrollBatch", mock.Anything, mock.AnythingOfType("domain.PayrollBatch")).
		Return(nil).Twice()

	postingResult := &portssvc.AccrualPostingResult{
		Entry: domain.JournalEntry{EntryID: uuid.NewString()},
	}
	suite.mockPosting.On("PostPayrollAccrual", mock.Anything, suite.batch.BatchID, suite.actorID).
		Return(postingResult, nil).Once()

	_, err := suite.service.UpdatePayrollRecordStatus(ctx, record.RecordID, domain.PayrollApproved, suite.actorID)

	suite.Require().NoError(err)
	suite.mockPosting.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPayrollService(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
