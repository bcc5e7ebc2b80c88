package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar_backend/internal/core/ports/services"
	"github.com/daftarhq/daftar_backend/internal/core/services"
	"github.com/daftarhq/daftar_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByFiscalYear(ctx context.Context, fiscalYearID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, fiscalYearID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindItemsByJournalID(ctx context.Context, journalID string) ([]domain.JournalItem, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalItem), args.Error(1)
}

func (m *MockJournalRepository) FindItemsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalItem, error) {
	args := m.Called(ctx, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalItem), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, items []domain.JournalItem) error {
	args := m.Called(ctx, journal, items)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal, items []domain.JournalItem) error {
	args := m.Called(ctx, journal, items)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

func (m *MockJournalRepository) PostJournal(ctx context.Context, journalID string, postedAt time.Time) (int64, error) {
	args := m.Called(ctx, journalID, postedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.Journal, items []domain.JournalItem, originalJournalID string) (int64, error) {
	args := m.Called(ctx, reversal, items, originalJournalID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock FiscalYearReaderSvc ---
type MockFiscalYearReaderSvc struct {
	mock.Mock
}

var _ portssvc.FiscalYearReaderSvc = (*MockFiscalYearReaderSvc)(nil)

func (m *MockFiscalYearReaderSvc) GetFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearReaderSvc) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

// --- Mock CodeReaderSvc (as used by the posting validator) ---
type MockCodeReaderSvc struct {
	mock.Mock
}

var _ portssvc.CodeReaderSvc = (*MockCodeReaderSvc)(nil)

func (m *MockCodeReaderSvc) GetCodeByID(ctx context.Context, codeID string) (*domain.Code, error) {
	args := m.Called(ctx, codeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Code), args.Error(1)
}

func (m *MockCodeReaderSvc) GetCodesByIDs(ctx context.Context, codeIDs []string) (map[string]domain.Code, error) {
	args := m.Called(ctx, codeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Code), args.Error(1)
}

func (m *MockCodeReaderSvc) ListCodes(ctx context.Context, kind *domain.CodeKind, activeOnly bool) ([]domain.Code, error) {
	args := m.Called(ctx, kind, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Code), args.Error(1)
}

func (m *MockCodeReaderSvc) ResolveAncestors(ctx context.Context, codeID string) ([]domain.Code, error) {
	args := m.Called(ctx, codeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Code), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockFiscalYearSvc *MockFiscalYearReaderSvc
	mockCodeSvc       *MockCodeReaderSvc
	service           *services.JournalService
	fiscalYear        domain.FiscalYear
	cashCode          domain.Code
	salesCode         domain.Code
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockFiscalYearSvc = new(MockFiscalYearReaderSvc)
	suite.mockCodeSvc = new(MockCodeReaderSvc)

	validator := services.NewPostingValidator(suite.mockCodeSvc, false)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockFiscalYearSvc, validator)

	suite.fiscalYear = domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Name:         "FY 2031",
		StartDate:    time.Date(2031, time.March, 21, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2032, time.March, 20, 0, 0, 0, 0, time.UTC),
	}

	debit := domain.NatureDebit
	credit := domain.NatureCredit
	suite.cashCode = domain.Code{
		CodeID:   uuid.NewString(),
		Code:     "101001",
		Title:    "Till cash",
		Kind:     domain.KindSpecific,
		Nature:   &debit,
		Category: domain.CategoryAsset,
		IsActive: true,
	}
	suite.salesCode = domain.Code{
		CodeID:   uuid.NewString(),
		Code:     "401001",
		Title:    "Product sales",
		Kind:     domain.KindSpecific,
		Nature:   &credit,
		Category: domain.CategoryRevenue,
		IsActive: true,
	}
}

func (suite *JournalServiceTestSuite) codesMap() map[string]domain.Code {
	return map[string]domain.Code{
		suite.cashCode.CodeID:  suite.cashCode,
		suite.salesCode.CodeID: suite.salesCode,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		FiscalYearID: suite.fiscalYear.FiscalYearID,
		Date:         "2031-06-15",
		Description:  "Cash sale",
		Items: []dto.CreateJournalItemRequest{
			{CodeID: suite.cashCode.CodeID, Debit: decimal.NewFromInt(1000)},
			{CodeID: suite.salesCode.CodeID, Credit: decimal.NewFromInt(1000)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()
	suite.mockCodeSvc.On("GetCodesByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.codesMap(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalItem")).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(journal.JournalID)
	suite.Equal(domain.Draft, journal.Status)
	suite.Nil(journal.SerialNo, "drafts carry no serial")
	suite.Len(journal.Items, 2)
	suite.Equal(1, journal.Items[0].LineNo)
	suite.Equal(2, journal.Items[1].LineNo)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Items[1].Credit = decimal.NewFromInt(900)

	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_EmptyItems() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Items = nil

	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_DateOutsideFiscalYear() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Date = "2033-01-01"

	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_NonPostableCode() {
	ctx := context.Background()
	req := suite.balancedRequest()

	codes := suite.codesMap()
	inactive := codes[suite.cashCode.CodeID]
	inactive.IsActive = false
	codes[suite.cashCode.CodeID] = inactive

	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()
	suite.mockCodeSvc.On("GetCodesByIDs", ctx, mock.AnythingOfType("[]string")).Return(codes, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_PostedIsImmutable() {
	ctx := context.Background()
	serial := int64(7)
	posted := domain.Journal{
		JournalID:    uuid.NewString(),
		FiscalYearID: suite.fiscalYear.FiscalYearID,
		SerialNo:     &serial,
		Status:       domain.Posted,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, posted.JournalID).Return(&posted, nil).Once()

	desc := "edited"
	_, err := suite.service.UpdateJournal(ctx, posted.JournalID, dto.UpdateJournalRequest{Description: &desc})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_PostedIsImmutable() {
	ctx := context.Background()
	serial := int64(7)
	posted := domain.Journal{
		JournalID: uuid.NewString(),
		SerialNo:  &serial,
		Status:    domain.Posted,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, posted.JournalID).Return(&posted, nil).Once()

	err := suite.service.DeleteJournal(ctx, posted.JournalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) draftJournal() (domain.Journal, []domain.JournalItem) {
	journalID := uuid.NewString()
	journal := domain.Journal{
		JournalID:    journalID,
		FiscalYearID: suite.fiscalYear.FiscalYearID,
		JournalDate:  time.Date(2031, time.June, 15, 0, 0, 0, 0, time.UTC),
		Status:       domain.Draft,
	}
	items := []domain.JournalItem{
		{ItemID: uuid.NewString(), JournalID: journalID, CodeID: suite.cashCode.CodeID, Debit: decimal.NewFromInt(1000), LineNo: 1},
		{ItemID: uuid.NewString(), JournalID: journalID, CodeID: suite.salesCode.CodeID, Credit: decimal.NewFromInt(1000), LineNo: 2},
	}
	return journal, items
}

func (suite *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	draft, items := suite.draftJournal()

	suite.mockJournalRepo.On("FindJournalByID", ctx, draft.JournalID).Return(&draft, nil).Once()
	suite.mockJournalRepo.On("FindItemsByJournalID", ctx, draft.JournalID).Return(items, nil).Once()
	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()
	suite.mockCodeSvc.On("GetCodesByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.codesMap(), nil).Once()
	suite.mockJournalRepo.On("PostJournal", ctx, draft.JournalID, mock.AnythingOfType("time.Time")).Return(int64(42), nil).Once()

	posted, err := suite.service.PostJournal(ctx, draft.JournalID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().NotNil(posted.SerialNo)
	suite.Equal(int64(42), *posted.SerialNo)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_AlreadyPosted() {
	ctx := context.Background()
	serial := int64(42)
	posted := domain.Journal{JournalID: uuid.NewString(), SerialNo: &serial, Status: domain.Posted}

	suite.mockJournalRepo.On("FindJournalByID", ctx, posted.JournalID).Return(&posted, nil).Once()

	_, err := suite.service.PostJournal(ctx, posted.JournalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_ClosedFiscalYear() {
	ctx := context.Background()
	draft, items := suite.draftJournal()
	closed := suite.fiscalYear
	closed.IsClosed = true

	suite.mockJournalRepo.On("FindJournalByID", ctx, draft.JournalID).Return(&draft, nil).Once()
	suite.mockJournalRepo.On("FindItemsByJournalID", ctx, draft.JournalID).Return(items, nil).Once()
	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&closed, nil).Once()

	_, err := suite.service.PostJournal(ctx, draft.JournalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_ClosedFiscalYearAllowed() {
	ctx := context.Background()
	draft, items := suite.draftJournal()
	closed := suite.fiscalYear
	closed.IsClosed = true

	validator := services.NewPostingValidator(suite.mockCodeSvc, true)
	service := services.NewJournalService(suite.mockJournalRepo, suite.mockFiscalYearSvc, validator)

	suite.mockJournalRepo.On("FindJournalByID", ctx, draft.JournalID).Return(&draft, nil).Once()
	suite.mockJournalRepo.On("FindItemsByJournalID", ctx, draft.JournalID).Return(items, nil).Once()
	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&closed, nil).Once()
	suite.mockCodeSvc.On("GetCodesByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.codesMap(), nil).Once()
	suite.mockJournalRepo.On("PostJournal", ctx, draft.JournalID, mock.AnythingOfType("time.Time")).Return(int64(43), nil).Once()

	posted, err := service.PostJournal(ctx, draft.JournalID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	serial := int64(42)
	journalID := uuid.NewString()
	original := domain.Journal{
		JournalID:    journalID,
		FiscalYearID: suite.fiscalYear.FiscalYearID,
		SerialNo:     &serial,
		JournalDate:  time.Date(2031, time.June, 15, 0, 0, 0, 0, time.UTC),
		Status:       domain.Posted,
	}
	items := []domain.JournalItem{
		{ItemID: uuid.NewString(), JournalID: journalID, CodeID: suite.cashCode.CodeID, Debit: decimal.NewFromInt(1000), LineNo: 1},
		{ItemID: uuid.NewString(), JournalID: journalID, CodeID: suite.salesCode.CodeID, Credit: decimal.NewFromInt(1000), LineNo: 2},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(&original, nil).Once()
	suite.mockJournalRepo.On("FindItemsByJournalID", ctx, journalID).Return(items, nil).Once()
	suite.mockFiscalYearSvc.On("GetFiscalYearByID", ctx, suite.fiscalYear.FiscalYearID).Return(&suite.fiscalYear, nil).Once()
	suite.mockCodeSvc.On("GetCodesByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.codesMap(), nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalItem"), journalID).Return(int64(43), nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, journalID, dto.ReverseJournalRequest{})

	suite.Require().NoError(err)
	suite.NotEqual(journalID, reversal.JournalID)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Require().NotNil(reversal.OriginalJournalID)
	suite.Equal(journalID, *reversal.OriginalJournalID)
	suite.Require().NotNil(reversal.SerialNo)
	suite.Equal(int64(43), *reversal.SerialNo)

	// Items are the debit/credit mirror of the original.
	suite.Require().Len(reversal.Items, 2)
	suite.True(reversal.Items[0].Credit.Equal(decimal.NewFromInt(1000)))
	suite.True(reversal.Items[1].Debit.Equal(decimal.NewFromInt(1000)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_DraftRejected() {
	ctx := context.Background()
	draft, _ := suite.draftJournal()

	suite.mockJournalRepo.On("FindJournalByID", ctx, draft.JournalID).Return(&draft, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, draft.JournalID, dto.ReverseJournalRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_OfReversalRejected() {
	ctx := context.Background()
	serial := int64(43)
	originalID := uuid.NewString()
	reversal := domain.Journal{
		JournalID:         uuid.NewString(),
		FiscalYearID:      suite.fiscalYear.FiscalYearID,
		SerialNo:          &serial,
		Status:            domain.Posted,
		OriginalJournalID: &originalID,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, reversal.JournalID).Return(&reversal, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, reversal.JournalID, dto.ReverseJournalRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	serial := int64(42)
	reversingID := uuid.NewString()
	reversed := domain.Journal{
		JournalID:          uuid.NewString(),
		FiscalYearID:       suite.fiscalYear.FiscalYearID,
		SerialNo:           &serial,
		Status:             domain.Reversed,
		ReversingJournalID: &reversingID,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, reversed.JournalID).Return(&reversed, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, reversed.JournalID, dto.ReverseJournalRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
