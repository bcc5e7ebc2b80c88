package services_test

import (
	"context"
	"testing"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	"github.com/daftarhq/daftar_backend/internal/core/services"
	"github.com/daftarhq/daftar_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CodeRepository ---
type MockCodeRepository struct {
	mock.Mock
}

var _ portsrepo.CodeRepositoryFacade = (*MockCodeRepository)(nil)

func (m *MockCodeRepository) FindCodeByID(ctx context.Context, codeID string) (*domain.Code, error) {
	args := m.Called(ctx, codeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Code), args.Error(1)
}

func (m *MockCodeRepository) FindCodeByCode(ctx context.Context, code string) (*domain.Code, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Code), args.Error(1)
}

func (m *MockCodeRepository) FindCodesByIDs(ctx context.Context, codeIDs []string) (map[string]domain.Code, error) {
	args := m.Called(ctx, codeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Code), args.Error(1)
}

func (m *MockCodeRepository) ListCodes(ctx context.Context) ([]domain.Code, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Code), args.Error(1)
}

func (m *MockCodeRepository) SaveCode(ctx context.Context, code domain.Code) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCodeRepository) UpdateCode(ctx context.Context, code domain.Code) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// --- Test Suite Setup ---
type CodeServiceTestSuite struct {
	suite.Suite
	mockCodeRepo *MockCodeRepository
	service      *services.CodeService
	group        domain.Code
	general      domain.Code
}

func (suite *CodeServiceTestSuite) SetupTest() {
	suite.mockCodeRepo = new(MockCodeRepository)
	suite.service = services.NewCodeService(suite.mockCodeRepo, domain.DefaultCodeFormat)

	suite.group = domain.Code{
		CodeID:   uuid.NewString(),
		Code:     "10",
		Title:    "Current assets",
		Kind:     domain.KindGroup,
		Category: domain.CategoryAsset,
		IsActive: true,
	}
	suite.general = domain.Code{
		CodeID:       uuid.NewString(),
		Code:         "1010",
		Title:        "Cash and banks",
		Kind:         domain.KindGeneral,
		ParentCodeID: &suite.group.CodeID,
		Category:     domain.CategoryAsset,
		IsActive:     true,
	}
}

// --- Test Cases ---

func (suite *CodeServiceTestSuite) TestCreateCode_Group() {
	ctx := context.Background()
	category := "ASSET"
	req := dto.CreateCodeRequest{Code: "20", Title: "Fixed assets", Category: &category}

	suite.mockCodeRepo.On("FindCodeByCode", ctx, "20").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCodeRepo.On("SaveCode", ctx, mock.AnythingOfType("domain.Code")).Return(nil).Once()

	code, err := suite.service.CreateCode(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.KindGroup, code.Kind)
	suite.Equal(domain.CategoryAsset, code.Category)
	suite.Nil(code.ParentCodeID)
	suite.True(code.IsActive)
	suite.mockCodeRepo.AssertExpectations(suite.T())
}

func (suite *CodeServiceTestSuite) TestCreateCode_SpecificInheritsCategory() {
	ctx := context.Background()
	nature := "DEBIT"
	req := dto.CreateCodeRequest{
		Code:         "101001",
		Title:        "Till cash",
		ParentCodeID: &suite.general.CodeID,
		Nature:       &nature,
	}

	suite.mockCodeRepo.On("FindCodeByCode", ctx, "101001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCodeRepo.On("FindCodeByID", ctx, suite.general.CodeID).Return(&suite.general, nil).Once()
	suite.mockCodeRepo.On("SaveCode", ctx, mock.AnythingOfType("domain.Code")).Return(nil).Once()

	code, err := suite.service.CreateCode(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.KindSpecific, code.Kind)
	suite.Equal(domain.CategoryAsset, code.Category, "category inherited from the group root")
	suite.Require().NotNil(code.Nature)
	suite.Equal(domain.NatureDebit, *code.Nature)
	suite.mockCodeRepo.AssertExpectations(suite.T())
}

func (suite *CodeServiceTestSuite) TestCreateCode_DuplicateCode() {
	ctx := context.Background()
	category := "ASSET"
	req := dto.CreateCodeRequest{Code: "10", Title: "Duplicate", Category: &category}

	suite.mockCodeRepo.On("FindCodeByCode", ctx, "10").Return(&suite.group, nil).Once()

	_, err := suite.service.CreateCode(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCodeRepo.AssertNotCalled(suite.T(), "SaveCode", mock.Anything, mock.Anything)
}

func (suite *CodeServiceTestSuite) TestCreateCode_ParentPrefixMismatch() {
	ctx := context.Background()
	nature := "DEBIT"
	req := dto.CreateCodeRequest{
		Code:         "201001",
		Title:        "Wrong branch",
		ParentCodeID: &suite.general.CodeID,
		Nature:       &nature,
	}

	suite.mockCodeRepo.On("FindCodeByCode", ctx, "201001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCodeRepo.On("FindCodeByID", ctx, suite.general.CodeID).Return(&suite.general, nil).Once()

	_, err := suite.service.CreateCode(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CodeServiceTestSuite) TestCreateCode_SpecificWithoutNature() {
	ctx := context.Background()
	req := dto.CreateCodeRequest{
		Code:         "101001",
		Title:        "No nature",
		ParentCodeID: &suite.general.CodeID,
	}

	suite.mockCodeRepo.On("FindCodeByCode", ctx, "101001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCodeRepo.On("FindCodeByID", ctx, suite.general.CodeID).Return(&suite.general, nil).Once()

	_, err := suite.service.CreateCode(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CodeServiceTestSuite) TestCreateCode_GroupWithoutCategory() {
	ctx := context.Background()
	req := dto.CreateCodeRequest{Code: "30", Title: "No category"}

	suite.mockCodeRepo.On("FindCodeByCode", ctx, "30").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateCode(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CodeServiceTestSuite) TestUpdateCode_NatureOnNonSpecific() {
	ctx := context.Background()
	nature := "CREDIT"
	req := dto.UpdateCodeRequest{Nature: &nature}

	suite.mockCodeRepo.On("FindCodeByID", ctx, suite.general.CodeID).Return(&suite.general, nil).Once()

	_, err := suite.service.UpdateCode(ctx, suite.general.CodeID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCodeRepo.AssertNotCalled(suite.T(), "UpdateCode", mock.Anything, mock.Anything)
}

func (suite *CodeServiceTestSuite) TestListCodes_Filtered() {
	ctx := context.Background()
	inactive := suite.general
	inactive.CodeID = uuid.NewString()
	inactive.Code = "1020"
	inactive.IsActive = false

	suite.mockCodeRepo.On("ListCodes", ctx).Return([]domain.Code{suite.group, suite.general, inactive}, nil).Once()

	kind := domain.KindGeneral
	codes, err := suite.service.ListCodes(ctx, &kind, true)

	suite.Require().NoError(err)
	suite.Require().Len(codes, 1)
	suite.Equal(suite.general.CodeID, codes[0].CodeID)
}

func (suite *CodeServiceTestSuite) TestResolveAncestors() {
	ctx := context.Background()
	nature := domain.NatureDebit
	specific := domain.Code{
		CodeID:       uuid.NewString(),
		Code:         "101001",
		Kind:         domain.KindSpecific,
		ParentCodeID: &suite.general.CodeID,
		Nature:       &nature,
		Category:     domain.CategoryAsset,
		IsActive:     true,
	}

	suite.mockCodeRepo.On("FindCodeByID", ctx, specific.CodeID).Return(&specific, nil).Once()
	suite.mockCodeRepo.On("FindCodeByID", ctx, suite.general.CodeID).Return(&suite.general, nil).Once()
	suite.mockCodeRepo.On("FindCodeByID", ctx, suite.group.CodeID).Return(&suite.group, nil).Once()

	chain, err := suite.service.ResolveAncestors(ctx, specific.CodeID)

	suite.Require().NoError(err)
	suite.Require().Len(chain, 3)
	suite.Equal(specific.CodeID, chain[0].CodeID)
	suite.Equal(suite.general.CodeID, chain[1].CodeID)
	suite.Equal(suite.group.CodeID, chain[2].CodeID)
}

func TestCodeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CodeServiceTestSuite))
}
