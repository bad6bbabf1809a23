package tenant

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/quoted/internal/common/clock/mocks"
	"github.com/KirkDiggler/quoted/internal/models"
	tenantRepo "github.com/KirkDiggler/quoted/internal/repositories/tenant"
	tenantMocks "github.com/KirkDiggler/quoted/internal/repositories/tenant/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockTenantRepo *tenantMocks.MockRepository
	mockClock      *clockMocks.MockClock
	service        Service
	ctx            context.Context

	testTime    time.Time
	createdTime time.Time
}

func (s *TenantServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockTenantRepo = tenantMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.createdTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(&Config{
		TenantRepo: s.mockTenantRepo,
		Clock:      s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *TenantServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (s *TenantServiceTestSuite) existingGuild() *models.Tenant {
	return &models.Tenant{
		ID:          "guild-1",
		Kind:        models.TenantKindGuild,
		Name:        "Old Name",
		MemberCount: 10,
		Privacy:     models.PrivacyTwoWay,
		Following:   []string{"guild-2"},
		CreatedAt:   s.createdTime,
		UpdatedAt:   s.createdTime,
	}
}

func (s *TenantServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Clock: s.mockClock})
	s.ErrorIs(err, ErrNilTenantRepo)

	_, err = New(&Config{TenantRepo: s.mockTenantRepo})
	s.ErrorIs(err, ErrNilClock)
}

func (s *TenantServiceTestSuite) TestTouch_CreatesTenantLazily() {
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), &tenantRepo.GetTenantInput{TenantID: "guild-1"}).
		Return(nil, tenantRepo.ErrTenantNotFound)

	s.mockTenantRepo.EXPECT().
		SaveTenant(gomock.Any(), &tenantRepo.SaveTenantInput{
			Tenant: &models.Tenant{
				ID:          "guild-1",
				Kind:        models.TenantKindGuild,
				Name:        "The Guild",
				MemberCount: 12,
				Privacy:     models.PrivacyPublic,
				Following:   []string{},
				CreatedAt:   s.testTime,
				UpdatedAt:   s.testTime,
			},
		}).
		Return(nil)

	output, err := s.service.Touch(s.ctx, &TouchInput{
		TenantID:    "guild-1",
		Kind:        models.TenantKindGuild,
		Name:        "The Guild",
		MemberCount: 12,
	})
	s.Require().NoError(err)
	s.True(output.Created)
	s.Equal(models.PrivacyPublic, output.Tenant.Privacy)
}

func (s *TenantServiceTestSuite) TestTouch_RefreshesNameAndMemberCount() {
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), &tenantRepo.GetTenantInput{TenantID: "guild-1"}).
		Return(s.existingGuild(), nil)

	expected := s.existingGuild()
	expected.Name = "New Name"
	expected.MemberCount = 20
	expected.UpdatedAt = s.testTime

	s.mockTenantRepo.EXPECT().
		SaveTenant(gomock.Any(), &tenantRepo.SaveTenantInput{Tenant: expected}).
		Return(nil)

	output, err := s.service.Touch(s.ctx, &TouchInput{
		TenantID:    "guild-1",
		Kind:        models.TenantKindGuild,
		Name:        "New Name",
		MemberCount: 20,
	})
	s.Require().NoError(err)
	s.False(output.Created)
	s.Equal(models.PrivacyTwoWay, output.Tenant.Privacy)
	s.Equal(s.createdTime, output.Tenant.CreatedAt)
}

func (s *TenantServiceTestSuite) TestTouch_UnchangedSkipsWrite() {
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), gomock.Any()).
		Return(s.existingGuild(), nil)

	output, err := s.service.Touch(s.ctx, &TouchInput{
		TenantID:    "guild-1",
		Kind:        models.TenantKindGuild,
		Name:        "Old Name",
		MemberCount: 10,
	})
	s.Require().NoError(err)
	s.False(output.Created)
}

func (s *TenantServiceTestSuite) TestTouch_UserHasNoMemberCount() {
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), gomock.Any()).
		Return(nil, tenantRepo.ErrTenantNotFound)

	s.mockTenantRepo.EXPECT().
		SaveTenant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *tenantRepo.SaveTenantInput) error {
			s.Equal(0, input.Tenant.MemberCount)
			s.Equal(models.TenantKindUser, input.Tenant.Kind)
			return nil
		})

	_, err := s.service.Touch(s.ctx, &TouchInput{
		TenantID:    "user-1",
		Kind:        models.TenantKindUser,
		Name:        "someone",
		MemberCount: 5,
	})
	s.Require().NoError(err)
}

func (s *TenantServiceTestSuite) TestTouch_InvalidInput() {
	_, err := s.service.Touch(s.ctx, &TouchInput{Kind: models.TenantKindGuild})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.service.Touch(s.ctx, &TouchInput{TenantID: "x", Kind: "planet"})
	s.ErrorIs(err, ErrInvalidKind)
}

func (s *TenantServiceTestSuite) TestTouch_RepositoryError() {
	boom := errors.New("redis down")
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), gomock.Any()).
		Return(nil, boom)

	_, err := s.service.Touch(s.ctx, &TouchInput{TenantID: "guild-1", Kind: models.TenantKindGuild})
	s.ErrorIs(err, boom)
}

func (s *TenantServiceTestSuite) TestFollow_HappyPath() {
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), &tenantRepo.GetTenantInput{TenantID: "guild-2"}).
		Return(&models.Tenant{ID: "guild-2"}, nil)

	s.mockTenantRepo.EXPECT().
		AddFollow(gomock.Any(), &tenantRepo.AddFollowInput{TenantID: "guild-1", TargetID: "guild-2"}).
		Return(nil)

	s.NoError(s.service.Follow(s.ctx, &FollowInput{TenantID: "guild-1", TargetID: "guild-2"}))
}

func (s *TenantServiceTestSuite) TestFollow_RejectsSelf() {
	err := s.service.Follow(s.ctx, &FollowInput{TenantID: "guild-1", TargetID: "guild-1"})
	s.ErrorIs(err, ErrSelfFollow)
}

func (s *TenantServiceTestSuite) TestFollow_UnknownTarget() {
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), &tenantRepo.GetTenantInput{TenantID: "ghost"}).
		Return(nil, tenantRepo.ErrTenantNotFound)

	err := s.service.Follow(s.ctx, &FollowInput{TenantID: "guild-1", TargetID: "ghost"})
	s.ErrorIs(err, ErrTenantNotFound)
}

func (s *TenantServiceTestSuite) TestUnfollow() {
	s.mockTenantRepo.EXPECT().
		RemoveFollow(gomock.Any(), &tenantRepo.RemoveFollowInput{TenantID: "guild-1", TargetID: "guild-2"}).
		Return(nil)

	s.NoError(s.service.Unfollow(s.ctx, &UnfollowInput{TenantID: "guild-1", TargetID: "guild-2"}))
}

func (s *TenantServiceTestSuite) TestSetPrivacy() {
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), &tenantRepo.GetTenantInput{TenantID: "guild-1"}).
		Return(s.existingGuild(), nil)

	expected := s.existingGuild()
	expected.Privacy = models.PrivacyPrivate
	expected.UpdatedAt = s.testTime

	s.mockTenantRepo.EXPECT().
		SaveTenant(gomock.Any(), &tenantRepo.SaveTenantInput{Tenant: expected}).
		Return(nil)

	s.NoError(s.service.SetPrivacy(s.ctx, &SetPrivacyInput{
		TenantID: "guild-1",
		Privacy:  models.PrivacyPrivate,
	}))
}

func (s *TenantServiceTestSuite) TestSetPrivacy_Invalid() {
	err := s.service.SetPrivacy(s.ctx, &SetPrivacyInput{TenantID: "guild-1", Privacy: "secret"})
	s.ErrorIs(err, ErrInvalidPrivacy)
}

func (s *TenantServiceTestSuite) TestSetPrivacy_UnknownTenant() {
	s.mockTenantRepo.EXPECT().
		GetTenant(gomock.Any(), gomock.Any()).
		Return(nil, tenantRepo.ErrTenantNotFound)

	err := s.service.SetPrivacy(s.ctx, &SetPrivacyInput{TenantID: "guild-1", Privacy: models.PrivacyPublic})
	s.ErrorIs(err, ErrTenantNotFound)
}
