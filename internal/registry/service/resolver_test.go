package service

//go:generate mockgen -source=resolver.go -destination=mocks/mocks.go -package=mocks Store
//go:generate mockgen -source=../providers/provider.go -destination=mocks/discovery_mock.go -package=mocks Discovery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tailscan/internal/registry/models"
	"tailscan/internal/registry/providers"
	"tailscan/internal/registry/service/mocks"
	"tailscan/internal/tailnumber"
	dErrors "tailscan/pkg/domain-errors"
	"tailscan/pkg/platform/sentinel"
)

// =============================================================================
// Resolver Test Suite
// =============================================================================
// Justification for unit tests: the tier ordering, the refusal to persist or
// return unverified candidates, and the not-found terminal state are pure
// orchestration decisions that mocks pin down precisely.

type ResolverSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	faa       *mocks.MockDiscovery
	registry  *providers.Registry
	service   *Service
	checkedAt time.Time
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.faa = mocks.NewMockDiscovery(s.ctrl)
	s.faa.EXPECT().Country().Return(tailnumber.CountryUS).AnyTimes()
	s.faa.EXPECT().ID().Return("faa-live").AnyTimes()

	s.registry = providers.NewRegistry()
	s.Require().NoError(s.registry.Register(s.faa))
	s.checkedAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	svc, err := New(s.store, s.registry, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)
	s.service = svc
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResolverSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil, s.registry)
		s.ErrorContains(err, "registry store is required")
	})

	s.Run("options are applied", func() {
		svc, err := New(s.store, nil, WithDiscoveryTimeout(time.Second), WithAllowEstimated(true))
		s.Require().NoError(err)
		s.Equal(time.Second, svc.discoveryTimeout)
		s.True(svc.allowEstimated)
	})
}

func (s *ResolverSuite) TestRegistryHit() {
	s.store.EXPECT().FindByKey(gomock.Any(), "9305P").Return(&models.RegistryRecord{
		NNumber:          "9305P",
		Manufacturer:     "PIPER AIRCRAFT INC",
		Model:            "PA-28-161",
		YearManufactured: 1979,
		OwnerName:        "SKYLINE FLYING CLUB",
	}, nil)

	identity, err := s.service.Resolve(context.Background(), "N9305P")
	s.Require().NoError(err)
	s.Equal("N9305P", identity.TailNumber)
	s.Equal("PIPER", identity.Manufacturer)
	s.Equal("PA-28-161", identity.Model)
	s.Equal(tailnumber.CountryUS, identity.Country)
	s.Equal(models.SourceRegistry, identity.Source)
	s.Equal(models.VerificationVerified, identity.Verification)
	s.True(identity.BrandResolved)
}

func (s *ResolverSuite) TestNumericManufacturerIsUnresolved() {
	s.store.EXPECT().FindByKey(gomock.Any(), "12345").Return(&models.RegistryRecord{
		NNumber:      "12345",
		Manufacturer: "2072738",
		Model:        "172S",
	}, nil)

	identity, err := s.service.Resolve(context.Background(), "N12345")
	s.Require().NoError(err)
	s.Equal(unresolvedBrand, identity.Manufacturer)
	s.False(identity.BrandResolved)
}

func (s *ResolverSuite) TestDiscoveryVerifiedIsPersisted() {
	s.store.EXPECT().FindByKey(gomock.Any(), "904GS").Return(nil, sentinel.ErrNotFound)
	s.faa.EXPECT().Discover(gomock.Any(), "N904GS").Return(&providers.Result{
		ProviderID:         "faa-live",
		Found:              true,
		VerificationStatus: "VERIFIED",
		CheckedAt:          s.checkedAt,
		Record: &models.RegistryRecord{
			Manufacturer: "CIRRUS DESIGN CORP",
			Model:        "SR22",
			OwnerName:    "GS AVIATION LLC",
		},
	}, nil)
	s.store.EXPECT().UpsertDiscovered(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.RegistryRecord) error {
			s.Equal("904GS", r.NNumber)
			s.Equal(tailnumber.CountryUS, r.Country)
			return nil
		})

	identity, err := s.service.Resolve(context.Background(), "N904GS")
	s.Require().NoError(err)
	s.Equal("CIRRUS", identity.Manufacturer)
	s.Equal(models.SourceLiveDiscovery, identity.Source)
}

func (s *ResolverSuite) TestPersistFailureStillResolves() {
	s.store.EXPECT().FindByKey(gomock.Any(), "904GS").Return(nil, sentinel.ErrNotFound)
	s.faa.EXPECT().Discover(gomock.Any(), "N904GS").Return(&providers.Result{
		Found:              true,
		VerificationStatus: "VERIFIED",
		Record:             &models.RegistryRecord{Manufacturer: "CESSNA", Model: "172N"},
	}, nil)
	s.store.EXPECT().UpsertDiscovered(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	identity, err := s.service.Resolve(context.Background(), "N904GS")
	s.Require().NoError(err)
	s.Equal("CESSNA", identity.Manufacturer)
}

func (s *ResolverSuite) TestEstimatedCandidateIsRejected() {
	s.store.EXPECT().FindByKey(gomock.Any(), "904GS").Return(nil, sentinel.ErrNotFound)
	s.faa.EXPECT().Discover(gomock.Any(), "N904GS").Return(&providers.Result{
		Found:              true,
		VerificationStatus: "ESTIMATED",
		Record:             &models.RegistryRecord{Manufacturer: "CESSNA", Model: "172N"},
	}, nil)

	_, err := s.service.Resolve(context.Background(), "N904GS")
	var nf *NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("N904GS", nf.TailNumber)
}

func (s *ResolverSuite) TestEstimatedCandidateAllowedIsNotPersisted() {
	s.service.allowEstimated = true
	s.store.EXPECT().FindByKey(gomock.Any(), "904GS").Return(nil, sentinel.ErrNotFound)
	s.faa.EXPECT().Discover(gomock.Any(), "N904GS").Return(&providers.Result{
		Found:              true,
		VerificationStatus: "PATTERN_MATCH",
		Record:             &models.RegistryRecord{Manufacturer: "CESSNA", Model: "172N"},
	}, nil)
	s.store.EXPECT().UpsertDiscovered(gomock.Any(), gomock.Any()).Times(0)

	identity, err := s.service.Resolve(context.Background(), "N904GS")
	s.Require().NoError(err)
	s.Equal(models.VerificationEstimated, identity.Verification)
}

func (s *ResolverSuite) TestBothTiersMiss() {
	s.Run("discovery reports not found", func() {
		s.store.EXPECT().FindByKey(gomock.Any(), "1").Return(nil, sentinel.ErrNotFound)
		s.faa.EXPECT().Discover(gomock.Any(), "N1").Return(providers.NotFound("faa-live", "", s.checkedAt), nil)

		identity, err := s.service.Resolve(context.Background(), "N1")
		s.Nil(identity)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("discovery errors are a miss", func() {
		s.store.EXPECT().FindByKey(gomock.Any(), "1").Return(nil, sentinel.ErrNotFound)
		s.faa.EXPECT().Discover(gomock.Any(), "N1").Return(nil,
			providers.NewProviderError(providers.ErrorTimeout, "faa-live", "timed out", context.DeadlineExceeded))

		_, err := s.service.Resolve(context.Background(), "N1")
		var nf *NotFoundError
		s.ErrorAs(err, &nf)
	})

	s.Run("no provider for jurisdiction", func() {
		s.store.EXPECT().FindByKey(gomock.Any(), "C-GWKQ").Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Resolve(context.Background(), "C-GWKQ")
		var nf *NotFoundError
		s.ErrorAs(err, &nf)
		s.Equal("C-GWKQ", nf.TailNumber)
	})
}

func (s *ResolverSuite) TestStoreOutageWithoutDiscoveryIsUnavailable() {
	s.store.EXPECT().FindByKey(gomock.Any(), "1").Return(nil, errors.New("connection refused"))
	s.faa.EXPECT().Discover(gomock.Any(), "N1").Return(providers.NotFound("faa-live", "", s.checkedAt), nil)

	_, err := s.service.Resolve(context.Background(), "N1")
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *ResolverSuite) TestInvalidTail() {
	_, err := s.service.Resolve(context.Background(), "XYZ")
	s.ErrorIs(err, tailnumber.ErrInvalid)
}

func (s *ResolverSuite) TestSuggest() {
	s.Run("short input skips the store", func() {
		s.Empty(s.service.Suggest(context.Background(), "n"))
	})

	s.Run("canadian prefix is hyphenated", func() {
		s.store.EXPECT().Suggest(gomock.Any(), "C-FG", suggestionLimit).
			Return([]models.Suggestion{{TailNumber: "C-FGHI"}}, nil)
		got := s.service.Suggest(context.Background(), "cfg")
		s.Len(got, 1)
	})

	s.Run("store errors degrade to empty", func() {
		s.store.EXPECT().Suggest(gomock.Any(), "N9", suggestionLimit).Return(nil, errors.New("boom"))
		got := s.service.Suggest(context.Background(), "n9")
		s.NotNil(got)
		s.Empty(got)
	})
}
