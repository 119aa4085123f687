//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tailscan/internal/utilization/models"
	"tailscan/internal/utilization/service"
	"tailscan/internal/utilization/store"
	"tailscan/pkg/platform/sentinel"
	"tailscan/pkg/testutil/containers"
)

// cacheContract runs the same assertions against every cache backend.
type cacheContract struct {
	suite.Suite
	cache service.Cache
	reset func()
}

func (s *cacheContract) SetupTest() {
	s.reset()
}

func entry(tail string, hours int, expires time.Time) *models.CacheEntry {
	return &models.CacheEntry{
		TailNumber:    tail,
		TotalHours12M: hours,
		LastTracked:   time.Date(2026, 4, 30, 12, 0, 0, 0, time.UTC),
		Feed:          models.FeedADSB,
		Source:        models.SourceVerifiedLive,
		Raw: models.RawFlights{Flights: []models.Flight{
			{Origin: "KLAX", Destination: "KSFO", FiledAltitude: 8500, FiledETE: 95},
		}},
		ExpiresAt:   expires,
		LastUpdated: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *cacheContract) TestMissingIsNotFound() {
	_, err := s.cache.Get(context.Background(), "N0NE")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *cacheContract) TestUpsertRoundTrip() {
	ctx := context.Background()
	expires := time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.cache.Upsert(ctx, entry("N904GS", 236, expires)))

	got, err := s.cache.Get(ctx, "N904GS")
	s.Require().NoError(err)
	s.Equal(236, got.TotalHours12M)
	s.Equal(models.FeedADSB, got.Feed)
	s.Equal(models.SourceVerifiedLive, got.Source)
	s.True(got.ExpiresAt.Equal(expires))
	s.Require().Len(got.Raw.Flights, 1)
	s.Equal("KSFO", got.Raw.Flights[0].Destination)
}

// TestUpsertReplaces verifies one row per aircraft: the second write wins.
func (s *cacheContract) TestUpsertReplaces() {
	ctx := context.Background()
	expires := time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.cache.Upsert(ctx, entry("N904GS", 236, expires)))

	simulated := entry("N904GS", 150, expires.Add(time.Hour))
	simulated.Source = models.SourceSimulated
	simulated.Raw = models.RawFlights{Flights: []models.Flight{}}
	s.Require().NoError(s.cache.Upsert(ctx, simulated))

	got, err := s.cache.Get(ctx, "N904GS")
	s.Require().NoError(err)
	s.Equal(150, got.TotalHours12M)
	s.Equal(models.SourceSimulated, got.Source)
	s.Empty(got.Raw.Flights)
}

type PostgresCacheSuite struct {
	cacheContract
}

func TestPostgresCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresCacheSuite))
}

func (s *PostgresCacheSuite) SetupSuite() {
	pg := containers.GetManager().GetPostgres(s.T())
	s.cache = store.NewPostgresCache(pg.DB)
	s.reset = func() {
		s.Require().NoError(pg.TruncateTables(context.Background(), "flight_cache"))
	}
}

type RedisCacheSuite struct {
	cacheContract
	redis *containers.RedisContainer
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	rc := containers.GetManager().GetRedis(s.T())
	s.redis = rc
	s.cache = store.NewRedisCache(rc.Client)
	s.reset = func() {
		s.Require().NoError(rc.FlushAll(context.Background()))
	}
}

// TestEntriesDoNotExpireInRedis verifies freshness is decided by ExpiresAt,
// so a stale entry stays readable for the simulated fallback path.
func (s *RedisCacheSuite) TestEntriesDoNotExpireInRedis() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Upsert(ctx, entry("C-GWKQ", 191, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))))

	ttl, err := s.redis.TTL(ctx, "flight_cache:C-GWKQ")
	s.Require().NoError(err)
	s.Equal(time.Duration(-1), ttl)

	got, err := s.cache.Get(ctx, "C-GWKQ")
	s.Require().NoError(err)
	s.False(got.Fresh(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
}
