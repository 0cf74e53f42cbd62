package booking_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"stagelink/models"
	"stagelink/services/booking"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateCard() []models.Service {
	return []models.Service{
		{ID: "A", Name: "Stage show", Rate: 100, RateType: models.RateFlat},
		{ID: "B", Name: "Ambient set", Rate: 50, RateType: models.RatePerHour, MinDurationHours: 2},
	}
}

func TestGetAvailableServices_CacheHitSkipsRepo(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cached, err := json.Marshal(rateCard())
	require.NoError(t, err)
	mock.ExpectGet("ratecard:all").SetVal(string(cached))

	// A nil repo proves the cache path never touches storage.
	svc := &booking.CatalogService{Repo: nil, Cache: db}

	services, err := svc.GetAvailableServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rateCard(), services)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAvailableServices_CacheMissFillsFromRepo(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("ratecard:all").RedisNil()
	mock.Regexp().ExpectSet("ratecard:all", `.*`, 10*time.Minute).SetVal("OK")

	svc := &booking.CatalogService{
		Repo:  &fakeRateCardRepo{services: map[string]models.Service{"A": rateCard()[0], "B": rateCard()[1]}},
		Cache: db,
	}

	services, err := svc.GetAvailableServices(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, rateCard(), services)
}

func TestGetAvailableServices_CorruptCacheFallsThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("ratecard:all").SetVal("{not json")
	mock.Regexp().ExpectSet("ratecard:all", `.*`, 10*time.Minute).SetVal("OK")

	svc := &booking.CatalogService{
		Repo:  &fakeRateCardRepo{services: map[string]models.Service{"A": rateCard()[0]}},
		Cache: db,
	}

	services, err := svc.GetAvailableServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 1)
}

func TestGetAvailableServices_RepoErrorSurfaces(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("ratecard:all").RedisNil()

	svc := &booking.CatalogService{
		Repo:  &failingRateCardRepo{err: errors.New("mongo down")},
		Cache: db,
	}

	_, err := svc.GetAvailableServices(context.Background())
	assert.Error(t, err)
}

type failingRateCardRepo struct {
	err error
}

func (r *failingRateCardRepo) ListAll(ctx context.Context) ([]models.Service, error) {
	return nil, r.err
}

func (r *failingRateCardRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	return nil, r.err
}
