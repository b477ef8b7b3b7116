package repositories

import (
	"context"
	"github.com/maxaizer/simd-age/internal/entities"
	"github.com/stretchr/testify/assert"
	"path/filepath"
	"testing"
)

func newTestDbContext(t *testing.T) *DbContext {
	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("could not create db context: %s", err)
	}
	if err = dbCtx.Migrate(); err != nil {
		t.Fatalf("could not migrate db: %s", err)
	}
	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func Test_Reports_Latest_WhenEmpty_ShouldReturnNil(t *testing.T) {

	reports := NewReportsRepository(newTestDbContext(t).DB)

	latest, err := reports.Latest(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, latest)
}

func Test_Reports_AddAndLatest_ShouldReturnNewest(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()
	reports := NewReportsRepository(newTestDbContext(t).DB)

	first := entities.Report{Region: "Canal", AverageRank: 4, AgeThreshold: 15, PopulationUnder: 725, PopulationKnown: true}
	second := entities.Report{Region: "Paisley South", AverageRank: 16, AgeThreshold: 15}

	assert.NoError(reports.Add(ctx, first))
	assert.NoError(reports.Add(ctx, second))

	count, err := reports.Count(ctx)
	assert.NoError(err)
	assert.Equal(int64(2), count)

	latest, err := reports.Latest(ctx)
	assert.NoError(err)
	if assert.NotNil(latest) {
		assert.Equal("Paisley South", latest.Region)
		assert.Equal(16.0, latest.AverageRank)
		assert.False(latest.PopulationKnown)
		assert.False(latest.CreatedAt.IsZero())
	}
}

func Test_Reports_GetByRegion(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()
	reports := NewReportsRepository(newTestDbContext(t).DB)

	canal := entities.Report{Region: "Canal", AverageRank: 4, AgeThreshold: 15, PopulationUnder: 725, PopulationKnown: true}
	assert.NoError(reports.Add(ctx, canal))
	assert.NoError(reports.Add(ctx, canal))
	assert.NoError(reports.Add(ctx, entities.Report{Region: "Nairn", AverageRank: 900}))

	found, err := reports.GetByRegion(ctx, "Canal")
	assert.NoError(err)
	assert.Len(found, 2)
	for _, report := range found {
		assert.Equal(725, report.PopulationUnder)
	}
}
