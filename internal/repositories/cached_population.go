package repositories

import (
	"fmt"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type populationTable interface {
	Load(path string) (bool, error)
	Regions() []string
	PopulationUnder(region string, age int) int
	MatchRegion(region string) (string, bool)
}

// CachedPopulation memoises PopulationUnder answers until the next Load.
type CachedPopulation struct {
	table populationTable
	cache *gocache.Cache
}

func NewCachedPopulation(table populationTable) *CachedPopulation {
	return &CachedPopulation{table: table, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedPopulation) Load(path string) (bool, error) {
	loaded, err := c.table.Load(path)
	c.cache.Flush()
	return loaded, err
}

func (c *CachedPopulation) Regions() []string {
	return c.table.Regions()
}

func (c *CachedPopulation) MatchRegion(region string) (string, bool) {
	return c.table.MatchRegion(region)
}

func (c *CachedPopulation) PopulationUnder(region string, age int) int {
	key := fmt.Sprintf("%d|%s", age, region)
	if value, found := c.cache.Get(key); found {
		return value.(int)
	}

	population := c.table.PopulationUnder(region, age)
	c.cache.Set(key, population, gocache.DefaultExpiration)
	return population
}
