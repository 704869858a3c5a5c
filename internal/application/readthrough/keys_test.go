package readthrough

import (
	"testing"
	"time"

	"lending-metrics-api/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestNewKey_Escaping(t *testing.T) {
	assert.Equal(t, Key("metrics:mainnet-beta"), NewKey("metrics", "mainnet-beta"))
	assert.Equal(t, Key("metrics"), NewKey("metrics"))

	// a separator inside a dimension must not collide with two dimensions
	assert.NotEqual(t, NewKey("owner-loans", "a:b"), NewKey("owner-loans", "a", "b"))
	assert.Equal(t, Key("owner-loans:a%3Ab"), NewKey("owner-loans", "a:b"))
}

func TestKey_Resource(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{MetricsKey(entities.ClusterMainnet), "metrics"},
		{OwnerLoansKey(entities.ClusterDevnet, "owner"), "owner-loans"},
		{NewKey("a b", "x"), "a b"},
		{Key("bare"), "bare"},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Resource())
		})
	}
}

func TestResourceKeys_DistinctPerCluster(t *testing.T) {
	builders := map[string]func(entities.Cluster) Key{
		"metrics":                  MetricsKey,
		"loans":                    LoansKey,
		"staking":                  StakingKey,
		"stakers-hbb":              HbbStakersKey,
		"stakers-usdh":             UsdhStakersKey,
		"circulating-supply":       CirculatingSupplyKey,
		"circulating-supply-value": CirculatingSupplyValueKey,
	}

	seen := map[Key]bool{}
	for resource, build := range builders {
		mainnet := build(entities.ClusterMainnet)
		devnet := build(entities.ClusterDevnet)

		assert.Equal(t, resource, mainnet.Resource())
		assert.NotEqual(t, mainnet, devnet)
		assert.False(t, seen[mainnet], "duplicate key %s", mainnet)
		assert.False(t, seen[devnet], "duplicate key %s", devnet)
		seen[mainnet] = true
		seen[devnet] = true
	}
}

func TestHistoryKey(t *testing.T) {
	from := time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)

	key := HistoryKey(entities.ClusterMainnet, from, to)
	assert.Equal(t, Key("history:mainnet-beta:1648771200000:1651363200000"), key)
	assert.NotEqual(t, key, HistoryKey(entities.ClusterMainnet, from, to.Add(time.Millisecond)))
}
