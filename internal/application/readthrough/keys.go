package readthrough

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"lending-metrics-api/internal/domain/entities"
)

const keySeparator = ":"

// Key identifies one cached resource parameterization
type Key string

// NewKey joins resource and its dimensions. Each part is escaped so distinct
// parameterizations never produce the same key.
func NewKey(resource string, dims ...string) Key {
	parts := make([]string, 0, len(dims)+1)
	parts = append(parts, url.QueryEscape(resource))
	for _, d := range dims {
		parts = append(parts, url.QueryEscape(d))
	}
	return Key(strings.Join(parts, keySeparator))
}

// Resource is the first segment of the key, used as a low-cardinality label
func (k Key) Resource() string {
	resource, _, _ := strings.Cut(string(k), keySeparator)
	if unescaped, err := url.QueryUnescape(resource); err == nil {
		return unescaped
	}
	return resource
}

func (k Key) String() string {
	return string(k)
}

func MetricsKey(cluster entities.Cluster) Key {
	return NewKey("metrics", cluster.String())
}

func LoansKey(cluster entities.Cluster) Key {
	return NewKey("loans", cluster.String())
}

func OwnerLoansKey(cluster entities.Cluster, owner string) Key {
	return NewKey("owner-loans", cluster.String(), owner)
}

func StakingKey(cluster entities.Cluster) Key {
	return NewKey("staking", cluster.String())
}

func HbbStakersKey(cluster entities.Cluster) Key {
	return NewKey("stakers-hbb", cluster.String())
}

func UsdhStakersKey(cluster entities.Cluster) Key {
	return NewKey("stakers-usdh", cluster.String())
}

func CirculatingSupplyKey(cluster entities.Cluster) Key {
	return NewKey("circulating-supply", cluster.String())
}

func CirculatingSupplyValueKey(cluster entities.Cluster) Key {
	return NewKey("circulating-supply-value", cluster.String())
}

// HistoryKey is keyed by the millisecond bounds of the requested range
func HistoryKey(cluster entities.Cluster, from, to time.Time) Key {
	return NewKey("history", cluster.String(),
		strconv.FormatInt(from.UnixMilli(), 10), strconv.FormatInt(to.UnixMilli(), 10))
}
