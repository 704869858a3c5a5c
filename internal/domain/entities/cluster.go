package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Cluster identifies the network the protocol state is read from
type Cluster string

const (
	ClusterMainnet Cluster = "mainnet-beta"
	ClusterDevnet  Cluster = "devnet"

	DefaultCluster = ClusterMainnet
)

// ErrUnsupportedCluster is returned for any network other than mainnet-beta and devnet
var ErrUnsupportedCluster = errors.New("unsupported cluster")

// SupportedClusters lists the networks the API serves
func SupportedClusters() []Cluster {
	return []Cluster{ClusterMainnet, ClusterDevnet}
}

// ParseCluster converts the env query value into a Cluster. An empty value selects the default.
func ParseCluster(raw string) (Cluster, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return DefaultCluster, nil
	}

	switch Cluster(value) {
	case ClusterMainnet, ClusterDevnet:
		return Cluster(value), nil
	default:
		return "", fmt.Errorf("%w: %s, try mainnet-beta/devnet instead", ErrUnsupportedCluster, value)
	}
}

func (c Cluster) String() string {
	return string(c)
}
