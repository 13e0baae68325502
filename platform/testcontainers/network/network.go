package network

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	tcnetwork "github.com/testcontainers/testcontainers-go/network"
)

// Network is a throwaway bridge network shared by the containers of one suite.
type Network struct {
	network *testcontainers.DockerNetwork
}

func NewNetwork(ctx context.Context, projectName string) (*Network, error) {
	net, err := tcnetwork.New(ctx,
		tcnetwork.WithDriver(testcontainers.Bridge),
		tcnetwork.WithAttachable(),
		tcnetwork.WithLabels(map[string]string{
			"project": projectName,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("network.NewNetwork %s: %w", projectName, err)
	}

	return &Network{network: net}, nil
}

func (n *Network) Name() string {
	return n.network.Name
}

func (n *Network) Remove(ctx context.Context) error {
	if err := n.network.Remove(ctx); err != nil {
		return fmt.Errorf("network.Remove %s: %w", n.network.Name, err)
	}
	return nil
}
