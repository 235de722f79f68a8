// Package docker resolves listening ports against the container runtime so
// opaque proxy processes can be shown as the containers behind them.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// Container is one running container with its published host ports.
type Container struct {
	ID        string
	Name      string
	Image     string
	Status    string
	HostPorts []uint16
}

// Info is the container metadata attached to a detail record.
type Info struct {
	ContainerID   string
	ContainerName string
	Image         string
	Status        string
	Volumes       []string
}

// Client wraps the Docker API client for port lookups.
type Client struct {
	cli *client.Client
}

// New creates a new Docker client from the environment.
func New() (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &Client{cli: cli}, nil
}

// Close closes the Docker client connection.
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}

// List returns all running containers with their published host ports.
func (c *Client) List(ctx context.Context) ([]Container, error) {
	containers, err := c.cli.ContainerList(ctx, types.ContainerListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	out := make([]Container, 0, len(containers))
	for _, ctr := range containers {
		out = append(out, Container{
			ID:        shortID(ctr.ID),
			Name:      containerName(ctr.Names),
			Image:     ctr.Image,
			Status:    ctr.Status,
			HostPorts: hostPorts(ctr.Ports),
		})
	}

	return out, nil
}

// LookupByPort finds the running container publishing the given host port
// and inspects it for volume mounts. Returns nil when no container matches.
func (c *Client) LookupByPort(ctx context.Context, port uint16) (*Info, error) {
	containers, err := c.cli.ContainerList(ctx, types.ContainerListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	for _, ctr := range containers {
		if !publishes(ctr.Ports, port) {
			continue
		}

		info := &Info{
			ContainerID:   shortID(ctr.ID),
			ContainerName: containerName(ctr.Names),
			Image:         ctr.Image,
			Status:        ctr.Status,
		}

		// Mounts only come back from inspect; tolerate its failure.
		if inspected, err := c.cli.ContainerInspect(ctx, ctr.ID); err == nil {
			for _, m := range inspected.Mounts {
				src := m.Name
				if src == "" {
					src = m.Source
				}
				info.Volumes = append(info.Volumes, src+":"+m.Destination)
			}
		}

		return info, nil
	}

	return nil, nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// containerName picks the first name, minus the '/' prefix Docker adds.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

func hostPorts(ports []types.Port) []uint16 {
	var out []uint16
	for _, p := range ports {
		if p.PublicPort != 0 {
			out = append(out, p.PublicPort)
		}
	}
	return out
}

func publishes(ports []types.Port, port uint16) bool {
	for _, p := range ports {
		if p.PublicPort == port {
			return true
		}
	}
	return false
}
