package docker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jihwankim/porty/pkg/classify"
	"github.com/jihwankim/porty/pkg/discovery"
	"github.com/jihwankim/porty/pkg/docker"
)

func TestFriendlyNamePrefersImageForGenericNames(t *testing.T) {
	// 24 hex chars reads as auto-generated; the image base wins.
	got := docker.FriendlyName("a1b2c3d4e5f6a1b2c3d4e5f6", "redis:7-alpine")
	assert.Equal(t, "redis (container)", got)
}

func TestFriendlyNameKeepsMeaningfulContainerNames(t *testing.T) {
	got := docker.FriendlyName("my-app", "redis:7-alpine")
	assert.Equal(t, "my-app (container)", got)
}

func TestFriendlyNameStripsRegistryAndTag(t *testing.T) {
	got := docker.FriendlyName("0123456789abcdef0123456789", "docker.io/library/postgres:16")
	assert.Equal(t, "postgres (container)", got)
}

func TestEnrichRewritesDockerOwnedEntries(t *testing.T) {
	entries := []discovery.PortEntry{
		{Port: 6379, PID: 10, Process: "com.docker.backend", Kind: classify.Container},
		{Port: 3000, PID: 11, Process: "node", Kind: classify.Dev},
	}
	containers := []docker.Container{
		{ID: "abc123def456", Name: "cache", Image: "redis:7", HostPorts: []uint16{6379}},
	}

	docker.Enrich(entries, containers)

	assert.Equal(t, "cache (container)", entries[0].Process)
	// Non-container entries are untouched.
	assert.Equal(t, "node", entries[1].Process)
}

func TestEnrichLeavesNonDockerContainerKindsAlone(t *testing.T) {
	// Container kind but the process itself is not the docker runtime.
	entries := []discovery.PortEntry{
		{Port: 6379, PID: 10, Process: "podman", Kind: classify.Container},
	}

	docker.Enrich(entries, []docker.Container{
		{ID: "abc", Name: "cache", Image: "redis:7", HostPorts: []uint16{6379}},
	})

	assert.Equal(t, "podman", entries[0].Process)
}

func TestEnrichFallsBackToWellKnownServices(t *testing.T) {
	// Docker-owned port with no matching container: guess by port.
	entries := []discovery.PortEntry{
		{Port: 5432, PID: 10, Process: "com.docker.backend", Kind: classify.Container},
		{Port: 9092, PID: 10, Process: "com.docker.backend", Kind: classify.Container},
		{Port: 60000, PID: 10, Process: "com.docker.backend", Kind: classify.Container},
	}

	docker.Enrich(entries, nil)

	assert.Equal(t, "postgresql (container)", entries[0].Process)
	assert.Equal(t, "kafka (container)", entries[1].Process)
	// Unknown port keeps the raw runtime name.
	assert.Equal(t, "com.docker.backend", entries[2].Process)
}

func TestEnrichWithNoContainersIsANoOpForNonWellKnownPorts(t *testing.T) {
	entries := []discovery.PortEntry{
		{Port: 8123, PID: 10, Process: "com.docker.backend", Kind: classify.Container},
	}
	before := entries[0]

	docker.Enrich(entries, nil)

	assert.Equal(t, before, entries[0])
}
