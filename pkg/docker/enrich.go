package docker

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jihwankim/porty/pkg/classify"
	"github.com/jihwankim/porty/pkg/discovery"
)

// wellKnownServices maps ports commonly published by containers to the
// service usually behind them, used when no running container matches.
var wellKnownServices = map[uint16]string{
	5432:  "postgresql",
	3306:  "mysql",
	6379:  "redis",
	27017: "mongodb",
	7474:  "neo4j-http",
	7473:  "neo4j-https",
	7687:  "neo4j-bolt",
	9200:  "elasticsearch",
	9300:  "elasticsearch-cluster",
	5672:  "rabbitmq",
	15672: "rabbitmq-mgmt",
	11211: "memcached",
	5984:  "couchdb",
	9042:  "cassandra",
	8086:  "influxdb",
	9092:  "kafka",
	9000:  "minio",
	9001:  "minio-console",
}

// EnrichLive queries the container runtime and rewrites the display names
// of container-kind entries in place. A missing or stopped Docker daemon is
// silently tolerated and leaves every entry unchanged.
func EnrichLive(ctx context.Context, entries []discovery.PortEntry) {
	cli, err := New()
	if err != nil {
		log.Debug().Err(err).Msg("docker unavailable, skipping container enrichment")
		return
	}
	defer cli.Close()

	containers, err := cli.List(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("container list failed, skipping enrichment")
		return
	}

	Enrich(entries, containers)
}

// Enrich replaces the display names of docker-owned container entries with
// human-meaningful ones. Entries of other kinds are untouched.
func Enrich(entries []discovery.PortEntry, containers []Container) {
	byPort := make(map[uint16]Container)
	for _, ctr := range containers {
		for _, port := range ctr.HostPorts {
			byPort[port] = ctr
		}
	}

	for i := range entries {
		e := &entries[i]
		if e.Kind != classify.Container {
			continue
		}
		if !strings.Contains(strings.ToLower(e.Process), "docker") {
			continue
		}

		if ctr, ok := byPort[e.Port]; ok {
			e.Process = FriendlyName(ctr.Name, ctr.Image)
		} else if service, ok := wellKnownServices[e.Port]; ok {
			// No matching container; guess from the port alone.
			e.Process = service + " (container)"
		}
	}
}

// FriendlyName derives a display name from a container name and image,
// preferring the image base name when the container name looks
// auto-generated.
func FriendlyName(containerName, image string) string {
	base := imageBaseName(image)

	name := containerName
	if isGenericName(containerName) && !isGenericName(base) {
		name = base
	}

	return name + " (container)"
}

// imageBaseName strips the registry path and tag: "redis" from
// "docker.io/library/redis:7-alpine".
func imageBaseName(image string) string {
	base := image
	if idx := strings.IndexByte(base, ':'); idx >= 0 {
		base = base[:idx]
	}
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	return base
}

// isGenericName reports whether a name looks auto-generated: overly long,
// or composed entirely of hex digits and hyphens.
func isGenericName(name string) bool {
	if len(name) > 20 {
		return true
	}
	for _, c := range name {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
