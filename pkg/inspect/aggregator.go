package inspect

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jihwankim/porty/pkg/classify"
	"github.com/jihwankim/porty/pkg/docker"
)

// Aggregator assembles a Details record by fanning out the six data-gathering
// sub-queries concurrently. Each seam is a function field so tests can stand
// in failing or panicking sources.
type Aggregator struct {
	ps       func(ctx context.Context, pid int32) PSInfo
	files    func(ctx context.Context, pid int32, port uint16) FileInfo
	parents  func(ctx context.Context, pid int32) []ProcessRef
	children func(ctx context.Context, pid int32) []ProcessRef
	conns    func(ctx context.Context, port uint16) int
	docker   func(ctx context.Context, port uint16) *docker.Info
}

// NewAggregator builds an aggregator wired to the real system data sources.
// envAllowlist restricts which environment variables the detail view shows.
func NewAggregator(envAllowlist []string) *Aggregator {
	table := NewProcTable()

	return &Aggregator{
		ps: func(ctx context.Context, pid int32) PSInfo {
			return collectPSInfo(ctx, pid, envAllowlist)
		},
		files: collectFileInfo,
		parents: func(_ context.Context, pid int32) []ProcessRef {
			return ParentChain(pid, table)
		},
		children: func(ctx context.Context, pid int32) []ProcessRef {
			return children(ctx, pid, table)
		},
		conns: countEstablished,
		docker: func(ctx context.Context, port uint16) *docker.Info {
			cli, err := docker.New()
			if err != nil {
				return nil
			}
			defer cli.Close()

			info, err := cli.LookupByPort(ctx, port)
			if err != nil {
				log.Debug().Err(err).Uint16("port", port).Msg("container lookup failed")
				return nil
			}
			return info
		},
	}
}

// Collect produces the detail record for one (port, pid). All six sub-queries
// run concurrently; a failing or panicking sub-query leaves its field group
// at zero values and never aborts the whole record. The join waits for the
// slowest sub-query.
func (a *Aggregator) Collect(ctx context.Context, port uint16, pid int32, name, execPath string, kind classify.Kind) *Details {
	var (
		psInfo     PSInfo
		fileInfo   FileInfo
		parents    []ProcessRef
		kids       []ProcessRef
		conns      int
		dockerInfo *docker.Info
	)

	var wg sync.WaitGroup
	run := func(name string, task func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Debug().Interface("panic", r).Str("subquery", name).Msg("detail sub-query panicked")
				}
			}()
			task()
		}()
	}

	run("ps", func() { psInfo = a.ps(ctx, pid) })
	run("files", func() { fileInfo = a.files(ctx, pid, port) })
	run("parents", func() { parents = a.parents(ctx, pid) })
	run("children", func() { kids = a.children(ctx, pid) })
	run("connections", func() { conns = a.conns(ctx, port) })
	run("docker", func() {
		if looksLikeDocker(name) {
			dockerInfo = a.docker(ctx, port)
		}
	})
	wg.Wait()

	command := psInfo.Command
	if command == "" {
		command = "unknown"
	}

	return &Details{
		Port:        port,
		PID:         pid,
		ProcessName: name,
		Command:     command,
		WorkingDir:  fileInfo.WorkingDir,
		ExecPath:    execPath,

		UserName: psInfo.UserName,
		UID:      psInfo.UID,

		ParentChain: parents,
		Children:    kids,

		Uptime:    psInfo.Uptime,
		StartTime: psInfo.StartTime,

		MemoryRSSKB:     psInfo.MemoryRSSKB,
		MemoryVirtualKB: psInfo.MemoryVirtualKB,
		CPUPercent:      psInfo.CPUPercent,
		ThreadCount:     psInfo.ThreadCount,
		FileDescriptors: fileInfo.FileDescriptors,

		ListenAddresses:   fileInfo.ListenAddresses,
		ActiveConnections: conns,
		OtherPorts:        fileInfo.OtherPorts,

		EnvVars: psInfo.EnvVars,

		Kind:   kind,
		Docker: dockerInfo,
	}
}

// looksLikeDocker gates the container lookup on the process name so the
// Docker daemon is only queried for runtime-owned listeners.
func looksLikeDocker(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "docker") || strings.Contains(lower, "com.docker")
}
