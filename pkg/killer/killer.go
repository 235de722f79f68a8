// Package killer terminates the processes bound to a port.
package killer

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/jihwankim/porty/pkg/discovery"
)

// DefaultGracePeriod is how long a process gets between the graceful
// terminate and the forceful kill.
const DefaultGracePeriod = 300 * time.Millisecond

// Target is one process selected for termination.
type Target struct {
	PID     int32
	Process string
}

// Targets selects the processes listening on a port, deduplicated by pid so
// a process with multiple sockets on the port is signaled only once.
func Targets(entries []discovery.PortEntry, port uint16) []Target {
	var targets []Target
	seen := make(map[int32]bool)

	for _, e := range entries {
		if e.Port != port || !e.HasPID() || e.Process == "" {
			continue
		}
		if seen[e.PID] {
			continue
		}
		seen[e.PID] = true
		targets = append(targets, Target{PID: e.PID, Process: e.Process})
	}

	return targets
}

// Kill sends the graceful-then-forceful termination sequence with the
// default grace period.
func Kill(pid int32) error {
	return KillWithGrace(pid, DefaultGracePeriod)
}

// KillWithGrace terminates a process: SIGTERM, wait, then SIGKILL if the
// process is still alive after the grace period.
func KillWithGrace(pid int32, grace time.Duration) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return fmt.Errorf("process %d not found: %w", pid, err)
	}

	if err := p.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate pid %d: %w", pid, err)
	}

	time.Sleep(grace)

	running, err := p.IsRunning()
	if err != nil || !running {
		return nil
	}

	if err := p.Kill(); err != nil {
		return fmt.Errorf("failed to kill pid %d: %w", pid, err)
	}

	return nil
}
