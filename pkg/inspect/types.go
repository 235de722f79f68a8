// Package inspect assembles the on-demand diagnostic record for one port.
package inspect

import (
	"github.com/jihwankim/porty/pkg/classify"
	"github.com/jihwankim/porty/pkg/docker"
)

// ProcessRef is a (pid, name) reference into the process tree.
type ProcessRef struct {
	PID  int32
	Name string
}

// EnvVar is one allow-listed environment variable of the inspected process.
type EnvVar struct {
	Key   string
	Value string
}

// Details is the deep snapshot for one (port, pid), assembled from six
// independently fallible sub-queries. Any sub-query failure leaves its
// fields at their zero values.
type Details struct {
	Port        uint16
	PID         int32
	ProcessName string
	Command     string
	WorkingDir  string
	ExecPath    string

	UserName string
	UID      uint32

	// ParentChain is ordered oldest ancestor first, immediate parent
	// last. It never contains pid 0 or 1 and holds at most ten entries.
	ParentChain []ProcessRef
	Children    []ProcessRef

	Uptime    string
	StartTime string

	// Memory values stay in KB; MB conversion happens at render time.
	MemoryRSSKB     uint64
	MemoryVirtualKB uint64
	CPUPercent      float64
	ThreadCount     int
	FileDescriptors int

	ListenAddresses   []string
	ActiveConnections int
	OtherPorts        []uint16

	EnvVars []EnvVar

	Kind   classify.Kind
	Docker *docker.Info
}
