// Package discovery enumerates local TCP listeners and their owning processes.
package discovery

import "github.com/jihwankim/porty/pkg/classify"

// PortEntry represents one TCP listener at the moment of discovery.
type PortEntry struct {
	// Port is the listening TCP port.
	Port uint16

	// PID is the owning process id; zero or negative when the OS could
	// not attribute the listener to a process.
	PID int32

	// Process is the display name: the resolved process name, the lsof
	// command fallback, or a friendly container name after enrichment.
	Process string

	// ExecPath is the fully-resolved executable path, when known.
	ExecPath string

	// Kind is the category assigned at discovery time. Container
	// enrichment may rewrite Process but never the kind.
	Kind classify.Kind
}

// HasPID reports whether the listener was attributed to a process.
func (e PortEntry) HasPID() bool {
	return e.PID > 0
}

// FilterDefault keeps the entries shown when no subcommand is given:
// dev servers plus anything unclassified.
func FilterDefault(entries []PortEntry) []PortEntry {
	return filter(entries, classify.Dev, classify.Unknown)
}

// FilterDev keeps only dev-server entries.
func FilterDev(entries []PortEntry) []PortEntry {
	return filter(entries, classify.Dev)
}

// FilterProd keeps dev servers and containers.
func FilterProd(entries []PortEntry) []PortEntry {
	return filter(entries, classify.Dev, classify.Container)
}

// FilterPort keeps entries bound to the given port.
func FilterPort(entries []PortEntry, port uint16) []PortEntry {
	var out []PortEntry
	for _, e := range entries {
		if e.Port == port {
			out = append(out, e)
		}
	}
	return out
}

func filter(entries []PortEntry, kinds ...classify.Kind) []PortEntry {
	var out []PortEntry
	for _, e := range entries {
		for _, k := range kinds {
			if e.Kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
