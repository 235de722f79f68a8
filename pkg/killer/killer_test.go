package killer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihwankim/porty/pkg/classify"
	"github.com/jihwankim/porty/pkg/discovery"
	"github.com/jihwankim/porty/pkg/killer"
)

func TestTargetsDeduplicatesByPID(t *testing.T) {
	// Dual-stack listener: two raw entries, one process.
	entries := []discovery.PortEntry{
		{Port: 8080, PID: 42, Process: "node", Kind: classify.Dev},
		{Port: 8080, PID: 42, Process: "node", Kind: classify.Dev},
		{Port: 8080, PID: 43, Process: "node-worker", Kind: classify.Dev},
	}

	targets := killer.Targets(entries, 8080)
	require.Len(t, targets, 2)
	assert.Equal(t, int32(42), targets[0].PID)
	assert.Equal(t, int32(43), targets[1].PID)
}

func TestTargetsFiltersByPort(t *testing.T) {
	entries := []discovery.PortEntry{
		{Port: 8080, PID: 42, Process: "node"},
		{Port: 3000, PID: 77, Process: "vite"},
	}

	targets := killer.Targets(entries, 3000)
	require.Len(t, targets, 1)
	assert.Equal(t, int32(77), targets[0].PID)
}

func TestTargetsSkipsUnattributedEntries(t *testing.T) {
	entries := []discovery.PortEntry{
		{Port: 8080, PID: 0, Process: "ghost"},
		{Port: 8080, PID: 42, Process: ""},
	}

	assert.Empty(t, killer.Targets(entries, 8080))
}
