package discovery_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihwankim/porty/pkg/classify"
	"github.com/jihwankim/porty/pkg/discovery"
)

type fakeResolver struct {
	names map[int32]string
	exes  map[int32]string
}

func (f fakeResolver) Name(pid int32) (string, error) {
	if name, ok := f.names[pid]; ok {
		return name, nil
	}
	return "", errors.New("no such pid")
}

func (f fakeResolver) ExePath(pid int32) (string, error) {
	if exe, ok := f.exes[pid]; ok {
		return exe, nil
	}
	return "", errors.New("no such pid")
}

func TestExtractPort(t *testing.T) {
	tests := []struct {
		addr string
		want uint16
		ok   bool
	}{
		{"*:3000", 3000, true},
		{"127.0.0.1:8080", 8080, true},
		{"[::1]:5432", 5432, true},
		{"*:3000 (LISTEN)", 3000, true},
		{"no-colon", 0, false},
		{":", 0, false},
		{"host:", 0, false},
		{"host:abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		port, ok := discovery.ExtractPort(tt.addr)
		assert.Equal(t, tt.ok, ok, "addr %q", tt.addr)
		assert.Equal(t, tt.want, port, "addr %q", tt.addr)
	}
}

const lsofFixture = `p42
cnode
n*:8080
n[::1]:8080
p99
cpostgres
n127.0.0.1:5432
`

func TestParseDeduplicatesDualStackBinds(t *testing.T) {
	resolver := fakeResolver{
		names: map[int32]string{42: "node", 99: "postgres"},
		exes:  map[int32]string{42: "/usr/local/bin/node"},
	}

	entries := discovery.Parse(lsofFixture, resolver)
	require.Len(t, entries, 2)

	assert.Equal(t, uint16(8080), entries[0].Port)
	assert.Equal(t, int32(42), entries[0].PID)
	assert.Equal(t, "node", entries[0].Process)
	assert.Equal(t, "/usr/local/bin/node", entries[0].ExecPath)
	assert.Equal(t, classify.Dev, entries[0].Kind)

	assert.Equal(t, uint16(5432), entries[1].Port)
	assert.Equal(t, int32(99), entries[1].PID)
	assert.Equal(t, classify.Database, entries[1].Kind)
}

func TestParseFallsBackToCommandRecord(t *testing.T) {
	// Resolver knows nothing; the c record fills in the name.
	entries := discovery.Parse("p7\ncmystery\nn*:4000\n", fakeResolver{})
	require.Len(t, entries, 1)
	assert.Equal(t, "mystery", entries[0].Process)
	assert.Empty(t, entries[0].ExecPath)
}

func TestParseSkipsMalformedRecords(t *testing.T) {
	text := "p42\n" + // pid context
		"cnode\n" +
		"x12345\n" + // unknown tag, ignored
		"\n" + // blank line, skipped
		"nno-port-here\n" + // no colon, skipped
		"n*:3000\n"

	entries := discovery.Parse(text, fakeResolver{names: map[int32]string{42: "node"}})
	require.Len(t, entries, 1)
	assert.Equal(t, uint16(3000), entries[0].Port)
}

func TestParseAddressWithoutPIDContext(t *testing.T) {
	// An n record before any p record has nothing to attach to.
	entries := discovery.Parse("n*:3000\np42\ncnode\nn*:3001\n", fakeResolver{names: map[int32]string{42: "node"}})
	require.Len(t, entries, 1)
	assert.Equal(t, uint16(3001), entries[0].Port)
}

func TestParseIsIdempotent(t *testing.T) {
	resolver := fakeResolver{names: map[int32]string{42: "node", 99: "postgres"}}

	first := discovery.Parse(lsofFixture, resolver)
	second := discovery.Parse(lsofFixture, resolver)
	assert.Equal(t, first, second)
}

func TestParseResetsCommandFallbackPerProcess(t *testing.T) {
	// The second process has no c record; its fallback must not leak
	// from the first.
	text := "p42\ncnode\nn*:3000\np99\nn*:4000\n"

	entries := discovery.Parse(text, fakeResolver{})
	require.Len(t, entries, 2)
	assert.Equal(t, "node", entries[0].Process)
	assert.Empty(t, entries[1].Process)
}

func TestFilters(t *testing.T) {
	entries := []discovery.PortEntry{
		{Port: 3000, Kind: classify.Dev},
		{Port: 5432, Kind: classify.Database},
		{Port: 6379, Kind: classify.Container},
		{Port: 631, Kind: classify.System},
		{Port: 60000, Kind: classify.Unknown},
	}

	def := discovery.FilterDefault(entries)
	require.Len(t, def, 2)
	assert.Equal(t, uint16(3000), def[0].Port)
	assert.Equal(t, uint16(60000), def[1].Port)

	dev := discovery.FilterDev(entries)
	require.Len(t, dev, 1)
	assert.Equal(t, uint16(3000), dev[0].Port)

	prod := discovery.FilterProd(entries)
	require.Len(t, prod, 2)
	assert.Equal(t, uint16(3000), prod[0].Port)
	assert.Equal(t, uint16(6379), prod[1].Port)

	assert.Len(t, discovery.FilterPort(entries, 5432), 1)
	assert.Empty(t, discovery.FilterPort(entries, 5433))
}
