package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lsofFilesFixture = `p42
fcwd
n/Users/alice/app
f0
n/dev/null
f12
n*:3000
f13
n[::1]:3000
f14
n127.0.0.1:9229
f15
nlocalhost:54321->localhost:5432
`

func TestParseFileInfo(t *testing.T) {
	info := parseFileInfo(lsofFilesFixture, 3000)

	// One f record per descriptor.
	assert.Equal(t, 6, info.FileDescriptors)

	// Addresses on the inspected port, both families.
	require.Len(t, info.ListenAddresses, 2)
	assert.Equal(t, "*:3000", info.ListenAddresses[0])
	assert.Equal(t, "[::1]:3000", info.ListenAddresses[1])

	// Every other network port, sorted ascending.
	assert.Equal(t, []uint16{5432, 9229}, info.OtherPorts)
}

func TestParseFileInfoIgnoresNonNetworkPaths(t *testing.T) {
	info := parseFileInfo("p1\nfcwd\nn/var/log/app.log\nf3\nn/tmp/sock\n", 80)

	assert.Empty(t, info.ListenAddresses)
	assert.Empty(t, info.OtherPorts)
	assert.Equal(t, 2, info.FileDescriptors)
}

func TestParseFileInfoEmptyOutput(t *testing.T) {
	info := parseFileInfo("", 80)

	assert.Zero(t, info.FileDescriptors)
	assert.Empty(t, info.ListenAddresses)
}
