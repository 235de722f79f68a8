package inspect

import (
	"context"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jihwankim/porty/pkg/discovery"
)

// FileInfo carries everything the combined lsof query yields for one pid.
type FileInfo struct {
	WorkingDir      string
	FileDescriptors int
	ListenAddresses []string
	OtherPorts      []uint16
}

// collectFileInfo gathers open-file facts for a pid. The combined -Fn pass
// cannot reliably tell the cwd descriptor from network ones, so a second,
// narrow call isolates the working directory.
func collectFileInfo(ctx context.Context, pid int32, port uint16) FileInfo {
	var info FileInfo

	pidArg := strconv.FormatInt(int64(pid), 10)

	out, err := exec.CommandContext(ctx, "lsof", "-p", pidArg, "-Fn").Output()
	if err != nil {
		log.Debug().Err(err).Int32("pid", pid).Msg("combined lsof query failed")
	} else {
		info = parseFileInfo(string(out), port)
	}

	if out, err := exec.CommandContext(ctx, "lsof", "-p", pidArg, "-a", "-d", "cwd", "-Fn").Output(); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if strings.HasPrefix(line, "n") {
				info.WorkingDir = line[1:]
				break
			}
		}
	}

	return info
}

// parseFileInfo scans lsof -Fn field records: `f` records count open
// descriptors, colon-containing `n` records are network addresses whose
// ports are bucketed into this-port listen addresses versus other ports.
func parseFileInfo(text string, port uint16) FileInfo {
	var info FileInfo
	otherPorts := make(map[uint16]bool)

	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		switch line[0] {
		case 'f':
			info.FileDescriptors++
		case 'n':
			value := line[1:]
			if !strings.Contains(value, ":") {
				continue
			}
			p, ok := discovery.ExtractPort(value)
			if !ok {
				continue
			}
			if p == port {
				info.ListenAddresses = append(info.ListenAddresses, value)
			} else {
				otherPorts[p] = true
			}
		}
	}

	for p := range otherPorts {
		info.OtherPorts = append(info.OtherPorts, p)
	}
	sort.Slice(info.OtherPorts, func(i, j int) bool { return info.OtherPorts[i] < info.OtherPorts[j] })

	return info
}

// countEstablished counts established TCP connections on a port.
func countEstablished(ctx context.Context, port uint16) int {
	out, err := exec.CommandContext(ctx, "lsof",
		"-iTCP:"+strconv.FormatUint(uint64(port), 10), "-sTCP:ESTABLISHED", "-t").Output()
	if err != nil {
		// lsof exits non-zero when nothing matches; treat it as zero.
		return 0
	}

	count := 0
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
