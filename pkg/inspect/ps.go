package inspect

import (
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"
)

// PSInfo carries everything the combined ps query yields for one pid.
type PSInfo struct {
	Command         string
	UserName        string
	UID             uint32
	Uptime          string
	StartTime       string
	MemoryRSSKB     uint64
	MemoryVirtualKB uint64
	CPUPercent      float64
	ThreadCount     int
	EnvVars         []EnvVar
}

// collectPSInfo gathers process attributes for a pid. One combined ps call
// covers most fields; narrow follow-ups fetch the exact command string, the
// start timestamp and the thread count. Every failure degrades to defaults.
func collectPSInfo(ctx context.Context, pid int32, envAllowlist []string) PSInfo {
	info := PSInfo{
		UserName:  "unknown",
		Uptime:    "unknown",
		StartTime: "unknown",
	}

	pidArg := strconv.FormatInt(int64(pid), 10)

	if out, err := exec.CommandContext(ctx, "ps", "-p", pidArg,
		"-o", "command=,user=,uid=,rss=,vsz=,%cpu=,etime=").Output(); err == nil {
		parsePSLine(strings.TrimSpace(string(out)), &info)
	} else {
		log.Debug().Err(err).Int32("pid", pid).Msg("combined ps query failed")
	}

	// The exact command string, separate from the parsed-from-the-right
	// combined line where inner whitespace is lossy.
	if out, err := exec.CommandContext(ctx, "ps", "-p", pidArg, "-o", "command=").Output(); err == nil {
		if cmd := strings.TrimSpace(string(out)); cmd != "" {
			info.Command = cmd
		}
	}

	// lstart contains spaces, so it cannot ride along in the combined line.
	if out, err := exec.CommandContext(ctx, "ps", "-p", pidArg, "-o", "lstart=").Output(); err == nil {
		if start := strings.TrimSpace(string(out)); start != "" {
			info.StartTime = start
		}
	}

	info.ThreadCount = threadCount(ctx, pid)
	info.EnvVars = readEnvVars(ctx, pid, envAllowlist)

	return info
}

// parsePSLine splits a combined ps line from the right: the six trailing
// fields are fixed-format, everything before them is the command, which may
// itself contain spaces.
func parsePSLine(line string, info *PSInfo) {
	fields := strings.Fields(line)
	if len(fields) < 7 {
		return
	}

	n := len(fields)
	info.Uptime = fields[n-1]
	info.CPUPercent = parseFloat(fields[n-2])
	info.MemoryVirtualKB = parseUint(fields[n-3])
	info.MemoryRSSKB = parseUint(fields[n-4])
	info.UID = uint32(parseUint(fields[n-5]))
	info.UserName = fields[n-6]
	info.Command = strings.Join(fields[:n-6], " ")
}

// threadCount reads the thread count. On darwin the per-thread ps listing is
// counted (lines minus header); elsewhere the process table has it directly.
func threadCount(ctx context.Context, pid int32) int {
	if runtime.GOOS == "darwin" {
		out, err := exec.CommandContext(ctx, "ps", "-M", "-p", strconv.FormatInt(int64(pid), 10)).Output()
		if err != nil {
			return 0
		}
		lines := strings.Count(strings.TrimRight(string(out), "\n"), "\n")
		if lines < 1 {
			return 1
		}
		return lines
	}

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return 0
	}
	threads, err := p.NumThreadsWithContext(ctx)
	if err != nil {
		return 0
	}
	return int(threads)
}

// readEnvVars pulls the process environment from ps and keeps only
// allow-listed keys to avoid leaking secrets into the detail view.
func readEnvVars(ctx context.Context, pid int32, allowlist []string) []EnvVar {
	out, err := exec.CommandContext(ctx, "ps", "eww", strconv.FormatInt(int64(pid), 10)).Output()
	if err != nil {
		return nil
	}

	allowed := make(map[string]bool, len(allowlist))
	for _, key := range allowlist {
		allowed[key] = true
	}

	var vars []EnvVar
	for _, line := range strings.Split(string(out), "\n") {
		for _, part := range strings.Fields(line) {
			eq := strings.IndexByte(part, '=')
			if eq <= 0 {
				continue
			}
			key := part[:eq]
			if allowed[key] {
				vars = append(vars, EnvVar{Key: key, Value: part[eq+1:]})
			}
		}
	}

	return vars
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseUint(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
