package discovery

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jihwankim/porty/pkg/classify"
)

// Discover enumerates all TCP listeners visible to the current user.
// A missing or failing lsof is a hard error; callers treat it as "no
// entries" at the application boundary.
func Discover(ctx context.Context) ([]PortEntry, error) {
	return DiscoverWith(ctx, NewResolver())
}

// DiscoverWith is Discover with an injectable process resolver.
func DiscoverWith(ctx context.Context, resolver ProcessResolver) ([]PortEntry, error) {
	// -n no DNS, -P numeric ports, TCP LISTEN only, field output
	// restricted to pid (p), command (c) and address (n) records.
	out, err := exec.CommandContext(ctx, "lsof", "-nP", "-iTCP", "-sTCP:LISTEN", "-Fpcn").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run lsof (is it installed?): %w", err)
	}

	entries := Parse(string(out), resolver)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Port < entries[j].Port })
	return entries, nil
}

// Parse turns lsof -F output into deduplicated port entries. Records are
// single-character-tagged lines: `p<pid>` starts a new process context,
// `c<command>` sets a fallback name for it, and `n<address>` emits an entry.
// Malformed lines are skipped, unknown tags ignored.
func Parse(text string, resolver ProcessResolver) []PortEntry {
	var entries []PortEntry
	seen := make(map[[2]int64]bool) // (port, pid) pairs already emitted

	var currentPID int32
	var currentCmd string

	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		tag, value := line[0], line[1:]
		switch tag {
		case 'p':
			pid, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				currentPID = 0
			} else {
				currentPID = int32(pid)
			}
			currentCmd = "" // reset for the new process
		case 'c':
			currentCmd = value
		case 'n':
			if currentPID <= 0 {
				continue
			}
			port, ok := ExtractPort(value)
			if !ok {
				continue
			}

			// A dual-stack process reports the same port once per
			// address family; keep one entry per (port, pid).
			key := [2]int64{int64(port), int64(currentPID)}
			if seen[key] {
				continue
			}
			seen[key] = true

			entries = append(entries, newEntry(port, currentPID, currentCmd, resolver))
		}
	}

	return entries
}

func newEntry(port uint16, pid int32, fallback string, resolver ProcessResolver) PortEntry {
	name, err := resolver.Name(pid)
	if err != nil || name == "" {
		if err != nil {
			log.Debug().Err(err).Int32("pid", pid).Msg("process name lookup failed, using lsof command")
		}
		name = fallback
	}

	exe, err := resolver.ExePath(pid)
	if err != nil {
		exe = ""
	}

	return PortEntry{
		Port:     port,
		PID:      pid,
		Process:  name,
		ExecPath: exe,
		Kind:     classify.Classify(port, name),
	}
}

// ExtractPort pulls the port out of an lsof address value. Handles
// "*:3000", "127.0.0.1:8080", "[::1]:5432" and trailing state suffixes by
// taking the leading digit run after the last colon.
func ExtractPort(addr string) (uint16, bool) {
	idx := strings.LastIndexByte(addr, ':')
	if idx < 0 {
		return 0, false
	}

	after := addr[idx+1:]
	end := 0
	for end < len(after) && after[end] >= '0' && after[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	port, err := strconv.ParseUint(after[:end], 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(port), true
}
