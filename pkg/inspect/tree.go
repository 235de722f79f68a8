package inspect

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// maxAncestors bounds the parent-chain walk.
const maxAncestors = 10

// ProcTable resolves parent pids and names from the OS process table.
type ProcTable interface {
	PPID(pid int32) (int32, error)
	Name(pid int32) (string, error)
}

// NewProcTable returns the gopsutil-backed process table.
func NewProcTable() ProcTable {
	return psutilTable{}
}

type psutilTable struct{}

func (psutilTable) PPID(pid int32) (int32, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return 0, err
	}
	return p.Ppid()
}

func (psutilTable) Name(pid int32) (string, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", err
	}
	return p.Name()
}

// ParentChain walks the ancestry of a pid, oldest ancestor first. The walk
// is bounded to maxAncestors hops, keeps a seen-set so a corrupt process
// table cannot loop it, and stops before pid 0 or 1.
func ParentChain(pid int32, table ProcTable) []ProcessRef {
	var chain []ProcessRef
	seen := map[int32]bool{pid: true}
	current := pid

	for len(chain) < maxAncestors {
		ppid, err := table.PPID(current)
		if err != nil || ppid == 0 || ppid == 1 || seen[ppid] {
			break
		}

		name, err := table.Name(ppid)
		if err != nil {
			break
		}

		seen[ppid] = true
		chain = append([]ProcessRef{{PID: ppid, Name: name}}, chain...)
		current = ppid
	}

	return chain
}

// children lists the direct child processes of a pid.
func children(ctx context.Context, pid int32, table ProcTable) []ProcessRef {
	out, err := exec.CommandContext(ctx, "pgrep", "-P", strconv.FormatInt(int64(pid), 10)).Output()
	if err != nil {
		// pgrep exits 1 when there are no children.
		return nil
	}

	var refs []ProcessRef
	for _, line := range strings.Split(string(out), "\n") {
		childPID, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if err != nil {
			continue
		}
		name, err := table.Name(int32(childPID))
		if err != nil {
			continue
		}
		refs = append(refs, ProcessRef{PID: int32(childPID), Name: name})
	}

	return refs
}
