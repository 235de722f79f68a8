package discovery

import "github.com/shirou/gopsutil/v3/process"

// ProcessResolver looks up process attributes straight from the OS process
// table, without spawning a subprocess.
type ProcessResolver interface {
	// Name returns the short process name for a pid.
	Name(pid int32) (string, error)

	// ExePath returns the resolved executable path for a pid.
	ExePath(pid int32) (string, error)
}

// NewResolver returns the gopsutil-backed resolver used outside tests.
func NewResolver() ProcessResolver {
	return psutilResolver{}
}

type psutilResolver struct{}

func (psutilResolver) Name(pid int32) (string, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", err
	}
	return p.Name()
}

func (psutilResolver) ExePath(pid int32) (string, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", err
	}
	return p.Exe()
}
