package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jihwankim/porty/pkg/inspect"
)

// maxEnvShown caps the environment section; the rest is elided with a count.
const maxEnvShown = 10

// PrintDetails renders the sectioned detail view for one port.
func PrintDetails(w io.Writer, d *inspect.Details, colors bool) {
	header, label, section, kind, reset := "", "", "", "", ""
	if colors {
		header = ansiBold + ansiCyan
		label = ansiBold
		section = ansiBold + ansiBlue
		kind = kindANSI(d.Kind)
		reset = ansiReset
	}

	port := fmt.Sprintf("%d", d.Port)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s╭─────────────────────────────────────────────────────────────────────╮%s\n", header, reset)
	fmt.Fprintf(w, "%s│ Port %s - Process Details%s│%s\n", header, port, strings.Repeat(" ", 45-len(port)), reset)
	fmt.Fprintf(w, "%s╰─────────────────────────────────────────────────────────────────────╯%s\n", header, reset)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%sPROCESS INFORMATION%s\n", section, reset)
	fmt.Fprintf(w, "  %sName:%s %s\n", label, reset, d.ProcessName)
	fmt.Fprintf(w, "  %sPID:%s %d\n", label, reset, d.PID)
	fmt.Fprintf(w, "  %sCategory:%s %s%s%s\n", label, reset, kind, d.Kind, reset)
	fmt.Fprintf(w, "  %sCommand:%s %s\n", label, reset, d.Command)
	if d.WorkingDir != "" {
		fmt.Fprintf(w, "  %sDirectory:%s %s\n", label, reset, d.WorkingDir)
	}
	if d.ExecPath != "" {
		fmt.Fprintf(w, "  %sExec Path:%s %s\n", label, reset, d.ExecPath)
	}
	fmt.Fprintf(w, "  %sUser:%s %s (%d)\n", label, reset, d.UserName, d.UID)
	fmt.Fprintf(w, "  %sUptime:%s %s (started %s)\n", label, reset, d.Uptime, d.StartTime)
	fmt.Fprintln(w)

	if len(d.ParentChain) > 0 || len(d.Children) > 0 {
		fmt.Fprintf(w, "%sPROCESS TREE%s\n", section, reset)
		if len(d.ParentChain) > 0 {
			fmt.Fprintf(w, "  %sParents:%s %s -> %s (%d)\n", label, reset,
				joinRefs(d.ParentChain, " -> "), d.ProcessName, d.PID)
		} else {
			fmt.Fprintf(w, "  %sParents:%s None\n", label, reset)
		}
		if len(d.Children) > 0 {
			fmt.Fprintf(w, "  %sChildren:%s %s\n", label, reset, joinRefs(d.Children, ", "))
		} else {
			fmt.Fprintf(w, "  %sChildren:%s None\n", label, reset)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%sRESOURCES%s\n", section, reset)
	fmt.Fprintf(w, "  %sMemory:%s %s MB (RSS), %s MB (Virtual)\n", label, reset,
		formatMB(d.MemoryRSSKB), formatMB(d.MemoryVirtualKB))
	fmt.Fprintf(w, "  %sCPU:%s %.1f%%\n", label, reset, d.CPUPercent)
	fmt.Fprintf(w, "  %sThreads:%s %d\n", label, reset, d.ThreadCount)
	fmt.Fprintf(w, "  %sFile Descriptors:%s %d open\n", label, reset, d.FileDescriptors)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%sNETWORK%s\n", section, reset)
	printBinding(w, d, label, reset)
	fmt.Fprintf(w, "  %sProtocol:%s TCP (LISTEN)\n", label, reset)
	fmt.Fprintf(w, "  %sConnections:%s %d active\n", label, reset, d.ActiveConnections)
	if len(d.OtherPorts) > 0 {
		ports := make([]string, len(d.OtherPorts))
		for i, p := range d.OtherPorts {
			ports[i] = fmt.Sprintf("%d", p)
		}
		fmt.Fprintf(w, "  %sOther Ports:%s Also listening on %s\n", label, reset, strings.Join(ports, ", "))
	}
	fmt.Fprintln(w)

	if len(d.EnvVars) > 0 {
		fmt.Fprintf(w, "%sENVIRONMENT%s\n", section, reset)
		for i, v := range d.EnvVars {
			if i == maxEnvShown {
				break
			}
			value := v.Value
			// PATH is the one value that routinely overflows the view.
			if v.Key == "PATH" && len(value) > 100 {
				value = value[:97] + "..."
			}
			fmt.Fprintf(w, "  %s=%s\n", v.Key, value)
		}
		if len(d.EnvVars) > maxEnvShown {
			fmt.Fprintf(w, "  (%d more environment variables)\n", len(d.EnvVars)-maxEnvShown)
		}
		fmt.Fprintln(w)
	}

	if d.Docker != nil {
		fmt.Fprintf(w, "%sCONTAINER INFORMATION%s\n", section, reset)
		fmt.Fprintf(w, "  %sContainer:%s %s\n", label, reset, d.Docker.ContainerName)
		fmt.Fprintf(w, "  %sID:%s %s\n", label, reset, d.Docker.ContainerID)
		fmt.Fprintf(w, "  %sImage:%s %s\n", label, reset, d.Docker.Image)
		fmt.Fprintf(w, "  %sStatus:%s %s\n", label, reset, d.Docker.Status)
		if len(d.Docker.Volumes) > 0 {
			fmt.Fprintf(w, "  %sVolumes:%s\n", label, reset)
			for _, vol := range d.Docker.Volumes {
				fmt.Fprintf(w, "    - %s\n", vol)
			}
		}
		fmt.Fprintln(w)
	}
}

// printBinding splits listen addresses by family when both are present.
func printBinding(w io.Writer, d *inspect.Details, label, reset string) {
	if len(d.ListenAddresses) == 0 {
		fmt.Fprintf(w, "  %sBinding:%s *:%d\n", label, reset, d.Port)
		return
	}

	var ipv4, ipv6 []string
	for _, addr := range d.ListenAddresses {
		if strings.Contains(addr, "[") {
			ipv6 = append(ipv6, addr)
		} else {
			ipv4 = append(ipv4, addr)
		}
	}

	if len(ipv4) > 0 && len(ipv6) > 0 {
		fmt.Fprintf(w, "  %sBinding:%s %s (IPv4) + %s (IPv6)\n", label, reset,
			strings.Join(ipv4, ", "), strings.Join(ipv6, ", "))
		return
	}
	fmt.Fprintf(w, "  %sBinding:%s %s\n", label, reset, strings.Join(d.ListenAddresses, ", "))
}

func joinRefs(refs []inspect.ProcessRef, sep string) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = fmt.Sprintf("%s (%d)", r.Name, r.PID)
	}
	return strings.Join(parts, sep)
}

// formatMB converts KB to MB with one decimal for display.
func formatMB(kb uint64) string {
	return fmt.Sprintf("%.1f", float64(kb)/1024.0)
}
