// Package classify assigns listening ports to a small process taxonomy.
package classify

import "strings"

// Kind is the category assigned to a listener.
type Kind int

const (
	Unknown Kind = iota
	Dev
	Database
	Container
	System
)

// String returns the display label for the kind.
func (k Kind) String() string {
	switch k {
	case Dev:
		return "Dev Server"
	case Database:
		return "Database"
	case Container:
		return "Container"
	case System:
		return "System"
	default:
		return "Unknown"
	}
}

// Keyword sets matched against lower-cased process names, checked in order.
// System goes first so launchd and friends are never misread as dev servers.
var (
	systemKeywords = []string{"launchd", "mdnsresponder", "cups", "controlcenter", "airplay"}

	devKeywords = []string{
		"node", "vite", "next", "python", "ruby", "rails", "django",
		"flask", "phoenix", "webpack", "npm", "yarn", "puma", "unicorn",
	}

	databaseKeywords = []string{"postgres", "mysql", "redis", "mongod", "mariadb", "couchdb"}

	containerKeywords = []string{"docker", "containerd", "colima", "podman"}
)

// Port tables used only when the process name is absent or matched nothing.
var (
	devPorts       = map[uint16]bool{3000: true, 5173: true, 8080: true, 8000: true, 4200: true, 3001: true, 5000: true, 9000: true}
	databasePorts  = map[uint16]bool{5432: true, 3306: true, 6379: true, 27017: true, 1433: true, 5984: true}
	containerPorts = map[uint16]bool{2375: true, 2376: true}
)

const printingPort = 631

// Classify maps a port and optional process name to a Kind. The process name
// takes priority over the port table since ports are reused by convention.
// An empty name means the owning process could not be identified.
func Classify(port uint16, process string) Kind {
	if process != "" {
		p := strings.ToLower(process)

		if matchesAny(p, systemKeywords) {
			return System
		}
		if matchesAny(p, devKeywords) {
			return Dev
		}
		if matchesAny(p, databaseKeywords) {
			return Database
		}
		if matchesAny(p, containerKeywords) {
			return Container
		}
	}

	switch {
	case devPorts[port]:
		return Dev
	case databasePorts[port]:
		return Database
	case containerPorts[port]:
		return Container
	case port == printingPort:
		return System
	default:
		return Unknown
	}
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
