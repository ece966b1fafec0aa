package config

import (
	"runtime/debug"
)

// Version returns the main module version recorded in the binary, or
// "(devel)" when it was built from a work tree.
func Version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}
