package config

import "os"

const DefaultLibraryPath = "~/Workshop/library"

// LibraryPath returns the library path from the WORKSHOP_LIBRARY env var,
// falling back to DefaultLibraryPath.
func LibraryPath() string {
	if env := os.Getenv("WORKSHOP_LIBRARY"); env != "" {
		return env
	}
	return DefaultLibraryPath
}

// BlockTemporary reports whether temporary/cache/log files should be
// blocked during classification. Controlled by WORKSHOP_BLOCK_TEMP;
// off unless explicitly enabled.
func BlockTemporary() bool {
	switch os.Getenv("WORKSHOP_BLOCK_TEMP") {
	case "1", "true", "yes":
		return true
	}
	return false
}
