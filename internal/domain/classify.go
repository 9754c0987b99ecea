package domain

import (
	"path/filepath"
	"strings"
)

// Disposition is the outcome of classifying a single file.
type Disposition int

const (
	DispositionSupported Disposition = iota
	DispositionBlocked
	DispositionMetadata
)

// String returns a human-readable name for the disposition
func (d Disposition) String() string {
	switch d {
	case DispositionSupported:
		return "supported"
	case DispositionBlocked:
		return "blocked"
	case DispositionMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// FileClassification is the per-file result of a scan pass. It is
// produced once per file and never mutated afterwards.
type FileClassification struct {
	Path        string // Absolute path
	RelPath     string // Path relative to the scanned root
	Extension   string // Lower-cased, no leading dot; "" when absent
	Size        int64
	Disposition Disposition
	BlockReason string // Category name, set only when blocked
}

// ClassifyOptions controls optional classification policy.
type ClassifyOptions struct {
	// BlockTemporary additionally blocks cache/log/temp extensions.
	// Off by default: anything not explicitly blocked is supported.
	BlockTemporary bool
}

// metadataFilenames is the fixed allowlist of filenames treated as
// collection metadata regardless of extension. Matched case-insensitively
// against the base name.
var metadataFilenames = map[string]bool{
	"readme.md":     true,
	"readme.txt":    true,
	"manifest.json": true,
	"project.json":  true,
	"index.json":    true,
	"metadata.json": true,
}

// blockedCategories maps each blocked extension to the category named in
// the block reason. Checked after the metadata allowlist.
var blockedCategories = []struct {
	Reason     string
	Extensions map[string]bool
}{
	{"executable", extSet("exe", "msi", "com", "scr", "app")},
	{"script", extSet("bat", "cmd", "sh", "ps1", "vbs", "js")},
	{"system file", extSet("sys", "dll", "drv", "so", "dylib")},
	{"config file", extSet("ini", "cfg", "conf", "reg")},
}

// temporaryExtensions are only blocked when ClassifyOptions.BlockTemporary
// is enabled.
var temporaryExtensions = extSet("tmp", "temp", "bak", "old", "log", "cache")

func extSet(exts ...string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		m[e] = true
	}
	return m
}

// ExtractExtension returns the lower-cased extension of the final path
// element without the leading dot. Dotfiles such as ".config" and names
// without a dot yield "".
func ExtractExtension(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Classify decides the disposition of a single file. It is pure: the
// result depends only on the file name, extension, and the options, so
// dry run and commit agree whenever the file set is unchanged. Size and
// path never affect the disposition.
func Classify(path, relPath string, size int64, opts ClassifyOptions) FileClassification {
	fc := FileClassification{
		Path:      path,
		RelPath:   relPath,
		Extension: ExtractExtension(path),
		Size:      size,
	}

	name := strings.ToLower(filepath.Base(path))
	if metadataFilenames[name] {
		fc.Disposition = DispositionMetadata
		return fc
	}

	for _, cat := range blockedCategories {
		if cat.Extensions[fc.Extension] {
			fc.Disposition = DispositionBlocked
			fc.BlockReason = cat.Reason
			return fc
		}
	}

	if opts.BlockTemporary && temporaryExtensions[fc.Extension] {
		fc.Disposition = DispositionBlocked
		fc.BlockReason = "temporary file"
		return fc
	}

	fc.Disposition = DispositionSupported
	return fc
}
