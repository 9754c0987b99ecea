package domain

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// StructureType is the coarse classification of a source tree's shape.
type StructureType int

const (
	StructureUnknown StructureType = iota
	StructureFlat
	StructureNested
	StructureBalanced
)

// String returns a human-readable name for the structure type
func (s StructureType) String() string {
	switch s {
	case StructureFlat:
		return "flat"
	case StructureNested:
		return "nested"
	case StructureBalanced:
		return "balanced"
	default:
		return "unknown"
	}
}

// ParseStructureType parses the string form produced by String.
func ParseStructureType(s string) StructureType {
	switch s {
	case "flat":
		return StructureFlat
	case "nested":
		return StructureNested
	case "balanced":
		return StructureBalanced
	default:
		return StructureUnknown
	}
}

// FolderStat is the per-folder record produced by a walk.
// The root folder has RelPath "." and Depth 0.
type FolderStat struct {
	RelPath    string
	Name       string
	Depth      int
	FileCount  int            // Direct files only
	Extensions map[string]int // Extension histogram of direct files
	Unreadable bool           // Folder existed but could not be read
}

// ScanResult aggregates one walk of a source tree. Partial results from
// concurrent subtree walks are combined with Merge; all aggregates are
// commutative so the combination order never affects the outcome once
// Normalize has run.
type ScanResult struct {
	Root       string
	Files      []FileClassification
	Folders    []FolderStat
	Extensions map[string]int
	Warnings   []string
}

// NewScanResult returns an empty result for the given root.
func NewScanResult(root string) *ScanResult {
	return &ScanResult{
		Root:       root,
		Extensions: make(map[string]int),
	}
}

// AddFile records a classified file and updates the extension histogram.
func (r *ScanResult) AddFile(fc FileClassification) {
	r.Files = append(r.Files, fc)
	r.Extensions[fc.Extension]++
}

// Merge folds another partial result into this one. Counts and
// histograms are summed; slices are appended. Commutative up to
// ordering, which Normalize restores.
func (r *ScanResult) Merge(other *ScanResult) {
	r.Files = append(r.Files, other.Files...)
	r.Folders = append(r.Folders, other.Folders...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	for ext, n := range other.Extensions {
		r.Extensions[ext] += n
	}
}

// Normalize sorts files, folders, and warnings so that results are
// independent of walk scheduling.
func (r *ScanResult) Normalize() {
	sort.Slice(r.Files, func(i, j int) bool { return r.Files[i].RelPath < r.Files[j].RelPath })
	sort.Slice(r.Folders, func(i, j int) bool { return r.Folders[i].RelPath < r.Folders[j].RelPath })
	sort.Strings(r.Warnings)
}

// MaxDepth returns the maximum folder depth, with the root at 0.
func (r *ScanResult) MaxDepth() int {
	max := 0
	for _, f := range r.Folders {
		if f.Depth > max {
			max = f.Depth
		}
	}
	return max
}

// LibraryStructureAnalysis describes how a source tree is organized,
// with a 0-100 confidence score. Produced once per scan; immutable.
type LibraryStructureAnalysis struct {
	ConfidenceScore  float64
	Structure        StructureType
	FileTypeGrouping bool
	MetadataFiles    []string
	MaxDepth         int
	TotalFiles       int
	TotalFolders     int
	Extensions       map[string]int
	Recommendations  []string
}

// DetectorConfig holds the tunable thresholds for structure detection.
type DetectorConfig struct {
	GroupingRatio      float64 // Share of one extension that makes a folder type-grouped
	GroupedFolderShare float64 // Share of grouped folders that sets FileTypeGrouping
	PrefixShare        float64 // Share of siblings with a common prefix for the naming signal
	DeepDepth          int     // Depth at which a tree stops being flat-ish
	DepthVarianceLow   float64 // Leaf-depth variance at or below which a deep tree is balanced
	DeepNestingWarn    int     // Depth that triggers the deep-nesting warning
	LowConfidence      float64 // Score below which manual reorganization is recommended
}

// DefaultDetectorConfig returns the standard thresholds.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		GroupingRatio:      0.8,
		GroupedFolderShare: 0.5,
		PrefixShare:        0.6,
		DeepDepth:          3,
		DepthVarianceLow:   1.0,
		DeepNestingWarn:    5,
		LowConfidence:      40,
	}
}

// Confidence weights per signal. The score is a weighted sum of the four
// signal components, each in [0,100], so it is monotonically
// non-decreasing in the number of positive signals.
const (
	weightGrouping = 0.35
	weightDepth    = 0.25
	weightMetadata = 0.20
	weightNaming   = 0.20
)

// extensionTokens are file-format tokens recognized inside folder names
// (e.g. "STL_Files", "gcode exports").
var extensionTokens = map[string]bool{
	"stl": true, "obj": true, "3mf": true, "step": true, "stp": true,
	"gcode": true, "amf": true, "ply": true, "fbx": true, "blend": true,
	"pdf": true, "png": true, "jpg": true, "jpeg": true, "svg": true,
}

// categoryVocabulary are generic asset/domain folder names that indicate
// deliberate grouping even when extensions inside are mixed.
var categoryVocabulary = map[string]bool{
	"models": true, "meshes": true, "parts": true, "prints": true,
	"images": true, "textures": true, "renders": true, "previews": true,
	"documents": true, "docs": true, "manuals": true, "instructions": true,
	"sources": true, "exports": true, "slices": true, "assets": true,
	"projects": true, "files": true,
}

var (
	versionPattern = regexp.MustCompile(`^v\d+`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}`)
)

// Analyze computes the structure analysis for a completed scan. It is a
// pure function of the scan result and the thresholds; it never touches
// the filesystem.
func Analyze(r *ScanResult, cfg DetectorConfig) LibraryStructureAnalysis {
	analysis := LibraryStructureAnalysis{
		Structure:    StructureUnknown,
		MaxDepth:     r.MaxDepth(),
		TotalFiles:   len(r.Files),
		TotalFolders: len(r.Folders),
		Extensions:   r.Extensions,
	}

	// An empty tree carries no signals at all.
	if analysis.TotalFiles == 0 {
		analysis.Recommendations = append(analysis.Recommendations,
			"The folder contains no files; there is nothing to import.")
		return analysis
	}

	groupedShare := groupedFolderShare(r, cfg)
	analysis.FileTypeGrouping = groupedShare >= cfg.GroupedFolderShare
	analysis.MetadataFiles = metadataFileNames(r)
	hasMetadata := len(analysis.MetadataFiles) > 0
	hasNaming := namingConventionDetected(r, cfg)

	analysis.Structure = structureType(r, cfg)
	// A deep, uneven tree only counts as deliberately nested when some
	// other organizational signal corroborates it.
	if analysis.Structure == StructureNested &&
		!analysis.FileTypeGrouping && !hasMetadata && !hasNaming {
		analysis.Structure = StructureUnknown
	}

	groupingScore := groupedShare * 100
	depthScore := 0.0
	switch analysis.Structure {
	case StructureFlat, StructureBalanced:
		depthScore = 100
	case StructureNested:
		depthScore = 50
	}
	metadataScore := 0.0
	if hasMetadata {
		metadataScore = 100
	}
	namingScore := 0.0
	if hasNaming {
		namingScore = 100
	}

	score := weightGrouping*groupingScore +
		weightDepth*depthScore +
		weightMetadata*metadataScore +
		weightNaming*namingScore
	analysis.ConfidenceScore = clampScore(score)

	analysis.Recommendations = recommendations(&analysis, cfg)
	return analysis
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// structureType applies the depth rules: shallow trees are flat, deep
// trees with even leaves are balanced, deep uneven trees are nested,
// everything in between is unknown.
func structureType(r *ScanResult, cfg DetectorConfig) StructureType {
	maxDepth := r.MaxDepth()
	if maxDepth <= 1 {
		return StructureFlat
	}
	if maxDepth < cfg.DeepDepth {
		return StructureUnknown
	}
	if leafDepthVariance(r.Folders) <= cfg.DepthVarianceLow {
		return StructureBalanced
	}
	return StructureNested
}

// leafDepthVariance returns the variance of depths across leaf folders
// (folders with no child folders).
func leafDepthVariance(folders []FolderStat) float64 {
	children := make(map[string]int, len(folders))
	for _, f := range folders {
		if f.RelPath == "." {
			continue
		}
		parent := filepath.Dir(f.RelPath)
		children[parent]++
	}

	var depths []int
	for _, f := range folders {
		if children[f.RelPath] == 0 {
			depths = append(depths, f.Depth)
		}
	}
	if len(depths) == 0 {
		return 0
	}

	mean := 0.0
	for _, d := range depths {
		mean += float64(d)
	}
	mean /= float64(len(depths))

	variance := 0.0
	for _, d := range depths {
		diff := float64(d) - mean
		variance += diff * diff
	}
	return variance / float64(len(depths))
}

// groupedFolderShare returns the fraction of non-root folders that are
// type-grouped: dominated by a single extension or named after a known
// file-format or asset category.
func groupedFolderShare(r *ScanResult, cfg DetectorConfig) float64 {
	nonRoot, grouped := 0, 0
	for _, f := range r.Folders {
		if f.RelPath == "." {
			continue
		}
		nonRoot++
		if folderIsTypeGrouped(f, cfg) {
			grouped++
		}
	}
	if nonRoot == 0 {
		return 0
	}
	return float64(grouped) / float64(nonRoot)
}

func folderIsTypeGrouped(f FolderStat, cfg DetectorConfig) bool {
	if f.FileCount > 0 {
		dominant := 0
		for _, n := range f.Extensions {
			if n > dominant {
				dominant = n
			}
		}
		if float64(dominant)/float64(f.FileCount) >= cfg.GroupingRatio {
			return true
		}
	}
	return folderNameMatchesVocabulary(f.Name)
}

// folderNameMatchesVocabulary splits the folder name on common
// separators and checks each token against the extension and category
// vocabularies.
func folderNameMatchesVocabulary(name string) bool {
	lower := strings.ToLower(name)
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	for _, tok := range tokens {
		if extensionTokens[tok] || categoryVocabulary[tok] {
			return true
		}
	}
	return false
}

// metadataFileNames returns the base names of metadata-classified files
// in relative-path order, de-duplicated.
func metadataFileNames(r *ScanResult) []string {
	seen := make(map[string]bool)
	var names []string
	for _, fc := range r.Files {
		if fc.Disposition != DispositionMetadata {
			continue
		}
		name := filepath.Base(fc.RelPath)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// namingConventionDetected reports whether any single directory level
// shows a naming convention: a shared literal prefix, version names
// (v1, v2...), or date names (YYYY-MM) across enough siblings.
func namingConventionDetected(r *ScanResult, cfg DetectorConfig) bool {
	siblings := make(map[string][]string)
	for _, f := range r.Folders {
		if f.RelPath == "." {
			continue
		}
		parent := filepath.Dir(f.RelPath)
		siblings[parent] = append(siblings[parent], f.Name)
	}
	for _, fc := range r.Files {
		parent := filepath.Dir(fc.RelPath)
		siblings[parent] = append(siblings[parent], filepath.Base(fc.RelPath))
	}

	for _, names := range siblings {
		if levelHasConvention(names, cfg.PrefixShare) {
			return true
		}
	}
	return false
}

const prefixLength = 3

func levelHasConvention(names []string, share float64) bool {
	if len(names) < 2 {
		return false
	}

	prefixes := make(map[string]int)
	versions, dates := 0, 0
	for _, name := range names {
		lower := strings.ToLower(name)
		if len(lower) >= prefixLength {
			prefixes[lower[:prefixLength]]++
		}
		if versionPattern.MatchString(lower) {
			versions++
		}
		if datePattern.MatchString(lower) {
			dates++
		}
	}

	threshold := share * float64(len(names))
	for _, n := range prefixes {
		if float64(n) >= threshold && n >= 2 {
			return true
		}
	}
	return float64(versions) >= threshold || float64(dates) >= threshold
}

// recommendations derives advice from whichever signals came up weak.
func recommendations(a *LibraryStructureAnalysis, cfg DetectorConfig) []string {
	var recs []string
	if len(a.MetadataFiles) == 0 {
		recs = append(recs,
			"No metadata found. Add a README or manifest describing the collection.")
	}
	if !a.FileTypeGrouping && a.TotalFolders > 1 {
		recs = append(recs,
			"Files are not grouped by type. Consider dedicated folders per format.")
	}
	if a.MaxDepth >= cfg.DeepNestingWarn {
		recs = append(recs,
			"The tree is very deeply nested. Flattening it would make the imported project easier to browse.")
	}
	if a.ConfidenceScore < cfg.LowConfidence {
		recs = append(recs,
			"Structure confidence is low. Reorganize manually instead of importing as-is.")
	}
	return recs
}
