package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		opts            ClassifyOptions
		wantDisposition Disposition
		wantReason      string
		wantExtension   string
	}{
		{
			name:            "stl model is supported",
			path:            "/src/models/benchy.stl",
			wantDisposition: DispositionSupported,
			wantExtension:   "stl",
		},
		{
			name:            "unknown extension is supported",
			path:            "/src/scene.xyzabc",
			wantDisposition: DispositionSupported,
			wantExtension:   "xyzabc",
		},
		{
			name:            "no extension is supported",
			path:            "/src/LICENSE",
			wantDisposition: DispositionSupported,
			wantExtension:   "",
		},
		{
			name:            "dotfile has no extension",
			path:            "/src/.config",
			wantDisposition: DispositionSupported,
			wantExtension:   "",
		},
		{
			name:            "executable is blocked",
			path:            "/src/malware.exe",
			wantDisposition: DispositionBlocked,
			wantReason:      "executable",
			wantExtension:   "exe",
		},
		{
			name:            "upper case extension is blocked too",
			path:            "/src/SETUP.EXE",
			wantDisposition: DispositionBlocked,
			wantReason:      "executable",
			wantExtension:   "exe",
		},
		{
			name:            "shell script is blocked",
			path:            "/src/install.sh",
			wantDisposition: DispositionBlocked,
			wantReason:      "script",
			wantExtension:   "sh",
		},
		{
			name:            "driver is blocked as system file",
			path:            "/src/printer.drv",
			wantDisposition: DispositionBlocked,
			wantReason:      "system file",
			wantExtension:   "drv",
		},
		{
			name:            "ini is blocked as config file",
			path:            "/src/desktop.ini",
			wantDisposition: DispositionBlocked,
			wantReason:      "config file",
			wantExtension:   "ini",
		},
		{
			name:            "readme is metadata",
			path:            "/src/README.md",
			wantDisposition: DispositionMetadata,
			wantExtension:   "md",
		},
		{
			name:            "manifest is metadata",
			path:            "/src/sub/manifest.json",
			wantDisposition: DispositionMetadata,
			wantExtension:   "json",
		},
		{
			name:            "log is supported by default",
			path:            "/src/slicer.log",
			wantDisposition: DispositionSupported,
			wantExtension:   "log",
		},
		{
			name:            "log is blocked with temporary blocking on",
			path:            "/src/slicer.log",
			opts:            ClassifyOptions{BlockTemporary: true},
			wantDisposition: DispositionBlocked,
			wantReason:      "temporary file",
			wantExtension:   "log",
		},
		{
			name:            "bak is blocked with temporary blocking on",
			path:            "/src/model.bak",
			opts:            ClassifyOptions{BlockTemporary: true},
			wantDisposition: DispositionBlocked,
			wantReason:      "temporary file",
			wantExtension:   "bak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := Classify(tt.path, tt.path, 1024, tt.opts)

			if fc.Disposition != tt.wantDisposition {
				t.Errorf("disposition = %v, want %v", fc.Disposition, tt.wantDisposition)
			}
			if fc.BlockReason != tt.wantReason {
				t.Errorf("block reason = %q, want %q", fc.BlockReason, tt.wantReason)
			}
			if fc.Extension != tt.wantExtension {
				t.Errorf("extension = %q, want %q", fc.Extension, tt.wantExtension)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	paths := []string{
		"/src/benchy.stl",
		"/src/malware.exe",
		"/src/README.md",
		"/src/noext",
	}
	for _, path := range paths {
		first := Classify(path, path, 42, ClassifyOptions{})
		second := Classify(path, path, 42, ClassifyOptions{})
		if first != second {
			t.Errorf("Classify(%q) not deterministic: %+v vs %+v", path, first, second)
		}
	}
}

func TestClassifySizeNeverAffectsDisposition(t *testing.T) {
	for _, size := range []int64{0, 1, 1 << 20, 1 << 40} {
		fc := Classify("/src/benchy.stl", "benchy.stl", size, ClassifyOptions{})
		if fc.Disposition != DispositionSupported {
			t.Errorf("size %d changed disposition to %v", size, fc.Disposition)
		}
		if fc.Size != size {
			t.Errorf("size = %d, want %d", fc.Size, size)
		}
	}
}

func TestMetadataMatchesFilenameNotExtension(t *testing.T) {
	meta := Classify("/src/README.md", "README.md", 10, ClassifyOptions{})
	if meta.Disposition != DispositionMetadata {
		t.Errorf("README.md disposition = %v, want metadata", meta.Disposition)
	}

	other := Classify("/src/notes.md", "notes.md", 10, ClassifyOptions{})
	if other.Disposition != DispositionSupported {
		t.Errorf("notes.md disposition = %v, want supported", other.Disposition)
	}
}

func TestExtractExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/a/b/model.STL", "stl"},
		{"/a/b/archive.tar.gz", "gz"},
		{"/a/b/noext", ""},
		{"/a/b/.hidden", ""},
		{"/a/b.dir/noext", ""},
	}
	for _, tt := range tests {
		if got := ExtractExtension(tt.path); got != tt.want {
			t.Errorf("ExtractExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
