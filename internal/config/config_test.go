package config

import (
	"reflect"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/clips", "/media/clips"},
		{"single trailing slash", "/media/clips/", "/media/clips"},
		{"multiple trailing slashes", "/media/clips///", "/media/clips"},
		{"root path", "/", "/"},
		{"relative path", "converted", "converted"},
		{"relative with slash", "converted/", "converted"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip folder requirements
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_SizeCeiling(t *testing.T) {
	tests := []struct {
		name    string
		ceiling int64
		wantErr bool
	}{
		{"default is valid", 2_000_000_000, false},
		{"small positive is valid", 1, false},
		{"zero is invalid", 0, true},
		{"negative is invalid", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.SizeCeiling = tt.ceiling
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FolderRequirements(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			"all folders set",
			func(c *Config) {},
			false,
		},
		{
			"missing converted folder",
			func(c *Config) { c.ConvertedDir = "" },
			true,
		},
		{
			"missing source folder with convert pass",
			func(c *Config) { c.SourceDir = "" },
			true,
		},
		{
			"missing source folder without convert pass",
			func(c *Config) { c.SourceDir = ""; c.Convert = false },
			false,
		},
		{
			"missing merged folder with merge pass",
			func(c *Config) { c.MergedDir = "" },
			true,
		},
		{
			"missing merged folder without merge pass",
			func(c *Config) { c.MergedDir = ""; c.Merge = false },
			false,
		},
		{
			"both passes disabled",
			func(c *Config) { c.Convert = false; c.Merge = false },
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SourceDir = "/cam/source"
			cfg.ConvertedDir = "/cam/converted"
			cfg.MergedDir = "/cam/merged"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DistinctDirs(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		converted string
		merged    string
		wantErr   bool
	}{
		{"all distinct", "/a", "/b", "/c", false},
		{"source equals converted", "/a", "/a", "/c", true},
		{"converted equals merged", "/a", "/b", "/b", true},
		{"source equals merged", "/a", "/b", "/a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SourceDir = tt.source
			cfg.ConvertedDir = tt.converted
			cfg.MergedDir = tt.merged
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DerivedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourceDir = "/cam/source"
	cfg.ConvertedDir = "/cam/converted"
	cfg.MergedDir = "/cam/merged"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.LogDir != "/cam/converted" {
		t.Errorf("derived LogDir = %q, want %q", cfg.LogDir, "/cam/converted")
	}
	if cfg.ProbeCachePath != "/cam/converted/clipstitch-probe.db" {
		t.Errorf("derived ProbeCachePath = %q, want %q",
			cfg.ProbeCachePath, "/cam/converted/clipstitch-probe.db")
	}

	// Explicit settings survive validation.
	cfg = DefaultConfig()
	cfg.SourceDir = "/cam/source"
	cfg.ConvertedDir = "/cam/converted"
	cfg.MergedDir = "/cam/merged"
	cfg.LogDir = "/var/log/clipstitch"
	cfg.ProbeCache = false

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.LogDir != "/var/log/clipstitch" {
		t.Errorf("explicit LogDir overwritten: %q", cfg.LogDir)
	}
	if cfg.ProbeCachePath != "" {
		t.Errorf("ProbeCachePath derived with cache disabled: %q", cfg.ProbeCachePath)
	}
}

func TestValidate_ConvertExtDot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.ConvertExt = "mkv"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.ConvertExt != ".mkv" {
		t.Errorf("ConvertExt = %q, want %q", cfg.ConvertExt, ".mkv")
	}
}

func TestSplitExts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single with dot", ".mp4", []string{".mp4"}},
		{"single without dot", "mp4", []string{".mp4"}},
		{"multiple mixed", "mp4, .AVI ,mkv", []string{".mp4", ".avi", ".mkv"}},
		{"empty elements dropped", "mp4,,avi,", []string{".mp4", ".avi"}},
		{"empty string", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitExts(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitExts(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Convert {
		t.Error("default Convert should be true")
	}
	if !cfg.Merge {
		t.Error("default Merge should be true")
	}
	if !cfg.Subtitles {
		t.Error("default Subtitles should be true")
	}
	if cfg.SizeCeiling != 2_000_000_000 {
		t.Errorf("default SizeCeiling = %d, want 2000000000", cfg.SizeCeiling)
	}
	if !reflect.DeepEqual(cfg.SourceExts, []string{".dav"}) {
		t.Errorf("default SourceExts = %v, want [.dav]", cfg.SourceExts)
	}
	if !reflect.DeepEqual(cfg.MergeExts, []string{".mp4", ".avi"}) {
		t.Errorf("default MergeExts = %v, want [.mp4 .avi]", cfg.MergeExts)
	}
	if cfg.ConvertExt != ".mp4" {
		t.Errorf("default ConvertExt = %q, want .mp4", cfg.ConvertExt)
	}
	if !cfg.ProbeCache {
		t.Error("default ProbeCache should be true")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
}
