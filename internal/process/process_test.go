package process

import (
	"regexp"
	"testing"

	serrors "github.com/zhubert/splashctl/internal/errors"
)

func TestExtractThemeID(t *testing.T) {
	tests := []struct {
		name     string
		cmdLine  string
		expected string
	}{
		{"standard", "ksplashqml org.kde.breeze.desktop --test", "org.kde.breeze.desktop"},
		{"absolute path", "/usr/bin/ksplashqml org.kde.breeze.desktop --test", "org.kde.breeze.desktop"},
		{"flag first", "ksplashqml --test org.kde.oxygen", "org.kde.oxygen"},
		{"no theme", "ksplashqml --test", ""},
		{"bare", "ksplashqml", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractThemeID(tt.cmdLine); got != tt.expected {
				t.Errorf("extractThemeID(%q) = %q, want %q", tt.cmdLine, got, tt.expected)
			}
		})
	}
}

func TestIsPreviewCommand(t *testing.T) {
	tests := []struct {
		cmdLine  string
		renderer string
		expected bool
	}{
		{"ksplashqml breeze --test", "ksplashqml", true},
		{"/usr/bin/ksplashqml breeze --test", "ksplashqml", true},
		{"ksplashqml breeze --test", "/usr/bin/ksplashqml", true},
		{"ksplashqml breeze", "ksplashqml", false},
		{"bash -c ksplashqml breeze --test", "ksplashqml", false},
		{"ksplashqml-helper breeze --test", "ksplashqml", false},
		{"", "ksplashqml", false},
	}

	for _, tt := range tests {
		t.Run(tt.cmdLine, func(t *testing.T) {
			if got := isPreviewCommand(tt.cmdLine, tt.renderer); got != tt.expected {
				t.Errorf("isPreviewCommand(%q, %q) = %v, want %v", tt.cmdLine, tt.renderer, got, tt.expected)
			}
		})
	}
}

func TestPreviewPattern(t *testing.T) {
	re := regexp.MustCompile(previewPattern("/opt/bin/ksplash.qml"))

	if !re.MatchString("/opt/bin/ksplash.qml breeze --test") {
		t.Error("pattern should match test invocation")
	}
	if re.MatchString("ksplashxqml breeze --test") {
		t.Error("dots in the renderer name must be literal")
	}
	if re.MatchString("ksplash.qml breeze") {
		t.Error("pattern should require --test")
	}
}

func TestParseTasklist(t *testing.T) {
	output := "\"ksplashqml.exe\",\"1234\",\"Console\",\"1\",\"10,000 K\"\r\n" +
		"INFO: No tasks are running which match the specified criteria.\r\n" +
		"\"ksplashqml.exe\",\"5678\",\"Console\",\"1\",\"9,000 K\"\r\n"

	procs := parseTasklist(output)
	if len(procs) != 2 {
		t.Fatalf("parseTasklist() = %+v, want 2 processes", procs)
	}
	if procs[0].PID != 1234 || procs[0].Command != "ksplashqml.exe" {
		t.Errorf("procs[0] = %+v", procs[0])
	}
}

func TestPreviewProcess_ThemeID(t *testing.T) {
	p := PreviewProcess{PID: 42, Command: "ksplashqml org.kde.breeze.desktop --test"}
	if p.ThemeID() != "org.kde.breeze.desktop" {
		t.Errorf("ThemeID() = %q", p.ThemeID())
	}
}

func TestRendererInstalled(t *testing.T) {
	if RendererInstalled("splashctl-no-such-renderer-xyz") {
		t.Error("RendererInstalled() = true for missing binary")
	}
}

func TestCheckRenderer_Missing(t *testing.T) {
	_, err := CheckRenderer("splashctl-no-such-renderer-xyz")
	if serrors.GetKind(err) != serrors.KindNotFound {
		t.Errorf("CheckRenderer() error = %v, want not found", err)
	}
}

func TestFindPreviewProcesses_NoProcesses(t *testing.T) {
	// This test just verifies the function doesn't panic
	procs, err := FindPreviewProcesses("splashctl-no-such-renderer-xyz")
	if err != nil {
		t.Logf("FindPreviewProcesses returned error (may be expected): %v", err)
	}
	if len(procs) != 0 {
		t.Errorf("found %d processes for a renderer that does not exist", len(procs))
	}
}

func TestCleanupPreviewProcesses_NoProcesses(t *testing.T) {
	killed, err := CleanupPreviewProcesses("splashctl-no-such-renderer-xyz")
	if err != nil {
		t.Logf("CleanupPreviewProcesses returned error (may be expected): %v", err)
	}
	if killed != 0 {
		t.Errorf("killed = %d, want 0", killed)
	}
}
