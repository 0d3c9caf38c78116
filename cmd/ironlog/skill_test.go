// ABOUTME: Tests for the install-skill command.
// ABOUTME: Covers install, overwrite, skip-when-current and the confirm prompt.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func installToTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	skillSkipConfirm = true
	t.Cleanup(func() { skillSkipConfirm = false })
	return filepath.Join(home, ".claude", "skills", "ironlog", "SKILL.md")
}

func TestInstallSkillWritesFile(t *testing.T) {
	skillPath := installToTempHome(t)

	if err := installSkill(); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	embedded, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}
	if string(written) != string(embedded) {
		t.Error("Installed skill differs from embedded copy")
	}

	info, err := os.Stat(filepath.Dir(skillPath))
	if err != nil {
		t.Fatalf("Failed to stat skill directory: %v", err)
	}
	if info.Mode().Perm()&0700 != 0700 {
		t.Errorf("Expected owner rwx on skill directory, got %v", info.Mode().Perm())
	}
}

func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	skillPath := installToTempHome(t)

	if err := os.MkdirAll(filepath.Dir(skillPath), 0750); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	if err := os.WriteFile(skillPath, []byte("# Old Skill\nstale content"), 0600); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	if err := installSkill(); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	data, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Failed to read skill file: %v", err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Old content should have been replaced")
	}
}

func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	for _, marker := range []string{
		"name: ironlog",
		"description:",
		"ironlog session start",
		"ironlog session set",
		"ironlog stats",
	} {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

func TestInstallSkillLeavesMatchingCopyAlone(t *testing.T) {
	dest := installToTempHome(t)
	if err := installSkill(); err != nil {
		t.Fatalf("first install failed: %v", err)
	}
	if err := os.Chmod(dest, 0400); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	// A rewrite would fail on the read-only file.
	if err := installSkill(); err != nil {
		t.Fatalf("second install should be a no-op: %v", err)
	}
}

func TestInstallSkillDeclined(t *testing.T) {
	dest := installToTempHome(t)
	skillSkipConfirm = false

	if err := installSkillFrom(strings.NewReader("n\n")); err != nil {
		t.Fatalf("installSkillFrom failed: %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("declined install should not write %s", dest)
	}
}

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"sure\n", false},
	}
	for _, tt := range tests {
		got, err := confirm(strings.NewReader(tt.input), "")
		if err != nil {
			t.Fatalf("confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
