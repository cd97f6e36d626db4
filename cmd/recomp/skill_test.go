// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation handling, and file content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedSkillContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	s := string(content)
	if !strings.HasPrefix(s, "---\n") {
		t.Error("Expected YAML frontmatter at start of skill")
	}
	for _, marker := range []string{"name: recomp", "recomp today", "recomp habit log", "recomp log meal"} {
		if !strings.Contains(s, marker) {
			t.Errorf("Expected skill to contain %q", marker)
		}
	}
}

func TestInstallSkill(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		skipConfirm bool
		wantFile    bool
	}{
		{name: "skip confirm", skipConfirm: true, wantFile: true},
		{name: "confirmed", input: "y\n", wantFile: true},
		{name: "confirmed yes uppercase", input: "YES\n", wantFile: true},
		{name: "declined", input: "n\n", wantFile: false},
		{name: "empty answer", input: "", wantFile: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			var out bytes.Buffer

			if err := installSkill(home, strings.NewReader(tt.input), &out, tt.skipConfirm); err != nil {
				t.Fatalf("installSkill failed: %v", err)
			}

			skillPath := filepath.Join(home, ".claude", "skills", "recomp", "SKILL.md")
			_, err := os.Stat(skillPath)
			if tt.wantFile && err != nil {
				t.Errorf("Expected skill file: %v", err)
			}
			if !tt.wantFile && err == nil {
				t.Error("Expected no skill file after declining")
			}
			if !tt.wantFile && !strings.Contains(out.String(), "canceled") {
				t.Errorf("output = %q, want cancel message", out.String())
			}
		})
	}
}

func TestInstallSkillOverwrites(t *testing.T) {
	home := t.TempDir()
	skillDir := filepath.Join(home, ".claude", "skills", "recomp")
	if err := os.MkdirAll(skillDir, 0750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte("stale"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var out bytes.Buffer
	if err := installSkill(home, strings.NewReader(""), &out, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("output = %q, want overwrite note", out.String())
	}

	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(written) == "stale" {
		t.Error("Expected stale skill to be replaced")
	}
}
