// ABOUTME: install-skill command: copies the embedded ironlog skill for Claude Code.
// ABOUTME: Skips the write when the installed copy already matches.

package main

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

const skillFile = "skill/SKILL.md"

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Teach Claude Code to drive ironlog",
	Long: `Copy the ironlog skill to ~/.claude/skills/ironlog/SKILL.md.

With the skill installed Claude Code can start a training day, log sets
as you call them out, prefill weights from last time and answer questions
about workload and recovery.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return installSkill()
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "install without asking")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "skills", "ironlog", "SKILL.md"), nil
}

func installSkill() error {
	return installSkillFrom(os.Stdin)
}

func installSkillFrom(in io.Reader) error {
	dest, err := skillPath()
	if err != nil {
		return err
	}
	content, err := skillFS.ReadFile(skillFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	existing, err := os.ReadFile(dest)
	switch {
	case err == nil && bytes.Equal(existing, content):
		color.Green("✓ Skill already up to date")
		fmt.Printf("  %s\n", dest)
		return nil
	case err == nil:
		fmt.Printf("Updating the ironlog skill at %s\n", dest)
	case errors.Is(err, os.ErrNotExist):
		fmt.Printf("Installing the ironlog skill to %s\n", dest)
	default:
		return fmt.Errorf("failed to read installed skill: %w", err)
	}

	if !skillSkipConfirm {
		ok, err := confirm(in, "Continue? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing installed.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(dest, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	color.Green("✓ Skill installed")
	fmt.Println(`  Ask Claude Code to "start pull day" or "log 50kg x 8 on lat pulldown".`)
	return nil
}

// confirm prints prompt and reads a yes/no answer. EOF counts as no.
func confirm(in io.Reader, prompt string) (bool, error) {
	fmt.Print(prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
