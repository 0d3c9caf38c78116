// ABOUTME: CLI commands for progress photos.
// ABOUTME: Stores images in the Badger photo store under the data directory.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/ironlog/internal/photos"
)

var (
	photoAngle  string
	photoLabel  string
	photoAt     string
	photoOutput string
	photoYes    bool
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Store progress photos",
	Long: `Store progress photos alongside training data.

EXAMPLES:

  ironlog photo add front.jpg --angle front --label "week 12"
  ironlog photo list
  ironlog photo get 3f2a9c1e -o front.jpg
  ironlog photo delete 3f2a9c1e --yes`,
}

var photoAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Add a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		angle, err := photos.ParseAngle(photoAngle)
		if err != nil {
			return err
		}
		meta := photos.Meta{Angle: angle, Label: photoLabel}
		if photoAt != "" {
			t, err := parseTime(photoAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", photoAt)
			}
			meta.Timestamp = t
		}
		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		return withPhotos(func(ps *photos.Store) error {
			id, err := ps.Put(cmd.Context(), blob, meta)
			if err != nil {
				return err
			}
			color.Green("✓ Added photo")
			fmt.Printf("  %s %s %d bytes\n", color.New(color.Faint).Sprint(shortID(id)), angle, len(blob))
			return nil
		})
	},
}

var photoListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPhotos(func(ps *photos.Store) error {
			metas, err := ps.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(metas) == 0 {
				fmt.Println("No photos stored.")
				return nil
			}
			rows := make([][]string, len(metas))
			for i, m := range metas {
				rows[i] = []string{shortID(m.ID), m.Timestamp.Local().Format("2006-01-02"), string(m.Angle), truncate(m.Label, 30), fmt.Sprintf("%d", m.Size)}
			}
			fmt.Println(renderTable([]string{"ID", "Date", "Angle", "Label", "Bytes"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		})
	},
}

var photoGetCmd = &cobra.Command{
	Use:     "get <id>",
	Aliases: []string{"export"},
	Short:   "Write a photo to a file",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if photoOutput == "" {
			return fmt.Errorf("--output is required")
		}
		return withPhotos(func(ps *photos.Store) error {
			id, err := findPhoto(cmd.Context(), ps, args[0])
			if err != nil {
				return err
			}
			p, err := ps.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := os.WriteFile(photoOutput, p.Blob, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Wrote %s", photoOutput)
			return nil
		})
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a photo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPhotos(func(ps *photos.Store) error {
			id, err := findPhoto(cmd.Context(), ps, args[0])
			if err != nil {
				return err
			}
			if !photoYes {
				return fmt.Errorf("deleting photo %s cannot be undone; pass --yes to confirm", shortID(id))
			}
			if err := ps.Delete(cmd.Context(), id); err != nil {
				return err
			}
			color.Green("✓ Deleted photo %s", shortID(id))
			return nil
		})
	},
}

func withPhotos(fn func(*photos.Store) error) error {
	ps, err := photos.Open(cfg.PhotosDir())
	if err != nil {
		return err
	}
	defer func() { _ = ps.Close() }()
	return fn(ps)
}

func findPhoto(ctx context.Context, ps *photos.Store, prefix string) (uuid.UUID, error) {
	metas, err := ps.List(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	var match uuid.UUID
	found := 0
	for _, m := range metas {
		if strings.HasPrefix(m.ID.String(), strings.ToLower(prefix)) {
			match = m.ID
			found++
		}
	}
	switch found {
	case 0:
		return uuid.Nil, fmt.Errorf("photo not found: %s", prefix)
	case 1:
		return match, nil
	default:
		return uuid.Nil, fmt.Errorf("ambiguous prefix %s: matches multiple photos", prefix)
	}
}

func init() {
	photoAddCmd.Flags().StringVar(&photoAngle, "angle", "", "front, side, back, or other")
	photoAddCmd.Flags().StringVar(&photoLabel, "label", "", "label")
	photoAddCmd.Flags().StringVar(&photoAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	photoGetCmd.Flags().StringVarP(&photoOutput, "output", "o", "", "output file")
	photoDeleteCmd.Flags().BoolVarP(&photoYes, "yes", "y", false, "confirm deletion")

	photoCmd.AddCommand(photoAddCmd, photoListCmd, photoGetCmd, photoDeleteCmd)
	rootCmd.AddCommand(photoCmd)
}
