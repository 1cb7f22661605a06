// ABOUTME: Cobra command for the interactive sighting form.
// ABOUTME: Launches a bubbletea TUI to record a new sighting or edit an existing one.
package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/birdlog/internal/models"
	"github.com/2389-research/birdlog/internal/storage"
	"github.com/2389-research/birdlog/internal/tui"
)

var newEditID string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Record a sighting with an interactive form",
	Long:  "Step through species, place, notes, date, and location. Pass --id to edit an existing sighting.",
	RunE:  runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newEditID, "id", "", "Edit the sighting with this ID instead of adding one")
}

func runNew(cmd *cobra.Command, args []string) error {
	var draft models.Bird
	if newEditID != "" {
		existing, ok := globalStore.FindByID(newEditID)
		if !ok {
			return fmt.Errorf("no sighting with id %s", newEditID)
		}
		draft = existing
	} else {
		draft = *models.NewBird("")
		draft.GeoLocation = globalConfig.DefaultLocation()
	}

	p := tea.NewProgram(tui.NewSightingForm(draft, saveSighting(globalStore)))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SightingForm)
	if !final.Saved() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, nothing saved.")
		return nil
	}

	bird := final.Result()
	verb := "recorded"
	if newEditID != "" {
		verb = "updated"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sighting %s: %s (%s)\n", verb, bird.ID, bird.Species)
	return nil
}

// saveSighting creates birds without an ID and updates the rest.
func saveSighting(store storage.BirdStore) tui.SaveFn {
	return func(ctx context.Context, bird models.Bird) (models.Bird, error) {
		if err := ctx.Err(); err != nil {
			return bird, err
		}
		if bird.ID == "" {
			err := store.Create(&bird)
			return bird, err
		}
		return bird, store.Update(bird)
	}
}
