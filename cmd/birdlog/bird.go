// ABOUTME: CLI commands for recording and browsing bird sightings.
// ABOUTME: Provides add, list, show, edit, delete, search, near, map, and species subcommands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/2389-research/birdlog/internal/geo"
	"github.com/2389-research/birdlog/internal/models"
	"github.com/2389-research/birdlog/internal/search"
	"github.com/2389-research/birdlog/internal/species"
)

// birdFlags holds the sighting fields shared by add and edit.
type birdFlags struct {
	species   string
	placeName string
	notes     string
	date      string
	imageURI  string
	lat       float64
	lng       float64
	zoom      float32
}

func (f *birdFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.species, "species", "", "Species name")
	fs.StringVar(&f.placeName, "place", "", "Where the bird was seen")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.StringVar(&f.date, "date", "", "Date seen, d/m/yyyy (default today)")
	fs.StringVar(&f.imageURI, "image", "", "Photo URI")
	fs.Float64Var(&f.lat, "lat", 0, "Latitude")
	fs.Float64Var(&f.lng, "lng", 0, "Longitude")
	fs.Float32Var(&f.zoom, "zoom", models.DefaultZoom, "Map zoom level")
}

var birdFlagNames = []string{"species", "place", "notes", "date", "image", "lat", "lng", "zoom"}

// changed reports whether any sighting field flag was set.
func (f *birdFlags) changed(fs *pflag.FlagSet) bool {
	for _, name := range birdFlagNames {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// apply copies every flag the user actually set onto b.
func (f *birdFlags) apply(fs *pflag.FlagSet, b *models.Bird) {
	if fs.Changed("species") {
		b.Species = canonicalSpecies(f.species)
	}
	if fs.Changed("place") {
		b.PlaceName = f.placeName
	}
	if fs.Changed("notes") {
		b.Notes = f.notes
	}
	if fs.Changed("date") {
		b.Date = f.date
	}
	if fs.Changed("image") {
		b.ImageURI = f.imageURI
	}
	if fs.Changed("lat") {
		b.GeoLocation.Lat = f.lat
	}
	if fs.Changed("lng") {
		b.GeoLocation.Lng = f.lng
	}
	if fs.Changed("zoom") {
		b.GeoLocation.Zoom = f.zoom
	}
}

var (
	addFlags  birdFlags
	editFlags birdFlags

	listLimit    int
	searchLimit  int
	nearLat      float64
	nearLng      float64
	nearRadius   float64
	mapOut       string
	speciesLimit int
)

var addCmd = &cobra.Command{
	Use:   "add [species]",
	Short: "Record a sighting",
	Long:  "Record a new bird sighting. The species may be given as an argument or with --species.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sightings",
	Long:  "List sightings in the order they were recorded.",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one sighting",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a sighting",
	Long:  "Change the fields of an existing sighting. Only the flags you pass are changed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a sighting",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search sightings",
	Long:  "Rank sightings by how well species, place, notes, and date match the query.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var nearCmd = &cobra.Command{
	Use:   "near",
	Short: "List sightings near a point",
	RunE:  runNear,
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Export sightings as GeoJSON markers",
	Long:  "Write a GeoJSON FeatureCollection with one marker per sighting, titled by species.",
	RunE:  runMap,
}

var speciesCmd = &cobra.Command{
	Use:   "species [prefix]",
	Short: "List known species names",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSpecies,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, showCmd, editCmd, deleteCmd, searchCmd, nearCmd, mapCmd, speciesCmd)

	addFlags.register(addCmd.Flags())
	editFlags.register(editCmd.Flags())

	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of sightings to show (0 for all)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", search.DefaultLimit, "Maximum number of results")

	nearCmd.Flags().Float64Var(&nearLat, "lat", 0, "Latitude of the centre point")
	nearCmd.Flags().Float64Var(&nearLng, "lng", 0, "Longitude of the centre point")
	nearCmd.Flags().Float64Var(&nearRadius, "radius", 10, "Search radius in kilometres")
	_ = nearCmd.MarkFlagRequired("lat")
	_ = nearCmd.MarkFlagRequired("lng")

	mapCmd.Flags().StringVarP(&mapOut, "out", "o", "", "Write to this file instead of stdout")
	speciesCmd.Flags().IntVar(&speciesLimit, "limit", 0, "Maximum number of names (0 for all)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	bird := models.NewBird("")
	bird.GeoLocation = globalConfig.DefaultLocation()
	if len(args) == 1 {
		bird.Species = canonicalSpecies(args[0])
	}
	addFlags.apply(cmd.Flags(), bird)

	if err := bird.Validate(); err != nil {
		return err
	}
	if err := globalStore.Create(bird); err != nil {
		return fmt.Errorf("failed to save sighting: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Sighting recorded: %s\n", bird.ID)
	if note := speciesNote(bird.Species); note != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), note)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	birds := globalStore.FindAll()
	out := cmd.OutOrStdout()
	if len(birds) == 0 {
		_, _ = fmt.Fprintln(out, "No sightings yet.")
		return nil
	}
	if listLimit > 0 && len(birds) > listLimit {
		birds = birds[:listLimit]
	}
	for _, b := range birds {
		_, _ = fmt.Fprintln(out, summaryLine(b))
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	bird, ok := globalStore.FindByID(args[0])
	if !ok {
		return fmt.Errorf("no sighting with id %s", args[0])
	}
	printBird(cmd.OutOrStdout(), bird)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	bird, ok := globalStore.FindByID(args[0])
	if !ok {
		return fmt.Errorf("no sighting with id %s", args[0])
	}
	if !editFlags.changed(cmd.Flags()) {
		return fmt.Errorf("nothing to change (use --species, --place, --notes, --date, --lat, --lng, --zoom, --image)")
	}

	editFlags.apply(cmd.Flags(), &bird)
	if err := bird.Validate(); err != nil {
		return err
	}
	if err := globalStore.Update(bird); err != nil {
		return fmt.Errorf("failed to save sighting: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sighting updated: %s\n", bird.ID)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	bird, ok := globalStore.FindByID(args[0])
	if !ok {
		return fmt.Errorf("no sighting with id %s", args[0])
	}
	if err := globalStore.Delete(bird); err != nil {
		return fmt.Errorf("failed to delete sighting: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sighting deleted: %s (%s)\n", bird.ID, bird.Species)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	results := search.Search(globalStore.FindAll(), query, search.Options{Limit: searchLimit})

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, "No matching sightings found.")
		return nil
	}
	for _, r := range results {
		_, _ = fmt.Fprintf(out, "%5.1f  %s\n", r.Score, summaryLine(r.Bird))
	}
	return nil
}

func runNear(cmd *cobra.Command, args []string) error {
	if nearRadius <= 0 {
		return fmt.Errorf("--radius must be positive")
	}
	centre := models.Location{Lat: nearLat, Lng: nearLng}
	nearby := geo.Near(globalStore.FindAll(), centre, nearRadius)

	out := cmd.OutOrStdout()
	if len(nearby) == 0 {
		_, _ = fmt.Fprintf(out, "No sightings within %.1f km.\n", nearRadius)
		return nil
	}
	for _, n := range nearby {
		_, _ = fmt.Fprintf(out, "%7.2f km  %s\n", n.DistanceKm, summaryLine(n.Bird))
	}
	return nil
}

func runMap(cmd *cobra.Command, args []string) error {
	birds := globalStore.FindAll()
	data, err := json.MarshalIndent(geo.Markers(birds), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode markers: %w", err)
	}
	data = append(data, '\n')

	if mapOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(mapOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", mapOut, err)
	}

	msg := fmt.Sprintf("Wrote %d markers to %s", len(birds), mapOut)
	if cam, ok := geo.Camera(birds); ok {
		msg += fmt.Sprintf(" (camera %.6f, %.6f zoom %.0f)", cam.Lat, cam.Lng, cam.Zoom)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func runSpecies(cmd *cobra.Command, args []string) error {
	var names []string
	if len(args) == 1 {
		names = species.Suggest(args[0], speciesLimit)
	} else {
		names = species.All()
		if speciesLimit > 0 && len(names) > speciesLimit {
			names = names[:speciesLimit]
		}
	}
	for _, n := range names {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}

// canonicalSpecies trims the name and uses the listed spelling when one matches.
func canonicalSpecies(name string) string {
	if c, ok := species.Canonical(name); ok {
		return c
	}
	return strings.TrimSpace(name)
}

// speciesNote warns about names missing from the species list, empty when the name is known.
func speciesNote(name string) string {
	if species.Known(name) {
		return ""
	}
	return fmt.Sprintf("Note: %q is not in the species list.", name)
}

// summaryLine renders a sighting on one line.
func summaryLine(b models.Bird) string {
	line := fmt.Sprintf("%s  %-10s  %s", b.ID, b.Date, b.Species)
	if b.PlaceName != "" {
		line += " @ " + b.PlaceName
	}
	if b.HasPhoto() {
		line += " [photo]"
	}
	return line
}

func printBird(w io.Writer, b models.Bird) {
	_, _ = fmt.Fprintf(w, "ID:       %s\n", b.ID)
	_, _ = fmt.Fprintf(w, "Species:  %s\n", b.Species)
	_, _ = fmt.Fprintf(w, "Place:    %s\n", b.PlaceName)
	_, _ = fmt.Fprintf(w, "Date:     %s\n", b.Date)
	_, _ = fmt.Fprintf(w, "Location: %.6f, %.6f (zoom %.0f)\n", b.GeoLocation.Lat, b.GeoLocation.Lng, b.GeoLocation.Zoom)
	if b.HasPhoto() {
		_, _ = fmt.Fprintf(w, "Photo:    %s\n", b.ImageURI)
	}
	if b.Notes != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", b.Notes)
	}
}
