// ABOUTME: MCP tool implementations for bird sighting operations.
// ABOUTME: Registers list, add, update, delete, search, and nearby sighting tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/birdlog/internal/geo"
	"github.com/2389-research/birdlog/internal/models"
	"github.com/2389-research/birdlog/internal/search"
)

// defaultNearRadiusKm is used by sightings_near when no radius is given.
const defaultNearRadiusKm = 10.0

func (s *Server) registerBirdTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_sightings",
		Description: "List bird sightings in journal order.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of sightings to return (default: all)"}
			}
		}`),
	}, s.handleListSightings)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_sighting",
		Description: "Record a new bird sighting. Species is required; location defaults to the configured map position.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"species": {"type": "string", "description": "Bird species name"},
				"place_name": {"type": "string", "description": "Where the bird was seen"},
				"notes": {"type": "string", "description": "Free-form notes"},
				"date": {"type": "string", "description": "Date of the sighting, d/m/yyyy (default: today)"},
				"lat": {"type": "number", "description": "Latitude"},
				"lng": {"type": "number", "description": "Longitude"},
				"zoom": {"type": "number", "description": "Preferred map zoom level"},
				"image_uri": {"type": "string", "description": "Reference to a stored photo"}
			},
			"required": ["species"]
		}`),
	}, s.handleAddSighting)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "update_sighting",
		Description: "Change fields of an existing sighting. Only the fields provided are changed.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Sighting ID"},
				"species": {"type": "string"},
				"place_name": {"type": "string"},
				"notes": {"type": "string"},
				"date": {"type": "string"},
				"lat": {"type": "number"},
				"lng": {"type": "number"},
				"zoom": {"type": "number"},
				"image_uri": {"type": "string"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateSighting)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_sighting",
		Description: "Delete a sighting by ID.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Sighting ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteSighting)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_sightings",
		Description: "Search sightings by species, place, notes, or date. Returns the best matches first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search text"},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchSightings)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "sightings_near",
		Description: "Find sightings within a radius of a point, closest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"lat": {"type": "number", "description": "Latitude of the centre"},
				"lng": {"type": "number", "description": "Longitude of the centre"},
				"radius_km": {"type": "number", "description": "Search radius in kilometres (default 10)"}
			},
			"required": ["lat", "lng"]
		}`),
	}, s.handleSightingsNear)
}

// sightingArgs holds optional sighting fields; nil means "not provided".
type sightingArgs struct {
	ID        string   `json:"id"`
	Species   *string  `json:"species"`
	PlaceName *string  `json:"place_name"`
	Notes     *string  `json:"notes"`
	Date      *string  `json:"date"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Zoom      *float32 `json:"zoom"`
	ImageURI  *string  `json:"image_uri"`
}

// apply copies provided fields onto bird.
func (a sightingArgs) apply(bird *models.Bird) {
	if a.Species != nil {
		bird.Species = strings.TrimSpace(*a.Species)
	}
	if a.PlaceName != nil {
		bird.PlaceName = *a.PlaceName
	}
	if a.Notes != nil {
		bird.Notes = *a.Notes
	}
	if a.Date != nil {
		bird.Date = *a.Date
	}
	if a.Lat != nil {
		bird.GeoLocation.Lat = *a.Lat
	}
	if a.Lng != nil {
		bird.GeoLocation.Lng = *a.Lng
	}
	if a.Zoom != nil {
		bird.GeoLocation.Zoom = *a.Zoom
	}
	if a.ImageURI != nil {
		bird.ImageURI = *a.ImageURI
	}
}

func (s *Server) handleListSightings(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Limit int `json:"limit"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	birds := s.birds.FindAll()
	if len(birds) == 0 {
		return textResult("No sightings recorded."), nil
	}
	if args.Limit > 0 && len(birds) > args.Limit {
		birds = birds[:args.Limit]
	}

	var sb strings.Builder
	for i, b := range birds {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(formatBird(b))
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleAddSighting(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args sightingArgs
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	bird := models.NewBird("")
	bird.GeoLocation = s.defaultLoc
	args.apply(bird)

	if err := bird.Validate(); err != nil {
		return toolError("%v", err), nil
	}

	if err := s.birds.Create(bird); err != nil {
		return toolError("failed to save sighting: %v", err), nil
	}

	return textResult(fmt.Sprintf("Sighting recorded:\n%s", formatBird(*bird))), nil
}

func (s *Server) handleUpdateSighting(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args sightingArgs
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == "" {
		return toolError("id is required"), nil
	}

	bird, ok := s.birds.FindByID(args.ID)
	if !ok {
		return toolError("no sighting with id %s", args.ID), nil
	}
	args.apply(&bird)

	if err := bird.Validate(); err != nil {
		return toolError("%v", err), nil
	}
	if err := s.birds.Update(bird); err != nil {
		return toolError("failed to save sighting: %v", err), nil
	}

	return textResult(fmt.Sprintf("Sighting updated:\n%s", formatBird(bird))), nil
}

func (s *Server) handleDeleteSighting(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == "" {
		return toolError("id is required"), nil
	}

	bird, ok := s.birds.FindByID(args.ID)
	if !ok {
		return toolError("no sighting with id %s", args.ID), nil
	}
	if err := s.birds.Delete(bird); err != nil {
		return toolError("failed to delete sighting: %v", err), nil
	}

	return textResult(fmt.Sprintf("Deleted %s (%s)", bird.Species, bird.ID)), nil
}

func (s *Server) handleSearchSightings(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.Query) == "" {
		return toolError("query is required"), nil
	}

	results := search.Search(s.birds.FindAll(), args.Query, search.Options{Limit: args.Limit})
	if len(results) == 0 {
		return textResult("No matching sightings found."), nil
	}

	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(formatBird(r.Bird))
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleSightingsNear(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Lat      *float64 `json:"lat"`
		Lng      *float64 `json:"lng"`
		RadiusKm float64  `json:"radius_km"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Lat == nil || args.Lng == nil {
		return toolError("lat and lng are required"), nil
	}
	if args.RadiusKm <= 0 {
		args.RadiusKm = defaultNearRadiusKm
	}

	centre := models.Location{Lat: *args.Lat, Lng: *args.Lng}
	nearby := geo.Near(s.birds.FindAll(), centre, args.RadiusKm)
	if len(nearby) == 0 {
		return textResult(fmt.Sprintf("No sightings within %.1f km.", args.RadiusKm)), nil
	}

	var sb strings.Builder
	for i, n := range nearby {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%.2f km: ", n.DistanceKm))
		sb.WriteString(formatBird(n.Bird))
	}
	return textResult(sb.String()), nil
}

// formatBird renders one sighting as a short text block.
func formatBird(b models.Bird) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("- %s [%s]\n", b.Species, b.ID))
	if b.PlaceName != "" {
		sb.WriteString(fmt.Sprintf("  Place: %s\n", b.PlaceName))
	}
	if b.Date != "" {
		sb.WriteString(fmt.Sprintf("  Date: %s\n", b.Date))
	}
	sb.WriteString(fmt.Sprintf("  Location: %.6f, %.6f (zoom %g)\n", b.GeoLocation.Lat, b.GeoLocation.Lng, b.GeoLocation.Zoom))
	if b.Notes != "" {
		sb.WriteString(fmt.Sprintf("  Notes: %s\n", b.Notes))
	}
	if b.HasPhoto() {
		sb.WriteString(fmt.Sprintf("  Photo: %s\n", b.ImageURI))
	}
	return sb.String()
}

// unmarshalArgs decodes tool arguments, treating missing arguments as an empty object.
func unmarshalArgs(req *gomcp.CallToolRequest, v interface{}) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
