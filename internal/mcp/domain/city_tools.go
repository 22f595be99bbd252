package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	apperrors "github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

// City adjustment kinds.
const (
	AdjustPressure  = "pressure"
	AdjustTheme     = "theme"
	AdjustAwareness = "awareness"
)

// CityAdjustInput represents the MCP tool input for a director tweak.
type CityAdjustInput struct {
	Chronicle string `json:"chronicle" jsonschema:"chronicle whose city state to adjust"`
	Kind      string `json:"kind" jsonschema:"counter kind: pressure, theme, or awareness"`
	Key       string `json:"key,omitempty" jsonschema:"counter key, unused for awareness"`
	Delta     int    `json:"delta" jsonschema:"signed adjustment"`
	NightTick bool   `json:"night_tick,omitempty" jsonschema:"advance the city by one night before adjusting"`
}

// CityAdjustResult represents the MCP tool output for a director tweak.
type CityAdjustResult struct {
	Kind        string `json:"kind" jsonschema:"counter kind adjusted"`
	Key         string `json:"key,omitempty" jsonschema:"counter key adjusted"`
	Before      int    `json:"before" jsonschema:"counter value before"`
	After       int    `json:"after" jsonschema:"counter value after clamping"`
	ThreatLevel int    `json:"threat_level" jsonschema:"city threat level after the adjustment"`
	Severity    string `json:"severity" jsonschema:"threat severity label"`
}

// CityAdjustTool defines the MCP tool schema for director tweaks.
func CityAdjustTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "city_adjust",
		Description: "Adjusts a city pressure, theme, or awareness counter",
	}
}

// CityAdjustHandler applies a manual adjustment to the city state.
func CityAdjustHandler(deps Deps) mcp.ToolHandlerFor[CityAdjustInput, CityAdjustResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CityAdjustInput) (*mcp.CallToolResult, CityAdjustResult, error) {
		if strings.TrimSpace(input.Chronicle) == "" {
			return nil, CityAdjustResult{}, apperrors.New(
				apperrors.CodeCharacterEmptyChronicle, "chronicle is required")
		}

		state, err := deps.loadDirector(ctx, input.Chronicle)
		if err != nil {
			return nil, CityAdjustResult{}, err
		}
		if input.NightTick {
			state.NightTick()
		}

		var before, after int
		switch input.Kind {
		case AdjustPressure:
			before, after, err = state.Adjust(input.Key, input.Delta)
		case AdjustTheme:
			before, after, err = state.AdjustTheme(input.Key, input.Delta)
		case AdjustAwareness:
			before, after = state.AdjustAwareness(input.Delta)
		default:
			err = apperrors.WithMetadata(apperrors.CodePressureKeyUnknown,
				fmt.Sprintf("unknown adjustment kind %q", input.Kind),
				map[string]string{"key": input.Kind})
		}
		if err != nil {
			return nil, CityAdjustResult{}, err
		}

		if err := deps.saveDirector(ctx, state); err != nil {
			return nil, CityAdjustResult{}, err
		}

		level := state.GlobalThreatLevel()
		deps.emit(ctx, input.Chronicle, "", "city_adjust",
			fmt.Sprintf("%s %s %+d", input.Kind, input.Key, input.Delta))
		return nil, CityAdjustResult{
			Kind:        input.Kind,
			Key:         input.Key,
			Before:      before,
			After:       after,
			ThreatLevel: level,
			Severity:    director.SeverityLabel(level),
		}, nil
	}
}

// CitySummaryResource defines the MCP resource for city summaries.
func CitySummaryResource() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "city_summary",
		Title:       "City Summary",
		Description: "Pressure, theme, and threat snapshot for one chronicle",
		MIMEType:    "application/json",
		URITemplate: "nocturne://city/{chronicle}",
	}
}

// CitySummaryResourceHandler reads a chronicle's city summary.
func CitySummaryResourceHandler(deps Deps) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("city summary URI is required")
		}
		chronicle := strings.TrimPrefix(req.Params.URI, "nocturne://city/")
		if chronicle == "" || chronicle == req.Params.URI {
			return nil, fmt.Errorf("city summary URI %q is malformed", req.Params.URI)
		}

		state, err := deps.loadDirector(ctx, chronicle)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(state.Summarize(0), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal city summary: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      req.Params.URI,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// ZoneListEntry is one zone in the zone list resource payload.
type ZoneListEntry struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Danger int      `json:"danger"`
	Tags   []string `json:"tags,omitempty"`
}

// ZoneListPayload is the zone list resource payload.
type ZoneListPayload struct {
	Default string          `json:"default"`
	Zones   []ZoneListEntry `json:"zones"`
}

// ZoneListResource defines the MCP resource for the zone catalog.
func ZoneListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "zone_list",
		Title:       "Zones",
		Description: "Readable catalog of the city's zones",
		MIMEType:    "application/json",
		URI:         "nocturne://zones",
	}
}

// ZoneListResourceHandler reads the zone catalog.
func ZoneListResourceHandler(deps Deps) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := ZoneListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		payload := ZoneListPayload{Default: deps.Zones.DefaultZone().Key}
		for _, key := range deps.Zones.Keys() {
			z, err := deps.Zones.Get(key)
			if err != nil {
				return nil, err
			}
			payload.Zones = append(payload.Zones, ZoneListEntry{
				Key:    z.Key,
				Name:   z.Name,
				Danger: z.Danger,
				Tags:   z.Tags,
			})
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal zone list: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
