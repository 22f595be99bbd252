package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/hunting"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/travel"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/zone"
)

// HuntInput represents the MCP tool input for hunting.
type HuntInput struct {
	Chronicle string `json:"chronicle" jsonschema:"chronicle the character belongs to"`
	Name      string `json:"name" jsonschema:"character name"`
	Zone      string `json:"zone,omitempty" jsonschema:"zone key, defaults to the character's location"`
}

// HuntResult represents the MCP tool output for hunting.
type HuntResult struct {
	Zone         string   `json:"zone" jsonschema:"zone hunted in"`
	Archetype    string   `json:"archetype" jsonschema:"predator archetype applied"`
	Pool         int      `json:"pool" jsonschema:"hunt dice rolled"`
	Difficulty   int      `json:"difficulty" jsonschema:"successes required"`
	Successes    int      `json:"successes" jsonschema:"successes rolled"`
	Outcome      string   `json:"outcome" jsonschema:"roll outcome classification"`
	Source       string   `json:"source" jsonschema:"what the character fed on"`
	Amount       int      `json:"amount" jsonschema:"hunger slaked before floors"`
	HungerBefore int      `json:"hunger_before" jsonschema:"hunger before feeding"`
	HungerAfter  int      `json:"hunger_after" jsonschema:"hunger after feeding and floors"`
	Notes        []string `json:"notes,omitempty" jsonschema:"pool and floor adjustments applied"`
	ThreatLevel  int      `json:"threat_level,omitempty" jsonschema:"city threat level after pressure events"`
}

// HuntTool defines the MCP tool schema for hunting.
func HuntTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hunt",
		Description: "Hunts for blood in a zone using the character's predator archetype",
	}
}

// HuntHandler resolves a hunt for a stored character.
func HuntHandler(deps Deps) mcp.ToolHandlerFor[HuntInput, HuntResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HuntInput) (*mcp.CallToolResult, HuntResult, error) {
		c, err := deps.loadCharacter(ctx, input.Chronicle, input.Name)
		if err != nil {
			return nil, HuntResult{}, err
		}

		z, err := deps.huntZone(c.Location(), input.Zone)
		if err != nil {
			return nil, HuntResult{}, err
		}

		res, err := hunting.Hunt(deps.Roller, c, z)
		if err != nil {
			return nil, HuntResult{}, err
		}
		if err := deps.saveCharacter(ctx, c); err != nil {
			return nil, HuntResult{}, err
		}

		state, err := deps.applyEvents(ctx, input.Chronicle, res.Events)
		if err != nil {
			return nil, HuntResult{}, err
		}

		deps.emit(ctx, input.Chronicle, input.Name, "hunt",
			fmt.Sprintf("%s in %s: %s, slaked %d", res.Archetype, res.Zone, res.Roll.Outcome, res.Amount))
		return nil, HuntResult{
			Zone:         res.Zone,
			Archetype:    res.Archetype,
			Pool:         res.Pool,
			Difficulty:   res.Difficulty,
			Successes:    res.Roll.Successes,
			Outcome:      res.Roll.Outcome.String(),
			Source:       res.Source,
			Amount:       res.Amount,
			HungerBefore: res.HungerBefore,
			HungerAfter:  res.HungerAfter,
			Notes:        res.Notes,
			ThreatLevel:  state.GlobalThreatLevel(),
		}, nil
	}
}

// huntZone resolves the hunting ground: an explicit key wins, then the
// character's location, then the registry default.
func (d Deps) huntZone(location, requested string) (zone.Zone, error) {
	key := strings.TrimSpace(requested)
	if key == "" {
		key = location
	}
	if key == "" {
		return d.Zones.DefaultZone(), nil
	}
	return d.Zones.Get(key)
}

// FeedInput represents the MCP tool input for a manual feeding.
type FeedInput struct {
	Chronicle string `json:"chronicle" jsonschema:"chronicle the character belongs to"`
	Name      string `json:"name" jsonschema:"character name"`
	Source    string `json:"source" jsonschema:"feeding source: human, animal, bagged, or vampire"`
	Amount    int    `json:"amount" jsonschema:"hunger levels to slake"`
}

// FeedResult represents the MCP tool output for a manual feeding.
type FeedResult struct {
	Source       string   `json:"source" jsonschema:"what the character fed on"`
	Amount       int      `json:"amount" jsonschema:"hunger slaked before floors"`
	HungerBefore int      `json:"hunger_before" jsonschema:"hunger before feeding"`
	HungerAfter  int      `json:"hunger_after" jsonschema:"hunger after feeding and floors"`
	Notes        []string `json:"notes,omitempty" jsonschema:"floor adjustments applied"`
	ThreatLevel  int      `json:"threat_level,omitempty" jsonschema:"city threat level after pressure events"`
}

// FeedTool defines the MCP tool schema for manual feedings.
func FeedTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "feed",
		Description: "Applies a feeding resolved in the narrative, honoring predator floors",
	}
}

// FeedHandler applies a narrative feeding to a stored character.
func FeedHandler(deps Deps) mcp.ToolHandlerFor[FeedInput, FeedResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FeedInput) (*mcp.CallToolResult, FeedResult, error) {
		c, err := deps.loadCharacter(ctx, input.Chronicle, input.Name)
		if err != nil {
			return nil, FeedResult{}, err
		}

		arch, err := hunting.Lookup(c.PredatorKey())
		if err != nil {
			return nil, FeedResult{}, err
		}
		res, err := hunting.Feed(c, arch, input.Source, input.Amount)
		if err != nil {
			return nil, FeedResult{}, err
		}
		if err := deps.saveCharacter(ctx, c); err != nil {
			return nil, FeedResult{}, err
		}

		var events []director.OutcomeEvent
		if res.Amount > 0 {
			events = append(events, director.OutcomeEvent{
				Kind:   director.EventFeeding,
				Actor:  c.Name(),
				Zone:   c.Location(),
				Source: res.Source,
			})
		}
		state, err := deps.applyEvents(ctx, input.Chronicle, events)
		if err != nil {
			return nil, FeedResult{}, err
		}

		deps.emit(ctx, input.Chronicle, input.Name, "feed",
			fmt.Sprintf("%s, slaked %d", res.Source, res.Amount))
		return nil, FeedResult{
			Source:       res.Source,
			Amount:       res.Amount,
			HungerBefore: res.HungerBefore,
			HungerAfter:  res.HungerAfter,
			Notes:        res.Notes,
			ThreatLevel:  state.GlobalThreatLevel(),
		}, nil
	}
}

// TravelEncounter is the street encounter attached to a journey.
type TravelEncounter struct {
	Text     string   `json:"text" jsonschema:"what the character runs into"`
	Severity int      `json:"severity" jsonschema:"how bad it is, 1 to 5"`
	Tags     []string `json:"tags,omitempty" jsonschema:"pressure tags"`
}

// TravelInput represents the MCP tool input for traveling.
type TravelInput struct {
	Chronicle   string `json:"chronicle" jsonschema:"chronicle the character belongs to"`
	Name        string `json:"name" jsonschema:"character name"`
	Destination string `json:"destination" jsonschema:"destination zone key"`
}

// TravelResult represents the MCP tool output for traveling.
type TravelResult struct {
	Origin      string           `json:"origin" jsonschema:"zone the character left"`
	Destination string           `json:"destination" jsonschema:"zone the character arrived in"`
	Encounter   *TravelEncounter `json:"encounter,omitempty" jsonschema:"street encounter, if any"`
	ThreatLevel int              `json:"threat_level,omitempty" jsonschema:"city threat level after pressure events"`
}

// TravelTool defines the MCP tool schema for traveling.
func TravelTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "travel",
		Description: "Moves a character between zones, risking street encounters",
	}
}

// TravelHandler moves a stored character to another zone.
func TravelHandler(deps Deps) mcp.ToolHandlerFor[TravelInput, TravelResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TravelInput) (*mcp.CallToolResult, TravelResult, error) {
		c, err := deps.loadCharacter(ctx, input.Chronicle, input.Name)
		if err != nil {
			return nil, TravelResult{}, err
		}

		res, err := travel.Travel(deps.Roller, c, deps.Zones, input.Destination)
		if err != nil {
			return nil, TravelResult{}, err
		}
		if err := deps.saveCharacter(ctx, c); err != nil {
			return nil, TravelResult{}, err
		}

		state, err := deps.applyEvents(ctx, input.Chronicle, res.Events)
		if err != nil {
			return nil, TravelResult{}, err
		}

		result := TravelResult{
			Origin:      res.Origin,
			Destination: res.Destination,
			ThreatLevel: state.GlobalThreatLevel(),
		}
		if res.Encounter != nil {
			result.Encounter = &TravelEncounter{
				Text:     res.Encounter.Text,
				Severity: res.Encounter.Severity,
				Tags:     res.Encounter.Tags,
			}
		}

		deps.emit(ctx, input.Chronicle, input.Name, "travel",
			fmt.Sprintf("%s to %s", res.Origin, res.Destination))
		return nil, result, nil
	}
}
