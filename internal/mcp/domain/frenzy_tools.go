package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/frenzy"
	apperrors "github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

var knownTriggers = map[frenzy.Trigger]bool{
	frenzy.TriggerBestialFailure:   true,
	frenzy.TriggerMessyCritical:    true,
	frenzy.TriggerHungerFour:       true,
	frenzy.TriggerAggravatedDamage: true,
	frenzy.TriggerFearFire:         true,
	frenzy.TriggerFearSun:          true,
}

// FrenzyCheckInput represents the MCP tool input for a frenzy test.
type FrenzyCheckInput struct {
	Chronicle  string `json:"chronicle" jsonschema:"chronicle the character belongs to"`
	Name       string `json:"name" jsonschema:"character name"`
	Trigger    string `json:"trigger" jsonschema:"what provoked the beast"`
	Difficulty int    `json:"difficulty,omitempty" jsonschema:"self-control difficulty, defaults to 3"`
	Zone       string `json:"zone,omitempty" jsonschema:"zone key for pressure events"`
}

// FrenzyCheckResult represents the MCP tool output for a frenzy test.
type FrenzyCheckResult struct {
	Triggered   bool   `json:"triggered" jsonschema:"whether the trigger forced a test"`
	Trigger     string `json:"trigger" jsonschema:"trigger tested against"`
	Pool        int    `json:"pool" jsonschema:"resolve plus composure pool"`
	Difficulty  int    `json:"difficulty" jsonschema:"successes required to hold"`
	Successes   int    `json:"successes" jsonschema:"successes rolled"`
	Frenzied    bool   `json:"frenzied" jsonschema:"whether the beast took over"`
	ThreatLevel int    `json:"threat_level,omitempty" jsonschema:"city threat level after pressure events"`
}

// FrenzyCheckTool defines the MCP tool schema for frenzy tests.
func FrenzyCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "frenzy_check",
		Description: "Tests a character's self-control against a frenzy trigger",
	}
}

// FrenzyCheckHandler runs a self-control test for a stored character.
func FrenzyCheckHandler(deps Deps) mcp.ToolHandlerFor[FrenzyCheckInput, FrenzyCheckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FrenzyCheckInput) (*mcp.CallToolResult, FrenzyCheckResult, error) {
		trigger := frenzy.Trigger(input.Trigger)
		if !knownTriggers[trigger] {
			return nil, FrenzyCheckResult{}, apperrors.WithMetadata(
				apperrors.CodeCombatUnknownTriggerKind,
				fmt.Sprintf("unknown frenzy trigger %q", input.Trigger),
				map[string]string{"trigger": input.Trigger})
		}

		c, err := deps.loadCharacter(ctx, input.Chronicle, input.Name)
		if err != nil {
			return nil, FrenzyCheckResult{}, err
		}

		res, triggered := deps.Frenzies.Check(deps.Roller, c, trigger, input.Difficulty)
		result := FrenzyCheckResult{Triggered: triggered, Trigger: input.Trigger}
		if !triggered {
			return nil, result, nil
		}

		if err := deps.saveCharacter(ctx, c); err != nil {
			return nil, FrenzyCheckResult{}, err
		}

		result.Pool = res.Pool
		result.Difficulty = res.Difficulty
		result.Successes = res.Roll.Successes
		result.Frenzied = res.Frenzied

		if res.Frenzied && input.Chronicle != "" {
			state, err := deps.applyEvents(ctx, input.Chronicle, []director.OutcomeEvent{{
				Kind:  director.EventFrenzy,
				Actor: input.Name,
				Zone:  input.Zone,
			}})
			if err != nil {
				return nil, FrenzyCheckResult{}, err
			}
			result.ThreatLevel = state.GlobalThreatLevel()
		}

		deps.emit(ctx, input.Chronicle, input.Name, "frenzy_check",
			fmt.Sprintf("%s: %d successes against %d, frenzied=%t", input.Trigger, result.Successes, result.Difficulty, result.Frenzied))
		return nil, result, nil
	}
}

// FrenzyClearInput represents the MCP tool input for clearing frenzy.
type FrenzyClearInput struct {
	Chronicle string `json:"chronicle" jsonschema:"chronicle the character belongs to"`
	Name      string `json:"name" jsonschema:"character name"`
}

// FrenzyClearResult represents the MCP tool output for clearing frenzy.
type FrenzyClearResult struct {
	Name    string `json:"name" jsonschema:"character name"`
	Cleared bool   `json:"cleared" jsonschema:"whether an active frenzy was cleared"`
}

// FrenzyClearTool defines the MCP tool schema for clearing frenzy.
func FrenzyClearTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "frenzy_clear",
		Description: "Rides out an active frenzy and clears the flag",
	}
}

// FrenzyClearHandler clears a character's frenzy flag.
func FrenzyClearHandler(deps Deps) mcp.ToolHandlerFor[FrenzyClearInput, FrenzyClearResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FrenzyClearInput) (*mcp.CallToolResult, FrenzyClearResult, error) {
		c, err := deps.loadCharacter(ctx, input.Chronicle, input.Name)
		if err != nil {
			return nil, FrenzyClearResult{}, err
		}

		cleared := deps.Frenzies.Clear(c)
		if err := deps.saveCharacter(ctx, c); err != nil {
			return nil, FrenzyClearResult{}, err
		}

		deps.emit(ctx, input.Chronicle, input.Name, "frenzy_clear", fmt.Sprintf("cleared=%t", cleared))
		return nil, FrenzyClearResult{Name: input.Name, Cleared: cleared}, nil
	}
}
