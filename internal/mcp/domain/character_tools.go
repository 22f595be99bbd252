package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RouseCheckInput represents the MCP tool input for a rouse check.
type RouseCheckInput struct {
	Chronicle string `json:"chronicle" jsonschema:"chronicle the character belongs to"`
	Name      string `json:"name" jsonschema:"character name"`
}

// RouseCheckResult represents the MCP tool output for a rouse check.
type RouseCheckResult struct {
	Roll      int  `json:"roll" jsonschema:"the d10 result"`
	Success   bool `json:"success" jsonschema:"whether the check held hunger steady"`
	OldHunger int  `json:"old_hunger" jsonschema:"hunger before the check"`
	NewHunger int  `json:"new_hunger" jsonschema:"hunger after the check"`
}

// RouseCheckTool defines the MCP tool schema for rouse checks.
func RouseCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "rouse_check",
		Description: "Rolls a rouse check, raising hunger on failure",
	}
}

// RouseCheckHandler executes a rouse check against a stored character.
func RouseCheckHandler(deps Deps) mcp.ToolHandlerFor[RouseCheckInput, RouseCheckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RouseCheckInput) (*mcp.CallToolResult, RouseCheckResult, error) {
		c, err := deps.loadCharacter(ctx, input.Chronicle, input.Name)
		if err != nil {
			return nil, RouseCheckResult{}, err
		}

		out := c.RouseCheck(deps.Roller)
		if err := deps.saveCharacter(ctx, c); err != nil {
			return nil, RouseCheckResult{}, err
		}

		deps.emit(ctx, input.Chronicle, input.Name, "rouse_check",
			fmt.Sprintf("rolled %d, hunger %d to %d", out.Roll, out.OldHunger, out.NewHunger))
		return nil, RouseCheckResult{
			Roll:      out.Roll,
			Success:   out.Success,
			OldHunger: out.OldHunger,
			NewHunger: out.NewHunger,
		}, nil
	}
}

// RemorseRollInput represents the MCP tool input for a remorse roll.
type RemorseRollInput struct {
	Chronicle string `json:"chronicle" jsonschema:"chronicle the character belongs to"`
	Name      string `json:"name" jsonschema:"character name"`
}

// RemorseRollResult represents the MCP tool output for a remorse roll.
type RemorseRollResult struct {
	Pool             int   `json:"pool" jsonschema:"dice rolled after modifiers"`
	BasePool         int   `json:"base_pool" jsonschema:"pool before trait and touchstone modifiers"`
	Rolled           []int `json:"rolled" jsonschema:"individual die results"`
	Successes        int   `json:"successes" jsonschema:"dice at six or higher"`
	Remorse          bool  `json:"remorse" jsonschema:"whether humanity held"`
	PreviousHumanity int   `json:"previous_humanity" jsonschema:"humanity before the roll"`
	FinalHumanity    int   `json:"final_humanity" jsonschema:"humanity after the roll"`
	PreviousStains   int   `json:"previous_stains" jsonschema:"stains cleared by the roll"`
}

// RemorseRollTool defines the MCP tool schema for remorse rolls.
func RemorseRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "remorse_roll",
		Description: "Rolls remorse against accumulated stains",
	}
}

// RemorseRollHandler executes a remorse roll against a stored character.
func RemorseRollHandler(deps Deps) mcp.ToolHandlerFor[RemorseRollInput, RemorseRollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RemorseRollInput) (*mcp.CallToolResult, RemorseRollResult, error) {
		c, err := deps.loadCharacter(ctx, input.Chronicle, input.Name)
		if err != nil {
			return nil, RemorseRollResult{}, err
		}

		out := c.RemorseRoll(deps.Roller)
		if err := deps.saveCharacter(ctx, c); err != nil {
			return nil, RemorseRollResult{}, err
		}

		deps.emit(ctx, input.Chronicle, input.Name, "remorse_roll",
			fmt.Sprintf("%d successes, humanity %d to %d", out.Successes, out.PreviousHumanity, out.FinalHumanity))
		return nil, RemorseRollResult{
			Pool:             out.Pool,
			BasePool:         out.BasePool,
			Rolled:           out.Rolled,
			Successes:        out.Successes,
			Remorse:          out.Remorse,
			PreviousHumanity: out.PreviousHumanity,
			FinalHumanity:    out.FinalHumanity,
			PreviousStains:   out.PreviousStains,
		}, nil
	}
}
