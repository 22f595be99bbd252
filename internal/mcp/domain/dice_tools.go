package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nocturne-rpg/nocturne/internal/core/check"
	"github.com/nocturne-rpg/nocturne/internal/core/dice"
	apperrors "github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

// RollPoolInput represents the MCP tool input for a pool roll.
type RollPoolInput struct {
	Pool       int    `json:"pool" jsonschema:"total number of d10s to roll"`
	Hunger     int    `json:"hunger" jsonschema:"how many of the pool dice are hunger dice"`
	Difficulty *int   `json:"difficulty,omitempty" jsonschema:"optional success target"`
	Chronicle  string `json:"chronicle,omitempty" jsonschema:"optional chronicle for telemetry"`
	Actor      string `json:"actor,omitempty" jsonschema:"optional actor for telemetry"`
}

// RollPoolResult represents the MCP tool output for a pool roll.
type RollPoolResult struct {
	Pool       int    `json:"pool" jsonschema:"dice rolled after clamping"`
	Hunger     int    `json:"hunger" jsonschema:"hunger dice rolled after clamping"`
	Normal     []int  `json:"normal" jsonschema:"normal die results"`
	HungerDice []int  `json:"hunger_dice" jsonschema:"hunger die results"`
	Successes  int    `json:"successes" jsonschema:"total successes including crit bonuses"`
	CritPairs  int    `json:"crit_pairs" jsonschema:"number of pooled pairs of tens"`
	Outcome    string `json:"outcome" jsonschema:"outcome classification"`
	Chaos      string `json:"chaos,omitempty" jsonschema:"bestial success complication"`
	Success    *bool  `json:"success,omitempty" jsonschema:"whether the difficulty was met"`
	Margin     *int   `json:"margin,omitempty" jsonschema:"successes minus difficulty"`
}

// RollPoolTool defines the MCP tool schema for pool rolls.
func RollPoolTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_pool",
		Description: "Rolls a hunger-aware d10 pool",
	}
}

// RollPoolHandler resolves a dice pool.
func RollPoolHandler(deps Deps) mcp.ToolHandlerFor[RollPoolInput, RollPoolResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollPoolInput) (*mcp.CallToolResult, RollPoolResult, error) {
		if input.Pool < 0 || input.Hunger < 0 {
			return nil, RollPoolResult{}, apperrors.WithMetadata(apperrors.CodeDicePoolNegative,
				fmt.Sprintf("pool %d with hunger %d is negative", input.Pool, input.Hunger),
				map[string]string{
					"pool":   fmt.Sprintf("%d", input.Pool),
					"hunger": fmt.Sprintf("%d", input.Hunger),
				})
		}

		roll := dice.RollPool(deps.Roller, input.Pool, input.Hunger)

		result := RollPoolResult{
			Pool:       roll.Pool,
			Hunger:     roll.Hunger,
			Normal:     roll.Normal,
			HungerDice: roll.HungerDice,
			Successes:  roll.Successes,
			CritPairs:  roll.CritPairs,
			Outcome:    roll.Outcome.String(),
			Chaos:      roll.Chaos,
		}
		if input.Difficulty != nil {
			checked := check.Check(roll.Successes, *input.Difficulty)
			result.Success = &checked.Success
			result.Margin = &checked.Margin
		}

		deps.emit(ctx, input.Chronicle, input.Actor, "roll_pool",
			fmt.Sprintf("%s with %d successes", result.Outcome, result.Successes))
		return nil, result, nil
	}
}
