package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/combat"
)

// CombatStartInput represents the MCP tool input for starting combat.
type CombatStartInput struct {
	Context string `json:"context" jsonschema:"scene identifier owning the encounter"`
}

// CombatStartResult represents the MCP tool output for starting combat.
type CombatStartResult struct {
	Context string `json:"context" jsonschema:"scene identifier"`
	Phase   string `json:"phase" jsonschema:"encounter phase"`
}

// CombatStartTool defines the MCP tool schema for starting combat.
func CombatStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "combat_start",
		Description: "Opens a combat encounter for a scene",
	}
}

// CombatStartHandler opens a new encounter.
func CombatStartHandler(deps Deps) mcp.ToolHandlerFor[CombatStartInput, CombatStartResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CombatStartInput) (*mcp.CallToolResult, CombatStartResult, error) {
		enc, err := deps.Encounters.Start(input.Context, deps.Roller)
		if err != nil {
			return nil, CombatStartResult{}, err
		}
		return nil, CombatStartResult{Context: enc.Context(), Phase: string(enc.Phase())}, nil
	}
}

// CombatNPC describes an ad hoc opponent joining an encounter.
type CombatNPC struct {
	Vampire     bool           `json:"vampire" jsonschema:"whether the NPC is a vampire"`
	MaxHealth   int            `json:"max_health,omitempty" jsonschema:"health track size, defaults to 10"`
	Fortitude   int            `json:"fortitude,omitempty" jsonschema:"fortitude soak rating"`
	Attributes  map[string]int `json:"attributes,omitempty" jsonschema:"attribute ratings"`
	Skills      map[string]int `json:"skills,omitempty" jsonschema:"skill ratings"`
	Disciplines map[string]int `json:"disciplines,omitempty" jsonschema:"discipline ratings"`
}

// CombatJoinInput represents the MCP tool input for joining combat.
// When NPC is omitted the name must match a stored character.
type CombatJoinInput struct {
	Context   string     `json:"context" jsonschema:"scene identifier"`
	Chronicle string     `json:"chronicle,omitempty" jsonschema:"chronicle for stored characters"`
	Name      string     `json:"name" jsonschema:"combatant name"`
	NPC       *CombatNPC `json:"npc,omitempty" jsonschema:"ad hoc NPC sheet"`
}

// CombatJoinResult represents the MCP tool output for joining combat.
type CombatJoinResult struct {
	Context    string `json:"context" jsonschema:"scene identifier"`
	Name       string `json:"name" jsonschema:"combatant name"`
	Initiative int    `json:"initiative" jsonschema:"rolled initiative score"`
}

// CombatJoinTool defines the MCP tool schema for joining combat.
func CombatJoinTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "combat_join",
		Description: "Adds a stored character or ad hoc NPC to an encounter",
	}
}

// CombatJoinHandler adds a combatant to an encounter.
func CombatJoinHandler(deps Deps) mcp.ToolHandlerFor[CombatJoinInput, CombatJoinResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CombatJoinInput) (*mcp.CallToolResult, CombatJoinResult, error) {
		enc, err := deps.Encounters.Get(input.Context)
		if err != nil {
			return nil, CombatJoinResult{}, err
		}

		var cb *combat.Combatant
		if input.NPC != nil {
			cb = combat.FromNPC(combat.NPCSheet{
				Name:        input.Name,
				IsVampire:   input.NPC.Vampire,
				MaxHealth:   input.NPC.MaxHealth,
				Fortitude:   input.NPC.Fortitude,
				Attributes:  input.NPC.Attributes,
				Skills:      input.NPC.Skills,
				Disciplines: input.NPC.Disciplines,
			})
		} else {
			c, err := deps.loadCharacter(ctx, input.Chronicle, input.Name)
			if err != nil {
				return nil, CombatJoinResult{}, err
			}
			cb = combat.FromCharacter(c)
		}

		if err := enc.AddCombatant(cb); err != nil {
			return nil, CombatJoinResult{}, err
		}
		deps.emit(ctx, input.Chronicle, input.Name, "combat_join", "joined "+input.Context)
		return nil, CombatJoinResult{Context: input.Context, Name: cb.Name(), Initiative: cb.Initiative()}, nil
	}
}

// CombatInitiativeInput represents the MCP tool input for building
// initiative order.
type CombatInitiativeInput struct {
	Context string `json:"context" jsonschema:"scene identifier"`
}

// CombatInitiativeResult represents the MCP tool output for initiative.
type CombatInitiativeResult struct {
	Order []string `json:"order" jsonschema:"combatant names in descending initiative"`
	Round int      `json:"round" jsonschema:"current round number"`
	Actor string   `json:"actor" jsonschema:"combatant whose turn it is"`
}

// CombatInitiativeTool defines the MCP tool schema for initiative.
func CombatInitiativeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "combat_initiative",
		Description: "Builds initiative order and activates the encounter",
	}
}

// CombatInitiativeHandler builds the encounter's turn order.
func CombatInitiativeHandler(deps Deps) mcp.ToolHandlerFor[CombatInitiativeInput, CombatInitiativeResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CombatInitiativeInput) (*mcp.CallToolResult, CombatInitiativeResult, error) {
		enc, err := deps.Encounters.Get(input.Context)
		if err != nil {
			return nil, CombatInitiativeResult{}, err
		}
		order, err := enc.BuildInitiative()
		if err != nil {
			return nil, CombatInitiativeResult{}, err
		}
		actor, err := enc.CurrentActor()
		if err != nil {
			return nil, CombatInitiativeResult{}, err
		}
		return nil, CombatInitiativeResult{Order: order, Round: enc.Round(), Actor: actor}, nil
	}
}

// CombatTurnInput represents the MCP tool input for turn handling.
type CombatTurnInput struct {
	Context string `json:"context" jsonschema:"scene identifier"`
	Advance bool   `json:"advance,omitempty" jsonschema:"advance to the next turn instead of peeking"`
}

// CombatTurnResult represents the MCP tool output for turn handling.
type CombatTurnResult struct {
	Actor string `json:"actor" jsonschema:"combatant whose turn it is"`
	Round int    `json:"round" jsonschema:"current round number"`
}

// CombatTurnTool defines the MCP tool schema for turn handling.
func CombatTurnTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "combat_turn",
		Description: "Reads or advances the current combat turn",
	}
}

// CombatTurnHandler reads or advances the turn pointer.
func CombatTurnHandler(deps Deps) mcp.ToolHandlerFor[CombatTurnInput, CombatTurnResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CombatTurnInput) (*mcp.CallToolResult, CombatTurnResult, error) {
		enc, err := deps.Encounters.Get(input.Context)
		if err != nil {
			return nil, CombatTurnResult{}, err
		}
		var actor string
		if input.Advance {
			actor, err = enc.NextTurn()
		} else {
			actor, err = enc.CurrentActor()
		}
		if err != nil {
			return nil, CombatTurnResult{}, err
		}
		return nil, CombatTurnResult{Actor: actor, Round: enc.Round()}, nil
	}
}

// FrenzyCheckEntry is the frenzy test summary attached to an attack.
type FrenzyCheckEntry struct {
	Subject  string `json:"subject" jsonschema:"combatant tested"`
	Trigger  string `json:"trigger" jsonschema:"what forced the test"`
	Frenzied bool   `json:"frenzied" jsonschema:"whether the beast took over"`
}

// CombatAttackInput represents the MCP tool input for an attack.
type CombatAttackInput struct {
	Context    string `json:"context" jsonschema:"scene identifier"`
	Chronicle  string `json:"chronicle,omitempty" jsonschema:"chronicle receiving pressure events"`
	Attacker   string `json:"attacker" jsonschema:"attacking combatant name"`
	Defender   string `json:"defender" jsonschema:"defending combatant name"`
	Weapon     string `json:"weapon" jsonschema:"weapon key from the arsenal"`
	Difficulty int    `json:"difficulty,omitempty" jsonschema:"attack difficulty, defaults to 2"`
	Range      string `json:"range,omitempty" jsonschema:"range band: close, short, medium, long"`
	Cover      string `json:"cover,omitempty" jsonschema:"defender cover: none, light, heavy"`
}

// CombatAttackResult represents the MCP tool output for an attack.
type CombatAttackResult struct {
	Pool             int                `json:"pool" jsonschema:"attack dice rolled"`
	Successes        int                `json:"successes" jsonschema:"successes rolled"`
	Outcome          string             `json:"outcome" jsonschema:"roll outcome classification"`
	NetSuccesses     int                `json:"net_successes" jsonschema:"successes after defense and cover"`
	Damage           int                `json:"damage" jsonschema:"damage dealt before soak"`
	Aggravated       bool               `json:"aggravated" jsonschema:"whether the damage was aggravated"`
	DamageApplied    int                `json:"damage_applied" jsonschema:"damage applied after soak and caps"`
	DefenderDefeated bool               `json:"defender_defeated" jsonschema:"whether the defender's track filled"`
	AmmoRemaining    int                `json:"ammo_remaining" jsonschema:"rounds left, -1 when not tracked"`
	FrenzyChecks     []FrenzyCheckEntry `json:"frenzy_checks,omitempty" jsonschema:"frenzy tests forced by the attack"`
	ThreatLevel      int                `json:"threat_level,omitempty" jsonschema:"city threat level after pressure events"`
}

// CombatAttackTool defines the MCP tool schema for attacks.
func CombatAttackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "combat_attack",
		Description: "Resolves an attack between two combatants",
	}
}

// CombatAttackHandler resolves an attack and feeds its fallout into the
// city model.
func CombatAttackHandler(deps Deps) mcp.ToolHandlerFor[CombatAttackInput, CombatAttackResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CombatAttackInput) (*mcp.CallToolResult, CombatAttackResult, error) {
		enc, err := deps.Encounters.Get(input.Context)
		if err != nil {
			return nil, CombatAttackResult{}, err
		}
		weapon, err := deps.Weapons.Weapon(input.Weapon)
		if err != nil {
			return nil, CombatAttackResult{}, err
		}
		rangeBand, err := combat.ParseRangeBand(input.Range)
		if err != nil {
			return nil, CombatAttackResult{}, err
		}
		cover, err := combat.ParseCover(input.Cover)
		if err != nil {
			return nil, CombatAttackResult{}, err
		}

		res, err := enc.Attack(combat.AttackInput{
			Attacker:   input.Attacker,
			Defender:   input.Defender,
			Weapon:     weapon,
			Difficulty: input.Difficulty,
			Range:      rangeBand,
			Cover:      cover,
		})
		if err != nil {
			return nil, CombatAttackResult{}, err
		}

		result := CombatAttackResult{
			Pool:             res.Pool,
			Successes:        res.Roll.Successes,
			Outcome:          res.Roll.Outcome.String(),
			NetSuccesses:     res.NetSuccesses,
			Damage:           res.Damage,
			Aggravated:       res.DamageReport.Aggravated,
			DamageApplied:    res.DamageReport.Applied,
			DefenderDefeated: res.DefenderDefeated,
			AmmoRemaining:    res.AmmoRemaining,
		}
		for _, fc := range res.FrenzyChecks {
			result.FrenzyChecks = append(result.FrenzyChecks, FrenzyCheckEntry{
				Subject:  fc.Subject,
				Trigger:  string(fc.Trigger),
				Frenzied: fc.Frenzied,
			})
		}

		if input.Chronicle != "" {
			state, err := deps.applyEvents(ctx, input.Chronicle, res.Events)
			if err != nil {
				return nil, CombatAttackResult{}, err
			}
			result.ThreatLevel = state.GlobalThreatLevel()
		}

		deps.emit(ctx, input.Chronicle, input.Attacker, "combat_attack",
			fmt.Sprintf("%s vs %s: %s for %d", input.Weapon, input.Defender, result.Outcome, result.DamageApplied))
		return nil, result, nil
	}
}

// CombatReloadInput represents the MCP tool input for reloading.
type CombatReloadInput struct {
	Context string `json:"context" jsonschema:"scene identifier"`
	Name    string `json:"name" jsonschema:"combatant reloading"`
	Weapon  string `json:"weapon" jsonschema:"weapon key from the arsenal"`
}

// CombatReloadResult represents the MCP tool output for reloading.
type CombatReloadResult struct {
	Weapon        string `json:"weapon" jsonschema:"weapon key"`
	AmmoRemaining int    `json:"ammo_remaining" jsonschema:"rounds after reloading"`
}

// CombatReloadTool defines the MCP tool schema for reloading.
func CombatReloadTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "combat_reload",
		Description: "Refills a ranged weapon's magazine",
	}
}

// CombatReloadHandler refills a combatant's magazine.
func CombatReloadHandler(deps Deps) mcp.ToolHandlerFor[CombatReloadInput, CombatReloadResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CombatReloadInput) (*mcp.CallToolResult, CombatReloadResult, error) {
		enc, err := deps.Encounters.Get(input.Context)
		if err != nil {
			return nil, CombatReloadResult{}, err
		}
		weapon, err := deps.Weapons.Weapon(input.Weapon)
		if err != nil {
			return nil, CombatReloadResult{}, err
		}
		remaining, err := enc.Reload(input.Name, weapon)
		if err != nil {
			return nil, CombatReloadResult{}, err
		}
		return nil, CombatReloadResult{Weapon: input.Weapon, AmmoRemaining: remaining}, nil
	}
}

// CombatEndInput represents the MCP tool input for ending combat.
type CombatEndInput struct {
	Context   string `json:"context" jsonschema:"scene identifier"`
	Chronicle string `json:"chronicle,omitempty" jsonschema:"chronicle to sync survivors back into"`
}

// CombatEndResult represents the MCP tool output for ending combat.
type CombatEndResult struct {
	Context string   `json:"context" jsonschema:"scene identifier"`
	Synced  []string `json:"synced,omitempty" jsonschema:"stored characters updated from the encounter"`
}

// CombatEndTool defines the MCP tool schema for ending combat.
func CombatEndTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "combat_end",
		Description: "Ends an encounter and syncs survivors back to storage",
	}
}

// CombatEndHandler closes the encounter. Combatants that match stored
// characters get their hunger and frenzy flags written back; ad hoc
// NPCs are discarded with the scene.
func CombatEndHandler(deps Deps) mcp.ToolHandlerFor[CombatEndInput, CombatEndResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CombatEndInput) (*mcp.CallToolResult, CombatEndResult, error) {
		enc, err := deps.Encounters.Get(input.Context)
		if err != nil {
			return nil, CombatEndResult{}, err
		}

		result := CombatEndResult{Context: input.Context}
		if input.Chronicle != "" {
			for _, cb := range enc.Combatants() {
				c, err := deps.loadCharacter(ctx, input.Chronicle, cb.Name())
				if err != nil {
					if isNotFound(err) {
						continue
					}
					return nil, CombatEndResult{}, err
				}
				c.SetHunger(cb.Hunger())
				c.SetFrenzied(cb.Frenzied())
				if err := deps.saveCharacter(ctx, c); err != nil {
					return nil, CombatEndResult{}, err
				}
				result.Synced = append(result.Synced, cb.Name())
			}
		}

		if err := deps.Encounters.End(input.Context); err != nil {
			return nil, CombatEndResult{}, err
		}
		deps.emit(ctx, input.Chronicle, "", "combat_end", "ended "+input.Context)
		return nil, result, nil
	}
}
