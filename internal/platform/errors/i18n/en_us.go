package i18n

import "golang.org/x/text/language"

// Error codes must match the codes defined in internal/platform/errors/codes.go.
const (
	CodeCharacterEmptyName        = "CHARACTER_EMPTY_NAME"
	CodeCharacterEmptyChronicle   = "CHARACTER_EMPTY_CHRONICLE"
	CodeCharacterNotFound         = "CHARACTER_NOT_FOUND"
	CodeCombatantNotInEncounter   = "COMBATANT_NOT_IN_ENCOUNTER"
	CodeCombatantAlreadyJoined    = "COMBATANT_ALREADY_JOINED"
	CodeEncounterNotActive        = "ENCOUNTER_NOT_ACTIVE"
	CodeEncounterEnded            = "ENCOUNTER_ENDED"
	CodeEncounterExists           = "ENCOUNTER_EXISTS"
	CodeEncounterNotFound         = "ENCOUNTER_NOT_FOUND"
	CodeEncounterEmpty            = "ENCOUNTER_EMPTY"
	CodeWeaponNotFound            = "WEAPON_NOT_FOUND"
	CodeWeaponOutOfAmmo           = "WEAPON_OUT_OF_AMMO"
	CodeWeaponNotReloadable       = "WEAPON_NOT_RELOADABLE"
	CodeCombatSelfTarget          = "COMBAT_SELF_TARGET"
	CodeCombatInvalidDifficulty   = "COMBAT_INVALID_DIFFICULTY"
	CodeCombatUnknownRangeBand    = "COMBAT_UNKNOWN_RANGE_BAND"
	CodeCombatUnknownCoverLevel   = "COMBAT_UNKNOWN_COVER_LEVEL"
	CodeCombatUnknownTriggerKind  = "COMBAT_UNKNOWN_TRIGGER_KIND"
	CodePredatorArchetypeNotFound = "PREDATOR_ARCHETYPE_NOT_FOUND"
	CodeFeedingSourceInvalid      = "FEEDING_SOURCE_INVALID"
	CodeZoneNotFound              = "ZONE_NOT_FOUND"
	CodePressureKeyUnknown        = "PRESSURE_KEY_UNKNOWN"
	CodeThemeKeyUnknown           = "THEME_KEY_UNKNOWN"
	CodeDicePoolNegative          = "DICE_POOL_NEGATIVE"
	CodeNotFound                  = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	tag:    language.AmericanEnglish,
	messages: map[string]string{
		// Character errors
		CodeCharacterEmptyName:      "Character name cannot be empty",
		CodeCharacterEmptyChronicle: "Chronicle ID is required for character",
		CodeCharacterNotFound:       "Character {{.Name}} was not found",

		// Combat errors
		CodeCombatantNotInEncounter:  "{{.Name}} is not part of this encounter",
		CodeCombatantAlreadyJoined:   "{{.Name}} has already joined this encounter",
		CodeEncounterNotActive:       "The encounter has no initiative order yet",
		CodeEncounterEnded:           "The encounter has already ended",
		CodeEncounterExists:          "An encounter is already running in this context",
		CodeEncounterNotFound:        "No encounter is running in this context",
		CodeEncounterEmpty:           "The encounter has no combatants",
		CodeWeaponNotFound:           "Unknown weapon: {{.Weapon}}",
		CodeWeaponOutOfAmmo:          "{{.Weapon}} is out of ammunition",
		CodeWeaponNotReloadable:      "{{.Weapon}} cannot be reloaded",
		CodeCombatSelfTarget:         "A combatant cannot attack themselves",
		CodeCombatInvalidDifficulty:  "Attack difficulty must be at least 1",
		CodeCombatUnknownRangeBand:   "Unknown range band: {{.Range}}",
		CodeCombatUnknownCoverLevel:  "Unknown cover level: {{.Cover}}",
		CodeCombatUnknownTriggerKind: "Unknown frenzy trigger: {{.Trigger}}",

		// Hunting errors
		CodePredatorArchetypeNotFound: "Unknown predator archetype: {{.Archetype}}",
		CodeFeedingSourceInvalid:      "Invalid feeding source: {{.Source}}",

		// Zone/travel errors
		CodeZoneNotFound: "Unknown zone: {{.Zone}}",

		// Director errors
		CodePressureKeyUnknown: "Unknown pressure counter: {{.Key}}",
		CodeThemeKeyUnknown:    "Unknown theme: {{.Key}}",

		// Dice errors
		CodeDicePoolNegative: "Dice pool cannot be negative",

		// Storage errors
		CodeNotFound: "The requested record was not found",
	},
}
