// Package errors provides structured domain errors with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Character errors
	CodeCharacterEmptyName      Code = "CHARACTER_EMPTY_NAME"
	CodeCharacterEmptyChronicle Code = "CHARACTER_EMPTY_CHRONICLE"
	CodeCharacterNotFound       Code = "CHARACTER_NOT_FOUND"

	// Combat errors
	CodeCombatantNotInEncounter  Code = "COMBATANT_NOT_IN_ENCOUNTER"
	CodeCombatantAlreadyJoined   Code = "COMBATANT_ALREADY_JOINED"
	CodeEncounterNotActive       Code = "ENCOUNTER_NOT_ACTIVE"
	CodeEncounterEnded           Code = "ENCOUNTER_ENDED"
	CodeEncounterExists          Code = "ENCOUNTER_EXISTS"
	CodeEncounterNotFound        Code = "ENCOUNTER_NOT_FOUND"
	CodeEncounterEmpty           Code = "ENCOUNTER_EMPTY"
	CodeWeaponNotFound           Code = "WEAPON_NOT_FOUND"
	CodeWeaponOutOfAmmo          Code = "WEAPON_OUT_OF_AMMO"
	CodeWeaponNotReloadable      Code = "WEAPON_NOT_RELOADABLE"
	CodeCombatSelfTarget         Code = "COMBAT_SELF_TARGET"
	CodeCombatInvalidDifficulty  Code = "COMBAT_INVALID_DIFFICULTY"
	CodeCombatUnknownRangeBand   Code = "COMBAT_UNKNOWN_RANGE_BAND"
	CodeCombatUnknownCoverLevel  Code = "COMBAT_UNKNOWN_COVER_LEVEL"
	CodeCombatUnknownTriggerKind Code = "COMBAT_UNKNOWN_TRIGGER_KIND"

	// Hunting errors
	CodePredatorArchetypeNotFound Code = "PREDATOR_ARCHETYPE_NOT_FOUND"
	CodeFeedingSourceInvalid      Code = "FEEDING_SOURCE_INVALID"

	// Zone/travel errors
	CodeZoneNotFound Code = "ZONE_NOT_FOUND"

	// Director errors
	CodePressureKeyUnknown Code = "PRESSURE_KEY_UNKNOWN"
	CodeThemeKeyUnknown    Code = "THEME_KEY_UNKNOWN"

	// Dice errors
	CodeDicePoolNegative Code = "DICE_POOL_NEGATIVE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeCharacterNotFound, CodeEncounterNotFound, CodeCombatantNotInEncounter,
		CodeWeaponNotFound, CodePredatorArchetypeNotFound, CodeZoneNotFound,
		CodeNotFound:
		return codes.NotFound
	case CodeEncounterExists, CodeCombatantAlreadyJoined:
		return codes.AlreadyExists
	case CodeEncounterNotActive, CodeEncounterEnded, CodeEncounterEmpty,
		CodeWeaponOutOfAmmo:
		return codes.FailedPrecondition
	case CodeCharacterEmptyName, CodeCharacterEmptyChronicle,
		CodeWeaponNotReloadable, CodeCombatSelfTarget, CodeCombatInvalidDifficulty,
		CodeCombatUnknownRangeBand, CodeCombatUnknownCoverLevel,
		CodeCombatUnknownTriggerKind, CodeFeedingSourceInvalid,
		CodePressureKeyUnknown, CodeThemeKeyUnknown, CodeDicePoolNegative:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}
