package dice

// bestialChaosTable holds the narrative complications attached to a
// bestial success. Entries are flavor only and never change numbers.
var bestialChaosTable = [10]string{
	"You snarl loudly, frightening bystanders. Masquerade risk increases.",
	"You overextend, knocking over furniture or objects nearby.",
	"You shove the target far harder than intended, changing positioning.",
	"You leave claw marks or dents on the environment.",
	"You roar or hiss involuntarily, supernatural menace leaking out.",
	"Your Beast drives a short frenzy-thought: attack the nearest threat.",
	"You cause collateral damage, cracking concrete or breaking glass.",
	"You grab and fling debris accidentally.",
	"Your predatory aura flares and nearby mortals panic.",
	"You lose subtle control, drawing blood unnecessarily.",
}

func rollBestialChaos(r Roller) string {
	return bestialChaosTable[r.D10()-1]
}
