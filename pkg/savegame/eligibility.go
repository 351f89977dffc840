package savegame

import "github.com/hexfieldgame/hexfield/pkg/game"

// CheckCanSave reports whether the live game is structurally eligible for
// snapshotting. It is pure: no I/O, no mutation. Save calls it before
// touching storage; hosts can also call it up front to grey out a save
// command.
//
// A game is denied while initial placement is in progress (its
// partially-committed setup choices have no snapshot representation) and
// when it uses a scenario the registry marks unsupported.
func CheckCanSave(ga *game.Game) error {
	if scenario := ga.Scenario(); !SupportsScenario(scenario) {
		return &DeniedError{
			Code:   CodeCannotSaveScenario,
			Params: map[string]string{"scenario": scenario.String()},
		}
	}
	if !ga.Phase().HasStartedNormalPlay() {
		return &DeniedError{
			Code:   CodeCannotSavePhase,
			Params: map[string]string{"phase": ga.Phase().String()},
		}
	}
	return nil
}
