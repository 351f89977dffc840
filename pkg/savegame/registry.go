package savegame

import "github.com/hexfieldgame/hexfield/pkg/game/types"

// The registry is a pair of lookup tables maintained by hand. Adding
// support for a new model version or scenario is a one-line change here
// plus whatever serialization the new fields need.

// supportedModelVersions lists every snapshot schema version this build
// can load. Versions not listed here are rejected outright.
var supportedModelVersions = map[int]bool{
	2300: true,
	2400: true,
	ModelVersion: true,
}

// unsupportedScenarios lists scenarios whose extra state the snapshot
// schema cannot represent yet. Games using them cannot be saved.
var unsupportedScenarios = map[types.Scenario]bool{
	types.ScenarioPirateIslands:  true,
	types.ScenarioForgottenTribe: true,
}

// SupportsModelVersion reports whether snapshots with the given schema
// version can be loaded by this build.
func SupportsModelVersion(version int) bool {
	return supportedModelVersions[version]
}

// SupportsScenario reports whether games using the given scenario can be
// snapshotted. The base game (ScenarioNone) is always supported.
func SupportsScenario(scenario types.Scenario) bool {
	return !unsupportedScenarios[scenario]
}
