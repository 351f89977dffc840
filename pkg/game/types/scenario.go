package types

import "fmt"

// Scenario identifies an optional rule-extension module. ScenarioNone means
// the base game with no extension.
type Scenario int

const (
	ScenarioNone Scenario = iota
	ScenarioFog
	ScenarioFourIslands
	ScenarioTradeRoutes
	ScenarioCliffVillages
	ScenarioPirateIslands
	ScenarioWonders
	ScenarioForgottenTribe
)

var scenarioNames = map[Scenario]string{
	ScenarioNone:           "",
	ScenarioFog:            "SC_FOG",
	ScenarioFourIslands:    "SC_4ISL",
	ScenarioTradeRoutes:    "SC_TTD",
	ScenarioCliffVillages:  "SC_CLVI",
	ScenarioPirateIslands:  "SC_PIRI",
	ScenarioWonders:        "SC_WOND",
	ScenarioForgottenTribe: "SC_FTRI",
}

func (s Scenario) String() string {
	if name, ok := scenarioNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseScenario parses a scenario identifier. The empty string parses to
// ScenarioNone.
func ParseScenario(s string) (Scenario, error) {
	for scenario, name := range scenarioNames {
		if name == s {
			return scenario, nil
		}
	}
	return 0, fmt.Errorf("unknown scenario: %s", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scenario) MarshalText() ([]byte, error) {
	name, ok := scenarioNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid scenario: %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scenario) UnmarshalText(text []byte) error {
	parsed, err := ParseScenario(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
