package plugin

import "fmt"

// Enum values are parsed from their identifier (e.g. "GlobalEnabled") and
// written to the plugin with their wire string (e.g. "Global Enabled").

type InstanceStatus int

const (
	InstanceStatusDisabled InstanceStatus = iota
	InstanceStatusExtraInfo0
	InstanceStatusExtraInfo1
	InstanceStatusExtraInfo2
	InstanceStatusExtraInfo3
	InstanceStatusExtraInfo4
	InstanceStatusExtraInfo5
	InstanceStatusExtraInfo6
	InstanceStatusExtraInfo7
	InstanceStatusExtraInfo8
	InstanceStatusExtraInfo9
)

var instanceStatusWire = []string{
	"Disabled",
	"ExtraInfo0", "ExtraInfo1", "ExtraInfo2", "ExtraInfo3", "ExtraInfo4",
	"ExtraInfo5", "ExtraInfo6", "ExtraInfo7", "ExtraInfo8", "ExtraInfo9",
}

func (s InstanceStatus) Wire() string { return wireName(instanceStatusWire, int(s)) }

func (s *InstanceStatus) UnmarshalText(b []byte) error {
	i, err := parseIdentifier("instance status", instanceStatusWire, string(b))
	*s = InstanceStatus(i)
	return err
}

type LoggingLevel int

const (
	LoggingStandard LoggingLevel = iota
	LoggingVerbose
	LoggingDebug
)

var loggingIdentifiers = []string{"Standard", "Verbose", "Debug"}

func (l LoggingLevel) Wire() string { return wireName(loggingIdentifiers, int(l)) }

func (l *LoggingLevel) UnmarshalText(b []byte) error {
	i, err := parseIdentifier("logging level", loggingIdentifiers, string(b))
	*l = LoggingLevel(i)
	return err
}

type PreJobTaskMode int

const (
	PreJobTaskModeConservative PreJobTaskMode = iota
	PreJobTaskModeIgnore
	PreJobTaskModeNormal
)

var preJobTaskModeIdentifiers = []string{"Conservative", "Ignore", "Normal"}

func (m PreJobTaskMode) Wire() string { return wireName(preJobTaskModeIdentifiers, int(m)) }

func (m *PreJobTaskMode) UnmarshalText(b []byte) error {
	i, err := parseIdentifier("pre-job task mode", preJobTaskModeIdentifiers, string(b))
	*m = PreJobTaskMode(i)
	return err
}

type State int

const (
	StateGlobalEnabled State = iota
	StateGlobalDisabled
	StateDisabled
)

var (
	stateIdentifiers = []string{"GlobalEnabled", "GlobalDisabled", "Disabled"}
	// The plugin expects the two-word names for the global states.
	stateWire = []string{"Global Enabled", "Global Disabled", "Disabled"}
)

func (s State) Wire() string { return wireName(stateWire, int(s)) }

func (s *State) UnmarshalText(b []byte) error {
	i, err := parseIdentifier("plugin state", stateIdentifiers, string(b))
	*s = State(i)
	return err
}

// wireName falls back to the first name, which is each enum's default, for
// values outside the defined range.
func wireName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

func parseIdentifier(kind string, identifiers []string, s string) (int, error) {
	for i, id := range identifiers {
		if id == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q, must be one of %v", kind, s, identifiers)
}
