package plugin

import "time"

// Settings holds the caller's plugin options. Nil fields take the default.
type Settings struct {
	AWSInstanceStatus               *InstanceStatus `yaml:"AWSInstanceStatus"`
	DeleteInterruptedWorkers        *bool           `yaml:"DeleteInterruptedWorkers"`
	DeleteTerminatedWorkers         *bool           `yaml:"DeleteTerminatedWorkers"`
	IdleShutdown                    *time.Duration  `yaml:"IdleShutdown"`
	LoggingLevel                    *LoggingLevel   `yaml:"LoggingLevel"`
	PreJobTaskMode                  *PreJobTaskMode `yaml:"PreJobTaskMode"`
	Region                          *string         `yaml:"Region"`
	EnableResourceTracker           *bool           `yaml:"EnableResourceTracker"`
	MaximumInstancesStartedPerCycle *int            `yaml:"MaximumInstancesStartedPerCycle" validate:"omitempty,min=1"`
	State                           *State          `yaml:"State"`
	StrictHardCap                   *bool           `yaml:"StrictHardCap"`
}

// Wire is the settings object in the form the plugin stores it.
type Wire struct {
	AWSInstanceStatus       string `json:"AWSInstanceStatus"`
	DeleteInterruptedSlaves bool   `json:"DeleteInterruptedSlaves"`
	DeleteTerminatedSlaves  bool   `json:"DeleteTerminatedSlaves"`
	IdleShutdown            int64  `json:"IdleShutdown"`
	Logging                 string `json:"Logging"`
	PreJobTaskMode          string `json:"PreJobTaskMode"`
	Region                  string `json:"Region"`
	ResourceTracker         bool   `json:"ResourceTracker"`
	StaggerInstances        int    `json:"StaggerInstances"`
	State                   string `json:"State"`
	StrictHardCap           bool   `json:"StrictHardCap"`
}

const (
	DefaultIdleShutdown                    = 10 * time.Minute
	DefaultMaximumInstancesStartedPerCycle = 50
)

// Compiler merges caller settings over the defaults. Region falls back to
// DefaultRegion, normally the region the deployment runs in.
type Compiler struct {
	DefaultRegion string
}

func (c *Compiler) Defaults() Wire {
	return Wire{
		AWSInstanceStatus:       InstanceStatusDisabled.Wire(),
		DeleteInterruptedSlaves: false,
		DeleteTerminatedSlaves:  false,
		IdleShutdown:            int64(DefaultIdleShutdown / time.Minute),
		Logging:                 LoggingStandard.Wire(),
		PreJobTaskMode:          PreJobTaskModeConservative.Wire(),
		Region:                  c.DefaultRegion,
		ResourceTracker:         true,
		StaggerInstances:        DefaultMaximumInstancesStartedPerCycle,
		State:                   StateGlobalEnabled.Wire(),
		StrictHardCap:           false,
	}
}

// Compile never fails. IdleShutdown is truncated to whole minutes.
func (c *Compiler) Compile(s Settings) Wire {
	w := c.Defaults()

	if s.AWSInstanceStatus != nil {
		w.AWSInstanceStatus = s.AWSInstanceStatus.Wire()
	}
	if s.DeleteInterruptedWorkers != nil {
		w.DeleteInterruptedSlaves = *s.DeleteInterruptedWorkers
	}
	if s.DeleteTerminatedWorkers != nil {
		w.DeleteTerminatedSlaves = *s.DeleteTerminatedWorkers
	}
	if s.IdleShutdown != nil {
		w.IdleShutdown = int64(*s.IdleShutdown / time.Minute)
	}
	if s.LoggingLevel != nil {
		w.Logging = s.LoggingLevel.Wire()
	}
	if s.PreJobTaskMode != nil {
		w.PreJobTaskMode = s.PreJobTaskMode.Wire()
	}
	if s.Region != nil {
		w.Region = *s.Region
	}
	if s.EnableResourceTracker != nil {
		w.ResourceTracker = *s.EnableResourceTracker
	}
	if s.MaximumInstancesStartedPerCycle != nil {
		w.StaggerInstances = *s.MaximumInstancesStartedPerCycle
	}
	if s.State != nil {
		w.State = s.State.Wire()
	}
	if s.StrictHardCap != nil {
		w.StrictHardCap = *s.StrictHardCap
	}

	return w
}
