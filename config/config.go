package config

import (
	"github.com/ryotarai/sepconfig/command"
	"github.com/ryotarai/sepconfig/plugin"
)

// Config is a deployment file: one scheduler endpoint, its plugin settings
// and the fleets it may launch.
type Config struct {
	LogLevel  string          `yaml:"LogLevel" validate:"omitempty,oneof=debug info warn warning error"`
	Region    string          `yaml:"Region"`
	Partition string          `yaml:"Partition"`
	APIAddr   string          `yaml:"APIAddr"`
	Endpoint  Endpoint        `yaml:"Endpoint"`
	Settings  plugin.Settings `yaml:"Settings"`
	Fleets    []*Fleet        `yaml:"Fleets" validate:"dive,required"`
	Executor  Executor        `yaml:"Executor"`
	Storage   Storage         `yaml:"Storage"`
}

type Endpoint struct {
	Kind             string `yaml:"Kind" validate:"required,oneof=RenderQueue Static"`
	ID               string `yaml:"ID" validate:"required"`
	Hostname         string `yaml:"Hostname" validate:"required"`
	Port             int    `yaml:"Port" validate:"min=1,max=65535"`
	Protocol         string `yaml:"Protocol" validate:"required"`
	CACertificateARN string `yaml:"CACertificateARN"`
	Version          string `yaml:"Version"`
}

type EC2Filter struct {
	Name   string   `yaml:"Name" validate:"required"`
	Values []string `yaml:"Values" validate:"required,min=1"`
}

// ResourceRef names a subnet or security group by ID, or by filters that
// are resolved against EC2 at load time.
type ResourceRef struct {
	ID      string      `yaml:"ID"`
	Filters []EC2Filter `yaml:"Filters" validate:"dive"`
}

// ImageRef is a fixed image ID, a command printing one, or the newest image
// matching Owners and Filters.
type ImageRef struct {
	ID      string           `yaml:"ID"`
	Command *command.Command `yaml:"Command"`
	Owners  []string         `yaml:"Owners"`
	Filters []EC2Filter      `yaml:"Filters" validate:"dive"`
}

type EBS struct {
	SizeGiB             *int64 `yaml:"SizeGiB" validate:"omitempty,min=1"`
	VolumeType          string `yaml:"VolumeType"`
	IOPS                *int64 `yaml:"IOPS"`
	Throughput          *int64 `yaml:"Throughput"`
	Encrypted           *bool  `yaml:"Encrypted"`
	DeleteOnTermination *bool  `yaml:"DeleteOnTermination"`
	SnapshotID          string `yaml:"SnapshotID"`
}

type BlockDevice struct {
	DeviceName     string `yaml:"DeviceName" validate:"required"`
	EBS            *EBS   `yaml:"EBS"`
	EphemeralIndex *int   `yaml:"EphemeralIndex" validate:"omitempty,min=0"`
	NoDevice       bool   `yaml:"NoDevice"`
	MappingEnabled *bool  `yaml:"MappingEnabled"`
}

type Fleet struct {
	GroupName          string            `yaml:"GroupName" validate:"required"`
	InstanceTypes      []string          `yaml:"InstanceTypes" validate:"required"`
	Image              ImageRef          `yaml:"Image"`
	MaxCapacity        int64             `yaml:"MaxCapacity" validate:"min=1"`
	AllocationStrategy string            `yaml:"AllocationStrategy"`
	BlockDevices       []BlockDevice     `yaml:"BlockDevices" validate:"dive"`
	ValidUntil         string            `yaml:"ValidUntil"`
	Tags               map[string]string `yaml:"Tags"`
	SecurityGroups     []ResourceRef     `yaml:"SecurityGroups" validate:"required,dive"`
	Subnets            []ResourceRef     `yaml:"Subnets" validate:"required,dive"`
	FleetRoleARN       string            `yaml:"FleetRoleARN" validate:"required"`
	InstanceRoleARN    string            `yaml:"InstanceRoleARN" validate:"required"`
	InstanceProfileARN string            `yaml:"InstanceProfileARN" validate:"required"`
	KeyName            string            `yaml:"KeyName"`
	UserData           string            `yaml:"UserData"`
}

type Executor struct {
	ApplyCommand  *command.Command `yaml:"ApplyCommand"`
	RemoveCommand *command.Command `yaml:"RemoveCommand"`
}

// Storage selects where apply records are kept. Records live in memory when
// RedisURL is empty.
type Storage struct {
	RedisURL       string `yaml:"RedisURL"`
	RedisKeyPrefix string `yaml:"RedisKeyPrefix"`
}

func NewConfig() *Config {
	return &Config{
		LogLevel:  "info",
		Partition: "aws",
		Storage: Storage{
			RedisKeyPrefix: "sepconfig/",
		},
	}
}
