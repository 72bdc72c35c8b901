package fleet

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
)

// Volume is one of *EBSVolume, EphemeralVolume or NoDevice.
type Volume interface {
	isVolume()
}

// EBSVolume leaves every unset field out of the emitted mapping.
type EBSVolume struct {
	SizeGiB             *int64
	VolumeType          string
	IOPS                *int64
	Throughput          *int64
	Encrypted           *bool
	DeleteOnTermination *bool
	SnapshotID          string
}

// EphemeralVolume is an instance store volume, emitted as "ephemeral<Index>".
type EphemeralVolume struct {
	Index int
}

type NoDevice struct{}

func (*EBSVolume) isVolume()      {}
func (EphemeralVolume) isVolume() {}
func (NoDevice) isVolume()        {}

type BlockDevice struct {
	DeviceName string `validate:"required"`
	Volume     Volume

	// MappingEnabled is deprecated. false is the same as Volume: NoDevice{}
	// and takes precedence over whatever Volume holds.
	MappingEnabled *bool
}

// resolve folds the deprecated MappingEnabled flag into the volume variant.
func (b BlockDevice) resolve() Volume {
	if b.MappingEnabled != nil && !*b.MappingEnabled {
		return NoDevice{}
	}
	return b.Volume
}

func normalizeBlockDevice(b BlockDevice) (BlockDeviceMapping, error) {
	m := BlockDeviceMapping{DeviceName: b.DeviceName}

	switch v := b.resolve().(type) {
	case NoDevice:
		m.NoDevice = aws.String("")
	case *NoDevice:
		m.NoDevice = aws.String("")
	case EphemeralVolume:
		m.VirtualName = fmt.Sprintf("ephemeral%d", v.Index)
	case *EphemeralVolume:
		m.VirtualName = fmt.Sprintf("ephemeral%d", v.Index)
	case *EBSVolume:
		if v == nil {
			return m, fmt.Errorf("%w: block device %s has a nil EBS volume", ErrUnsupportedResourceKind, b.DeviceName)
		}
		m.Ebs = &EBSBlockDevice{
			DeleteOnTermination: v.DeleteOnTermination,
			Encrypted:           v.Encrypted,
			Iops:                v.IOPS,
			SnapshotId:          v.SnapshotID,
			Throughput:          v.Throughput,
			VolumeSize:          v.SizeGiB,
			VolumeType:          v.VolumeType,
		}
	default:
		return m, fmt.Errorf("%w: block device %s volume %T", ErrUnsupportedResourceKind, b.DeviceName, v)
	}

	return m, nil
}
