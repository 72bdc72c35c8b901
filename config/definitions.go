package config

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/ryotarai/sepconfig/endpoint"
	"github.com/ryotarai/sepconfig/fleet"
)

// Resolver looks up cloud resources referred to by filters.
type Resolver interface {
	LatestImage(owners []string, filters []EC2Filter) (fleet.Image, error)
	Subnets(filters []EC2Filter) ([]fleet.Resource, error)
	SecurityGroups(filters []EC2Filter) ([]fleet.Resource, error)
}

// Target builds the endpoint the file describes.
func (c *Config) Target() (endpoint.Target, error) {
	p, err := endpoint.ParseProtocol(c.Endpoint.Protocol)
	if err != nil {
		return nil, err
	}

	switch c.Endpoint.Kind {
	case "RenderQueue":
		return &endpoint.RenderQueue{
			ID:                c.Endpoint.ID,
			Hostname:          c.Endpoint.Hostname,
			Port:              c.Endpoint.Port,
			Protocol:          p,
			CACertificateARN:  c.Endpoint.CACertificateARN,
			RepositoryVersion: c.Endpoint.Version,
		}, nil
	case "Static":
		return &endpoint.Static{
			ID:       c.Endpoint.ID,
			Hostname: c.Endpoint.Hostname,
			Port:     c.Endpoint.Port,
			Protocol: p,
		}, nil
	}
	return nil, fmt.Errorf("unknown endpoint kind %q", c.Endpoint.Kind)
}

// Definitions resolves every fleet. r is only called for references given
// as filters and may be nil when there are none.
func (c *Config) Definitions(ctx context.Context, r Resolver) ([]*fleet.Definition, error) {
	defs := make([]*fleet.Definition, 0, len(c.Fleets))
	for _, f := range c.Fleets {
		d, err := f.definition(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("fleet %q: %s", f.GroupName, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func (f *Fleet) definition(ctx context.Context, r Resolver) (*fleet.Definition, error) {
	d := &fleet.Definition{
		GroupName:          f.GroupName,
		InstanceTypes:      f.InstanceTypes,
		MaxCapacity:        f.MaxCapacity,
		AllocationStrategy: f.AllocationStrategy,
		Tags:               f.Tags,
		FleetRoleARN:       f.FleetRoleARN,
		InstanceRoleARN:    f.InstanceRoleARN,
		InstanceProfileARN: f.InstanceProfileARN,
		KeyName:            f.KeyName,
		UserData:           f.UserData,
	}
	if d.AllocationStrategy == "" {
		d.AllocationStrategy = ec2.AllocationStrategyLowestPrice
	}

	if f.ValidUntil != "" {
		t, err := time.Parse(time.RFC3339, f.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("ValidUntil: %s", err)
		}
		d.ValidUntil = &t
	}

	image, err := f.Image.resolve(ctx, r)
	if err != nil {
		return nil, err
	}
	d.Image = image

	d.SecurityGroups, err = resolveRefs(f.SecurityGroups, func(id string) fleet.Resource {
		return fleet.SecurityGroup{ID: id}
	}, r, func(r Resolver, fs []EC2Filter) ([]fleet.Resource, error) {
		return r.SecurityGroups(fs)
	})
	if err != nil {
		return nil, fmt.Errorf("SecurityGroups: %s", err)
	}

	d.Subnets, err = resolveRefs(f.Subnets, func(id string) fleet.Resource {
		return fleet.Subnet{ID: id}
	}, r, func(r Resolver, fs []EC2Filter) ([]fleet.Resource, error) {
		return r.Subnets(fs)
	})
	if err != nil {
		return nil, fmt.Errorf("Subnets: %s", err)
	}

	for _, b := range f.BlockDevices {
		d.BlockDevices = append(d.BlockDevices, b.blockDevice())
	}

	return d, nil
}

func (i ImageRef) resolve(ctx context.Context, r Resolver) (fleet.Image, error) {
	switch {
	case i.ID != "":
		return fleet.Image{ID: i.ID}, nil
	case i.Command != nil:
		id, err := i.Command.GetString(ctx)
		if err != nil {
			return fleet.Image{}, fmt.Errorf("image command: %s", err)
		}
		if id == "" {
			return fleet.Image{}, fmt.Errorf("image command %s printed nothing", i.Command)
		}
		return fleet.Image{ID: id}, nil
	}
	if r == nil {
		return fleet.Image{}, fmt.Errorf("image filters given but no resolver")
	}
	return r.LatestImage(i.Owners, i.Filters)
}

func resolveRefs(refs []ResourceRef, byID func(string) fleet.Resource, r Resolver, lookup func(Resolver, []EC2Filter) ([]fleet.Resource, error)) ([]fleet.Resource, error) {
	out := []fleet.Resource{}
	for _, ref := range refs {
		if ref.ID != "" {
			out = append(out, byID(ref.ID))
			continue
		}
		if r == nil {
			return nil, fmt.Errorf("filters given but no resolver")
		}
		found, err := lookup(r, ref.Filters)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no match for %v", ref.Filters)
		}
		out = append(out, found...)
	}
	return out, nil
}

func (b BlockDevice) blockDevice() fleet.BlockDevice {
	d := fleet.BlockDevice{
		DeviceName:     b.DeviceName,
		MappingEnabled: b.MappingEnabled,
	}
	switch {
	case b.EBS != nil:
		d.Volume = &fleet.EBSVolume{
			SizeGiB:             b.EBS.SizeGiB,
			VolumeType:          b.EBS.VolumeType,
			IOPS:                b.EBS.IOPS,
			Throughput:          b.EBS.Throughput,
			Encrypted:           b.EBS.Encrypted,
			DeleteOnTermination: b.EBS.DeleteOnTermination,
			SnapshotID:          b.EBS.SnapshotID,
		}
	case b.EphemeralIndex != nil:
		d.Volume = fleet.EphemeralVolume{Index: *b.EphemeralIndex}
	case b.NoDevice:
		d.Volume = fleet.NoDevice{}
	}
	return d
}

// NeedsResolver reports whether any fleet refers to resources by filter.
func (c *Config) NeedsResolver() bool {
	for _, f := range c.Fleets {
		if f.Image.ID == "" && f.Image.Command == nil {
			return true
		}
		for _, r := range append(append([]ResourceRef{}, f.SecurityGroups...), f.Subnets...) {
			if r.ID == "" {
				return true
			}
		}
	}
	return false
}
