package fleet

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/ryotarai/sepconfig/version"
	"github.com/sirupsen/logrus"
)

var ErrUnsupportedResourceKind = errors.New("unsupported resource kind")

// IdentifyingTagKey is added to every tag specification group a fleet emits.
const IdentifyingTagKey = "aws-rfdk"

// ValidUntilFormat matches the millisecond UTC form the plugin stores.
const ValidUntilFormat = "2006-01-02T15:04:05.000Z"

func IdentifyingTag() Tag {
	return Tag{Key: IdentifyingTagKey, Value: fmt.Sprintf("%s:SpotEventPluginFleet", version.Version)}
}

type Normalizer struct {
	Logger *logrus.Logger
}

func (n *Normalizer) logger() *logrus.Logger {
	if n.Logger == nil {
		return logrus.StandardLogger()
	}
	return n.Logger
}

// Normalize compiles a definition into its request document. Equal definitions
// always produce equal documents regardless of map iteration order.
func (n *Normalizer) Normalize(d *Definition) (*RequestDocument, error) {
	imager, ok := d.Image.(ImageIDer)
	if !ok {
		return nil, fmt.Errorf("%w: fleet %q image %T", ErrUnsupportedResourceKind, d.GroupName, d.Image)
	}

	subnetIDs := []string{}
	for _, s := range d.Subnets {
		r, ok := s.(SubnetIDer)
		if !ok {
			return nil, fmt.Errorf("%w: fleet %q subnet %T", ErrUnsupportedResourceKind, d.GroupName, s)
		}
		subnetIDs = append(subnetIDs, r.SubnetID())
	}

	groups := []GroupIdentifier{}
	for _, g := range d.SecurityGroups {
		r, ok := g.(SecurityGroupIDer)
		if !ok {
			return nil, fmt.Errorf("%w: fleet %q security group %T", ErrUnsupportedResourceKind, d.GroupName, g)
		}
		groups = append(groups, GroupIdentifier{GroupId: r.SecurityGroupID()})
	}

	var bdms []BlockDeviceMapping
	for _, b := range d.BlockDevices {
		m, err := normalizeBlockDevice(b)
		if err != nil {
			return nil, fmt.Errorf("fleet %q: %w", d.GroupName, err)
		}
		bdms = append(bdms, m)
	}

	if len(d.InstanceTypes) == 0 {
		return nil, fmt.Errorf("fleet %q has no instance types", d.GroupName)
	}
	if len(d.InstanceTypes) > 1 {
		n.logger().Warnf("fleet %q: only the first instance type %s is emitted, ignoring %v",
			d.GroupName, d.InstanceTypes[0], d.InstanceTypes[1:])
	}

	spec := LaunchSpecification{
		BlockDeviceMappings: bdms,
		IamInstanceProfile:  IamInstanceProfile{Arn: d.InstanceProfileARN},
		ImageId:             imager.ImageID(),
		InstanceType:        d.InstanceTypes[0],
		KeyName:             d.KeyName,
		SecurityGroups:      groups,
		SubnetId:            strings.Join(subnetIDs, ","),
		TagSpecifications:   tagSpecifications(ec2.ResourceTypeInstance, d.Tags),
	}
	if d.UserData != "" {
		spec.UserData = base64.StdEncoding.EncodeToString([]byte(d.UserData))
	}

	doc := &RequestDocument{
		AllocationStrategy:               d.AllocationStrategy,
		IamFleetRole:                     d.FleetRoleARN,
		LaunchSpecifications:             []LaunchSpecification{spec},
		ReplaceUnhealthyInstances:        true,
		TargetCapacity:                   d.MaxCapacity,
		TerminateInstancesWithExpiration: true,
		Type:                             ec2.FleetTypeMaintain,
		TagSpecifications:                tagSpecifications(ec2.ResourceTypeSpotFleetRequest, d.Tags),
	}
	if d.ValidUntil != nil {
		doc.ValidUntil = d.ValidUntil.In(time.UTC).Format(ValidUntilFormat)
	}

	return doc, nil
}

// tagSpecifications returns nil for an untagged fleet so the key is omitted.
func tagSpecifications(resourceType string, tags map[string]string) []TagSpecification {
	if len(tags) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		if k == IdentifyingTagKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ts := make([]Tag, 0, len(keys)+1)
	for _, k := range keys {
		ts = append(ts, Tag{Key: k, Value: tags[k]})
	}
	ts = append(ts, IdentifyingTag())

	return []TagSpecification{{ResourceType: resourceType, Tags: ts}}
}
