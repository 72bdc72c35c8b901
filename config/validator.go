package config

import (
	"fmt"

	"gopkg.in/go-playground/validator.v9"
)

func Validate(c *Config) error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	for _, f := range c.Fleets {
		if err := validateImage(f.GroupName, f.Image); err != nil {
			return err
		}
		for _, r := range append(append([]ResourceRef{}, f.SecurityGroups...), f.Subnets...) {
			if (r.ID == "") == (len(r.Filters) == 0) {
				return fmt.Errorf("fleet %q: a subnet or security group needs exactly one of ID and Filters", f.GroupName)
			}
		}
		for _, b := range f.BlockDevices {
			if err := validateBlockDevice(f.GroupName, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateImage(group string, i ImageRef) error {
	n := 0
	if i.ID != "" {
		n++
	}
	if i.Command != nil {
		n++
	}
	if len(i.Filters) > 0 || len(i.Owners) > 0 {
		n++
	}
	if n != 1 {
		return fmt.Errorf("fleet %q: Image needs exactly one of ID, Command and Owners/Filters", group)
	}
	return nil
}

func validateBlockDevice(group string, b BlockDevice) error {
	n := 0
	if b.EBS != nil {
		n++
	}
	if b.EphemeralIndex != nil {
		n++
	}
	if b.NoDevice {
		n++
	}
	if n > 1 || (n == 0 && (b.MappingEnabled == nil || *b.MappingEnabled)) {
		return fmt.Errorf("fleet %q: block device %s needs exactly one of EBS, EphemeralIndex and NoDevice", group, b.DeviceName)
	}
	return nil
}
