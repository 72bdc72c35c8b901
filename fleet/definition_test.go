package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, definitionForTest().Validate())

	cases := map[string]func(d *Definition){
		"empty group name":     func(d *Definition) { d.GroupName = "" },
		"zero capacity":        func(d *Definition) { d.MaxCapacity = 0 },
		"no instance types":    func(d *Definition) { d.InstanceTypes = nil },
		"unknown strategy":     func(d *Definition) { d.AllocationStrategy = "cheapest" },
		"fleet role not arn":   func(d *Definition) { d.FleetRoleARN = "FleetRole" },
		"no subnets":           func(d *Definition) { d.Subnets = nil },
		"unnamed block device": func(d *Definition) { d.BlockDevices = []BlockDevice{{Volume: NoDevice{}}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := definitionForTest()
			mutate(d)
			assert.Error(t, d.Validate())
		})
	}
}
