package fleet

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/aws/aws-sdk-go/service/ec2"
	validator "gopkg.in/go-playground/validator.v9"
)

// Resource is any value referring to a cloud resource. Normalization probes it
// for the capability it needs (ImageIDer, SubnetIDer, SecurityGroupIDer).
type Resource interface{}

type ImageIDer interface {
	ImageID() string
}

type SubnetIDer interface {
	SubnetID() string
}

type SecurityGroupIDer interface {
	SecurityGroupID() string
}

// Image is a machine image with a known id.
type Image struct {
	ID string
}

func (i Image) ImageID() string { return i.ID }

type Subnet struct {
	ID string
}

func (s Subnet) SubnetID() string { return s.ID }

type SecurityGroup struct {
	ID string
}

func (g SecurityGroup) SecurityGroupID() string { return g.ID }

// Definition describes one worker fleet. It is never modified by this package.
type Definition struct {
	GroupName          string            `validate:"required"`
	InstanceTypes      []string          `validate:"required,min=1,dive,required"`
	Image              Resource          `validate:"required"`
	MaxCapacity        int64             `validate:"min=1"`
	AllocationStrategy string            `validate:"required,allocation_strategy"`
	BlockDevices       []BlockDevice     `validate:"dive"`
	ValidUntil         *time.Time        ``
	Tags               map[string]string `validate:"dive,keys,required,endkeys"`
	SecurityGroups     []Resource        `validate:"required,min=1"`
	Subnets            []Resource        `validate:"required,min=1"`
	FleetRoleARN       string            `validate:"required,arn"`
	InstanceRoleARN    string            `validate:"required,arn"`
	InstanceProfileARN string            `validate:"required,arn"`
	KeyName            string
	UserData           string
}

var allocationStrategies = map[string]bool{
	ec2.AllocationStrategyLowestPrice:                  true,
	ec2.AllocationStrategyDiversified:                  true,
	ec2.AllocationStrategyCapacityOptimized:            true,
	ec2.AllocationStrategyCapacityOptimizedPrioritized: true,
	ec2.AllocationStrategyPriceCapacityOptimized:       true,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("arn", func(fl validator.FieldLevel) bool {
		return arn.IsARN(fl.Field().String())
	})
	v.RegisterValidation("allocation_strategy", func(fl validator.FieldLevel) bool {
		return allocationStrategies[fl.Field().String()]
	})
	return v
}

// Validate checks field-level constraints of a single definition.
func (d *Definition) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("fleet %q: %s", d.GroupName, err)
	}
	return nil
}
