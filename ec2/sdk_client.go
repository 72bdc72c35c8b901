package ec2

import (
	"github.com/aws/aws-sdk-go/service/ec2"
)

//go:generate mockgen -source=sdk_client.go -destination=mock_sdk_client.go -package=ec2

type SDKClient interface {
	DescribeImages(*ec2.DescribeImagesInput) (*ec2.DescribeImagesOutput, error)
	DescribeSubnets(*ec2.DescribeSubnetsInput) (*ec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(*ec2.DescribeSecurityGroupsInput) (*ec2.DescribeSecurityGroupsOutput, error)
}
