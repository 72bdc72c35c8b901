package ec2

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/golang/mock/gomock"
	"github.com/ryotarai/sepconfig/config"
	"github.com/ryotarai/sepconfig/fleet"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sdk := NewMockSDKClient(ctrl)

	sdk.EXPECT().DescribeImages(&ec2.DescribeImagesInput{
		Owners: aws.StringSlice([]string{"self"}),
		Filters: []*ec2.Filter{
			{Name: aws.String("name"), Values: aws.StringSlice([]string{"render-node-*"})},
			{Name: aws.String("state"), Values: aws.StringSlice([]string{"available"})},
		},
	}).Return(&ec2.DescribeImagesOutput{
		Images: []*ec2.Image{
			{ImageId: aws.String("ami-old"), CreationDate: aws.String("2024-01-01T00:00:00.000Z")},
			{ImageId: aws.String("ami-new"), CreationDate: aws.String("2024-06-01T00:00:00.000Z")},
			{ImageId: aws.String("ami-mid"), CreationDate: aws.String("2024-03-01T00:00:00.000Z")},
		},
	}, nil)

	c := &Client{ec2: sdk, Logger: logrus.New()}
	image, err := c.LatestImage([]string{"self"}, []config.EC2Filter{
		{Name: "name", Values: []string{"render-node-*"}},
	})
	require.NoError(t, err)
	assert.Equal(t, fleet.Image{ID: "ami-new"}, image)
}

func TestLatestImageNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sdk := NewMockSDKClient(ctrl)

	sdk.EXPECT().DescribeImages(gomock.Any()).Return(&ec2.DescribeImagesOutput{}, nil)

	c := &Client{ec2: sdk, Logger: logrus.New()}
	_, err := c.LatestImage(nil, nil)
	assert.Error(t, err)
}

func TestSubnetsPaginates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sdk := NewMockSDKClient(ctrl)

	filters := []*ec2.Filter{{Name: aws.String("tag:Tier"), Values: aws.StringSlice([]string{"render"})}}
	gomock.InOrder(
		sdk.EXPECT().DescribeSubnets(&ec2.DescribeSubnetsInput{Filters: filters}).Return(&ec2.DescribeSubnetsOutput{
			Subnets:   []*ec2.Subnet{{SubnetId: aws.String("subnet-a")}},
			NextToken: aws.String("next"),
		}, nil),
		sdk.EXPECT().DescribeSubnets(&ec2.DescribeSubnetsInput{Filters: filters, NextToken: aws.String("next")}).Return(&ec2.DescribeSubnetsOutput{
			Subnets: []*ec2.Subnet{{SubnetId: aws.String("subnet-b")}},
		}, nil),
	)

	c := &Client{ec2: sdk}
	subnets, err := c.Subnets([]config.EC2Filter{{Name: "tag:Tier", Values: []string{"render"}}})
	require.NoError(t, err)
	assert.Equal(t, []fleet.Resource{fleet.Subnet{ID: "subnet-a"}, fleet.Subnet{ID: "subnet-b"}}, subnets)
}

func TestSecurityGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sdk := NewMockSDKClient(ctrl)

	sdk.EXPECT().DescribeSecurityGroups(gomock.Any()).Return(&ec2.DescribeSecurityGroupsOutput{
		SecurityGroups: []*ec2.SecurityGroup{{GroupId: aws.String("sg-1")}, {GroupId: aws.String("sg-2")}},
	}, nil)

	c := &Client{ec2: sdk}
	groups, err := c.SecurityGroups(nil)
	require.NoError(t, err)
	assert.Equal(t, []fleet.Resource{fleet.SecurityGroup{ID: "sg-1"}, fleet.SecurityGroup{ID: "sg-2"}}, groups)
}

func TestSecurityGroupsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sdk := NewMockSDKClient(ctrl)

	sdk.EXPECT().DescribeSecurityGroups(gomock.Any()).Return(nil, errors.New("UnauthorizedOperation"))

	c := &Client{ec2: sdk}
	_, err := c.SecurityGroups(nil)
	assert.EqualError(t, err, "UnauthorizedOperation")
}

var _ config.Resolver = &Client{}
