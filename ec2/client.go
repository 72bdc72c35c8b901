package ec2

import (
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/ryotarai/sepconfig/config"
	"github.com/ryotarai/sepconfig/fleet"
	"github.com/sirupsen/logrus"
)

// Client resolves image, subnet and security group filters from a
// deployment file into concrete resources.
type Client struct {
	ec2    SDKClient
	Logger *logrus.Logger
}

func NewClient(region string) (*Client, error) {
	cfg := aws.NewConfig()
	if region != "" {
		cfg = cfg.WithRegion(region)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		ec2:    ec2.New(sess),
		Logger: logrus.StandardLogger(),
	}, nil
}

// Region reports the region the session resolved.
func Region() string {
	sess, err := session.NewSession()
	if err != nil {
		return ""
	}
	return aws.StringValue(sess.Config.Region)
}

func sdkFilters(filters []config.EC2Filter) []*ec2.Filter {
	fs := []*ec2.Filter{}
	for _, f := range filters {
		fs = append(fs, &ec2.Filter{
			Name:   aws.String(f.Name),
			Values: aws.StringSlice(f.Values),
		})
	}
	return fs
}

// LatestImage returns the available image with the newest creation date.
func (c *Client) LatestImage(owners []string, filters []config.EC2Filter) (fleet.Image, error) {
	fs := append(sdkFilters(filters), &ec2.Filter{
		Name:   aws.String("state"),
		Values: aws.StringSlice([]string{ec2.ImageStateAvailable}),
	})
	input := &ec2.DescribeImagesInput{Filters: fs}
	if len(owners) > 0 {
		input.Owners = aws.StringSlice(owners)
	}

	resp, err := c.ec2.DescribeImages(input)
	if err != nil {
		return fleet.Image{}, err
	}
	if len(resp.Images) == 0 {
		return fleet.Image{}, fmt.Errorf("no image matches %v", filters)
	}

	images := resp.Images
	// CreationDate is ISO 8601 so it sorts as a string.
	sort.Slice(images, func(i, j int) bool {
		return aws.StringValue(images[i].CreationDate) > aws.StringValue(images[j].CreationDate)
	})

	id := aws.StringValue(images[0].ImageId)
	c.Logger.Debugf("resolved image %s (%s)", id, aws.StringValue(images[0].Name))
	return fleet.Image{ID: id}, nil
}

func (c *Client) Subnets(filters []config.EC2Filter) ([]fleet.Resource, error) {
	params := &ec2.DescribeSubnetsInput{Filters: sdkFilters(filters)}
	ret := []fleet.Resource{}

	for {
		resp, err := c.ec2.DescribeSubnets(params)
		if err != nil {
			return nil, err
		}
		for _, s := range resp.Subnets {
			ret = append(ret, fleet.Subnet{ID: aws.StringValue(s.SubnetId)})
		}
		if resp.NextToken == nil {
			break
		}
		params.NextToken = resp.NextToken
	}

	return ret, nil
}

func (c *Client) SecurityGroups(filters []config.EC2Filter) ([]fleet.Resource, error) {
	params := &ec2.DescribeSecurityGroupsInput{Filters: sdkFilters(filters)}
	ret := []fleet.Resource{}

	for {
		resp, err := c.ec2.DescribeSecurityGroups(params)
		if err != nil {
			return nil, err
		}
		for _, g := range resp.SecurityGroups {
			ret = append(ret, fleet.SecurityGroup{ID: aws.StringValue(g.GroupId)})
		}
		if resp.NextToken == nil {
			break
		}
		params.NextToken = resp.NextToken
	}

	return ret, nil
}
