package grants

import (
	"encoding/json"
	"sort"

	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/aws/aws-sdk-go/aws/endpoints"
	"github.com/ryotarai/sepconfig/fleet"
)

const (
	SpotEventPluginAdminPolicy = "AWSThinkboxDeadlineSpotEventPluginAdminPolicy"
	ResourceTrackerAdminPolicy = "AWSThinkboxDeadlineResourceTrackerAdminPolicy"
)

type Statement struct {
	Sid       string                       `json:"Sid,omitempty"`
	Effect    string                       `json:"Effect"`
	Action    []string                     `json:"Action"`
	Resource  []string                     `json:"Resource"`
	Condition map[string]map[string]string `json:"Condition,omitempty"`
}

// Set is what the principal applying the configuration must be granted.
type Set struct {
	Statements      []Statement
	ManagedPolicies []string
}

func (s Set) Len() int {
	return len(s.Statements) + len(s.ManagedPolicies)
}

type policyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// PolicyDocument renders the inline statements as an IAM policy document.
func (s Set) PolicyDocument() ([]byte, error) {
	stmts := s.Statements
	if stmts == nil {
		stmts = []Statement{}
	}
	return json.MarshalIndent(policyDocument{Version: "2012-10-17", Statement: stmts}, "", "  ")
}

// CertificateSource reports the CA certificate secret of a TLS endpoint.
type CertificateSource interface {
	CertificateInfo() (caCertificateARN string, ok bool)
}

type Resolver struct {
	// Partition defaults to "aws".
	Partition string
}

func (r *Resolver) partition() string {
	if r.Partition == "" {
		return endpoints.AwsPartitionID
	}
	return r.Partition
}

// Resolve returns an empty set when there are no fleets. Otherwise the admin
// policies are always included, whether or not the resource tracker is enabled.
func (r *Resolver) Resolve(fleets []*fleet.Definition, target CertificateSource) Set {
	if len(fleets) == 0 {
		return Set{}
	}

	roles := map[string]bool{}
	for _, f := range fleets {
		if f.FleetRoleARN != "" {
			roles[f.FleetRoleARN] = true
		}
		if f.InstanceRoleARN != "" {
			roles[f.InstanceRoleARN] = true
		}
	}
	roleARNs := make([]string, 0, len(roles))
	for a := range roles {
		roleARNs = append(roleARNs, a)
	}
	sort.Strings(roleARNs)

	set := Set{}
	if len(roleARNs) > 0 {
		set.Statements = append(set.Statements, Statement{
			Sid:      "PassFleetRoles",
			Effect:   "Allow",
			Action:   []string{"iam:PassRole"},
			Resource: roleARNs,
			Condition: map[string]map[string]string{
				"StringLike": {"iam:PassedToService": "ec2.amazonaws.com"},
			},
		})
	}

	set.Statements = append(set.Statements, Statement{
		Sid:      "TagSpotFleetRequests",
		Effect:   "Allow",
		Action:   []string{"ec2:CreateTags"},
		Resource: []string{r.spotFleetRequestARN()},
	})

	if target != nil {
		if ca, ok := target.CertificateInfo(); ok && ca != "" {
			set.Statements = append(set.Statements, Statement{
				Sid:      "ReadCACertificate",
				Effect:   "Allow",
				Action:   []string{"secretsmanager:GetSecretValue", "secretsmanager:DescribeSecret"},
				Resource: []string{ca},
			})
		}
	}

	set.ManagedPolicies = []string{
		r.managedPolicyARN(SpotEventPluginAdminPolicy),
		r.managedPolicyARN(ResourceTrackerAdminPolicy),
	}

	return set
}

func (r *Resolver) spotFleetRequestARN() string {
	return arn.ARN{
		Partition: r.partition(),
		Service:   "ec2",
		Region:    "*",
		AccountID: "*",
		Resource:  "spot-fleet-request/*",
	}.String()
}

func (r *Resolver) managedPolicyARN(name string) string {
	return arn.ARN{
		Partition: r.partition(),
		Service:   "iam",
		AccountID: "aws",
		Resource:  "policy/" + name,
	}.String()
}
