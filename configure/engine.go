package configure

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ryotarai/sepconfig/endpoint"
	"github.com/ryotarai/sepconfig/fleet"
	"github.com/ryotarai/sepconfig/grants"
	"github.com/ryotarai/sepconfig/plugin"
	"github.com/sirupsen/logrus"
)

// CompiledConfiguration is the document handed to the remote-apply executor.
// FleetRequests is omitted from the payload when there are no fleets.
type CompiledConfiguration struct {
	Connection    endpoint.ConnectionDescriptor     `json:"connection"`
	Settings      plugin.Wire                       `json:"spotPluginConfigurations"`
	FleetRequests map[string]*fleet.RequestDocument `json:"spotFleetRequestConfigurations,omitempty"`
}

// Payload is deterministic: map keys are sorted by encoding/json.
func (c *CompiledConfiguration) Payload() ([]byte, error) {
	return json.Marshal(c)
}

func (c *CompiledConfiguration) Digest() (string, error) {
	b, err := c.Payload()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

type Options struct {
	Logger *logrus.Logger
	// Region is the default for the plugin's Region setting.
	Region string
	// Partition is used for ARNs in access grants. Defaults to "aws".
	Partition string
	// MinimumVersion defaults to MinimumEndpointVersion.
	MinimumVersion string
}

// Engine is the plugin configuration for one endpoint.
type Engine struct {
	endpoint endpoint.Endpoint
	compiled *CompiledConfiguration
	grants   grants.Set
}

// New validates and compiles the configuration for target and claims target
// in registry. Every failure is a *ConstructionError.
func New(registry *Registry, target endpoint.Target, fleets []*fleet.Definition, settings plugin.Settings, opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	id := "<unknown>"
	if !isNil(target) {
		id = target.TargetID()
	}
	fail := func(err error) (*Engine, error) {
		return nil, &ConstructionError{Target: id, Err: err}
	}

	ep, err := Validate(fleets, target, opts.MinimumVersion)
	if err != nil {
		return fail(err)
	}

	normalizer := &fleet.Normalizer{Logger: logger}
	var requests map[string]*fleet.RequestDocument
	for _, f := range fleets {
		doc, err := normalizer.Normalize(f)
		if err != nil {
			return fail(err)
		}
		if requests == nil {
			requests = map[string]*fleet.RequestDocument{}
		}
		requests[f.GroupName] = doc
	}

	compiler := &plugin.Compiler{DefaultRegion: opts.Region}
	compiled := &CompiledConfiguration{
		Connection:    ep.ConnectionInfo(),
		Settings:      compiler.Compile(settings),
		FleetRequests: requests,
	}

	resolver := &grants.Resolver{Partition: opts.Partition}
	set := resolver.Resolve(fleets, ep)

	if err := registry.Register(ep.TargetID()); err != nil {
		return fail(err)
	}

	if set.Len() > 0 {
		if err := ep.GrantAccess(set); err != nil {
			registry.Release(ep.TargetID())
			return fail(err)
		}
	}

	logger.Debugf("compiled configuration for %s with %d fleet(s)", id, len(requests))

	return &Engine{
		endpoint: ep,
		compiled: compiled,
		grants:   set,
	}, nil
}

func (e *Engine) Endpoint() endpoint.Endpoint {
	return e.endpoint
}

func (e *Engine) Configuration() *CompiledConfiguration {
	return e.compiled
}

func (e *Engine) Grants() grants.Set {
	return e.grants
}
