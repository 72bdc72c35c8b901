package endpoint

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ryotarai/sepconfig/grants"
)

type Protocol string

const (
	ProtocolHTTP  Protocol = "HTTP"
	ProtocolHTTPS Protocol = "HTTPS"
)

func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToUpper(s)); p {
	case ProtocolHTTP, ProtocolHTTPS:
		return p, nil
	}
	return "", fmt.Errorf("unknown protocol %q", s)
}

// ConnectionDescriptor tells the remote-apply executor how to reach the
// scheduler. CACertificateARN is set only for TLS with a private CA.
type ConnectionDescriptor struct {
	Hostname         string   `json:"hostname"`
	Port             int      `json:"port,string"`
	Protocol         Protocol `json:"protocol"`
	CACertificateARN string   `json:"caCertificateArn,omitempty"`
}

// Target is anything that names a scheduler endpoint.
type Target interface {
	TargetID() string
}

// Endpoint is the capability set a target needs before plugin configuration
// can be applied to it.
type Endpoint interface {
	Target
	grants.CertificateSource
	ConnectionInfo() ConnectionDescriptor
	Version() string
	GrantAccess(set grants.Set) error
}

// RenderQueue is the fully supported endpoint kind.
type RenderQueue struct {
	ID                string
	Hostname          string
	Port              int
	Protocol          Protocol
	CACertificateARN  string
	RepositoryVersion string

	mu      sync.Mutex
	granted []grants.Set
}

func (r *RenderQueue) TargetID() string { return r.ID }

func (r *RenderQueue) Version() string { return r.RepositoryVersion }

func (r *RenderQueue) CertificateInfo() (string, bool) {
	if r.Protocol != ProtocolHTTPS || r.CACertificateARN == "" {
		return "", false
	}
	return r.CACertificateARN, true
}

func (r *RenderQueue) ConnectionInfo() ConnectionDescriptor {
	c := ConnectionDescriptor{
		Hostname: r.Hostname,
		Port:     r.Port,
		Protocol: r.Protocol,
	}
	if ca, ok := r.CertificateInfo(); ok {
		c.CACertificateARN = ca
	}
	return c
}

// GrantAccess records the grants for the IAM wiring layer to attach to the
// render queue's role.
func (r *RenderQueue) GrantAccess(set grants.Set) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.granted = append(r.granted, set)
	return nil
}

func (r *RenderQueue) Granted() []grants.Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]grants.Set(nil), r.granted...)
}

// Static is a bare address. It cannot report certificates or accept grants,
// so it is rejected as a configuration target.
type Static struct {
	ID       string
	Hostname string
	Port     int
	Protocol Protocol
}

func (s *Static) TargetID() string { return s.ID }

func (s *Static) ConnectionInfo() ConnectionDescriptor {
	return ConnectionDescriptor{Hostname: s.Hostname, Port: s.Port, Protocol: s.Protocol}
}
