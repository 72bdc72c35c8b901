package configure

import (
	"fmt"
	"reflect"

	version "github.com/hashicorp/go-version"
	"github.com/ryotarai/sepconfig/endpoint"
	"github.com/ryotarai/sepconfig/fleet"
)

// MinimumEndpointVersion is the oldest scheduler release whose plugin
// configuration API is supported.
const MinimumEndpointVersion = "10.1.12.0"

// Validate checks the target and the fleets and returns the target as an
// Endpoint. It does not touch the registry.
func Validate(fleets []*fleet.Definition, target endpoint.Target, minimumVersion string) (endpoint.Endpoint, error) {
	ep, ok := target.(endpoint.Endpoint)
	if !ok || isNil(target) {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEndpointKind, target)
	}

	if err := checkVersion(ep.Version(), minimumVersion); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for i, f := range fleets {
		if f == nil {
			return nil, fmt.Errorf("%w: fleet #%d is nil", ErrInvalidFleet, i)
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFleet, err)
		}
		if seen[f.GroupName] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGroupName, f.GroupName)
		}
		seen[f.GroupName] = true
	}

	return ep, nil
}

func isNil(t endpoint.Target) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func checkVersion(actual, minimum string) error {
	if minimum == "" {
		minimum = MinimumEndpointVersion
	}
	required, err := version.NewVersion(minimum)
	if err != nil {
		return err
	}

	v, err := version.NewVersion(actual)
	if err != nil {
		return fmt.Errorf("%w: requires %s or later, got %q", ErrUnsupportedEndpointVersion, minimum, actual)
	}
	if v.LessThan(required) || (v.Prerelease() != "" && sameRelease(v, required)) {
		return fmt.Errorf("%w: requires %s or later, got %s", ErrUnsupportedEndpointVersion, minimum, actual)
	}
	return nil
}

// sameRelease compares the numeric segments only, padding the shorter
// version with zeros. A pre-release of the minimum sorts below it.
func sameRelease(a, b *version.Version) bool {
	as, bs := a.Segments64(), b.Segments64()
	for len(as) < len(bs) {
		as = append(as, 0)
	}
	for len(bs) < len(as) {
		bs = append(bs, 0)
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
