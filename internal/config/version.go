package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is the version of builds without release information.
const DevVersion = "dev"

// CheckVersion verifies that version satisfies the required_version
// constraint. Development builds and an empty constraint always pass.
func (c *Config) CheckVersion(version string) error {
	if c.RequiredVersion == "" || version == "" || version == DevVersion {
		return nil
	}

	constraint, err := semver.NewConstraint(c.RequiredVersion)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", KeyRequiredVersion, c.RequiredVersion, err)
	}
	v, err := ParseVersion(version)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("version %s does not satisfy %s %q", v, KeyRequiredVersion, c.RequiredVersion)
	}
	return nil
}

// ParseVersion strips a leading "v" and parses the version string.
func ParseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
