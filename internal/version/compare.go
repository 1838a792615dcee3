package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckConfigCompatibility checks whether a configuration file written for
// configVersion can be loaded by an engine at engineVersion.
//
// Compatibility Rules:
//   - An empty config version means the file predates versioning and is accepted
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - The config minor version must not be newer than the engine minor version,
//     since newer configs may carry options this engine does not know
//   - Patch versions are ignored
//
// Examples:
//   - Engine 0.4.0, Config 0.4.2 -> OK (patch differs)
//   - Engine 0.4.0, Config 0.3.0 -> OK (older config)
//   - Engine 0.4.0, Config 0.5.0 -> ERROR (config newer than engine)
//   - Engine 1.0.0, Config 0.4.0 -> ERROR (major differs)
func CheckConfigCompatibility(engineVersion, configVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" {
		return nil
	}

	if engineVersion == "main" || configVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version '%s': %w", engineVersion, err)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return fmt.Errorf("invalid config version '%s': %w", configVersion, err)
	}

	if engineSemver.Major() != configSemver.Major() {
		return fmt.Errorf("major version mismatch: engine is %d.x.x but config requires %d.x.x",
			engineSemver.Major(), configSemver.Major())
	}

	if configSemver.Minor() > engineSemver.Minor() {
		return fmt.Errorf("config version %s is newer than engine %d.%d.x",
			configSemver.String(), engineSemver.Major(), engineSemver.Minor())
	}

	return nil
}
