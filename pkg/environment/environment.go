package environment

import "strings"

// Environment represents the active deployment profile.
type Environment string

const (
	// Development for local development.
	Development Environment = "development"
	// Staging for pre-production environments.
	Staging Environment = "staging"
	// Production for production deployments.
	Production Environment = "production"
)

// Parse normalizes a profile string into an Environment.
// Unknown values fall back to Production so that a misconfigured
// deployment never logs request bodies or unmasked credentials.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev", "local":
		return Development
	case "staging", "stage":
		return Staging
	default:
		return Production
	}
}

// IsProduction reports whether the environment is production.
func (e Environment) IsProduction() bool {
	return e == Production || e == "prod"
}

// IsDevelopment reports whether the environment is development.
func (e Environment) IsDevelopment() bool {
	return e == Development || e == "dev"
}

// IsStaging reports whether the environment is staging.
func (e Environment) IsStaging() bool {
	return e == Staging || e == "stage"
}
