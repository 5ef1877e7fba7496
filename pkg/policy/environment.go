package policy

import "strings"

// Environment is the deployment environment a policy view is resolved for.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Environments returns the recognised environments.
func Environments() []Environment {
	return []Environment{Development, Staging, Production}
}

// ParseEnvironment accepts development, staging or production, ignoring case
// and surrounding whitespace. Anything else is an *UnknownEnvironmentError.
func ParseEnvironment(s string) (Environment, error) {
	name := Environment(strings.ToLower(strings.TrimSpace(s)))
	for _, env := range Environments() {
		if env == name {
			return env, nil
		}
	}
	return "", &UnknownEnvironmentError{Environment: s}
}

// OverlaySection returns the section that holds the overlay for env. The
// second return value is false for production, which has no overlay.
func (e Environment) OverlaySection() (SectionName, bool) {
	switch e {
	case Development:
		return SectionDevelopmentOverrides, true
	case Staging:
		return SectionStagingOverrides, true
	}
	return "", false
}

func (e Environment) String() string {
	return string(e)
}
