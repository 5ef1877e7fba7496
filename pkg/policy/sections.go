package policy

// SectionName identifies one named configuration section.
type SectionName string

const (
	SectionCSP                  SectionName = "csp_policy"
	SectionSecurityHeaders      SectionName = "security_headers"
	SectionDevelopmentOverrides SectionName = "development_overrides"
	SectionStagingOverrides     SectionName = "staging_overrides"
	SectionRateLimits           SectionName = "rate_limits"
	SectionValidationRules      SectionName = "validation_rules"
	SectionUploadRestrictions   SectionName = "upload_restrictions"
	SectionAuthSecurity         SectionName = "auth_security"
	SectionAPISecurity          SectionName = "api_security"
	SectionDataProtection       SectionName = "data_protection"
	SectionSecurityMonitoring   SectionName = "security_monitoring"
	SectionThirdPartySecurity   SectionName = "third_party_security"
)

var sectionNames = []SectionName{
	SectionCSP,
	SectionSecurityHeaders,
	SectionDevelopmentOverrides,
	SectionStagingOverrides,
	SectionRateLimits,
	SectionValidationRules,
	SectionUploadRestrictions,
	SectionAuthSecurity,
	SectionAPISecurity,
	SectionDataProtection,
	SectionSecurityMonitoring,
	SectionThirdPartySecurity,
}

// SectionNames returns every section identifier in declaration order.
// The returned slice is a fresh copy.
func SectionNames() []SectionName {
	out := make([]SectionName, len(sectionNames))
	copy(out, sectionNames)
	return out
}

// ParseSectionName maps a string onto a known section identifier.
func ParseSectionName(name string) (SectionName, error) {
	for _, s := range sectionNames {
		if string(s) == name {
			return s, nil
		}
	}
	return "", &UnknownSectionError{Name: name}
}

func (s SectionName) String() string {
	return string(s)
}
