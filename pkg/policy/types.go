package policy

// SecurityHeaders maps an HTTP response header name to its literal value.
type SecurityHeaders map[string]string

// Clone returns a copy of h.
func (h SecurityHeaders) Clone() SecurityHeaders {
	return cloneStringMap(h)
}

// RateLimit is a fixed window limiter definition.
type RateLimit struct {
	Window string `yaml:"window" json:"window"`
	Max    int    `yaml:"max" json:"max"`
}

// RateLimits maps a limiter name (api, auth, upload) to its limit.
type RateLimits map[string]RateLimit

// Clone returns a copy of r.
func (r RateLimits) Clone() RateLimits {
	if r == nil {
		return nil
	}
	out := make(RateLimits, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// PasswordRules is the nested password entry of the validation rules.
type PasswordRules struct {
	MinLength        int  `yaml:"min_length" json:"min_length"`
	RequireUppercase bool `yaml:"require_uppercase" json:"require_uppercase"`
	RequireLowercase bool `yaml:"require_lowercase" json:"require_lowercase"`
	RequireNumbers   bool `yaml:"require_numbers" json:"require_numbers"`
	RequireSpecial   bool `yaml:"require_special" json:"require_special"`
}

// ValidationRules holds input validation patterns keyed by field name and
// the password rule object.
type ValidationRules struct {
	Patterns map[string]string `yaml:"patterns" json:"patterns"`
	Password PasswordRules     `yaml:"password" json:"password"`
}

// Clone returns a deep copy of v.
func (v ValidationRules) Clone() ValidationRules {
	v.Patterns = cloneStringMap(v.Patterns)
	return v
}

// ImageProcessing describes how uploaded images are normalised.
type ImageProcessing struct {
	MaxWidth  int    `yaml:"max_width" json:"max_width"`
	MaxHeight int    `yaml:"max_height" json:"max_height"`
	Quality   int    `yaml:"quality" json:"quality"`
	Format    string `yaml:"format" json:"format"`
}

// UploadRestrictions limits file uploads.
type UploadRestrictions struct {
	MaxFileSize       string          `yaml:"max_file_size" json:"max_file_size"`
	AllowedTypes      []string        `yaml:"allowed_types" json:"allowed_types"`
	MaxFilesPerUpload int             `yaml:"max_files_per_upload" json:"max_files_per_upload"`
	VirusScan         bool            `yaml:"virus_scan" json:"virus_scan"`
	ImageProcessing   ImageProcessing `yaml:"image_processing" json:"image_processing"`
}

// Clone returns a deep copy of u.
func (u UploadRestrictions) Clone() UploadRestrictions {
	u.AllowedTypes = cloneStrings(u.AllowedTypes)
	return u
}

// AllowsType reports whether mime is in the allowed type set.
func (u UploadRestrictions) AllowsType(mime string) bool {
	return contains(u.AllowedTypes, mime)
}

// JWTSettings configures token issuance.
type JWTSettings struct {
	Algorithm     string `yaml:"algorithm" json:"algorithm"`
	Expiry        string `yaml:"expiry" json:"expiry"`
	RefreshExpiry string `yaml:"refresh_expiry" json:"refresh_expiry"`
	Issuer        string `yaml:"issuer" json:"issuer"`
	Audience      string `yaml:"audience" json:"audience"`
}

// SessionSettings configures the session cookie. MaxAge is in seconds.
type SessionSettings struct {
	Secure   bool   `yaml:"secure" json:"secure"`
	HTTPOnly bool   `yaml:"http_only" json:"http_only"`
	SameSite string `yaml:"same_site" json:"same_site"`
	MaxAge   int    `yaml:"max_age" json:"max_age"`
}

// PasswordPolicy configures login lockout.
type PasswordPolicy struct {
	MinLength       int    `yaml:"min_length" json:"min_length"`
	MaxAttempts     int    `yaml:"max_attempts" json:"max_attempts"`
	LockoutDuration string `yaml:"lockout_duration" json:"lockout_duration"`
	Require2FA      bool   `yaml:"require_2fa" json:"require_2fa"`
}

// OTPSettings configures one-time passwords.
type OTPSettings struct {
	Length      int    `yaml:"length" json:"length"`
	Expiry      string `yaml:"expiry" json:"expiry"`
	MaxAttempts int    `yaml:"max_attempts" json:"max_attempts"`
	ResendLimit int    `yaml:"resend_limit" json:"resend_limit"`
}

// AuthSecurity groups the per-mechanism authentication settings.
type AuthSecurity struct {
	JWT            JWTSettings     `yaml:"jwt" json:"jwt"`
	Session        SessionSettings `yaml:"session" json:"session"`
	PasswordPolicy PasswordPolicy  `yaml:"password_policy" json:"password_policy"`
	OTP            OTPSettings     `yaml:"otp" json:"otp"`
}

// Clone returns a copy of a. AuthSecurity holds no reference types.
func (a AuthSecurity) Clone() AuthSecurity {
	return a
}

// CORSSettings is the cross-origin allow-list.
type CORSSettings struct {
	Origins     []string `yaml:"origins" json:"origins"`
	Methods     []string `yaml:"methods" json:"methods"`
	Headers     []string `yaml:"headers" json:"headers"`
	Credentials bool     `yaml:"credentials" json:"credentials"`
}

// AllowsOrigin reports whether origin exactly matches an allow-listed origin.
func (c CORSSettings) AllowsOrigin(origin string) bool {
	return contains(c.Origins, origin)
}

// CSRFSettings configures double-submit CSRF protection.
type CSRFSettings struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	HeaderName string `yaml:"header_name" json:"header_name"`
	CookieName string `yaml:"cookie_name" json:"cookie_name"`
}

// APIKeySettings configures API key authentication.
type APIKeySettings struct {
	HeaderName string    `yaml:"header_name" json:"header_name"`
	RateLimit  RateLimit `yaml:"rate_limit" json:"rate_limit"`
}

// APISecurity groups CORS, CSRF and API key settings.
type APISecurity struct {
	CORS    CORSSettings   `yaml:"cors" json:"cors"`
	CSRF    CSRFSettings   `yaml:"csrf" json:"csrf"`
	APIKeys APIKeySettings `yaml:"api_keys" json:"api_keys"`
}

// Clone returns a deep copy of a.
func (a APISecurity) Clone() APISecurity {
	a.CORS.Origins = cloneStrings(a.CORS.Origins)
	a.CORS.Methods = cloneStrings(a.CORS.Methods)
	a.CORS.Headers = cloneStrings(a.CORS.Headers)
	return a
}

// EncryptionSettings describes data-at-rest encryption.
type EncryptionSettings struct {
	Algorithm   string `yaml:"algorithm" json:"algorithm"`
	KeyRotation string `yaml:"key_rotation" json:"key_rotation"`
}

// GDPRCompliance toggles data subject rights.
type GDPRCompliance struct {
	RightToBeForgotten bool `yaml:"right_to_be_forgotten" json:"right_to_be_forgotten"`
	DataPortability    bool `yaml:"data_portability" json:"data_portability"`
	ConsentManagement  bool `yaml:"consent_management" json:"consent_management"`
}

// DataProtection groups encryption, PII and retention settings.
type DataProtection struct {
	Encryption     EncryptionSettings `yaml:"encryption" json:"encryption"`
	PIIFields      []string           `yaml:"pii_fields" json:"pii_fields"`
	DataRetention  map[string]string  `yaml:"data_retention" json:"data_retention"`
	GDPRCompliance GDPRCompliance     `yaml:"gdpr_compliance" json:"gdpr_compliance"`
}

// Clone returns a deep copy of d.
func (d DataProtection) Clone() DataProtection {
	d.PIIFields = cloneStrings(d.PIIFields)
	d.DataRetention = cloneStringMap(d.DataRetention)
	return d
}

// IsPII reports whether field is listed as personally identifiable.
func (d DataProtection) IsPII(field string) bool {
	return contains(d.PIIFields, field)
}

// SecurityMonitoring configures alerting and audit logging.
type SecurityMonitoring struct {
	FailedLoginThreshold         int      `yaml:"failed_login_threshold" json:"failed_login_threshold"`
	SuspiciousActivityIndicators []string `yaml:"suspicious_activity_indicators" json:"suspicious_activity_indicators"`
	AlertChannels                []string `yaml:"alert_channels" json:"alert_channels"`
	LogRetention                 string   `yaml:"log_retention" json:"log_retention"`
	AuditLogEvents               []string `yaml:"audit_log_events" json:"audit_log_events"`
}

// Clone returns a deep copy of m.
func (m SecurityMonitoring) Clone() SecurityMonitoring {
	m.SuspiciousActivityIndicators = cloneStrings(m.SuspiciousActivityIndicators)
	m.AlertChannels = cloneStrings(m.AlertChannels)
	m.AuditLogEvents = cloneStrings(m.AuditLogEvents)
	return m
}

// Audits reports whether event is in the audit event set.
func (m SecurityMonitoring) Audits(event string) bool {
	return contains(m.AuditLogEvents, event)
}

// PaymentGatewaySecurity holds payment gateway integration flags.
type PaymentGatewaySecurity struct {
	WebhookVerification bool   `yaml:"webhook_verification" json:"webhook_verification"`
	Encryption          string `yaml:"encryption" json:"encryption"`
	PCICompliance       bool   `yaml:"pci_compliance" json:"pci_compliance"`
}

// AIServicesSecurity holds AI provider integration flags.
type AIServicesSecurity struct {
	DataSharing         string `yaml:"data_sharing" json:"data_sharing"`
	EncryptionInTransit bool   `yaml:"encryption_in_transit" json:"encryption_in_transit"`
	NoPersonalData      bool   `yaml:"no_personal_data" json:"no_personal_data"`
}

// AnalyticsSecurity holds analytics integration flags.
type AnalyticsSecurity struct {
	Anonymization bool `yaml:"anonymization" json:"anonymization"`
	IPMasking     bool `yaml:"ip_masking" json:"ip_masking"`
	GDPRCompliant bool `yaml:"gdpr_compliant" json:"gdpr_compliant"`
}

// ThirdPartySecurity groups per-integration flags.
type ThirdPartySecurity struct {
	PaymentGateway PaymentGatewaySecurity `yaml:"payment_gateway" json:"payment_gateway"`
	AIServices     AIServicesSecurity     `yaml:"ai_services" json:"ai_services"`
	Analytics      AnalyticsSecurity      `yaml:"analytics" json:"analytics"`
}

// Clone returns a copy of t. ThirdPartySecurity holds no reference types.
func (t ThirdPartySecurity) Clone() ThirdPartySecurity {
	return t
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
