package policy

// Baseline returns a freshly built copy of the literal security policy.
// Every call returns independent containers.
func Baseline() *Policy {
	return &Policy{
		CSP: CSP{
			"default-src": {"'self'"},
			"script-src": {
				"'self'",
				"'unsafe-inline'", // Vite in development
				"'unsafe-eval'",   // development tools
				"https://www.googletagmanager.com",
				"https://www.google-analytics.com",
				"https://api.vendorly.in",
				"https://generativelanguage.googleapis.com",
			},
			"style-src": {
				"'self'",
				"'unsafe-inline'", // Tailwind
				"https://fonts.googleapis.com",
			},
			"img-src": {
				"'self'",
				"data:",
				"blob:",
				"https://api.vendorly.in",
				"https://res.cloudinary.com",
				"https://images.unsplash.com",
				"https://via.placeholder.com",
			},
			"font-src": {
				"'self'",
				"https://fonts.gstatic.com",
				"data:",
			},
			"connect-src": {
				"'self'",
				"https://api.vendorly.in",
				"https://generativelanguage.googleapis.com",
				"https://api.razorpay.com",
				"https://checkout.razorpay.com",
				"https://www.google-analytics.com",
				"https://sentry.io",
				"wss://api.vendorly.in",
			},
			"media-src":                 {"'self'", "blob:", "data:"},
			"object-src":                {"'none'"},
			"base-uri":                  {"'self'"},
			"form-action":               {"'self'"},
			"frame-ancestors":           {"'none'"},
			"upgrade-insecure-requests": {},
		},

		SecurityHeaders: SecurityHeaders{
			"X-Frame-Options":              "DENY",
			"X-Content-Type-Options":       "nosniff",
			"X-XSS-Protection":             "1; mode=block",
			"Referrer-Policy":              "strict-origin-when-cross-origin",
			"Permissions-Policy":           "camera=(), microphone=(), geolocation=(self), payment=(self)",
			"Strict-Transport-Security":    "max-age=31536000; includeSubDomains; preload",
			"Cross-Origin-Resource-Policy": "same-origin",
			"Cross-Origin-Embedder-Policy": "require-corp",
			"Cross-Origin-Opener-Policy":   "same-origin",
		},

		Overlays: map[Environment]Overlay{
			Development: {
				CSP: CSP{
					"script-src": {
						"'self'",
						"'unsafe-inline'",
						"'unsafe-eval'",
						"http://localhost:*",
						"ws://localhost:*",
						"https://www.googletagmanager.com",
					},
					"connect-src": {
						"'self'",
						"http://localhost:*",
						"ws://localhost:*",
						"https://api.vendorly.in",
						"https://generativelanguage.googleapis.com",
					},
				},
			},
			Staging: {
				SecurityHeaders: SecurityHeaders{
					// Shorter HSTS lifetime while staging certificates churn.
					"Strict-Transport-Security": "max-age=86400; includeSubDomains",
				},
			},
		},

		RateLimits: RateLimits{
			"api":    {Window: "15min", Max: 100},
			"auth":   {Window: "15min", Max: 5},
			"upload": {Window: "1hour", Max: 20},
		},

		ValidationRules: ValidationRules{
			Patterns: map[string]string{
				"email":         `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`,
				"phone":         `^[6-9]\d{9}$`, // Indian mobile numbers
				"business_name": `^[a-zA-Z0-9\s\-\.]{2,50}$`,
				"product_name":  `^[a-zA-Z0-9\s\-\.\/]{2,100}$`,
			},
			Password: PasswordRules{
				MinLength:        8,
				RequireUppercase: true,
				RequireLowercase: true,
				RequireNumbers:   true,
				RequireSpecial:   false,
			},
		},

		UploadRestrictions: UploadRestrictions{
			MaxFileSize: "5MB",
			AllowedTypes: []string{
				"image/jpeg",
				"image/png",
				"image/webp",
				"image/svg+xml",
			},
			MaxFilesPerUpload: 5,
			VirusScan:         true,
			ImageProcessing: ImageProcessing{
				MaxWidth:  2048,
				MaxHeight: 2048,
				Quality:   85,
				Format:    "webp",
			},
		},

		AuthSecurity: AuthSecurity{
			JWT: JWTSettings{
				Algorithm:     "RS256",
				Expiry:        "24h",
				RefreshExpiry: "7d",
				Issuer:        "vendorly.in",
				Audience:      "vendorly-app",
			},
			Session: SessionSettings{
				Secure:   true,
				HTTPOnly: true,
				SameSite: "strict",
				MaxAge:   86400,
			},
			PasswordPolicy: PasswordPolicy{
				MinLength:       8,
				MaxAttempts:     5,
				LockoutDuration: "15min",
				Require2FA:      false,
			},
			OTP: OTPSettings{
				Length:      6,
				Expiry:      "10min",
				MaxAttempts: 3,
				ResendLimit: 3,
			},
		},

		APISecurity: APISecurity{
			CORS: CORSSettings{
				Origins: []string{
					"https://vendorly.in",
					"https://www.vendorly.in",
					"https://staging.vendorly.in",
				},
				Methods: []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
				Headers: []string{
					"Content-Type",
					"Authorization",
					"X-Requested-With",
					"X-CSRF-Token",
				},
				Credentials: true,
			},
			CSRF: CSRFSettings{
				Enabled:    true,
				HeaderName: "X-CSRF-Token",
				CookieName: "csrf_token",
			},
			APIKeys: APIKeySettings{
				HeaderName: "X-API-Key",
				RateLimit:  RateLimit{Window: "1hour", Max: 1000},
			},
		},

		DataProtection: DataProtection{
			Encryption: EncryptionSettings{
				Algorithm:   "AES-256-GCM",
				KeyRotation: "90days",
			},
			PIIFields: []string{
				"email",
				"phone",
				"address",
				"full_name",
				"bank_details",
			},
			DataRetention: map[string]string{
				"user_data":        "3years",
				"transaction_data": "7years",
				"logs":             "90days",
				"analytics":        "2years",
			},
			GDPRCompliance: GDPRCompliance{
				RightToBeForgotten: true,
				DataPortability:    true,
				ConsentManagement:  true,
			},
		},

		SecurityMonitoring: SecurityMonitoring{
			FailedLoginThreshold: 10,
			SuspiciousActivityIndicators: []string{
				"multiple_failed_logins",
				"unusual_location",
				"large_order_values",
				"rapid_api_calls",
			},
			AlertChannels: []string{"email", "slack", "sentry"},
			LogRetention:  "90days",
			AuditLogEvents: []string{
				"login",
				"logout",
				"password_change",
				"profile_update",
				"payment_transaction",
				"admin_action",
			},
		},

		ThirdPartySecurity: ThirdPartySecurity{
			PaymentGateway: PaymentGatewaySecurity{
				WebhookVerification: true,
				Encryption:          "TLS 1.2+",
				PCICompliance:       true,
			},
			AIServices: AIServicesSecurity{
				DataSharing:         "minimal",
				EncryptionInTransit: true,
				NoPersonalData:      true,
			},
			Analytics: AnalyticsSecurity{
				Anonymization: true,
				IPMasking:     true,
				GDPRCompliant: true,
			},
		},
	}
}
