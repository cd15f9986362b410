package redactor

// DefaultPatterns returns high-precision patterns for credentials that
// commonly end up pasted into coding sessions
func DefaultPatterns() []Pattern {
	return []Pattern{
		// Model providers
		{Name: "Anthropic API Key", Pattern: `sk-ant-(?:api|admin)\d{2}-[A-Za-z0-9_-]{80,}`, Type: "api_key"},
		{Name: "OpenAI API Key", Pattern: `sk-(?:proj-)?[A-Za-z0-9]{48}`, Type: "api_key"},

		// Cloud
		{Name: "AWS Access Key", Pattern: `(?:AKIA|ASIA)[0-9A-Z]{16}`, Type: "aws_key"},
		{Name: "AWS Secret Key", Pattern: `aws_secret_access_key\s*[=:]\s*"?([A-Za-z0-9/+=]{40})`, Type: "aws_secret", CaptureGroup: 1},
		{Name: "Google API Key", Pattern: `AIza[0-9A-Za-z_-]{35}`, Type: "google_api_key"},

		// Source hosting and package registries
		{Name: "GitHub Token", Pattern: `gh[pousr]_[A-Za-z0-9]{36}`, Type: "github_token"},
		{Name: "GitHub Fine-grained Token", Pattern: `github_pat_[A-Za-z0-9_]{82}`, Type: "github_token"},
		{Name: "npm Access Token", Pattern: `npm_[A-Za-z0-9]{36}`, Type: "npm_token"},
		{Name: "PyPI Token", Pattern: `pypi-AgEIcHlwaS5vcmc[A-Za-z0-9_-]{70,}`, Type: "pypi_token"},

		// SaaS
		{Name: "Slack Token", Pattern: `xox[baprs]-[0-9a-zA-Z-]{10,72}`, Type: "slack_token"},
		{Name: "Stripe Live Key", Pattern: `[sr]k_live_[0-9a-zA-Z]{24,}`, Type: "stripe_key"},
		{Name: "SendGrid API Key", Pattern: `SG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}`, Type: "sendgrid_key"},

		// Generic
		{Name: "JWT", Pattern: `eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`, Type: "jwt"},
		{Name: "Private Key Block", Pattern: `-----BEGIN (?:RSA |EC |OPENSSH |DSA )?PRIVATE KEY-----`, Type: "private_key"},
		{Name: "Bearer Token", Pattern: `(?i)(authorization:\s*bearer\s+)([A-Za-z0-9._~+/-]{20,}=*)`, Type: "bearer_token", CaptureGroup: 2},
		{Name: "URL Password", Pattern: `([a-z][a-z0-9+.-]*://[^:/@\s]+:)([^@\s]+)(@)`, Type: "password", CaptureGroup: 2},
	}
}

// DefaultConfig returns the configuration used when no redaction.json exists
func DefaultConfig() Config {
	return Config{Patterns: DefaultPatterns()}
}
