package config

import "time"

// Application constants - centralized configuration values used across packages

// === Defaults ===

// Tool defaults, overridable through ~/.ccretro/config.json
const (
	// DefaultDaysToAnalyze is the default session age window
	DefaultDaysToAnalyze = 7

	// DefaultMaxTokensPerMessage bounds a single extracted message.
	// Converted to characters with CharsPerToken.
	DefaultMaxTokensPerMessage = 500

	// DefaultMaxMessagesPerSession keeps only the earliest N messages of a session
	DefaultMaxMessagesPerSession = 50

	// DefaultModel is the model alias passed to the claude CLI
	DefaultModel = "sonnet"

	// DefaultAPIModel is used by the API backend, which needs a full model ID
	DefaultAPIModel = "claude-sonnet-4-5"

	// DefaultClaudeBinary is the executable invoked by the CLI backend
	DefaultClaudeBinary = "claude"
)

// CharsPerToken is the token≈4 characters heuristic used for message budgets
const CharsPerToken = 4

// === Prompt Budgets ===

// Each truncation point is an independent limit; together they bound the
// size of the prompt regardless of how much history exists.
const (
	// MaxSessionsInPrompt is the number of most recent non-empty sessions included
	MaxSessionsInPrompt = 20

	// MaxPromptMessageChars is the display cap for one message in the prompt
	MaxPromptMessageChars = 300

	// MaxSettingsChars caps the indented settings.json dump
	MaxSettingsChars = 2000

	// MaxClaudeMDChars caps the embedded CLAUDE.md
	MaxClaudeMDChars = 1500

	// MaxAgentLoadChars is applied when an agent definition is read
	MaxAgentLoadChars = 1000

	// MaxCommandLoadChars is applied when a command definition is read
	MaxCommandLoadChars = 500

	// MaxAgentListingChars is applied in the rendered agent listing
	MaxAgentListingChars = 200

	// MaxCommandListingChars is applied in the rendered command listing
	MaxCommandListingChars = 150

	// MaxDescriptionChars caps a front matter description in the listings
	MaxDescriptionChars = 100

	// MaxHookEvents is the number of hook events listed; MaxHookEventChars
	// caps each entry
	MaxHookEvents     = 20
	MaxHookEventChars = 80

	// MaxFindings and MaxProposedChanges are requested from the model
	MaxFindings        = 5
	MaxProposedChanges = 3
)

// === Model Invocation ===

const (
	// ModelTimeout bounds the external model call
	ModelTimeout = 5 * time.Minute

	// CLIWaitDelay bounds how long the CLI backend waits for output pipes
	// to close after the process group was killed
	CLIWaitDelay = 2 * time.Second

	// MaxDiagnosticExcerpt is kept from stderr / API errors on failure
	MaxDiagnosticExcerpt = 500

	// MaxRawResponseExcerpt is kept from unparsable model output
	MaxRawResponseExcerpt = 1000

	// APIMaxOutputTokens is the output budget for the API backend
	APIMaxOutputTokens = 8192
)

// === File Processing ===

const (
	// MaxJSONLLineSize is the maximum size for a single JSONL line (10MB)
	// Default bufio.Scanner buffer is 64KB, but transcript lines with
	// thinking blocks and tool results can exceed 1MB
	MaxJSONLLineSize = 10 * 1024 * 1024

	// TranscriptScanBufferSize is the initial scanner buffer (256KB)
	TranscriptScanBufferSize = 256 * 1024
)

// === File Paths ===

// Directory and file names (relative to home or the tool directory)
const (
	// ToolDir is the ccretro home directory
	ToolDir = ".ccretro"

	// LogDirName is the log directory within the tool dir
	LogDirName = "logs"

	// LogFileName is the name of the log file
	LogFileName = "ccretro.log"

	// ConfigFileName is the tool config file name
	ConfigFileName = "config.json"

	// EnvFileName is loaded into the environment before config resolution
	EnvFileName = ".env"

	// RedactionConfigFileName holds user redaction patterns
	RedactionConfigFileName = "redaction.json"
)

// Claude Code directories
const (
	// ClaudeStateDir is the Claude Code state directory name
	ClaudeStateDir = ".claude"

	// ClaudeProjectsSubdir is the projects subdirectory within Claude state dir
	ClaudeProjectsSubdir = "projects"

	// ClaudeSettingsFile is the settings file name within Claude state dir
	ClaudeSettingsFile = "settings.json"

	// ClaudeMDFile is the primary instruction document
	ClaudeMDFile = "CLAUDE.md"

	// ClaudeAgentsSubdir holds agent definitions (*.md)
	ClaudeAgentsSubdir = "agents"

	// ClaudeCommandsSubdir holds slash command definitions (*.md)
	ClaudeCommandsSubdir = "commands"

	// AnalysisSubdir is the default report output directory
	AnalysisSubdir = "analysis"

	// LatestReportName is the fixed-name copy of the newest report
	LatestReportName = "latest.md"
)

// === Environment Variables ===

const (
	// ClaudeStateDirEnv overrides the default Claude state directory (~/.claude)
	ClaudeStateDirEnv = "CCRETRO_CLAUDE_DIR"

	// ConfigPathEnv overrides the tool config file path
	ConfigPathEnv = "CCRETRO_CONFIG_PATH"

	// LogDirEnv overrides the log directory
	LogDirEnv = "CCRETRO_LOG_DIR"

	// LogLevelEnv sets the minimum log level (DEBUG, INFO, WARN, ERROR)
	LogLevelEnv = "CCRETRO_LOG_LEVEL"

	// BackendEnv selects the model backend ("cli" or "api")
	BackendEnv = "CCRETRO_BACKEND"

	// APIKeyEnv is read by the API backend
	APIKeyEnv = "ANTHROPIC_API_KEY"
)
