package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

const (
	// DefaultListenAddr is where `painpoint serve` listens when unset.
	DefaultListenAddr = "127.0.0.1:8080"
	// ConfigDirName is the directory under $HOME holding config.yaml.
	ConfigDirName = ".painpoint"
	// ConfigFileName is the config file inside ConfigDirName.
	ConfigFileName = "config.yaml"
)

// User-facing validation messages.
const (
	MsgMissingCredential = "API Key not found in environment."
	MsgMissingTarget     = "Please provide a company name or URL."
)
