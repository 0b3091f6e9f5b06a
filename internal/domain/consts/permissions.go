package consts

// Permissions for files and directories vidgrab might create.
const (
	PermsGenericDir = 0o755
	PermsLogFile    = 0o644

	// Sensitive files - owner only
	PermsHomeProgDir = 0o750
	PermsCookieFile  = 0o600
)
