package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Environment errors: fatal to a run, surfaced immediately
	ErrAuthUnavailable = fmt.Errorf("session credential not found")
	ErrMissingAPIKey   = fmt.Errorf("page configuration missing API key")
	ErrWrongPage       = fmt.Errorf("wrong page context")

	// Collection errors
	ErrNoItemsFound = fmt.Errorf("no videos found")

	// Backup and mutation errors
	ErrPlaylistCreateFailed = fmt.Errorf("playlist creation failed")
	ErrBackupIncomplete     = fmt.Errorf("backup incomplete")

	// Restore input errors
	ErrUnsupportedFormat = fmt.Errorf("unsupported backup format")
	ErrEmptyVideoList    = fmt.Errorf("empty video list")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
