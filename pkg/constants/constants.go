package constants

import "time"

const (
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultPollInterval is how often the notification poller fetches new events.
	DefaultPollInterval = 30 * time.Second
	// DefaultPollSince is the look-back window of the notification poll.
	DefaultPollSince = "-168h"

	// ProductionEnvironment switches the client to always send a JSON body on
	// non-GET requests, which the edge cache in front of the API requires.
	ProductionEnvironment = "production"
)

// Header names.
const (
	HeaderContentType        = "Content-Type"
	HeaderAPIKey             = "X-API-KEY"
	HeaderBypassMaintenance  = "ft-bypass-myft-maintenance-mode"
	HeaderOriginSystemID     = "x-origin-system-id"
	HeaderUserUUID           = "ft-user-uuid"
	ContentTypeJSON          = "application/json"
	BypassMaintenanceEnabled = "true"
)

// Environment variables read by myft.ConfigFromEnv.
const (
	EnvAPIURL            = "MYFT_API_URL"
	EnvAPIKey            = "MYFT_API_KEY"
	EnvUserPrefsAPIKey   = "USER_PREFS_API_KEY"
	EnvEnvironment       = "MYFT_ENVIRONMENT"
	EnvBypassMaintenance = "BYPASS_MYFT_MAINTENANCE_MODE"
	EnvSystemCode        = "SYSTEM_CODE"
	EnvTimeout           = "MYFT_TIMEOUT"
)
