package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go MultiTime"
	AppID             = "com.github.tartampluch.go-multitime"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagPrint        = "print"
	FlagDescPrint    = "Print the clocks for a comma-separated list of IANA zones and exit"
	ListSeparator    = ","
	MsgVersionOutput = "%s version %s (%s/%s) commit %s built %s\n"
)

// -----------------------------------------------------------------------------
// Preferences
// -----------------------------------------------------------------------------

const (
	PrefUse24Hour     = "use_24_hour"
	PrefShowSeconds   = "show_seconds"
	PrefShowFlags     = "show_flags"
	PrefShowDayDiff   = "show_day_diff"
	PrefStackClocks   = "stack_clocks"
	PrefTimezoneItems = "timezone_items"
	PrefFeedEnabled   = "feed_enabled"
	PrefFeedPort      = "feed_port"
	PrefLastRun       = "last_run_version"
)

// Display defaults, applied when a preference has never been written.
const (
	DefaultUse24Hour   = false
	DefaultShowSeconds = true
	DefaultShowFlags   = true
	DefaultShowDayDiff = false
	DefaultStackClocks = false
	DefaultFeedEnabled = false
	DefaultFeedPort    = "18081"
)

// -----------------------------------------------------------------------------
// Timezone List
// -----------------------------------------------------------------------------

const (
	// DefaultTimezoneID seeds the list so that it is never empty.
	DefaultTimezoneID = "America/New_York"

	// MaxPrefixLength caps a custom prefix, counted in runes.
	MaxPrefixLength = 15

	// SuggestionLimit caps the autocomplete results shown in the settings window.
	SuggestionLimit = 8

	// TimezoneSeparator splits an IANA identifier into region and city.
	TimezoneSeparator = "/"
)

// -----------------------------------------------------------------------------
// Time Formats
// -----------------------------------------------------------------------------

const (
	Layout24Hour        = "15:04"
	Layout24HourSeconds = "15:04:05"
	Layout12Hour        = "3:04 PM"
	Layout12HourSeconds = "3:04:05 PM"

	// MeridiemSeparator splits "3:04 PM" into its clock and AM/PM tokens.
	MeridiemSeparator = " "

	// DayDiffWrapThreshold marks a raw day-of-month delta as a month wrap.
	DayDiffWrapThreshold = 15

	FormatDayDiffPositive = " (+%dd)"
	FormatDayDiffNegative = " (%dd)"
)

// -----------------------------------------------------------------------------
// Layout & Spacing
// -----------------------------------------------------------------------------

const (
	CellSeparator   = "  "     // Between cells of a flat row
	ColumnSeparator = "      " // Between columns of a stacked grid
	RowSeparator    = "\n"
	FlagPlaceholder = "   " // Keeps alignment when a zone has no flag
	TokenSeparator  = " "

	// StackedRows is the fixed row count of the stacked layout.
	StackedRows = 2

	// MinStackedCells is the smallest cell count that switches to the stacked layout.
	MinStackedCells = 2
)

// -----------------------------------------------------------------------------
// Scheduler
// -----------------------------------------------------------------------------

const (
	IntervalSeconds = 1 * time.Second
	IntervalMinutes = 60 * time.Second

	// TimerTolerance is the slack allowed around a wall-clock deadline.
	TimerTolerance = 1 * time.Millisecond
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 520
	SettingsListHeight  = 220
	ClocksWindowWidth   = 360
	ClocksWindowHeight  = 120
	AboutWindowWidth    = 320
	AboutWindowHeight   = 160
	PrefixEntryWidth    = 90
	AboutIconSize       = 64
	PlaceholderCity     = "Tokyo"
	PlaceholderPrefix   = "TKY"

	FormatBuildInfo = "%s (%s) %s/%s"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinSettings     = "win_settings_title"
	TKeyWinClocks       = "win_clocks_title"
	TKeyWinAbout        = "win_about_title"
	TKeyMenuShowClocks  = "menu_show_clocks"
	TKeyMenuSettings    = "menu_settings"
	TKeyMenuAbout       = "menu_about"
	TKeyTrayEmpty       = "tray_empty"
	TKeyLblDisplay      = "lbl_display"
	TKeyLblUse24Hour    = "lbl_use_24_hour"
	TKeyLblShowSeconds  = "lbl_show_seconds"
	TKeyLblShowFlags    = "lbl_show_flags"
	TKeyLblShowDayDiff  = "lbl_show_day_diff"
	TKeyLblStackClocks  = "lbl_stack_clocks"
	TKeyLblAddTimezone  = "lbl_add_timezone"
	TKeyBtnAddClock     = "btn_add_clock"
	TKeyLblTimezones    = "lbl_timezones" // Requires Count
	TKeyLblPrefix       = "lbl_prefix"
	TKeyBtnEdit         = "btn_edit"
	TKeyLblFeed         = "lbl_feed"
	TKeyLblEnableFeed   = "lbl_enable_feed"
	TKeyLblPort         = "lbl_feed_port"
	TKeyHelpPort        = "help_feed_port"
	TKeyBtnClose        = "btn_close"
	TKeyLblFooter       = "lbl_footer"
	TKeyLblAboutText    = "lbl_about_text"
	TKeyErrUnknownCity  = "err_unknown_city"
	TKeyErrLastTimezone = "err_last_timezone"
	TKeyErrPortReq      = "err_port_required"
	TKeyErrPortNum      = "err_port_number"
	TKeyErrPortRange    = "err_port_range"
)

// DefaultLanguage is the only catalog shipped; the display engine is fixed to English.
const DefaultLanguage = "en"

// -----------------------------------------------------------------------------
// Limits
// -----------------------------------------------------------------------------

const (
	MinPort       = 1
	MaxPort       = 65535
	MaxPortDigits = 5
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "1"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	RouteJSON          = "/json"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlNoCache = "no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrUnknownTimezone  = "unknown timezone"
	ErrEmptyTimezone    = "empty timezone identifier"
	ErrScheduleCompute  = "schedule boundary computation failed"
	ErrUnknownMode      = "unknown schedule mode"
	ErrBoundaryRange    = "boundary outside interval"
	ErrTimezoneLoad     = "failed to decode timezone list"
	ErrTimezoneSave     = "failed to encode timezone list"
	ErrEntryNotFound    = "timezone entry not found"
	ErrLastEntry        = "cannot remove the last timezone entry"
	ErrMoveRange        = "move index out of range"
	ErrCatalogLoad      = "failed to load city catalog"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrEncodeResp       = "failed to encode response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrAlreadyRunning   = "engine already started"
	ErrPrefixTooLong    = "prefix must be at most %d characters"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Display initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel = "Go MultiTime"
	FallbackTimezones = "Timezones (%d)"

	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgAppStarting     = "Starting application"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgEngineStart     = "Display engine started"
	MsgEngineStop      = "Display engine stopped"
	MsgSettingsChanged = "Display settings changed"
	MsgEntriesChanged  = "Timezone list changed"
	MsgFormatChanged   = "Time format changed, rebuilding formatters"
	MsgSkippedEntry    = "Skipping entry with unknown timezone"
	MsgComposed        = "Display composed"
	MsgScheduleArmed   = "Refresh schedule armed"
	MsgScheduleCancel  = "Refresh schedule cancelled"
	MsgScheduleDegrade = "Boundary computation failed, using fixed interval"
	MsgScheduleSkip    = "Refresh ticks coalesced after a late wake-up"
	MsgScheduleEarly   = "Wall clock behind deadline, re-arming"
	MsgScheduleStep    = "Wall clock stepped back, re-anchoring schedule"
	MsgServerListen    = "HTTP feed listening"
	MsgServerStop      = "Shutting down HTTP feed..."
	MsgFeedUpdated     = "Feed snapshot updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgTimezoneSeeded  = "Timezone list empty, seeding default"
	MsgOrderRepaired   = "Duplicate timezone orders renumbered"
	MsgTimezoneAdded   = "Timezone added"
	MsgTimezoneRemoved = "Timezone removed"
	MsgTimezoneMoved   = "Timezone moved"
	MsgPrefixUpdated   = "Timezone prefix updated"
	MsgCatalogLoaded   = "City catalog loaded"
	MsgOpenClocks      = "Opening clocks window"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgFeedSaved       = "Feed settings saved"
	MsgFeedNotSaved    = "Feed settings not saved"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyNextFire  = "next_fire"
	LogKeyDegraded  = "degraded"
	LogKeySkipped   = "skipped"
	LogKeyTimezone  = "timezone"
	LogKeyEntryID   = "entry_id"
	LogKeyCity      = "city"
	LogKeyPrefix    = "prefix"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeyCount     = "count"
	LogKeyCells     = "cells"
	LogKeyLayout    = "layout"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyUse24Hour = "use_24_hour"
	LogKeySeconds   = "show_seconds"
	LogKeyDrift     = "drift"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompEngine    = "engine"
	CompScheduler = "scheduler"
	CompComposer  = "composer"
	CompTimezones = "timezones"
	CompServer    = "server"
	CompMain      = "main"
	CompI18n      = "i18n"
)
