package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrFailedToWriteConfig = errors.New("failed to write config file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrInvalidCapacity    = errors.New("capacity must be a positive number")
	ErrInvalidLevel       = errors.New("unknown log level")
	ErrNoValidLevels      = errors.New("no valid log levels provided")
	ErrInvalidTextSize    = errors.New("text size must be a non-empty string")
	ErrUnknownFeature     = errors.New("unknown feature")
	ErrInvalidStorageType = errors.New("storage type must be 'session' or 'local'")
	ErrInvalidStorageKey  = errors.New("storage key is required")
	ErrInvalidSocketPort  = errors.New("socket port must be between 1 and 65535")
	ErrInvalidReconnect   = errors.New("reconnect interval must be positive")

	ErrSinkDisabled      = errors.New("sink disabled")
	ErrStorageFailed     = errors.New("failed to write log to storage")
	ErrStorageNotFound   = errors.New("storage key not found")
	ErrCorruptStorage    = errors.New("stored logs are corrupt")
	ErrQuotaExceeded     = errors.New("storage quota exceeded")
	ErrStoreClosed       = errors.New("store is closed")
	ErrFailedToOpenStore = errors.New("failed to open store")

	ErrChannelDisabled       = errors.New("control channel disabled")
	ErrChannelNotOpen        = errors.New("control channel is not open")
	ErrFailedToConnectSocket = errors.New("failed to connect to socket")
	ErrFailedToWriteSocket   = errors.New("failed to write to socket")
	ErrFailedToMarshalFrame  = errors.New("failed to marshal frame")
	ErrMalformedFrame        = errors.New("malformed command frame")
	ErrUnknownCommand        = errors.New("unknown command")
	ErrInvalidPayload        = errors.New("invalid command payload")

	ErrScriptsDisabled         = errors.New("script execution is disabled")
	ErrScriptFailed            = errors.New("script execution failed")
	ErrFailedToTerminateScript = errors.New("failed to terminate script")
	ErrReloadFailed            = errors.New("reload failed")
	ErrNoConfigSource          = errors.New("no configuration source to reload from")
	ErrWatcherClosed           = errors.New("watcher is closed")

	ErrFailedToListenSocket = errors.New("failed to listen on socket")
	ErrServerRunning        = errors.New("console server is already running")
	ErrNoDevicesConnected   = errors.New("no devices connected")
	ErrInvalidMatchPattern  = errors.New("invalid match pattern")
	ErrTimerNotFound        = errors.New("timer does not exist")
	ErrTimerExists          = errors.New("timer already exists")
	ErrInvalidTableData     = errors.New("table data must be a slice, array, map or struct")
	ErrEmptyTable           = errors.New("table data is empty")
)

var (
	As   = errors.As
	Is   = errors.Is
	Join = errors.Join
	New  = errors.New
)
