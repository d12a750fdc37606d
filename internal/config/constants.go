package config

import "time"

// app constants
const (
	AppName        = "screenlog"
	AppDescription = "in-process diagnostic log sink with a remote control channel"

	LogLevel  = "info"
	LogFormat = "console"

	ConfigFile = "screenlog.yaml"
	EnvFile    = ".env"
	EnvPrefix  = "SCREENLOG"

	Version = "0.3.0"
)

// buffer constants
const (
	DisplayLimit  = 50
	HistoryFactor = 1.5
	TextSize      = "13px"
)

// serializer constants
const (
	MaxDepth        = 5
	MaxStringLength = 100
	MaxArrayLength  = 50
)

// storage constants
const (
	StorageSession = "session"
	StorageLocal   = "local"

	StorageKey   = "screenlogEntries"
	StorageLimit = 100
	StoragePath  = ".screenlog"
	StorageQuota = 5 * 1024 * 1024
)

// socket constants
const (
	SocketHost        = "localhost"
	SocketPort        = 8080
	ReconnectInterval = 5 * time.Second
	SocketDialTimeout = 5 * time.Second
	SocketWriteWait   = 2 * time.Second
)

// script constants
const (
	ScriptShell       = "sh"
	ScriptTimeout     = 10 * time.Second
	ScriptGracePeriod = 2 * time.Second
	ScriptWorkers     = 1
)

// time counter constants
const (
	TimeCounterTick = time.Second
)

// watch constants
const (
	WatchDebounce = 300 * time.Millisecond
)

// console constants
const (
	ConsoleHost   = "0.0.0.0"
	ConsoleBuffer = 256
)
