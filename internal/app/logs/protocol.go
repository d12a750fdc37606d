package logs

// MessageType represents the type of a non-entry message in the wire protocol
type MessageType string

// Message types for the wire protocol
const (
	// MessagePong is sent from device to operator in reply to a ping command
	MessagePong MessageType = "pong"
)

// Command names accepted by the control channel
const (
	CommandSetLogLevel    = "setLogLevel"
	CommandClearLogs      = "clearLogs"
	CommandSetLogLimit    = "setLogLimit"
	CommandSetTextSize    = "setTextSize"
	CommandEnableFeature  = "enableFeature"
	CommandDisableFeature = "disableFeature"
	CommandExecuteScript  = "executeScript"
	CommandReload         = "reload"
	CommandPing           = "ping"
)

// Feature names accepted by enableFeature and disableFeature
const (
	FeatureTimeCounter = "timeCounter"
	FeaturePrettyPrint = "prettyPrint"
	FeatureColors      = "colors"
	FeatureConsole     = "console"
	FeaturePanics      = "capturePanics"
)

// LogMessage is sent from device to operator for every delivered entry
type LogMessage struct {
	Sequence uint64 `json:"sequence"`
	Time     int64  `json:"time"`
	Level    Level  `json:"level"`
	Message  string `json:"message"`
}

// NewLogMessage converts an entry into its wire form
func NewLogMessage(e Entry) LogMessage {
	return LogMessage{
		Sequence: e.Sequence,
		Time:     e.Time,
		Level:    e.Level,
		Message:  e.Text,
	}
}

// Entry converts the wire form back into an entry
func (m LogMessage) Entry() Entry {
	return Entry{
		Sequence: m.Sequence,
		Time:     m.Time,
		Level:    m.Level,
		Text:     m.Message,
	}
}

// Stats describes the device process at the time of a pong
type Stats struct {
	PID        int32   `json:"pid"`
	CPUPercent float64 `json:"cpuPercent"`
	RSS        uint64  `json:"rss"`
	Goroutines int     `json:"goroutines"`
}

// PongMessage is sent from device to operator in reply to a ping command
type PongMessage struct {
	Type    MessageType `json:"type"`
	Time    int64       `json:"time"`
	Entries int         `json:"entries"`
	Stats   *Stats      `json:"stats,omitempty"`
}

// MessageEnvelope is used for type-based dispatching of device frames
type MessageEnvelope struct {
	Type     MessageType `json:"type"`
	Sequence uint64      `json:"sequence"`
}

// CommandEnvelope is used for name-based dispatching of operator frames
type CommandEnvelope struct {
	Command string `json:"command"`
}

// CommandFrame carries a command and every payload field any command accepts
type CommandFrame struct {
	Command string          `json:"command"`
	Levels  map[string]bool `json:"levels,omitempty"`
	Limit   *float64        `json:"limit,omitempty"`
	Size    string          `json:"size,omitempty"`
	Feature string          `json:"feature,omitempty"`
	Script  string          `json:"script,omitempty"`
}
