package sink

import (
	"screenlog/internal/app/logs"
)

// Sender is the outbound side of the control channel
type Sender interface {
	Enabled() bool
	IsOpen() bool
	Send(entry logs.Entry) error
}

// Remote forwards delivered entries over the control channel
type Remote struct {
	sender Sender
}

// NewRemote creates a remote sink over sender
func NewRemote(sender Sender) *Remote {
	return &Remote{sender: sender}
}

// Name returns the sink name
func (r *Remote) Name() string {
	return NameRemote
}

// Enabled reports whether the channel is enabled
func (r *Remote) Enabled() bool {
	return r.sender.Enabled()
}

// Accepts accepts entries only while the channel is open
func (r *Remote) Accepts(logs.Entry) bool {
	return r.sender.IsOpen()
}

// Deliver sends the entry; failures are not retried
func (r *Remote) Deliver(entry logs.Entry) error {
	return r.sender.Send(entry)
}
