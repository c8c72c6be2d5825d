package core

// Message is a typed contract message body.
// Op returns a stable operation name used for logging and tracing.
type Message interface {
	Op() string
}

// TextCommand is a plain text message body, e.g. "Mint:Close" or "increment".
type TextCommand string

func (t TextCommand) Op() string { return "text:" + string(t) }

// Deploy is the conventional first message of an explicitly deployed contract.
type Deploy struct {
	QueryID uint64
}

func (Deploy) Op() string { return "deploy" }

// Excesses acknowledges a processed request and returns unused attached value.
type Excesses struct {
	QueryID uint64
}

func (Excesses) Op() string { return "excesses" }
