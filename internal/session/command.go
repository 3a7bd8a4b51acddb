package session

// Command is a discrete user action fed to Engine.Apply.
type Command int

const (
	CommandNone Command = iota
	CommandAdvance
	CommandRequeue
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandAdvance:
		return "advance"
	case CommandRequeue:
		return "requeue"
	case CommandQuit:
		return "quit"
	}
	return "none"
}
