package communication

// Communicator is an interface that abstracts the message channel to the game server.
type Communicator interface {
	ReceiveMessage() (string, error)
	SendMessage(message string) error
}
