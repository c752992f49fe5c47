package connection

const (
	CodeSessionID uint8 = iota
	CodeCreateGame

	// Sent once after CodeCreateGame with the layout of the human's own fleet
	CodeFleet
	CodeShoot
	CodeShotResult

	// Client acks. With auto_ack the server sends these on the client's behalf.
	CodeShotPresented
	CodeTurnChanged
	CodeBoardReady

	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// The code was valid but its payload could not be used
	CodeInvalidPayload
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
