package game

import "errors"

// ErrorKind is the machine-readable class of a rejected request.
type ErrorKind string

const (
	RoomNotFound      ErrorKind = "RoomNotFound"
	RoomFull          ErrorKind = "RoomFull"
	RoomExists        ErrorKind = "RoomExists"
	AlreadyStarted    ErrorKind = "AlreadyStarted"
	AlreadyInRoom     ErrorKind = "AlreadyInRoom"
	NameTaken         ErrorKind = "NameTaken"
	NotHost           ErrorKind = "NotHost"
	NotEnoughPlayers  ErrorKind = "NotEnoughPlayers"
	NotStarted        ErrorKind = "NotStarted"
	NotInRoom         ErrorKind = "NotInRoom"
	NotYourTurn       ErrorKind = "NotYourTurn"
	CardNotInHand     ErrorKind = "CardNotInHand"
	IllegalPlay       ErrorKind = "IllegalPlay"
	PendingDrawActive ErrorKind = "PendingDrawActive"
	GameOver          ErrorKind = "GameOver"
	UnoNotAllowed     ErrorKind = "UnoNotAllowed"
	InvalidRequest    ErrorKind = "InvalidRequest"
	Internal          ErrorKind = "Internal"
)

// Error is a request-local rejection. It never implies a state change.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target matches this error by kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrRoomNotFound      = NewError(RoomNotFound, "Room not found.")
	ErrRoomFull          = NewError(RoomFull, "Room is full.")
	ErrRoomExists        = NewError(RoomExists, "Room code already in use.")
	ErrAlreadyStarted    = NewError(AlreadyStarted, "Game has already started.")
	ErrAlreadyInRoom     = NewError(AlreadyInRoom, "Already in a room.")
	ErrNameTaken         = NewError(NameTaken, "Name already taken in this room.")
	ErrNotHost           = NewError(NotHost, "Only the host can do that.")
	ErrNotEnoughPlayers  = NewError(NotEnoughPlayers, "At least 2 players are needed.")
	ErrNotStarted        = NewError(NotStarted, "Game has not started.")
	ErrNotInRoom         = NewError(NotInRoom, "You are not in this room.")
	ErrNotYourTurn       = NewError(NotYourTurn, "Not your turn.")
	ErrCardNotInHand     = NewError(CardNotInHand, "Card not in your hand.")
	ErrIllegalPlay       = NewError(IllegalPlay, "You cannot play this card.")
	ErrPendingDrawActive = NewError(PendingDrawActive, "Stack a penalty card or accept the pending draw.")
	ErrGameOver          = NewError(GameOver, "Game is over.")
	ErrUnoNotAllowed     = NewError(UnoNotAllowed, "You can only call UNO with one card left.")
)

// KindOf returns the kind of err, or Internal for foreign errors.
func KindOf(err error) ErrorKind {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Kind
	}
	return Internal
}
