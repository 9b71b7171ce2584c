// Package server declares the sentinel errors raised while handling inbound
// chat protocol messages.
package server

import "fmt"

var (
	// ErrProtocol marks a payload that is not well-formed JSON or carries an
	// unrecognized message type. It is fatal only to that one payload.
	ErrProtocol = fmt.Errorf("bad message")

	// ErrUnknownTarget marks a private message whose target name matches no
	// current room member.
	ErrUnknownTarget = fmt.Errorf("user does not exist")
)
