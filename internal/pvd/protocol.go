// Package pvd implements the remote visual debugger link: a JSON envelope
// protocol carried over WebSocket, the engine-side client and a viewer server.
package pvd

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Path is the WebSocket endpoint served by the viewer.
const Path = "/pvd"

// Message types.
const (
	MsgHello = "hello"
	MsgFrame = "frame"
	MsgBye   = "bye"
)

// Envelope wraps every message on the wire.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}

// Hello is the first message sent after connecting.
type Hello struct {
	Version int    `json:"version"`
	SimType string `json:"sim_type"`
}

// Vec3 is a position or velocity on the wire.
type Vec3 [3]float64

// ActorState is one actor's pose and motion in a frame.
type ActorState struct {
	Name     string `json:"name"`
	Dynamic  bool   `json:"dynamic"`
	Position Vec3   `json:"pos"`
	Velocity Vec3   `json:"vel"`
}

// Frame is published after every fetched step.
type Frame struct {
	Frame  uint64       `json:"frame"`
	Time   float64      `json:"time"`
	Actors []ActorState `json:"actors"`
}

// Bye is sent before a clean disconnect.
type Bye struct {
	Reason string `json:"reason,omitempty"`
}

var errEmptyMessage = errors.New("pvd: empty message")

// Encode wraps payload in an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("pvd: envelope type is empty")
	}
	if payload == nil {
		return nil, fmt.Errorf("pvd: nil payload for type %q", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pvd: encode %s: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeEnvelope parses the outer envelope of a message.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errEmptyMessage
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("pvd: decode envelope: %w", err)
	}
	return e, nil
}

// DecodePayload parses the payload of env into T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("pvd: empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}
