package protocol

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/DoyleJ11/breach-backend/internal/engine"
)

var (
	ErrBadJSON     = errors.New("bad json")
	ErrUnknownType = errors.New("unknown type")
)

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("encode: empty envelope type")
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %q: nil payload", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// EncodeEvent frames an outbound engine event.
func EncodeEvent(ev engine.Event) ([]byte, error) {
	return Encode(string(ev.Kind()), ev.Payload)
}

// EncodeError frames an error message for a single connection.
func EncodeError(err error) []byte {
	b, _ := Encode(string(engine.EvtError), engine.ErrorMessage{Message: err.Error()})
	return b
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("%w: empty message", ErrBadJSON)
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrBadJSON, err)
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("%w: missing type", ErrBadJSON)
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("%w: empty payload for type %q", ErrBadJSON, env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("%w: %w", ErrBadJSON, err)
	}
	return out, nil
}

// decodeOptional is DecodePayload for kinds whose payload may be left out.
func decodeOptional[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 || string(env.P) == "null" {
		return out, nil
	}
	return DecodePayload[T](env)
}
