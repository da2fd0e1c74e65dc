package protocol

import (
	"fmt"
	"slices"

	"github.com/DoyleJ11/breach-backend/internal/engine"
)

type decoder func(Envelope) (engine.Command, error)

var inbound = map[string]decoder{
	MsgJoinGame: func(env Envelope) (engine.Command, error) {
		p, err := decodeOptional[JoinGame](env)
		return engine.Join{Name: p.Name}, err
	},
	MsgSelectOperator: func(env Envelope) (engine.Command, error) {
		p, err := DecodePayload[SelectOperator](env)
		return engine.SelectOperator{OperatorID: p.OperatorID}, err
	},
	MsgPlayerMove: func(env Envelope) (engine.Command, error) {
		p, err := DecodePayload[PlayerMove](env)
		return engine.Move{
			Position: p.Position,
			Rotation: p.Rotation,
			Stance:   engine.ParseStance(p.Stance),
		}, err
	},
	MsgPlayerShoot: func(env Envelope) (engine.Command, error) {
		p, err := DecodePayload[PlayerShoot](env)
		return engine.Shoot{
			Direction:   p.Direction,
			Weapon:      p.Weapon,
			TargetID:    p.TargetID,
			HitLocation: p.HitLocation,
			BaseDamage:  p.BaseDamage,
		}, err
	},
	MsgUseAbility: func(env Envelope) (engine.Command, error) {
		p, err := decodeOptional[UseAbility](env)
		return engine.UseAbility{Position: p.Position}, err
	},
	MsgDeployGadget: func(env Envelope) (engine.Command, error) {
		p, err := DecodePayload[DeployGadget](env)
		return engine.DeployGadget{Type: p.Type, Position: p.Position}, err
	},
	MsgPlantBomb: func(Envelope) (engine.Command, error) {
		return engine.PlantBomb{}, nil
	},
	MsgDefuseBomb: func(Envelope) (engine.Command, error) {
		return engine.DefuseBomb{}, nil
	},
}

// Kinds lists the inbound message kinds, sorted.
func Kinds() []string {
	out := make([]string, 0, len(inbound))
	for k := range inbound {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ToCommand decodes one client frame. Errors wrap ErrBadJSON or
// ErrUnknownType.
func ToCommand(b []byte) (engine.Command, error) {
	env, err := DecodeEnvelope(b)
	if err != nil {
		return nil, err
	}
	dec, ok := inbound[env.T]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.T)
	}
	cmd, err := dec(env)
	if err != nil {
		return nil, err
	}
	return cmd, nil
}
