// Package protocol is the websocket wire format: a {"t","p"} envelope around
// JSON payloads.
package protocol

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/DoyleJ11/breach-backend/internal/engine"
)

// Inbound message kinds.
const (
	MsgJoinGame       = "join_game"
	MsgSelectOperator = "select_operator"
	MsgPlayerMove     = "player_move"
	MsgPlayerShoot    = "player_shoot"
	MsgUseAbility     = "use_ability"
	MsgDeployGadget   = "deploy_gadget"
	MsgPlantBomb      = "plant_bomb"
	MsgDefuseBomb     = "defuse_bomb"
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

type JoinGame struct {
	Name string `json:"name"`
}

// SelectOperator accepts either {"operatorId": "..."} or a bare string.
type SelectOperator struct {
	OperatorID string `json:"operatorId"`
}

func (s *SelectOperator) UnmarshalJSON(b []byte) error {
	if b = bytes.TrimSpace(b); len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &s.OperatorID)
	}
	type plain SelectOperator
	return json.Unmarshal(b, (*plain)(s))
}

type PlayerMove struct {
	Position engine.Vec3 `json:"position"`
	Rotation engine.Vec3 `json:"rotation"`
	Stance   string      `json:"stance"`
}

type PlayerShoot struct {
	Direction   engine.Vec3 `json:"direction"`
	Weapon      string      `json:"weapon"`
	TargetID    string      `json:"targetId,omitempty"`
	HitLocation string      `json:"hitLocation,omitempty"`
	BaseDamage  *float64    `json:"baseDamage,omitempty"`
}

type UseAbility struct {
	Position engine.Vec3 `json:"position"`
}

type DeployGadget struct {
	Type     string      `json:"type"`
	Position engine.Vec3 `json:"position"`
}
