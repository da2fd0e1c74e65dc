package protocol

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/breach-backend/internal/engine"
)

func f(v float64) *float64 { return &v }

func TestToCommand(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want engine.Command
	}{
		{"join with name", `{"t":"join_game","p":{"name":"Ash"}}`, engine.Join{Name: "Ash"}},
		{"join without payload", `{"t":"join_game"}`, engine.Join{}},
		{"select object", `{"t":"select_operator","p":{"operatorId":"TRAPMASTER"}}`, engine.SelectOperator{OperatorID: "TRAPMASTER"}},
		{"select bare string", `{"t":"select_operator","p":"scout"}`, engine.SelectOperator{OperatorID: "scout"}},
		{
			"move",
			`{"t":"player_move","p":{"position":{"x":1,"y":2,"z":3},"rotation":{"x":0,"y":1.5,"z":0},"stance":"crouch"}}`,
			engine.Move{Position: engine.Vec3{X: 1, Y: 2, Z: 3}, Rotation: engine.Vec3{Y: 1.5}, Stance: engine.StanceCrouch},
		},
		{
			"move with unknown stance",
			`{"t":"player_move","p":{"position":{"x":0,"y":0,"z":0},"stance":"prone"}}`,
			engine.Move{Stance: engine.StanceWalk},
		},
		{
			"shoot with hit",
			`{"t":"player_shoot","p":{"direction":{"x":0,"y":0,"z":1},"weapon":"MP5","targetId":"abc","hitLocation":"head","baseDamage":40}}`,
			engine.Shoot{Direction: engine.Vec3{Z: 1}, Weapon: "MP5", TargetID: "abc", HitLocation: "head", BaseDamage: f(40)},
		},
		{
			"shoot miss",
			`{"t":"player_shoot","p":{"direction":{"x":1,"y":0,"z":0},"weapon":"P90"}}`,
			engine.Shoot{Direction: engine.Vec3{X: 1}, Weapon: "P90"},
		},
		{"ability", `{"t":"use_ability","p":{"position":{"x":4,"y":0,"z":2}}}`, engine.UseAbility{Position: engine.Vec3{X: 4, Z: 2}}},
		{"gadget", `{"t":"deploy_gadget","p":{"type":"claymore","position":{"x":1,"y":0,"z":1}}}`, engine.DeployGadget{Type: "claymore", Position: engine.Vec3{X: 1, Z: 1}}},
		{"plant", `{"t":"plant_bomb"}`, engine.PlantBomb{}},
		{"defuse", `{"t":"defuse_bomb","p":{}}`, engine.DefuseBomb{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToCommand([]byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToCommandErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", ``, ErrBadJSON},
		{"not json", `hello`, ErrBadJSON},
		{"missing type", `{"p":{}}`, ErrBadJSON},
		{"unknown type", `{"t":"fly"}`, ErrUnknownType},
		{"missing payload", `{"t":"player_move"}`, ErrBadJSON},
		{"wrong payload shape", `{"t":"player_shoot","p":{"direction":"north"}}`, ErrBadJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToCommand([]byte(tc.in))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEveryInboundKindIsDispatched(t *testing.T) {
	assert.Equal(t, []string{
		MsgDefuseBomb, MsgDeployGadget, MsgJoinGame, MsgPlantBomb,
		MsgPlayerMove, MsgPlayerShoot, MsgSelectOperator, MsgUseAbility,
	}, Kinds())
}

func TestEncodeEvent(t *testing.T) {
	cases := []struct {
		name string
		ev   engine.Event
		want string
	}{
		{
			"player hit uses from",
			engine.Event{Payload: engine.PlayerHit{Damage: 30, SourceID: "a1"}},
			`{"t":"player_hit","p":{"damage":30,"from":"a1"}}`,
		},
		{
			"player joined is flat",
			engine.Event{Payload: engine.PlayerJoined{Player: engine.Player{ID: "a1", Name: "Ash", Team: engine.TeamAttackers, Health: 100, Alive: true, Stance: engine.StanceWalk}}},
			`{"t":"player_joined","p":{"id":"a1","name":"Ash","team":"attackers","health":100,"armor":0,"position":{"x":0,"y":0,"z":0},"rotation":{"x":0,"y":0,"z":0},"alive":true,"stance":"walk"}}`,
		},
		{
			"gadget deployed is flat",
			engine.Event{Payload: engine.GadgetDeployed{Gadget: engine.Gadget{ID: "g1", Type: "claymore", OwnerID: "d1", Active: true}}},
			`{"t":"gadget_deployed","p":{"id":"g1","type":"claymore","ownerId":"d1","position":{"x":0,"y":0,"z":0},"active":true}}`,
		},
		{
			"round end",
			engine.Event{Payload: engine.RoundEnded{Round: 2, Winner: engine.TeamAttackers, Scores: engine.Scores{Attackers: 2}, Reason: engine.ReasonBombDefused}},
			`{"t":"round_end","p":{"round":2,"winner":"attackers","scores":{"attackers":2,"defenders":0},"reason":"bomb defused"}}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := EncodeEvent(tc.ev)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))
		})
	}
}

func TestEncodeError(t *testing.T) {
	var env Envelope
	require.NoError(t, json.Unmarshal(EncodeError(ErrUnknownType), &env))
	assert.Equal(t, "error", env.T)
	msg, err := DecodePayload[engine.ErrorMessage](env)
	require.NoError(t, err)
	assert.Equal(t, "unknown type", msg.Message)
}

func TestEncodeRejectsEmpty(t *testing.T) {
	_, err := Encode("", struct{}{})
	assert.Error(t, err)
	_, err = Encode("x", nil)
	assert.Error(t, err)
}
