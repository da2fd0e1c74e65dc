package protocol

// Client -> Server
// join_game:
//   name: string (optional, defaults to "Player_" + first 4 chars of the id)
//
// select_operator: "<operatorId>" or { operatorId: string }
//
// player_move:
//   position: {x, y, z}
//   rotation: {x, y, z}
//   stance: "walk" | "crouch" | "sprint"
//
// player_shoot:
//   direction: {x, y, z}
//   weapon: string
//   targetId?: string
//   hitLocation?: "head" | "body" | "limb"
//   baseDamage?: number
//
// use_ability:
//   position: {x, y, z}
//
// deploy_gadget:
//   type: string
//   position: {x, y, z}
//
// plant_bomb: {}
// defuse_bomb: {}

// Server -> Client
// joined_game:       { player, matchId }            (joiner only)
// player_joined:     player
// phase_change:      { phase, round, duration?, operators?, playerStates? }
// operator_selected: { playerId, operatorId }
// player_moved:      { playerId, position, rotation, stance }  (not echoed)
// player_shot:       { playerId, direction, weapon }           (not echoed)
// player_hit:        { damage, from }                (victim only)
// player_killed:     { killerId, victimId, weapon }
// ability_used:      { playerId, operator, position }
// gadget_deployed:   gadget
// bomb_planted:      { position, planterId }
// defuse_started:    { defuserId }
// round_end:         { round, winner, scores, reason }
// player_left:       { playerId }
// error:             { message }                     (sender only)
