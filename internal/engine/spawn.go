package engine

// Spawn rows. Each team lines up along X from its anchor, SpawnSpacing apart,
// in roster order.
var (
	DefenderSpawn = Vec3{X: -20, Y: 0, Z: -20}
	AttackerSpawn = Vec3{X: 20, Y: 0, Z: 20}
)

const SpawnSpacing = 3.0

func spawnPoint(t Team, idx int) Vec3 {
	anchor := AttackerSpawn
	if t == TeamDefenders {
		anchor = DefenderSpawn
	}
	return Vec3{X: anchor.X + SpawnSpacing*float64(idx), Y: anchor.Y, Z: anchor.Z}
}
