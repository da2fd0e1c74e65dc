package catalog

import "time"

const DefaultVersion = "2024.1"

func Default() *Catalog {
	c := &Catalog{
		Version:     DefaultVersion,
		Operators:   make(map[string]Operator),
		Weapons:     make(map[string]Weapon),
		Multipliers: HitMultipliers{Head: 4, Body: 1, Limb: 0.75},
		Movement:    Movement{Walk: 3, Crouch: 1.5, Sprint: 5},
		Vision:      Vision{ConeAngle: 70, Range: 50},
		Timings: Timings{
			OperatorSelect: 20 * time.Second,
			Prep:           45 * time.Second,
			Action:         3 * time.Minute,
			RoundEnd:       5 * time.Second,
			Bomb:           45 * time.Second,
			Defuse:         7 * time.Second,
		},
	}
	for _, op := range defaultOperators {
		c.Operators[op.ID] = op
	}
	for _, w := range defaultWeapons {
		c.Weapons[w.ID] = w
	}
	return c
}

var defaultOperators = []Operator{
	// Defenders
	{
		ID: "trapmaster", Name: "TrapMaster", Team: Defenders, Health: 100, Armor: 2, Speed: 2,
		Ability: Ability{Name: "Reinforced Wall", Charges: 2, Description: "Deploy reinforced walls that resist breaching"},
		Gadget:  &Gadget{Name: "Proximity Mine", Charges: 3},
		Weapons: Loadout{Primary: "MP5", Secondary: "P226"},
	},
	{
		ID: "anchor", Name: "Anchor", Team: Defenders, Health: 120, Armor: 3, Speed: 1,
		Ability: Ability{Name: "Deployable Shield", Charges: 2, Description: "Deploy bulletproof shields for cover"},
		Weapons: Loadout{Primary: "SG-CQB", Secondary: "P226"},
	},
	{
		ID: "jammer", Name: "Jammer", Team: Defenders, Health: 100, Armor: 2, Speed: 2,
		Ability: Ability{Name: "Signal Jammer", Charges: 3, Description: "Blocks drones and disables attacker gadgets in radius"},
		Weapons: Loadout{Primary: "M870", Secondary: "SMG-11"},
	},
	{
		ID: "roamer", Name: "Roamer", Team: Defenders, Health: 100, Armor: 1, Speed: 3,
		Ability: Ability{Name: "Silent Step", CooldownMs: 30000, DurationMs: 10000, Description: "Move silently for 10 seconds"},
		Weapons: Loadout{Primary: "MP7", Secondary: "P226"},
	},
	{
		ID: "medic", Name: "Medic", Team: Defenders, Health: 100, Armor: 2, Speed: 2,
		Ability: Ability{Name: "Stim Pistol", CooldownMs: 20000, Charges: 3, Description: "Heal teammates or boost health temporarily"},
		Weapons: Loadout{Primary: "P90", Secondary: "P226"},
	},

	// Attackers
	{
		ID: "breacher", Name: "Breacher", Team: Attackers, Health: 100, Armor: 2, Speed: 2,
		Ability: Ability{Name: "Breaching Charge", Charges: 3, Description: "Explosive charges to breach walls and barricades"},
		Gadget:  &Gadget{Name: "Flashbang", Charges: 3},
		Weapons: Loadout{Primary: "L85A2", Secondary: "P226"},
	},
	{
		ID: "scout", Name: "Scout", Team: Attackers, Health: 100, Armor: 1, Speed: 3,
		Ability: Ability{Name: "Recon Drone", Charges: 2, Description: "Deploy drones to scout and mark enemies"},
		Weapons: Loadout{Primary: "R4-C", Secondary: "P226"},
	},
	{
		ID: "disabler", Name: "Disabler", Team: Attackers, Health: 100, Armor: 2, Speed: 2,
		Ability: Ability{Name: "EMP Grenade", CooldownMs: 25000, Charges: 3, Description: "Disable all electronic gadgets in radius"},
		Weapons: Loadout{Primary: "AK-12", Secondary: "PMM"},
	},
	{
		ID: "shield", Name: "Shield", Team: Attackers, Health: 100, Armor: 3, Speed: 1,
		Ability: Ability{Name: "Ballistic Shield", Description: "Equipped shield blocks frontal damage"},
		Weapons: Loadout{Primary: "SHIELD", Secondary: "P226"},
	},
	{
		ID: "sniper", Name: "Sniper", Team: Attackers, Health: 100, Armor: 1, Speed: 3,
		Ability: Ability{Name: "Thermal Scope", CooldownMs: 40000, DurationMs: 15000, Description: "See through smoke and detect heat signatures"},
		Weapons: Loadout{Primary: "OTS-03", Secondary: "PMM"},
	},
}

var defaultWeapons = []Weapon{
	{ID: "MP5", Name: "MP5", Type: "smg", Damage: 27, FireRate: 800, MagazineSize: 30, ReloadTime: 2.5, Recoil: Recoil{0.3, 0.5}, Range: 25},
	{ID: "SG-CQB", Name: "SG-CQB", Type: "shotgun", Damage: 48, FireRate: 85, MagazineSize: 7, ReloadTime: 3.0, Recoil: Recoil{0.8, 1.2}, Range: 15},
	{ID: "M870", Name: "M870", Type: "shotgun", Damage: 60, FireRate: 100, MagazineSize: 7, ReloadTime: 3.5, Recoil: Recoil{1.0, 1.5}, Range: 12},
	{ID: "MP7", Name: "MP7", Type: "smg", Damage: 32, FireRate: 900, MagazineSize: 30, ReloadTime: 2.2, Recoil: Recoil{0.4, 0.6}, Range: 20},
	{ID: "P90", Name: "P90", Type: "smg", Damage: 22, FireRate: 970, MagazineSize: 50, ReloadTime: 3.0, Recoil: Recoil{0.5, 0.7}, Range: 20},
	{ID: "L85A2", Name: "L85A2", Type: "assault_rifle", Damage: 47, FireRate: 670, MagazineSize: 30, ReloadTime: 2.5, Recoil: Recoil{0.4, 0.6}, Range: 35},
	{ID: "R4-C", Name: "R4-C", Type: "assault_rifle", Damage: 39, FireRate: 860, MagazineSize: 30, ReloadTime: 2.3, Recoil: Recoil{0.6, 0.8}, Range: 30},
	{ID: "AK-12", Name: "AK-12", Type: "assault_rifle", Damage: 45, FireRate: 700, MagazineSize: 30, ReloadTime: 2.5, Recoil: Recoil{0.5, 0.7}, Range: 35},
	{ID: "OTS-03", Name: "OTS-03", Type: "marksman_rifle", Damage: 71, FireRate: 380, MagazineSize: 10, ReloadTime: 2.8, Recoil: Recoil{0.3, 1.0}, Range: 60},
	{ID: "SHIELD", Name: "Ballistic Shield", Type: "shield"},
	{ID: "P226", Name: "P226", Type: "pistol", Damage: 50, FireRate: 450, MagazineSize: 15, ReloadTime: 2.0, Recoil: Recoil{0.3, 0.5}, Range: 20},
	{ID: "PMM", Name: "PMM", Type: "pistol", Damage: 61, FireRate: 400, MagazineSize: 8, ReloadTime: 2.2, Recoil: Recoil{0.5, 0.8}, Range: 18},
	{ID: "SMG-11", Name: "SMG-11", Type: "machine_pistol", Damage: 35, FireRate: 1270, MagazineSize: 16, ReloadTime: 1.5, Recoil: Recoil{0.8, 1.2}, Range: 12},
}
