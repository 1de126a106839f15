package schema

// ChampionStats is the active player's stat block. Penetration is reported
// twice: a flat value (lethality) and a fractional "percent remaining" value.
// Both are kept; EffectiveArmor and EffectiveMagicResist combine them.
type ChampionStats struct {
	AbilityHaste         float64 `json:"abilityHaste"`
	AbilityPower         float64 `json:"abilityPower"`
	Armor                float64 `json:"armor"`
	Lethality            float64 `json:"armorPenetrationFlat"`
	ArmorPenPercent      float64 `json:"armorPenetrationPercent"`
	AttackDamage         float64 `json:"attackDamage"`
	AttackRange          float64 `json:"attackRange"`
	AttackSpeed          float64 `json:"attackSpeed"`
	BonusArmorPenPercent float64 `json:"bonusArmorPenetrationPercent"`
	BonusMagicPenPercent float64 `json:"bonusMagicPenetrationPercent"`
	CritChance           float64 `json:"critChance"`
	CritDamage           float64 `json:"critDamage"`
	CurrentHealth        float64 `json:"currentHealth"`
	HealShieldPower      float64 `json:"healShieldPower"`
	HealthRegenRate      float64 `json:"healthRegenRate"`
	LifeSteal            float64 `json:"lifeSteal"`
	MagicLethality       float64 `json:"magicLethality"`
	MagicPenFlat         float64 `json:"magicPenetrationFlat"`
	MagicPenPercent      float64 `json:"magicPenetrationPercent"`
	MagicResist          float64 `json:"magicResist"`
	MaxHealth            float64 `json:"maxHealth"`
	MoveSpeed            float64 `json:"moveSpeed"`
	Omnivamp             float64 `json:"omnivamp"`
	PhysicalLethality    float64 `json:"physicalLethality"`
	PhysicalVamp         float64 `json:"physicalVamp"`
	ResourceMax          float64 `json:"resourceMax"`
	ResourceRegenRate    float64 `json:"resourceRegenRate"`
	ResourceType         string  `json:"resourceType"`
	ResourceValue        float64 `json:"resourceValue"`
	SpellVamp            float64 `json:"spellVamp"`
	Tenacity             float64 `json:"tenacity"`
}

// EffectiveArmor is the armor a target with targetArmor has against this
// champion. The percent fields are fractions of armor that remain (1 means no
// reduction) and apply before flat lethality. The result never goes below 0.
func (s ChampionStats) EffectiveArmor(targetArmor float64) float64 {
	return effective(targetArmor, s.ArmorPenPercent, s.Lethality)
}

// EffectiveMagicResist mirrors EffectiveArmor for magic resist.
func (s ChampionStats) EffectiveMagicResist(targetMR float64) float64 {
	return effective(targetMR, s.MagicPenPercent, s.MagicPenFlat)
}

func effective(resist, remaining, flat float64) float64 {
	if resist <= 0 {
		return resist
	}
	if remaining <= 0 || remaining > 1 {
		remaining = 1
	}
	v := resist*remaining - flat
	if v < 0 {
		return 0
	}
	return v
}

// Health returns current health as a fraction of max health.
func (s ChampionStats) Health() float64 {
	if s.MaxHealth <= 0 {
		return 0
	}
	return s.CurrentHealth / s.MaxHealth
}
