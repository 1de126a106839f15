package types

// Stats:
//   riotId: string // "Name#TAG"
//   name: string   // riotId without the tag
//   champion: string
//   team: "ORDER" | "CHAOS"
//   level: number
//   gameMode: string
//   gameTime: number // seconds
//   csPerMin: number // omitted while gameTime is 0
//   currentGold: number
//   itemGold: number // sum of item prices
//   totalGold: number // currentGold + itemGold
//   kills, deaths, assists, creepScore: number
//   wardScore: number
//   isDead: boolean
//   respawnTimer: number
//   championStats: { attackDamage, abilityPower, armor, magicResist,
//                    currentHealth, maxHealth, ... } // as reported by the game
//
// GET /snapshot returns the last allgamedata snapshot received, re-encoded.
