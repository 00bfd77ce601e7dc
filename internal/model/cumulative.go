package model

// CumulativeStats are ratios and rates derived from a player's summed
// GameStats. They cannot be combined; derive them again from the combined
// GameStats instead.
type CumulativeStats struct {
	WellColumns [BoardWidth]float64      `json:"wellColumns"`
	ClearTypes  ClearTypes               `json:"clearTypes"`
	PPSSegments [PPSSegmentCount]float64 `json:"ppsSegments"`

	AllspinEfficiency float64 `json:"allspinEfficiency"`
	TEfficiency       float64 `json:"tEfficiency"`
	IEfficiency       float64 `json:"iEfficiency"`

	CheeseAPL    float64 `json:"cheeseAPL"`
	DownstackAPL float64 `json:"downstackAPL"`
	UpstackAPL   float64 `json:"upstackAPL"`

	APL float64 `json:"APL"`
	APP float64 `json:"APP"`
	KPP float64 `json:"KPP"`
	KPS float64 `json:"KPS"`
	APM float64 `json:"APM"`
	PPS float64 `json:"PPS"`

	BurstPPS float64 `json:"BurstPPS"`
	PlonkPPS float64 `json:"PlonkPPS"`
	PPSCoeff float64 `json:"PPSCoeff"`

	MidgameAPM float64 `json:"midgameAPM"`
	MidgamePPS float64 `json:"midgamePPS"`
	OpenerAPM  float64 `json:"openerAPM"`
	OpenerPPS  float64 `json:"openerPPS"`

	AttackCheesiness float64 `json:"attackCheesiness"`

	Garbage GarbageStats `json:"garbage"`

	SurgeAPM           float64 `json:"surgeAPM"`
	SurgeAPL           float64 `json:"surgeAPL"`
	SurgeDS            float64 `json:"surgeDS"`
	SurgePPS           float64 `json:"surgePPS"`
	SurgeLength        float64 `json:"surgeLength"`
	SurgeRate          float64 `json:"surgeRate"`
	SurgeSecsPerDS     float64 `json:"surgeSecsPerDS"`
	SurgeSecsPerCheese float64 `json:"surgeSecsPerCheese"`
	SurgeAllspin       float64 `json:"surgeAllspin"`

	DeathStats DeathStats `json:"deathStats"`
	KillStats  DeathStats `json:"killStats"`

	UpstackPPS   float64 `json:"upstackPPS"`
	DownstackPPS float64 `json:"downstackPPS"`

	DownstackingRatio float64 `json:"downstackingRatio"`
}

// PlayerCumulativeStats pairs a username with derived stats.
type PlayerCumulativeStats struct {
	Username string          `json:"username"`
	Stats    CumulativeStats `json:"stats"`
}
