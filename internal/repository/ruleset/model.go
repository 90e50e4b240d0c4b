package ruleset

import "time"

type RuleSetDB struct {
	ID        int64
	Version   int
	Active    bool
	CreatedAt time.Time
}

type RuleBandDB struct {
	MinFee string
	MaxFee string

	DriverFixed       *string
	DriverPercentage  *string
	CompanyFixed      *string
	CompanyPercentage *string
}
