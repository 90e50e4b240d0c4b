package ruleset

import (
	"fmt"

	"github.com/shopspring/decimal"

	"dispatch/internal/entities"
)

func ToDomain(setDB *RuleSetDB, bandsDB []RuleBandDB) (*entities.EarningsRuleSet, error) {
	bands := make([]entities.RuleBand, 0, len(bandsDB))
	for i := range bandsDB {
		band, err := toBandDomain(&bandsDB[i])
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}
		bands = append(bands, *band)
	}

	return &entities.EarningsRuleSet{
		ID:        setDB.ID,
		Version:   setDB.Version,
		Active:    setDB.Active,
		Bands:     bands,
		CreatedAt: setDB.CreatedAt,
	}, nil
}

func toBandDomain(b *RuleBandDB) (*entities.RuleBand, error) {
	minFee, err := decimal.NewFromString(b.MinFee)
	if err != nil {
		return nil, fmt.Errorf("parse min fee %q: %w", b.MinFee, err)
	}
	maxFee, err := decimal.NewFromString(b.MaxFee)
	if err != nil {
		return nil, fmt.Errorf("parse max fee %q: %w", b.MaxFee, err)
	}

	driverFixed, err := parseMoney(b.DriverFixed)
	if err != nil {
		return nil, fmt.Errorf("parse driver fixed: %w", err)
	}
	driverPercentage, err := parseMoney(b.DriverPercentage)
	if err != nil {
		return nil, fmt.Errorf("parse driver percentage: %w", err)
	}
	companyFixed, err := parseMoney(b.CompanyFixed)
	if err != nil {
		return nil, fmt.Errorf("parse company fixed: %w", err)
	}
	companyPercentage, err := parseMoney(b.CompanyPercentage)
	if err != nil {
		return nil, fmt.Errorf("parse company percentage: %w", err)
	}

	return &entities.RuleBand{
		MinFee:            minFee,
		MaxFee:            maxFee,
		DriverFixed:       driverFixed,
		DriverPercentage:  driverPercentage,
		CompanyFixed:      companyFixed,
		CompanyPercentage: companyPercentage,
	}, nil
}

func parseMoney(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	v, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
