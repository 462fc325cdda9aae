package valuation

import "dcf-screener/internal/types"

// DefaultTierName is reported for tickers no tier claims.
const DefaultTierName = "Uncategorized"

// DefaultAssumptions is the conservative large-cap profile applied when a
// ticker is unclassified: 5% near-term growth, 10% discount rate, 2.5%
// perpetual growth.
func DefaultAssumptions() types.AssumptionSet {
	return types.AssumptionSet{
		ShortTermGrowthRate: 0.05,
		DiscountRate:        0.10,
		PerpetualGrowthRate: 0.025,
	}
}

// Catalog maps tickers to tiers and each tier to its assumption set.
// Tiers are scanned in construction order; the first tier whose membership
// contains the ticker wins. Immutable once built.
type Catalog struct {
	tiers    []tierEntry
	defaults types.AssumptionSet
}

type tierEntry struct {
	name        string
	members     map[string]struct{}
	assumptions types.AssumptionSet
}

// NewCatalog builds a catalog from ordered tier definitions. Membership is
// matched on the ticker exactly as configured.
func NewCatalog(tiers []types.Tier, defaults types.AssumptionSet) *Catalog {
	c := &Catalog{
		tiers:    make([]tierEntry, 0, len(tiers)),
		defaults: defaults,
	}
	for _, t := range tiers {
		entry := tierEntry{
			name:        t.Name,
			members:     make(map[string]struct{}, len(t.Tickers)),
			assumptions: t.Assumptions,
		}
		for _, sym := range t.Tickers {
			entry.members[sym] = struct{}{}
		}
		c.tiers = append(c.tiers, entry)
	}
	return c
}

// Classify returns the tier name and assumption set for a ticker. Tickers
// outside every tier get DefaultTierName and the catalog's default set.
func (c *Catalog) Classify(ticker string) (string, types.AssumptionSet) {
	for _, t := range c.tiers {
		if _, ok := t.members[ticker]; ok {
			return t.name, t.assumptions
		}
	}
	return DefaultTierName, c.defaults
}

// Tiers returns the configured tier names in scan order.
func (c *Catalog) Tiers() []string {
	names := make([]string, 0, len(c.tiers))
	for _, t := range c.tiers {
		names = append(names, t.name)
	}
	return names
}
