package refdata

import (
	"sort"
)

// Catalog is the loaded, indexed reference data set: models by ID,
// infrastructure profiles by hosting key, and the precomputed min/max
// operating-point energy across the model population (the eco-score
// anchors). A Catalog is immutable after construction; live reload
// builds a fresh one and swaps the pointer.
type Catalog struct {
	models map[string]*ModelProfile
	infra  map[string]*InfrastructureProfile

	// Sorted model IDs for deterministic iteration.
	order []string

	minEnergyWh float64
	maxEnergyWh float64
}

// NewCatalog validates and indexes the two reference tables. Any
// structural or invariant violation returns a *DataError and no catalog.
func NewCatalog(models []ModelProfile, infra []InfrastructureProfile) (*Catalog, error) {
	if len(models) == 0 {
		return nil, dataErr("model_benchmarks", "model table is empty")
	}
	if len(infra) == 0 {
		return nil, dataErr("infrastructure", "infrastructure table is empty")
	}

	c := &Catalog{
		models: make(map[string]*ModelProfile, len(models)),
		infra:  make(map[string]*InfrastructureProfile, len(infra)),
	}

	for i := range infra {
		p := infra[i]
		if p.HostingKey == "" {
			return nil, dataErr("infrastructure", "profile %d: missing hosting_key", i)
		}
		if _, exists := c.infra[p.HostingKey]; exists {
			return nil, dataErr("infrastructure", "duplicate hosting_key %q", p.HostingKey)
		}
		if p.PUE < 1.0 {
			return nil, dataErr("infrastructure", "%s: pue %.3f below 1.0", p.HostingKey, p.PUE)
		}
		if p.WUEOnsiteLPerKwh < 0 || p.WUEOffsiteLPerKwh < 0 {
			return nil, dataErr("infrastructure", "%s: negative wue", p.HostingKey)
		}
		if p.CIFKgCO2ePerKwh < 0 {
			return nil, dataErr("infrastructure", "%s: negative cif", p.HostingKey)
		}
		c.infra[p.HostingKey] = &infra[i]
	}

	for i := range models {
		m := models[i]
		if m.ID == "" {
			return nil, dataErr("model_benchmarks", "model %d: missing id", i)
		}
		if _, exists := c.models[m.ID]; exists {
			return nil, dataErr("model_benchmarks", "duplicate model id %q", m.ID)
		}
		if m.HostingKey == "" {
			return nil, dataErr("model_benchmarks", "%s: missing hosting_key", m.ID)
		}
		if _, ok := c.infra[m.HostingKey]; !ok {
			return nil, dataErr("model_benchmarks", "%s: hosting_key %q not in infrastructure table", m.ID, m.HostingKey)
		}
		if err := validatePoints(m); err != nil {
			return nil, err
		}
		c.models[m.ID] = &models[i]
		c.order = append(c.order, m.ID)
	}
	sort.Strings(c.order)

	// Eco-score anchors: extremes of the benchmarked energy means.
	first := true
	for _, m := range c.models {
		for _, p := range []OperatingPoint{m.Short, m.Medium, m.Long} {
			if first || p.MeanWh < c.minEnergyWh {
				c.minEnergyWh = p.MeanWh
			}
			if first || p.MeanWh > c.maxEnergyWh {
				c.maxEnergyWh = p.MeanWh
			}
			first = false
		}
	}

	return c, nil
}

func validatePoints(m ModelProfile) error {
	points := []struct {
		cat Category
		p   OperatingPoint
	}{
		{CategoryShort, m.Short},
		{CategoryMedium, m.Medium},
		{CategoryLong, m.Long},
	}
	prevAnchor := 0
	prevMean := -1.0
	for _, pt := range points {
		if pt.p.AnchorTokens <= 0 {
			return dataErr("model_benchmarks", "%s/%s: anchor_tokens must be positive", m.ID, pt.cat)
		}
		if pt.p.AnchorTokens <= prevAnchor {
			return dataErr("model_benchmarks", "%s: anchors not strictly increasing at %s", m.ID, pt.cat)
		}
		if pt.p.MeanWh < 0 || pt.p.StdWh < 0 {
			return dataErr("model_benchmarks", "%s/%s: negative energy values", m.ID, pt.cat)
		}
		// Non-decreasing means guarantee the interpolator is monotonic.
		if pt.p.MeanWh < prevMean {
			return dataErr("model_benchmarks", "%s: mean energy decreases at %s", m.ID, pt.cat)
		}
		if pt.p.LatencySeconds < 0 || pt.p.TokensPerSecond < 0 {
			return dataErr("model_benchmarks", "%s/%s: negative latency or throughput", m.ID, pt.cat)
		}
		prevAnchor = pt.p.AnchorTokens
		prevMean = pt.p.MeanWh
	}
	return nil
}

// Model returns the profile for the given ID.
// Returns (profile, true) if found, (nil, false) if not found.
func (c *Catalog) Model(id string) (*ModelProfile, bool) {
	m, ok := c.models[id]
	return m, ok
}

// Infrastructure returns the profile for the given hosting key.
// Returns (profile, true) if found, (nil, false) if not found.
func (c *Catalog) Infrastructure(key string) (*InfrastructureProfile, bool) {
	p, ok := c.infra[key]
	return p, ok
}

// ModelIDs returns all model IDs in sorted order.
func (c *Catalog) ModelIDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Models returns all model profiles in sorted ID order.
func (c *Catalog) Models() []*ModelProfile {
	out := make([]*ModelProfile, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.models[id])
	}
	return out
}

// ModelCount returns the number of models in the catalog.
func (c *Catalog) ModelCount() int {
	return len(c.models)
}

// EnergyRange returns the smallest and largest benchmarked mean energy
// across every model and operating point.
func (c *Catalog) EnergyRange() (minWh, maxWh float64) {
	return c.minEnergyWh, c.maxEnergyWh
}
