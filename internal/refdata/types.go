package refdata

// Category identifies one of the three benchmarked prompt-length classes.
type Category string

const (
	CategoryShort  Category = "short"
	CategoryMedium Category = "medium"
	CategoryLong   Category = "long"
)

// Category thresholds on total (input + output) token count.
const (
	shortCategoryMaxTokens  = 500
	mediumCategoryMaxTokens = 2500
)

// CategoryForTokens maps a total token count to its prompt category.
// Totals at or below 500 are short, at or below 2500 medium, else long.
func CategoryForTokens(totalTokens int) Category {
	switch {
	case totalTokens <= shortCategoryMaxTokens:
		return CategoryShort
	case totalTokens <= mediumCategoryMaxTokens:
		return CategoryMedium
	default:
		return CategoryLong
	}
}

// OperatingPoint is one benchmarked measurement for a model: the energy
// drawn (with its spread) at a fixed reference token count, plus the
// observed latency and throughput at that point.
type OperatingPoint struct {
	AnchorTokens    int     `json:"anchor_tokens"`
	MeanWh          float64 `json:"mean_wh"`
	StdWh           float64 `json:"std_wh"`
	LatencySeconds  float64 `json:"latency_p50_seconds"`
	TokensPerSecond float64 `json:"tps_p50"`
}

// ModelProfile describes one benchmarked model and where it is hosted.
// NodePowerKw is the published inference node power draw; zero means
// unpublished, which disables the throughput-based energy method.
type ModelProfile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Provider    string  `json:"provider"`
	HostingKey  string  `json:"hosting_key"`
	SizeClass   string  `json:"size_class"`
	NodePowerKw float64 `json:"node_power_kw,omitempty"`

	Short  OperatingPoint `json:"short"`
	Medium OperatingPoint `json:"medium"`
	Long   OperatingPoint `json:"long"`
}

// Point returns the operating point for the given category.
func (m *ModelProfile) Point(c Category) OperatingPoint {
	switch c {
	case CategoryShort:
		return m.Short
	case CategoryMedium:
		return m.Medium
	default:
		return m.Long
	}
}

// InfrastructureProfile holds the per-hosting-provider multipliers used
// to turn compute energy into facility energy, water, and carbon.
type InfrastructureProfile struct {
	HostingKey        string  `json:"hosting_key"`
	DisplayName       string  `json:"display_name"`
	PUE               float64 `json:"pue"`
	WUEOnsiteLPerKwh  float64 `json:"wue_onsite_l_per_kwh"`
	WUEOffsiteLPerKwh float64 `json:"wue_offsite_l_per_kwh"`
	CIFKgCO2ePerKwh   float64 `json:"cif_kgco2e_per_kwh"`
}
