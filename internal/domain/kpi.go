package domain

// Nomes de KPIs produzidos pelo calculador
const (
	KpiCTR                   = "ctr"
	KpiConversionRate        = "conversion_rate"
	KpiCPC                   = "cpc"
	KpiCostPerConversion     = "cost_per_conversion"
	KpiROAS                  = "roas"
	KpiQualityScore          = "quality_score"
	KpiCompleteness          = "completeness"
	KpiAverageRating         = "average_rating"
	KpiVerifiedCitationRatio = "verified_citation_ratio"
	KpiVerifiedCitations     = "verified_citations"
	KpiROI                   = "roi"
	KpiChurnRate             = "churn_rate"
	KpiAcquisitionRate       = "acquisition_rate"
)

// KpiValue é o valor de um KPI derivado. Um KPI cujo denominador é zero
// é representado como indefinido (Defined=false), nunca como zero nem como
// valor sentinela — regras que dependem dele devem ser ignoradas.
type KpiValue struct {
	Value       float64  `json:"value"`
	Defined     bool     `json:"defined"`
	DerivedFrom []string `json:"derived_from,omitempty"`
}

// DefinedKpi cria um KPI com valor conhecido
func DefinedKpi(value float64, derivedFrom ...string) KpiValue {
	return KpiValue{Value: value, Defined: true, DerivedFrom: derivedFrom}
}

// UndefinedKpi cria um KPI sem dados suficientes para ser calculado
func UndefinedKpi(derivedFrom ...string) KpiValue {
	return KpiValue{Defined: false, DerivedFrom: derivedFrom}
}

// Ratio deriva um KPI de razão, marcando como indefinido quando o denominador é zero
func Ratio(numerator, denominator float64, derivedFrom ...string) KpiValue {
	if denominator == 0 {
		return UndefinedKpi(derivedFrom...)
	}
	return DefinedKpi(numerator/denominator, derivedFrom...)
}

// KpiSnapshot é o conjunto de KPIs derivados dos MetricRecords de uma entidade
type KpiSnapshot struct {
	EntityID string              `json:"entity_id"`
	Kind     EntityKind          `json:"entity_kind"`
	Kpis     map[string]KpiValue `json:"kpis"`
}

// Get retorna o KPI nomeado e se ele existe no snapshot
func (s *KpiSnapshot) Get(name string) (KpiValue, bool) {
	if s == nil || s.Kpis == nil {
		return KpiValue{}, false
	}
	v, ok := s.Kpis[name]
	return v, ok
}
