package auditing

import (
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

// merged acumula os contadores de todos os registros de uma mesma entidade
type merged struct {
	counters map[string]float64
	present  map[string]bool
}

func (m *merged) value(name string) float64 {
	return m.counters[name]
}

func (m *merged) has(name string) bool {
	return m.present[name]
}

// ComputeSnapshot deriva o KpiSnapshot de uma entidade a partir dos seus
// registros de métricas. Função pura e total: contador ausente vale zero,
// denominador zero produz KPI indefinido. Falha apenas com
// InvalidRecordError quando o tipo de entidade não é reconhecido.
func ComputeSnapshot(records []domain.MetricRecord, assumedOrderValue float64) (*domain.KpiSnapshot, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	m := &merged{
		counters: make(map[string]float64),
		present:  make(map[string]bool),
	}

	kinds := make(map[domain.EntityKind]bool)
	for i := range records {
		r := &records[i]
		if !r.Kind.Valid() {
			return nil, &InvalidRecordError{EntityID: r.EntityID, Kind: string(r.Kind)}
		}
		kinds[r.Kind] = true

		for name, value := range r.Counters {
			m.counters[name] += value
			m.present[name] = true
		}
	}

	snapshot := &domain.KpiSnapshot{
		EntityID: records[0].EntityID,
		Kind:     records[0].Kind,
		Kpis:     make(map[string]domain.KpiValue),
	}

	for kind := range kinds {
		switch kind {
		case domain.EntityKindCampaign, domain.EntityKindKeyword, domain.EntityKindAd:
			computeAdvertisingKpis(snapshot, m, assumedOrderValue)
		case domain.EntityKindBusinessProfile, domain.EntityKindCitationSet, domain.EntityKindReviewSet:
			computeLocalSearchKpis(snapshot, m)
		case domain.EntityKindGeneric:
			computePipelineKpis(snapshot, m)
		}
	}

	return snapshot, nil
}

// computeAdvertisingKpis deriva as razões de anúncios: CTR, taxa de conversão,
// CPC, custo por conversão e ROAS (com valor médio de pedido configurável)
func computeAdvertisingKpis(s *domain.KpiSnapshot, m *merged, assumedOrderValue float64) {
	impressions := m.value(domain.CounterImpressions)
	clicks := m.value(domain.CounterClicks)
	conversions := m.value(domain.CounterConversions)
	cost := m.value(domain.CounterCost)

	s.Kpis[domain.KpiCTR] = domain.Ratio(clicks, impressions,
		domain.CounterClicks, domain.CounterImpressions)
	s.Kpis[domain.KpiConversionRate] = domain.Ratio(conversions, clicks,
		domain.CounterConversions, domain.CounterClicks)
	s.Kpis[domain.KpiCostPerConversion] = domain.Ratio(cost, conversions,
		domain.CounterCost, domain.CounterConversions)
	s.Kpis[domain.KpiROAS] = domain.Ratio(conversions*assumedOrderValue, cost,
		domain.CounterConversions, domain.CounterCost)

	// CPC derivado de custo/cliques; colaboradores que só conhecem o CPC
	// consolidado podem informá-lo direto como contador
	cpc := domain.Ratio(cost, clicks, domain.CounterCost, domain.CounterClicks)
	if !cpc.Defined && m.has(domain.CounterCPC) {
		cpc = domain.DefinedKpi(m.value(domain.CounterCPC), domain.CounterCPC)
	}
	s.Kpis[domain.KpiCPC] = cpc

	// Índice de qualidade é repasse direto: só definido quando informado,
	// para que "sem dado" nunca leia como "qualidade zero"
	if m.has(domain.CounterQualityScore) {
		s.Kpis[domain.KpiQualityScore] = domain.DefinedKpi(
			m.value(domain.CounterQualityScore), domain.CounterQualityScore)
	} else {
		s.Kpis[domain.KpiQualityScore] = domain.UndefinedKpi(domain.CounterQualityScore)
	}
}

// computeLocalSearchKpis deriva completude de perfil, avaliação média e
// razão de citações verificadas
func computeLocalSearchKpis(s *domain.KpiSnapshot, m *merged) {
	s.Kpis[domain.KpiCompleteness] = domain.Ratio(
		m.value(domain.CounterFieldsPresent), m.value(domain.CounterFieldsRequired),
		domain.CounterFieldsPresent, domain.CounterFieldsRequired)

	s.Kpis[domain.KpiAverageRating] = domain.Ratio(
		m.value(domain.CounterRatingSum), m.value(domain.CounterRatingCount),
		domain.CounterRatingSum, domain.CounterRatingCount)

	s.Kpis[domain.KpiVerifiedCitationRatio] = domain.Ratio(
		m.value(domain.CounterVerifiedCount), m.value(domain.CounterTotalCount),
		domain.CounterVerifiedCount, domain.CounterTotalCount)

	if m.has(domain.CounterVerifiedCount) {
		s.Kpis[domain.KpiVerifiedCitations] = domain.DefinedKpi(
			m.value(domain.CounterVerifiedCount), domain.CounterVerifiedCount)
	} else {
		s.Kpis[domain.KpiVerifiedCitations] = domain.UndefinedKpi(domain.CounterVerifiedCount)
	}
}

// computePipelineKpis deriva as razões genéricas de pipeline sobre contadores
// fornecidos pelo chamador
func computePipelineKpis(s *domain.KpiSnapshot, m *merged) {
	cost := m.value(domain.CounterCost)
	s.Kpis[domain.KpiROI] = domain.Ratio(
		m.value(domain.CounterValueGenerated)-cost, cost,
		domain.CounterValueGenerated, domain.CounterCost)

	s.Kpis[domain.KpiChurnRate] = domain.Ratio(
		m.value(domain.CounterCustomersLost), m.value(domain.CounterCustomersStart),
		domain.CounterCustomersLost, domain.CounterCustomersStart)

	s.Kpis[domain.KpiAcquisitionRate] = domain.Ratio(
		m.value(domain.CounterCustomersNew), m.value(domain.CounterCustomersStart),
		domain.CounterCustomersNew, domain.CounterCustomersStart)
}

// knownKpis é o conjunto de KPIs que os calculadores produzem. Usado na
// validação do registro de regras para falhar cedo em referências inválidas.
var knownKpis = map[string]bool{
	domain.KpiCTR:                   true,
	domain.KpiConversionRate:        true,
	domain.KpiCPC:                   true,
	domain.KpiCostPerConversion:     true,
	domain.KpiROAS:                  true,
	domain.KpiQualityScore:          true,
	domain.KpiCompleteness:          true,
	domain.KpiAverageRating:         true,
	domain.KpiVerifiedCitationRatio: true,
	domain.KpiVerifiedCitations:     true,
	domain.KpiROI:                   true,
	domain.KpiChurnRate:             true,
	domain.KpiAcquisitionRate:       true,
}
