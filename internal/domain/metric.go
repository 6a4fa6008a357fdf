package domain

import (
	"time"
)

// EntityKind identifica o tipo de entidade auditada
type EntityKind string

const (
	EntityKindCampaign        EntityKind = "campaign"
	EntityKindKeyword         EntityKind = "keyword"
	EntityKindAd              EntityKind = "ad"
	EntityKindBusinessProfile EntityKind = "business_profile"
	EntityKindCitationSet     EntityKind = "citation_set"
	EntityKindReviewSet       EntityKind = "review_set"
	EntityKindGeneric         EntityKind = "generic"
)

// Valid retorna verdadeiro se o tipo de entidade é conhecido pelo motor de auditoria
func (k EntityKind) Valid() bool {
	switch k {
	case EntityKindCampaign, EntityKindKeyword, EntityKindAd,
		EntityKindBusinessProfile, EntityKindCitationSet, EntityKindReviewSet,
		EntityKindGeneric:
		return true
	}
	return false
}

// Nomes de contadores conhecidos pelos calculadores de KPI
const (
	CounterImpressions    = "impressions"
	CounterClicks         = "clicks"
	CounterConversions    = "conversions"
	CounterCost           = "cost"
	CounterQualityScore   = "quality_score"
	CounterCPC            = "cpc"
	CounterFieldsPresent  = "fields_present"
	CounterFieldsRequired = "fields_required"
	CounterRatingSum      = "rating_sum"
	CounterRatingCount    = "rating_count"
	CounterVerifiedCount  = "verified_count"
	CounterTotalCount     = "total_count"
	CounterValueGenerated = "value_generated"
	CounterCustomersStart = "customers_start"
	CounterCustomersLost  = "customers_lost"
	CounterCustomersNew   = "customers_new"
)

// MetricWindow delimita o período coberto pelos contadores.
// O motor não interpreta o período, serve apenas para rastreabilidade.
type MetricWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MetricRecord representa os contadores brutos normalizados de uma entidade
// (uma campanha, uma palavra-chave, um perfil de negócio, um conjunto de avaliações)
type MetricRecord struct {
	EntityID string             `json:"entity_id"`
	Kind     EntityKind         `json:"entity_kind"`
	Counters map[string]float64 `json:"counters"`
	Window   MetricWindow       `json:"window"`
}

// Counter retorna o valor de um contador, tratando contador ausente como zero
func (r *MetricRecord) Counter(name string) float64 {
	if r.Counters == nil {
		return 0
	}
	return r.Counters[name]
}

// HasCounter indica se o contador foi informado pelo colaborador,
// distinguindo "não informado" de "informado como zero"
func (r *MetricRecord) HasCounter(name string) bool {
	if r.Counters == nil {
		return false
	}
	_, ok := r.Counters[name]
	return ok
}
