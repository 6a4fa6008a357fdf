package domain

import (
	"time"
)

// Finding é o resultado materializado de uma regra disparada contra uma
// entidade. Imutável depois de produzido.
type Finding struct {
	RuleID         string   `json:"rule_id"`
	EntityID       string   `json:"entity_id"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Action         string   `json:"action"`
	ImpactEstimate string   `json:"impact_estimate"`
}

// SeverityWeights define o peso de cada severidade no cálculo do score.
// Tratado como configuração, não como constante embutida.
type SeverityWeights struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// DefaultSeverityWeights são os pesos padrão do score de saúde
func DefaultSeverityWeights() SeverityWeights {
	return SeverityWeights{
		Critical: 25,
		High:     15,
		Medium:   8,
		Low:      3,
		Info:     0,
	}
}

// Weight retorna o peso configurado para uma severidade
func (w SeverityWeights) Weight(s Severity) int {
	switch s {
	case SeverityCritical:
		return w.Critical
	case SeverityHigh:
		return w.High
	case SeverityMedium:
		return w.Medium
	case SeverityLow:
		return w.Low
	}
	return w.Info
}

// AuditConfig é a única superfície de configuração do motor de auditoria
type AuditConfig struct {
	// AssumedOrderValue é o valor médio de pedido assumido no cálculo de ROAS
	AssumedOrderValue float64 `json:"assumed_order_value"`

	// DomainFilter restringe a avaliação a um domínio; vazio avalia todos
	DomainFilter RuleDomain `json:"domain_filter,omitempty"`

	// RuleThresholds substitui o limiar de regras específicas por id,
	// sem mutar o registro de regras
	RuleThresholds map[string]float64 `json:"rule_thresholds,omitempty"`

	// SeverityWeights ajusta os pesos do score; zero usa os pesos padrão
	SeverityWeights SeverityWeights `json:"severity_weights"`
}

// AuditResult é a saída de uma execução de auditoria: achados ordenados,
// score agregado de saúde (0-100) e contagens de resumo. Criado a cada
// invocação e nunca mutado depois.
type AuditResult struct {
	Findings            []Finding `json:"findings"`
	Score               int       `json:"score"`
	IssueCount          int       `json:"issue_count"`
	RecommendationCount int       `json:"recommendation_count"`
}

// AuditResultEntry é um resultado de auditoria persistido para uma conta
type AuditResultEntry struct {
	ID        int64        `json:"id"`
	RunID     string       `json:"run_id"`
	AccountID string       `json:"account_id"`
	Result    *AuditResult `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
}

// MetricRecordEntry é um MetricRecord persistido, vinculado a uma conta
type MetricRecordEntry struct {
	ID        int64        `json:"id"`
	AccountID string       `json:"account_id"`
	Record    MetricRecord `json:"record"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
