package domain

import (
	"fmt"
	"strings"
)

// Severity classifica a urgência de um achado em cinco níveis ordinais
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "info",
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON serializa a severidade com o nome legível, não o ordinal
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON aceita o nome legível produzido por MarshalJSON
func (s *Severity) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	for sev, n := range severityNames {
		if n == name {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("severidade desconhecida: %s", name)
}

// RuleDomain agrupa as regras por área do dashboard
type RuleDomain string

const (
	DomainAdvertising RuleDomain = "advertising"
	DomainLocalSearch RuleDomain = "local_search"
	DomainPipeline    RuleDomain = "pipeline"

	// DomainAll é o filtro vazio: avalia regras de todos os domínios
	DomainAll RuleDomain = ""
)

// Operator identifica a comparação aplicada pela condição de uma regra
type Operator string

const (
	OperatorLessThan    Operator = "lt"
	OperatorGreaterThan Operator = "gt"
	OperatorBetween     Operator = "between"
)

// Condition é o predicado puro e serializável de uma regra: compara um único
// KPI do snapshot contra um limiar. O avaliador só a aplica quando o KPI
// referenciado está definido.
type Condition struct {
	Kpi        string   `json:"kpi"`
	Op         Operator `json:"op"`
	Threshold  float64  `json:"threshold"`
	UpperBound float64  `json:"upper_bound,omitempty"`
}

// Eval aplica a comparação sobre um valor de KPI já definido
func (c Condition) Eval(value float64) bool {
	switch c.Op {
	case OperatorLessThan:
		return value < c.Threshold
	case OperatorGreaterThan:
		return value > c.Threshold
	case OperatorBetween:
		return value >= c.Threshold && value <= c.UpperBound
	}
	return false
}

// WithThreshold devolve uma cópia da condição com o limiar substituído.
// Usado pelos overrides por chamada do AuditConfig sem mutar o registro.
func (c Condition) WithThreshold(threshold float64) Condition {
	c.Threshold = threshold
	return c
}

// AuditRule é uma regra de diagnóstico declarativa: dados puros mais um
// predicado puro, sem acesso a armazenamento nem estado oculto
type AuditRule struct {
	ID        string     `json:"id"`
	Domain    RuleDomain `json:"domain"`
	Severity  Severity   `json:"severity"`
	Condition Condition  `json:"condition"`

	// SeverityFor, quando presente, calcula a severidade a partir do valor
	// do KPI que disparou a regra (ex.: completude com severidade
	// proporcional à lacuna). Deve ser pura.
	SeverityFor func(value float64) Severity `json:"-"`

	// Templates com placeholders {kpi} (valor bruto) e {kpi%} (forma percentual)
	Message string `json:"message_template"`
	Action  string `json:"recommended_action_template"`
	Impact  string `json:"estimated_impact_template"`
}
