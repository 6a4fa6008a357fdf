package auditing

import (
	"errors"
	"fmt"
)

// ErrEmptyInput é retornado quando uma auditoria é invocada sem nenhum registro.
// É um erro de entrada, não uma falha transitória: nada a repetir, o chamador
// deve corrigir a entrada e reenviar.
var ErrEmptyInput = errors.New("nenhum registro de métricas informado para a auditoria")

// InvalidRecordError indica um registro com tipo de entidade desconhecido.
// Contadores ausentes não são erros, apenas tipos não reconhecidos.
type InvalidRecordError struct {
	EntityID string
	Kind     string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("tipo de entidade desconhecido %q no registro da entidade %q", e.Kind, e.EntityID)
}

// DuplicateRuleError indica uma configuração incorreta do registro de regras:
// duas regras com o mesmo id. Erro de programação detectado na inicialização.
type DuplicateRuleError struct {
	RuleID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("regra duplicada no registro: %q", e.RuleID)
}

// RuleConfigError indica uma regra que referencia um KPI que o calculador
// nunca produz, na condição ou nos templates. Detectado na construção do
// registro, nunca em tempo de avaliação.
type RuleConfigError struct {
	RuleID string
	Kpi    string
	Where  string
}

func (e *RuleConfigError) Error() string {
	return fmt.Sprintf("regra %q referencia KPI desconhecido %q em %s", e.RuleID, e.Kpi, e.Where)
}
