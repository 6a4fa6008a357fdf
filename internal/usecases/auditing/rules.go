package auditing

import (
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

// Thresholds reúne os limiares das regras embutidas. Vêm da configuração
// da aplicação, não de constantes espalhadas pelos pontos de chamada.
type Thresholds struct {
	MinQualityScore     float64
	MaxCPC              float64
	MinCTR              float64
	MinROAS             float64
	MinConversionRate   float64
	MinCompleteness     float64
	MinAverageRating    float64
	MinVerifiedCitation float64
	MinROI              float64
	MaxChurnRate        float64
	MinAcquisitionRate  float64
}

// DefaultThresholds são os limiares herdados dos módulos legados do dashboard
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinQualityScore:     7,
		MaxCPC:              4.0,
		MinCTR:              0.02,
		MinROAS:             1.0,
		MinConversionRate:   0.01,
		MinCompleteness:     1.0,
		MinAverageRating:    4.5,
		MinVerifiedCitation: 4,
		MinROI:              0,
		MaxChurnRate:        0.10,
		MinAcquisitionRate:  0.05,
	}
}

// Ids estáveis das regras embutidas
const (
	RuleKeywordQualityLow      = "keyword_quality_low"
	RuleKeywordCPCHigh         = "keyword_cpc_high"
	RuleAdCTRLow               = "ad_ctr_low"
	RuleCampaignROASLow        = "campaign_roas_low"
	RuleCampaignConversionLow  = "campaign_conversion_low"
	RuleProfileIncomplete      = "profile_incomplete"
	RuleReviewsRatingLow       = "reviews_rating_low"
	RuleCitationsUnverified    = "citations_unverified"
	RulePipelineROINegative    = "pipeline_roi_negative"
	RulePipelineChurnHigh      = "pipeline_churn_high"
	RulePipelineAcquisitionLow = "pipeline_acquisition_low"
)

// completenessSeverity escala a severidade da regra de completude de perfil
// com o tamanho da lacuna: faltar metade do perfil pesa mais que faltar um campo
func completenessSeverity(completeness float64) domain.Severity {
	gap := 1.0 - completeness
	switch {
	case gap >= 0.5:
		return domain.SeverityHigh
	case gap >= 0.25:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// builtinRules é a tabela declarativa das regras de diagnóstico do dashboard.
// A ordem define o desempate na ordenação dos achados.
func builtinRules(t Thresholds) []domain.AuditRule {
	return []domain.AuditRule{
		{
			ID:       RuleAdCTRLow,
			Domain:   domain.DomainAdvertising,
			Severity: domain.SeverityHigh,
			Condition: domain.Condition{
				Kpi: domain.KpiCTR, Op: domain.OperatorLessThan, Threshold: t.MinCTR,
			},
			Message: "CTR de {ctr%} abaixo do mínimo recomendado de 2%",
			Action:  "Melhore o CTR dos anúncios: revise criativos, segmentação e chamadas para ação",
			Impact:  "Elevar o CTR acima de 2% tende a reduzir o CPC e ampliar o alcance com o mesmo orçamento",
		},
		{
			ID:       RuleKeywordQualityLow,
			Domain:   domain.DomainAdvertising,
			Severity: domain.SeverityMedium,
			Condition: domain.Condition{
				Kpi: domain.KpiQualityScore, Op: domain.OperatorLessThan, Threshold: t.MinQualityScore,
			},
			Message: "Índice de qualidade {quality_score} abaixo de 7",
			Action:  "Melhore a qualidade das palavras-chave: alinhe anúncio, termo e página de destino",
			Impact:  "Índices de qualidade maiores reduzem o custo por clique leiloado",
		},
		{
			ID:       RuleKeywordCPCHigh,
			Domain:   domain.DomainAdvertising,
			Severity: domain.SeverityMedium,
			Condition: domain.Condition{
				Kpi: domain.KpiCPC, Op: domain.OperatorGreaterThan, Threshold: t.MaxCPC,
			},
			Message: "CPC de ${cpc} acima do teto de $4.00",
			Action:  "Otimize as palavras-chave de alto custo: pause termos caros ou ajuste lances",
			Impact:  "Reduzir o CPC médio libera orçamento para termos com melhor retorno",
		},
		{
			ID:       RuleCampaignROASLow,
			Domain:   domain.DomainAdvertising,
			Severity: domain.SeverityHigh,
			Condition: domain.Condition{
				Kpi: domain.KpiROAS, Op: domain.OperatorLessThan, Threshold: t.MinROAS,
			},
			Message: "Retorno sobre investimento em anúncios de {roas}x, abaixo de 1x",
			Action:  "Revise a campanha: o gasto em anúncios supera a receita estimada das conversões",
			Impact:  "Campanhas abaixo de 1x de ROAS operam no prejuízo",
		},
		{
			ID:       RuleCampaignConversionLow,
			Domain:   domain.DomainAdvertising,
			Severity: domain.SeverityLow,
			Condition: domain.Condition{
				Kpi: domain.KpiConversionRate, Op: domain.OperatorLessThan, Threshold: t.MinConversionRate,
			},
			Message: "Taxa de conversão de {conversion_rate%} abaixo de 1%",
			Action:  "Revise a página de destino e a oferta para converter mais cliques em resultados",
			Impact:  "Pequenos ganhos de conversão reduzem diretamente o custo por conversão",
		},
		{
			ID:       RuleProfileIncomplete,
			Domain:   domain.DomainLocalSearch,
			Severity: domain.SeverityLow,
			Condition: domain.Condition{
				Kpi: domain.KpiCompleteness, Op: domain.OperatorLessThan, Threshold: t.MinCompleteness,
			},
			SeverityFor: completenessSeverity,
			Message:     "Perfil do negócio {completeness%} completo",
			Action:      "Complete o perfil: preencha todos os campos obrigatórios da ficha local",
			Impact:      "Perfis completos recebem mais destaque nos resultados de busca local",
		},
		{
			ID:       RuleReviewsRatingLow,
			Domain:   domain.DomainLocalSearch,
			Severity: domain.SeverityMedium,
			Condition: domain.Condition{
				Kpi: domain.KpiAverageRating, Op: domain.OperatorLessThan, Threshold: t.MinAverageRating,
			},
			Message: "Avaliação média de {average_rating} abaixo de 4.5",
			Action:  "Melhore a avaliação: responda críticas e incentive clientes satisfeitos a avaliar",
			Impact:  "Avaliações acima de 4.5 aumentam a taxa de cliques na ficha local",
		},
		{
			ID:       RuleCitationsUnverified,
			Domain:   domain.DomainLocalSearch,
			Severity: domain.SeverityMedium,
			Condition: domain.Condition{
				Kpi: domain.KpiVerifiedCitations, Op: domain.OperatorLessThan, Threshold: t.MinVerifiedCitation,
			},
			Message: "Apenas {verified_citations} citações verificadas",
			Action:  "Reivindique mais citações: verifique a presença do negócio nos diretórios principais",
			Impact:  "Citações verificadas consistentes fortalecem o posicionamento local",
		},
		{
			ID:       RulePipelineROINegative,
			Domain:   domain.DomainPipeline,
			Severity: domain.SeverityHigh,
			Condition: domain.Condition{
				Kpi: domain.KpiROI, Op: domain.OperatorLessThan, Threshold: t.MinROI,
			},
			Message: "ROI negativo de {roi%}",
			Action:  "Reavalie o investimento: o valor gerado não cobre o custo no período",
			Impact:  "Corrigir iniciativas de ROI negativo recupera margem imediatamente",
		},
		{
			ID:       RulePipelineChurnHigh,
			Domain:   domain.DomainPipeline,
			Severity: domain.SeverityMedium,
			Condition: domain.Condition{
				Kpi: domain.KpiChurnRate, Op: domain.OperatorGreaterThan, Threshold: t.MaxChurnRate,
			},
			Message: "Churn de {churn_rate%} acima de 10%",
			Action:  "Investigue as perdas de clientes: priorize retenção sobre aquisição",
			Impact:  "Reduzir o churn preserva a receita recorrente da base atual",
		},
		{
			ID:       RulePipelineAcquisitionLow,
			Domain:   domain.DomainPipeline,
			Severity: domain.SeverityLow,
			Condition: domain.Condition{
				Kpi: domain.KpiAcquisitionRate, Op: domain.OperatorLessThan, Threshold: t.MinAcquisitionRate,
			},
			Message: "Taxa de aquisição de {acquisition_rate%} abaixo de 5%",
			Action:  "Amplie os canais de aquisição para repor a base de clientes",
			Impact:  "Aquisição consistente sustenta o crescimento da carteira",
		},
	}
}

// DefaultRegistry constrói o registro com as regras embutidas do dashboard.
// Qualquer erro aqui é de configuração e deve interromper a inicialização.
func DefaultRegistry(t Thresholds) (*Registry, error) {
	registry := NewRegistry()
	for _, rule := range builtinRules(t) {
		if err := registry.Register(rule); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
