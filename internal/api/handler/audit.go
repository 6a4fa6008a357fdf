package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-audit-api/pkg/apiErrors"
)

// AdHocAuditRequest é o corpo da auditoria avulsa: registros de métricas
// mais ajustes opcionais de configuração
type AdHocAuditRequest struct {
	Records   []domain.MetricRecord     `json:"records"`
	Overrides *reporting.AuditOverrides `json:"overrides,omitempty"`
}

// IngestRecordsRequest é o corpo da ingestão de métricas de uma conta
type IngestRecordsRequest struct {
	Records []domain.MetricRecord `json:"records"`
}

// AuditRuleResponse é a visão pública de uma regra registrada
type AuditRuleResponse struct {
	ID        string            `json:"id"`
	Domain    domain.RuleDomain `json:"domain"`
	Severity  domain.Severity   `json:"severity"`
	Kpi       string            `json:"kpi"`
	Operator  domain.Operator   `json:"operator"`
	Threshold float64           `json:"threshold"`
	Message   string            `json:"message"`
	Action    string            `json:"action"`
	Impact    string            `json:"impact"`
}

// RunAdHocAudit executa uma auditoria sobre registros enviados no corpo da
// requisição, sem persistir nada
func RunAdHocAudit(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunAdHocAudit")

		w.Header().Set("Content-Type", "application/json")

		var req AdHocAuditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		result, err := service.RunAdHoc(req.Records, req.Overrides)
		if err != nil {
			logrus.Error("Error running ad-hoc audit:", err)
			writeAuditError(w, err)
			return
		}

		if err := json.NewEncoder(w).Encode(result); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	}
}

// IngestMetricRecords recebe e persiste registros de métricas de uma conta
func IngestMetricRecords(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - IngestMetricRecords")

		w.Header().Set("Content-Type", "application/json")

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		var req IngestRecordsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if len(req.Records) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum registro de métricas informado", nil)
			return
		}

		if err := service.IngestRecords(accountID, req.Records); err != nil {
			logrus.Error("Error ingesting metric records:", err)

			switch {
			case errors.Is(err, reporting.ErrAccountNotFound):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Conta não encontrada", map[string]interface{}{
					"account_id": accountID,
				})

			default:
				apiErrors.WriteError(w, apiErrors.ErrInvalidMetricRecord, err.Error(), nil)
			}
			return
		}

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Registros de métricas ingeridos com sucesso",
			"records": len(req.Records),
			"account": accountID,
		})
	}
}

// RunAccountAudit executa uma auditoria sobre as métricas persistidas da
// conta e persiste o resultado
func RunAccountAudit(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunAccountAudit")

		w.Header().Set("Content-Type", "application/json")

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		entry, err := service.RunForAccount(accountID)
		if err != nil {
			logrus.Error("Error running account audit:", err)

			switch {
			case errors.Is(err, reporting.ErrAccountNotFound):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Conta não encontrada", map[string]interface{}{
					"account_id": accountID,
				})

			case errors.Is(err, reporting.ErrNoMetricRecords):
				apiErrors.WriteError(w, apiErrors.ErrNoMetricRecords, "Nenhum registro de métricas ingerido para a conta", map[string]interface{}{
					"account_id": accountID,
				})

			default:
				writeAuditError(w, err)
			}
			return
		}

		if err := json.NewEncoder(w).Encode(entry); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	}
}

// GetLatestAccountAudit retorna o resultado da última auditoria da conta
func GetLatestAccountAudit(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		entry, err := service.LatestForAccount(accountID)
		if err != nil {
			logrus.Error("Error fetching latest audit:", err)

			if errors.Is(err, reporting.ErrAccountNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Conta não encontrada", map[string]interface{}{
					"account_id": accountID,
				})
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar auditorias da conta", nil)
			return
		}

		if entry == nil {
			apiErrors.WriteError(w, apiErrors.ErrAuditNotFound, "Nenhuma auditoria encontrada para a conta", map[string]interface{}{
				"account_id": accountID,
			})
			return
		}

		if err := json.NewEncoder(w).Encode(entry); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	}
}

// ListAuditRules lista as regras registradas no motor de auditoria.
// Aceita o filtro opcional de domínio via query string (?domain=advertising)
func ListAuditRules(auditor auditing.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		filter := domain.RuleDomain(r.URL.Query().Get("domain"))

		rules := auditor.Rules()
		response := make([]AuditRuleResponse, 0, len(rules))
		for _, rule := range rules {
			if filter != domain.DomainAll && rule.Domain != filter {
				continue
			}
			response = append(response, AuditRuleResponse{
				ID:        rule.ID,
				Domain:    rule.Domain,
				Severity:  rule.Severity,
				Kpi:       rule.Condition.Kpi,
				Operator:  rule.Condition.Op,
				Threshold: rule.Condition.Threshold,
				Message:   rule.Message,
				Action:    rule.Action,
				Impact:    rule.Impact,
			})
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	}
}

// writeAuditError mapeia erros do motor de auditoria para códigos da API
func writeAuditError(w http.ResponseWriter, err error) {
	var invalidErr *auditing.InvalidRecordError
	switch {
	case errors.Is(err, auditing.ErrEmptyInput):
		apiErrors.WriteError(w, apiErrors.ErrNoMetricRecords, "Nenhum registro de métricas informado", nil)

	case errors.As(err, &invalidErr):
		apiErrors.WriteError(w, apiErrors.ErrInvalidMetricRecord, invalidErr.Error(), map[string]interface{}{
			"entity_id": invalidErr.EntityID,
		})

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao executar auditoria", nil)
	}
}
