package domain

import (
	"time"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account é uma conta de cliente do dashboard cujo marketing é auditado
type Account struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Nickname *string       `json:"nickname"`
	Status   AccountStatus `json:"status"`

	// AssumedOrderValue substitui o valor médio de pedido global da
	// configuração para esta conta, quando informado
	AssumedOrderValue *float64 `json:"assumed_order_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AccountResponse struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Nickname          *string       `json:"nickname"`
	Status            AccountStatus `json:"status"`
	AssumedOrderValue *float64      `json:"assumed_order_value"`
}

type UpdateAccountRequest struct {
	ID                string   `json:"id"`
	Nickname          *string  `json:"nickname,omitempty"`
	Status            *string  `json:"status,omitempty"`
	AssumedOrderValue *float64 `json:"assumed_order_value,omitempty"`
}
