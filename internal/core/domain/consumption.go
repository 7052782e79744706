package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ServiceKind identifies a priced operation.
type ServiceKind string

const (
	ServiceAnalysis        ServiceKind = "analysis"
	ServiceTransform       ServiceKind = "transform"
	ServicePremiumInsights ServiceKind = "premium_insights"
)

// ParseServiceKind validates a service kind string.
func ParseServiceKind(s string) (ServiceKind, error) {
	switch ServiceKind(s) {
	case ServiceAnalysis, ServiceTransform, ServicePremiumInsights:
		return ServiceKind(s), nil
	}
	return "", fmt.Errorf("unknown service kind %q", s)
}

// ConsumptionEntry is one append-only usage record, written after a
// successful debit and completed work.
type ConsumptionEntry struct {
	ID          uuid.UUID   `json:"id"`
	UserKey     string      `json:"user_key"`
	TokenQty    int64       `json:"tokens_consumed"`
	ServiceKind ServiceKind `json:"service_kind"`
	WorkItemID  *string     `json:"work_item_id,omitempty"`
	Description *string     `json:"description,omitempty"`
	ConsumedAt  time.Time   `json:"consumed_at"`
}
