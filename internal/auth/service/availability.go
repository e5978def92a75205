package service

import (
	"context"
	"strings"

	"github.com/pkravets/huddle-auth/internal/auth/domain"
	"github.com/pkravets/huddle-auth/internal/auth/repository"
	"github.com/pkravets/huddle-auth/internal/auth/service/dto"
	"github.com/pkravets/huddle-auth/internal/common/logger"
)

// AvailabilityChecker answers "is this username/email/handle taken" with an
// exact-match lookup. No normalization: values differing only in case are
// distinct, and the input is echoed back verbatim.
type AvailabilityChecker struct {
	repo repository.UserRepository
	log  *logger.Logger
}

func NewAvailabilityChecker(repo repository.UserRepository, log *logger.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{repo: repo, log: log}
}

func (c *AvailabilityChecker) Check(ctx context.Context, field domain.Field, value string) (dto.Availability, error) {
	if strings.TrimSpace(value) == "" {
		incrementAvailabilityChecks(string(field), "validation_error")
		return dto.Availability{}, newValidationError(requiredFieldMessage(fieldLabel(field)))
	}

	exists, err := c.repo.Exists(ctx, field, value)
	if err != nil {
		incrementAvailabilityChecks(string(field), "store_error")
		c.log.WithFields(ctx, logger.Fields{
			"field":  string(field),
			"action": "availability_check_failed",
		}).Errorf("availability check failed: %v", err)
		return dto.Availability{}, newAvailabilityStoreError(err)
	}

	incrementAvailabilityChecks(string(field), "success")
	return dto.Availability{
		Value:     value,
		Exists:    exists,
		Available: !exists,
	}, nil
}

func fieldLabel(field domain.Field) string {
	switch field {
	case domain.FieldEmail:
		return "Email"
	case domain.FieldHandle:
		return "Handle"
	default:
		return "Username"
	}
}
