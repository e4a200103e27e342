package simulation

import (
	"context"
	"fmt"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

const (
	ErrCodeInvalidSKU      = "INVALID_SKU"
	ErrCodePONotFound      = "PO_NOT_FOUND"
	ErrCodeInvalidPOStatus = "INVALID_PO_STATUS"
	ErrCodeShipmentMissing = "SHIPMENT_NOT_FOUND"
	ErrCodeShipmentArrived = "SHIPMENT_ARRIVED"
)

// ActionValidator runs read-only pre-commit checks against the external
// store. Violations are accumulated per action; the batch is never aborted
// on the first failure. Store errors are returned to the caller.
type ActionValidator struct {
	Repo repository.ActionLookupRepository
}

func (v *ActionValidator) ValidateActions(ctx context.Context, actions []RecommendedAction) ([]ValidationError, error) {
	var violations []ValidationError

	for _, action := range actions {
		switch action.ActionType {
		case ActionCreatePO:
			payload, ok := action.Payload.(CreatePOPayload)
			if !ok {
				continue
			}
			product, err := v.Repo.GetActiveProduct(ctx, payload.SKU)
			if err != nil {
				return nil, err
			}
			if product == nil {
				violations = append(violations, ValidationError{
					ActionID:     action.ActionID,
					ErrorCode:    ErrCodeInvalidSKU,
					ErrorMessage: fmt.Sprintf("SKU %s not found or inactive", payload.SKU),
				})
			}

		case ActionDeferPO:
			if action.TargetID == nil {
				continue
			}
			po, err := v.Repo.GetPurchaseOrder(ctx, *action.TargetID)
			if err != nil {
				return nil, err
			}
			if po == nil {
				violations = append(violations, ValidationError{
					ActionID:     action.ActionID,
					ErrorCode:    ErrCodePONotFound,
					ErrorMessage: fmt.Sprintf("PO %s not found", *action.TargetID),
				})
			} else if po.Status == models.POStatusDelivered || po.Status == models.POStatusCancelled {
				violations = append(violations, ValidationError{
					ActionID:     action.ActionID,
					ErrorCode:    ErrCodeInvalidPOStatus,
					ErrorMessage: fmt.Sprintf("Cannot defer PO with status %s", po.Status),
				})
			}

		case ActionUpdateShipmentMode:
			if action.TargetID == nil {
				continue
			}
			shipment, err := v.Repo.GetShipment(ctx, *action.TargetID)
			if err != nil {
				return nil, err
			}
			if shipment == nil {
				violations = append(violations, ValidationError{
					ActionID:     action.ActionID,
					ErrorCode:    ErrCodeShipmentMissing,
					ErrorMessage: fmt.Sprintf("Shipment %s not found", *action.TargetID),
				})
			} else if shipment.ActualArrivalDate != nil {
				violations = append(violations, ValidationError{
					ActionID:     action.ActionID,
					ErrorCode:    ErrCodeShipmentArrived,
					ErrorMessage: "Cannot modify arrived shipment",
				})
			}
		}
	}

	return violations, nil
}
