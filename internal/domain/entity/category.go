package entity

import (
	"fmt"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
)

// Category is an expense category. Hierarchy is modeled as a parent-id
// back-reference resolved through the store, never as in-memory pointers.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// Validate checks the category's own fields. Acyclicity of the parent chain
// is validated by the category service against the store.
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: category name must not be empty", apperrors.ErrValidation)
	}
	if c.ParentID == c.ID && c.ID != "" {
		return fmt.Errorf("%w: category cannot be its own parent", apperrors.ErrValidation)
	}
	return nil
}
