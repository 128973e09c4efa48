package domain

import (
	"time"

	"github.com/google/uuid"
)

type ResourceCategory string

const (
	ResourceFood      ResourceCategory = "food"
	ResourceWater     ResourceCategory = "water"
	ResourceMedical   ResourceCategory = "medical"
	ResourceShelter   ResourceCategory = "shelter"
	ResourceClothing  ResourceCategory = "clothing"
	ResourceEquipment ResourceCategory = "equipment"
	ResourceOtherKind ResourceCategory = "other"
)

func (c ResourceCategory) IsValid() bool {
	switch c {
	case ResourceFood, ResourceWater, ResourceMedical, ResourceShelter,
		ResourceClothing, ResourceEquipment, ResourceOtherKind:
		return true
	}
	return false
}

type ResourceStatus string

const (
	ResourceAvailable ResourceStatus = "available"
	ResourceAllocated ResourceStatus = "allocated"
	ResourceDepleted  ResourceStatus = "depleted"
)

func (s ResourceStatus) IsValid() bool {
	switch s {
	case ResourceAvailable, ResourceAllocated, ResourceDepleted:
		return true
	}
	return false
}

// Resource is a relief inventory item tracked alongside disaster reports.
type Resource struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Category    ResourceCategory `json:"category" db:"category"`
	Quantity    int              `json:"quantity" db:"quantity"`
	Location    string           `json:"location" db:"location"`
	Status      ResourceStatus   `json:"status" db:"status"`
	AddedBy     uuid.UUID        `json:"added_by" db:"added_by"`
	LastUpdated time.Time        `json:"last_updated" db:"last_updated"`
}

type CreateResourceInput struct {
	Name     string           `json:"name" validate:"required,min=2,max=200"`
	Category ResourceCategory `json:"category" validate:"required,oneof=food water medical shelter clothing equipment other"`
	Quantity int              `json:"quantity" validate:"required,min=1"`
	Location string           `json:"location" validate:"required,min=2,max=500"`
}

type UpdateResourceInput struct {
	Name     *string           `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Quantity *int              `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Location *string           `json:"location,omitempty" validate:"omitempty,min=2,max=500"`
	Status   *ResourceStatus   `json:"status,omitempty" validate:"omitempty,oneof=available allocated depleted"`
	Category *ResourceCategory `json:"category,omitempty" validate:"omitempty,oneof=food water medical shelter clothing equipment other"`
}
