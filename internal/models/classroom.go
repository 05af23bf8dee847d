package models

// Classroom is a bookable room.
type Classroom struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Location  string `json:"location,omitempty"`
	Equipment string `json:"equipment,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// ClassroomRequest is the create/update payload.
type ClassroomRequest struct {
	Name      string `json:"name" form:"name" validate:"required"`
	Capacity  int    `json:"capacity" form:"capacity" validate:"required,min=1"`
	Location  string `json:"location,omitempty" form:"location"`
	Equipment string `json:"equipment,omitempty" form:"equipment"`
	IsActive  bool   `json:"is_active" form:"is_active"`
}

const (
	defaultClassroomLocation  = "Non spécifiée"
	defaultClassroomEquipment = "Aucun équipement spécifique"
)

// DisplayLocation falls back to a placeholder when no location is set.
func (c Classroom) DisplayLocation() string {
	if c.Location == "" {
		return defaultClassroomLocation
	}
	return c.Location
}

// DisplayEquipment falls back to a placeholder when no equipment is listed.
func (c Classroom) DisplayEquipment() string {
	if c.Equipment == "" {
		return defaultClassroomEquipment
	}
	return c.Equipment
}

// StatusLabel is the card status badge.
func (c Classroom) StatusLabel() string {
	if c.IsActive {
		return "Active"
	}
	return "Inactive"
}
