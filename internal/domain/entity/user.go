package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Nombres canónicos de permisos. Históricamente la DB guarda variantes
// ("EditMaterials", "edit materials"); la comparación se hace normalizada.
const (
	PermEditMaterials  = "Edit Materials"
	PermManageSettings = "Manage Settings"
)

// User usuario del sistema con su conjunto de permisos (muchos a muchos).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string
	Permissions  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
