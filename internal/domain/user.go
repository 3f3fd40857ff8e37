package domain

import "time"

// User identifica al dueño de los cuestionarios. La emisión de credenciales vive fuera de este servicio.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
