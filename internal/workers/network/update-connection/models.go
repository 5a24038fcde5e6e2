// internal/workers/network/update-connection/models.go
package updateconnection

import "technet-workers/internal/network"

type Input struct {
	UserID   string `json:"userId" validate:"required"`
	PersonID string `json:"personId,omitempty"`
}

type Output struct {
	PersonID string              `json:"personId,omitempty"`
	Status   network.Status      `json:"status,omitempty"`
	Network  network.Connections `json:"network"`
}
