// backend/src/handlers/health_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/financecoach/backend/src/models"
)

// HandleHealthCheck returns basic health information to verify the server is running.
func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.HealthStatus{
		Status:  "ok",
		Message: "Smart Finance Coach backend is running",
	})
}
