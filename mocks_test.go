package session_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/goliatone/go-session"
)

// Default storage keys (namespace "ventassaas").
const (
	keyAccess  = "ventassaas_access_token"
	keyRefresh = "ventassaas_refresh_token"
	keyContext = "ventassaas_user_context"
)

func testConfig(baseURL string) session.BasicConfig {
	return session.BasicConfig{
		BaseURL:       baseURL,
		AuthTimeout:   5 * time.Second,
		PublicTimeout: 5 * time.Second,
	}
}

func testCredentials() session.Credentials {
	return session.Credentials{
		Username: "maria",
		Password: "s3cret",
		TenantID: 1,
	}
}

func testSnapshot(accessToken, refreshToken string, expiry time.Time) session.SessionSnapshot {
	return session.SessionSnapshot{
		AccessToken:        accessToken,
		RefreshToken:       refreshToken,
		AccessTokenExpiry:  expiry,
		UserID:             7,
		TenantID:           1,
		UserName:           "maria",
		RoleCode:           "admin",
		RoleName:           "Administrator",
		SubscriptionStatus: session.SubscriptionActive,
		Permissions: map[string]bool{
			"ventas_tienda:ver":   true,
			"ventas_tienda:crear": false,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func okEnvelope(data any) map[string]any {
	return map[string]any{"success": true, "data": data, "error": nil}
}

func failEnvelope(message string) map[string]any {
	return map[string]any{"success": false, "data": nil, "error": message}
}
