package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/auth"
)

func setupAdminRouter(guard *auth.Guard) *gin.Engine {
	r := gin.New()
	r.GET("/api/admin-logs", AdminAuth(guard), func(c *gin.Context) {
		claims := AdminClaims(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "user": claims.Username})
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	guard := auth.NewGuard("middleware-secret", auth.Credentials{Username: "admin", Password: "pw"}, 0)
	token, ok, err := guard.IssueToken("admin", "pw")
	if err != nil || !ok {
		t.Fatalf("issue token: ok=%v err=%v", ok, err)
	}

	tests := []struct {
		name     string
		header   string
		value    string
		wantCode int
		wantErr  string
	}{
		{"bearer header", "Authorization", "Bearer " + token, http.StatusOK, ""},
		{"lowercase scheme", "Authorization", "bearer " + token, http.StatusOK, ""},
		{"admin token header", AdminTokenHeader, token, http.StatusOK, ""},
		{"no token", "", "", http.StatusUnauthorized, "AUTH_MISSING"},
		{"basic scheme", "Authorization", "Basic abc", http.StatusUnauthorized, "AUTH_MISSING"},
		{"garbage", "Authorization", "Bearer garbage", http.StatusUnauthorized, "AUTH_INVALID"},
	}

	r := setupAdminRouter(guard)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin-logs", http.NoBody)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			body := parseBody(t, rec)
			if tt.wantErr == "" {
				if body["user"] != "admin" {
					t.Errorf("claims not propagated: %v", body)
				}
				return
			}
			if body["code"] != tt.wantErr {
				t.Errorf("code = %v, want %s", body["code"], tt.wantErr)
			}
			if body["success"] != false {
				t.Errorf("expected success=false, got %v", body["success"])
			}
		})
	}
}
