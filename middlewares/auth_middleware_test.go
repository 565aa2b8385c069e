package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dietapp-backend/config"
	"dietapp-backend/models"
	"dietapp-backend/services"
	"dietapp-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	t.Cleanup(func() { sqlDB.Close() })

	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("userID")})
	})
	return r
}

func request(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := setupAuthTest(t)

	user := models.User{Mobile: "+919876543210"}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateJWT(user.ID, user.Mobile)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	t.Run("valid token passes", func(t *testing.T) {
		if w := request(r, "Bearer "+token); w.Code != http.StatusOK {
			t.Errorf("status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing header rejected", func(t *testing.T) {
		if w := request(r, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		if w := request(r, "Bearer not.a.token"); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		if err := services.RevokeToken(token); err != nil {
			t.Fatalf("RevokeToken: %v", err)
		}
		if w := request(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("token for a deleted user rejected", func(t *testing.T) {
		ghost := models.User{Mobile: "+910000000000"}
		if err := config.DB.Create(&ghost).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
		ghostToken, err := utils.GenerateJWT(ghost.ID, ghost.Mobile)
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}
		if err := config.DB.Unscoped().Delete(&ghost).Error; err != nil {
			t.Fatalf("delete user: %v", err)
		}
		if w := request(r, "Bearer "+ghostToken); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
