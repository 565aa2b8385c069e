package services

import (
	"errors"
	"testing"

	"dietapp-backend/config"
	"dietapp-backend/models"
)

func TestOTPLogin(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	const mobile = "+919876543210"

	code, err := IssueOTP(mobile)
	if err != nil {
		t.Fatalf("IssueOTP: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code = %q, want 6 digits", code)
	}

	t.Run("wrong code rejected", func(t *testing.T) {
		if _, err := VerifyOTP(mobile, "000000"); !errors.Is(err, ErrInvalidOTP) {
			t.Errorf("err = %v, want ErrInvalidOTP", err)
		}
	})

	t.Run("first login registers the user", func(t *testing.T) {
		result, err := VerifyOTP(mobile, code)
		if err != nil {
			t.Fatalf("VerifyOTP: %v", err)
		}
		if !result.IsNewUser {
			t.Error("first login should report a new user")
		}
		if result.OnboardingCompleted {
			t.Error("new user cannot have completed onboarding")
		}
		if result.Token == "" {
			t.Error("missing token")
		}

		var user models.User
		if err := config.DB.Where("mobile = ?", mobile).First(&user).Error; err != nil {
			t.Fatalf("user row: %v", err)
		}

		var history int64
		config.DB.Model(&models.LoginHistory{}).Where("user_id = ?", user.ID).Count(&history)
		if history != 1 {
			t.Errorf("login history rows = %d, want 1", history)
		}
	})

	t.Run("codes are single use", func(t *testing.T) {
		if _, err := VerifyOTP(mobile, code); !errors.Is(err, ErrInvalidOTP) {
			t.Errorf("err = %v, want ErrInvalidOTP on reuse", err)
		}
	})

	t.Run("reissue replaces the live code", func(t *testing.T) {
		first, err := IssueOTP(mobile)
		if err != nil {
			t.Fatalf("IssueOTP: %v", err)
		}
		second, err := IssueOTP(mobile)
		if err != nil {
			t.Fatalf("IssueOTP: %v", err)
		}

		if first != second {
			if _, err := VerifyOTP(mobile, first); !errors.Is(err, ErrInvalidOTP) {
				t.Errorf("stale code accepted")
			}
		}

		result, err := VerifyOTP(mobile, second)
		if err != nil {
			t.Fatalf("VerifyOTP: %v", err)
		}
		if result.IsNewUser {
			t.Error("returning login should not report a new user")
		}
	})
}

func TestTokenRevocation(t *testing.T) {
	setupTestDB(t)

	const token = "some.jwt.token"
	if IsTokenRevoked(token) {
		t.Fatal("unknown token reported revoked")
	}
	if err := RevokeToken(token); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if !IsTokenRevoked(token) {
		t.Error("revoked token not reported")
	}
}

func TestDeleteAccount(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	const mobile = "+919876543211"
	code, err := IssueOTP(mobile)
	if err != nil {
		t.Fatalf("IssueOTP: %v", err)
	}
	result, err := VerifyOTP(mobile, code)
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	var user models.User
	if err := config.DB.Where("mobile = ?", mobile).First(&user).Error; err != nil {
		t.Fatalf("user row: %v", err)
	}

	if _, err := UpsertProfile(user.ID, *baseProfile()); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if _, err := AddEntry(user.ID, testDate, "Lunch", "Rice", "1 cup", Macros{Calories: 200}, 1); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	if err := DeleteAccount(user.ID, result.Token); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if !IsTokenRevoked(result.Token) {
		t.Error("session token should be revoked on delete")
	}

	var count int64
	config.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Error("user row survived delete")
	}
	config.DB.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Error("profile survived delete")
	}
	config.DB.Model(&models.MealEntry{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Error("meal entries survived delete")
	}

	// mobile number is free for re-registration
	code, err = IssueOTP(mobile)
	if err != nil {
		t.Fatalf("IssueOTP after delete: %v", err)
	}
	again, err := VerifyOTP(mobile, code)
	if err != nil {
		t.Fatalf("VerifyOTP after delete: %v", err)
	}
	if !again.IsNewUser {
		t.Error("re-registration should be a new user")
	}
}
