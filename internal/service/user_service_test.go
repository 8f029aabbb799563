package service

import (
	"errors"
	"testing"

	"github.com/luckyace-next/internal/config"
	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, name string) *UserService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret"
	cfg.JWT.ExpireHours = 1

	userRepo := repository.NewUserRepository(db)
	auth := NewAuthService(cfg, userRepo)
	return NewUserService(userRepo, auth)
}

func TestUserCreateDefaults(t *testing.T) {
	svc := newUserService(t, "user_create_defaults")

	user, err := svc.Create(CreateUserInput{
		Username: "dealer-dan",
		Email:    "Dealer-Dan@Test.Local",
		Password: "spin2win88",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != constants.RolePlayer {
		t.Fatalf("expected default role player, got %s", user.Role)
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("expected default status active, got %s", user.Status)
	}
	if user.Email != "dealer-dan@test.local" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.PasswordHash == "spin2win88" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestUserCreateValidation(t *testing.T) {
	svc := newUserService(t, "user_create_validation")

	_, err := svc.Create(CreateUserInput{
		Username: " ",
		Email:    "not-an-email",
		Role:     "pit-boss",
		Status:   "frozen",
	})
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"username", "email", "role", "status"} {
		if _, exists := verr.Fields[field]; !exists {
			t.Fatalf("expected field error for %s, got %v", field, verr.Fields)
		}
	}
}

func TestUserCreateUniqueness(t *testing.T) {
	svc := newUserService(t, "user_create_unique")

	if _, err := svc.Create(CreateUserInput{
		Username: "dealer-dan",
		Email:    "dan@test.local",
		Password: "spin2win88",
	}); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	_, err := svc.Create(CreateUserInput{
		Username: "dealer-dan",
		Email:    "other@test.local",
		Password: "spin2win88",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	_, err = svc.Create(CreateUserInput{
		Username: "dealer-two",
		Email:    "DAN@test.local",
		Password: "spin2win88",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserUpdateRoleInvalidatesTokens(t *testing.T) {
	svc := newUserService(t, "user_update_role")

	user, err := svc.Create(CreateUserInput{
		Username: "dealer-dan",
		Email:    "dan@test.local",
		Password: "spin2win88",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bio := "night shift"
	updated, err := svc.Update(user.ID, UpdateUserInput{Bio: &bio})
	if err != nil {
		t.Fatalf("update bio failed: %v", err)
	}
	if updated.TokenVersion != user.TokenVersion {
		t.Fatal("bio change must not invalidate tokens")
	}

	role := constants.RoleModerator
	updated, err = svc.Update(user.ID, UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("update role failed: %v", err)
	}
	if updated.Role != constants.RoleModerator {
		t.Fatalf("expected moderator role, got %s", updated.Role)
	}
	if updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatal("expected token invalidation time")
	}

	badRole := "pit-boss"
	if _, err := svc.Update(user.ID, UpdateUserInput{Role: &badRole}); err == nil {
		t.Fatal("expected validation error for illegal role")
	}
}

func TestUserUpdateEmailConflict(t *testing.T) {
	svc := newUserService(t, "user_update_email")

	if _, err := svc.Create(CreateUserInput{
		Username: "dealer-dan",
		Email:    "dan@test.local",
		Password: "spin2win88",
	}); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	second, err := svc.Create(CreateUserInput{
		Username: "dealer-two",
		Email:    "two@test.local",
		Password: "spin2win88",
	})
	if err != nil {
		t.Fatalf("seed second user failed: %v", err)
	}

	email := "dan@test.local"
	if _, err := svc.Update(second.ID, UpdateUserInput{Email: &email}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserSuspend(t *testing.T) {
	svc := newUserService(t, "user_suspend")

	user, err := svc.Create(CreateUserInput{
		Username: "dealer-dan",
		Email:    "dan@test.local",
		Password: "spin2win88",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	suspended, err := svc.Suspend(user.ID)
	if err != nil {
		t.Fatalf("suspend failed: %v", err)
	}
	if suspended.Status != "inactive" {
		t.Fatalf("expected inactive status, got %s", suspended.Status)
	}
	if suspended.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", suspended.TokenVersion)
	}

	if _, err := svc.Suspend(999999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserListFilters(t *testing.T) {
	svc := newUserService(t, "user_list_filters")

	seed := []CreateUserInput{
		{Username: "dealer-dan", Email: "dan@test.local", Password: "spin2win88", Role: constants.RoleAuthor},
		{Username: "mod-mary", Email: "mary@test.local", Password: "spin2win88", Role: constants.RoleModerator},
		{Username: "player-pete", Email: "pete@test.local", Password: "spin2win88"},
	}
	for _, input := range seed {
		if _, err := svc.Create(input); err != nil {
			t.Fatalf("seed %s failed: %v", input.Username, err)
		}
	}

	_, total, err := svc.List(UserListInput{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 users, got %d", total)
	}

	users, total, err := svc.List(UserListInput{Page: 1, PageSize: 10, Role: constants.RoleModerator})
	if err != nil {
		t.Fatalf("list by role failed: %v", err)
	}
	if total != 1 || users[0].Username != "mod-mary" {
		t.Fatalf("unexpected role filter result: total=%d", total)
	}

	_, total, err = svc.List(UserListInput{Page: 1, PageSize: 10, Keyword: "dan"})
	if err != nil {
		t.Fatalf("list by keyword failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 keyword match, got %d", total)
	}
}

func TestUserBatchSetStatus(t *testing.T) {
	svc := newUserService(t, "user_batch_status")

	var ids []uint
	for _, name := range []string{"spinner-one", "spinner-two"} {
		user, err := svc.Create(CreateUserInput{
			Username: name,
			Email:    name + "@test.local",
			Password: "spin2win88",
		})
		if err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
		ids = append(ids, user.ID)
	}

	result, err := svc.BatchSetStatus(append(ids, 999999), constants.UserStatusInactive)
	if err != nil {
		t.Fatalf("batch set status failed: %v", err)
	}
	if result.Updated != 2 {
		t.Fatalf("updated want 2 got %d", result.Updated)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed want 1 entry got %v", result.Failed)
	}

	for _, id := range ids {
		user, err := svc.GetByID(id)
		if err != nil {
			t.Fatalf("get user failed: %v", err)
		}
		if user.Status != constants.UserStatusInactive {
			t.Fatalf("user %d should be suspended, got %s", id, user.Status)
		}
		if user.TokenVersion != 1 {
			t.Fatalf("status change should invalidate tokens, version=%d", user.TokenVersion)
		}
	}

	if _, err := svc.BatchSetStatus(ids, "frozen"); err == nil {
		t.Fatal("invalid status should be rejected")
	}
}
