package services

import (
	"errors"
	"testing"

	"github.com/you/laborhub/domain"
	"github.com/you/laborhub/internal/mocks"
)

// createPolicyServiceForTest creates a PolicyService with mock Casbin enforcer
func createPolicyServiceForTest(t *testing.T) (domain.PolicyService, *mocks.MockCasbinEnforcer) {
	t.Helper()

	enforcer := mocks.NewMockCasbinEnforcer()
	return NewPolicyServiceWithEnforcer(enforcer), enforcer
}

func TestPolicyServiceImpl_AddPolicy(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*mocks.MockCasbinEnforcer, *bool)
		expectedError bool
		expectSave    bool
	}{
		{
			name: "successful policy addition",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.SavePolicyFunc = func() error { *saved = true; return nil }
			},
			expectSave: true,
		},
		{
			name: "enforcer error",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return false, errors.New("adapter down")
				}
				enforcer.SavePolicyFunc = func() error { *saved = true; return nil }
			},
			expectedError: true,
		},
		{
			name: "save error",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.SavePolicyFunc = func() error { *saved = true; return errors.New("write failed") }
			},
			expectedError: true,
			expectSave:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, enforcer := createPolicyServiceForTest(t)
			saved := false
			tt.setupMock(enforcer, &saved)

			err := svc.AddPolicy(domain.RoleContractor, "/api/contractor/jobs", "POST")

			if tt.expectedError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectedError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if saved != tt.expectSave {
				t.Errorf("expected SavePolicy called=%v, got %v", tt.expectSave, saved)
			}
		})
	}
}

func TestPolicyServiceImpl_RemovePolicy(t *testing.T) {
	svc, _ := createPolicyServiceForTest(t)

	if err := svc.RemovePolicy(domain.RoleClient, "/api/client/*", "GET"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allowed, err := svc.CheckPermission(domain.RoleClient, "/api/client/whoami", "GET")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Error("expected permission to be gone after removal")
	}
}

func TestPolicyServiceImpl_CheckPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		expected bool
	}{
		{"client on client route", domain.RoleClient, "/api/client/whoami", "GET", true},
		{"contractor on contractor route", domain.RoleContractor, "/api/contractor/whoami", "GET", true},
		{"client on contractor route", domain.RoleClient, "/api/contractor/whoami", "GET", false},
		{"wrong method", domain.RoleClient, "/api/client/whoami", "DELETE", false},
		{"unknown role", "admin", "/api/client/whoami", "GET", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := createPolicyServiceForTest(t)

			allowed, err := svc.CheckPermission(tt.role, tt.resource, tt.action)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if allowed != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, allowed)
			}
		})
	}
}

func TestPolicyServiceImpl_EnsurePolicies(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)
	enforcer.SetPolicies(nil)

	if err := svc.EnsurePolicies(RoutePolicies()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// second run must not duplicate rules
	if err := svc.EnsurePolicies(RoutePolicies()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(svc.GetPolicies()); got != len(RoutePolicies()) {
		t.Errorf("expected %d policies, got %d", len(RoutePolicies()), got)
	}

	if err := svc.EnsurePolicies([][]string{{"client", "/x"}}); err == nil {
		t.Error("expected error for short rule")
	}
}
