package mocks

import (
	"strings"

	"github.com/you/laborhub/domain"
)

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error
	policies         [][]string
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with default behaviors
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{
		policies: [][]string{
			{domain.RoleClient, "/api/client/*", "GET"},
			{domain.RoleContractor, "/api/contractor/*", "GET"},
		},
	}
}

func toPolicy(params []interface{}) []string {
	policy := make([]string, len(params))
	for i, param := range params {
		if str, ok := param.(string); ok {
			policy[i] = str
		}
	}
	return policy
}

func samePolicy(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddPolicy adds a new policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}

	// Default behavior: add to internal policies list unless present
	if len(params) < 3 {
		return false, nil
	}
	policy := toPolicy(params)
	for _, existing := range m.policies {
		if samePolicy(existing, policy) {
			return false, nil
		}
	}
	m.policies = append(m.policies, policy)
	return true, nil
}

// RemovePolicy removes a policy rule
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}

	target := toPolicy(params)
	for i, policy := range m.policies {
		if samePolicy(policy, target) {
			m.policies = append(m.policies[:i], m.policies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Enforce checks if a request should be allowed
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}

	// Default behavior: exact role, trailing-* path prefix, exact action
	req := toPolicy(rvals)
	if len(req) < 3 {
		return false, nil
	}
	for _, policy := range m.policies {
		if len(policy) < 3 || policy[0] != req[0] || policy[2] != req[2] {
			continue
		}
		if policy[1] == req[1] {
			return true, nil
		}
		if prefix, ok := strings.CutSuffix(policy[1], "*"); ok && strings.HasPrefix(req[1], prefix) {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	// Return copy of internal policies
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = make([]string, len(policy))
		copy(result[i], policy)
	}
	return result, nil
}

// SavePolicy saves all policies
func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	// Default behavior: success
	return nil
}

// SetPolicies sets the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, policy := range policies {
		m.policies[i] = make([]string, len(policy))
		copy(m.policies[i], policy)
	}
}
