package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/you/laborhub/domain"
)

// *casbin.Enforcer already satisfies the narrow interface the service needs
var _ domain.CasbinEnforcer = (*casbin.Enforcer)(nil)

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a policy service over a casbin enforcer
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return NewPolicyServiceWithEnforcer(enforcer)
}

// NewPolicyServiceWithEnforcer accepts any enforcer, mocks included
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	_, err := p.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	_, err := p.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

// EnsurePolicies implements domain.PolicyService. Rules already present are
// skipped; the enforcer's adapter persists new ones as they are added.
func (p *PolicyServiceImpl) EnsurePolicies(policies [][]string) error {
	for _, rule := range policies {
		if len(rule) != 3 {
			return fmt.Errorf("policy rule must have 3 fields, got %d", len(rule))
		}
		if _, err := p.enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
			return fmt.Errorf("failed to add policy %v: %w", rule, err)
		}
	}
	return nil
}

// RoutePolicies are the default role rules for the role-scoped route groups
func RoutePolicies() [][]string {
	return [][]string{
		{domain.RoleClient, "/api/client/*", "GET"},
		{domain.RoleContractor, "/api/contractor/*", "GET"},
	}
}