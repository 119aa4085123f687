// Package contract holds reusable test harnesses that every discovery
// provider must pass.
package contract

import (
	"context"
	"testing"

	"tailscan/internal/registry/providers"
)

// ContractTest defines a lookup a provider must answer without error.
type ContractTest struct {
	Name         string
	Provider     providers.Discovery
	TailNumber   string
	ExpectFound  bool
	ValidateFunc func(res *providers.Result) error
}

// ContractSuite is a collection of contract tests for one provider.
type ContractSuite struct {
	ProviderID string
	Tests      []ContractTest
}

// Run executes all contract tests in the suite
func (s *ContractSuite) Run(t *testing.T) {
	for _, test := range s.Tests {
		t.Run(test.Name, func(t *testing.T) {
			res, err := test.Provider.Discover(context.Background(), test.TailNumber)
			if err != nil {
				t.Fatalf("provider discovery failed: %v", err)
			}
			if res == nil {
				t.Fatal("nil result without error")
			}

			if res.ProviderID != s.ProviderID {
				t.Errorf("expected provider ID %s, got %s", s.ProviderID, res.ProviderID)
			}
			if res.Found != test.ExpectFound {
				t.Errorf("expected found=%v, got %v", test.ExpectFound, res.Found)
			}
			if res.Found && res.Record == nil {
				t.Error("found result carries no record")
			}
			if !res.Found && res.Record != nil {
				t.Error("not-found result carries a record")
			}
			if res.CheckedAt.IsZero() {
				t.Error("CheckedAt not set")
			}

			if test.ValidateFunc != nil {
				if err := test.ValidateFunc(res); err != nil {
					t.Errorf("custom validation failed: %v", err)
				}
			}
		})
	}
}

// ErrorContractTest validates that provider errors follow the taxonomy
type ErrorContractTest struct {
	Name          string
	Provider      providers.Discovery
	TailNumber    string
	ExpectedError providers.ErrorCategory
	ExpectedRetry bool
}

// Run executes an error contract test
func (ect *ErrorContractTest) Run(t *testing.T) {
	_, err := ect.Provider.Discover(context.Background(), ect.TailNumber)
	if err == nil {
		t.Fatal("expected error but got none")
	}

	category := providers.GetCategory(err)
	if category != ect.ExpectedError {
		t.Errorf("expected error category %s, got %s", ect.ExpectedError, category)
	}

	if isRetryable := providers.IsRetryable(err); isRetryable != ect.ExpectedRetry {
		t.Errorf("expected retryable=%v, got %v", ect.ExpectedRetry, isRetryable)
	}
}
