// Package config builds the pipeline configurations from viper-resolved
// settings, layering config-file overrides on top of the built-in defaults.
package config

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"

	"caixasync/internal/normalize"
	"caixasync/internal/parser"
	"caixasync/internal/reconciler"
)

// Settings keys recognized in the optional config file.
const (
	KeyPaymentMethods    = "payment-methods"
	KeyOperators         = "operators"
	KeyAmountPolicy      = "amount-policy"
	KeyAccounts          = "accounts"
	KeyCostCenters       = "cost-centers"
	KeyDefaultCostCenter = "default-cost-center"
)

// CreateParserConfig builds the movement parser configuration, applying
// config-file overrides for the payment vocabulary, the operator roster and
// the amount aggregation policy.
func CreateParserConfig() (*parser.Config, error) {
	cfg := parser.DefaultConfig()

	if methods := viper.GetStringSlice(KeyPaymentMethods); len(methods) > 0 {
		cfg.PaymentMethods = methods
	}

	if operators := viper.GetStringMapString(KeyOperators); len(operators) > 0 {
		roster, err := buildRoster(operators)
		if err != nil {
			return nil, err
		}
		cfg.OperatorRoster = roster
	}

	if policy := viper.GetString(KeyAmountPolicy); policy != "" {
		cfg.AmountPolicy = parser.AmountPolicy(policy)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CreateRoutingConfig builds the reconciliation routing tables, applying
// config-file overrides for the account table and the cost-center mapping.
// The accounts key nests branch labels over payment methods:
//
//	accounts:
//	  Loja 1:
//	    Dinheiro: CAIXA 01
func CreateRoutingConfig() (*reconciler.RoutingConfig, error) {
	cfg := reconciler.DefaultRoutingConfig()

	// Viper lowercases map keys; branch labels are canonicalized back
	// through the same normalizer the pipeline uses
	if viper.IsSet(KeyAccounts) {
		raw := viper.GetStringMap(KeyAccounts)
		accounts := make(map[string]map[string]string, len(raw))
		for branch := range raw {
			label, err := canonicalBranch(branch)
			if err != nil {
				return nil, err
			}
			methods := viper.GetStringMapString(KeyAccounts + "." + branch)
			if len(methods) == 0 {
				return nil, fmt.Errorf("branch %q routes no payment methods", branch)
			}
			accounts[label] = methods
		}
		cfg.Accounts = accounts
	}

	if raw := viper.GetStringMapString(KeyCostCenters); len(raw) > 0 {
		centers := make(map[string]string, len(raw))
		for branch, center := range raw {
			label, err := canonicalBranch(branch)
			if err != nil {
				return nil, err
			}
			centers[label] = center
		}
		cfg.CostCenters = centers
	}
	if center := viper.GetString(KeyDefaultCostCenter); center != "" {
		cfg.DefaultCostCenter = center
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// canonicalBranch restores a viper-lowercased branch key to the canonical
// "Loja {N}" label
func canonicalBranch(key string) (string, error) {
	label := normalize.NormalizeBranch(key, normalize.BranchPatternLoja)
	if label == "" {
		return "", fmt.Errorf("unrecognized branch label %q", key)
	}
	return label, nil
}

// buildRoster converts the config-file operator map (name fragment to
// branch label) into a deterministic roster. Map iteration order is not
// stable, so entries are sorted by fragment to keep first-match-wins
// behavior reproducible across runs.
func buildRoster(operators map[string]string) ([]normalize.OperatorBranch, error) {
	fragments := make([]string, 0, len(operators))
	for fragment := range operators {
		fragments = append(fragments, fragment)
	}
	sort.Strings(fragments)

	roster := make([]normalize.OperatorBranch, 0, len(fragments))
	for _, fragment := range fragments {
		branch := operators[fragment]
		if branch == "" {
			return nil, fmt.Errorf("operator %q has no branch", fragment)
		}
		roster = append(roster, normalize.OperatorBranch{
			NameFragment: fragment,
			Branch:       branch,
		})
	}
	return roster, nil
}
