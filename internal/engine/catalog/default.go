package catalog

import (
	"sync"

	"github.com/crimson-sun/practicematch/internal/model"
)

// Version identifies the built-in catalog. Bump it whenever a weight,
// pattern, priority or bonus changes so selections can be traced to the
// table that produced them.
const Version = "2025.11.1"

// DefaultThreshold is the minimum score the top area needs before it is
// selected.
const DefaultThreshold = 10

// Default returns the built-in catalog, compiled on first use.
var Default = sync.OnceValue(func() *Catalog {
	return MustNew(DefaultAreas())
})

// DefaultAreas returns the built-in practice-area definitions. The
// identifiers are the keys of the hero image table.
func DefaultAreas() []model.Area {
	return []model.Area{
		{
			ID:       "labor-employment",
			Name:     "Labor & Employment",
			Priority: 90,
			Patterns: []model.Pattern{
				{Expr: `labou?r and employment|labou?r employment|labou?r-employment|employment and labou?r`, Weight: 30},
				{Expr: `labou?r`, Weight: 6},
				{Expr: `employment`, Weight: 4},
				{Expr: `labou?r relations|unions?|collective bargaining|nlra|nlrb`, Weight: 10},
			},
			// "Labor" and "Employment Law" as separate tags still mean the compound area.
			Bonus: &model.BonusRule{Kind: model.BonusCoOccurrence, Terms: []string{`labou?r`, `employment`}, Points: 25},
		},
		{
			ID:       "employment-law",
			Name:     "Employment Law",
			Priority: 80,
			Patterns: []model.Pattern{
				{Expr: `employment law`, Weight: 20},
				{Expr: `employment`, Weight: 8},
				{Expr: `discrimination|harassment|wrongful termination|non-?competes?|wage and hour|eeoc|fmla|title vii`, Weight: 8},
				{Expr: `employee benefits|erisa`, Weight: 6},
			},
		},
		{
			ID:       "business-law",
			Name:     "Business & Corporate Law",
			Priority: 70,
			Patterns: []model.Pattern{
				{Expr: `business and corporate`, Weight: 25},
				{Expr: `corporate law|business law`, Weight: 15},
				{Expr: `corporate`, Weight: 10},
				{Expr: `business`, Weight: 4},
				{Expr: `mergers|acquisitions|entity formation|corporate governance|succession planning`, Weight: 8},
			},
		},
		{
			ID:       "business-litigation",
			Name:     "Business Litigation",
			Priority: 60,
			Patterns: []model.Pattern{
				{Expr: `business litigation`, Weight: 30},
				{Expr: `business disputes?|partnership disputes?|shareholder disputes?|trade secrets?`, Weight: 15},
				{Expr: `litigation`, Weight: 5},
				{Expr: `business`, Weight: 2},
			},
		},
		{
			ID:       "commercial-litigation",
			Name:     "Commercial Litigation",
			Priority: 55,
			Patterns: []model.Pattern{
				{Expr: `commercial litigation`, Weight: 30},
				{Expr: `contract disputes?|breach of contract|collections?`, Weight: 10},
				{Expr: `commercial`, Weight: 8},
				{Expr: `litigation|trials?|appeals?|appellate`, Weight: 4},
			},
		},
		{
			ID:       "construction",
			Name:     "Construction",
			Priority: 50,
			Patterns: []model.Pattern{
				{Expr: `construction`, Weight: 15},
				{Expr: `construction law|construction litigation`, Weight: 10},
				{Expr: `mechanics liens?|liens?`, Weight: 8},
				{Expr: `surety|contractors?|subcontractors?|architects?|design professionals?`, Weight: 6},
			},
		},
		{
			ID:       "insurance",
			Name:     "Insurance",
			Priority: 45,
			Patterns: []model.Pattern{
				{Expr: `insurance defense|insurance coverage|insurance law`, Weight: 20},
				{Expr: `insurance`, Weight: 10},
				{Expr: `bad faith|subrogation|coverage`, Weight: 6},
			},
			Bonus: &model.BonusRule{Kind: model.BonusBreadth, Terms: []string{`insurance`, `coverage`, `subrogation`, `bad faith`}, MinLabels: 2, Points: 10},
		},
		{
			ID:       "health-care",
			Name:     "Health Care",
			Priority: 40,
			Patterns: []model.Pattern{
				{Expr: `health care|healthcare|health-care`, Weight: 20},
				{Expr: `medical|hospitals?|physicians?|hipaa|long-term care|nursing homes?`, Weight: 8},
				{Expr: `health`, Weight: 4},
			},
		},
		{
			ID:       "family-law",
			Name:     "Family Law",
			Priority: 35,
			Patterns: []model.Pattern{
				{Expr: `family law`, Weight: 25},
				{Expr: `divorce|custody|adoptions?|paternity|guardianships?|prenuptial|child support`, Weight: 12},
				{Expr: `family`, Weight: 5},
			},
		},
		{
			ID:       "government-law",
			Name:     "Government Law",
			Priority: 30,
			Patterns: []model.Pattern{
				{Expr: `government law|governmental|municipal law|public sector`, Weight: 20},
				{Expr: `government`, Weight: 10},
				{Expr: `municipal|zoning|land use|public finance|administrative law|regulatory`, Weight: 8},
			},
		},
		{
			ID:       "bankruptcy-reorganization",
			Name:     "Bankruptcy & Reorganization",
			Priority: 25,
			Patterns: []model.Pattern{
				{Expr: `bankruptcy and reorganization|bankruptcy and creditors rights|creditors rights`, Weight: 25},
				{Expr: `bankruptcy`, Weight: 15},
				{Expr: `reorganization|restructuring|insolvency|receiverships?|chapter 11|chapter 7|debtors?|creditors?`, Weight: 8},
			},
		},
	}
}
