package practicematch_test

import (
	"fmt"
	"log"

	"github.com/crimson-sun/practicematch/pkg/practicematch"
)

func Example() {
	m, err := practicematch.New()
	if err != nil {
		log.Fatal(err)
	}

	area, ok := m.SelectPrimaryArea([]string{"Labor", "Employment Law"})
	fmt.Println(area, ok)

	_, ok = m.SelectPrimaryArea([]string{"Philately", "Numismatics"})
	fmt.Println(ok)
	// Output:
	// labor-employment true
	// false
}

func ExampleMatcher_Explain() {
	m, err := practicematch.New()
	if err != nil {
		log.Fatal(err)
	}

	ex := m.Explain([]string{"Construction Law", "Mechanic's Liens"})
	fmt.Println(ex.Labels)
	fmt.Println(ex.Area, ex.Score)
	// Output:
	// [construction law mechanics liens]
	// construction 33
}

func ExampleWithAreas() {
	m, err := practicematch.New(
		practicematch.WithThreshold(5),
		practicematch.WithAreas([]practicematch.Area{
			{ID: "tax", Name: "Tax", Priority: 1, Patterns: []practicematch.Pattern{{Expr: "tax(ation)?", Weight: 10}}},
			{ID: "estate", Name: "Estate Planning", Priority: 2, Patterns: []practicematch.Pattern{{Expr: "estates?|trusts?", Weight: 10}}},
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	area, _ := m.SelectPrimaryArea([]string{"Taxation", "Trusts & Estates"})
	fmt.Println(area)
	// Output:
	// estate
}
