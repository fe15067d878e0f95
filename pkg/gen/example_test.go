package gen_test

import (
	"fmt"
	"strings"

	"github.com/planline/planline/pkg/gen"
)

func Example() {
	dict, err := gen.ReadDictionary(strings.NewReader(`
		[[section]]
		point = "cat"
		connectors = ["S"]

		[[section]]
		point = "mat"
		connectors = ["O"]
	`))
	if err != nil {
		fmt.Println(err)
		return
	}

	adapter := gen.NewPlanarDict(dict)
	roots := []gen.Section{{
		Point:      "sat",
		Connectors: []gen.Connector{{Type: "S"}, {Type: "O"}},
	}}

	result, err := gen.Grow(adapter, roots, gen.GrowOptions{})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("sequence:", strings.Join(result.Sequence, " "))
	for _, l := range result.Links {
		fmt.Printf("link: %s-%s\n", l.From, l.To)
	}
	fmt.Println("planar:", adapter.Constraints().IsPlanar())
	// Output:
	// sequence: sat cat mat
	// link: sat-cat
	// link: sat-mat
	// planar: true
}
