package planar_test

import (
	"fmt"

	"github.com/planline/planline/pkg/planar"
)

func Example() {
	c := planar.New()
	c.SetSequence([]string{"the", "cat", "sat", "on", "mat"})

	fmt.Println(c.AddLink("the", "cat")) // adjacent, planar
	fmt.Println(c.AddLink("cat", "on"))  // spans (1,3), planar
	fmt.Println(c.AddLink("the", "sat")) // (0,2) crosses (1,3)
	fmt.Println(c.IsPlanar())
	// Output:
	// true
	// true
	// false
	// true
}

func ExampleConstraints_IsPlanarLink() {
	c := planar.New()
	c.SetSequence([]string{"a", "b", "c", "d"})
	c.AddLink("a", "c")

	fmt.Println(c.IsPlanarLink("a", "d")) // shares endpoint, planar
	fmt.Println(c.IsPlanarLink("b", "d")) // interleaves, crosses
	// Output:
	// true
	// false
}
