package flow_test

import (
	"fmt"

	"github.com/matzehuels/sankey/pkg/render/sankey/flow"
)

func ExampleRibbonPath() {
	// A band 10 high leaving the source at y=0 and arriving at y=20.
	p := flow.RibbonPath(flow.Anchor{X: 14, Y: 0}, flow.Anchor{X: 100, Y: 20}, 10, 86)

	fmt.Println(p.Contains(flow.Point{X: 57, Y: 15}))
	fmt.Println(p.Contains(flow.Point{X: 57, Y: 40}))
	// Output:
	// true
	// false
}

func ExamplePath_String() {
	p := flow.RibbonPath(flow.Anchor{X: 0, Y: 0}, flow.Anchor{X: 40, Y: 0}, 10, 40)
	fmt.Println(p)
	// Output:
	// M 0 0 C 10 0, 30 0, 40 0 L 40 10 C 30 10, 10 10, 0 10 Z
}
