package aggregate_test

import (
	"fmt"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/render/sankey/aggregate"
)

func ExampleAggregate() {
	rows := []dataview.Row{
		dataview.NewRecord(0, 10, dataview.Cat("A"), dataview.Cat("X")),
		dataview.NewRecord(1, 20, dataview.Cat("B"), dataview.Cat("X")),
		dataview.NewRecord(2, 5, dataview.Cat("A"), dataview.Cat("Y")),
	}
	levels := []dataview.Level{{Name: "Region"}, {Name: "Type"}}

	totals, err := aggregate.Aggregate(dataview.BuildHierarchy(levels, rows), rows)
	if err != nil {
		fmt.Println(err)
		return
	}
	for level := 0; level < totals.Depth(); level++ {
		for _, e := range totals.Level(level) {
			fmt.Printf("%s %s=%g\n", levels[level].Name, e.Label, e.Total)
		}
	}
	// Output:
	// Region A=15
	// Region B=20
	// Type X=30
	// Type Y=5
}

func ExampleAggregate_negative() {
	rows := []dataview.Row{
		dataview.NewRecord(0, 10, dataview.Cat("A")),
		dataview.NewRecord(1, -2, dataview.Cat("B")),
	}
	levels := []dataview.Level{{Name: "Region"}}

	_, err := aggregate.Aggregate(dataview.BuildHierarchy(levels, rows), rows)
	fmt.Println(err)
	// Output:
	// sankey can not display negative values: row 1 has value -2
}
