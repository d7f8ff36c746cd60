package sankey_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/render/sankey"
)

func ExampleRender() {
	rows := []dataview.Row{
		dataview.NewRecord(0, 10, dataview.Cat("A"), dataview.Cat("X")),
		dataview.NewRecord(1, 20, dataview.Cat("B"), dataview.Cat("Y")),
	}
	levels := []dataview.Level{{Name: "Region"}, {Name: "Type"}}
	snap := &dataview.Snapshot{
		Rows:        rows,
		Hierarchy:   dataview.BuildHierarchy(levels, rows),
		Width:       800,
		Height:      600,
		MeasureName: "Sales",
	}

	frame, err := sankey.Render(context.Background(), snap)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("segments:", len(frame.Segments))
	fmt.Println("ribbons:", len(frame.Ribbons))
	fmt.Println(frame.Tooltip(sankey.SegmentTag(0, 1)))
	// Output:
	// segments: 4
	// ribbons: 2
	// Sales: 20
	// Region: B
}
