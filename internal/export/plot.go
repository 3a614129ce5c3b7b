// Package export renders energy trajectories to image files.
package export

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/phys-sim/hamsim/internal/hamil"
)

// EnergyPlot writes a step-vs-energy line plot with one series per scheme.
// The format follows the file extension (.png, .svg, .pdf).
func EnergyPlot(path, title string, trajs map[string]hamil.Trajectory) error {
	if len(trajs) == 0 {
		return fmt.Errorf("export: no trajectories to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "total energy"
	p.Legend.Top = true

	schemes := make([]string, 0, len(trajs))
	for name := range trajs {
		schemes = append(schemes, name)
	}
	sort.Strings(schemes)

	for i, name := range schemes {
		traj := trajs[name]
		pts := make(plotter.XYs, len(traj))
		for k, e := range traj {
			pts[k].X = float64(k)
			pts[k].Y = e
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("export: %s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
