package bench

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot saves a grouped bar chart of mean insert and search latency per
// result. The image format follows the extension of path (.png, .svg, .pdf).
func Plot(path string, results []Result) error {
	if len(results) == 0 {
		return errors.New("bench: nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "Mean latency per operation"
	p.Y.Label.Text = "ns/op"

	inserts := make(plotter.Values, len(results))
	searches := make(plotter.Values, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		inserts[i] = float64(r.InsertNs())
		searches[i] = float64(r.SearchNs())
		names[i] = r.Name + " " + r.Config
	}

	w := vg.Points(18)
	insertBars, err := plotter.NewBarChart(inserts, w)
	if err != nil {
		return errors.Wrap(err, "bench: insert bars")
	}
	insertBars.LineStyle.Width = vg.Length(0)
	insertBars.Color = plotutil.Color(0)
	insertBars.Offset = -w / 2

	searchBars, err := plotter.NewBarChart(searches, w)
	if err != nil {
		return errors.Wrap(err, "bench: search bars")
	}
	searchBars.LineStyle.Width = vg.Length(0)
	searchBars.Color = plotutil.Color(1)
	searchBars.Offset = w / 2

	p.Add(insertBars, searchBars)
	p.Legend.Add(string(OpInsert), insertBars)
	p.Legend.Add(string(OpSearch), searchBars)
	p.Legend.Top = true
	p.NominalX(names...)

	if err := p.Save(vg.Length(2+len(results))*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "bench: save plot %s", path)
	}
	return nil
}
