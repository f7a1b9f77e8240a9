/*plot_source samples a configured spatial distribution and plots the x-y
marginal of the sampled positions. Useful for eyeballing a source
definition before burning compute on it.
*/
package main

import (
	"flag"
	"log"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/gomc-dev/gomc/rnd"
	"github.com/gomc-dev/gomc/source"
)

func main() {
	var (
		srcFile string
		out     string
		n       int
		seed    int64
	)
	flag.StringVar(&srcFile, "Source", "", "YAML spatial source file.")
	flag.StringVar(&out, "Out", "source.png", "Output image file.")
	flag.IntVar(&n, "N", 10000, "Number of positions to sample.")
	flag.Int64Var(&seed, "Seed", 1, "Master seed.")
	flag.Parse()

	if srcFile == "" {
		log.Fatal("A -Source file must be given.")
	}

	space, err := source.ReadSpatialFile(srcFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	s := rnd.New(uint64(seed))
	xs, ys := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		s.Seed(int64(i))
		r := space.Sample(s)
		xs[i], ys[i] = r[0], r[1]
	}

	plt.Figure(plt.FigSize(8, 8))
	plt.Plot(xs, ys, "ok")
	plt.Title("Sampled source positions")
	plt.XLabel(`$x$ [cm]`, plt.FontSize(16))
	plt.YLabel(`$y$ [cm]`, plt.FontSize(16))
	plt.SaveFig(out)
	plt.Execute()
}
