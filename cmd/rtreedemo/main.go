// rtreedemo loads a set of boxes from a CSV file, indexes them in an
// R*-tree, runs one range query and logs its match count, and prints the
// whole tree (not the query matches) as GeoJSON. It
// exists to exercise geoimport/rtree/geoexport end to end, not as a
// general-purpose tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spatialidx/rstartree/geoexport"
	"github.com/spatialidx/rstartree/geoimport"
	"github.com/spatialidx/rstartree/rtree"
)

func main() {
	csvPath := flag.String("csv", "", "path to a CSV file of lo_x,lo_y,hi_x,hi_y,label rows")
	queryBox := flag.String("query", "0,0,100,100", "lo_x,lo_y,hi_x,hi_y of the range query")
	minFanout := flag.Int("m", 2, "minimum fan-out")
	maxFanout := flag.Int("M", 4, "maximum fan-out")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("rtreedemo: -csv is required")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("rtreedemo: %v", err)
	}
	defer f.Close()

	tree, err := rtree.New[string](2, *minFanout, *maxFanout)
	if err != nil {
		log.Fatalf("rtreedemo: %v", err)
	}

	n, err := geoimport.InsertAll(tree, f, 2, func(label string) (string, error) {
		return label, nil
	})
	if err != nil {
		log.Fatalf("rtreedemo: loading %s: %v", *csvPath, err)
	}
	log.Printf("rtreedemo: loaded %d boxes from %s", n, *csvPath)

	q, err := parseQueryBox(*queryBox)
	if err != nil {
		log.Fatalf("rtreedemo: %v", err)
	}
	matches := tree.Search(q)
	log.Printf("rtreedemo: query %s matched %d entries", *queryBox, len(matches))

	out, err := geoexport.Dump(tree)
	if err != nil {
		log.Fatalf("rtreedemo: %v", err)
	}
	fmt.Println(out)
}

func parseQueryBox(s string) (rtree.BoundingBox, error) {
	var loX, loY, hiX, hiY float64
	_, err := fmt.Sscanf(s, "%g,%g,%g,%g", &loX, &loY, &hiX, &hiY)
	if err != nil {
		return rtree.BoundingBox{}, fmt.Errorf("invalid -query %q: %w", s, err)
	}
	return rtree.NewBox([]float64{loX, loY}, []float64{hiX, hiY})
}
