package tools

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const dateFmt = "2006-01-02T15:04:05"

// WriteCSV writes one quantity of the grid with launch dates as rows and arrival dates as columns. The first
// row holds the arrival dates and the first column the launch dates. Failed transfers are written as NaN.
func WriteCSV(w io.Writer, g *Grid, q Quantity) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(g.Arrivals)+1)
	header = append(header, fmt.Sprintf("%s->%s %s", g.Config.Departure.Name, g.Config.Arrival.Name, q))
	for _, dt := range g.Arrivals {
		header = append(header, dt.UTC().Format(dateFmt))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range g.Cells {
		record := make([]string, 0, len(row)+1)
		record = append(record, g.Launches[i].UTC().Format(dateFmt))
		for _, c := range row {
			record = append(record, strconv.FormatFloat(c.Value(q), 'f', 6, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles writes the C3, time of flight and arrival v∞ grids to contour-<name>-<quantity>.csv files in dir,
// and returns the file names.
func WriteFiles(dir, name string, g *Grid) ([]string, error) {
	var fNames []string
	for _, q := range []Quantity{C3, TOF, VInfArrival} {
		fName := filepath.Join(dir, fmt.Sprintf("contour-%s-%s.csv", name, q))
		f, err := os.Create(fName)
		if err != nil {
			return fNames, err
		}
		if err = WriteCSV(f, g, q); err != nil {
			f.Close()
			return fNames, err
		}
		if err = f.Close(); err != nil {
			return fNames, err
		}
		fNames = append(fNames, fName)
	}
	return fNames, nil
}
