package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	twobody "github.com/Posnet/Vallado-sub005"
	"github.com/soniakeys/meeus/v3/julian"
)

const dtFormat = "2006-01-02 15:04:05"

// parseVector reads a vector written as "x,y,z".
func parseVector(s string) (twobody.Vector3, error) {
	var v twobody.Vector3
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("%w: vector %q needs three comma separated components", twobody.ErrInvalidInput, s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v, fmt.Errorf("%w: vector %q: %s", twobody.ErrInvalidInput, s, err)
		}
		v[i] = f
	}
	return v, nil
}

// parseDate reads either a Julian date or a "2006-01-02 15:04:05" UTC date.
func parseDate(s string) (time.Time, error) {
	if jd, err := strconv.ParseFloat(s, 64); err == nil {
		return julian.JDToTime(jd), nil
	}
	dt, err := time.Parse(dtFormat, s)
	if err != nil {
		return dt, fmt.Errorf("%w: date %q is neither a Julian date nor %s", twobody.ErrInvalidInput, s, dtFormat)
	}
	return dt, nil
}

func fmtVector(v twobody.Vector3) string {
	return fmt.Sprintf("[%.6f %.6f %.6f]", v[0], v[1], v[2])
}
