package metrics

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const (
	UNDEFINED_JACCARD = "undefined"
	FILE_TIME_LAYOUT  = "2006-01-02-15-04-05"
)

// Record. one row of the metrics table, computed once per user.
type Record struct {
	User       string
	Jaccard    float64
	Defined    bool // false when both route node sets are empty
	LengthReal int  // observed route length
	LengthCalc int  // modeled route length
	LengthDif  int
}

// JaccardString. jaccard as written to the metrics file
func (r Record) JaccardString() string {
	if !r.Defined {
		return UNDEFINED_JACCARD
	}
	return formatFloat(r.Jaccard)
}

type recordJSON struct {
	User       string   `json:"user"`
	Jaccard    *float64 `json:"jaccard"`
	LengthReal int      `json:"length_real"`
	LengthCalc int      `json:"length_calc"`
	LengthDif  int      `json:"length_dif"`
}

// MarshalJSON. an undefined jaccard is encoded as null
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		User:       r.User,
		LengthReal: r.LengthReal,
		LengthCalc: r.LengthCalc,
		LengthDif:  r.LengthDif,
	}
	if r.Defined {
		j := r.Jaccard
		out.Jaccard = &j
	}
	return json.Marshal(out)
}

// formatFloat. shortest representation, integral values keep one decimal (1.0, 0.0).
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Stage. pipeline step at which a user failed
type Stage string

const (
	STAGE_LOAD   Stage = "load"
	STAGE_CLEAN  Stage = "clean"
	STAGE_DETECT Stage = "detect"
	STAGE_ROUTE  Stage = "route"
	STAGE_PANIC  Stage = "panic"
)

type Failure struct {
	User   string
	Stage  Stage
	Reason string
}

func MetricsFileName(area string, ts time.Time) string {
	return "Metrics_" + area + "_" + ts.Format(FILE_TIME_LAYOUT) + ".csv"
}

func FailuresFileName(area string, ts time.Time) string {
	return "Failures_" + area + "_" + ts.Format(FILE_TIME_LAYOUT) + ".csv"
}
