package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

type VertexLocator interface {
	GetVertexCoordinates(u da.Index) (float64, float64)
}

// RouteExport. everything needed to draw the comparison of one user on a map.
type RouteExport struct {
	User     string
	Observed []da.Index
	Modeled  []da.Index
	Stops    []*da.StayPoint
	Record   Record
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

func RoutesFileName(user string) string {
	return "routes_" + unsafeFileChars.ReplaceAllString(user, "_") + ".geojson"
}

func routeLineString(loc VertexLocator, route []da.Index) orb.LineString {
	ls := make(orb.LineString, 0, len(route))
	for _, u := range route {
		lat, lon := loc.GetVertexCoordinates(u)
		ls = append(ls, orb.Point{lon, lat})
	}
	return ls
}

// lineLength. length in meters along the line string
func lineLength(ls orb.LineString) float64 {
	length := 0.0
	for i := 1; i < len(ls); i++ {
		length += geo.Distance(ls[i-1], ls[i])
	}
	return length
}

// RoutesFeatureCollection. modeled route, observed route and stay points as one feature collection.
func RoutesFeatureCollection(loc VertexLocator, exp RouteExport) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, r := range []struct {
		kind  string
		route []da.Index
	}{
		{kind: "modeled", route: exp.Modeled},
		{kind: "observed", route: exp.Observed},
	} {
		ls := routeLineString(loc, r.route)
		f := geojson.NewFeature(ls)
		f.Properties["user"] = exp.User
		f.Properties["kind"] = r.kind
		f.Properties["nodes"] = len(r.route)
		f.Properties["length_m"] = lineLength(ls)
		fc.Append(f)
	}

	stops := make(orb.MultiPoint, 0, len(exp.Stops))
	for _, s := range exp.Stops {
		stops = append(stops, orb.Point{s.Lon(), s.Lat()})
	}
	f := geojson.NewFeature(stops)
	f.Properties["user"] = exp.User
	f.Properties["kind"] = "stops"
	if exp.Record.Defined {
		f.Properties["jaccard"] = exp.Record.Jaccard
	} else {
		f.Properties["jaccard"] = nil
	}
	f.Properties["length_real"] = exp.Record.LengthReal
	f.Properties["length_calc"] = exp.Record.LengthCalc
	fc.Append(f)

	return fc
}

// WriteRoutesFile. write the feature collection of one user into dir. returns the file path.
func WriteRoutesFile(dir string, loc VertexLocator, exp RouteExport) (string, error) {
	data, err := RoutesFeatureCollection(loc, exp).MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("encode routes of user %s: %w", exp.User, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create routes dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, RoutesFileName(exp.User))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
