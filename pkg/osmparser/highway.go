package osmparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

type TravelMode string

const (
	DRIVE TravelMode = "drive"
	WALK  TravelMode = "walk"
	BIKE  TravelMode = "bike"
	ALL   TravelMode = "all"

	walkingSpeed = 5.0  // km/h
	cyclingSpeed = 15.0 // km/h
	defaultSpeed = 30.0 // km/h
)

func ParseTravelMode(mode string) (TravelMode, error) {
	switch TravelMode(mode) {
	case DRIVE, WALK, BIKE, ALL:
		return TravelMode(mode), nil
	default:
		return "", fmt.Errorf("unknown travel mode %q, want one of drive, walk, bike, all", mode)
	}
}

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	driveHighway = map[string]struct{}{
		"motorway":         {},
		"motorway_link":    {},
		"trunk":            {},
		"trunk_link":       {},
		"primary":          {},
		"primary_link":     {},
		"secondary":        {},
		"secondary_link":   {},
		"tertiary":         {},
		"tertiary_link":    {},
		"residential":      {},
		"residential_link": {},
		"service":          {},
		"road":             {},
		"unclassified":     {},
		"living_street":    {},
		"motorroad":        {},
	}

	// highway values that are never routable, whatever the mode
	skipHighway = map[string]struct{}{
		"construction":    {},
		"proposed":        {},
		"abandoned":       {},
		"platform":        {},
		"raceway":         {},
		"bus_guideway":    {},
		"elevator":        {},
		"escape":          {},
		"bus_stop":        {},
		"crossing":        {},
		"street_lamp":     {},
		"speed_camera":    {},
		"traffic_signals": {},
	}

	noWalkHighway = map[string]struct{}{
		"motorway":      {},
		"motorway_link": {},
		"motorroad":     {},
		"cycleway":      {},
	}

	noBikeHighway = map[string]struct{}{
		"motorway":      {},
		"motorway_link": {},
		"motorroad":     {},
		"footway":       {},
		"steps":         {},
		"corridor":      {},
		"pedestrian":    {},
	}

	//https://wiki.openstreetmap.org/wiki/Key:barrier
	// for splitting street segment to 2 disconnected graph edge
	// if the access tag of the barrier node is != "no" , we dont split the segment
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}
)

// acceptOsmWay. whether the way belongs to the road network of the travel mode.
func acceptOsmWay(way *osm.Way, mode TravelMode) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return mode == DRIVE && way.Tags.Find("junction") != ""
	}
	if _, ok := skipHighway[highway]; ok {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	access := way.Tags.Find("access")

	switch mode {
	case DRIVE:
		if _, ok := driveHighway[highway]; !ok {
			return false
		}
		if access == "private" || access == "no" {
			return false
		}
		if isRestricted(way.Tags.Find("motor_vehicle")) || isRestricted(way.Tags.Find("motorcar")) {
			return false
		}
		switch way.Tags.Find("service") {
		case "parking", "parking_aisle", "driveway", "private", "emergency_access":
			return false
		}
		return true
	case WALK:
		if _, ok := noWalkHighway[highway]; ok {
			return way.Tags.Find("foot") == "yes"
		}
		return access != "no" && way.Tags.Find("foot") != "no"
	case BIKE:
		if _, ok := noBikeHighway[highway]; ok {
			return way.Tags.Find("bicycle") == "yes"
		}
		return access != "no" && way.Tags.Find("bicycle") != "no"
	default:
		return true
	}
}

func isRestricted(value string) bool {
	if value == "no" || value == "restricted" {
		return true
	}
	return false
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

type wayDirection struct {
	oneWay  bool
	forward bool
}

// wayDirectionOf. walking ignores oneway tags, cyclists honour oneway:bicycle=no.
func wayDirectionOf(way *osm.Way, mode TravelMode) wayDirection {
	if mode == WALK {
		return wayDirection{oneWay: false, forward: true}
	}
	oneway := way.Tags.Find("oneway")
	if mode == BIKE && way.Tags.Find("oneway:bicycle") == "no" {
		return wayDirection{oneWay: false, forward: true}
	}

	dir := wayDirection{forward: true}
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	switch {
	case oneway == "yes" || oneway == "true" || oneway == "1":
		dir.oneWay = true
	case oneway == "-1" || oneway == "reverse":
		dir.oneWay = true
		dir.forward = false
	case oneway == "no":
	case way.Tags.Find("junction") == "roundabout" || way.Tags.Find("highway") == "motorway":
		dir.oneWay = true
	}

	if mode == DRIVE && (okvf || okmvf || okvb || okmvb) {
		dir.oneWay = true
		// okvf / omvf = restricted/not allowed forward.
		dir.forward = !(okvf || okmvf)
	}
	return dir
}

// roadTypeSpeed. default driving speed (km/h) of a highway class.
func roadTypeSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 100
	case "trunk":
		return 70
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified":
		return 40
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 70
	case "trunk_link":
		return 65
	case "primary_link":
		return 60
	case "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "living_street":
		return 5
	case "road":
		return 20
	case "track":
		return 15
	case "motorroad":
		return 90
	default:
		return defaultSpeed
	}
}

// parseMaxSpeed. maxspeed tag in km/h, 0 if the tag is missing or unparsable.
func parseMaxSpeed(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	factor := 1.0
	switch {
	case strings.HasSuffix(value, "mph"):
		factor = 1.60934
		value = strings.TrimSpace(strings.TrimSuffix(value, "mph"))
	case strings.HasSuffix(value, "km/h"):
		value = strings.TrimSpace(strings.TrimSuffix(value, "km/h"))
	case strings.HasSuffix(value, "knots"):
		factor = 1.852
		value = strings.TrimSpace(strings.TrimSuffix(value, "knots"))
	}
	speed, err := strconv.ParseFloat(value, 64)
	if err != nil || speed <= 0 {
		return 0
	}
	return speed * factor
}

// waySpeed. travel speed (km/h) on the way for the travel mode.
func waySpeed(way *osm.Way, mode TravelMode) float64 {
	switch mode {
	case WALK:
		return walkingSpeed
	case BIKE:
		return cyclingSpeed
	}
	if speed := parseMaxSpeed(way.Tags.Find("maxspeed")); speed > 0 {
		return speed
	}
	return roadTypeSpeed(way.Tags.Find("highway"))
}
