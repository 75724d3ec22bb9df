package datastructure

import (
	"time"
)

type GPSPoint struct {
	userId string
	lon    float64
	lat    float64
	time   time.Time
}

func NewGPSPoint(userId string, lat, lon float64, t time.Time) *GPSPoint {
	return &GPSPoint{
		userId: userId,
		lon:    lon,
		lat:    lat,
		time:   t,
	}
}

func (gp *GPSPoint) UserId() string {
	return gp.userId
}

func (gp *GPSPoint) Lon() float64 {
	return gp.lon
}

func (gp *GPSPoint) Lat() float64 {
	return gp.lat
}

func (gp *GPSPoint) Time() time.Time {
	return gp.time
}

// Trajectory. time-ordered gps fixes of a single user
type Trajectory struct {
	userId string
	points []*GPSPoint
}

func NewTrajectory(userId string, points []*GPSPoint) *Trajectory {
	return &Trajectory{userId: userId, points: points}
}

func (t *Trajectory) UserId() string {
	return t.userId
}

func (t *Trajectory) Points() []*GPSPoint {
	return t.points
}

func (t *Trajectory) Len() int {
	return len(t.points)
}

func (t *Trajectory) Point(i int) *GPSPoint {
	return t.points[i]
}

func (t *Trajectory) IsEmpty() bool {
	return len(t.points) == 0
}

// StayPoint. location where a user stayed for at least the minimum dwell time
type StayPoint struct {
	userId    string
	lat       float64
	lon       float64
	arrival   time.Time
	departure time.Time
}

func NewStayPoint(userId string, lat, lon float64, arrival, departure time.Time) *StayPoint {
	return &StayPoint{
		userId:    userId,
		lat:       lat,
		lon:       lon,
		arrival:   arrival,
		departure: departure,
	}
}

func (s *StayPoint) UserId() string {
	return s.userId
}

func (s *StayPoint) Lat() float64 {
	return s.lat
}

func (s *StayPoint) Lon() float64 {
	return s.lon
}

func (s *StayPoint) Arrival() time.Time {
	return s.arrival
}

func (s *StayPoint) Departure() time.Time {
	return s.departure
}

// Time. representative time of the stay, used as the leg bound
func (s *StayPoint) Time() time.Time {
	return s.arrival
}

func (s *StayPoint) Dwell() time.Duration {
	return s.departure.Sub(s.arrival)
}
