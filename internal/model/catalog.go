package model

// RaceID uniquely identifies a race
type RaceID string

// Race is a catalog entry characters may reference
type Race struct {
	ID          RaceID
	Name        string
	Description string
}

// ReligionID uniquely identifies a religion
type ReligionID string

// Religion is a catalog entry characters may reference
type Religion struct {
	ID          ReligionID
	Name        string
	Description string
}
