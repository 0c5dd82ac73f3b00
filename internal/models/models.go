// Package models defines shared data types
package models

import "github.com/bookingmx/citygraph/internal/geo"

// City is a named location identified by ID
type City struct {
	ID   string  `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Lng  float64 `json:"lng" yaml:"lng"`
}

// Coordinate returns the city's position
func (c City) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: c.Lat, Lng: c.Lng}
}

// AnnotatedCity is a City with its distance from a destination
type AnnotatedCity struct {
	City
	DistanceKm float64 `json:"distanceKm"`
}

// NodeType distinguishes the destination from its neighbors
type NodeType string

const (
	NodeDestination NodeType = "destination"
	NodeCity        NodeType = "city"
)

// GraphNode is a labeled vertex of a nearby-city graph
type GraphNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  NodeType `json:"type"`
}

// GraphEdge links the destination to one nearby city
type GraphEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// GraphMeta summarizes a nearby-city graph
type GraphMeta struct {
	Count int `json:"count"`
}

// NearbyGraph is a star-shaped graph centered on a destination
type NearbyGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Meta  GraphMeta   `json:"meta"`
}
