// Package refdata holds the fixed reference lists behind the form selectors:
// regions, AGA divisions, GS divisions and pooling booths. The lists ship with
// the binary; a record whose stored value matches none of them (data imported
// from elsewhere, or a list revision) is kept as-is by the normaliser rather
// than rejected.
package refdata

import "github.com/darshana-perera-97/desktop-crud-exe/internal/model"

// Lists bundles the four reference lists so they can be passed around as one
// dependency instead of four slices.
type Lists struct {
	Regions       []model.Option
	AGADivisions  []model.Option
	GSDivisions   []model.Option
	PoolingBooths []model.Option
}

// Default returns the built-in reference lists.
func Default() Lists {
	return Lists{
		Regions:       regions,
		AGADivisions:  agaDivisions,
		GSDivisions:   gsDivisions,
		PoolingBooths: poolingBooths,
	}
}

var regions = []model.Option{
	{Value: "NR", Label: "Northern"},
	{Value: "NC", Label: "North Central"},
	{Value: "NW", Label: "North Western"},
	{Value: "ER", Label: "Eastern"},
	{Value: "CE", Label: "Central"},
	{Value: "WE", Label: "Western"},
	{Value: "SA", Label: "Sabaragamuwa"},
	{Value: "UV", Label: "Uva"},
	{Value: "SO", Label: "Southern"},
}

var agaDivisions = []model.Option{
	{Value: "AGA-01", Label: "Jaffna"},
	{Value: "AGA-02", Label: "Nallur"},
	{Value: "AGA-03", Label: "Point Pedro"},
	{Value: "AGA-04", Label: "Chavakachcheri"},
	{Value: "AGA-05", Label: "Vavuniya"},
	{Value: "AGA-06", Label: "Mannar"},
	{Value: "AGA-07", Label: "Anuradhapura East"},
	{Value: "AGA-08", Label: "Anuradhapura West"},
	{Value: "AGA-09", Label: "Colombo"},
	{Value: "AGA-10", Label: "Dehiwala"},
	{Value: "AGA-11", Label: "Moratuwa"},
	{Value: "AGA-12", Label: "Kandy"},
	{Value: "AGA-13", Label: "Gampola"},
	{Value: "AGA-14", Label: "Galle Four Gravets"},
	{Value: "AGA-15", Label: "Matara"},
}

var gsDivisions = []model.Option{
	{Value: "GS-101", Label: "Colombo-01"},
	{Value: "GS-102", Label: "Colombo-02"},
	{Value: "GS-103", Label: "Colombo-03"},
	{Value: "GS-104", Label: "Colombo-04"},
	{Value: "GS-105", Label: "Kollupitiya"},
	{Value: "GS-106", Label: "Bambalapitiya"},
	{Value: "GS-201", Label: "Nallur North"},
	{Value: "GS-202", Label: "Nallur South"},
	{Value: "GS-203", Label: "Ariyalai"},
	{Value: "GS-204", Label: "Kokuvil East"},
	{Value: "GS-205", Label: "Kokuvil West"},
	{Value: "GS-301", Label: "Peradeniya"},
	{Value: "GS-302", Label: "Katugastota"},
	{Value: "GS-303", Label: "Gangawata Korale"},
	{Value: "GS-401", Label: "Weligama"},
	{Value: "GS-402", Label: "Kamburugamuwa"},
}

var poolingBooths = []model.Option{
	{Value: "PB-01", Label: "Central College Hall"},
	{Value: "PB-02", Label: "Hindu Ladies College"},
	{Value: "PB-03", Label: "Methodist Mission School"},
	{Value: "PB-04", Label: "Town Hall Annex"},
	{Value: "PB-05", Label: "Community Centre North"},
	{Value: "PB-06", Label: "Community Centre South"},
	{Value: "PB-07", Label: "Maha Vidyalaya Main Hall"},
	{Value: "PB-08", Label: "Junior School Pavilion"},
	{Value: "PB-09", Label: "Co-operative Building"},
	{Value: "PB-10", Label: "Library Grounds"},
}
