package domain

// RoomType is one row of the fixed, server-authoritative room table.
// Prices are whole rupees per night; nothing here changes at runtime.
type RoomType struct {
	Name         string
	NightlyPrice int64
	Size         string
	MaxGuests    int
	Description  string
	Facilities   []string
	Highlights   []string
}

type Catalog struct {
	rooms []RoomType
	byKey map[string]RoomType
}

func NewCatalog(rooms []RoomType) *Catalog {
	byKey := make(map[string]RoomType, len(rooms))
	for _, r := range rooms {
		byKey[r.Name] = r
	}
	return &Catalog{rooms: rooms, byKey: byKey}
}

// PriceOf returns the nightly price for a room type name.
func (c *Catalog) PriceOf(name string) (int64, error) {
	r, ok := c.byKey[name]
	if !ok {
		return 0, ErrInvalidRoomType
	}
	return r.NightlyPrice, nil
}

func (c *Catalog) Room(name string) (RoomType, bool) {
	r, ok := c.byKey[name]
	return r, ok
}

// Rooms returns the table in its display order.
func (c *Catalog) Rooms() []RoomType {
	out := make([]RoomType, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// DefaultCatalog is the Dora Paradise room table.
func DefaultCatalog() *Catalog {
	return NewCatalog([]RoomType{
		{
			Name:         "Deluxe Room",
			NightlyPrice: 5500,
			Size:         "350 sq ft",
			MaxGuests:    2,
			Description:  "Refined comfort with traditional Tamil Nadu décor and modern luxury amenities.",
			Facilities:   []string{"King-size Bed", "Wi-Fi", "Smart TV", "Mini Bar", "Room Service", "Rain Shower"},
			Highlights:   []string{"City view", "Handcrafted Tamil artwork", "Premium bath amenities"},
		},
		{
			Name:         "Premium Deluxe Room",
			NightlyPrice: 7500,
			Size:         "450 sq ft",
			MaxGuests:    2,
			Description:  "Private balcony with views of the Western Ghats, inspired by Coimbatore's textile heritage.",
			Facilities:   []string{"King-size Bed", "Private Balcony", "Wi-Fi", "55\" Smart TV", "Bathtub & Rain Shower"},
			Highlights:   []string{"Mountain view balcony", "Silk-inspired interiors", "Butler service"},
		},
		{
			Name:         "Executive Suite",
			NightlyPrice: 12000,
			Size:         "650 sq ft",
			MaxGuests:    3,
			Description:  "Separate living area with panoramic views, blending contemporary elegance with palatial tradition.",
			Facilities:   []string{"King-size Bed", "Separate Living Area", "Work Desk", "Full Bar", "Jacuzzi Bathtub"},
			Highlights:   []string{"Panoramic city view", "Dedicated concierge", "Complimentary spa session"},
		},
		{
			Name:         "Family Suite",
			NightlyPrice: 15000,
			Size:         "900 sq ft",
			MaxGuests:    4,
			Description:  "Expansive interconnected rooms with child-friendly amenities and space for the whole family.",
			Facilities:   []string{"King + Twin Beds", "Living & Dining Area", "Kids' Corner", "Kitchenette", "Balcony"},
			Highlights:   []string{"Family activity packages", "Child-safe amenities", "Garden view"},
		},
		{
			Name:         "Presidential Suite",
			NightlyPrice: 25000,
			Size:         "1400 sq ft",
			MaxGuests:    4,
			Description:  "Hand-laid marble floors, crystal chandeliers and bespoke furnishings inspired by royal Tamil heritage.",
			Facilities:   []string{"Master Bedroom", "Grand Living Room", "Private Dining", "Premium Bar", "Marble Jacuzzi"},
			Highlights:   []string{"360° panoramic views", "Private chef available", "Rolls-Royce airport transfer"},
		},
	})
}
