package model

// Fleet holds the user's saved vehicle catalog. It backs the CLI when no
// vehicle file is supplied on the command line.
type Fleet struct {
	Vehicles []Vehicle `json:"vehicles"`
}

// DefaultFleet returns a catalog populated with a small general-purpose
// platform, used when no fleet file exists yet.
func DefaultFleet() Fleet {
	van, _ := NewVehicle("Platform1", "Vehicle1", 10, 10, 10, 50)
	truck, _ := NewVehicle("Platform1", "Vehicle2", 15, 15, 15, 75)
	return Fleet{Vehicles: []Vehicle{van, truck}}
}

// FindByID returns a pointer to the vehicle with the given ID, or nil.
func (f *Fleet) FindByID(id string) *Vehicle {
	for i := range f.Vehicles {
		if f.Vehicles[i].ID == id {
			return &f.Vehicles[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first vehicle with the given name, or nil.
func (f *Fleet) FindByName(name string) *Vehicle {
	for i := range f.Vehicles {
		if f.Vehicles[i].Name == name {
			return &f.Vehicles[i]
		}
	}
	return nil
}

// Platforms returns the distinct platform labels in first-seen order.
func (f *Fleet) Platforms() []string {
	seen := make(map[string]bool, len(f.Vehicles))
	var platforms []string
	for _, v := range f.Vehicles {
		if !seen[v.Platform] {
			seen[v.Platform] = true
			platforms = append(platforms, v.Platform)
		}
	}
	return platforms
}

// VehicleNames returns the vehicle names in catalog order.
func (f *Fleet) VehicleNames() []string {
	names := make([]string, len(f.Vehicles))
	for i, v := range f.Vehicles {
		names[i] = v.Name
	}
	return names
}
