package utils

var vehicleTypes = map[string]bool{
	"Bike":  true,
	"Car":   true,
	"Van":   true,
	"Bus":   true,
	"Truck": true,
}

// ValidVehicleType reports whether s is one of the supported slot categories.
func ValidVehicleType(s string) bool {
	return vehicleTypes[s]
}
