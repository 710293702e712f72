package model

// Package is a membership plan.
type Package struct {
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	SessionsPerWeek int     `json:"sessionsPerWeek"`
	MonthlyPrice    float64 `json:"monthlyPrice"` // ZAR
}

// Packages is the fixed plan catalogue, cheapest first.
var Packages = []Package{
	{Type: "package-1", Name: "Package 1", SessionsPerWeek: 1, MonthlyPrice: 50},
	{Type: "package-2", Name: "Package 2", SessionsPerWeek: 2, MonthlyPrice: 85},
	{Type: "package-3", Name: "Package 3", SessionsPerWeek: 3, MonthlyPrice: 125},
}

// LookupPackage returns the package with the given type.
func LookupPackage(packageType string) (Package, bool) {
	for _, p := range Packages {
		if p.Type == packageType {
			return p, true
		}
	}
	return Package{}, false
}

// PackageTypes lists every package type.
func PackageTypes() []string {
	out := make([]string, len(Packages))
	for i, p := range Packages {
		out[i] = p.Type
	}
	return out
}
