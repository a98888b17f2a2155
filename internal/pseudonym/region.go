package pseudonym

import "strings"

// FallbackRegion is returned for empty or unrecognized place names
const FallbackRegion = "Deutschland"

// regionEntry maps a city to "<State/Region>, <Macro-region>"
type regionEntry struct {
	City   string
	Region string
}

// regionTable is scanned in order during fuzzy matching, so order is part of the output contract.
var regionTable = []regionEntry{
	// Bayern
	{"München", "Bayern, Süddeutschland"},
	{"Nürnberg", "Bayern, Süddeutschland"},
	{"Augsburg", "Bayern, Süddeutschland"},
	{"Regensburg", "Bayern, Süddeutschland"},

	// Baden-Württemberg
	{"Stuttgart", "Baden-Württemberg, Süddeutschland"},
	{"Mannheim", "Baden-Württemberg, Süddeutschland"},
	{"Karlsruhe", "Baden-Württemberg, Süddeutschland"},
	{"Heidelberg", "Baden-Württemberg, Süddeutschland"},

	// Nordrhein-Westfalen
	{"Köln", "Nordrhein-Westfalen, Westdeutschland"},
	{"Düsseldorf", "Nordrhein-Westfalen, Westdeutschland"},
	{"Dortmund", "Nordrhein-Westfalen, Westdeutschland"},
	{"Essen", "Nordrhein-Westfalen, Westdeutschland"},
	{"Bonn", "Nordrhein-Westfalen, Westdeutschland"},

	// Berlin/Brandenburg
	{"Berlin", "Berlin/Brandenburg, Ostdeutschland"},
	{"Potsdam", "Berlin/Brandenburg, Ostdeutschland"},

	// Hamburg/Schleswig-Holstein
	{"Hamburg", "Norddeutschland, Hansestadt"},
	{"Kiel", "Schleswig-Holstein, Norddeutschland"},
	{"Lübeck", "Schleswig-Holstein, Norddeutschland"},

	// Niedersachsen/Bremen
	{"Hannover", "Niedersachsen, Norddeutschland"},
	{"Bremen", "Norddeutschland, Hansestadt"},
	{"Braunschweig", "Niedersachsen, Norddeutschland"},
	{"Osnabrück", "Niedersachsen, Norddeutschland"},

	// Hessen
	{"Frankfurt am Main", "Hessen, Rhein-Main-Gebiet"},
	{"Wiesbaden", "Hessen, Rhein-Main-Gebiet"},
	{"Kassel", "Hessen, Mitteldeutschland"},
	{"Darmstadt", "Hessen, Rhein-Main-Gebiet"},

	// Sachsen
	{"Dresden", "Sachsen, Ostdeutschland"},
	{"Leipzig", "Sachsen, Ostdeutschland"},
	{"Chemnitz", "Sachsen, Ostdeutschland"},

	// Thüringen
	{"Erfurt", "Thüringen, Mitteldeutschland"},
	{"Jena", "Thüringen, Mitteldeutschland"},
	{"Weimar", "Thüringen, Mitteldeutschland"},

	// Sachsen-Anhalt
	{"Magdeburg", "Sachsen-Anhalt, Ostdeutschland"},
	{"Halle", "Sachsen-Anhalt, Ostdeutschland"},

	// Mecklenburg-Vorpommern
	{"Rostock", "Mecklenburg-Vorpommern, Norddeutschland"},
	{"Schwerin", "Mecklenburg-Vorpommern, Norddeutschland"},

	// Rheinland-Pfalz
	{"Mainz", "Rheinland-Pfalz, Westdeutschland"},
	{"Koblenz", "Rheinland-Pfalz, Westdeutschland"},
	{"Ludwigshafen", "Rheinland-Pfalz, Westdeutschland"},

	// Saarland
	{"Saarbrücken", "Saarland, Westdeutschland"},
}

var regionByCity = func() map[string]string {
	m := make(map[string]string, len(regionTable))
	for _, e := range regionTable {
		m[e.City] = e.Region
	}
	return m
}()

// ResolveRegion generalizes a free-text place name to a regional label.
// Exact (case-sensitive) city matches win; otherwise the first table entry
// where either string contains the other, case-insensitively. Unresolved
// input yields FallbackRegion.
func ResolveRegion(place string) string {
	if strings.TrimSpace(place) == "" {
		return FallbackRegion
	}

	if region, ok := regionByCity[place]; ok {
		return region
	}

	lower := strings.ToLower(place)
	for _, e := range regionTable {
		city := strings.ToLower(e.City)
		if strings.Contains(lower, city) || strings.Contains(city, lower) {
			return e.Region
		}
	}

	return FallbackRegion
}

// regionStateIn scans a lower-cased name for any known city and returns the
// state part of its region (the text before the first comma), or "".
func regionStateIn(lowerName string) string {
	for _, e := range regionTable {
		if strings.Contains(lowerName, strings.ToLower(e.City)) {
			state, _, _ := strings.Cut(e.Region, ",")
			return state
		}
	}
	return ""
}
