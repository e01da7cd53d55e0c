package spancheck

import "slices"

// Category groups.
var (
	JP5Categories = []string{
		"Airport", "City", "Company", "Compound", "Person",
	}

	JP30LocationCategories = []string{
		"Bay",
		"Continental_Region",
		"Country",
		"Domestic_Region",
		"GPE_Other",
		"Geological_Region_Other",
		"Island",
		"Lake",
		"Location_Other",
		"Mountain",
		"Province",
		"River",
		"Sea",
		"Spa",
	}

	JP30OrganizationCategories = []string{
		"Cabinet",
		"Company_Group",
		"Ethnic_Group_Other",
		"Family",
		"Government",
		"International_Organization",
		"Military",
		"Nationality",
		"Nonprofit_Organization",
		"Organization_Other",
		"Political_Organization_Other",
		"Political_Party",
		"Show_Organization",
		"Sports_Federation",
		"Sports_League",
		"Sports_Team",
	}
)

// AllCategories returns every known category sorted by name.
func AllCategories() []string {
	all := slices.Concat(JP5Categories, JP30LocationCategories, JP30OrganizationCategories)
	slices.Sort(all)
	return all
}

// IsCategory reports whether name is a known category.
func IsCategory(name string) bool {
	return slices.Contains(JP5Categories, name) ||
		slices.Contains(JP30LocationCategories, name) ||
		slices.Contains(JP30OrganizationCategories, name)
}
