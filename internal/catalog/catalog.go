package catalog

import "sort"

// Catalog maps category name -> project name -> component name -> repo URL.
// Keys are unique within each level; URLs are stored verbatim without
// format validation.
type Catalog map[string]map[string]map[string]string

// Default returns the built-in sample catalog written out when no catalog
// file exists yet.
func Default() Catalog {
	return Catalog{
		"dev": {
			"ProjectA": {
				"Test":       "https://github.com/abhisheksainiofficial7060/testrepo.git",
				"Component2": "https://github.com/user/projectA-component2.git",
			},
			"ProjectB": {
				"Component1": "https://github.com/user/projectB-component1.git",
			},
		},
		"localization": {
			"ProjectA": {
				"ui":      "https://github.com/user/localization-projectA-ui.git",
				"strings": "https://github.com/user/localization-projectA-strings.git",
			},
		},
	}
}

// Categories returns all category names sorted lexicographically.
func (c Catalog) Categories() []string {
	return sortedKeys(c)
}

// Projects returns the project names under a category, sorted
// lexicographically. Unknown categories yield an empty slice.
func (c Catalog) Projects(category string) []string {
	return sortedKeys(c[category])
}

// Components returns the component names under a project, sorted
// lexicographically. Unknown paths yield an empty slice.
func (c Catalog) Components(category, project string) []string {
	return sortedKeys(c[category][project])
}

// URL looks up the repository URL for a component.
func (c Catalog) URL(category, project, component string) (string, bool) {
	url, ok := c[category][project][component]
	return url, ok
}

// Upsert sets catalog[category][project][component] = url, creating the
// category and project levels when absent. An existing component URL is
// overwritten. The catalog is additive only: there is no delete or rename.
func (c Catalog) Upsert(category, project, component, url string) {
	if c[category] == nil {
		c[category] = make(map[string]map[string]string)
	}
	if c[category][project] == nil {
		c[category][project] = make(map[string]string)
	}
	c[category][project][component] = url
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
