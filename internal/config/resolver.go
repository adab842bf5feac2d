package config

import "slices"

// Resolve lists the module IDs named in the modules: section, sorted so
// the load order is stable from run to run.
func Resolve(cfg *Config) []string {
	ids := make([]string, 0, len(cfg.Modules))
	for id := range cfg.Modules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
