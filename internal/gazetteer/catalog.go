package gazetteer

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/roletitle/matcher/app/models"
)

type rawRole struct {
	RoleID            int    `yaml:"role_id"`
	Title             string `yaml:"title"`
	AreaIDs           []int  `yaml:"area_ids"`
	HierarchyLevelIDs []int  `yaml:"hierarchy_level_ids"`
	ProfileIDs        []int  `yaml:"profile_ids"`
}

type rawCatalogFile struct {
	Roles []rawRole `yaml:"roles"`
}

func loadCatalogFile(fsys fs.FS, path string) ([]models.CatalogRole, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: open %s: %w", path, err)
	}
	defer f.Close()

	var doc rawCatalogFile
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("gazetteer: decode %s: %w", path, err)
	}

	roles := make([]models.CatalogRole, 0, len(doc.Roles))
	for _, r := range doc.Roles {
		if r.RoleID <= 0 || r.Title == "" {
			return nil, fmt.Errorf("gazetteer: %s: invalid role entry %+v", path, r)
		}
		roles = append(roles, models.CatalogRole{
			RoleID:            r.RoleID,
			Title:             r.Title,
			AreaIDs:           r.AreaIDs,
			HierarchyLevelIDs: r.HierarchyLevelIDs,
			ProfileIDs:        r.ProfileIDs,
		})
	}
	return roles, nil
}

type rawProfile struct {
	ProfileID         int   `yaml:"profile_id"`
	AreaIDs           []int `yaml:"area_ids"`
	HierarchyLevelIDs []int `yaml:"hierarchy_level_ids"`
	ProfileIDs        []int `yaml:"profile_ids"`
}

type rawProfilesFile struct {
	Profiles []rawProfile `yaml:"profiles"`
}

func loadProfileMappings(fsys fs.FS, path string) (map[int]models.ProfileScope, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: open %s: %w", path, err)
	}
	defer f.Close()

	var doc rawProfilesFile
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("gazetteer: decode %s: %w", path, err)
	}

	out := make(map[int]models.ProfileScope, len(doc.Profiles))
	for _, p := range doc.Profiles {
		out[p.ProfileID] = models.ProfileScope{
			AreaIDs:           p.AreaIDs,
			HierarchyLevelIDs: p.HierarchyLevelIDs,
			ProfileIDs:        p.ProfileIDs,
		}
	}
	return out, nil
}
