package tmc

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Settings selects which milestones produce a split. The set is read-only
// during a run.
type Settings struct {
	GetSmithsSword               bool `yaml:"get_smiths_sword"`
	ReceiveMinishCap             bool `yaml:"receive_minish_cap"`
	EnterDeepwoodShrine          bool `yaml:"enter_deepwood_shrine"`
	GetGustJar                   bool `yaml:"get_gust_jar"`
	EnterDeepwoodShrineBossRoom  bool `yaml:"enter_deepwood_shrine_boss_room"`
	GetEarthElement              bool `yaml:"get_earth_element"`
	EnterMtCrenel                bool `yaml:"enter_mt_crenel"`
	GetGripRing                  bool `yaml:"get_grip_ring"`
	EnterCaveOfFlames            bool `yaml:"enter_cave_of_flames"`
	GetCaneOfPacci               bool `yaml:"get_cane_of_pacci"`
	EnterCaveOfFlamesBossRoom    bool `yaml:"enter_cave_of_flames_boss_room"`
	GetFireElement               bool `yaml:"get_fire_element"`
	GetPegasusBoots              bool `yaml:"get_pegasus_boots"`
	GetBow                       bool `yaml:"get_bow"`
	EnterFortressOfWinds         bool `yaml:"enter_fortress_of_winds"`
	GetMoleMitts                 bool `yaml:"get_mole_mitts"`
	EnterFortressOfWindsBossRoom bool `yaml:"enter_fortress_of_winds_boss_room"`
	GetOcarina                   bool `yaml:"get_ocarina"`
	GetMagicalBoomerang          bool `yaml:"get_magical_boomerang"`
	GetPowerBracelets            bool `yaml:"get_power_bracelets"`
	GetFlippers                  bool `yaml:"get_flippers"`
	EnterTempleOfDroplets        bool `yaml:"enter_temple_of_droplets"`
	GetFlameLantern              bool `yaml:"get_flame_lantern"`
	GetWaterElement              bool `yaml:"get_water_element"`
	EnterPalaceOfWinds           bool `yaml:"enter_palace_of_winds"`
	GetRocsCape                  bool `yaml:"get_rocs_cape"`
	GetWindElement               bool `yaml:"get_wind_element"`
	GetFourSword                 bool `yaml:"get_four_sword"`
	GetDHCBigKey                 bool `yaml:"get_dhc_big_key"`
	DefeatVaati                  bool `yaml:"defeat_vaati"`
}

// DefaultSettings enables every milestone.
func DefaultSettings() Settings {
	return Settings{
		GetSmithsSword:               true,
		ReceiveMinishCap:             true,
		EnterDeepwoodShrine:          true,
		GetGustJar:                   true,
		EnterDeepwoodShrineBossRoom:  true,
		GetEarthElement:              true,
		EnterMtCrenel:                true,
		GetGripRing:                  true,
		EnterCaveOfFlames:            true,
		GetCaneOfPacci:               true,
		EnterCaveOfFlamesBossRoom:    true,
		GetFireElement:               true,
		GetPegasusBoots:              true,
		GetBow:                       true,
		EnterFortressOfWinds:         true,
		GetMoleMitts:                 true,
		EnterFortressOfWindsBossRoom: true,
		GetOcarina:                   true,
		GetMagicalBoomerang:          true,
		GetPowerBracelets:            true,
		GetFlippers:                  true,
		EnterTempleOfDroplets:        true,
		GetFlameLantern:              true,
		GetWaterElement:              true,
		EnterPalaceOfWinds:           true,
		GetRocsCape:                  true,
		GetWindElement:               true,
		GetFourSword:                 true,
		GetDHCBigKey:                 true,
		DefeatVaati:                  true,
	}
}

// LoadSettings reads a settings file. Toggles absent from the file keep
// their default value of enabled.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}

	err = yaml.Unmarshal(data, &settings)

	return settings, err
}

// SaveSettings writes the settings as YAML.
func SaveSettings(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
