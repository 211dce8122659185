package tmc

// A Scene identifies the current map or room. Scenes are equality-compared
// against the constants below; the numeric values have no ordering meaning.
type Scene uint8

// Scenes referenced by split rules. The title screen and Minish Woods share
// the id 0; rules that care combine the scene with another condition.
const (
	SceneTitleScreen             Scene = 0x00
	SceneMinishWoods             Scene = 0x00
	SceneMinishVillage           Scene = 0x01
	SceneMarketPlace             Scene = 0x02
	SceneOverworld               Scene = 0x03
	SceneMtCrenel                Scene = 0x06
	SceneCourtyard               Scene = 0x07
	SceneMelarisMines            Scene = 0x10
	SceneMarketPlaceIntro        Scene = 0x15
	SceneFortressOfWinds         Scene = 0x18
	SceneHouse                   Scene = 0x20
	SceneLinksHouse              Scene = 0x22
	SceneDeepwoodShrine          Scene = 0x48
	SceneDeepwoodShrineBoss      Scene = 0x49
	SceneCaveOfFlames            Scene = 0x50
	SceneCaveOfFlamesBoss        Scene = 0x51
	SceneFortressOfWindsGreen    Scene = 0x58
	SceneTempleOfDroplets        Scene = 0x60
	ScenePalaceOfWinds           Scene = 0x70
	SceneHyruleCastle            Scene = 0x80
	SceneDarkHyruleCastle        Scene = 0x88
	SceneVaati3                  Scene = 0x8B
)
