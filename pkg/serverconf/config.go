// Package serverconf defines the typed data model for a Reforger dedicated
// server configuration, along with the defaults factory and a fluent builder.
// Construction here performs no validation; callers needing guarantees route
// the result through internal/validate.
package serverconf

import (
	"github.com/arma-type-things/reforger-types-sub001/pkg/ident"
)

// Platform identifiers accepted in game.supportedPlatforms.
const (
	PlatformPC          = "PLATFORM_PC"
	PlatformXbox        = "PLATFORM_XBL"
	PlatformPlaystation = "PLATFORM_PSN"
)

// SupportedPlatforms is the closed set of valid platform identifiers.
var SupportedPlatforms = []string{PlatformPC, PlatformXbox, PlatformPlaystation}

// RCON permission levels.
const (
	RconPermissionAdmin   = "admin"
	RconPermissionMonitor = "monitor"
)

// WorkshopBaseURL is the public workshop page prefix mod URLs derive from.
const WorkshopBaseURL = "https://reforger.armaplatform.com/workshop/"

// ServerConfig is the root aggregate matching the server.json document the
// dedicated server consumes. Once produced it is treated as an immutable
// snapshot; use Clone before mutating.
type ServerConfig struct {
	BindAddress   string          `json:"bindAddress"`
	BindPort      int             `json:"bindPort"`
	PublicAddress string          `json:"publicAddress"`
	PublicPort    int             `json:"publicPort"`
	A2S           A2SConfig       `json:"a2s"`
	Rcon          RconConfig      `json:"rcon"`
	Game          GameConfig      `json:"game"`
	Operating     OperatingConfig `json:"operating"`
}

// A2SConfig holds the server-browser query endpoint binding. This is
// configuration payload only; no query protocol client lives here.
type A2SConfig struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// RconConfig holds the remote-admin command channel settings. An empty
// password disables RCON entirely, which is a valid state.
type RconConfig struct {
	Address    string   `json:"address"`
	Port       int      `json:"port"`
	Password   string   `json:"password"`
	Permission string   `json:"permission"`
	MaxClients int      `json:"maxClients"`
	Blacklist  []string `json:"blacklist"`
	Whitelist  []string `json:"whitelist"`
}

// GameConfig holds session identity, access control, scenario selection and
// the mod list.
type GameConfig struct {
	Name                  string         `json:"name"`
	Password              string         `json:"password"`
	PasswordAdmin         string         `json:"passwordAdmin"`
	Admins                []string       `json:"admins"`
	ScenarioID            string         `json:"scenarioId"`
	MaxPlayers            int            `json:"maxPlayers"`
	Visible               bool           `json:"visible"`
	CrossPlatform         bool           `json:"crossPlatform"`
	SupportedPlatforms    []string       `json:"supportedPlatforms"`
	GameProperties        GameProperties `json:"gameProperties"`
	Mods                  []Mod          `json:"mods"`
	ModsRequiredByDefault bool           `json:"modsRequiredByDefault"`
}

// GameProperties holds the tunables the engine reads per session.
type GameProperties struct {
	ServerMaxViewDistance      int            `json:"serverMaxViewDistance"`
	ServerMinGrassDistance     int            `json:"serverMinGrassDistance"`
	NetworkViewDistance        int            `json:"networkViewDistance"`
	DisableThirdPerson         bool           `json:"disableThirdPerson"`
	FastValidation             bool           `json:"fastValidation"`
	BattlEye                   bool           `json:"battlEye"`
	VONDisableUI               bool           `json:"VONDisableUI"`
	VONDisableDirectSpeechUI   bool           `json:"VONDisableDirectSpeechUI"`
	VONCanTransmitCrossFaction bool           `json:"VONCanTransmitCrossFaction"`
	MissionHeader              map[string]any `json:"missionHeader"`
}

// OperatingConfig holds host operating parameters.
type OperatingConfig struct {
	LobbyPlayerSynchronise  bool      `json:"lobbyPlayerSynchronise"`
	PlayerSaveTime          int       `json:"playerSaveTime"`
	AILimit                 int       `json:"aiLimit"`
	SlotReservationTimeout  int       `json:"slotReservationTimeout"`
	DisableNavmeshStreaming []string  `json:"disableNavmeshStreaming"`
	DisableServerShutdown   bool      `json:"disableServerShutdown"`
	DisableCrashReporter    bool      `json:"disableCrashReporter"`
	DisableAI               bool      `json:"disableAI"`
	JoinQueue               JoinQueue `json:"joinQueue"`
}

// JoinQueue configures the waiting queue for full servers.
type JoinQueue struct {
	MaxSize int `json:"maxSize"`
}

// Mod is a single workshop mod entry. The workshop URL is a derived view over
// ModID (see WorkshopURL), never stored.
type Mod struct {
	ModID    string `json:"modId"`
	Name     string `json:"name,omitempty"`
	Version  string `json:"version,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// WorkshopURL computes the public workshop page URL for the mod. Computed on
// every read so it can never go stale when ModID changes. Returns "" when
// ModID is not a valid mod ID.
func (m Mod) WorkshopURL() string {
	if !ident.IsValidModID(m.ModID) {
		return ""
	}
	return WorkshopBaseURL + m.ModID
}

// ScenarioRef parses the config's scenario ID into a structured reference.
func (g GameConfig) ScenarioRef() (ident.ResourceRef, error) {
	return ident.ParseResourceRef(g.ScenarioID)
}

// Clone returns a deep copy of the configuration snapshot.
func (c *ServerConfig) Clone() *ServerConfig {
	out := *c
	out.Rcon.Blacklist = cloneStrings(c.Rcon.Blacklist)
	out.Rcon.Whitelist = cloneStrings(c.Rcon.Whitelist)
	out.Game.Admins = cloneStrings(c.Game.Admins)
	out.Game.SupportedPlatforms = cloneStrings(c.Game.SupportedPlatforms)
	out.Operating.DisableNavmeshStreaming = cloneStrings(c.Operating.DisableNavmeshStreaming)
	if c.Game.Mods != nil {
		out.Game.Mods = make([]Mod, len(c.Game.Mods))
		copy(out.Game.Mods, c.Game.Mods)
	}
	if c.Game.GameProperties.MissionHeader != nil {
		header := make(map[string]any, len(c.Game.GameProperties.MissionHeader))
		for k, v := range c.Game.GameProperties.MissionHeader {
			header[k] = v
		}
		out.Game.GameProperties.MissionHeader = header
	}
	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
