package serverconf

// Default values applied by NewConfig. Port defaults follow the engine's
// convention of deriving the query and RCON ports from the main bind port.
const (
	DefaultBindAddress   = ""
	DefaultBindPort      = 2001
	DefaultPublicAddress = ""

	// A2SPortOffset and RconPortOffset are the derived-port offsets from the
	// main bind port (bind+1 and bind+2).
	A2SPortOffset  = 1
	RconPortOffset = 2

	DefaultRconPermission = RconPermissionMonitor
	DefaultRconMaxClients = 16

	DefaultMaxPlayers             = 64
	DefaultServerMaxViewDistance  = 1600
	DefaultNetworkViewDistance    = 1440 // 90% of the server view distance default
	DefaultServerMinGrassDistance = 0

	DefaultPlayerSaveTime         = 120
	DefaultAILimit                = -1 // unlimited
	DefaultSlotReservationTimeout = 60
	DefaultJoinQueueMaxSize       = 0
)

// NewConfig produces a fully populated, internally consistent configuration
// from the two required inputs. Pure and deterministic: same inputs, same
// config. No validation is performed here.
func NewConfig(name, scenarioID string) *ServerConfig {
	return &ServerConfig{
		BindAddress:   DefaultBindAddress,
		BindPort:      DefaultBindPort,
		PublicAddress: DefaultPublicAddress,
		PublicPort:    DefaultBindPort,
		A2S: A2SConfig{
			Address: "0.0.0.0",
			Port:    DefaultBindPort + A2SPortOffset,
		},
		Rcon: RconConfig{
			Address:    "",
			Port:       DefaultBindPort + RconPortOffset,
			Password:   "",
			Permission: DefaultRconPermission,
			MaxClients: DefaultRconMaxClients,
			Blacklist:  []string{},
			Whitelist:  []string{},
		},
		Game: GameConfig{
			Name:               name,
			Password:           "",
			PasswordAdmin:      "",
			Admins:             []string{},
			ScenarioID:         scenarioID,
			MaxPlayers:         DefaultMaxPlayers,
			Visible:            true,
			CrossPlatform:      false,
			SupportedPlatforms: []string{PlatformPC},
			GameProperties: GameProperties{
				ServerMaxViewDistance:  DefaultServerMaxViewDistance,
				ServerMinGrassDistance: DefaultServerMinGrassDistance,
				NetworkViewDistance:    DefaultNetworkViewDistance,
				DisableThirdPerson:     false,
				FastValidation:         true,
				BattlEye:               true,
				MissionHeader:          map[string]any{},
			},
			Mods:                  []Mod{},
			ModsRequiredByDefault: true,
		},
		Operating: OperatingConfig{
			LobbyPlayerSynchronise:  true,
			PlayerSaveTime:          DefaultPlayerSaveTime,
			AILimit:                 DefaultAILimit,
			SlotReservationTimeout:  DefaultSlotReservationTimeout,
			DisableNavmeshStreaming: []string{},
			JoinQueue: JoinQueue{
				MaxSize: DefaultJoinQueueMaxSize,
			},
		},
	}
}
