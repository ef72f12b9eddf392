package serverconf

import "encoding/json"

// Builder accumulates field assignments over an in-progress configuration.
// It is a thin fluent wrapper over NewConfig: setters only assign fields and
// never validate. The single coupling rule is port derivation — BindPort
// recomputes the A2S port (bind+1) and RCON port (bind+2) unless those were
// set explicitly, in which case the explicit value wins regardless of call
// order. One builder per construction session; not safe for concurrent use.
type Builder struct {
	cfg         *ServerConfig
	a2sPortSet  bool
	rconPortSet bool
}

// NewBuilder starts a builder seeded with the defaults for the given server
// name and scenario ID.
func NewBuilder(name, scenarioID string) *Builder {
	return &Builder{cfg: NewConfig(name, scenarioID)}
}

// BindAddress sets the local bind address.
func (b *Builder) BindAddress(addr string) *Builder {
	b.cfg.BindAddress = addr
	return b
}

// BindPort sets the main game port and derives the A2S and RCON ports from it
// unless those were already set explicitly.
func (b *Builder) BindPort(port int) *Builder {
	b.cfg.BindPort = port
	b.cfg.PublicPort = port
	if !b.a2sPortSet {
		b.cfg.A2S.Port = port + A2SPortOffset
	}
	if !b.rconPortSet {
		b.cfg.Rcon.Port = port + RconPortOffset
	}
	return b
}

// PublicAddress sets the externally advertised address.
func (b *Builder) PublicAddress(addr string) *Builder {
	b.cfg.PublicAddress = addr
	return b
}

// PublicPort sets the externally advertised port.
func (b *Builder) PublicPort(port int) *Builder {
	b.cfg.PublicPort = port
	return b
}

// A2SAddress sets the query endpoint address.
func (b *Builder) A2SAddress(addr string) *Builder {
	b.cfg.A2S.Address = addr
	return b
}

// A2SPort sets the query endpoint port explicitly, pinning it against later
// BindPort derivation.
func (b *Builder) A2SPort(port int) *Builder {
	b.cfg.A2S.Port = port
	b.a2sPortSet = true
	return b
}

// RconAddress sets the RCON bind address.
func (b *Builder) RconAddress(addr string) *Builder {
	b.cfg.Rcon.Address = addr
	return b
}

// RconPort sets the RCON port explicitly, pinning it against later BindPort
// derivation.
func (b *Builder) RconPort(port int) *Builder {
	b.cfg.Rcon.Port = port
	b.rconPortSet = true
	return b
}

// RconPassword sets the RCON password. Empty disables RCON.
func (b *Builder) RconPassword(password string) *Builder {
	b.cfg.Rcon.Password = password
	return b
}

// RconPermission sets the RCON client permission level.
func (b *Builder) RconPermission(permission string) *Builder {
	b.cfg.Rcon.Permission = permission
	return b
}

// RconMaxClients sets the RCON client limit.
func (b *Builder) RconMaxClients(n int) *Builder {
	b.cfg.Rcon.MaxClients = n
	return b
}

// GamePassword sets the join password.
func (b *Builder) GamePassword(password string) *Builder {
	b.cfg.Game.Password = password
	return b
}

// AdminPassword sets the in-game admin password.
func (b *Builder) AdminPassword(password string) *Builder {
	b.cfg.Game.PasswordAdmin = password
	return b
}

// Admins replaces the admin identity list.
func (b *Builder) Admins(admins ...string) *Builder {
	b.cfg.Game.Admins = append([]string{}, admins...)
	return b
}

// MaxPlayers sets the player cap.
func (b *Builder) MaxPlayers(n int) *Builder {
	b.cfg.Game.MaxPlayers = n
	return b
}

// Visible sets server-browser visibility.
func (b *Builder) Visible(v bool) *Builder {
	b.cfg.Game.Visible = v
	return b
}

// CrossPlatform toggles cross-platform play.
func (b *Builder) CrossPlatform(v bool) *Builder {
	b.cfg.Game.CrossPlatform = v
	return b
}

// Platforms replaces the supported platform list.
func (b *Builder) Platforms(platforms ...string) *Builder {
	b.cfg.Game.SupportedPlatforms = append([]string{}, platforms...)
	return b
}

// AddMod appends a mod entry.
func (b *Builder) AddMod(mod Mod) *Builder {
	b.cfg.Game.Mods = append(b.cfg.Game.Mods, mod)
	return b
}

// Mods replaces the mod list.
func (b *Builder) Mods(mods ...Mod) *Builder {
	b.cfg.Game.Mods = append([]Mod{}, mods...)
	return b
}

// ServerMaxViewDistance sets the server-side view distance.
func (b *Builder) ServerMaxViewDistance(d int) *Builder {
	b.cfg.Game.GameProperties.ServerMaxViewDistance = d
	return b
}

// NetworkViewDistance sets the network replication view distance.
func (b *Builder) NetworkViewDistance(d int) *Builder {
	b.cfg.Game.GameProperties.NetworkViewDistance = d
	return b
}

// GrassDistance sets the minimum grass render distance.
func (b *Builder) GrassDistance(d int) *Builder {
	b.cfg.Game.GameProperties.ServerMinGrassDistance = d
	return b
}

// DisableThirdPerson forces first-person view.
func (b *Builder) DisableThirdPerson(v bool) *Builder {
	b.cfg.Game.GameProperties.DisableThirdPerson = v
	return b
}

// BattlEye toggles BattlEye.
func (b *Builder) BattlEye(v bool) *Builder {
	b.cfg.Game.GameProperties.BattlEye = v
	return b
}

// AILimit caps AI entity count (-1 for unlimited).
func (b *Builder) AILimit(n int) *Builder {
	b.cfg.Operating.AILimit = n
	return b
}

// PlayerSaveTime sets the periodic player save interval in seconds.
func (b *Builder) PlayerSaveTime(seconds int) *Builder {
	b.cfg.Operating.PlayerSaveTime = seconds
	return b
}

// SlotReservationTimeout sets the disconnect slot hold in seconds.
func (b *Builder) SlotReservationTimeout(seconds int) *Builder {
	b.cfg.Operating.SlotReservationTimeout = seconds
	return b
}

// JoinQueueSize sets the join queue capacity.
func (b *Builder) JoinQueueSize(n int) *Builder {
	b.cfg.Operating.JoinQueue.MaxSize = n
	return b
}

// Build finalizes the accumulated configuration as an independent snapshot.
// Idempotent: repeated calls without further mutation return equal but not
// identical objects.
func (b *Builder) Build() *ServerConfig {
	return b.cfg.Clone()
}

// BuildJSON finalizes and serializes the configuration as indented JSON.
func (b *Builder) BuildJSON() ([]byte, error) {
	return json.MarshalIndent(b.Build(), "", "    ")
}
