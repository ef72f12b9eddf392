package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma-type-things/reforger-types-sub001/pkg/serverconf"
)

// validConfig returns a baseline that passes every rule with zero findings.
func validConfig() *serverconf.ServerConfig {
	cfg := serverconf.NewConfig("Test Server", "{ECC61978EDCC2B5A}Missions/23_Campaign.conf")
	cfg.Game.PasswordAdmin = "hunter2"
	return cfg
}

func kinds(findings []Finding) []Kind {
	out := make([]Kind, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Kind)
	}
	return out
}

func TestValidateCleanConfig(t *testing.T) {
	report := Validate(validConfig())
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.False(t, report.HasErrors())
}

func TestValidateIdempotent(t *testing.T) {
	cfg := validConfig()
	cfg.Game.MaxPlayers = 100
	cfg.Rcon.Password = "admin"
	cfg.Game.Mods = []serverconf.Mod{{ModID: "bad"}, {ModID: "59674C62B51B2EB9"}}

	first := Validate(cfg)
	second := Validate(cfg)
	assert.Equal(t, first, second)
}

func TestRconDisabledByEmptyPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Rcon.Password = ""
	report := Validate(cfg)
	for _, f := range append(report.Errors, report.Warnings...) {
		assert.NotEqual(t, "rcon.password", f.Field)
	}
}

func TestMaxPlayersMonotonicSeverity(t *testing.T) {
	tests := []struct {
		players     int
		wantError   bool
		wantWarning bool
	}{
		{64, false, false},
		{96, false, false},
		{100, false, true},
		{128, false, true},
		{129, true, false},
		{200, true, false},
		{0, true, false},
	}

	for _, tt := range tests {
		cfg := validConfig()
		cfg.Game.MaxPlayers = tt.players
		report := Validate(cfg)

		assert.Equal(t, tt.wantError, containsKind(report.Errors, KindMaxPlayersOutOfRange),
			"players=%d error mismatch", tt.players)
		assert.Equal(t, tt.wantWarning, containsKind(report.Warnings, KindMaxPlayersPerformance),
			"players=%d warning mismatch", tt.players)
	}
}

func TestGrassDistanceBoundaries(t *testing.T) {
	tests := []struct {
		distance    int
		wantError   bool
		wantWarning bool
	}{
		{0, false, false},
		{49, true, false},
		{50, false, false},
		{100, false, false},
		{101, false, true},
		{150, false, true},
		{151, true, false},
	}

	for _, tt := range tests {
		cfg := validConfig()
		cfg.Game.GameProperties.ServerMinGrassDistance = tt.distance
		report := Validate(cfg)

		assert.Equal(t, tt.wantError, containsKind(report.Errors, KindGrassDistanceInvalid),
			"grass=%d error mismatch", tt.distance)
		assert.Equal(t, tt.wantWarning, containsKind(report.Warnings, KindGrassDistancePerformance),
			"grass=%d warning mismatch", tt.distance)
	}
}

func TestNetworkViewDistanceRatio(t *testing.T) {
	cfg := validConfig()
	cfg.Game.GameProperties.ServerMaxViewDistance = 2000
	cfg.Game.GameProperties.NetworkViewDistance = 1800 // exactly 90%
	report := Validate(cfg)
	assert.False(t, containsKind(report.Warnings, KindNetworkViewDistanceMismatch))

	cfg.Game.GameProperties.NetworkViewDistance = 600 // far off 1800
	report = Validate(cfg)
	assert.True(t, containsKind(report.Warnings, KindNetworkViewDistanceMismatch))
}

func TestEndToEndMultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Game.MaxPlayers = 150
	cfg.Rcon.Password = "ab"
	cfg.Game.GameProperties.ServerMaxViewDistance = 15000

	report := Validate(cfg)

	require.GreaterOrEqual(t, len(report.Errors), 3)
	assert.True(t, containsKind(report.Errors, KindMaxPlayersOutOfRange))
	assert.True(t, containsKind(report.Errors, KindRconPasswordTooShort))
	assert.True(t, containsKind(report.Errors, KindViewDistanceOutOfRange))

	// Warnings are only evaluated on otherwise-valid fields: none of the
	// erroring fields may also warn, and the view-distance ratio advisory is
	// suppressed because the server view distance itself is invalid.
	erroredFields := map[string]bool{}
	for _, e := range report.Errors {
		erroredFields[e.Field] = true
	}
	for _, w := range report.Warnings {
		assert.False(t, erroredFields[w.Field], "warning on erroring field %s", w.Field)
	}
	assert.False(t, containsKind(report.Warnings, KindNetworkViewDistanceMismatch))
}

func TestPortCollision(t *testing.T) {
	cfg := validConfig()
	cfg.Rcon.Port = cfg.BindPort
	report := Validate(cfg)

	require.True(t, containsKind(report.Warnings, KindPortCollision))
	w := findingByKind(report.Warnings, KindPortCollision)
	assert.Contains(t, w.Message, "bindPort")
	assert.Contains(t, w.Message, "rcon.port")
	assert.Empty(t, report.Errors)
}

// errorFixtures mutate a valid config so that exactly the named error kind
// becomes reachable. Together with warningFixtures this proves every kind in
// the taxonomy is produced by some input.
var errorFixtures = map[Kind]func(*serverconf.ServerConfig){
	KindMalformedIdentifier:              func(c *serverconf.ServerConfig) { c.Game.ScenarioID = "ECC61978EDCC2B5AMissions/x.conf" },
	KindRconPasswordTooShort:             func(c *serverconf.ServerConfig) { c.Rcon.Password = "ab" },
	KindRconPasswordWhitespace:           func(c *serverconf.ServerConfig) { c.Rcon.Password = "abc def" },
	KindRconPermissionInvalid:            func(c *serverconf.ServerConfig) { c.Rcon.Permission = "root" },
	KindRconMaxClientsOutOfRange:         func(c *serverconf.ServerConfig) { c.Rcon.MaxClients = 0 },
	KindServerNameTooLong:                func(c *serverconf.ServerConfig) { c.Game.Name = strings.Repeat("x", 101) },
	KindAdminPasswordWhitespace:          func(c *serverconf.ServerConfig) { c.Game.PasswordAdmin = "has space" },
	KindAdminsListTooLarge:               func(c *serverconf.ServerConfig) { c.Game.Admins = make([]string, 21) },
	KindViewDistanceOutOfRange:           func(c *serverconf.ServerConfig) { c.Game.GameProperties.ServerMaxViewDistance = 15000 },
	KindNetworkViewDistanceOutOfRange:    func(c *serverconf.ServerConfig) { c.Game.GameProperties.NetworkViewDistance = 100 },
	KindGrassDistanceInvalid:             func(c *serverconf.ServerConfig) { c.Game.GameProperties.ServerMinGrassDistance = 30 },
	KindSlotReservationTimeoutOutOfRange: func(c *serverconf.ServerConfig) { c.Operating.SlotReservationTimeout = 0 },
	KindJoinQueueSizeOutOfRange:          func(c *serverconf.ServerConfig) { c.Operating.JoinQueue.MaxSize = 51 },
	KindUnsupportedPlatform:              func(c *serverconf.ServerConfig) { c.Game.SupportedPlatforms = []string{"PLATFORM_WII"} },
	KindMaxPlayersOutOfRange:             func(c *serverconf.ServerConfig) { c.Game.MaxPlayers = 200 },
}

var warningFixtures = map[Kind]func(*serverconf.ServerConfig){
	KindViewDistancePerformance:     func(c *serverconf.ServerConfig) { c.Game.GameProperties.ServerMaxViewDistance = 3000 },
	KindViewDistanceTooLow:          func(c *serverconf.ServerConfig) { c.Game.GameProperties.ServerMaxViewDistance = 400 },
	KindNetworkViewDistanceMismatch: func(c *serverconf.ServerConfig) { c.Game.GameProperties.NetworkViewDistance = 500 },
	KindMaxPlayersPerformance:       func(c *serverconf.ServerConfig) { c.Game.MaxPlayers = 100 },
	KindGrassDistancePerformance:    func(c *serverconf.ServerConfig) { c.Game.GameProperties.ServerMinGrassDistance = 120 },
	KindAILimitPerformance:          func(c *serverconf.ServerConfig) { c.Operating.AILimit = 100 },
	KindAdminPasswordEmpty:          func(c *serverconf.ServerConfig) { c.Game.PasswordAdmin = "" },
	KindRconPasswordWeak:            func(c *serverconf.ServerConfig) { c.Rcon.Password = "admin" },
	KindDuplicateMod: func(c *serverconf.ServerConfig) {
		c.Game.Mods = []serverconf.Mod{{ModID: "59674C62B51B2EB9"}, {ModID: "59674c62b51b2eb9"}}
	},
	KindMalformedModID: func(c *serverconf.ServerConfig) {
		c.Game.Mods = []serverconf.Mod{{ModID: "not-hex"}}
	},
	KindAddressMismatch: func(c *serverconf.ServerConfig) {
		c.BindAddress = "192.168.1.5"
		c.PublicAddress = "203.0.113.9"
	},
	KindPortCollision: func(c *serverconf.ServerConfig) { c.Rcon.Port = c.BindPort },
}

func TestEveryErrorKindReachable(t *testing.T) {
	for _, kind := range ErrorKinds {
		t.Run(string(kind), func(t *testing.T) {
			mutate, ok := errorFixtures[kind]
			require.True(t, ok, "no fixture for error kind %s", kind)

			cfg := validConfig()
			mutate(cfg)
			report := Validate(cfg)
			assert.True(t, containsKind(report.Errors, kind),
				"kind %s not produced, got %v", kind, kinds(report.Errors))
		})
	}
	assert.Len(t, errorFixtures, len(ErrorKinds))
}

func TestEveryWarningKindReachable(t *testing.T) {
	for _, kind := range WarningKinds {
		t.Run(string(kind), func(t *testing.T) {
			mutate, ok := warningFixtures[kind]
			require.True(t, ok, "no fixture for warning kind %s", kind)

			cfg := validConfig()
			mutate(cfg)
			report := Validate(cfg)
			assert.Empty(t, report.Errors, "warning fixture must not introduce errors")
			assert.True(t, containsKind(report.Warnings, kind),
				"kind %s not produced, got %v", kind, kinds(report.Warnings))
		})
	}
	assert.Len(t, warningFixtures, len(WarningKinds))
}

func containsKind(findings []Finding, kind Kind) bool {
	return findingByKind(findings, kind) != nil
}

func findingByKind(findings []Finding, kind Kind) *Finding {
	for i := range findings {
		if findings[i].Kind == kind {
			return &findings[i]
		}
	}
	return nil
}
