package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/arma-type-things/reforger-types-sub001/pkg/ident"
	"github.com/arma-type-things/reforger-types-sub001/pkg/serverconf"
)

// Validation thresholds. Hard bounds produce errors, recommended bounds
// produce warnings.
const (
	MinRconPasswordLength = 3
	MaxServerNameLength   = 100
	MaxAdmins             = 20
	MinRconClients        = 1
	MaxRconClients        = 16

	MinPlayers         = 1
	MaxPlayers         = 128
	RecommendedPlayers = 96

	MaxViewDistance            = 10000
	LowViewDistance            = 500
	RecommendedMaxViewDistance = 2500

	MinNetworkViewDistance = 500
	MaxNetworkViewDistance = 5000
	// NetworkViewDistanceRatio is the recommended network view distance as a
	// fraction of the server view distance, with ±10% tolerance.
	NetworkViewDistanceRatio     = 0.9
	NetworkViewDistanceTolerance = 0.1

	MinGrassDistance         = 50
	MaxGrassDistance         = 150
	RecommendedGrassDistance = 100

	RecommendedAILimit = 80

	MinSlotReservationTimeout = 5
	MaxSlotReservationTimeout = 300

	MaxJoinQueueSize = 50
)

// weakRconPasswords are trivially guessable passwords that pass the hard
// length/whitespace requirements but defeat the point of RCON auth.
var weakRconPasswords = map[string]struct{}{
	"123":      {},
	"1234":     {},
	"12345":    {},
	"123456":   {},
	"admin":    {},
	"password": {},
	"rcon":     {},
	"qwerty":   {},
	"letmein":  {},
	"changeme": {},
}

// fieldState tracks which fields produced an error during the current run so
// warning rules can be gated: range advisories only apply to values that are
// otherwise valid.
type fieldState struct {
	errored map[string]bool
}

// Errored reports whether the field already produced a blocking finding.
func (s *fieldState) Errored(field string) bool {
	return s.errored[field]
}

// checkFunc evaluates one rule against a config, producing zero or one
// finding.
type checkFunc func(c *serverconf.ServerConfig, st *fieldState) *Finding

// rule binds a field path to its check. The catalog below is the single
// source of truth for rule order.
type rule struct {
	field string
	check checkFunc
}

type ruleCategory struct {
	name  string
	rules []rule
}

// catalog is the fixed, ordered rule set: rcon, game, game properties,
// operating, platform, then cross-section network consistency. Within a
// category, error rules for a field precede its warning rules so the engine's
// per-field gating sees errors first.
var catalog = []ruleCategory{
	{name: "rcon", rules: []rule{
		{"rcon.password", checkRconPasswordLength},
		{"rcon.password", checkRconPasswordWhitespace},
		{"rcon.password", checkRconPasswordWeak},
		{"rcon.permission", checkRconPermission},
		{"rcon.maxClients", checkRconMaxClients},
	}},
	{name: "game", rules: []rule{
		{"game.name", checkServerNameLength},
		{"game.scenarioId", checkScenarioID},
		{"game.passwordAdmin", checkAdminPasswordWhitespace},
		{"game.passwordAdmin", checkAdminPasswordEmpty},
		{"game.admins", checkAdminsListSize},
		{"game.maxPlayers", checkMaxPlayersRange},
		{"game.maxPlayers", checkMaxPlayersPerformance},
		{"game.mods", checkDuplicateMods},
		{"game.mods", checkMalformedModIDs},
	}},
	{name: "gameProperties", rules: []rule{
		{"game.gameProperties.serverMaxViewDistance", checkViewDistanceRange},
		{"game.gameProperties.serverMaxViewDistance", checkViewDistanceTooLow},
		{"game.gameProperties.serverMaxViewDistance", checkViewDistancePerformance},
		{"game.gameProperties.networkViewDistance", checkNetworkViewDistanceRange},
		{"game.gameProperties.networkViewDistance", checkNetworkViewDistanceRatio},
		{"game.gameProperties.serverMinGrassDistance", checkGrassDistanceRange},
		{"game.gameProperties.serverMinGrassDistance", checkGrassDistancePerformance},
	}},
	{name: "operating", rules: []rule{
		{"operating.slotReservationTimeout", checkSlotReservationTimeout},
		{"operating.joinQueue.maxSize", checkJoinQueueSize},
		{"operating.aiLimit", checkAILimit},
	}},
	{name: "platform", rules: []rule{
		{"game.supportedPlatforms", checkSupportedPlatforms},
	}},
	{name: "network", rules: []rule{
		{"publicAddress", checkAddressMismatch},
		{"bindPort", checkPortCollision},
	}},
}

func errFinding(kind Kind, validRange, format string, args ...any) *Finding {
	return &Finding{
		Kind:       kind,
		Severity:   SeverityError,
		Message:    fmt.Sprintf(format, args...),
		ValidRange: validRange,
	}
}

func warnFinding(kind Kind, recommended, format string, args ...any) *Finding {
	return &Finding{
		Kind:        kind,
		Severity:    SeverityWarning,
		Message:     fmt.Sprintf(format, args...),
		Recommended: recommended,
	}
}

func containsWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

func checkRconPasswordLength(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	pw := c.Rcon.Password
	// Empty disables RCON, which is valid.
	if pw == "" || len(pw) >= MinRconPasswordLength {
		return nil
	}
	return errFinding(KindRconPasswordTooShort, fmt.Sprintf(">=%d characters", MinRconPasswordLength),
		"rcon password is %d characters, need at least %d", len(pw), MinRconPasswordLength)
}

func checkRconPasswordWhitespace(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if c.Rcon.Password == "" || !containsWhitespace(c.Rcon.Password) {
		return nil
	}
	return errFinding(KindRconPasswordWhitespace, "no whitespace",
		"rcon password must not contain whitespace")
}

func checkRconPasswordWeak(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if c.Rcon.Password == "" {
		return nil
	}
	if _, weak := weakRconPasswords[strings.ToLower(c.Rcon.Password)]; !weak {
		return nil
	}
	return warnFinding(KindRconPasswordWeak, "",
		"rcon password is trivially guessable, pick something stronger")
}

func checkRconPermission(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	switch c.Rcon.Permission {
	case serverconf.RconPermissionAdmin, serverconf.RconPermissionMonitor:
		return nil
	}
	return errFinding(KindRconPermissionInvalid, "admin|monitor",
		"rcon permission %q is not one of admin, monitor", c.Rcon.Permission)
}

func checkRconMaxClients(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	n := c.Rcon.MaxClients
	if n >= MinRconClients && n <= MaxRconClients {
		return nil
	}
	return errFinding(KindRconMaxClientsOutOfRange, fmt.Sprintf("[%d,%d]", MinRconClients, MaxRconClients),
		"rcon maxClients %d is out of range", n)
}

func checkServerNameLength(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if len(c.Game.Name) <= MaxServerNameLength {
		return nil
	}
	return errFinding(KindServerNameTooLong, fmt.Sprintf("<=%d characters", MaxServerNameLength),
		"server name is %d characters, maximum is %d", len(c.Game.Name), MaxServerNameLength)
}

func checkScenarioID(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if _, err := ident.ParseResourceRef(c.Game.ScenarioID); err != nil {
		return errFinding(KindMalformedIdentifier, "{16-hex}path",
			"scenarioId %q is not a valid resource reference", c.Game.ScenarioID)
	}
	return nil
}

func checkAdminPasswordWhitespace(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if !containsWhitespace(c.Game.PasswordAdmin) {
		return nil
	}
	return errFinding(KindAdminPasswordWhitespace, "no whitespace",
		"admin password must not contain whitespace")
}

func checkAdminPasswordEmpty(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if c.Game.PasswordAdmin != "" {
		return nil
	}
	return warnFinding(KindAdminPasswordEmpty, "",
		"admin password is empty, in-game admin access is open")
}

func checkAdminsListSize(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if len(c.Game.Admins) <= MaxAdmins {
		return nil
	}
	return errFinding(KindAdminsListTooLarge, fmt.Sprintf("<=%d entries", MaxAdmins),
		"admins list has %d entries, maximum is %d", len(c.Game.Admins), MaxAdmins)
}

func checkMaxPlayersRange(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	n := c.Game.MaxPlayers
	if n >= MinPlayers && n <= MaxPlayers {
		return nil
	}
	return errFinding(KindMaxPlayersOutOfRange, fmt.Sprintf("[%d,%d]", MinPlayers, MaxPlayers),
		"maxPlayers %d is out of range", n)
}

func checkMaxPlayersPerformance(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if c.Game.MaxPlayers <= RecommendedPlayers {
		return nil
	}
	return warnFinding(KindMaxPlayersPerformance, fmt.Sprintf("<=%d", RecommendedPlayers),
		"maxPlayers %d exceeds the recommended %d, expect degraded server performance",
		c.Game.MaxPlayers, RecommendedPlayers)
}

func checkDuplicateMods(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	seen := map[string]bool{}
	var dups []string
	for _, m := range c.Game.Mods {
		id := strings.ToUpper(m.ModID)
		if seen[id] && !contains(dups, id) {
			dups = append(dups, id)
		}
		seen[id] = true
	}
	if len(dups) == 0 {
		return nil
	}
	return warnFinding(KindDuplicateMod, "",
		"mod list contains duplicate modId values: %s", strings.Join(dups, ", "))
}

func checkMalformedModIDs(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	var bad []string
	for _, m := range c.Game.Mods {
		if !ident.IsValidModID(m.ModID) {
			bad = append(bad, m.ModID)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return warnFinding(KindMalformedModID, "16 hex characters",
		"mod list contains malformed modId values: %s", strings.Join(bad, ", "))
}

func checkViewDistanceRange(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	d := c.Game.GameProperties.ServerMaxViewDistance
	if d > 0 && d <= MaxViewDistance {
		return nil
	}
	return errFinding(KindViewDistanceOutOfRange, fmt.Sprintf("(0,%d]", MaxViewDistance),
		"serverMaxViewDistance %d is out of range", d)
}

func checkViewDistanceTooLow(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	d := c.Game.GameProperties.ServerMaxViewDistance
	if d >= LowViewDistance {
		return nil
	}
	return warnFinding(KindViewDistanceTooLow, fmt.Sprintf(">=%d", LowViewDistance),
		"serverMaxViewDistance %d is below %d, players will have a poor experience", d, LowViewDistance)
}

func checkViewDistancePerformance(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	d := c.Game.GameProperties.ServerMaxViewDistance
	if d <= RecommendedMaxViewDistance {
		return nil
	}
	return warnFinding(KindViewDistancePerformance, fmt.Sprintf("<=%d", RecommendedMaxViewDistance),
		"serverMaxViewDistance %d exceeds the recommended %d, expect degraded server performance",
		d, RecommendedMaxViewDistance)
}

func checkNetworkViewDistanceRange(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	d := c.Game.GameProperties.NetworkViewDistance
	if d >= MinNetworkViewDistance && d <= MaxNetworkViewDistance {
		return nil
	}
	return errFinding(KindNetworkViewDistanceOutOfRange,
		fmt.Sprintf("[%d,%d]", MinNetworkViewDistance, MaxNetworkViewDistance),
		"networkViewDistance %d is out of range", d)
}

func checkNetworkViewDistanceRatio(c *serverconf.ServerConfig, st *fieldState) *Finding {
	// The ratio check is meaningless against an invalid server view distance.
	if st.Errored("game.gameProperties.serverMaxViewDistance") {
		return nil
	}
	smvd := c.Game.GameProperties.ServerMaxViewDistance
	nvd := c.Game.GameProperties.NetworkViewDistance
	recommended := float64(smvd) * NetworkViewDistanceRatio
	tolerance := float64(smvd) * NetworkViewDistanceTolerance
	if float64(nvd) >= recommended-tolerance && float64(nvd) <= recommended+tolerance {
		return nil
	}
	return warnFinding(KindNetworkViewDistanceMismatch, fmt.Sprintf("%.0f", recommended),
		"networkViewDistance %d should be about 90%% of serverMaxViewDistance (%d), recommended %.0f",
		nvd, smvd, recommended)
}

func checkGrassDistanceRange(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	// Valid values are 0 (engine default) or [50,150].
	d := c.Game.GameProperties.ServerMinGrassDistance
	if d == 0 || (d >= MinGrassDistance && d <= MaxGrassDistance) {
		return nil
	}
	return errFinding(KindGrassDistanceInvalid, fmt.Sprintf("0 or [%d,%d]", MinGrassDistance, MaxGrassDistance),
		"serverMinGrassDistance %d is invalid", d)
}

func checkGrassDistancePerformance(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	d := c.Game.GameProperties.ServerMinGrassDistance
	if d <= RecommendedGrassDistance {
		return nil
	}
	return warnFinding(KindGrassDistancePerformance, fmt.Sprintf("<=%d", RecommendedGrassDistance),
		"serverMinGrassDistance %d exceeds the recommended %d", d, RecommendedGrassDistance)
}

func checkSlotReservationTimeout(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	t := c.Operating.SlotReservationTimeout
	if t >= MinSlotReservationTimeout && t <= MaxSlotReservationTimeout {
		return nil
	}
	return errFinding(KindSlotReservationTimeoutOutOfRange,
		fmt.Sprintf("[%d,%d]", MinSlotReservationTimeout, MaxSlotReservationTimeout),
		"slotReservationTimeout %d is out of range", t)
}

func checkJoinQueueSize(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	n := c.Operating.JoinQueue.MaxSize
	if n >= 0 && n <= MaxJoinQueueSize {
		return nil
	}
	return errFinding(KindJoinQueueSizeOutOfRange, fmt.Sprintf("[0,%d]", MaxJoinQueueSize),
		"joinQueue maxSize %d is out of range", n)
}

func checkAILimit(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	// No hard cap; -1 means unlimited and is not a warning by itself.
	n := c.Operating.AILimit
	if n <= RecommendedAILimit {
		return nil
	}
	return warnFinding(KindAILimitPerformance, fmt.Sprintf("<=%d", RecommendedAILimit),
		"aiLimit %d exceeds the recommended %d, expect degraded server performance", n, RecommendedAILimit)
}

func checkSupportedPlatforms(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	if len(c.Game.SupportedPlatforms) == 0 {
		return errFinding(KindUnsupportedPlatform, strings.Join(serverconf.SupportedPlatforms, "|"),
			"supportedPlatforms must not be empty")
	}
	var bad []string
	for _, p := range c.Game.SupportedPlatforms {
		if !contains(serverconf.SupportedPlatforms, p) {
			bad = append(bad, p)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return errFinding(KindUnsupportedPlatform, strings.Join(serverconf.SupportedPlatforms, "|"),
		"supportedPlatforms contains unknown values: %s", strings.Join(bad, ", "))
}

func checkAddressMismatch(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	bind := c.BindAddress
	public := c.PublicAddress
	// Only meaningful when the server binds a specific routable address.
	if public == "" || bind == "" || bind == "0.0.0.0" || bind == public {
		return nil
	}
	return warnFinding(KindAddressMismatch, "",
		"publicAddress %q differs from bindAddress %q, clients may fail to connect", public, bind)
}

func checkPortCollision(c *serverconf.ServerConfig, _ *fieldState) *Finding {
	bindings := []struct {
		field string
		port  int
	}{
		{"bindPort", c.BindPort},
		{"a2s.port", c.A2S.Port},
		{"rcon.port", c.Rcon.Port},
	}
	var collisions []string
	for i := 0; i < len(bindings); i++ {
		for j := i + 1; j < len(bindings); j++ {
			if bindings[i].port == bindings[j].port {
				collisions = append(collisions, fmt.Sprintf("%s and %s share port %d",
					bindings[i].field, bindings[j].field, bindings[i].port))
			}
		}
	}
	if len(collisions) == 0 {
		return nil
	}
	return warnFinding(KindPortCollision, "",
		"network port collision: %s", strings.Join(collisions, "; "))
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
