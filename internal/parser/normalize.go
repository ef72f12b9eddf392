package parser

import (
	"fmt"

	"github.com/arma-type-things/reforger-types-sub001/internal/validate"
	"github.com/arma-type-things/reforger-types-sub001/pkg/ident"
	"github.com/arma-type-things/reforger-types-sub001/pkg/serverconf"
)

// normalizer accumulates structural findings while copying supplied fields
// over a defaulted config. Absent keys keep their defaults; present keys of
// the wrong type are reported, never coerced.
type normalizer struct {
	findings []validate.Finding
}

func structuralFinding(field, format string, args ...any) validate.Finding {
	return validate.Finding{
		Kind:     validate.KindStructural,
		Severity: validate.SeverityError,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (n *normalizer) fail(field, format string, args ...any) {
	n.findings = append(n.findings, structuralFinding(field, format, args...))
}

// normalize builds a ServerConfig from the raw document. The baseline is the
// defaults factory output, so any section or field the caller omitted ends up
// with the documented default.
func (n *normalizer) normalize(raw map[string]any) *serverconf.ServerConfig {
	cfg := serverconf.NewConfig("", "")

	n.str(raw, "bindAddress", "bindAddress", &cfg.BindAddress)
	n.integer(raw, "bindPort", "bindPort", &cfg.BindPort)
	n.str(raw, "publicAddress", "publicAddress", &cfg.PublicAddress)
	n.integer(raw, "publicPort", "publicPort", &cfg.PublicPort)

	if a2s, ok := n.section(raw, "a2s"); ok {
		n.str(a2s, "address", "a2s.address", &cfg.A2S.Address)
		n.integer(a2s, "port", "a2s.port", &cfg.A2S.Port)
	}

	if rcon, ok := n.section(raw, "rcon"); ok {
		n.str(rcon, "address", "rcon.address", &cfg.Rcon.Address)
		n.integer(rcon, "port", "rcon.port", &cfg.Rcon.Port)
		n.str(rcon, "password", "rcon.password", &cfg.Rcon.Password)
		n.str(rcon, "permission", "rcon.permission", &cfg.Rcon.Permission)
		n.integer(rcon, "maxClients", "rcon.maxClients", &cfg.Rcon.MaxClients)
		n.strSlice(rcon, "blacklist", "rcon.blacklist", &cfg.Rcon.Blacklist)
		n.strSlice(rcon, "whitelist", "rcon.whitelist", &cfg.Rcon.Whitelist)
	}

	game, gamePresent := n.section(raw, "game")
	if gamePresent {
		n.normalizeGame(game, cfg)
	}

	if op, ok := n.section(raw, "operating"); ok {
		n.boolean(op, "lobbyPlayerSynchronise", "operating.lobbyPlayerSynchronise", &cfg.Operating.LobbyPlayerSynchronise)
		n.integer(op, "playerSaveTime", "operating.playerSaveTime", &cfg.Operating.PlayerSaveTime)
		n.integer(op, "aiLimit", "operating.aiLimit", &cfg.Operating.AILimit)
		n.integer(op, "slotReservationTimeout", "operating.slotReservationTimeout", &cfg.Operating.SlotReservationTimeout)
		n.strSlice(op, "disableNavmeshStreaming", "operating.disableNavmeshStreaming", &cfg.Operating.DisableNavmeshStreaming)
		n.boolean(op, "disableServerShutdown", "operating.disableServerShutdown", &cfg.Operating.DisableServerShutdown)
		n.boolean(op, "disableCrashReporter", "operating.disableCrashReporter", &cfg.Operating.DisableCrashReporter)
		n.boolean(op, "disableAI", "operating.disableAI", &cfg.Operating.DisableAI)
		if jq, ok := n.section(op, "joinQueue"); ok {
			n.integer(jq, "maxSize", "operating.joinQueue.maxSize", &cfg.Operating.JoinQueue.MaxSize)
		}
	}

	// The scenario is the one field with no sensible default: a server
	// without it cannot start, so its absence is structural.
	if cfg.Game.ScenarioID == "" {
		n.fail("game.scenarioId", "game.scenarioId is required")
	}

	return cfg
}

func (n *normalizer) normalizeGame(game map[string]any, cfg *serverconf.ServerConfig) {
	n.str(game, "name", "game.name", &cfg.Game.Name)
	n.str(game, "password", "game.password", &cfg.Game.Password)
	n.str(game, "passwordAdmin", "game.passwordAdmin", &cfg.Game.PasswordAdmin)
	n.strSlice(game, "admins", "game.admins", &cfg.Game.Admins)
	n.str(game, "scenarioId", "game.scenarioId", &cfg.Game.ScenarioID)
	n.integer(game, "maxPlayers", "game.maxPlayers", &cfg.Game.MaxPlayers)
	n.boolean(game, "visible", "game.visible", &cfg.Game.Visible)
	n.boolean(game, "crossPlatform", "game.crossPlatform", &cfg.Game.CrossPlatform)
	n.strSlice(game, "supportedPlatforms", "game.supportedPlatforms", &cfg.Game.SupportedPlatforms)
	n.boolean(game, "modsRequiredByDefault", "game.modsRequiredByDefault", &cfg.Game.ModsRequiredByDefault)

	// Scenario IDs are canonicalized through the identifier codec when they
	// parse; unparseable values are left as supplied for the validation
	// engine to flag.
	if ref, err := ident.ParseResourceRef(cfg.Game.ScenarioID); err == nil {
		cfg.Game.ScenarioID = ref.String()
	}

	if props, ok := n.section(game, "gameProperties"); ok {
		gp := &cfg.Game.GameProperties
		n.integer(props, "serverMaxViewDistance", "game.gameProperties.serverMaxViewDistance", &gp.ServerMaxViewDistance)
		n.integer(props, "serverMinGrassDistance", "game.gameProperties.serverMinGrassDistance", &gp.ServerMinGrassDistance)
		n.integer(props, "networkViewDistance", "game.gameProperties.networkViewDistance", &gp.NetworkViewDistance)
		n.boolean(props, "disableThirdPerson", "game.gameProperties.disableThirdPerson", &gp.DisableThirdPerson)
		n.boolean(props, "fastValidation", "game.gameProperties.fastValidation", &gp.FastValidation)
		n.boolean(props, "battlEye", "game.gameProperties.battlEye", &gp.BattlEye)
		n.boolean(props, "VONDisableUI", "game.gameProperties.VONDisableUI", &gp.VONDisableUI)
		n.boolean(props, "VONDisableDirectSpeechUI", "game.gameProperties.VONDisableDirectSpeechUI", &gp.VONDisableDirectSpeechUI)
		n.boolean(props, "VONCanTransmitCrossFaction", "game.gameProperties.VONCanTransmitCrossFaction", &gp.VONCanTransmitCrossFaction)
		if header, ok := props["missionHeader"]; ok {
			if m, ok := header.(map[string]any); ok {
				gp.MissionHeader = m
			} else {
				n.fail("game.gameProperties.missionHeader", "missionHeader must be an object, got %T", header)
			}
		}
	}

	if rawMods, ok := game["mods"]; ok {
		list, ok := rawMods.([]any)
		if !ok {
			n.fail("game.mods", "mods must be an array, got %T", rawMods)
			return
		}
		mods := make([]serverconf.Mod, 0, len(list))
		for i, entry := range list {
			m, ok := entry.(map[string]any)
			if !ok {
				n.fail(fmt.Sprintf("game.mods[%d]", i), "mod entry must be an object, got %T", entry)
				continue
			}
			var mod serverconf.Mod
			n.str(m, "modId", fmt.Sprintf("game.mods[%d].modId", i), &mod.ModID)
			n.str(m, "name", fmt.Sprintf("game.mods[%d].name", i), &mod.Name)
			n.str(m, "version", fmt.Sprintf("game.mods[%d].version", i), &mod.Version)
			n.boolean(m, "required", fmt.Sprintf("game.mods[%d].required", i), &mod.Required)
			// Canonical upper-case for valid IDs; invalid IDs are kept
			// verbatim for the malformed-mod warning.
			if id, ok := ident.ParseModReference(mod.ModID); ok {
				mod.ModID = id
			}
			mods = append(mods, mod)
		}
		cfg.Game.Mods = mods
	}
}

// section extracts a nested object. Absent is fine (defaults stand); a
// present non-object is structural.
func (n *normalizer) section(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	sub, ok := v.(map[string]any)
	if !ok {
		n.fail(key, "%s must be an object, got %T", key, v)
		return nil, false
	}
	return sub, true
}

func (n *normalizer) str(m map[string]any, key, path string, dst *string) {
	v, ok := m[key]
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		n.fail(path, "%s must be a string, got %T", path, v)
		return
	}
	*dst = s
}

// integer accepts JSON numbers (float64 after decoding) and native ints, but
// rejects fractional values rather than truncating them.
func (n *normalizer) integer(m map[string]any, key, path string, dst *int) {
	v, ok := m[key]
	if !ok {
		return
	}
	switch x := v.(type) {
	case float64:
		if x != float64(int(x)) {
			n.fail(path, "%s must be an integer, got %v", path, x)
			return
		}
		*dst = int(x)
	case int:
		*dst = x
	default:
		n.fail(path, "%s must be a number, got %T", path, v)
	}
}

func (n *normalizer) boolean(m map[string]any, key, path string, dst *bool) {
	v, ok := m[key]
	if !ok {
		return
	}
	b, ok := v.(bool)
	if !ok {
		n.fail(path, "%s must be a boolean, got %T", path, v)
		return
	}
	*dst = b
}

func (n *normalizer) strSlice(m map[string]any, key, path string, dst *[]string) {
	v, ok := m[key]
	if !ok {
		return
	}
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for i, entry := range list {
			s, ok := entry.(string)
			if !ok {
				n.fail(fmt.Sprintf("%s[%d]", path, i), "%s entries must be strings, got %T", path, entry)
				return
			}
			out = append(out, s)
		}
		*dst = out
	case []string:
		*dst = append([]string{}, list...)
	default:
		n.fail(path, "%s must be an array, got %T", path, v)
	}
}
