// Package validate implements the rule engine that classifies a server
// configuration into blocking errors and advisory warnings. Rules never
// throw; every check appends findings and a single Validate call evaluates
// the full catalog, so one pass surfaces the complete problem set.
package validate

// Severity classifies a finding as blocking or advisory.
type Severity string

const (
	// SeverityError marks a hard requirement violation; the config must not
	// be handed to the server until fixed.
	SeverityError Severity = "error"
	// SeverityWarning marks an advisory finding; the config is usable but
	// suboptimal or risky.
	SeverityWarning Severity = "warning"
)

// Kind is the closed taxonomy of finding kinds.
type Kind string

// Error kinds.
const (
	KindStructural                       Kind = "structural"
	KindMalformedIdentifier              Kind = "malformedIdentifier"
	KindRconPasswordTooShort             Kind = "rconPasswordTooShort"
	KindRconPasswordWhitespace           Kind = "rconPasswordWhitespace"
	KindRconPermissionInvalid            Kind = "rconPermissionInvalid"
	KindRconMaxClientsOutOfRange         Kind = "rconMaxClientsOutOfRange"
	KindServerNameTooLong                Kind = "serverNameTooLong"
	KindAdminPasswordWhitespace          Kind = "adminPasswordWhitespace"
	KindAdminsListTooLarge               Kind = "adminsListTooLarge"
	KindViewDistanceOutOfRange           Kind = "viewDistanceOutOfRange"
	KindNetworkViewDistanceOutOfRange    Kind = "networkViewDistanceOutOfRange"
	KindGrassDistanceInvalid             Kind = "grassDistanceInvalid"
	KindSlotReservationTimeoutOutOfRange Kind = "slotReservationTimeoutOutOfRange"
	KindJoinQueueSizeOutOfRange          Kind = "joinQueueSizeOutOfRange"
	KindUnsupportedPlatform              Kind = "unsupportedPlatform"
	KindMaxPlayersOutOfRange             Kind = "maxPlayersOutOfRange"
)

// Warning kinds.
const (
	KindViewDistancePerformance       Kind = "viewDistancePerformance"
	KindViewDistanceTooLow            Kind = "viewDistanceTooLow"
	KindNetworkViewDistanceMismatch   Kind = "networkViewDistanceMismatch"
	KindMaxPlayersPerformance         Kind = "maxPlayersPerformance"
	KindGrassDistancePerformance      Kind = "grassDistancePerformance"
	KindAILimitPerformance            Kind = "aiLimitPerformance"
	KindAdminPasswordEmpty            Kind = "adminPasswordEmpty"
	KindRconPasswordWeak              Kind = "rconPasswordWeak"
	KindDuplicateMod                  Kind = "duplicateMod"
	KindMalformedModID                Kind = "malformedModId"
	KindAddressMismatch               Kind = "addressMismatch"
	KindPortCollision                 Kind = "portCollision"
)

// ErrorKinds enumerates every blocking kind the rule catalog can produce.
// Exposed so tests can prove each kind is reachable by some fixture.
var ErrorKinds = []Kind{
	KindMalformedIdentifier,
	KindRconPasswordTooShort,
	KindRconPasswordWhitespace,
	KindRconPermissionInvalid,
	KindRconMaxClientsOutOfRange,
	KindServerNameTooLong,
	KindAdminPasswordWhitespace,
	KindAdminsListTooLarge,
	KindViewDistanceOutOfRange,
	KindNetworkViewDistanceOutOfRange,
	KindGrassDistanceInvalid,
	KindSlotReservationTimeoutOutOfRange,
	KindJoinQueueSizeOutOfRange,
	KindUnsupportedPlatform,
	KindMaxPlayersOutOfRange,
}

// WarningKinds enumerates every advisory kind the rule catalog can produce.
var WarningKinds = []Kind{
	KindViewDistancePerformance,
	KindViewDistanceTooLow,
	KindNetworkViewDistanceMismatch,
	KindMaxPlayersPerformance,
	KindGrassDistancePerformance,
	KindAILimitPerformance,
	KindAdminPasswordEmpty,
	KindRconPasswordWeak,
	KindDuplicateMod,
	KindMalformedModID,
	KindAddressMismatch,
	KindPortCollision,
}

// Finding is a single validation error or warning record.
type Finding struct {
	Kind        Kind     `json:"type"`
	Severity    Severity `json:"severity"`
	Field       string   `json:"field,omitempty"`
	Message     string   `json:"message"`
	ValidRange  string   `json:"validRange,omitempty"`
	Recommended string   `json:"recommended,omitempty"`
}

// Report is the classified result of one Validate call. Order within each
// list follows the fixed rule catalog order, so repeated runs over the same
// config yield identical reports.
type Report struct {
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// HasErrors reports whether the config must be fixed before use.
func (r Report) HasErrors() bool {
	return len(r.Errors) > 0
}
