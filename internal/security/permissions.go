package security

// Level orders user permission tiers from least to most privileged.
type Level int

const (
	LevelGuest Level = iota
	LevelUser
	LevelAdmin
	LevelSuperAdmin
)

func (l Level) String() string {
	switch l {
	case LevelGuest:
		return "guest"
	case LevelUser:
		return "user"
	case LevelAdmin:
		return "admin"
	case LevelSuperAdmin:
		return "super_admin"
	}
	return "unknown"
}

// ParseLevel maps a configured level name to a Level. Unknown names fall back
// to guest, the least privileged tier.
func ParseLevel(v string) Level {
	switch v {
	case "user":
		return LevelUser
	case "admin":
		return LevelAdmin
	case "super_admin":
		return LevelSuperAdmin
	default:
		return LevelGuest
	}
}

// actionLevels maps action names to the minimum level required to run them.
// Actions not listed are available to guests.
var actionLevels = map[string]Level{
	// basic
	"hello":   LevelGuest,
	"help":    LevelGuest,
	"time":    LevelGuest,
	"weather": LevelGuest,
	"news":    LevelGuest,
	"joke":    LevelGuest,

	// user
	"open":   LevelUser,
	"play":   LevelUser,
	"search": LevelUser,

	// admin
	"settings": LevelAdmin,
	"config":   LevelAdmin,
	"restart":  LevelAdmin,

	// super admin
	"shutdown": LevelSuperAdmin,
	"update":   LevelSuperAdmin,
	"install":  LevelSuperAdmin,
}

// HasPermission reports whether the current user may perform the named
// action.
func (m *Manager) HasPermission(action string) bool {
	required, ok := actionLevels[action]
	if !ok {
		required = LevelGuest
	}
	return m.level >= required
}

// UserPermission returns the current user's permission level.
func (m *Manager) UserPermission() Level {
	return m.level
}

// RequireConfirmation reports whether sensitive operations need an explicit
// user confirmation before executing.
func (m *Manager) RequireConfirmation() bool {
	return m.requireConfirmation
}
