package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// OrgID records the organization identifier under the key "org_id".
func OrgID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("org_id", id)
}

// Role records a role identifier under the key "role_id".
func Role(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("role_id", id)
}

// Permission records a permission identifier under the key "permission".
func Permission(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("permission", id)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
