package config

import "log/slog"

const redacted = "[REDACTED]"

// Credential bearer-токен iLab API. Печатается и логируется только в скрытом виде.
type Credential string

func (c Credential) AuthorizationHeader() string {
	return "bearer " + string(c)
}

func (c Credential) String() string {
	return redacted
}

func (c Credential) GoString() string {
	return redacted
}

func (c Credential) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
