package engineclient

import "errors"

// Ошибки клиента движка.
var (
	// ErrEngineUnavailable — движок недоступен (транспортная ошибка).
	ErrEngineUnavailable = errors.New("execution engine unavailable")

	// ErrEngineResponse — движок вернул некорректный ответ.
	ErrEngineResponse = errors.New("bad engine response")
)
