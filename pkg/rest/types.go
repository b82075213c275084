// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Status Состояние сервиса
type Status struct {
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	Uptime    string        `json:"uptime"`
	LastRound *RoundSummary `json:"lastRound,omitempty"`
}

// RoundSummary Итог последнего раунда
type RoundSummary struct {
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt"`
	Rows       int    `json:"rows"`
	Updates    int    `json:"updates"`
	Holds      int    `json:"holds"`
	Failures   int    `json:"failures"`
}

// DecisionRecord Одно решение по строке
type DecisionRecord struct {
	ID           int64          `json:"id"`
	RowIndex     int            `json:"rowIndex"`
	ProductName  string         `json:"productName"`
	OfferID      string         `json:"offerId,omitempty"`
	Status       string         `json:"status"`
	CurrentPrice float64        `json:"currentPrice"`
	Target       *CompareTarget `json:"target,omitempty"`
	AppliedAdj   float64        `json:"appliedAdj,omitempty"`
	LogMessage   string         `json:"logMessage"`
	EvaluatedAt  string         `json:"evaluatedAt"`
}

// CompareTarget Целевая цена и её источник
type CompareTarget struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// RoundRequest Параметры ручного запуска раунда
type RoundRequest struct {
	// Reason Причина запуска (для журнала)
	Reason string `json:"reason,omitempty" validate:"omitempty,max=200"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
