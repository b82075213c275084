package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Row-level repricing outcomes. Every one of these ends the row with a
	// fail decision and a note in the sheet, never with a crash.
	ConfigInvalid   failure.ErrorCode = "ConfigInvalid"   // row failed validation, no network calls made
	DataUnavailable failure.ErrorCode = "DataUnavailable" // marketplace returned nothing for the row
	UnsafeUpdate    failure.ErrorCode = "UnsafeUpdate"    // update would breach the price floor, or no floor set

	// Marketplace transport.
	AuthFailed         failure.ErrorCode = "AuthFailed"
	MarketplaceError   failure.ErrorCode = "MarketplaceError"
	InvalidOfferURL    failure.ErrorCode = "InvalidOfferURL"
	UnknownCompareMode failure.ErrorCode = "UnknownCompareMode"

	// Spreadsheet backend.
	SheetUnavailable failure.ErrorCode = "SheetUnavailable"
	InvalidRowData   failure.ErrorCode = "InvalidRowData"
	InvalidCellRef   failure.ErrorCode = "InvalidCellRef"
)
