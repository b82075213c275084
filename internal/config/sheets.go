package config

type Sheets struct {
	CredentialsFile string `env:"SHEETS_CREDENTIALS_FILE" envDefault:"key.json"`
	SpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID,required"`
	SheetName       string `env:"SHEETS_SHEET_NAME" envDefault:"Driffle"`

	// Rules start below the header row.
	FirstRow int `env:"SHEETS_FIRST_ROW" envDefault:"2" validate:"gte=2"`
}
